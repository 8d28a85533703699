package roadmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate_SixMonthPlan(t *testing.T) {
	in := Input{
		PlanKey:             6,
		TargetMonthlyIncome: 40,
		MonthlySavings:      25,
		StartDate:           "2024-01-01",
		ShowGrid:            true,
		ShowIcons:           true,
	}

	data, err := Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, 6, data.TotalMonths)
	assert.Equal(t, 4, data.LearningMonths)
	assert.Equal(t, 2, data.AcquisitionMonths)
	assert.Equal(t, 54, data.FreelanceMonths)
	assert.Equal(t, 5.0, data.AcquisitionIncomePerMonth)
	assert.Equal(t, 10.0, data.AcquisitionTotalIncome)
	assert.Equal(t, 1350, data.TotalSavings)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), data.LearningEndDate)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), data.GraduationDate)
	assert.True(t, data.ShowGrid)
	assert.True(t, data.ShowIcons)
}

func TestCalculate_InvariantsHoldForEveryPlan(t *testing.T) {
	for _, p := range Plans() {
		data, err := Calculate(Input{PlanKey: p.Key, TargetMonthlyIncome: 30, MonthlySavings: 10, StartDate: "2025-03-31"})
		require.NoError(t, err, "plan %d", p.Key)

		assert.Equal(t, data.TotalMonths, data.LearningMonths+data.AcquisitionMonths, "plan %d", p.Key)
		assert.Equal(t, HorizonMonths, data.TotalMonths+data.FreelanceMonths, "plan %d", p.Key)
		assert.InDelta(t, float64(p.AcquisitionTotalIncome), data.AcquisitionTotalIncome, 1e-9, "plan %d", p.Key)
		assert.False(t, data.LearningEndDate.Before(data.StartDate), "plan %d", p.Key)
		assert.False(t, data.GraduationDate.Before(data.LearningEndDate), "plan %d", p.Key)
	}
}

func TestCalculate_FractionalPerMonthIncome(t *testing.T) {
	data, err := Calculate(Input{PlanKey: 4, TargetMonthlyIncome: 30, MonthlySavings: 10, StartDate: "2025-01-15"})
	require.NoError(t, err)
	assert.Equal(t, 2.5, data.AcquisitionIncomePerMonth)
	assert.Equal(t, 5.0, data.AcquisitionTotalIncome)
}

func TestCalculate_Errors(t *testing.T) {
	_, err := Calculate(Input{PlanKey: 7, StartDate: "2024-01-01"})
	assert.ErrorIs(t, err, ErrUnknownPlan)

	_, err = Calculate(Input{PlanKey: 6, StartDate: "01/01/2024"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Input{PlanKey: 6, TargetMonthlyIncome: 40, MonthlySavings: 25, StartDate: "2024-01-01"}

	tests := []struct {
		name   string
		mutate func(*Input)
		fields []string
	}{
		{name: "valid", mutate: func(*Input) {}},
		{name: "savings equal to target", mutate: func(in *Input) { in.MonthlySavings = 40 }},
		{name: "zero savings", mutate: func(in *Input) { in.MonthlySavings = 0 }},
		{name: "missing plan", mutate: func(in *Input) { in.PlanKey = 0 }, fields: []string{FieldPlanKey}},
		{name: "target too small", mutate: func(in *Input) { in.TargetMonthlyIncome = 0; in.MonthlySavings = 0 }, fields: []string{FieldTargetMonthlyIncome}},
		{name: "target too large", mutate: func(in *Input) { in.TargetMonthlyIncome = 10000 }, fields: []string{FieldTargetMonthlyIncome}},
		{name: "negative savings", mutate: func(in *Input) { in.MonthlySavings = -1 }, fields: []string{FieldMonthlySavings}},
		{name: "savings above target", mutate: func(in *Input) { in.MonthlySavings = 41 }, fields: []string{FieldMonthlySavings}},
		{name: "bad date", mutate: func(in *Input) { in.StartDate = "tomorrow" }, fields: []string{FieldStartDate}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			errs := Validate(in)
			assert.Len(t, errs, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, errs, f)
			}
		})
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "40万円", FormatMan(40))
	assert.Equal(t, "1,350万円", FormatMan(1350))
	assert.Equal(t, "2.5万円", FormatMan(2.5))
	assert.Equal(t, "2.5", FormatNumber(2.5))
	assert.Equal(t, "5", FormatNumber(5))

	assert.Equal(t, "4年6ヶ月", YearsLabel(54))
	assert.Equal(t, "4年", YearsLabel(48))
	assert.Equal(t, "0年3ヶ月", YearsLabel(3))

	assert.Equal(t, "2024年1月1日", DateLabel(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDefaultInputIsValid(t *testing.T) {
	in := DefaultInput(time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, "2026-10-16", in.StartDate)
	assert.Empty(t, Validate(in))
}
