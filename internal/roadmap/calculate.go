package roadmap

import (
	"fmt"
	"time"
)

// Calculate turns a validated Input into Data. Only a bad plan key or an
// unparsable start date are reported; range checks belong to Validate.
func Calculate(in Input) (Data, error) {
	plan, err := LookupPlan(in.PlanKey)
	if err != nil {
		return Data{}, err
	}
	start, err := time.Parse(DateLayout, in.StartDate)
	if err != nil {
		return Data{}, fmt.Errorf("parsing start date %q: %w", in.StartDate, err)
	}

	perMonth := float64(plan.AcquisitionTotalIncome) / float64(plan.AcquisitionMonths)
	freelance := HorizonMonths - plan.TotalMonths

	return Data{
		PlanKey:                   plan.Key,
		TotalMonths:               plan.TotalMonths,
		LearningMonths:            plan.LearningMonths,
		AcquisitionMonths:         plan.AcquisitionMonths,
		FreelanceMonths:           freelance,
		TargetMonthlyIncome:       in.TargetMonthlyIncome,
		MonthlySavings:            in.MonthlySavings,
		AcquisitionIncomePerMonth: perMonth,
		AcquisitionTotalIncome:    perMonth * float64(plan.AcquisitionMonths),
		TotalSavings:              in.MonthlySavings * freelance,
		StartDate:                 start,
		LearningEndDate:           start.AddDate(0, plan.LearningMonths, 0),
		GraduationDate:            start.AddDate(0, plan.TotalMonths, 0),
		ShowGrid:                  in.ShowGrid,
		ShowIcons:                 in.ShowIcons,
	}, nil
}
