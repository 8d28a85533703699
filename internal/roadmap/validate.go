package roadmap

import "time"

// Field names used as keys in validation results.
const (
	FieldPlanKey             = "plan_key"
	FieldTargetMonthlyIncome = "target_monthly_income"
	FieldMonthlySavings      = "monthly_savings"
	FieldStartDate           = "start_date"
)

// MaxMonthlyIncome is the largest accepted target, in 万円.
const MaxMonthlyIncome = 9999

// Validate returns a message per invalid field. An empty map means the input
// can be passed to Calculate.
func Validate(in Input) map[string]string {
	errs := make(map[string]string)

	if _, err := LookupPlan(in.PlanKey); err != nil {
		errs[FieldPlanKey] = "プランを選択してください"
	}

	switch {
	case in.TargetMonthlyIncome < 1:
		errs[FieldTargetMonthlyIncome] = "1万円以上を入力してください"
	case in.TargetMonthlyIncome > MaxMonthlyIncome:
		errs[FieldTargetMonthlyIncome] = "値が大きすぎます（〜9999万円）"
	}

	switch {
	case in.MonthlySavings < 0:
		errs[FieldMonthlySavings] = "0万円以上を入力してください"
	case in.MonthlySavings > in.TargetMonthlyIncome:
		errs[FieldMonthlySavings] = "稼ぎたい金額以下にしてください"
	}

	if _, err := time.Parse(DateLayout, in.StartDate); err != nil {
		errs[FieldStartDate] = "開始日は YYYY-MM-DD 形式で入力してください"
	}

	return errs
}
