package roadmap

import "time"

// HorizonMonths is the fixed length of every roadmap: five years.
const HorizonMonths = 60

// --- Input Structs ---

// Input is what a user enters: a plan, two monthly amounts in 万円 and a start date.
type Input struct {
	PlanKey             int    `json:"plan_key" yaml:"plan_key"`                           // 3, 4, 5, 6, 9 or 10
	TargetMonthlyIncome int    `json:"target_monthly_income" yaml:"target_monthly_income"` // 万円 per month after graduation
	MonthlySavings      int    `json:"monthly_savings" yaml:"monthly_savings"`             // 万円 saved per freelance month
	StartDate           string `json:"start_date" yaml:"start_date"`                       // YYYY-MM-DD
	ShowGrid            bool   `json:"show_grid" yaml:"show_grid"`                         // graph-paper background
	ShowIcons           bool   `json:"show_icons" yaml:"show_icons"`                       // doodle layer
}

// DefaultInput mirrors the form's initial state: the 6-month plan starting today.
func DefaultInput(now time.Time) Input {
	return Input{
		PlanKey:             6,
		TargetMonthlyIncome: 40,
		MonthlySavings:      25,
		StartDate:           now.Format(DateLayout),
		ShowGrid:            true,
		ShowIcons:           true,
	}
}

// DateLayout is the wire format of Input.StartDate.
const DateLayout = "2006-01-02"

// --- Data Structs ---

// Data is the normalized record the diagram is drawn from. It is produced by
// Calculate and never mutated afterwards.
type Data struct {
	PlanKey           int `json:"plan_key"`
	TotalMonths       int `json:"total_months"`
	LearningMonths    int `json:"learning_months"`
	AcquisitionMonths int `json:"acquisition_months"` // job-hunting phase
	FreelanceMonths   int `json:"freelance_months"`   // HorizonMonths - TotalMonths

	TargetMonthlyIncome int `json:"target_monthly_income"`
	MonthlySavings      int `json:"monthly_savings"`

	AcquisitionIncomePerMonth float64 `json:"acquisition_income_per_month"` // average during acquisition
	AcquisitionTotalIncome    float64 `json:"acquisition_total_income"`
	TotalSavings              int     `json:"total_savings"` // savings over the freelance phase

	StartDate       time.Time `json:"start_date"`
	LearningEndDate time.Time `json:"learning_end_date"`
	GraduationDate  time.Time `json:"graduation_date"` // end of acquisition

	ShowGrid  bool `json:"show_grid"`
	ShowIcons bool `json:"show_icons"`
}
