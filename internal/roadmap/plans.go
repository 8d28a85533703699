package roadmap

import (
	"errors"
	"fmt"
)

// ErrUnknownPlan is returned for a plan key outside the plan table.
var ErrUnknownPlan = errors.New("unknown plan")

// Plan is one selectable course length.
type Plan struct {
	Key                    int    `json:"key"`
	Label                  string `json:"label"`
	TotalMonths            int    `json:"total_months"`
	LearningMonths         int    `json:"learning_months"`
	AcquisitionMonths      int    `json:"acquisition_months"`
	AcquisitionTotalIncome int    `json:"acquisition_total_income"` // 万円 over the whole acquisition phase
}

var plans = []Plan{
	{Key: 3, Label: "3ヶ月", TotalMonths: 3, LearningMonths: 2, AcquisitionMonths: 1, AcquisitionTotalIncome: 5},
	{Key: 4, Label: "4ヶ月", TotalMonths: 4, LearningMonths: 2, AcquisitionMonths: 2, AcquisitionTotalIncome: 5},
	{Key: 5, Label: "5ヶ月", TotalMonths: 5, LearningMonths: 4, AcquisitionMonths: 1, AcquisitionTotalIncome: 10},
	{Key: 6, Label: "6ヶ月", TotalMonths: 6, LearningMonths: 4, AcquisitionMonths: 2, AcquisitionTotalIncome: 10},
	{Key: 9, Label: "9ヶ月", TotalMonths: 9, LearningMonths: 8, AcquisitionMonths: 1, AcquisitionTotalIncome: 20},
	{Key: 10, Label: "10ヶ月", TotalMonths: 10, LearningMonths: 8, AcquisitionMonths: 2, AcquisitionTotalIncome: 20},
}

// Plans returns the plan table in display order.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

// LookupPlan returns the plan with the given key.
func LookupPlan(key int) (Plan, error) {
	for _, p := range plans {
		if p.Key == key {
			return p, nil
		}
	}
	return Plan{}, fmt.Errorf("plan %d: %w", key, ErrUnknownPlan)
}
