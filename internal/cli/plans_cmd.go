package cli

import (
	"fmt"
	"strconv"

	"github.com/buffos/go-roadmap/internal/roadmap"
	"github.com/spf13/cobra"
)

func newPlansCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List the selectable plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(roadmap.Plans()))
			for _, p := range roadmap.Plans() {
				rows = append(rows, []string{
					strconv.Itoa(p.Key),
					p.Label,
					styleLearning.Render(fmt.Sprintf("%dヶ月", p.LearningMonths)),
					styleAcquisition.Render(fmt.Sprintf("%dヶ月", p.AcquisitionMonths)),
					roadmap.FormatMan(float64(p.AcquisitionTotalIncome)),
					styleFreelance.Render(roadmap.YearsLabel(roadmap.HorizonMonths - p.TotalMonths)),
				})
			}
			headers := []string{"KEY", "PLAN", "LEARNING", "ACQUISITION", "ACQ. INCOME", "FREELANCE"}
			fmt.Fprint(cmd.OutOrStdout(), renderTable(headers, rows))
			return nil
		},
	}
}
