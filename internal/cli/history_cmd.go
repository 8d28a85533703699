package cli

import (
	"fmt"
	"strconv"

	"github.com/buffos/go-roadmap/internal/roadmap"
	"github.com/buffos/go-roadmap/internal/store"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved roadmaps, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := store.OpenDB(app.Config.Store.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			recs, err := store.NewRoadmaps(db).List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), styleDim.Render("no saved roadmaps"))
				return nil
			}

			rows := make([][]string, 0, len(recs))
			for _, r := range recs {
				rows = append(rows, []string{
					r.ID,
					strconv.Itoa(r.PlanKey),
					roadmap.FormatMan(float64(r.Input.TargetMonthlyIncome)),
					roadmap.FormatMan(float64(r.Input.MonthlySavings)),
					r.Input.StartDate,
					styleDim.Render(r.CreatedAt.Local().Format("2006-01-02 15:04")),
				})
			}
			headers := []string{"ID", "PLAN", "TARGET", "SAVINGS", "START", "CREATED"}
			fmt.Fprint(cmd.OutOrStdout(), renderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of roadmaps (0 for all)")
	return cmd
}
