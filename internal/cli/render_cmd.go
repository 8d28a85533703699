package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/buffos/go-roadmap/internal/export"
	"github.com/buffos/go-roadmap/internal/layout"
	"github.com/buffos/go-roadmap/internal/render"
	"github.com/buffos/go-roadmap/internal/roadmap"
	"github.com/buffos/go-roadmap/internal/store"
	"github.com/buffos/go-roadmap/internal/textmetrics"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type renderOptions struct {
	input       roadmap.Input
	inputFile   string
	interactive bool
	output      string
	format      string
	tree        bool
	save        bool
}

func newRenderCmd(app *App) *cobra.Command {
	opts := &renderOptions{input: roadmap.DefaultInput(app.Now())}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw a roadmap as SVG, PNG, JPEG or PDF",
		Example: `  roadmap render --plan 6 --target 40 --savings 25 -o roadmap.svg
  roadmap render --input plan.yaml -o roadmap.pdf
  roadmap render --interactive --save -o roadmap.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, app, opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.input.PlanKey, "plan", opts.input.PlanKey, "plan length in months (3, 4, 5, 6, 9 or 10)")
	f.IntVar(&opts.input.TargetMonthlyIncome, "target", opts.input.TargetMonthlyIncome, "target monthly income after graduation, in 万円")
	f.IntVar(&opts.input.MonthlySavings, "savings", opts.input.MonthlySavings, "monthly savings during freelance work, in 万円")
	f.StringVar(&opts.input.StartDate, "start", opts.input.StartDate, "start date (YYYY-MM-DD)")
	f.BoolVar(&opts.input.ShowGrid, "grid", opts.input.ShowGrid, "draw the graph-paper background")
	f.BoolVar(&opts.input.ShowIcons, "icons", opts.input.ShowIcons, "draw the doodles")
	f.StringVar(&opts.inputFile, "input", "", "YAML or JSON input file; explicit flags override it")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "fill the input in a form (needs a terminal)")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	f.StringVar(&opts.format, "format", "", "svg, png, jpg or pdf (default: from the output extension, else svg)")
	f.BoolVar(&opts.tree, "tree", false, "write the drawing tree as JSON instead of an image")
	f.BoolVar(&opts.save, "save", false, "store the roadmap in the history database")

	return cmd
}

func runRender(cmd *cobra.Command, app *App, opts *renderOptions) error {
	in := opts.input
	if opts.inputFile != "" {
		fromFile, err := readInput(opts.inputFile, opts.input)
		if err != nil {
			return err
		}
		in = overrideInput(fromFile, opts.input, cmd.Flags())
	}
	if opts.interactive {
		if !app.IsInteractive() {
			return errors.New("--interactive needs a terminal on stdin")
		}
		if err := runInputForm(&in); err != nil {
			return err
		}
	}

	format, err := outputFormat(opts.format, opts.output)
	if err != nil {
		return err
	}

	measurer, err := textmetrics.New()
	if err != nil {
		return err
	}
	defer measurer.Close()

	svc := render.NewService(measurer, app.Config.Render.Seed, app.Logger)
	res, err := svc.Render(in)
	if err != nil {
		var verr *render.ValidationError
		if errors.As(err, &verr) {
			printFieldErrors(cmd.ErrOrStderr(), verr.Fields)
		}
		return err
	}

	var out bytes.Buffer
	switch {
	case opts.tree:
		enc := json.NewEncoder(&out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Tree); err != nil {
			return fmt.Errorf("encoding tree: %w", err)
		}
	case format == export.SVG:
		out.Write(res.SVG)
	default:
		exp := export.New(export.Options{
			Width:       layout.SVGWidth,
			Height:      layout.SVGHeight,
			Scale:       app.Config.Export.Scale,
			JPEGQuality: app.Config.Export.JPEGQuality,
			ChromePath:  app.Config.Export.ChromePath,
		}, app.Logger)
		ctx, cancel := context.WithTimeout(cmd.Context(), app.Config.ExportTimeout())
		defer cancel()
		if err := exp.Export(ctx, res.SVG, format, &out); err != nil {
			return err
		}
	}

	if err := writeOutput(cmd.OutOrStdout(), opts.output, out.Bytes()); err != nil {
		return err
	}
	app.Logger.Info("wrote roadmap", "output", opts.output, "format", format, "bytes", out.Len())

	if opts.save {
		id, err := saveRoadmap(cmd.Context(), app, res)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "saved %s\n", id)
	}
	if opts.output != "" {
		fmt.Fprint(cmd.ErrOrStderr(), summary(res.Data))
	}
	return nil
}

// readInput decodes path over base. yaml.v3 reads JSON documents too.
func readInput(path string, base roadmap.Input) (roadmap.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return roadmap.Input{}, fmt.Errorf("reading input file: %w", err)
	}
	in := base
	if err := yaml.Unmarshal(data, &in); err != nil {
		return roadmap.Input{}, fmt.Errorf("parsing input file: %w", err)
	}
	return in, nil
}

// overrideInput copies the flags the user set explicitly from flagged onto in.
func overrideInput(in, flagged roadmap.Input, flags *pflag.FlagSet) roadmap.Input {
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "plan":
			in.PlanKey = flagged.PlanKey
		case "target":
			in.TargetMonthlyIncome = flagged.TargetMonthlyIncome
		case "savings":
			in.MonthlySavings = flagged.MonthlySavings
		case "start":
			in.StartDate = flagged.StartDate
		case "grid":
			in.ShowGrid = flagged.ShowGrid
		case "icons":
			in.ShowIcons = flagged.ShowIcons
		}
	})
	return in
}

func outputFormat(flag, output string) (export.Format, error) {
	if flag != "" {
		return export.ParseFormat(flag)
	}
	if ext := filepath.Ext(output); ext != "" {
		return export.ParseFormat(ext)
	}
	return export.SVG, nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func saveRoadmap(ctx context.Context, app *App, res *render.Result) (string, error) {
	db, err := store.OpenDB(app.Config.Store.Path)
	if err != nil {
		return "", err
	}
	defer db.Close()

	rec, err := store.NewRoadmaps(db).Save(ctx, res.Input, res.SVG)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func printFieldErrors(w io.Writer, fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s %s\n", styleError.Render(k+":"), fields[k])
	}
}

// summary is the one-glance phase breakdown printed after a file is written.
func summary(d roadmap.Data) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", styleHeader.Render("開始日"), roadmap.DateLabel(d.StartDate))
	fmt.Fprintf(&b, "  %s %dヶ月\n", styleLearning.Render("学習期間"), d.LearningMonths)
	fmt.Fprintf(&b, "  %s %dヶ月  %s\n", styleAcquisition.Render("案件獲得"), d.AcquisitionMonths,
		styleDim.Render("月平均 "+roadmap.FormatMan(d.AcquisitionIncomePerMonth)))
	fmt.Fprintf(&b, "  %s %s  %s\n", styleFreelance.Render("フリーランス"), roadmap.YearsLabel(d.FreelanceMonths),
		styleDim.Render("貯金 "+roadmap.FormatMan(float64(d.TotalSavings))))
	return b.String()
}
