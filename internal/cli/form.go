package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/buffos/go-roadmap/internal/roadmap"
	"github.com/charmbracelet/huh"
)

// inputForm collects a roadmap.Input, starting from in. Field values are
// bound to strings and parsed once the form completes.
func inputForm(in *roadmap.Input, target, savings *string) *huh.Form {
	options := make([]huh.Option[int], 0, len(roadmap.Plans()))
	for _, p := range roadmap.Plans() {
		label := fmt.Sprintf("%s（学習%dヶ月 + 案件獲得%dヶ月）", p.Label, p.LearningMonths, p.AcquisitionMonths)
		options = append(options, huh.NewOption(label, p.Key))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("プラン").
				Options(options...).
				Value(&in.PlanKey),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("稼ぎたい金額（万円/月）").
				Placeholder("40").
				Value(target).
				Validate(validateAmount(1)),
			huh.NewInput().
				Title("貯金したい金額（万円/月）").
				Placeholder("25").
				Value(savings).
				Validate(validateAmount(0)),
			huh.NewInput().
				Title("開始日 (YYYY-MM-DD)").
				Value(&in.StartDate).
				Validate(validateDate),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("方眼紙の背景").
				Value(&in.ShowGrid),
			huh.NewConfirm().
				Title("イラスト").
				Value(&in.ShowIcons),
		),
	).WithTheme(formTheme()).WithShowHelp(false)
}

// runInputForm asks for every field of in, prefilled with its current values.
func runInputForm(in *roadmap.Input) error {
	target := strconv.Itoa(in.TargetMonthlyIncome)
	savings := strconv.Itoa(in.MonthlySavings)

	if err := inputForm(in, &target, &savings).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errors.New("cancelled")
		}
		return fmt.Errorf("input form: %w", err)
	}

	in.TargetMonthlyIncome, _ = strconv.Atoi(target)
	in.MonthlySavings, _ = strconv.Atoi(savings)
	return nil
}

func validateAmount(minimum int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil || v < minimum || v > roadmap.MaxMonthlyIncome {
			return fmt.Errorf("%d〜%dの整数を入力してください", minimum, roadmap.MaxMonthlyIncome)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse(roadmap.DateLayout, s); err != nil {
		return errors.New("YYYY-MM-DD 形式で入力してください")
	}
	return nil
}
