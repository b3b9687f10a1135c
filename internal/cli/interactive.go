package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/erikvoss/paytrader/internal/display"
)

// runInteractive drives a single analysis through prompts.
func runInteractive(a *app) error {
	symbol, err := promptSymbol()
	if err != nil {
		return err
	}

	workflow, err := promptWorkflow()
	if err != nil {
		return err
	}

	confirmed := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Run %s analysis for %s with a $%s budget cap?", workflow, symbol, a.cfg.BudgetCap),
		Default: true,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Aborted.")
		return nil
	}

	ag := a.newAgent()
	ctx := context.Background()

	switch workflow {
	case "deep":
		decision, err := ag.DeepAnalysis(ctx, symbol)
		if err != nil {
			a.printReport(ag)
			return err
		}
		fmt.Println(display.RenderDecision(decision))
		a.publish(*decision)
	case "smart":
		decision, err := ag.SmartAnalysis(ctx, symbol)
		if err != nil {
			a.printReport(ag)
			return err
		}
		fmt.Println(display.RenderDecision(decision))
		a.publish(*decision)
	}

	a.printReport(ag)
	return nil
}

func promptSymbol() (string, error) {
	var symbol string
	prompt := &survey.Input{
		Message: "Stock symbol to analyze:",
		Help:    "Ticker symbol, e.g. AAPL",
	}

	err := survey.AskOne(prompt, &symbol, survey.WithValidator(func(val interface{}) error {
		s, ok := val.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return fmt.Errorf("symbol is required")
		}
		if len(s) > 6 {
			return fmt.Errorf("symbol looks too long")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.ToUpper(strings.TrimSpace(symbol)), nil
}

func promptWorkflow() (string, error) {
	var choice string
	prompt := &survey.Select{
		Message: "Analysis workflow:",
		Options: []string{
			"smart - adapt spend to signal strength",
			"deep - always escalate when thresholds allow",
		},
		Default: "smart - adapt spend to signal strength",
	}

	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", err
	}
	return strings.SplitN(choice, " ", 2)[0], nil
}
