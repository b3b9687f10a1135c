// Package display renders decisions and spending reports for the
// terminal.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/erikvoss/paytrader/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	buyStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	sellStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	holdStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
)

func actionStyle(action string) lipgloss.Style {
	switch action {
	case models.ActionBuy:
		return buyStyle
	case models.ActionSell:
		return sellStyle
	case models.ActionError:
		return sellStyle
	case models.ActionPass, models.ActionSkip:
		return dimStyle
	default:
		return holdStyle
	}
}

// RenderDecision formats one decision as a bordered block.
func RenderDecision(d *models.Decision) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Symbol) + "  " + actionStyle(d.Action).Render(d.Action) + "\n")
	b.WriteString(labelStyle.Render("Reason:    ") + d.Reason + "\n")
	if d.Confidence > 0 {
		b.WriteString(labelStyle.Render("Confidence: ") + fmt.Sprintf("%.2f", d.Confidence) + "\n")
	}
	b.WriteString(labelStyle.Render("Spent:     ") + "$" + d.TotalSpent.String())
	return boxStyle.Render(b.String())
}

// RenderBatch formats batch results as one compact line per symbol.
func RenderBatch(decisions []models.Decision) string {
	var b strings.Builder
	for _, d := range decisions {
		b.WriteString(fmt.Sprintf("%-8s %s  %s\n",
			d.Symbol,
			actionStyle(d.Action).Render(fmt.Sprintf("%-5s", d.Action)),
			dimStyle.Render(d.Reason)))
	}
	return b.String()
}

// RenderReport formats a spending report.
func RenderReport(r *models.SpendingReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Spending report — "+r.Agent) + "\n\n")

	b.WriteString(labelStyle.Render("Budget") + "\n")
	b.WriteString(fmt.Sprintf("  cap $%s  spent $%s  remaining $%s  (%.1f%% used)\n\n",
		r.Budget.Cap, r.Budget.Spent, r.Budget.Remaining, r.Budget.UtilizationPercent))

	b.WriteString(labelStyle.Render("Calls") + "\n")
	b.WriteString(fmt.Sprintf("  total %d  ok %d  failed %d  success rate %.1f%%\n",
		r.Transactions.Total, r.Transactions.Successful, r.Transactions.Failed,
		r.Transactions.SuccessRatePercent))

	if len(r.Endpoints) > 0 {
		b.WriteString("\n" + labelStyle.Render("Endpoints") + "\n")
		for _, ep := range r.Endpoints {
			b.WriteString(fmt.Sprintf("  %-28s %3d calls  $%s\n", ep.Endpoint, ep.Count, ep.TotalCost))
		}
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
