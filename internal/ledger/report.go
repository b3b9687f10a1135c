package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erikvoss/paytrader/internal/models"
)

// BuildReport computes a spending report from the current ledger state.
// It is purely derived and safe to call at any point, including between
// workflow tiers.
func BuildReport(agent string, l *SpendLedger) models.SpendingReport {
	txs := l.Transactions()
	spent := l.SpentToday()
	cap := l.Cap()

	summary := models.TransactionSummary{Total: len(txs)}
	for _, tx := range txs {
		if tx.Status == models.TxSuccess {
			summary.Successful++
		} else {
			summary.Failed++
		}
	}
	if summary.Total > 0 {
		summary.SuccessRatePercent = float64(summary.Successful) / float64(summary.Total) * 100
	}

	// Per-endpoint aggregation, first-seen order.
	index := make(map[string]int)
	var endpoints []models.EndpointReport
	for _, tx := range txs {
		i, ok := index[tx.Endpoint]
		if !ok {
			i = len(endpoints)
			index[tx.Endpoint] = i
			endpoints = append(endpoints, models.EndpointReport{Endpoint: tx.Endpoint})
		}
		endpoints[i].Count++
		endpoints[i].TotalCost = endpoints[i].TotalCost.Add(tx.Cost)
	}

	var utilization float64
	if cap.IsPositive() {
		util, _ := spent.Div(cap).Mul(decimal.NewFromInt(100)).Float64()
		utilization = util
	}

	return models.SpendingReport{
		Agent: agent,
		Budget: models.BudgetSummary{
			Cap:                cap,
			Spent:              spent,
			Remaining:          cap.Sub(spent),
			UtilizationPercent: utilization,
		},
		Transactions: summary,
		Endpoints:    endpoints,
		GeneratedAt:  time.Now(),
	}
}
