package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction outcomes.
const (
	TxSuccess = "success"
	TxFailed  = "failed"
)

// Transaction records one attempted paid call. Records are immutable
// once created and owned by the ledger.
type Transaction struct {
	Timestamp time.Time       `json:"timestamp"`
	Endpoint  string          `json:"endpoint"`
	Cost      decimal.Decimal `json:"cost"`
	Status    string          `json:"status"`
	Duration  time.Duration   `json:"duration"`
	RequestID string          `json:"request_id,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// BudgetSummary is the budget portion of a spending report.
type BudgetSummary struct {
	Cap                decimal.Decimal `json:"cap"`
	Spent              decimal.Decimal `json:"spent"`
	Remaining          decimal.Decimal `json:"remaining"`
	UtilizationPercent float64         `json:"utilization_percent"`
}

// TransactionSummary is the transaction portion of a spending report.
type TransactionSummary struct {
	Total              int     `json:"total"`
	Successful         int     `json:"successful"`
	Failed             int     `json:"failed"`
	SuccessRatePercent float64 `json:"success_rate_percent"`
}

// SpendingReport is a derived snapshot of ledger state. It is recomputed
// on demand and never stored.
type SpendingReport struct {
	Agent        string             `json:"agent"`
	Budget       BudgetSummary      `json:"budget"`
	Transactions TransactionSummary `json:"transactions"`
	Endpoints    []EndpointReport   `json:"endpoints"`
	GeneratedAt  time.Time          `json:"generated_at"`
}

// EndpointReport is one per-endpoint aggregation row, in first-seen order.
type EndpointReport struct {
	Endpoint  string          `json:"endpoint"`
	Count     int             `json:"count"`
	TotalCost decimal.Decimal `json:"total_cost"`
}
