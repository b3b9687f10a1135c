package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade actions produced by the workflows.
const (
	ActionBuy   = "BUY"
	ActionSell  = "SELL"
	ActionHold  = "HOLD"
	ActionPass  = "PASS"
	ActionSkip  = "SKIP"
	ActionError = "ERROR"
)

// Decision is the terminal result of one workflow invocation for a symbol.
type Decision struct {
	Symbol     string          `json:"symbol"`
	Action     string          `json:"action"`
	Reason     string          `json:"reason"`
	Confidence float64         `json:"confidence,omitempty"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	Timestamp  time.Time       `json:"timestamp"`
}
