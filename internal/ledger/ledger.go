package ledger

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erikvoss/paytrader/internal/models"
)

// SpendLedger tracks cumulative spend against a hard cap and keeps an
// append-only record of every attempted paid call. The cap is fixed at
// construction; spend only grows for the lifetime of the process.
//
// The mutex makes check-and-debit safe if batch symbols are ever
// processed concurrently; with the default sequential workflows it is
// uncontended.
type SpendLedger struct {
	mu           sync.Mutex
	cap          decimal.Decimal
	spentToday   decimal.Decimal
	transactions []models.Transaction
}

// New creates a ledger with the given budget cap.
func New(cap decimal.Decimal) *SpendLedger {
	return &SpendLedger{cap: cap}
}

// CanAfford reports whether a call of the given cost fits in the
// remaining budget. Callers must check this immediately before every
// paid call.
func (l *SpendLedger) CanAfford(amount decimal.Decimal) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cap.Sub(l.spentToday).GreaterThanOrEqual(amount)
}

// RecordSuccess appends a success transaction and debits the budget.
func (l *SpendLedger) RecordSuccess(endpoint string, amount decimal.Decimal, duration time.Duration, requestID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.spentToday = l.spentToday.Add(amount)
	l.transactions = append(l.transactions, models.Transaction{
		Timestamp: time.Now(),
		Endpoint:  endpoint,
		Cost:      amount,
		Status:    models.TxSuccess,
		Duration:  duration,
		RequestID: requestID,
	})
}

// RecordFailure appends a failed transaction. Failed calls are not
// charged, so spentToday is left untouched.
func (l *SpendLedger) RecordFailure(endpoint string, amount decimal.Decimal, errMsg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = append(l.transactions, models.Transaction{
		Timestamp: time.Now(),
		Endpoint:  endpoint,
		Cost:      amount,
		Status:    models.TxFailed,
		Error:     errMsg,
	})
}

// Cap returns the immutable budget cap.
func (l *SpendLedger) Cap() decimal.Decimal {
	return l.cap
}

// SpentToday returns the cumulative spend so far.
func (l *SpendLedger) SpentToday() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.spentToday
}

// Remaining returns cap minus spend.
func (l *SpendLedger) Remaining() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cap.Sub(l.spentToday)
}

// Transactions returns a copy of the transaction history in
// chronological order.
func (l *SpendLedger) Transactions() []models.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}
