// Package paidcall performs single paid HTTP calls against a provider of
// metered endpoints. The orchestrator is the only caller and is
// responsible for gating every call through the spend ledger first.
package paidcall

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// HTTP methods accepted by Call.
const (
	MethodGet  = "GET"
	MethodPost = "POST"
)

// Result is the outcome of one successful paid call.
type Result struct {
	Data      json.RawMessage
	RequestID string
	Duration  time.Duration
}

// Executor performs one network call against an endpoint. Implementations
// must not be invoked unless the ledger confirmed the cost is affordable
// immediately beforehand.
type Executor interface {
	Call(ctx context.Context, endpoint string, cost decimal.Decimal, method string, payload interface{}) (*Result, error)
}

// TransportError wraps any failure coming back from the provider:
// network errors, protocol errors, and remote rejections alike.
type TransportError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("paid call to %s failed with status %d: %v", e.Endpoint, e.Status, e.Err)
	}
	return fmt.Sprintf("paid call to %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
