package agent

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BudgetExceededError is raised locally when a call would push spend
// over the cap. The executor is never invoked in that case and no
// transaction is recorded.
type BudgetExceededError struct {
	Endpoint  string
	Cost      decimal.Decimal
	Remaining decimal.Decimal
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("budget exceeded: %s costs %s but only %s remains",
		e.Endpoint, e.Cost, e.Remaining)
}

// ConfigurationError signals a missing required collaborator input, such
// as absent news text for the sentiment tier. It is fatal for the
// workflow invocation and never retried.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}
