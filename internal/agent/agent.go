// Package agent drives the budget-aware analysis workflows. Every paid
// call goes through the spend ledger's budget gate first, gets recorded
// after the attempt, and feeds the pure decision policy that picks the
// next tier or terminates the workflow.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erikvoss/paytrader/internal/ledger"
	"github.com/erikvoss/paytrader/internal/logging"
	"github.com/erikvoss/paytrader/internal/models"
	"github.com/erikvoss/paytrader/internal/paidcall"
)

// Workflow states, logged as each tier resolves.
const (
	stateSignalFetched     = "SignalFetched"
	stateSentimentFetched  = "SentimentFetched"
	statePredictionFetched = "PredictionFetched"
	stateTerminated        = "Terminated"
)

// Escalation thresholds used by the workflows.
const (
	deepEscalationThreshold  = 0.7 // deep analysis: signal strength gate before sentiment
	batchEscalationThreshold = 0.8 // batch: signal strength gate before full deep analysis
	batchBudgetStopRatio     = 0.9 // batch: stop processing at 90% utilization
)

// NewsProvider supplies the text analyzed by the sentiment tier.
type NewsProvider interface {
	FetchContext(ctx context.Context, symbol string) (string, error)
}

// Costs holds the fixed price of each tier.
type Costs struct {
	Signal     decimal.Decimal
	Sentiment  decimal.Decimal
	Prediction decimal.Decimal
}

// Agent owns one spend ledger and runs analysis workflows against a
// paid-service provider. Agents do not share state; each instance has
// its own budget.
type Agent struct {
	id       string
	costs    Costs
	executor paidcall.Executor
	ledger   *ledger.SpendLedger
	news     NewsProvider
	log      *logging.Logger
}

// New creates an agent with the given budget cap.
func New(id string, cap decimal.Decimal, costs Costs, executor paidcall.Executor, news NewsProvider, log *logging.Logger) *Agent {
	return &Agent{
		id:       id,
		costs:    costs,
		executor: executor,
		ledger:   ledger.New(cap),
		news:     news,
		log:      log,
	}
}

// ID returns the agent identifier.
func (a *Agent) ID() string {
	return a.id
}

// Ledger exposes the agent's spend ledger for reporting.
func (a *Agent) Ledger() *ledger.SpendLedger {
	return a.ledger
}

// call is the budget gate every paid call passes through: affordability
// check, execution, then mandatory bookkeeping of the attempt.
func (a *Agent) call(ctx context.Context, endpoint string, cost decimal.Decimal, method string, payload interface{}, out interface{}) error {
	if !a.ledger.CanAfford(cost) {
		return &BudgetExceededError{
			Endpoint:  endpoint,
			Cost:      cost,
			Remaining: a.ledger.Remaining(),
		}
	}

	result, err := a.executor.Call(ctx, endpoint, cost, method, payload)
	if err != nil {
		a.ledger.RecordFailure(endpoint, cost, err.Error())
		return err
	}
	a.ledger.RecordSuccess(endpoint, cost, result.Duration, result.RequestID)

	if err := json.Unmarshal(result.Data, out); err != nil {
		return fmt.Errorf("malformed response from %s: %w", endpoint, err)
	}
	return nil
}

type validator interface {
	Validate() error
}

func (a *Agent) callValidated(ctx context.Context, endpoint string, cost decimal.Decimal, method string, payload interface{}, out validator) error {
	if err := a.call(ctx, endpoint, cost, method, payload, out); err != nil {
		return err
	}
	if err := out.Validate(); err != nil {
		return fmt.Errorf("malformed response from %s: %w", endpoint, err)
	}
	return nil
}

func (a *Agent) fetchSignal(ctx context.Context, symbol string) (*models.MarketSignal, error) {
	var signal models.MarketSignal
	endpoint := "/api/signal/" + symbol
	if err := a.callValidated(ctx, endpoint, a.costs.Signal, paidcall.MethodGet, nil, &signal); err != nil {
		return nil, err
	}
	a.logState(symbol, stateSignalFetched)
	return &signal, nil
}

func (a *Agent) fetchSentiment(ctx context.Context, symbol string) (*models.SentimentResult, error) {
	text, err := a.news.FetchContext(ctx, symbol)
	if err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("news context for %s unavailable: %v", symbol, err)}
	}
	if text == "" {
		return nil, &ConfigurationError{Reason: "news context for " + symbol + " is empty"}
	}

	var sentiment models.SentimentResult
	payload := map[string]string{"symbol": symbol, "text": text}
	if err := a.callValidated(ctx, "/api/sentiment", a.costs.Sentiment, paidcall.MethodPost, payload, &sentiment); err != nil {
		return nil, err
	}
	a.logState(symbol, stateSentimentFetched)
	return &sentiment, nil
}

func (a *Agent) fetchPrediction(ctx context.Context, symbol string) (*models.Prediction, error) {
	var prediction models.Prediction
	endpoint := "/api/predict/" + symbol
	if err := a.callValidated(ctx, endpoint, a.costs.Prediction, paidcall.MethodGet, nil, &prediction); err != nil {
		return nil, err
	}
	a.logState(symbol, statePredictionFetched)
	return &prediction, nil
}

func (a *Agent) logState(symbol, state string) {
	a.log.Debug("workflow transition",
		logging.String("agent", a.id),
		logging.String("symbol", symbol),
		logging.String("state", state),
		logging.String("spent", a.ledger.SpentToday().String()),
	)
}

func (a *Agent) decide(symbol, action, reason string, confidence float64, spent decimal.Decimal) *models.Decision {
	a.logState(symbol, stateTerminated)
	return &models.Decision{
		Symbol:     symbol,
		Action:     action,
		Reason:     reason,
		Confidence: confidence,
		TotalSpent: spent,
		Timestamp:  time.Now(),
	}
}
