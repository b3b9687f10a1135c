package agent

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/erikvoss/paytrader/internal/logging"
	"github.com/erikvoss/paytrader/internal/models"
	"github.com/erikvoss/paytrader/internal/policy"
)

// DeepAnalysis runs the unconditional escalation path for one symbol:
// signal, then sentiment when the signal is strong enough, then
// prediction when sentiment is positive and the trend bullish. Early
// exits terminate with HOLD and the spend accumulated so far.
func (a *Agent) DeepAnalysis(ctx context.Context, symbol string) (*models.Decision, error) {
	signal, err := a.fetchSignal(ctx, symbol)
	if err != nil {
		return nil, err
	}
	spent := a.costs.Signal

	if signal.Strength <= deepEscalationThreshold {
		reason := fmt.Sprintf("signal strength %.2f below escalation threshold", signal.Strength)
		return a.decide(symbol, models.ActionHold, reason, 0, spent), nil
	}

	sentiment, err := a.fetchSentiment(ctx, symbol)
	if err != nil {
		return nil, err
	}
	spent = spent.Add(a.costs.Sentiment)

	if sentiment.Sentiment != models.SentimentPositive || signal.Trend != models.TrendBullish {
		reason := fmt.Sprintf("no confirmation for prediction: sentiment %s, trend %s",
			sentiment.Sentiment, signal.Trend)
		return a.decide(symbol, models.ActionHold, reason, 0, spent), nil
	}

	prediction, err := a.fetchPrediction(ctx, symbol)
	if err != nil {
		return nil, err
	}
	spent = spent.Add(a.costs.Prediction)

	action := policy.FinalDecision(prediction.PercentChange, prediction.Confidence, sentiment.Sentiment)
	reason := fmt.Sprintf("predicted change %.2f%% with confidence %.2f", prediction.PercentChange, prediction.Confidence)
	return a.decide(symbol, action, reason, prediction.Confidence, spent), nil
}

// SmartAnalysis adapts spend to the strength of the cheap signal: weak
// signals cost one tier, medium signals buy a sentiment check before
// committing to a prediction, strong signals go straight to prediction.
func (a *Agent) SmartAnalysis(ctx context.Context, symbol string) (*models.Decision, error) {
	signal, err := a.fetchSignal(ctx, symbol)
	if err != nil {
		return nil, err
	}
	spent := a.costs.Signal

	switch policy.ClassifySignal(signal.Strength) {
	case policy.BandWeak:
		reason := fmt.Sprintf("weak signal (strength %.2f), not worth further spend", signal.Strength)
		return a.decide(symbol, models.ActionPass, reason, 0, spent), nil

	case policy.BandMedium:
		sentiment, err := a.fetchSentiment(ctx, symbol)
		if err != nil {
			return nil, err
		}
		spent = spent.Add(a.costs.Sentiment)

		if !policy.ConfirmsSignal(sentiment.Sentiment, signal.Trend) {
			reason := fmt.Sprintf("sentiment %s does not confirm trend %s", sentiment.Sentiment, signal.Trend)
			return a.decide(symbol, models.ActionHold, reason, 0, spent), nil
		}

		prediction, err := a.fetchPrediction(ctx, symbol)
		if err != nil {
			return nil, err
		}
		spent = spent.Add(a.costs.Prediction)

		action := policy.FinalDecision(prediction.PercentChange, prediction.Confidence, sentiment.Sentiment)
		reason := fmt.Sprintf("confirmed medium signal, predicted change %.2f%%", prediction.PercentChange)
		return a.decide(symbol, action, reason, prediction.Confidence, spent), nil

	default: // strong
		prediction, err := a.fetchPrediction(ctx, symbol)
		if err != nil {
			return nil, err
		}
		spent = spent.Add(a.costs.Prediction)

		action := policy.FinalDecision(prediction.PercentChange, prediction.Confidence, trendSentiment(signal.Trend))
		reason := fmt.Sprintf("strong signal (strength %.2f), predicted change %.2f%%", signal.Strength, prediction.PercentChange)
		return a.decide(symbol, action, reason, prediction.Confidence, spent), nil
	}
}

// trendSentiment stands in for the skipped sentiment tier on the strong
// path, treating the strong trend itself as the sentiment evidence.
func trendSentiment(trend string) string {
	switch trend {
	case models.TrendBullish:
		return models.SentimentPositive
	case models.TrendBearish:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// AnalyzeBatch runs the cost-optimized batch over multiple symbols. Each
// symbol pays for the cheap signal first and is only escalated to a full
// deep analysis when the signal is very strong. Processing stops early
// once spend reaches 90% of the cap; the partial result list is returned.
// Per-symbol failures become ERROR entries and the batch continues.
func (a *Agent) AnalyzeBatch(ctx context.Context, symbols []string) ([]models.Decision, error) {
	results := make([]models.Decision, 0, len(symbols))

	stopAt := a.ledger.Cap().Mul(decimal.NewFromFloat(batchBudgetStopRatio))

	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		decision := a.analyzeOne(ctx, symbol)
		results = append(results, *decision)

		if a.ledger.SpentToday().GreaterThanOrEqual(stopAt) {
			a.log.Info("stopping batch early, budget nearly exhausted",
				logging.String("agent", a.id),
				logging.String("spent", a.ledger.SpentToday().String()),
				logging.String("cap", a.ledger.Cap().String()),
			)
			break
		}
	}

	return results, nil
}

func (a *Agent) analyzeOne(ctx context.Context, symbol string) *models.Decision {
	signal, err := a.fetchSignal(ctx, symbol)
	if err != nil {
		return a.decide(symbol, models.ActionError, err.Error(), 0, decimal.Zero)
	}

	if signal.Strength <= batchEscalationThreshold {
		return a.decide(symbol, models.ActionSkip, "weak signal", 0, a.costs.Signal)
	}

	decision, err := a.DeepAnalysis(ctx, symbol)
	if err != nil {
		return a.decide(symbol, models.ActionError, err.Error(), 0, decimal.Zero)
	}
	return decision
}
