// Package policy holds the pure decision rules of the agent: signal
// classification, sentiment confirmation, and the final trade decision.
// Nothing here touches the network or the ledger.
package policy

import "github.com/erikvoss/paytrader/internal/models"

// SignalBand is the strength class of a market signal.
type SignalBand int

const (
	BandWeak SignalBand = iota
	BandMedium
	BandStrong
)

func (b SignalBand) String() string {
	switch b {
	case BandWeak:
		return "weak"
	case BandMedium:
		return "medium"
	case BandStrong:
		return "strong"
	default:
		return "unknown"
	}
}

// Band thresholds. Boundary values belong to the higher band.
const (
	MediumThreshold = 0.5
	StrongThreshold = 0.8
)

// Final decision thresholds. Ties fall to HOLD.
const (
	BuyChangeThreshold  = 5.0
	SellChangeThreshold = -5.0
	ConfidenceThreshold = 0.7
)

// ClassifySignal maps a signal strength to its band.
func ClassifySignal(strength float64) SignalBand {
	switch {
	case strength >= StrongThreshold:
		return BandStrong
	case strength >= MediumThreshold:
		return BandMedium
	default:
		return BandWeak
	}
}

// ConfirmsSignal reports whether the sentiment label confirms the market
// trend. The comparison is a literal label match, so a "positive"
// sentiment does not confirm a "bullish" trend even though that is
// almost certainly what was meant; the upstream services conflate the
// two label sets and this preserves their behavior. Only "neutral"
// exists in both vocabularies.
func ConfirmsSignal(sentiment, trend string) bool {
	return sentiment == trend
}

// FinalDecision maps a prediction plus the observed sentiment label to a
// trade action. Thresholds are strict: a 5% change or 0.7 confidence on
// the nose stays HOLD.
func FinalDecision(percentChange, confidence float64, sentimentLabel string) string {
	if percentChange > BuyChangeThreshold && confidence > ConfidenceThreshold && sentimentLabel == models.SentimentPositive {
		return models.ActionBuy
	}
	if percentChange < SellChangeThreshold && confidence > ConfidenceThreshold {
		return models.ActionSell
	}
	return models.ActionHold
}
