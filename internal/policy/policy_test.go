package policy

import (
	"testing"

	"github.com/erikvoss/paytrader/internal/models"
)

func TestClassifySignalBoundaries(t *testing.T) {
	cases := []struct {
		strength float64
		want     SignalBand
	}{
		{0.0, BandWeak},
		{0.3, BandWeak},
		{0.4999, BandWeak},
		{0.5, BandMedium},
		{0.6, BandMedium},
		{0.7999, BandMedium},
		{0.8, BandStrong},
		{0.9, BandStrong},
		{1.0, BandStrong},
	}

	for _, c := range cases {
		if got := ClassifySignal(c.strength); got != c.want {
			t.Errorf("ClassifySignal(%v) = %s, want %s", c.strength, got, c.want)
		}
	}
}

func TestConfirmsSignalLiteralMatch(t *testing.T) {
	if !ConfirmsSignal("bullish", "bullish") {
		t.Error("identical labels should confirm")
	}
	if !ConfirmsSignal("neutral", "neutral") {
		t.Error("neutral/neutral should confirm")
	}
	// The sentiment vocabulary never matches bullish/bearish trends,
	// preserved from the upstream behavior.
	if ConfirmsSignal("positive", "bullish") {
		t.Error("positive should not confirm bullish under literal matching")
	}
}

func TestFinalDecision(t *testing.T) {
	cases := []struct {
		name       string
		change     float64
		confidence float64
		sentiment  string
		want       string
	}{
		{"strong buy", 6.0, 0.8, models.SentimentPositive, models.ActionBuy},
		{"buy blocked by sentiment", 6.0, 0.8, models.SentimentNeutral, models.ActionHold},
		{"buy blocked by confidence", 6.0, 0.7, models.SentimentPositive, models.ActionHold},
		{"change tie stays hold", 5.0, 0.9, models.SentimentPositive, models.ActionHold},
		{"strong sell", -6.0, 0.8, models.SentimentNegative, models.ActionSell},
		{"sell ignores sentiment", -6.0, 0.8, models.SentimentPositive, models.ActionSell},
		{"sell tie stays hold", -5.0, 0.9, models.SentimentNegative, models.ActionHold},
		{"sell blocked by confidence", -6.0, 0.7, models.SentimentNegative, models.ActionHold},
		{"flat is hold", 1.0, 0.99, models.SentimentPositive, models.ActionHold},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := FinalDecision(c.change, c.confidence, c.sentiment); got != c.want {
				t.Errorf("FinalDecision(%v, %v, %s) = %s, want %s",
					c.change, c.confidence, c.sentiment, got, c.want)
			}
		})
	}
}
