package models

import "fmt"

// Trend labels returned by the market signal service.
const (
	TrendBullish = "bullish"
	TrendBearish = "bearish"
	TrendNeutral = "neutral"
)

// Sentiment labels returned by the sentiment service.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// MarketSignal is the payload of the cheap signal tier.
type MarketSignal struct {
	Symbol     string  `json:"symbol"`
	Price      float64 `json:"price"`
	Trend      string  `json:"trend"`
	Strength   float64 `json:"strength"`
	Volatility float64 `json:"volatility"`
	Volume     int64   `json:"volume"`
}

// Validate rejects malformed signal payloads instead of trusting them.
func (s *MarketSignal) Validate() error {
	switch s.Trend {
	case TrendBullish, TrendBearish, TrendNeutral:
	default:
		return fmt.Errorf("invalid trend %q", s.Trend)
	}
	if s.Strength < 0 || s.Strength > 1 {
		return fmt.Errorf("signal strength %v out of range [0,1]", s.Strength)
	}
	return nil
}

// SentimentResult is the payload of the mid-cost sentiment tier.
type SentimentResult struct {
	Symbol    string  `json:"symbol"`
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
}

func (s *SentimentResult) Validate() error {
	switch s.Sentiment {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
	default:
		return fmt.Errorf("invalid sentiment %q", s.Sentiment)
	}
	return nil
}

// Prediction is the payload of the expensive prediction tier.
type Prediction struct {
	Symbol         string  `json:"symbol"`
	CurrentPrice   float64 `json:"current_price"`
	PredictedPrice float64 `json:"predicted_price"`
	PercentChange  float64 `json:"percent_change"`
	Confidence     float64 `json:"confidence"`
}

func (p *Prediction) Validate() error {
	if p.Confidence < 0 || p.Confidence > 1 {
		return fmt.Errorf("prediction confidence %v out of range [0,1]", p.Confidence)
	}
	return nil
}
