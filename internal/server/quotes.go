package server

import (
	"fmt"
	"strings"

	"github.com/piquette/finance-go/quote"
)

// YahooQuoteSource pulls real market prices from Yahoo Finance.
type YahooQuoteSource struct{}

func (YahooQuoteSource) Price(symbol string) (float64, error) {
	q, err := quote.Get(symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
	}
	if q == nil {
		return 0, fmt.Errorf("no quote data for %s", symbol)
	}
	return q.RegularMarketPrice, nil
}

// SyntheticQuoteSource derives a stable fake price from the symbol, for
// offline demos and tests.
type SyntheticQuoteSource struct{}

func (SyntheticQuoteSource) Price(symbol string) (float64, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return 0, fmt.Errorf("symbol cannot be empty")
	}
	return 20 + float64(symbolHash(symbol)%2000)/10, nil
}

// FallbackQuoteSource tries the primary source and falls back to the
// secondary when it fails.
type FallbackQuoteSource struct {
	Primary   QuoteSource
	Secondary QuoteSource
}

func (f FallbackQuoteSource) Price(symbol string) (float64, error) {
	price, err := f.Primary.Price(symbol)
	if err == nil {
		return price, nil
	}
	return f.Secondary.Price(symbol)
}
