package paidcall_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/erikvoss/paytrader/internal/logging"
	"github.com/erikvoss/paytrader/internal/models"
	"github.com/erikvoss/paytrader/internal/paidcall"
	"github.com/erikvoss/paytrader/internal/server"
)

func newProvider(t *testing.T) *httptest.Server {
	t.Helper()
	srv := server.New(server.SyntheticQuoteSource{}, logging.NewNop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestCallSignalEndToEnd(t *testing.T) {
	ts := newProvider(t)
	client := paidcall.NewClient(ts.URL, "demo-token", logging.NewNop())

	result, err := client.Call(context.Background(), "/api/signal/ACME",
		decimal.NewFromFloat(0.005), paidcall.MethodGet, nil)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	if result.RequestID == "" {
		t.Error("expected a request id")
	}

	var signal models.MarketSignal
	if err := json.Unmarshal(result.Data, &signal); err != nil {
		t.Fatalf("unmarshal signal: %v", err)
	}
	if err := signal.Validate(); err != nil {
		t.Errorf("invalid signal: %v", err)
	}
	if signal.Symbol != "ACME" {
		t.Errorf("unexpected symbol %q", signal.Symbol)
	}
}

func TestCallWithoutPaymentIsTransportError(t *testing.T) {
	ts := newProvider(t)
	client := paidcall.NewClient(ts.URL, "", logging.NewNop())

	_, err := client.Call(context.Background(), "/api/signal/ACME",
		decimal.NewFromFloat(0.005), paidcall.MethodGet, nil)

	var transportErr *paidcall.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if transportErr.Status != 402 {
		t.Errorf("expected status 402, got %d", transportErr.Status)
	}
}

func TestDiscover(t *testing.T) {
	ts := newProvider(t)
	client := paidcall.NewClient(ts.URL, "demo-token", logging.NewNop())

	services, err := client.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(services) != 3 {
		t.Fatalf("expected 3 services, got %d", len(services))
	}

	names := map[string]bool{}
	for _, svc := range services {
		names[svc.Name] = true
	}
	for _, want := range []string{"market-signal", "sentiment", "prediction"} {
		if !names[want] {
			t.Errorf("catalog missing %s", want)
		}
	}
}

func TestCallSentimentPost(t *testing.T) {
	ts := newProvider(t)
	client := paidcall.NewClient(ts.URL, "demo-token", logging.NewNop())

	payload := map[string]string{"symbol": "ACME", "text": "ACME beats expectations, record growth"}
	result, err := client.Call(context.Background(), "/api/sentiment",
		decimal.NewFromFloat(0.01), paidcall.MethodPost, payload)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	var sentiment models.SentimentResult
	if err := json.Unmarshal(result.Data, &sentiment); err != nil {
		t.Fatalf("unmarshal sentiment: %v", err)
	}
	if sentiment.Sentiment != models.SentimentPositive {
		t.Errorf("expected positive sentiment, got %s", sentiment.Sentiment)
	}
}
