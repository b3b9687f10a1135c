package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erikvoss/paytrader/internal/logging"
	"github.com/erikvoss/paytrader/internal/models"
)

func newTestServer() *Server {
	return New(SyntheticQuoteSource{}, logging.NewNop())
}

func TestCatalogIsFree(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for catalog, got %d", rec.Code)
	}

	var body struct {
		Services []struct {
			Name  string `json:"name"`
			Price string `json:"price"`
		} `json:"services"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	if len(body.Services) != 3 {
		t.Errorf("expected 3 services, got %d", len(body.Services))
	}
}

func TestUnpaidRequestGets402(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/signal/ACME", nil))

	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", rec.Code)
	}

	var body struct {
		Price string `json:"price"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode payment requirements: %v", err)
	}
	if body.Price != "0.005" {
		t.Errorf("expected signal price in requirements, got %q", body.Price)
	}
}

func TestPaidSignalRequest(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/signal/acme", nil)
	req.Header.Set("X-Payment", "demo-token")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("expected a request id on paid responses")
	}

	var signal models.MarketSignal
	if err := json.NewDecoder(rec.Body).Decode(&signal); err != nil {
		t.Fatalf("decode signal: %v", err)
	}
	if signal.Symbol != "ACME" {
		t.Errorf("symbol not normalized: %q", signal.Symbol)
	}
	if err := signal.Validate(); err != nil {
		t.Errorf("served signal is malformed: %v", err)
	}
}

func TestSentimentScoring(t *testing.T) {
	srv := newTestServer()

	cases := []struct {
		text string
		want string
	}{
		{"ACME beats expectations with record growth", models.SentimentPositive},
		{"ACME faces lawsuit after product recall", models.SentimentNegative},
		{"ACME holds annual shareholder meeting", models.SentimentNeutral},
	}

	for _, c := range cases {
		payload := `{"symbol":"ACME","text":"` + c.text + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/sentiment", strings.NewReader(payload))
		req.Header.Set("X-Payment", "demo-token")

		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var result models.SentimentResult
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decode sentiment: %v", err)
		}
		if result.Sentiment != c.want {
			t.Errorf("text %q scored %s, want %s", c.text, result.Sentiment, c.want)
		}
	}
}

func TestSentimentRequiresText(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/api/sentiment", strings.NewReader(`{"symbol":"ACME","text":""}`))
	req.Header.Set("X-Payment", "demo-token")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty text, got %d", rec.Code)
	}
}

func TestPredictionIsConsistent(t *testing.T) {
	srv := newTestServer()

	fetch := func() models.Prediction {
		req := httptest.NewRequest(http.MethodGet, "/api/predict/ACME", nil)
		req.Header.Set("X-Payment", "demo-token")
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var p models.Prediction
		if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
			t.Fatalf("decode prediction: %v", err)
		}
		return p
	}

	a, b := fetch(), fetch()
	if a.PercentChange != b.PercentChange || a.CurrentPrice != b.CurrentPrice {
		t.Errorf("synthetic predictions should be stable: %+v vs %+v", a, b)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("served prediction is malformed: %v", err)
	}
}
