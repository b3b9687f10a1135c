// Package server implements the demo paid-services provider: it
// advertises a service catalog, rejects unpaid requests with 402, and
// serves the three analysis tiers the agent consumes. The agent treats
// this process as an external collaborator; it exists so the repository
// runs end to end without a commercial provider.
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/erikvoss/paytrader/internal/logging"
	"github.com/erikvoss/paytrader/internal/paidcall"
)

// Server is the demo provider HTTP server.
type Server struct {
	router *mux.Router
	quotes QuoteSource
	log    *logging.Logger
}

// QuoteSource supplies a current price per symbol. The live source uses
// Yahoo Finance; tests and offline runs use the synthetic one.
type QuoteSource interface {
	Price(symbol string) (float64, error)
}

// New creates the demo server.
func New(quotes QuoteSource, log *logging.Logger) *Server {
	s := &Server{
		router: mux.NewRouter(),
		quotes: quotes,
		log:    log,
	}

	s.router.HandleFunc("/", s.handleCatalog).Methods(http.MethodGet)

	paid := s.router.NewRoute().Subrouter()
	paid.Use(s.requirePayment)
	paid.HandleFunc("/api/signal/{symbol}", s.handleSignal).Methods(http.MethodGet)
	paid.HandleFunc("/api/sentiment", s.handleSentiment).Methods(http.MethodPost)
	paid.HandleFunc("/api/predict/{symbol}", s.handlePredict).Methods(http.MethodGet)

	return s
}

// Handler returns the HTTP handler for mounting.
func (s *Server) Handler() http.Handler {
	return s.router
}

// catalog lists the paid services this provider advertises.
var catalog = []paidcall.ServiceInfo{
	{Name: "market-signal", Endpoint: "/api/signal/{symbol}", Method: "GET", Price: "0.005", Description: "Price, trend and signal strength for a symbol"},
	{Name: "sentiment", Endpoint: "/api/sentiment", Method: "POST", Price: "0.01", Description: "Sentiment analysis of submitted news text"},
	{Name: "prediction", Endpoint: "/api/predict/{symbol}", Method: "GET", Price: "0.05", Description: "Short-term price prediction with confidence"},
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"provider": "paydemo",
		"services": catalog,
	})
}

// requirePayment enforces the payment handshake: requests without a
// payment header get 402 plus the requirements needed to retry.
func (s *Server) requirePayment(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Payment") == "" {
			s.log.Debug("payment required", logging.String("path", r.URL.Path))
			writeJSON(w, http.StatusPaymentRequired, map[string]interface{}{
				"error":  "payment required",
				"accept": []string{"X-Payment"},
				"price":  priceFor(r.URL.Path),
			})
			return
		}

		w.Header().Set("X-Request-Id", uuid.NewString())
		next.ServeHTTP(w, r)
	})
}

func priceFor(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/signal/"):
		return "0.005"
	case path == "/api/sentiment":
		return "0.01"
	case strings.HasPrefix(path, "/api/predict/"):
		return "0.05"
	default:
		return ""
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
