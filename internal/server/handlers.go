package server

import (
	"encoding/json"
	"hash/fnv"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/erikvoss/paytrader/internal/logging"
	"github.com/erikvoss/paytrader/internal/models"
)

func (s *Server) handleSignal(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(mux.Vars(r)["symbol"])

	price, err := s.quotes.Price(symbol)
	if err != nil {
		s.log.Warn("quote lookup failed", logging.String("symbol", symbol), logging.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	h := symbolHash(symbol)
	signal := models.MarketSignal{
		Symbol:     symbol,
		Price:      price,
		Trend:      []string{models.TrendBullish, models.TrendBearish, models.TrendNeutral}[h%3],
		Strength:   float64(h%100) / 100,
		Volatility: float64(h%40) / 100,
		Volume:     int64(h%1000000) + 10000,
	}
	writeJSON(w, http.StatusOK, signal)
}

type sentimentRequest struct {
	Symbol string `json:"symbol"`
	Text   string `json:"text"`
}

// Word lists for the naive sentiment scorer.
var (
	positiveWords = []string{"beats", "record", "growth", "surge", "upgrade", "buyback", "strong", "rally", "gain"}
	negativeWords = []string{"miss", "lawsuit", "recall", "downgrade", "weak", "decline", "loss", "plunge", "cut"}
)

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	var req sentimentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	score := scoreText(req.Text)
	label := models.SentimentNeutral
	if score > 0.1 {
		label = models.SentimentPositive
	} else if score < -0.1 {
		label = models.SentimentNegative
	}

	writeJSON(w, http.StatusOK, models.SentimentResult{
		Symbol:    strings.ToUpper(req.Symbol),
		Sentiment: label,
		Score:     score,
	})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(mux.Vars(r)["symbol"])

	price, err := s.quotes.Price(symbol)
	if err != nil {
		s.log.Warn("quote lookup failed", logging.String("symbol", symbol), logging.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	h := symbolHash(symbol)
	// Drift in [-10%, +10%) derived from the symbol so runs are stable.
	change := float64(int(h%200)-100) / 10
	predicted := price * (1 + change/100)

	writeJSON(w, http.StatusOK, models.Prediction{
		Symbol:         symbol,
		CurrentPrice:   price,
		PredictedPrice: predicted,
		PercentChange:  change,
		Confidence:     0.5 + float64(h%50)/100,
	})
}

func scoreText(text string) float64 {
	text = strings.ToLower(text)
	var score float64
	for _, w := range positiveWords {
		score += float64(strings.Count(text, w)) * 0.2
	}
	for _, w := range negativeWords {
		score -= float64(strings.Count(text, w)) * 0.2
	}
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}
	return score
}

func symbolHash(symbol string) int {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	return int(h.Sum32())
}
