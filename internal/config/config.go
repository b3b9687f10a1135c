package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Config holds all agent settings. Monetary values are decimals; the
// budget cap is fixed for the lifetime of the agent once loaded.
type Config struct {
	AgentID     string
	ProviderURL string
	// PaymentToken is the opaque credential attached to every paid
	// call. Wallet management lives outside this process.
	PaymentToken string

	BudgetCap      decimal.Decimal
	SignalCost     decimal.Decimal
	SentimentCost  decimal.Decimal
	PredictionCost decimal.Decimal

	// NewsText, when set, replaces the live news scraper with a fixed
	// context string. Useful offline.
	NewsText string

	// Kafka decision publishing, disabled when no brokers are set.
	KafkaBrokers       []string
	KafkaDecisionTopic string

	LogLevel string
}

// DefaultConfig returns the built-in defaults. Costs mirror the demo
// provider's advertised prices.
func DefaultConfig() *Config {
	return &Config{
		AgentID:            "paytrader",
		ProviderURL:        "http://localhost:8402",
		PaymentToken:       "",
		BudgetCap:          decimal.NewFromFloat(1.0),
		SignalCost:         decimal.NewFromFloat(0.005),
		SentimentCost:      decimal.NewFromFloat(0.01),
		PredictionCost:     decimal.NewFromFloat(0.05),
		KafkaBrokers:       nil,
		KafkaDecisionTopic: "trading.decisions",
		LogLevel:           "info",
	}
}

// Load builds a config from defaults plus environment overrides.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	cfg.AgentID = getEnv("PAYTRADER_AGENT_ID", cfg.AgentID)
	cfg.ProviderURL = getEnv("PAYTRADER_PROVIDER_URL", cfg.ProviderURL)
	cfg.PaymentToken = getEnv("PAYTRADER_PAYMENT_TOKEN", cfg.PaymentToken)
	cfg.NewsText = getEnv("PAYTRADER_NEWS_TEXT", cfg.NewsText)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.KafkaDecisionTopic = getEnv("KAFKA_DECISION_TOPIC", cfg.KafkaDecisionTopic)

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	var err error
	if cfg.BudgetCap, err = getEnvDecimal("PAYTRADER_BUDGET_CAP", cfg.BudgetCap); err != nil {
		return nil, err
	}
	if cfg.SignalCost, err = getEnvDecimal("PAYTRADER_SIGNAL_COST", cfg.SignalCost); err != nil {
		return nil, err
	}
	if cfg.SentimentCost, err = getEnvDecimal("PAYTRADER_SENTIMENT_COST", cfg.SentimentCost); err != nil {
		return nil, err
	}
	if cfg.PredictionCost, err = getEnvDecimal("PAYTRADER_PREDICTION_COST", cfg.PredictionCost); err != nil {
		return nil, err
	}

	if !cfg.BudgetCap.IsPositive() {
		return nil, fmt.Errorf("budget cap must be positive, got %s", cfg.BudgetCap)
	}

	return cfg, nil
}

// PublishingEnabled reports whether decision events should be sent to
// Kafka.
func (c *Config) PublishingEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) (decimal.Decimal, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal in %s: %w", key, err)
	}
	return d, nil
}
