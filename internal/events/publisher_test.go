package events

import (
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"

	"github.com/erikvoss/paytrader/internal/logging"
	"github.com/erikvoss/paytrader/internal/models"
)

func TestPublishDecision(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	producer.ExpectSendMessageAndSucceed()

	p := &Publisher{producer: producer, topic: "trading.decisions", log: logging.NewNop()}
	defer p.Close()

	decision := &models.Decision{
		Symbol:     "ACME",
		Action:     models.ActionBuy,
		Reason:     "predicted change 8.00% with confidence 0.85",
		Confidence: 0.85,
		TotalSpent: decimal.NewFromFloat(0.065),
		Timestamp:  time.Now(),
	}

	if err := p.PublishDecision(decision); err != nil {
		t.Fatalf("PublishDecision: %v", err)
	}
}

func TestPublishDecisionFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := &Publisher{producer: producer, topic: "trading.decisions", log: logging.NewNop()}
	defer p.Close()

	if err := p.PublishDecision(&models.Decision{Symbol: "ACME", Action: models.ActionHold}); err == nil {
		t.Fatal("expected publish error")
	}
}
