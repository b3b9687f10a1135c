// Package events publishes completed decisions to Kafka so downstream
// alerting services can react to them. Publishing is optional; the
// agent runs fine with no brokers configured.
package events

import (
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/erikvoss/paytrader/internal/logging"
	"github.com/erikvoss/paytrader/internal/models"
)

// Publisher sends decision events to a Kafka topic.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logging.Logger
}

// NewPublisher connects a sync producer to the given brokers.
func NewPublisher(brokers []string, topic string, log *logging.Logger) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Return.Successes = true
	config.Version = sarama.V2_8_0_0

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &Publisher{producer: producer, topic: topic, log: log}, nil
}

// PublishDecision sends one decision keyed by symbol.
func (p *Publisher) PublishDecision(decision *models.Decision) error {
	value, err := json.Marshal(decision)
	if err != nil {
		return fmt.Errorf("failed to marshal decision: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(decision.Symbol),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("failed to publish decision for %s: %w", decision.Symbol, err)
	}

	p.log.Debug("decision published",
		logging.String("symbol", decision.Symbol),
		logging.String("action", decision.Action),
		logging.Int("partition", int(partition)),
		logging.Int("offset", int(offset)),
	)
	return nil
}

// Close shuts the producer down.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
