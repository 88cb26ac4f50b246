// Package producer publishes notification events to Kafka for out-of-band
// delivery (push, SMS, email) by the worker.
package producer

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"grameengo/backend/internal/notification/domain"
)

// KafkaProducer writes notification events using segmentio/kafka-go.
// A nil producer is valid and drops every event.
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaProducer creates a Kafka producer that writes notification events
// to the given topic. Returns nil when brokers or topic are unset.
// Call Close when shutting down.
func NewKafkaProducer(brokers []string, topic string) (*KafkaProducer, error) {
	if len(brokers) == 0 || topic == "" {
		return nil, nil
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}
	return &KafkaProducer{writer: writer, topic: topic}, nil
}

// Emit serializes the notification as JSON and writes it to the topic, keyed
// by the recipient's user id. Uses a short timeout so slow Kafka does not
// block callers indefinitely.
func (p *KafkaProducer) Emit(ctx context.Context, n *domain.Notification) error {
	if p == nil || p.writer == nil || n == nil {
		return nil
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err = p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(n.UserID),
		Value: payload,
	})
	if err != nil {
		slog.Error("notification kafka emit failed", "error", err)
		return err
	}
	return nil
}

// Close closes the Kafka writer. Safe to call multiple times.
func (p *KafkaProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
