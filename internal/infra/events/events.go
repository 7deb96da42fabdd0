// Package events exports craft lifecycle events for downstream analytics.
// Publishing is best-effort: a broker outage never fails the pipeline.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"kalaconnect-backend/config"
	"kalaconnect-backend/internal/domain/crafts"
)

const TypeCraftStatusChanged = "craft_status_changed"

type CraftStatusChanged struct {
	EventID    string        `json:"event_id"`
	EventType  string        `json:"event_type"`
	CraftID    string        `json:"craft_id"`
	From       crafts.Status `json:"from"`
	To         crafts.Status `json:"to"`
	OccurredAt time.Time     `json:"occurred_at"`
}

type Publisher interface {
	CraftStatusChanged(ctx context.Context, craftID string, from, to crafts.Status) error
}

// FromConfig returns the Kafka publisher when brokers are configured,
// otherwise a no-op.
func FromConfig() Publisher {
	brokers := splitBrokers(config.KAFKA_BROKERS)
	if len(brokers) == 0 {
		return NopPublisher{}
	}
	return NewKafkaPublisher(brokers, config.KAFKA_TOPIC)
}

func splitBrokers(raw string) []string {
	var out []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

type KafkaPublisher struct {
	writer *kafkago.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafkago.Writer{
			Addr:     kafkago.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafkago.LeastBytes{},
		},
	}
}

func (p *KafkaPublisher) CraftStatusChanged(ctx context.Context, craftID string, from, to crafts.Status) error {
	evt := CraftStatusChanged{
		EventID:    uuid.NewString(),
		EventType:  TypeCraftStatusChanged,
		CraftID:    craftID,
		From:       from,
		To:         to,
		OccurredAt: time.Now().UTC(),
	}
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	// Keyed by craft id so one craft's events stay ordered per partition.
	if err := p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(craftID),
		Value: value,
	}); err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops events; used when KAFKA_BROKERS is empty.
type NopPublisher struct{}

func (NopPublisher) CraftStatusChanged(ctx context.Context, craftID string, from, to crafts.Status) error {
	return nil
}
