// Package events publishes interaction.recorded events after an interaction is persisted.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"recom/internal/interaction/models"
	"recom/internal/platform/kafka/producer"
	"recom/pkg/requestcontext"
)

const EventTypeRecorded = "interaction.recorded"

// Producer is the subset of the Kafka producer the publisher needs.
type Producer interface {
	Publish(ctx context.Context, msg *producer.Message) error
}

// Recorded is the JSON payload of an interaction.recorded event.
type Recorded struct {
	EventType       string    `json:"eventType"`
	InteractionID   int64     `json:"interactionId"`
	UserID          int64     `json:"userId"`
	ProductID       int64     `json:"productId"`
	InteractionType string    `json:"interactionType"`
	CreatedAt       time.Time `json:"createdAt"`
	RequestID       string    `json:"requestId,omitempty"`
}

// Publisher maps interactions onto Kafka messages keyed by user id, so every
// event for one user lands on the same partition.
type Publisher struct {
	producer Producer
	topic    string
}

func NewPublisher(p Producer, topic string) *Publisher {
	return &Publisher{producer: p, topic: topic}
}

func (p *Publisher) Publish(ctx context.Context, i *models.Interaction) error {
	requestID := requestcontext.RequestID(ctx)
	payload, err := json.Marshal(Recorded{
		EventType:       EventTypeRecorded,
		InteractionID:   i.ID,
		UserID:          i.UserID,
		ProductID:       i.ProductID,
		InteractionType: i.Type,
		CreatedAt:       i.CreatedAt.UTC(),
		RequestID:       requestID,
	})
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", EventTypeRecorded, err)
	}

	headers := map[string]string{"event_type": EventTypeRecorded}
	if requestID != "" {
		headers["request_id"] = requestID
	}
	if err := p.producer.Publish(ctx, &producer.Message{
		Topic:   p.topic,
		Key:     []byte(strconv.FormatInt(i.UserID, 10)),
		Value:   payload,
		Headers: headers,
	}); err != nil {
		return fmt.Errorf("publish %s event: %w", EventTypeRecorded, err)
	}
	return nil
}
