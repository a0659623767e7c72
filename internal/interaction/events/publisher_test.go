package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recom/internal/interaction/models"
	"recom/internal/platform/kafka/producer"
	"recom/pkg/requestcontext"
)

type captureProducer struct {
	msgs []*producer.Message
	err  error
}

func (c *captureProducer) Publish(_ context.Context, msg *producer.Message) error {
	c.msgs = append(c.msgs, msg)
	return c.err
}

func TestPublishBuildsKeyedEvent(t *testing.T) {
	capture := &captureProducer{}
	pub := NewPublisher(capture, "interactions.recorded")
	ctx := requestcontext.WithRequestID(context.Background(), "req-1")
	created := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	err := pub.Publish(ctx, &models.Interaction{ID: 10, UserID: 1, ProductID: 7, Type: "view", CreatedAt: created})
	require.NoError(t, err)

	require.Len(t, capture.msgs, 1)
	msg := capture.msgs[0]
	assert.Equal(t, "interactions.recorded", msg.Topic)
	assert.Equal(t, []byte("1"), msg.Key)
	assert.Equal(t, EventTypeRecorded, msg.Headers["event_type"])
	assert.Equal(t, "req-1", msg.Headers["request_id"])

	var evt Recorded
	require.NoError(t, json.Unmarshal(msg.Value, &evt))
	assert.Equal(t, Recorded{
		EventType:       EventTypeRecorded,
		InteractionID:   10,
		UserID:          1,
		ProductID:       7,
		InteractionType: "view",
		CreatedAt:       created,
		RequestID:       "req-1",
	}, evt)
}

func TestPublishSurfacesProducerErrors(t *testing.T) {
	pub := NewPublisher(&captureProducer{err: producer.ErrClosed}, "t")
	err := pub.Publish(context.Background(), &models.Interaction{ID: 1, UserID: 1, ProductID: 1, Type: "view"})
	assert.True(t, errors.Is(err, producer.ErrClosed))
}
