package producer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresBrokers(t *testing.T) {
	p, err := New(Config{}, nil)
	require.Error(t, err)
	assert.Nil(t, p)
}

func TestToRecordOrdersHeaders(t *testing.T) {
	rec := toRecord(&Message{
		Topic: "interactions.recorded",
		Key:   []byte("42"),
		Value: []byte(`{}`),
		Headers: map[string]string{
			"request_id": "req-1",
			"event_type": "interaction.recorded",
		},
	})

	assert.Equal(t, "interactions.recorded", rec.Topic)
	assert.Equal(t, []byte("42"), rec.Key)
	require.Len(t, rec.Headers, 2)
	assert.Equal(t, "event_type", rec.Headers[0].Key)
	assert.Equal(t, []byte("interaction.recorded"), rec.Headers[0].Value)
	assert.Equal(t, "request_id", rec.Headers[1].Key)
}

func TestClosedProducerRejectsPublish(t *testing.T) {
	p, err := New(Config{Brokers: []string{"127.0.0.1:1"}}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_ = p.Close(10 * time.Millisecond)

	assert.ErrorIs(t, p.Publish(ctx, &Message{Topic: "t"}), ErrClosed)
	assert.ErrorIs(t, p.Ping(ctx), ErrClosed)
	assert.NoError(t, p.Close(time.Millisecond))
}

func TestNoopProducer(t *testing.T) {
	p := NewNoopProducer()
	assert.NoError(t, p.Publish(context.Background(), &Message{Topic: "t"}))
	assert.NoError(t, p.Ping(context.Background()))
	assert.NoError(t, p.Close(time.Second))
}
