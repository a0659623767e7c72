// Package producer is a thin asynchronous Kafka writer built on franz-go.
package producer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

var ErrClosed = errors.New("producer is closed")

type Message struct {
	Topic   string
	Key     []byte
	Value   []byte
	Headers map[string]string
}

type Config struct {
	Brokers []string
	// DeliveryTimeout bounds how long one record may wait for the broker,
	// retries included. Zero keeps the franz-go default.
	DeliveryTimeout time.Duration
	// Linger batches records for this long before sending.
	Linger time.Duration
}

// Producer hands records to franz-go and returns immediately; delivery
// results only reach the log.
type Producer struct {
	client *kgo.Client
	logger *slog.Logger
	closed atomic.Bool
}

// New connects lazily: no broker is contacted until the first record or Ping.
func New(cfg Config, logger *slog.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka brokers not configured")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	linger := cfg.Linger
	if linger <= 0 {
		linger = 5 * time.Millisecond
	}
	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ProducerLinger(linger),
		kgo.AllowAutoTopicCreation(),
	}
	if cfg.DeliveryTimeout > 0 {
		opts = append(opts, kgo.RecordDeliveryTimeout(cfg.DeliveryTimeout))
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Producer{client: client, logger: logger}, nil
}

// Publish enqueues msg. The record outlives ctx cancellation so a finished
// request does not abort its own event.
func (p *Producer) Publish(ctx context.Context, msg *Message) error {
	if p.closed.Load() {
		return ErrClosed
	}
	p.client.Produce(context.WithoutCancel(ctx), toRecord(msg), func(r *kgo.Record, err error) {
		if err == nil {
			return
		}
		p.logger.ErrorContext(ctx, "kafka delivery failed",
			"topic", r.Topic,
			"key", string(r.Key),
			"error", err,
		)
	})
	return nil
}

// toRecord sorts headers by key so records are reproducible.
func toRecord(msg *Message) *kgo.Record {
	keys := make([]string, 0, len(msg.Headers))
	for k := range msg.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rec := &kgo.Record{Topic: msg.Topic, Key: msg.Key, Value: msg.Value}
	for _, k := range keys {
		rec.Headers = append(rec.Headers, kgo.RecordHeader{Key: k, Value: []byte(msg.Headers[k])})
	}
	return rec
}

// Ping is the readiness check for the broker connection.
func (p *Producer) Ping(ctx context.Context) error {
	if p.closed.Load() {
		return ErrClosed
	}
	return p.client.Ping(ctx)
}

// Close waits up to timeout for buffered records, then closes the client.
// Calling it again is a no-op.
func (p *Producer) Close(timeout time.Duration) error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := p.client.Flush(ctx)
	if err != nil {
		p.logger.Warn("kafka producer closed with undelivered records", "error", err)
	}
	p.client.Close()
	return err
}

// NoopProducer accepts and drops everything; it stands in when no brokers
// are configured.
type NoopProducer struct{}

func NewNoopProducer() NoopProducer { return NoopProducer{} }

func (NoopProducer) Publish(context.Context, *Message) error { return nil }
func (NoopProducer) Ping(context.Context) error              { return nil }
func (NoopProducer) Close(time.Duration) error               { return nil }
