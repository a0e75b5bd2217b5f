package kafka

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// HandlerFunc processes one message payload. A returned error triggers
// retry with backoff; the offset is committed either way after the
// final attempt.
type HandlerFunc func(ctx context.Context, key, value []byte) error

// ConsumerConfig holds reader settings.
type ConsumerConfig struct {
	Brokers    []string
	GroupID    string
	Topic      string
	MinBytes   int
	MaxBytes   int
	RetryMax   int
	BackoffMin time.Duration
	BackoffMax time.Duration
}

// ConsumerOption configures ConsumerConfig.
type ConsumerOption func(*ConsumerConfig)

// WithConsumerBrokers sets the broker list.
func WithConsumerBrokers(brokers ...string) ConsumerOption {
	return func(c *ConsumerConfig) { c.Brokers = brokers }
}

// WithConsumerGroup sets group ID and topic.
func WithConsumerGroup(groupID, topic string) ConsumerOption {
	return func(c *ConsumerConfig) {
		c.GroupID = groupID
		c.Topic = topic
	}
}

// WithConsumerRetry sets retry attempts and backoff bounds.
func WithConsumerRetry(max int, min, maxBackoff time.Duration) ConsumerOption {
	return func(c *ConsumerConfig) {
		c.RetryMax = max
		c.BackoffMin = min
		c.BackoffMax = maxBackoff
	}
}

// Consumer reads one topic within a consumer group and dispatches
// each message to a handler.
type Consumer struct {
	reader  *kafka.Reader
	cfg     *ConsumerConfig
	handler HandlerFunc
}

// NewConsumer creates a consumer for a single topic.
func NewConsumer(handler HandlerFunc, opts ...ConsumerOption) (*Consumer, error) {
	cfg := &ConsumerConfig{
		MinBytes:   1,
		MaxBytes:   10 << 20,
		RetryMax:   3,
		BackoffMin: 100 * time.Millisecond,
		BackoffMax: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return nil, errors.New("kafka: brokers and topic are required")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.GroupID,
		Topic:    cfg.Topic,
		MinBytes: cfg.MinBytes,
		MaxBytes: cfg.MaxBytes,
	})

	return &Consumer{reader: reader, cfg: cfg, handler: handler}, nil
}

// Run consumes until ctx is cancelled or the reader is closed.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		c.process(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			log.Error().Err(err).Str("topic", msg.Topic).Msg("kafka commit failed")
		}
	}
}

func (c *Consumer) process(ctx context.Context, msg kafka.Message) {
	backoff := c.cfg.BackoffMin
	for attempt := 0; ; attempt++ {
		err := c.handler(ctx, msg.Key, msg.Value)
		if err == nil {
			return
		}
		if attempt >= c.cfg.RetryMax {
			log.Error().
				Err(err).
				Str("topic", msg.Topic).
				Int("partition", msg.Partition).
				Int64("offset", msg.Offset).
				Msg("kafka message dropped after retries")
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > c.cfg.BackoffMax {
			backoff = c.cfg.BackoffMax
		}
	}
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
