package repository

import (
	"context"

	"TradePulse/internal/domain/models"
	pkgkafka "TradePulse/pkg/kafka"
	applogger "TradePulse/pkg/logger"
)

// KafkaSignalPublisher emits consensus signals to a Kafka topic, keyed
// by symbol so per-symbol ordering survives partitioning.
type KafkaSignalPublisher struct {
	producer *pkgkafka.Producer
	topic    string
	l        *applogger.Logger
}

func NewKafkaSignalPublisher(producer *pkgkafka.Producer, topic string, l *applogger.Logger) *KafkaSignalPublisher {
	return &KafkaSignalPublisher{producer: producer, topic: topic, l: l}
}

func (p *KafkaSignalPublisher) Publish(ctx context.Context, sig *models.TradeSignal) error {
	if err := p.producer.Publish(ctx, p.topic, []byte(sig.Symbol), sig); err != nil {
		p.l.Error("signal publish failed",
			applogger.String("topic", p.topic),
			applogger.String("symbol", sig.Symbol),
			applogger.Error(err),
		)
		return err
	}

	p.l.Debug("signal published",
		applogger.String("topic", p.topic),
		applogger.String("symbol", sig.Symbol),
		applogger.String("action", string(sig.Action)),
	)
	return nil
}

func (p *KafkaSignalPublisher) Close() error {
	return p.producer.Close()
}
