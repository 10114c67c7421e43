package broker

import (
	"context"
	"log/slog"
	"time"

	"eventgo-ticketing/internal/pkg/config"
	"eventgo-ticketing/internal/pkg/errs"
	"eventgo-ticketing/internal/usecase/shared"

	"github.com/segmentio/kafka-go"
)

const headerEventType = "event-type"

// KafkaPublisher writes every outbox event to one topic, keyed by aggregate so
// one event's changes stay on one partition.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

func NewKafkaPublisher(cfg config.BrokerConfig, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.KafkaBrokers...),
			Topic:        cfg.KafkaTopic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireAll,
		},
		logger: logger,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, msg shared.OutboxMessage) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(msg.Key),
		Value:   msg.Payload,
		Time:    msg.CreatedAt,
		Headers: []kafka.Header{{Key: headerEventType, Value: []byte(msg.Topic)}},
	})
	if err != nil {
		return errs.Wrapf(err, "kafka publish %s", msg.Topic)
	}
	p.logger.Debug("published to kafka", "topic", msg.Topic, "key", msg.Key, "outbox_id", msg.ID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
