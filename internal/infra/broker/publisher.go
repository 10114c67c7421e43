package broker

import (
	"context"
	"log/slog"

	"eventgo-ticketing/internal/pkg/config"
	"eventgo-ticketing/internal/pkg/errs"
	"eventgo-ticketing/internal/usecase/commands"
	"eventgo-ticketing/internal/usecase/shared"
)

const (
	KindNone     = "none"
	KindKafka    = "kafka"
	KindRabbitMQ = "rabbitmq"
)

func NewPublisher(cfg config.BrokerConfig, logger *slog.Logger) (commands.EventPublisher, error) {
	switch cfg.Kind {
	case KindKafka:
		return NewKafkaPublisher(cfg, logger), nil
	case KindRabbitMQ:
		return NewRabbitMQPublisher(cfg, logger), nil
	case KindNone, "":
		return NewLogPublisher(logger), nil
	default:
		return nil, errs.Newf("unknown BROKER_KIND %q", cfg.Kind)
	}
}

// LogPublisher only logs events; used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, msg shared.OutboxMessage) error {
	p.logger.Info("outbox event", "topic", msg.Topic, "key", msg.Key, "outbox_id", msg.ID)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
