package broker

import (
	"context"
	"log/slog"
	"sync"

	"eventgo-ticketing/internal/pkg/config"
	"eventgo-ticketing/internal/pkg/errs"
	"eventgo-ticketing/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQPublisher sends outbox events as persistent messages to a durable queue.
// The connection is opened lazily and re-dialed after it drops.
type RabbitMQPublisher struct {
	url    string
	queue  string
	logger *slog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewRabbitMQPublisher(cfg config.BrokerConfig, logger *slog.Logger) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		url:    cfg.RabbitMQURL,
		queue:  cfg.RabbitMQQueue,
		logger: logger,
	}
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, msg shared.OutboxMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    msg.CreatedAt,
			Type:         msg.Topic,
			MessageId:    msg.Key,
			Body:         msg.Payload,
		},
	)
	if err != nil {
		p.reset()
		return errs.Wrapf(err, "rabbitmq publish %s", msg.Topic)
	}
	return nil
}

func (p *RabbitMQPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, errs.Wrap(err, "rabbitmq dial")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "rabbitmq channel")
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrapf(err, "rabbitmq declare %s", p.queue)
	}

	p.logger.Info("rabbitmq connected", "queue", p.queue)
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *RabbitMQPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}
