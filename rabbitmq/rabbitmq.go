package rabbitmq

import (
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"grillcity-api/config"
	"grillcity-api/models"
)

// Publisher pushes order events to RabbitMQ after a workflow commits.
// The service runs fine without one; callers hold a nil *Publisher when
// no broker is configured.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	cfg     *config.Config
}

func New(cfg *config.Config) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &Publisher{
		conn:    conn,
		channel: ch,
		cfg:     cfg,
	}, nil
}

// SetupQueues declares the order exchange and queue, with a dead-letter
// exchange so undeliverable events are kept instead of dropped.
func (p *Publisher) SetupQueues() error {
	if err := p.channel.ExchangeDeclare(
		p.cfg.DeadLetterQueue+"_exchange",
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	if _, err := p.channel.QueueDeclare(
		p.cfg.DeadLetterQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	if err := p.channel.QueueBind(
		p.cfg.DeadLetterQueue,
		"",
		p.cfg.DeadLetterQueue+"_exchange",
		false,
		nil,
	); err != nil {
		return err
	}

	if err := p.channel.ExchangeDeclare(
		p.cfg.OrderExchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	if _, err := p.channel.QueueDeclare(
		p.cfg.OrderQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		amqp.Table{
			"x-dead-letter-exchange":    p.cfg.DeadLetterQueue + "_exchange",
			"x-dead-letter-routing-key": p.cfg.DeadLetterQueue,
		},
	); err != nil {
		return err
	}

	return p.channel.QueueBind(
		p.cfg.OrderQueue,
		"",
		p.cfg.OrderExchange,
		false,
		nil,
	)
}

func (p *Publisher) PublishOrderEvent(event models.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.channel.Publish(
		p.cfg.OrderExchange,
		"",
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			ContentType:  "application/json",
			Body:         body,
		},
	)
}

func (p *Publisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
