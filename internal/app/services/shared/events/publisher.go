package events

import (
	"context"

	"agendaclin-service/internal/app/contracts"
	"agendaclin-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type publisher struct {
	ch       *amqp.Channel
	exchange string
	log      *zap.Logger
}

// NewPublisher opens a channel on the connection and declares a durable topic
// exchange for booking lifecycle events. Consumers bind their own queues with
// routing keys like "booking.*".
func NewPublisher(conn *amqp.Connection, exchange string, log *zap.Logger) (contracts.EventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // autoDelete
		false,    // internal
		false,    // noWait
		nil,      // args
	)
	if err != nil {
		return nil, err
	}

	return &publisher{
		ch:       ch,
		exchange: exchange,
		log:      log,
	}, nil
}

func (p *publisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	err = p.ch.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		p.log.Error("publisher.Publish failed",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublish(err)
	}
	return nil
}

func (p *publisher) Close() error {
	return p.ch.Close()
}
