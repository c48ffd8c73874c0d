package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/in"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
)

type InboxMessage struct {
	Text string `json:"text"`
}

func (l *InboxListener) startInboxQueue(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.InboxQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					l.logger.Warn("inbox.queue.closed", out.LogFields{})
					return
				}
				settleInboxMessage(ctx, l.useCase, l.logger, msg)
			}
		}
	}()

	return nil
}

// settleInboxMessage acks handled messages. Bad input is dropped, anything else goes back to the queue.
func settleInboxMessage(ctx context.Context, useCase in.ConversationUseCase, logger out.LoggerPort, msg amqp.Delivery) {
	err := processInboxMessage(ctx, useCase, msg)
	switch {
	case err == nil:
		if ackErr := msg.Ack(false); ackErr != nil {
			logger.Error("inbox.message.ack_failed", out.LogFields{
				"error": ackErr.Error(),
			})
		}
	case domain.IsValidation(err):
		logger.Warn("inbox.message.rejected", out.LogFields{
			"error": err.Error(),
		})
		_ = msg.Nack(false, false)
	default:
		logger.Error("inbox.message.failed", out.LogFields{
			"error": err.Error(),
		})
		_ = msg.Nack(false, true) // requeue message
	}
}

func processInboxMessage(ctx context.Context, useCase in.ConversationUseCase, msg amqp.Delivery) error {
	var message InboxMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		return &domain.ValidationError{Message: fmt.Sprintf("invalid inbox message: %v", err)}
	}

	_, err := useCase.HandleMessage(ctx, message.Text)
	return err
}
