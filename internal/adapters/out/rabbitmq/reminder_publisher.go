package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/suchimauz/appointment-reminder-bot/internal/config"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// ReminderPublisher hands fired reminders to whatever shows platform notifications.
type ReminderPublisher struct {
	conn       *amqp.Connection
	channel    publisher
	exchange   string
	routingKey string
	permitted  bool
	logger     out.LoggerPort
}

var _ out.PlatformNotifierPort = (*ReminderPublisher)(nil)

func NewReminderPublisher(cfg *config.Config, logger out.LoggerPort) (*ReminderPublisher, error) {
	if !cfg.RabbitMQ.Enabled || !cfg.Notify.PlatformEnabled {
		logger.Info("rabbitmq.publisher.disabled", out.LogFields{
			"message": "Platform notifications are disabled",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	err = channel.ExchangeDeclare(
		cfg.RabbitMQ.NotifyExchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.exchange.declare_failed", out.LogFields{
			"exchange": cfg.RabbitMQ.NotifyExchange,
			"error":    err.Error(),
		})
		return nil, err
	}

	publisher := newReminderPublisher(channel, cfg, logger)
	publisher.conn = conn
	return publisher, nil
}

func newReminderPublisher(channel publisher, cfg *config.Config, logger out.LoggerPort) *ReminderPublisher {
	return &ReminderPublisher{
		channel:    channel,
		exchange:   cfg.RabbitMQ.NotifyExchange,
		routingKey: cfg.RabbitMQ.NotifyRoutingKey,
		permitted:  cfg.Notify.PlatformEnabled,
		logger:     logger.WithModule("ReminderPublisher"),
	}
}

func (p *ReminderPublisher) Permitted() bool {
	return p != nil && p.permitted
}

func (p *ReminderPublisher) Notify(ctx context.Context, notification domain.ReminderNotification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx, p.exchange, p.routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    notification.ID.String(),
		Timestamp:    notification.FiredAt,
		Body:         body,
	})
	if err != nil {
		p.logger.Error("rabbitmq.reminder.publish_failed", out.LogFields{
			"id":    notification.ID,
			"error": err.Error(),
		})
		return err
	}

	p.logger.Debug("rabbitmq.reminder.published", out.LogFields{
		"id":         notification.ID,
		"routingKey": p.routingKey,
	})
	return nil
}

func (p *ReminderPublisher) Stop() error {
	if p == nil || p.conn == nil {
		return nil
	}
	return p.conn.Close()
}
