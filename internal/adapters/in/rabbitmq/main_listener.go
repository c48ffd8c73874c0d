package rabbitmq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/suchimauz/appointment-reminder-bot/internal/config"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/in"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
)

// InboxListener feeds chat messages from a queue into the conversation session.
type InboxListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.ConversationUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewInboxListener(useCase in.ConversationUseCase, cfg *config.Config, logger out.LoggerPort) (*InboxListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
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

	return &InboxListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger.WithModule("InboxListener"),
	}, nil
}

func (l *InboxListener) Start(ctx context.Context) error {
	if err := l.startInboxQueue(ctx); err != nil {
		return err
	}
	l.logger.Info("inbox.queue.started", out.LogFields{
		"queue": l.cfg.RabbitMQ.InboxQueue,
	})
	return nil
}

func (l *InboxListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}
