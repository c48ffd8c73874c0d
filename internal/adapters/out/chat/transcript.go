package chat

import (
	"sync"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
)

// Transcript keeps the last maxMessages chat entries in memory.
type Transcript struct {
	mu          sync.RWMutex
	messages    []domain.ChatMessage
	maxMessages int
	logger      out.LoggerPort
}

var _ out.TranscriptPort = (*Transcript)(nil)

func NewTranscript(maxMessages int, logger out.LoggerPort) *Transcript {
	return &Transcript{
		maxMessages: maxMessages,
		logger:      logger.WithModule("Transcript"),
	}
}

func (t *Transcript) Append(message domain.ChatMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.messages = append(t.messages, message)
	if t.maxMessages > 0 && len(t.messages) > t.maxMessages {
		dropped := len(t.messages) - t.maxMessages
		t.messages = append([]domain.ChatMessage(nil), t.messages[dropped:]...)
	}

	t.logger.Debug("transcript.append", out.LogFields{
		"role": message.Role,
		"size": len(t.messages),
	})
}

// Messages returns a copy.
func (t *Transcript) Messages() []domain.ChatMessage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	messages := make([]domain.ChatMessage, len(t.messages))
	copy(messages, t.messages)
	return messages
}
