package out

import "github.com/suchimauz/appointment-reminder-bot/internal/core/domain"

type TranscriptPort interface {
	Append(message domain.ChatMessage)
	Messages() []domain.ChatMessage
}
