package in

import (
	"context"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
)

type ConversationUseCase interface {
	// Свободный текст из чата
	HandleMessage(ctx context.Context, text string) (domain.Classification, error)

	// Пошаговый ввод: дата, время, тема
	PickDate(ctx context.Context, raw string) (domain.CaptureState, error)
	PickTime(ctx context.Context, hour, minute int, meridiem string) (domain.CaptureState, error)
	ConfirmSubject(ctx context.Context, subject string) (domain.Classification, error)
	DismissSubject(ctx context.Context) bool

	CaptureState() domain.CaptureState
}
