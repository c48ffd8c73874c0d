package out

import (
	"context"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
)

// PlatformNotifierPort shows a reminder outside the chat. Delivery is best-effort.
type PlatformNotifierPort interface {
	Permitted() bool
	Notify(ctx context.Context, notification domain.ReminderNotification) error
}
