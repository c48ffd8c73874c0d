package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
)

const reminderTitle = "Appointment Reminder! 🔔"

// AfterFunc schedules f after d. time.AfterFunc in production.
type AfterFunc func(d time.Duration, f func())

func realAfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// ReminderNotifier fires armed timers. Once armed a timer can not be cancelled
// and is lost when the process exits.
type ReminderNotifier struct {
	platform   out.PlatformNotifierPort
	transcript out.TranscriptPort
	logger     out.LoggerPort
	afterFunc  AfterFunc
	now        func() time.Time
	armed      atomic.Int64
	fired      atomic.Int64
}

func NewReminderNotifier(
	platform out.PlatformNotifierPort,
	transcript out.TranscriptPort,
	logger out.LoggerPort,
) *ReminderNotifier {
	return &ReminderNotifier{
		platform:   platform,
		transcript: transcript,
		logger:     logger.WithModule("ReminderNotifier"),
		afterFunc:  realAfterFunc,
		now:        time.Now,
	}
}

// WithAfterFunc replaces the scheduler, tests use it to control time.
func (n *ReminderNotifier) WithAfterFunc(afterFunc AfterFunc) *ReminderNotifier {
	n.afterFunc = afterFunc
	return n
}

// Arm schedules the timer. A zero delay fires before Arm returns.
func (n *ReminderNotifier) Arm(ctx context.Context, timer domain.ReminderTimer) {
	n.armed.Add(1)
	ctx = context.WithoutCancel(ctx)

	n.logger.Info("reminder.armed", out.LogFields{
		"timerId":      timer.ID,
		"label":        timer.Label,
		"delaySeconds": timer.FireAtDelaySeconds,
	})

	if timer.Immediate() {
		n.fire(ctx, timer)
		return
	}

	n.afterFunc(timer.Delay(), func() {
		n.fire(ctx, timer)
	})
}

// Armed and Fired count timers over the process lifetime.
func (n *ReminderNotifier) Armed() int64 { return n.armed.Load() }
func (n *ReminderNotifier) Fired() int64 { return n.fired.Load() }

func (n *ReminderNotifier) fire(ctx context.Context, timer domain.ReminderTimer) {
	n.fired.Add(1)

	// Системное уведомление только если разрешено, ошибки не мешают сообщению в чате
	if n.platform != nil && n.platform.Permitted() {
		notification := domain.ReminderNotification{
			ID:      timer.ID,
			Title:   reminderTitle,
			Body:    "Upcoming: " + timer.Label,
			Label:   timer.Label,
			FiredAt: n.now(),
		}
		if err := n.platform.Notify(ctx, notification); err != nil {
			n.logger.Warn("reminder.platform.failed", out.LogFields{
				"timerId": timer.ID,
				"error":   err.Error(),
			})
		}
	}

	n.transcript.Append(domain.ChatMessage{
		Role: domain.ChatRoleBot,
		Text: fmt.Sprintf("🔔 **REMINDER!**\n\nYou have an upcoming appointment:\n\"%s\"\n\nDon't be late!", timer.Label),
		At:   n.now(),
	})

	n.logger.Info("reminder.fired", out.LogFields{
		"timerId": timer.ID,
		"label":   timer.Label,
	})
}
