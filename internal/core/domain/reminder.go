package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// ReminderTimer is armed once per successful submission. It is not linked to the
// appointment record, so editing or deleting the appointment leaves it armed.
type ReminderTimer struct {
	ID                 uuid.UUID `json:"id"`
	FireAtDelaySeconds float64   `json:"fireAtDelaySeconds"`
	Label              string    `json:"label"`
}

// MaxReminderDelay is the longest delay a timer can hold without overflowing time.Duration.
const MaxReminderDelay = time.Duration(math.MaxInt64)

func NewReminderTimer(delaySeconds float64, label string) ReminderTimer {
	switch {
	case math.IsNaN(delaySeconds) || delaySeconds < 0:
		delaySeconds = 0
	case delaySeconds > MaxReminderDelay.Seconds():
		delaySeconds = MaxReminderDelay.Seconds()
	}
	return ReminderTimer{
		ID:                 uuid.New(),
		FireAtDelaySeconds: delaySeconds,
		Label:              label,
	}
}

func (t ReminderTimer) Delay() time.Duration {
	if t.FireAtDelaySeconds >= MaxReminderDelay.Seconds() {
		return MaxReminderDelay
	}
	// float64 от MaxInt64 округляется вверх, поэтому граница проверяется до преобразования
	nanos := t.FireAtDelaySeconds * float64(time.Second)
	if nanos >= float64(MaxReminderDelay) {
		return MaxReminderDelay
	}
	if nanos <= 0 {
		return 0
	}
	return time.Duration(nanos)
}

func (t ReminderTimer) Immediate() bool {
	return t.FireAtDelaySeconds <= 0
}

// ReminderNotification is what a platform notifier shows when a timer fires.
type ReminderNotification struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	Label   string    `json:"label"`
	FiredAt time.Time `json:"firedAt"`
}
