package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
)

type submitterFixture struct {
	scheduler  *fakeScheduler
	transcript *fakeTranscript
	clock      *manualClock
	notifier   *ReminderNotifier
	submitter  *SchedulingSubmitter
}

func newSubmitterFixture() *submitterFixture {
	f := &submitterFixture{
		scheduler:  &fakeScheduler{},
		transcript: &fakeTranscript{},
		clock:      &manualClock{},
	}
	f.notifier = NewReminderNotifier(nil, f.transcript, nopLogger{}).WithAfterFunc(f.clock.AfterFunc)
	f.submitter = NewSchedulingSubmitter(f.scheduler, f.notifier, f.transcript, nopLogger{})
	return f
}

func TestSubmitSkippedWithoutContact(t *testing.T) {
	f := newSubmitterFixture()

	result, err := f.submitter.Submit(context.Background(), domain.NewFreeformRequest("x at 1:00"), domain.ContactProfile{Name: "Ann"})
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.Empty(t, f.scheduler.scheduled())
	assert.Empty(t, f.transcript.texts())
	assert.Zero(t, f.notifier.Armed())
}

func TestSubmitImmediateFiresBeforeAcknowledgement(t *testing.T) {
	f := newSubmitterFixture()
	f.scheduler.scheduleResponse = &out.ScheduleResponse{
		ScheduledTime: out.ScheduledImmediate,
		DelaySeconds:  0,
		Notifications: []out.NotificationChannel{out.NotificationEmail},
	}

	request := domain.NewStructuredRequest("Dentist", "Thursday, December 25, 2025", "3:00 PM")
	result, err := f.submitter.Submit(context.Background(), request, withEmail)
	require.NoError(t, err)

	require.NotNil(t, result.Timer)
	assert.True(t, result.Timer.Immediate())
	assert.Equal(t, "Dentist", result.Timer.Label)
	assert.Empty(t, f.clock.delays)

	texts := f.transcript.texts()
	require.Len(t, texts, 2)
	assert.Equal(t, dentistReminder, texts[0])
	assert.Contains(t, texts[1], "✅ **Confirmed!**")
	assert.Contains(t, texts[1], "(Sending notification immediately...)")
	assert.Contains(t, texts[1], "📧 Email queued.")
	assert.NotContains(t, texts[1], "📱 SMS queued.")
}

func TestSubmitZeroDelayFiresSynchronously(t *testing.T) {
	f := newSubmitterFixture()
	f.scheduler.scheduleResponse = &out.ScheduleResponse{
		ScheduledTime: "2025-12-25T15:00:00",
		DelaySeconds:  0,
	}

	_, err := f.submitter.Submit(context.Background(), domain.NewFreeformRequest("Dentist at 3:00 pm"), withPhone)
	require.NoError(t, err)

	assert.EqualValues(t, 1, f.notifier.Fired())
	assert.Equal(t, 1, f.transcript.countContaining("🔔 **REMINDER!**"))
}

func TestSubmitArmsOneTimerForDelay(t *testing.T) {
	f := newSubmitterFixture()
	f.scheduler.scheduleResponse = &out.ScheduleResponse{
		ScheduledTime: "2025-12-25T15:00:00",
		DelaySeconds:  120,
		Notifications: []out.NotificationChannel{out.NotificationSMS, out.NotificationSMSSimulated},
	}

	result, err := f.submitter.Submit(context.Background(), domain.NewFreeformRequest("Dentist at 3:00 pm"), withPhone)
	require.NoError(t, err)

	assert.Equal(t, 120.0, result.Timer.FireAtDelaySeconds)
	assert.Equal(t, "Dentist at 3:00 pm", result.Timer.Label)
	assert.Len(t, f.clock.delays, 1)
	assert.Zero(t, f.notifier.Fired())

	texts := f.transcript.texts()
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "🕒 **Timer Set:** I'll verify this at: 3:00:00 PM")
	assert.Contains(t, texts[0], "📱 SMS queued.")
	assert.Contains(t, texts[0], "⚠️ **SMS Warning**")

	call := f.scheduler.scheduled()[0]
	assert.Equal(t, withPhone, call.contact)
}

func TestSubmitFailureWarnsOnceWithoutTimer(t *testing.T) {
	f := newSubmitterFixture()
	f.scheduler.scheduleErr = &domain.TransportError{Op: "backend.schedule", Err: assert.AnError}

	result, err := f.submitter.Submit(context.Background(), domain.NewFreeformRequest("x at 1:00"), withEmail)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, domain.IsTransport(err))

	assert.Equal(t, []string{backendUnreachableMessage}, f.transcript.texts())
	assert.Zero(t, f.notifier.Armed())
	assert.Len(t, f.scheduler.scheduled(), 1)
}
