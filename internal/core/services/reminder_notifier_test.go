package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
)

const dentistReminder = "🔔 **REMINDER!**\n\nYou have an upcoming appointment:\n\"Dentist\"\n\nDon't be late!"

func TestReminderImmediateFiresBeforeArmReturns(t *testing.T) {
	transcript := &fakeTranscript{}
	clock := &manualClock{}
	notifier := NewReminderNotifier(nil, transcript, nopLogger{}).WithAfterFunc(clock.AfterFunc)

	notifier.Arm(context.Background(), domain.NewReminderTimer(0, "Dentist"))

	assert.Equal(t, []string{dentistReminder}, transcript.texts())
	assert.Empty(t, clock.delays)
	assert.EqualValues(t, 1, notifier.Fired())
}

func TestReminderDelayedFiresOnExpiry(t *testing.T) {
	transcript := &fakeTranscript{}
	clock := &manualClock{}
	notifier := NewReminderNotifier(nil, transcript, nopLogger{}).WithAfterFunc(clock.AfterFunc)

	notifier.Arm(context.Background(), domain.NewReminderTimer(90.5, "Dentist"))

	require.Len(t, clock.delays, 1)
	assert.Equal(t, 90500*time.Millisecond, clock.delays[0])
	assert.Empty(t, transcript.texts())

	clock.fireAll()
	assert.Equal(t, []string{dentistReminder}, transcript.texts())
	assert.EqualValues(t, 1, notifier.Armed())
	assert.EqualValues(t, 1, notifier.Fired())
}

func TestReminderSurvivesCancelledContext(t *testing.T) {
	transcript := &fakeTranscript{}
	clock := &manualClock{}
	platform := &fakePlatform{permitted: true}
	notifier := NewReminderNotifier(platform, transcript, nopLogger{}).WithAfterFunc(clock.AfterFunc)

	ctx, cancel := context.WithCancel(context.Background())
	notifier.Arm(ctx, domain.NewReminderTimer(5, "Dentist"))
	cancel()

	clock.fireAll()
	assert.Len(t, transcript.texts(), 1)
	assert.Len(t, platform.sent, 1)
}

func TestReminderPlatformGatedByPermission(t *testing.T) {
	transcript := &fakeTranscript{}
	platform := &fakePlatform{permitted: false}
	notifier := NewReminderNotifier(platform, transcript, nopLogger{})

	notifier.Arm(context.Background(), domain.NewReminderTimer(0, "Dentist"))

	assert.Empty(t, platform.sent)
	assert.Len(t, transcript.texts(), 1)
}

func TestReminderPlatformErrorStillAppendsChat(t *testing.T) {
	transcript := &fakeTranscript{}
	platform := &fakePlatform{permitted: true, err: errors.New("denied")}
	notifier := NewReminderNotifier(platform, transcript, nopLogger{})

	timer := domain.NewReminderTimer(0, "Dentist")
	notifier.Arm(context.Background(), timer)

	require.Len(t, platform.sent, 1)
	assert.Equal(t, timer.ID, platform.sent[0].ID)
	assert.Equal(t, "Dentist", platform.sent[0].Label)
	assert.Equal(t, []string{dentistReminder}, transcript.texts())
}

func TestReminderNegativeDelayClamped(t *testing.T) {
	timer := domain.NewReminderTimer(-3, "x")
	assert.True(t, timer.Immediate())
	assert.Zero(t, timer.Delay())
}

func TestReminderRealTimerFires(t *testing.T) {
	transcript := &fakeTranscript{}
	notifier := NewReminderNotifier(nil, transcript, nopLogger{})

	notifier.Arm(context.Background(), domain.NewReminderTimer(0.01, "Dentist"))

	assert.Eventually(t, func() bool {
		return len(transcript.texts()) == 1
	}, time.Second, 5*time.Millisecond)
}
