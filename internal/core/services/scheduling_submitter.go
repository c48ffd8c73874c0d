package services

import (
	"context"
	"strings"
	"time"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/json_types"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
	"github.com/suchimauz/appointment-reminder-bot/internal/utils"
)

const backendUnreachableMessage = "⚠️ Note: I couldn't connect to the notification server. (Make sure the scheduling server is running!)"

type SubmissionResult struct {
	Skipped  bool
	Timer    *domain.ReminderTimer
	Response *out.ScheduleResponse
}

// SchedulingSubmitter sends a request to the backend and arms a reminder for the
// delay the backend computed.
type SchedulingSubmitter struct {
	scheduler  out.SchedulerPort
	reminders  *ReminderNotifier
	transcript out.TranscriptPort
	logger     out.LoggerPort
}

func NewSchedulingSubmitter(
	scheduler out.SchedulerPort,
	reminders *ReminderNotifier,
	transcript out.TranscriptPort,
	logger out.LoggerPort,
) *SchedulingSubmitter {
	return &SchedulingSubmitter{
		scheduler:  scheduler,
		reminders:  reminders,
		transcript: transcript,
		logger:     logger.WithModule("SchedulingSubmitter"),
	}
}

// Submit does nothing when the profile has no email and no phone.
// Backend failures produce one chat warning and are not retried.
func (s *SchedulingSubmitter) Submit(ctx context.Context, request domain.ScheduleRequest, profile domain.ContactProfile) (*SubmissionResult, error) {
	if !profile.HasContact() {
		s.logger.Debug("schedule.submit.skipped", out.LogFields{
			"kind": request.Kind(),
		})
		return &SubmissionResult{Skipped: true}, nil
	}

	s.logger.Info("schedule.submit.started", out.LogFields{
		"kind":  request.Kind(),
		"label": request.Label(),
	})

	response, err := s.scheduler.Schedule(ctx, request, profile)
	if err != nil {
		s.logger.Error("schedule.submit.failed", out.LogFields{
			"kind":  request.Kind(),
			"error": err.Error(),
		})
		s.say(backendUnreachableMessage)
		return nil, err
	}

	delay := response.DelaySeconds
	if response.Immediate() {
		delay = 0
	}
	timer := domain.NewReminderTimer(delay, request.Label())

	s.reminders.Arm(ctx, timer)
	s.say(acknowledgement(response))

	s.logger.Info("schedule.submit.succeeded", out.LogFields{
		"timerId":       timer.ID,
		"scheduledTime": response.ScheduledTime,
		"delaySeconds":  timer.FireAtDelaySeconds,
		"notifications": response.Notifications,
	})

	return &SubmissionResult{
		Timer:    &timer,
		Response: response,
	}, nil
}

func (s *SchedulingSubmitter) say(text string) {
	s.transcript.Append(domain.ChatMessage{
		Role: domain.ChatRoleBot,
		Text: text,
		At:   time.Now(),
	})
}

// acknowledgement reports what the backend says it queued.
func acknowledgement(response *out.ScheduleResponse) string {
	var sb strings.Builder
	sb.WriteString("✅ **Confirmed!** ")

	if response.Immediate() {
		sb.WriteString("\n\n(Sending notification immediately...)")
	} else {
		at := response.ScheduledTime
		if parsed, err := json_types.ParseDateTime(response.ScheduledTime); err == nil {
			at = utils.FormatClockTime(parsed)
		}
		sb.WriteString("\n\n🕒 **Timer Set:** I'll verify this at: " + at)
	}

	if response.Queued(out.NotificationEmail) {
		sb.WriteString("\n📧 Email queued.")
	}
	if response.Queued(out.NotificationSMS) {
		sb.WriteString("\n📱 SMS queued.")
	}
	if response.Queued(out.NotificationSMSSimulated) {
		sb.WriteString("\n\n⚠️ **SMS Warning**: SMS credentials are missing on the server. Messages are only logged there.")
	}

	return sb.String()
}
