package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/in"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
)

const welcomeMessage = "Hello! 👋 I'm your Appointment Reminder Bot. I can help you schedule appointments, " +
	"set reminders, and manage your calendar. How can I assist you today?"

// ConversationSession owns the capture machine and routes every user input either
// to it or to the classifier.
type ConversationSession struct {
	capture    *CaptureMachine
	classifier *IntentClassifier
	submitter  *SchedulingSubmitter
	profiles   out.ProfilePort
	transcript out.TranscriptPort
	logger     out.LoggerPort
	inflight   sync.WaitGroup
}

var _ in.ConversationUseCase = (*ConversationSession)(nil)

func NewConversationSession(
	capture *CaptureMachine,
	classifier *IntentClassifier,
	submitter *SchedulingSubmitter,
	profiles out.ProfilePort,
	transcript out.TranscriptPort,
	logger out.LoggerPort,
) *ConversationSession {
	return &ConversationSession{
		capture:    capture,
		classifier: classifier,
		submitter:  submitter,
		profiles:   profiles,
		transcript: transcript,
		logger:     logger.WithModule("ConversationSession"),
	}
}

func (s *ConversationSession) Start(ctx context.Context) {
	s.say(welcomeMessage)
}

func (s *ConversationSession) HandleMessage(ctx context.Context, text string) (domain.Classification, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Classification{}, domain.ErrEmptyMessage
	}
	return s.process(ctx, text, nil)
}

func (s *ConversationSession) PickDate(ctx context.Context, raw string) (domain.CaptureState, error) {
	return s.capture.PickDate(raw)
}

func (s *ConversationSession) PickTime(ctx context.Context, hour, minute int, meridiem string) (domain.CaptureState, error) {
	return s.capture.PickTime(hour, minute, meridiem)
}

func (s *ConversationSession) ConfirmSubject(ctx context.Context, subject string) (domain.Classification, error) {
	request, err := s.capture.ConfirmSubject(subject)
	if err != nil {
		return domain.Classification{}, err
	}
	return s.process(ctx, request.Text(), &request)
}

func (s *ConversationSession) DismissSubject(ctx context.Context) bool {
	return s.capture.DismissSubject()
}

func (s *ConversationSession) CaptureState() domain.CaptureState {
	return s.capture.State()
}

// Wait blocks until every dispatched submission has returned.
func (s *ConversationSession) Wait() {
	s.inflight.Wait()
}

func (s *ConversationSession) process(ctx context.Context, text string, structured *domain.ScheduleRequest) (domain.Classification, error) {
	s.transcript.Append(domain.ChatMessage{
		Role: domain.ChatRoleUser,
		Text: text,
		At:   time.Now(),
	})

	classification := s.classifier.Classify(text, structured)

	s.logger.Debug("conversation.classified", out.LogFields{
		"category": classification.Category,
		"query":    classification.Query,
	})

	if !classification.IsSchedule() {
		s.say(classification.Reply)
		return classification, nil
	}

	// Профиль читается в момент вызова, без блокировки
	profile, err := s.profiles.Load(ctx)
	if err != nil {
		s.logger.Warn("conversation.profile.load_failed", out.LogFields{
			"error": err.Error(),
		})
		profile = domain.ContactProfile{}
	}

	// Отклик пишется до запуска отправки: ответ сервера всегда идёт после него
	request := *classification.Request
	classification.Reply = ComposeScheduleFeedback(request, profile)
	s.say(classification.Reply)

	s.dispatch(ctx, request, profile)

	return classification, nil
}

// dispatch does not wait for the backend; overlapping submissions are independent.
func (s *ConversationSession) dispatch(ctx context.Context, request domain.ScheduleRequest, profile domain.ContactProfile) {
	ctx = context.WithoutCancel(ctx)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		if _, err := s.submitter.Submit(ctx, request, profile); err != nil {
			s.logger.Debug("conversation.submission.failed", out.LogFields{
				"error": err.Error(),
			})
		}
	}()
}

func (s *ConversationSession) say(text string) {
	s.transcript.Append(domain.ChatMessage{
		Role: domain.ChatRoleBot,
		Text: text,
		At:   time.Now(),
	})
}

// ComposeScheduleFeedback is shown before a submission is dispatched,
// whatever the backend answers later.
func ComposeScheduleFeedback(request domain.ScheduleRequest, profile domain.ContactProfile) string {
	var sb strings.Builder
	sb.WriteString("✅ **Scheduled!**\n\n")

	if request.IsStructured() {
		sb.WriteString(fmt.Sprintf("**Subject:** %s\n**Time:** %s at %s", request.Subject(), request.Date(), request.Time()))
	} else {
		sb.WriteString(fmt.Sprintf("I've added this to your calendar:\n\"%s\"", request.Message()))
	}

	var extras []string
	if profile.WantsEmail() {
		extras = append(extras, fmt.Sprintf("📧 Confirmation sent to **%s**", profile.Email))
	}
	if profile.WantsSMS() {
		extras = append(extras, fmt.Sprintf("📱 SMS reminder set for **%s**", profile.Phone))
	}

	switch {
	case len(extras) > 0:
		sb.WriteString("\n\n" + strings.Join(extras, "\n"))
	case !profile.HasContact():
		sb.WriteString("\n\n💡 *Tip: Click the Settings gear ⚙️ to add your email/phone for reminders!*")
	}

	return sb.String()
}
