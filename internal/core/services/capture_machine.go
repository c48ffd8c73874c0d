package services

import (
	"strings"
	"sync"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
	"github.com/suchimauz/appointment-reminder-bot/internal/utils"
)

const subjectRequiredMessage = "Please enter a subject!"

// CaptureMachine collects a date, a time and a subject from three independent pickers
// into one structured schedule request.
type CaptureMachine struct {
	mu          sync.Mutex
	pending     domain.PendingCapture
	subjectOpen bool
	surface     out.CaptureSurfacePort
	logger      out.LoggerPort
}

func NewCaptureMachine(surface out.CaptureSurfacePort, logger out.LoggerPort) *CaptureMachine {
	return &CaptureMachine{
		surface: surface,
		logger:  logger.WithModule("CaptureMachine"),
	}
}

func (m *CaptureMachine) State() domain.CaptureState {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state()
}

func (m *CaptureMachine) Pending() domain.PendingCapture {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.pending
}

// PickDate takes the raw YYYY-MM-DD picker value. An empty value is not an event.
func (m *CaptureMachine) PickDate(raw string) (domain.CaptureState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if strings.TrimSpace(raw) == "" {
		return m.state(), nil
	}

	date, err := utils.FormatPickerDate(raw)
	if err != nil {
		m.logger.Warn("capture.date.invalid", out.LogFields{
			"raw":   raw,
			"error": err.Error(),
		})
		return m.state(), &domain.ValidationError{Message: "Please pick a valid date."}
	}

	m.pending.Date = &date
	// Сбрасываем значение пикера, иначе повторный выбор той же даты не придет
	m.surface.ClearDatePicker()

	m.logger.Debug("capture.date.picked", out.LogFields{
		"date": date,
	})

	return m.advance(), nil
}

// PickTime takes a confirmed time picker selection.
func (m *CaptureMachine) PickTime(hour, minute int, meridiem string) (domain.CaptureState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mer := domain.Meridiem(strings.ToUpper(strings.TrimSpace(meridiem)))
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 || (mer != domain.MeridiemAM && mer != domain.MeridiemPM) {
		m.logger.Warn("capture.time.invalid", out.LogFields{
			"hour":     hour,
			"minute":   minute,
			"meridiem": meridiem,
		})
		return m.state(), &domain.ValidationError{Message: "Please pick a valid time."}
	}

	clock := utils.FormatClock(hour, minute, string(mer))
	m.pending.Time = &clock

	m.logger.Debug("capture.time.picked", out.LogFields{
		"time": clock,
	})

	return m.advance(), nil
}

// ConfirmSubject emits the structured request and returns the machine to idle.
func (m *CaptureMachine) ConfirmSubject(subject string) (domain.ScheduleRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.subjectOpen || !m.pending.Complete() {
		return domain.ScheduleRequest{}, domain.ErrSubjectStepClosed
	}

	subject = strings.TrimSpace(subject)
	if subject == "" {
		m.surface.ShowValidation(subjectRequiredMessage)
		return domain.ScheduleRequest{}, &domain.ValidationError{Message: subjectRequiredMessage}
	}

	request := domain.NewStructuredRequest(subject, *m.pending.Date, *m.pending.Time)

	m.surface.CloseSubject()
	m.reset()
	m.surface.ClearSubjectField()
	m.surface.ClearDatePicker()

	m.logger.Info("capture.subject.confirmed", out.LogFields{
		"subject": request.Subject(),
		"date":    request.Date(),
		"time":    request.Time(),
	})

	return request, nil
}

// DismissSubject cancels the flow. There is no way back to the picked values.
func (m *CaptureMachine) DismissSubject() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.subjectOpen {
		return false
	}

	m.surface.CloseSubject()
	m.reset()

	m.logger.Info("capture.subject.dismissed", out.LogFields{})
	return true
}

func (m *CaptureMachine) state() domain.CaptureState {
	switch {
	case m.subjectOpen:
		return domain.CaptureSubjectPending
	case m.pending.Complete():
		return domain.CaptureBothSelected
	case m.pending.Date != nil:
		return domain.CaptureDateOnly
	case m.pending.Time != nil:
		return domain.CaptureTimeOnly
	default:
		return domain.CaptureIdle
	}
}

// advance opens the subject step as soon as both values exist, otherwise shows the hint.
func (m *CaptureMachine) advance() domain.CaptureState {
	if m.pending.Complete() {
		m.subjectOpen = true
		m.surface.OpenSubject()
		return m.state()
	}

	var parts []string
	missing := "Date"
	if m.pending.Date != nil {
		parts = append(parts, "📅 Date: "+*m.pending.Date)
		missing = "Time"
	}
	if m.pending.Time != nil {
		parts = append(parts, "⏰ Time: "+*m.pending.Time)
	}
	m.surface.SetHint(strings.Join(parts, " | ") + " ... (Select " + missing + ")")

	return m.state()
}

func (m *CaptureMachine) reset() {
	m.pending = domain.PendingCapture{}
	m.subjectOpen = false
	m.surface.ClearHint()
}
