package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(string, out.LogFields) {}
func (nopLogger) Info(string, out.LogFields) {}
func (nopLogger) Warn(string, out.LogFields) {}
func (nopLogger) Error(string, out.LogFields) {}
func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort { return l }

type fakeSurface struct {
	mu               sync.Mutex
	hint             string
	hintVisible      bool
	subjectOpen      bool
	opened           int
	subjectCleared   int
	datePickerResets int
	validation       string
}

func (s *fakeSurface) SetHint(hint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hint, s.hintVisible = hint, true
}

func (s *fakeSurface) ClearHint() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hint, s.hintVisible = "", false
}

func (s *fakeSurface) OpenSubject() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subjectOpen = true
	s.opened++
}

func (s *fakeSurface) CloseSubject() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subjectOpen = false
}

func (s *fakeSurface) ClearSubjectField() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subjectCleared++
}

func (s *fakeSurface) ClearDatePicker() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datePickerResets++
}

func (s *fakeSurface) ShowValidation(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validation = message
}

type fakeTranscript struct {
	mu       sync.Mutex
	messages []domain.ChatMessage
}

func (t *fakeTranscript) Append(message domain.ChatMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, message)
}

func (t *fakeTranscript) Messages() []domain.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.ChatMessage(nil), t.messages...)
}

func (t *fakeTranscript) texts() []string {
	var texts []string
	for _, m := range t.Messages() {
		texts = append(texts, m.Text)
	}
	return texts
}

func (t *fakeTranscript) countContaining(substr string) int {
	n := 0
	for _, text := range t.texts() {
		if strings.Contains(text, substr) {
			n++
		}
	}
	return n
}

type scheduleCall struct {
	request domain.ScheduleRequest
	contact domain.ContactProfile
}

type updateCall struct {
	id      int
	subject string
	dateStr string
}

type fakeScheduler struct {
	mu sync.Mutex

	scheduleResponse *out.ScheduleResponse
	scheduleErr      error
	scheduleCalls    []scheduleCall

	appointments []domain.Appointment
	listErr      error
	listCalls    [][2]string

	updateResponse *out.MutationResponse
	updateErr      error
	updateCalls    []updateCall

	deleteResponse *out.MutationResponse
	deleteErr      error
	deleteCalls    []int
}

func (s *fakeScheduler) Schedule(ctx context.Context, request domain.ScheduleRequest, contact domain.ContactProfile) (*out.ScheduleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduleCalls = append(s.scheduleCalls, scheduleCall{request, contact})
	return s.scheduleResponse, s.scheduleErr
}

func (s *fakeScheduler) ListAppointments(ctx context.Context, email, phone string) ([]domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls = append(s.listCalls, [2]string{email, phone})
	return s.appointments, s.listErr
}

func (s *fakeScheduler) UpdateAppointment(ctx context.Context, id int, subject, dateStr string) (*out.MutationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls = append(s.updateCalls, updateCall{id, subject, dateStr})
	return s.updateResponse, s.updateErr
}

func (s *fakeScheduler) DeleteAppointment(ctx context.Context, id int) (*out.MutationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteCalls = append(s.deleteCalls, id)
	return s.deleteResponse, s.deleteErr
}

func (s *fakeScheduler) scheduled() []scheduleCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]scheduleCall(nil), s.scheduleCalls...)
}

type fakeProfiles struct {
	mu      sync.Mutex
	profile domain.ContactProfile
	err     error
}

func (p *fakeProfiles) Load(ctx context.Context) (domain.ContactProfile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profile, p.err
}

func (p *fakeProfiles) Save(ctx context.Context, profile domain.ContactProfile) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profile = profile
	return nil
}

type fakeView struct {
	mu      sync.Mutex
	renders []domain.AppointmentListView
}

func (v *fakeView) Render(view domain.AppointmentListView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.renders = append(v.renders, view)
}

func (v *fakeView) Current() domain.AppointmentListView {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.renders) == 0 {
		return domain.AppointmentListView{}
	}
	return v.renders[len(v.renders)-1]
}

func (v *fakeView) states() []domain.AppointmentListState {
	v.mu.Lock()
	defer v.mu.Unlock()
	var states []domain.AppointmentListState
	for _, r := range v.renders {
		states = append(states, r.State)
	}
	return states
}

type fakePlatform struct {
	mu        sync.Mutex
	permitted bool
	err       error
	sent      []domain.ReminderNotification
}

func (p *fakePlatform) Permitted() bool { return p.permitted }

func (p *fakePlatform) Notify(ctx context.Context, notification domain.ReminderNotification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, notification)
	return p.err
}

// manualClock collects scheduled callbacks until the test runs them.
type manualClock struct {
	mu      sync.Mutex
	delays  []time.Duration
	pending []func()
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delays = append(c.delays, d)
	c.pending = append(c.pending, f)
}

func (c *manualClock) fireAll() {
	c.mu.Lock()
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, f := range pending {
		f()
	}
}

var (
	withEmail = domain.ContactProfile{Name: "Ann", Email: "ann@example.com", EmailNotif: true}
	withPhone = domain.ContactProfile{Phone: "+15550100", SmsNotif: true}
)
