package chat

import (
	"sync"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
)

// CaptureSurfaceSnapshot is what the date/time/subject widgets currently show.
type CaptureSurfaceSnapshot struct {
	Hint             string `json:"hint"`
	HintVisible      bool   `json:"hintVisible"`
	SubjectOpen      bool   `json:"subjectOpen"`
	SubjectFocus     bool   `json:"subjectFocus"`
	DatePickerResets int    `json:"datePickerResets"`
	Validation       string `json:"validation,omitempty"`
}

type CaptureSurface struct {
	mu    sync.RWMutex
	state CaptureSurfaceSnapshot
}

var _ out.CaptureSurfacePort = (*CaptureSurface)(nil)

func NewCaptureSurface() *CaptureSurface {
	return &CaptureSurface{}
}

func (s *CaptureSurface) SetHint(hint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Hint = hint
	s.state.HintVisible = true
}

func (s *CaptureSurface) ClearHint() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Hint = ""
	s.state.HintVisible = false
}

func (s *CaptureSurface) OpenSubject() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SubjectOpen = true
	s.state.SubjectFocus = true
	s.state.HintVisible = false
}

func (s *CaptureSurface) CloseSubject() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SubjectOpen = false
	s.state.SubjectFocus = false
	s.state.Validation = ""
}

func (s *CaptureSurface) ClearSubjectField() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Validation = ""
}

// ClearDatePicker resets the native picker so the same date can be picked again.
func (s *CaptureSurface) ClearDatePicker() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DatePickerResets++
}

func (s *CaptureSurface) ShowValidation(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Validation = message
}

func (s *CaptureSurface) Snapshot() CaptureSurfaceSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
