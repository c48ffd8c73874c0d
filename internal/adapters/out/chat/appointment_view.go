package chat

import (
	"sync"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
)

// AppointmentView holds the last rendered list. Last render wins.
type AppointmentView struct {
	mu      sync.RWMutex
	current domain.AppointmentListView
	renders int
}

var _ out.AppointmentViewPort = (*AppointmentView)(nil)

func NewAppointmentView() *AppointmentView {
	return &AppointmentView{}
}

func (v *AppointmentView) Render(view domain.AppointmentListView) {
	v.mu.Lock()
	defer v.mu.Unlock()

	items := make([]domain.AppointmentItem, len(view.Items))
	copy(items, view.Items)
	view.Items = items

	v.current = view
	v.renders++
}

func (v *AppointmentView) Current() domain.AppointmentListView {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

func (v *AppointmentView) Renders() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.renders
}
