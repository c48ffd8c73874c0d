package in

import (
	"context"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
)

// ConfirmationGate is a blocking yes/no question put to the user.
type ConfirmationGate interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// AppointmentActions is what list items in the rendering layer call into.
type AppointmentActions interface {
	RequestEdit(ctx context.Context, id int) (domain.AppointmentEditForm, error)
	RequestDelete(ctx context.Context, id int, gate ConfirmationGate) (bool, error)
}

type AppointmentUseCase interface {
	AppointmentActions

	List(ctx context.Context, profile domain.ContactProfile) (domain.AppointmentListView, error)
	Refresh(ctx context.Context) (domain.AppointmentListView, error)
	Edit(ctx context.Context, id int, subject, dateStr string) error
}
