package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/json_types"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/in"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/ports/out"
	"github.com/suchimauz/appointment-reminder-bot/internal/utils"
)

const (
	listMissingContactMessage = "Please save your Email or Phone in Settings ⚙️ to view appointments."
	listLoadingMessage        = "Loading..."
	listEmptyMessage          = "No upcoming appointments found."
	listFailedMessage         = "Failed to load appointments. Is the server running?"

	editFieldsRequiredMessage = "Please fill in all fields."
	deleteConfirmPrompt       = "Are you sure you want to cancel this appointment?"
	connectionFailedMessage   = "Error connecting to server."
)

// AppointmentRegistry keeps the rendered appointment list in line with the backend.
// Every mutation is followed by a full reload, nothing is patched locally.
type AppointmentRegistry struct {
	scheduler  out.SchedulerPort
	profiles   out.ProfilePort
	view       out.AppointmentViewPort
	transcript out.TranscriptPort
	logger     out.LoggerPort
}

var _ in.AppointmentUseCase = (*AppointmentRegistry)(nil)

func NewAppointmentRegistry(
	scheduler out.SchedulerPort,
	profiles out.ProfilePort,
	view out.AppointmentViewPort,
	transcript out.TranscriptPort,
	logger out.LoggerPort,
) *AppointmentRegistry {
	return &AppointmentRegistry{
		scheduler:  scheduler,
		profiles:   profiles,
		view:       view,
		transcript: transcript,
		logger:     logger.WithModule("AppointmentRegistry"),
	}
}

// List renders the appointments owned by the profile's email and/or phone.
func (r *AppointmentRegistry) List(ctx context.Context, profile domain.ContactProfile) (domain.AppointmentListView, error) {
	if !profile.HasContact() {
		return r.render(domain.AppointmentListView{
			State:   domain.AppointmentListMissingContact,
			Message: listMissingContactMessage,
		}), nil
	}

	r.render(domain.AppointmentListView{
		State:   domain.AppointmentListLoading,
		Message: listLoadingMessage,
	})

	appointments, err := r.scheduler.ListAppointments(ctx, profile.Email, profile.Phone)
	if err != nil {
		r.logger.Error("appointments.list.failed", out.LogFields{
			"error": err.Error(),
		})
		return r.render(domain.AppointmentListView{
			State:   domain.AppointmentListFailed,
			Message: listFailedMessage,
		}), err
	}

	if len(appointments) == 0 {
		return r.render(domain.AppointmentListView{
			State:   domain.AppointmentListEmpty,
			Message: listEmptyMessage,
		}), nil
	}

	items := make([]domain.AppointmentItem, 0, len(appointments))
	for _, appointment := range appointments {
		items = append(items, domain.AppointmentItem{
			ID:      appointment.ID,
			Subject: appointment.Subject,
			Display: utils.FormatListTime(appointment.Time.Date),
		})
	}

	r.logger.Debug("appointments.list.loaded", out.LogFields{
		"count": len(items),
	})

	return r.render(domain.AppointmentListView{
		State: domain.AppointmentListLoaded,
		Items: items,
	}), nil
}

// Refresh reloads the list with the profile as it is saved right now.
func (r *AppointmentRegistry) Refresh(ctx context.Context) (domain.AppointmentListView, error) {
	profile, err := r.profiles.Load(ctx)
	if err != nil {
		r.logger.Error("appointments.profile.load_failed", out.LogFields{
			"error": err.Error(),
		})
		return domain.AppointmentListView{}, err
	}
	return r.List(ctx, profile)
}

// RequestEdit prefills the edit form from the last rendered list.
func (r *AppointmentRegistry) RequestEdit(ctx context.Context, id int) (domain.AppointmentEditForm, error) {
	item, ok := r.view.Current().Item(id)
	if !ok {
		return domain.AppointmentEditForm{}, domain.ErrEditItemNotVisible
	}
	return domain.AppointmentEditForm{
		ID:      item.ID,
		Subject: item.Subject,
		DateStr: item.Display,
	}, nil
}

// Edit sends the subject and date string as typed; the backend parses the date.
func (r *AppointmentRegistry) Edit(ctx context.Context, id int, subject, dateStr string) error {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(dateStr) == "" {
		return &domain.ValidationError{Message: editFieldsRequiredMessage}
	}

	response, err := r.scheduler.UpdateAppointment(ctx, id, subject, dateStr)
	if err != nil {
		r.logger.Error("appointments.update.failed", out.LogFields{
			"id":    id,
			"error": err.Error(),
		})
		return &domain.TransportError{Op: "appointments.update", Hint: connectionFailedMessage, Err: err}
	}

	if !response.Succeeded() {
		r.logger.Warn("appointments.update.rejected", out.LogFields{
			"id":      id,
			"status":  response.Status,
			"message": response.Message,
		})
		return &domain.ServerRejection{Op: "update", Message: "Failed to update: " + response.Message}
	}

	r.reload(ctx)

	newTime := response.NewTime
	if parsed, err := json_types.ParseDateTime(response.NewTime); err == nil {
		newTime = utils.FormatTimestamp(parsed)
	}
	r.say(fmt.Sprintf("✏️ Appointment updated: \"%s\" is now set for %s", subject, newTime))

	r.logger.Info("appointments.update.succeeded", out.LogFields{
		"id":      id,
		"newTime": response.NewTime,
	})
	return nil
}

// RequestDelete asks the gate first. A declined gate makes no call.
func (r *AppointmentRegistry) RequestDelete(ctx context.Context, id int, gate in.ConfirmationGate) (bool, error) {
	if gate == nil || !gate.Confirm(ctx, deleteConfirmPrompt) {
		r.logger.Debug("appointments.delete.declined", out.LogFields{
			"id": id,
		})
		return false, nil
	}

	response, err := r.scheduler.DeleteAppointment(ctx, id)
	if err != nil {
		r.logger.Error("appointments.delete.failed", out.LogFields{
			"id":    id,
			"error": err.Error(),
		})
		return false, &domain.TransportError{Op: "appointments.delete", Hint: connectionFailedMessage, Err: err}
	}

	if !response.Succeeded() {
		r.logger.Warn("appointments.delete.rejected", out.LogFields{
			"id":      id,
			"status":  response.Status,
			"message": response.Message,
		})
		return false, &domain.ServerRejection{Op: "delete", Message: "Failed to delete: " + response.Message}
	}

	r.reload(ctx)
	r.say("🗑️ Appointment cancelled.")

	r.logger.Info("appointments.delete.succeeded", out.LogFields{
		"id": id,
	})
	return true, nil
}

// reload failures are already rendered as the failed view.
func (r *AppointmentRegistry) reload(ctx context.Context) {
	if _, err := r.Refresh(ctx); err != nil {
		r.logger.Warn("appointments.reload.failed", out.LogFields{
			"error": err.Error(),
		})
	}
}

func (r *AppointmentRegistry) render(view domain.AppointmentListView) domain.AppointmentListView {
	r.view.Render(view)
	return view
}

func (r *AppointmentRegistry) say(text string) {
	r.transcript.Append(domain.ChatMessage{
		Role: domain.ChatRoleBot,
		Text: text,
		At:   time.Now(),
	})
}
