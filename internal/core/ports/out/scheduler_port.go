package out

import (
	"context"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
)

type NotificationChannel string

const (
	NotificationEmail        NotificationChannel = "email"
	NotificationSMS          NotificationChannel = "sms"
	NotificationSMSSimulated NotificationChannel = "sms_simulated"
)

const ScheduledImmediate = "Immediate"

const MutationStatusSuccess = "success"

type ScheduleResponse struct {
	ScheduledTime string                `json:"scheduled_time"`
	DelaySeconds  float64               `json:"delay_seconds"`
	Notifications []NotificationChannel `json:"notifications"`
}

func (r ScheduleResponse) Immediate() bool {
	return r.ScheduledTime == "" || r.ScheduledTime == ScheduledImmediate
}

func (r ScheduleResponse) Queued(channel NotificationChannel) bool {
	for _, c := range r.Notifications {
		if c == channel {
			return true
		}
	}
	return false
}

type MutationResponse struct {
	Status  string `json:"status"`
	NewTime string `json:"new_time,omitempty"`
	Message string `json:"message,omitempty"`
}

func (r MutationResponse) Succeeded() bool {
	return r.Status == MutationStatusSuccess
}

// SchedulerPort is the backend REST surface. Failures to reach or decode the backend
// are returned as *domain.TransportError.
type SchedulerPort interface {
	Schedule(ctx context.Context, request domain.ScheduleRequest, contact domain.ContactProfile) (*ScheduleResponse, error)
	ListAppointments(ctx context.Context, email, phone string) ([]domain.Appointment, error)
	UpdateAppointment(ctx context.Context, id int, subject, dateStr string) (*MutationResponse, error)
	DeleteAppointment(ctx context.Context, id int) (*MutationResponse, error)
}
