package domain

import (
	"github.com/suchimauz/appointment-reminder-bot/internal/core/json_types"
)

// Appointment is owned by the backend. The client only reads, edits and deletes it by ID.
type Appointment struct {
	ID      int                 `json:"id"`
	Subject string              `json:"subject"`
	Time    json_types.DateTime `json:"time"`
}

type AppointmentListState string

const (
	AppointmentListMissingContact AppointmentListState = "missing_contact"
	AppointmentListLoading        AppointmentListState = "loading"
	AppointmentListEmpty          AppointmentListState = "empty"
	AppointmentListLoaded         AppointmentListState = "loaded"
	AppointmentListFailed         AppointmentListState = "failed"
)

type AppointmentItem struct {
	ID      int    `json:"id"`
	Subject string `json:"subject"`
	Display string `json:"display"`
}

// AppointmentListView is one full render of the appointment list.
type AppointmentListView struct {
	State   AppointmentListState `json:"state"`
	Items   []AppointmentItem    `json:"items"`
	Message string               `json:"message,omitempty"`
}

func (v AppointmentListView) Item(id int) (AppointmentItem, bool) {
	for _, item := range v.Items {
		if item.ID == id {
			return item, true
		}
	}
	return AppointmentItem{}, false
}

// AppointmentEditForm is what the edit dialog is prefilled with.
type AppointmentEditForm struct {
	ID      int    `json:"id"`
	Subject string `json:"subject"`
	DateStr string `json:"date_str"`
}
