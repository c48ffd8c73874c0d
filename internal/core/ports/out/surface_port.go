package out

import "github.com/suchimauz/appointment-reminder-bot/internal/core/domain"

// CaptureSurfacePort is the part of the rendering layer the capture machine drives.
type CaptureSurfacePort interface {
	SetHint(hint string)
	ClearHint()
	OpenSubject()
	CloseSubject()
	ClearSubjectField()
	ClearDatePicker()
	ShowValidation(message string)
}

// AppointmentViewPort receives every list render as it is produced.
type AppointmentViewPort interface {
	Render(view domain.AppointmentListView)
	Current() domain.AppointmentListView
}
