package domain

import "fmt"

type ScheduleRequestKind string

const (
	ScheduleRequestStructured ScheduleRequestKind = "structured"
	ScheduleRequestFreeform   ScheduleRequestKind = "freeform"
)

// ScheduleRequest is either a structured {subject, date, time} request built by the
// capture flow or a freeform request wrapping the raw chat message. It is immutable.
type ScheduleRequest struct {
	kind    ScheduleRequestKind
	subject string
	date    string
	time    string
	message string
}

func NewStructuredRequest(subject, date, time string) ScheduleRequest {
	return ScheduleRequest{
		kind:    ScheduleRequestStructured,
		subject: subject,
		date:    date,
		time:    time,
	}
}

func NewFreeformRequest(message string) ScheduleRequest {
	return ScheduleRequest{
		kind:    ScheduleRequestFreeform,
		message: message,
	}
}

func (r ScheduleRequest) Kind() ScheduleRequestKind { return r.kind }
func (r ScheduleRequest) IsStructured() bool        { return r.kind == ScheduleRequestStructured }
func (r ScheduleRequest) Subject() string           { return r.subject }
func (r ScheduleRequest) Date() string              { return r.date }
func (r ScheduleRequest) Time() string              { return r.time }
func (r ScheduleRequest) Message() string           { return r.message }

// DateString is the date and time the backend parses for a structured request.
func (r ScheduleRequest) DateString() string {
	return fmt.Sprintf("%s %s", r.date, r.time)
}

// Text is the chat line for the request.
func (r ScheduleRequest) Text() string {
	if r.IsStructured() {
		return fmt.Sprintf("%s on %s at %s", r.subject, r.date, r.time)
	}
	return r.message
}

// Label names the request in the reminder popup.
func (r ScheduleRequest) Label() string {
	if r.IsStructured() {
		return r.subject
	}
	return r.message
}
