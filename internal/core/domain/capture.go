package domain

type CaptureState string

const (
	CaptureIdle           CaptureState = "idle"
	CaptureDateOnly       CaptureState = "date_only"
	CaptureTimeOnly       CaptureState = "time_only"
	CaptureBothSelected   CaptureState = "both_selected"
	CaptureSubjectPending CaptureState = "subject_pending"
)

// PendingCapture holds the picker values collected so far. Nil means not picked.
type PendingCapture struct {
	Date *string `json:"date"`
	Time *string `json:"time"`
}

func (p PendingCapture) Complete() bool {
	return p.Date != nil && p.Time != nil
}

func (p PendingCapture) Empty() bool {
	return p.Date == nil && p.Time == nil
}

type Meridiem string

const (
	MeridiemAM Meridiem = "AM"
	MeridiemPM Meridiem = "PM"
)
