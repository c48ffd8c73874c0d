package domain

type IntentCategory string

const (
	IntentSchedule     IntentCategory = "schedule"
	IntentQuery        IntentCategory = "query"
	IntentGreeting     IntentCategory = "greeting"
	IntentThanks       IntentCategory = "thanks"
	IntentUnclassified IntentCategory = "unclassified"
)

type QueryKind string

const (
	QueryDetails       QueryKind = "details"
	QueryReminderSetup QueryKind = "reminder-setup"
	QueryCancel        QueryKind = "cancel"
	QueryList          QueryKind = "list"
	QueryHelp          QueryKind = "help"
)

// Classification is the classifier output. Request is set only for IntentSchedule,
// Reply is set for every other category.
type Classification struct {
	Category IntentCategory   `json:"category"`
	Query    QueryKind        `json:"query,omitempty"`
	Reply    string           `json:"reply,omitempty"`
	Request  *ScheduleRequest `json:"-"`
}

func (c Classification) IsSchedule() bool {
	return c.Category == IntentSchedule
}
