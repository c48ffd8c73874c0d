package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
)

var (
	timeOfDayPattern = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(?:am|pm)?\b`)
	calendarPattern  = regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{1,2}(?:st|nd|rd|th)?\b|\b\d{1,2}\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\b|\b(?:mon|tue|wed|thu|fri|sat|sun)[a-z]*\b`)
)

const (
	replyDetails = "I'd be happy to help you schedule an appointment! Could you please provide the following details:\n\n" +
		"• Date and time\n• Type of appointment\n• Any specific preferences?"
	replyReminderSetup = "Sure! I can set up a reminder for you. Please tell me:\n\n" +
		"• What should I remind you about?\n• When would you like to be reminded?"
	replyCancel = "I can help you cancel an appointment. Could you please specify which appointment you'd like to cancel? " +
		"You can provide the date or appointment ID."
	replyList = "Here are your upcoming appointments:\n\n" +
		"📅 Tomorrow, 2:00 PM - Doctor's Appointment\n📅 Friday, 10:00 AM - Team Meeting\n📅 Next Monday, 3:30 PM - Dentist\n\n" +
		"Would you like to modify any of these?"
	replyHelp = "I can help you with:\n\n" +
		"✅ Scheduling new appointments\n✅ Setting reminders\n✅ Viewing your calendar\n" +
		"✅ Canceling or rescheduling appointments\n✅ Sending notifications\n\nJust let me know what you need!"
	replyThanks   = "You're welcome! 😊 Is there anything else I can help you with?"
	replyGreeting = "Hello! How can I assist you with your appointments today?"

	replyUnclassifiedFormat = "I understand you're asking about: \"%s\"\n\n" +
		"Could you provide more details? I can help you schedule appointments, set reminders, or manage your calendar."
)

// intentInput is what every rule sees.
type intentInput struct {
	text       string
	lower      string
	structured *domain.ScheduleRequest
}

type intentRule struct {
	name     string
	matches  func(in intentInput) bool
	category domain.IntentCategory
	query    domain.QueryKind
	reply    string
}

// IntentClassifier evaluates its rules in order, the first match wins.
// Date and time detection comes before keywords so "meeting at 3:30pm" is scheduled.
type IntentClassifier struct {
	rules []intentRule
}

func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{
		rules: []intentRule{
			{
				name:     "schedule",
				matches:  hasScheduleSignal,
				category: domain.IntentSchedule,
			},
			{
				name:     "details",
				matches:  containsAny("appointment", "schedule", "book", "meeting"),
				category: domain.IntentQuery,
				query:    domain.QueryDetails,
				reply:    replyDetails,
			},
			{
				name:     "reminder",
				matches:  containsAny("reminder", "remind"),
				category: domain.IntentQuery,
				query:    domain.QueryReminderSetup,
				reply:    replyReminderSetup,
			},
			{
				name:     "cancel",
				matches:  containsAny("cancel", "delete"),
				category: domain.IntentQuery,
				query:    domain.QueryCancel,
				reply:    replyCancel,
			},
			{
				name:     "list",
				matches:  containsAny("view", "show", "list"),
				category: domain.IntentQuery,
				query:    domain.QueryList,
				reply:    replyList,
			},
			{
				name:     "help",
				matches:  containsAny("help", "what can you do"),
				category: domain.IntentQuery,
				query:    domain.QueryHelp,
				reply:    replyHelp,
			},
			{
				name:     "thanks",
				matches:  containsAny("thank", "thanks"),
				category: domain.IntentThanks,
				reply:    replyThanks,
			},
			{
				name:     "greeting",
				matches:  containsAny("hello", "hi", "hey"),
				category: domain.IntentGreeting,
				reply:    replyGreeting,
			},
		},
	}
}

func (c *IntentClassifier) Classify(text string, structured *domain.ScheduleRequest) domain.Classification {
	in := intentInput{
		text:       text,
		lower:      strings.ToLower(text),
		structured: structured,
	}

	for _, rule := range c.rules {
		if !rule.matches(in) {
			continue
		}

		if rule.category == domain.IntentSchedule {
			request := domain.NewFreeformRequest(text)
			if structured != nil {
				request = *structured
			}
			return domain.Classification{
				Category: domain.IntentSchedule,
				Request:  &request,
			}
		}

		return domain.Classification{
			Category: rule.category,
			Query:    rule.query,
			Reply:    rule.reply,
		}
	}

	return domain.Classification{
		Category: domain.IntentUnclassified,
		Reply:    fmt.Sprintf(replyUnclassifiedFormat, text),
	}
}

func hasScheduleSignal(in intentInput) bool {
	return in.structured != nil ||
		timeOfDayPattern.MatchString(in.lower) ||
		calendarPattern.MatchString(in.lower)
}

func containsAny(keywords ...string) func(in intentInput) bool {
	return func(in intentInput) bool {
		for _, keyword := range keywords {
			if strings.Contains(in.lower, keyword) {
				return true
			}
		}
		return false
	}
}
