package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/suchimauz/appointment-reminder-bot/internal/config"
)

const (
	pickerDateLayout   = "2006-01-02"
	captureDateLayout  = "Monday, January 2, 2006"
	listDisplayLayout  = "1/2/2006 03:04 PM"
	timestampLayout    = "1/2/2006, 3:04:05 PM"
	clockDisplayLayout = "3:04:05 PM"
)

// FormatPickerDate turns a date picker value (YYYY-MM-DD) into a long English date.
func FormatPickerDate(raw string) (string, error) {
	parsed, err := time.Parse(pickerDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return parsed.Format(captureDateLayout), nil
}

// FormatClock serializes a time picker selection as "H:MM AM".
func FormatClock(hour, minute int, meridiem string) string {
	return fmt.Sprintf("%d:%02d %s", hour, minute, meridiem)
}

// FormatListTime is the appointment list rendering; the edit form is prefilled with it.
func FormatListTime(t time.Time) string {
	return t.In(config.TimeZone).Format(listDisplayLayout)
}

func FormatTimestamp(t time.Time) string {
	return t.In(config.TimeZone).Format(timestampLayout)
}

func FormatClockTime(t time.Time) string {
	return t.In(config.TimeZone).Format(clockDisplayLayout)
}
