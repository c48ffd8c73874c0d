package json_types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/suchimauz/appointment-reminder-bot/internal/config"
)

// Layouts the backend uses. Python isoformat drops the offset for naive times
// and may carry microseconds.
var dateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDateTime reads an ISO-8601 timestamp. Times without an offset are placed in config.TimeZone.
func ParseDateTime(str string) (time.Time, error) {
	str = strings.TrimSpace(str)
	if parsed, err := time.Parse(time.RFC3339Nano, str); err == nil {
		return parsed, nil
	}

	for _, layout := range dateTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, str, config.TimeZone); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("failed to parse time: %q", str)
}

type DateTime struct {
	Date time.Time
}

func (t *DateTime) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to parse time: %w", err)
	}

	parsedDate, err := ParseDateTime(str)
	if err != nil {
		return err
	}

	*t = DateTime{Date: parsedDate}
	return nil
}

func (t DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Date.Format(time.RFC3339))
}
