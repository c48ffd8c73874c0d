package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suchimauz/appointment-reminder-bot/internal/config"
)

func TestFormatPickerDate(t *testing.T) {
	got, err := FormatPickerDate("2025-12-25")
	require.NoError(t, err)
	assert.Equal(t, "Thursday, December 25, 2025", got)

	_, err = FormatPickerDate("25/12/2025")
	assert.Error(t, err)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "3:05 PM", FormatClock(3, 5, "PM"))
	assert.Equal(t, "12:00 AM", FormatClock(12, 0, "AM"))
}

func TestDisplayLayouts(t *testing.T) {
	prev := config.TimeZone
	config.TimeZone = time.UTC
	t.Cleanup(func() { config.TimeZone = prev })

	ts := time.Date(2025, 12, 5, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "12/5/2025 03:04 PM", FormatListTime(ts))
	assert.Equal(t, "12/5/2025, 3:04:00 PM", FormatTimestamp(ts))
	assert.Equal(t, "3:04:00 PM", FormatClockTime(ts))

	morning := time.Date(2026, 3, 7, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "3/7/2026 09:05 AM", FormatListTime(morning))
}
