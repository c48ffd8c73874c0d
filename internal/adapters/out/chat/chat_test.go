package chat

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/suchimauz/appointment-reminder-bot/internal/adapters/out/logger"
	"github.com/suchimauz/appointment-reminder-bot/internal/core/domain"
)

func TestTranscriptKeepsNewest(t *testing.T) {
	transcript := NewTranscript(3, logger.NewNopLogger())

	for i := 0; i < 5; i++ {
		transcript.Append(domain.ChatMessage{Role: domain.ChatRoleBot, Text: fmt.Sprint(i)})
	}

	messages := transcript.Messages()
	assert.Len(t, messages, 3)
	assert.Equal(t, "2", messages[0].Text)
	assert.Equal(t, "4", messages[2].Text)
}

func TestTranscriptConcurrentAppend(t *testing.T) {
	transcript := NewTranscript(0, logger.NewNopLogger())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			transcript.Append(domain.ChatMessage{Role: domain.ChatRoleUser, Text: "x"})
		}()
	}
	wg.Wait()

	assert.Len(t, transcript.Messages(), 50)
}

func TestTranscriptMessagesIsCopy(t *testing.T) {
	transcript := NewTranscript(10, logger.NewNopLogger())
	transcript.Append(domain.ChatMessage{Text: "a"})

	messages := transcript.Messages()
	messages[0].Text = "changed"

	assert.Equal(t, "a", transcript.Messages()[0].Text)
}

func TestAppointmentViewLastRenderWins(t *testing.T) {
	view := NewAppointmentView()

	view.Render(domain.AppointmentListView{State: domain.AppointmentListLoading})
	view.Render(domain.AppointmentListView{
		State: domain.AppointmentListLoaded,
		Items: []domain.AppointmentItem{{ID: 7, Subject: "Dentist"}},
	})

	assert.Equal(t, 2, view.Renders())
	assert.Equal(t, domain.AppointmentListLoaded, view.Current().State)

	item, ok := view.Current().Item(7)
	assert.True(t, ok)
	assert.Equal(t, "Dentist", item.Subject)
}

func TestCaptureSurfaceSnapshot(t *testing.T) {
	surface := NewCaptureSurface()

	surface.SetHint("📅 Date: x ... (Select Time)")
	assert.True(t, surface.Snapshot().HintVisible)

	surface.OpenSubject()
	surface.ShowValidation("Please enter a subject!")
	snapshot := surface.Snapshot()
	assert.True(t, snapshot.SubjectOpen)
	assert.True(t, snapshot.SubjectFocus)
	assert.False(t, snapshot.HintVisible)
	assert.Equal(t, "Please enter a subject!", snapshot.Validation)

	surface.CloseSubject()
	surface.ClearDatePicker()
	snapshot = surface.Snapshot()
	assert.False(t, snapshot.SubjectOpen)
	assert.Empty(t, snapshot.Validation)
	assert.Equal(t, 1, snapshot.DatePickerResets)
}
