package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safariplanner/internal/model"
)

func TestProgress(t *testing.T) {
	attendees := []model.Attendee{{Name: "Amina"}, {Name: "Karim"}}
	schedule := []model.ScheduleItem{{Title: "a"}, {Title: "b"}, {Title: "c"}}

	tests := []struct {
		name      string
		attendees []model.Attendee
		expenses  []model.Expense
		schedule  []model.ScheduleItem
		want      int
	}{
		{"nothing planned", nil, nil, nil, 0},
		{"attendees only", attendees, nil, nil, 50}, // presence doubles as confirmation
		{"attendees and schedule, no expenses", attendees, nil, schedule, 75},
		{"everything", attendees, []model.Expense{{}}, schedule, 100},
		{"expenses only", nil, []model.Expense{{}}, nil, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Progress(tt.attendees, tt.expenses, tt.schedule))
		})
	}
}

func TestNextUpcoming(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format("2006-01-02")
	}

	t.Run("skips past items and picks the soonest", func(t *testing.T) {
		schedule := []model.ScheduleItem{
			{Title: "yesterday", Date: day(-1), Time: "18:00"},
			{Title: "today earlier", Date: day(0), Time: "09:00"},
			{Title: "tomorrow", Date: day(1), Time: "10:00"},
			{Title: "next week", Date: day(7)},
		}
		next := NextUpcoming(schedule, now)
		require.NotNil(t, next)
		assert.Equal(t, "tomorrow", next.Title)
	})

	t.Run("today with future time wins over tomorrow", func(t *testing.T) {
		schedule := []model.ScheduleItem{
			{Title: "tomorrow", Date: day(1), Time: "10:00"},
			{Title: "tonight", Date: day(0), Time: "20:30"},
		}
		next := NextUpcoming(schedule, now)
		require.NotNil(t, next)
		assert.Equal(t, "tonight", next.Title)
	})

	t.Run("blank time counts as midnight", func(t *testing.T) {
		schedule := []model.ScheduleItem{
			{Title: "today untimed", Date: day(0)}, // midnight, already past noon
			{Title: "tomorrow untimed", Date: day(1)},
		}
		next := NextUpcoming(schedule, now)
		require.NotNil(t, next)
		assert.Equal(t, "tomorrow untimed", next.Title)
	})

	t.Run("nil when nothing upcoming", func(t *testing.T) {
		schedule := []model.ScheduleItem{
			{Title: "past", Date: day(-3), Time: "08:00"},
			{Title: "unparseable", Date: "not-a-date"},
		}
		assert.Nil(t, NextUpcoming(schedule, now))
	})

	t.Run("empty schedule", func(t *testing.T) {
		assert.Nil(t, NextUpcoming(nil, now))
	})
}

func TestUpcomingCount(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	schedule := []model.ScheduleItem{
		{Title: "past", Date: "2026-08-30"},
		{Title: "future", Date: "2026-09-02"},
		{Title: "also future", Date: "2026-09-03", Time: "07:15"},
	}
	assert.Equal(t, 2, UpcomingCount(schedule, now))
}
