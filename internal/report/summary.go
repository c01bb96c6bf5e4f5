package report

import (
	"sort"
	"time"

	"safariplanner/internal/model"
)

// Progress scores planning completeness in quarter steps: attendees present,
// attendees confirmed (presence implies confirmation in the persisted model),
// any expense tracked, any schedule item. Range is {0, 25, 50, 75, 100}.
func Progress(attendees []model.Attendee, expenses []model.Expense, schedule []model.ScheduleItem) int {
	score := 0
	if len(attendees) > 0 {
		// Stored attendees count as confirmed, so presence earns both steps.
		score += 50
	}
	if len(expenses) > 0 {
		score += 25
	}
	if len(schedule) > 0 {
		score += 25
	}
	return score
}

// NextUpcoming returns the first schedule item at or after now, comparing by
// combined date and time with blank times treated as midnight. Items whose
// date does not parse are skipped. Returns nil when nothing is upcoming.
func NextUpcoming(schedule []model.ScheduleItem, now time.Time) *model.ScheduleItem {
	type timed struct {
		item model.ScheduleItem
		at   time.Time
	}
	upcoming := make([]timed, 0, len(schedule))
	for _, item := range schedule {
		at, ok := item.StartsAt()
		if !ok {
			continue
		}
		if !at.Before(now) {
			upcoming = append(upcoming, timed{item: item, at: at})
		}
	}
	if len(upcoming) == 0 {
		return nil
	}
	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].at.Before(upcoming[j].at) })
	next := upcoming[0].item
	return &next
}

// UpcomingCount counts schedule items at or after now.
func UpcomingCount(schedule []model.ScheduleItem, now time.Time) int {
	count := 0
	for _, item := range schedule {
		if at, ok := item.StartsAt(); ok && !at.Before(now) {
			count++
		}
	}
	return count
}
