package date

import "time"

// Status places a due date relative to the current day
type Status string

const (
	None     Status = "none"
	Overdue  Status = "overdue"
	Today    Status = "today"
	Tomorrow Status = "tomorrow"
	ThisWeek Status = "this-week"
	Future   Status = "future"
)

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysFrom returns the number of calendar days between now's day and t's day,
// with t read in now's location. Negative values are in the past.
func DaysFrom(t, now time.Time) int {
	y1, m1, d1 := t.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	// compare in UTC, local days can be 23 or 25 hours long
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int((a.Unix() - b.Unix()) / (24 * 60 * 60))
}

func IsToday(t, now time.Time) bool {
	return DaysFrom(t, now) == 0
}

func IsTomorrow(t, now time.Time) bool {
	return DaysFrom(t, now) == 1
}

// IsPast reports whether t falls on a day strictly before today
func IsPast(t, now time.Time) bool {
	return DaysFrom(t, now) < 0
}

// IsUpcoming reports whether t falls on a day strictly after today
func IsUpcoming(t, now time.Time) bool {
	return DaysFrom(t, now) > 0
}

// IsThisWeek reports whether t falls in the calendar week of now.
// Weeks start on Sunday.
func IsThisWeek(t, now time.Time) bool {
	offset := int(now.Weekday() - time.Sunday)
	days := DaysFrom(t, now)
	return days >= -offset && days < 7-offset
}

// GetStatus buckets an optional due date
func GetStatus(due *time.Time, now time.Time) Status {
	if due == nil {
		return None
	}
	switch {
	case IsPast(*due, now):
		return Overdue
	case IsToday(*due, now):
		return Today
	case IsTomorrow(*due, now):
		return Tomorrow
	case IsThisWeek(*due, now):
		return ThisWeek
	}
	return Future
}

// Format renders a due date the way task rows display it
func Format(due *time.Time, now time.Time) string {
	if due == nil {
		return ""
	}
	switch GetStatus(due, now) {
	case Today:
		return "Today"
	case Tomorrow:
		return "Tomorrow"
	case Overdue:
		return "Overdue (" + due.Format("Jan 2") + ")"
	}
	return due.Format("Jan 2")
}
