// Package calendar contains pure date arithmetic for the booking engine:
// day classification, week/month enumeration and formatting. All functions
// are total and side-effect-free; weeks start on Monday.
package calendar

import (
	"fmt"
	"time"

	"github.com/d4shko/salon-booking-service/internal/domain"
)

// StartOfDay truncates the instant to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsSameDay returns true if both instants fall on the same calendar day
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsPastDay returns true if date is on an earlier calendar day than now.
// Time of day is ignored: today is never a past day.
func IsPastDay(date, now time.Time) bool {
	return StartOfDay(date).Before(StartOfDay(now))
}

// IsToday returns true if date falls on the same calendar day as now
func IsToday(date, now time.Time) bool {
	return IsSameDay(date, now)
}

// IsBusinessDay returns true if the date's weekday is in the working-day set
func IsBusinessDay(date time.Time, workingDays domain.WorkingDays) bool {
	return workingDays.Contains(date.Weekday())
}

// WeekStart returns the Monday of the week containing date
func WeekStart(date time.Time) time.Time {
	day := StartOfDay(date)
	// time.Weekday has Sunday == 0, shift so Monday == 0
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekDays returns the 7 days of the Monday-start week containing date
func WeekDays(date time.Time) []time.Time {
	start := WeekStart(date)
	days := make([]time.Time, 7)
	for i := 0; i < 7; i++ {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// FirstBusinessDayOfWeek returns the first date of the Monday-start week
// containing date whose weekday is a working day. If no day of the week
// qualifies, the Monday itself is returned.
func FirstBusinessDayOfWeek(date time.Time, workingDays domain.WorkingDays) time.Time {
	start := WeekStart(date)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		if IsBusinessDay(day, workingDays) {
			return day
		}
	}
	return start
}

// LastBusinessDayOfWeek returns the last date of the Monday-start week
// containing date whose weekday is a working day. If no day of the week
// qualifies, the Sunday itself is returned.
func LastBusinessDayOfWeek(date time.Time, workingDays domain.WorkingDays) time.Time {
	start := WeekStart(date)
	for i := 6; i >= 0; i-- {
		day := start.AddDate(0, 0, i)
		if IsBusinessDay(day, workingDays) {
			return day
		}
	}
	return start.AddDate(0, 0, 6)
}

// MonthDays returns the ordered dates of the month view containing date:
// from the first working day of the week holding the month's first day
// through the last working day of the week holding the month's last day,
// so the view always begins and ends on a full working-week boundary.
func MonthDays(date time.Time, workingDays domain.WorkingDays) []time.Time {
	firstOfMonth := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	start := FirstBusinessDayOfWeek(firstOfMonth, workingDays)
	end := LastBusinessDayOfWeek(lastOfMonth, workingDays)

	days := make([]time.Time, 0, 42)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

// FormatDate formats a date as YYYY-MM-DD
func FormatDate(date time.Time) string {
	return date.Format(domain.DateFormat)
}

// FormatDuration renders a duration in minutes as "2h", "45m" or "1h 30m"
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
