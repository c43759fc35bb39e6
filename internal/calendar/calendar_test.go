package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d4shko/salon-booking-service/internal/calendar"
	"github.com/d4shko/salon-booking-service/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsSameDay(t *testing.T) {
	morning := time.Date(2025, 10, 15, 8, 30, 0, 0, time.UTC)
	evening := time.Date(2025, 10, 15, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, calendar.IsSameDay(morning, evening))
	assert.False(t, calendar.IsSameDay(evening, nextDay))
}

func TestIsPastDay(t *testing.T) {
	now := time.Date(2025, 10, 15, 14, 0, 0, 0, time.UTC)

	assert.True(t, calendar.IsPastDay(date(2025, 10, 14), now))
	// Сегодняшний день не считается прошедшим, даже поздно вечером
	assert.False(t, calendar.IsPastDay(time.Date(2025, 10, 15, 0, 1, 0, 0, time.UTC), now))
	assert.False(t, calendar.IsPastDay(date(2025, 10, 16), now))
}

func TestIsBusinessDay(t *testing.T) {
	monToSat := domain.DefaultWorkingDays

	assert.True(t, calendar.IsBusinessDay(date(2025, 10, 13), monToSat))  // Monday
	assert.True(t, calendar.IsBusinessDay(date(2025, 10, 18), monToSat))  // Saturday
	assert.False(t, calendar.IsBusinessDay(date(2025, 10, 19), monToSat)) // Sunday

	assert.False(t, calendar.IsBusinessDay(date(2025, 10, 13), domain.WorkingDays(0)))
}

func TestWeekDays(t *testing.T) {
	// 2025-10-15 is a Wednesday; the week is 13th (Mon) through 19th (Sun)
	days := calendar.WeekDays(date(2025, 10, 15))

	require.Len(t, days, 7)
	assert.Equal(t, date(2025, 10, 13), days[0])
	assert.Equal(t, time.Monday, days[0].Weekday())
	assert.Equal(t, date(2025, 10, 19), days[6])
	assert.Equal(t, time.Sunday, days[6].Weekday())
}

func TestWeekDaysOnSunday(t *testing.T) {
	// Воскресенье относится к неделе, начавшейся в предыдущий понедельник
	days := calendar.WeekDays(date(2025, 10, 19))

	require.Len(t, days, 7)
	assert.Equal(t, date(2025, 10, 13), days[0])
}

func TestFirstAndLastBusinessDayOfWeek(t *testing.T) {
	monToSat := domain.DefaultWorkingDays
	wed := date(2025, 10, 15)

	assert.Equal(t, date(2025, 10, 13), calendar.FirstBusinessDayOfWeek(wed, monToSat))
	assert.Equal(t, date(2025, 10, 18), calendar.LastBusinessDayOfWeek(wed, monToSat))

	tueToThu := domain.NewWorkingDays(time.Tuesday, time.Wednesday, time.Thursday)
	assert.Equal(t, date(2025, 10, 14), calendar.FirstBusinessDayOfWeek(wed, tueToThu))
	assert.Equal(t, date(2025, 10, 16), calendar.LastBusinessDayOfWeek(wed, tueToThu))
}

func TestBusinessDayOfWeekDegenerateConfig(t *testing.T) {
	// Пустой набор рабочих дней: откатываемся к границам недели
	empty := domain.WorkingDays(0)
	wed := date(2025, 10, 15)

	assert.Equal(t, date(2025, 10, 13), calendar.FirstBusinessDayOfWeek(wed, empty))
	assert.Equal(t, date(2025, 10, 19), calendar.LastBusinessDayOfWeek(wed, empty))
}

func TestMonthDays(t *testing.T) {
	monToSat := domain.DefaultWorkingDays

	// October 2025: the 1st is a Wednesday, the 31st is a Friday.
	// View starts on Mon Sep 29 (first working day of that week)
	// and ends on Sat Nov 1 (last working day of the closing week).
	days := calendar.MonthDays(date(2025, 10, 10), monToSat)

	require.NotEmpty(t, days)
	assert.Equal(t, date(2025, 9, 29), days[0])
	assert.Equal(t, date(2025, 11, 1), days[len(days)-1])

	// Последовательность без пропусков
	for i := 1; i < len(days); i++ {
		assert.Equal(t, days[i-1].AddDate(0, 0, 1), days[i])
	}
}

func TestMonthDaysSundayOnly(t *testing.T) {
	sundayOnly := domain.NewWorkingDays(time.Sunday)

	days := calendar.MonthDays(date(2025, 10, 10), sundayOnly)

	require.NotEmpty(t, days)
	assert.Equal(t, time.Sunday, days[0].Weekday())
	assert.Equal(t, time.Sunday, days[len(days)-1].Weekday())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{15, "15m"},
		{60, "1h"},
		{90, "1h 30m"},
		{120, "2h"},
		{135, "2h 15m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, calendar.FormatDuration(tt.minutes))
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2025-10-15", calendar.FormatDate(date(2025, 10, 15)))
}
