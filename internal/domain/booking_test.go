package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingOccupies(t *testing.T) {
	tests := []struct {
		status   BookingStatus
		occupies bool
	}{
		{StatusConfirmed, true},
		{StatusDraft, false},
		{StatusCompleted, false},
		{StatusCancelledByClient, false},
		{StatusCancelledBySalon, false},
		{StatusNoShow, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.occupies, b.Occupies())
		})
	}
}

func TestBookingEndTime(t *testing.T) {
	b := &Booking{StartTime: "10:00", DurationMinutes: 90}

	end, err := b.EndTime()

	require.NoError(t, err)
	assert.Equal(t, "11:30", end.String())
}

func TestBookingIsUpcoming(t *testing.T) {
	now := time.Date(2025, 10, 13, 12, 0, 0, 0, time.UTC)

	t.Run("future day", func(t *testing.T) {
		b := &Booking{
			BookingDate:     time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC),
			StartTime:       "09:00",
			DurationMinutes: 30,
		}
		assert.True(t, b.IsUpcoming(now))
	})

	t.Run("past day", func(t *testing.T) {
		b := &Booking{
			BookingDate:     time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC),
			StartTime:       "18:00",
			DurationMinutes: 30,
		}
		assert.False(t, b.IsUpcoming(now))
	})

	t.Run("today not yet finished", func(t *testing.T) {
		b := &Booking{
			BookingDate:     time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
			StartTime:       "11:45",
			DurationMinutes: 30,
		}
		assert.True(t, b.IsUpcoming(now))
	})

	t.Run("today already finished", func(t *testing.T) {
		b := &Booking{
			BookingDate:     time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
			StartTime:       "11:00",
			DurationMinutes: 60,
		}
		assert.False(t, b.IsUpcoming(now))
	})
}

func TestBookingCancellation(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusDraft}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusNoShow}).CanBeCancelled())

	assert.True(t, (&Booking{Status: StatusCancelledByClient}).IsCancelled())
	assert.True(t, (&Booking{Status: StatusCancelledBySalon}).IsCancelled())
	assert.False(t, (&Booking{Status: StatusConfirmed}).IsCancelled())
}

func TestWorkingDays(t *testing.T) {
	wd := NewWorkingDays(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday)

	assert.True(t, wd.Contains(time.Monday))
	assert.True(t, wd.Contains(time.Saturday))
	assert.False(t, wd.Contains(time.Sunday))
	assert.False(t, wd.IsEmpty())
	assert.Len(t, wd.Weekdays(), 6)

	assert.True(t, NewWorkingDays().IsEmpty())
}

func TestBusinessHoursIsValid(t *testing.T) {
	assert.True(t, BusinessHours{Start: "09:00", End: "18:00"}.IsValid())
	assert.False(t, BusinessHours{Start: "18:00", End: "09:00"}.IsValid())
	assert.False(t, BusinessHours{Start: "10:00", End: "10:00"}.IsValid())
	assert.False(t, BusinessHours{Start: "open", End: "18:00"}.IsValid())
}

func TestScheduleConfigFlags(t *testing.T) {
	serviceID := int64(5)

	salonWide := &ScheduleConfig{SalonID: 1}
	assert.True(t, salonWide.IsSalonWide())
	assert.False(t, salonWide.IsServiceSpecific())
	assert.False(t, salonWide.HasAdvanceBookingLimit())
	assert.False(t, salonWide.HasClientBookingCap())
	assert.False(t, salonWide.HasLunchBreak())

	specific := &ScheduleConfig{
		SalonID:              1,
		ServiceID:            &serviceID,
		LunchBreak:           &LunchBreak{Start: "13:00", End: "14:00"},
		AdvanceBookingDays:   30,
		MaxBookingsPerClient: 3,
	}
	assert.True(t, specific.IsServiceSpecific())
	assert.True(t, specific.HasAdvanceBookingLimit())
	assert.True(t, specific.HasClientBookingCap())
	assert.True(t, specific.HasLunchBreak())
}
