package domain

import (
	"time"

	"github.com/d4shko/salon-booking-service/pkg/types"
)

// Default configuration values
const (
	DefaultSlotGranularityMinutes  = 30
	DefaultAdvanceBookingDays      = 30
	DefaultMaxBookingsPerClient    = 3
	DefaultMinBookingNoticeMinutes = 0
)

// DefaultBusinessHours слоты по умолчанию: 09:00-18:00
var DefaultBusinessHours = BusinessHours{
	Start: types.TimeString("09:00"),
	End:   types.TimeString("18:00"),
}

// DefaultLunchBreak обеденный перерыв по умолчанию: 13:00-14:00
var DefaultLunchBreak = LunchBreak{
	Start: types.TimeString("13:00"),
	End:   types.TimeString("14:00"),
}

// DefaultWorkingDays рабочие дни по умолчанию: понедельник-суббота
var DefaultWorkingDays = NewWorkingDays(
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
)

// Business validation constants
const (
	MinSlotGranularityMinutes   = 5
	MaxSlotGranularityMinutes   = 240 // 4 hours
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MinMaxBookingsPerClient     = 0
	MaxMaxBookingsPerClient     = 100
	MinNoticeMinutes            = 0
	MaxNoticeMinutes            = 10080 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxClientNameLength         = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных бронирований.
// Используется для фильтрации при выборке из хранилища.
var InactiveStatuses = []BookingStatus{
	StatusCancelledByClient,
	StatusCancelledBySalon,
	StatusNoShow,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusDraft,
	StatusConfirmed,
	StatusCompleted,
}
