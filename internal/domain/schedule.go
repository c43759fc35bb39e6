package domain

import (
	"time"

	"github.com/d4shko/salon-booking-service/pkg/types"
)

// BusinessHours is the daily working window of a salon.
// Invariant: Start < End; schedule configs violating this are rejected on write.
type BusinessHours struct {
	Start types.TimeString
	End   types.TimeString
}

// IsValid returns true if the window is well-formed
func (h BusinessHours) IsValid() bool {
	return h.Start.Validate() == nil && h.End.Validate() == nil && h.Start.IsBefore(h.End)
}

// LunchBreak is an optional sub-window of the business hours during which
// no candidate start time is offered
type LunchBreak struct {
	Start types.TimeString
	End   types.TimeString
}

// IsValid returns true if the window is well-formed
func (l LunchBreak) IsValid() bool {
	return l.Start.Validate() == nil && l.End.Validate() == nil && l.Start.IsBefore(l.End)
}

// WorkingDays is a set of weekdays eligible for bookings, stored as a bitmask
// (bit 0 = Sunday ... bit 6 = Saturday, matching time.Weekday)
type WorkingDays uint8

// NewWorkingDays builds a set from the given weekdays
func NewWorkingDays(days ...time.Weekday) WorkingDays {
	var wd WorkingDays
	for _, d := range days {
		wd |= 1 << uint(d)
	}
	return wd
}

// Contains reports whether the weekday is in the set
func (w WorkingDays) Contains(day time.Weekday) bool {
	return w&(1<<uint(day)) != 0
}

// IsEmpty reports whether no weekday is eligible
func (w WorkingDays) IsEmpty() bool {
	return w == 0
}

// Weekdays returns the members of the set in Sunday-first order
func (w WorkingDays) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if w.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

// ScheduleConfig represents the booking configuration of a salon.
// Supports hierarchical configuration:
// 1. Service-specific (salon_id, service_id)
// 2. Salon-wide (salon_id, NULL)
type ScheduleConfig struct {
	ID                      int64
	SalonID                 int64
	ServiceID               *int64 // NULL = config for all services
	BusinessHours           BusinessHours
	LunchBreak              *LunchBreak // NULL = no lunch break
	WorkingDays             WorkingDays
	SlotGranularityMinutes  int
	AdvanceBookingDays      int // 0 = unlimited
	MaxBookingsPerClient    int // 0 = unlimited
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsSalonWide returns true if this configuration applies to all services
func (c *ScheduleConfig) IsSalonWide() bool {
	return c.ServiceID == nil
}

// IsServiceSpecific returns true if this configuration is for a single service
func (c *ScheduleConfig) IsServiceSpecific() bool {
	return c.ServiceID != nil
}

// HasAdvanceBookingLimit returns true if there is a limit on how far
// in advance bookings can be made
func (c *ScheduleConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}

// HasClientBookingCap returns true if a client may only hold a limited
// number of upcoming bookings
func (c *ScheduleConfig) HasClientBookingCap() bool {
	return c.MaxBookingsPerClient > 0
}

// HasLunchBreak returns true if a lunch break is configured
func (c *ScheduleConfig) HasLunchBreak() bool {
	return c.LunchBreak != nil
}
