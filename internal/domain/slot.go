package domain

import (
	"time"

	"github.com/d4shko/salon-booking-service/pkg/types"
)

// SlotOccupant carries display metadata of the booking occupying a slot.
// It is attached only to unavailable slots, never as sentinel values.
type SlotOccupant struct {
	BookingID   int64
	ClientName  string
	ServiceName string
	ServiceIcon *string
	Notes       *string
}

// TimeSlot is one candidate start time of a day, annotated with availability
type TimeSlot struct {
	StartTime types.TimeString
	Available bool
	Occupant  *SlotOccupant
}

// DaySlots is the full annotated slot list for one calendar day.
// Produced fresh on every query and never persisted.
type DaySlots struct {
	Date  time.Time
	Slots []TimeSlot
}

// IsFullyBooked returns true if the day has candidate slots and none is available
func (d *DaySlots) IsFullyBooked() bool {
	if len(d.Slots) == 0 {
		return false
	}
	for _, s := range d.Slots {
		if s.Available {
			return false
		}
	}
	return true
}

// AvailableCount returns the number of bookable slots
func (d *DaySlots) AvailableCount() int {
	count := 0
	for _, s := range d.Slots {
		if s.Available {
			count++
		}
	}
	return count
}
