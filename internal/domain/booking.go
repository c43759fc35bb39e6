package domain

import (
	"time"

	"github.com/d4shko/salon-booking-service/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusDraft             BookingStatus = "draft"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusCompleted         BookingStatus = "completed"
	StatusCancelledByClient BookingStatus = "cancelled_by_client"
	StatusCancelledBySalon  BookingStatus = "cancelled_by_salon"
	StatusNoShow            BookingStatus = "no_show"
)

// Booking represents a salon appointment in the system
type Booking struct {
	ID              int64
	ClientID        int64
	SalonID         int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for display and history
	ClientName   string
	ServiceName  string
	ServicePrice float64
	ServiceIcon  *string
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Occupies returns true if the booking blocks time on the calendar.
// Only confirmed bookings occupy a slot; drafts, cancellations and
// no-shows are informational.
func (b *Booking) Occupies() bool {
	return b.Status == StatusConfirmed
}

// EndTime returns the exclusive end of the booking's occupied interval
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// IsUpcoming returns true if the booking has not finished yet relative to now.
// Bookings on a future day are upcoming; bookings today are upcoming until
// their end time passes.
func (b *Booking) IsUpcoming(now time.Time) bool {
	y1, m1, d1 := b.BookingDate.Date()
	y2, m2, d2 := now.Date()
	date := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	today := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)

	if date.After(today) {
		return true
	}
	if date.Before(today) {
		return false
	}

	end, err := b.EndTime()
	if err != nil {
		return false
	}
	return end.IsAfter(types.NewTimeString(now))
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusDraft || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByClient || b.Status == StatusCancelledBySalon
}

// SalonBookingsFilter фильтр для получения бронирований салона
type SalonBookingsFilter struct {
	SalonID         int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и no-show
}
