package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/d4shko/salon-booking-service/internal/calendar"
	"github.com/d4shko/salon-booking-service/internal/domain"
	"github.com/d4shko/salon-booking-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(config *domain.ScheduleConfig, bookingDate time.Time, now time.Time) error {
	if calendar.IsPastDay(bookingDate, now) {
		return ErrInvalidDate
	}

	if !calendar.IsBusinessDay(bookingDate, config.WorkingDays) {
		return ErrSalonClosed
	}

	if config.HasAdvanceBookingLimit() {
		maxDate := calendar.StartOfDay(now).AddDate(0, 0, config.AdvanceBookingDays)
		if calendar.StartOfDay(bookingDate).After(maxDate) {
			return fmt.Errorf("%w: can only book %d days in advance",
				ErrDateTooFarInFuture, config.AdvanceBookingDays)
		}
	}

	return nil
}

// validateTimeSlot проверяет, что время начала попадает в сетку слотов
// и занимаемый интервал [start, start+duration) не нарушает расписания
func validateTimeSlot(
	config *domain.ScheduleConfig,
	bookingDate time.Time,
	startTime types.TimeString,
	durationMinutes int,
	now time.Time,
) error {
	startMin, err := startTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	openMin, err := config.BusinessHours.Start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid business hours: %v", ErrInternal, err)
	}
	closeMin, err := config.BusinessHours.End.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid business hours: %v", ErrInternal, err)
	}

	if startMin < openMin || startMin >= closeMin {
		return fmt.Errorf("%w: start time is outside business hours", ErrInvalidTimeSlot)
	}

	if config.SlotGranularityMinutes > 0 && (startMin-openMin)%config.SlotGranularityMinutes != 0 {
		return fmt.Errorf("%w: start time is not aligned to %d-minute grid",
			ErrInvalidTimeSlot, config.SlotGranularityMinutes)
	}

	endMin := startMin + durationMinutes
	if endMin > closeMin {
		return fmt.Errorf("%w: service does not fit before closing time", ErrInvalidTimeSlot)
	}

	if config.HasLunchBreak() {
		lunchStartMin, err := config.LunchBreak.Start.Minutes()
		if err != nil {
			return fmt.Errorf("%w: invalid lunch break: %v", ErrInternal, err)
		}
		lunchEndMin, err := config.LunchBreak.End.Minutes()
		if err != nil {
			return fmt.Errorf("%w: invalid lunch break: %v", ErrInternal, err)
		}
		if startMin < lunchEndMin && lunchStartMin < endMin {
			return fmt.Errorf("%w: service overlaps lunch break", ErrInvalidTimeSlot)
		}
	}

	// Для сегодняшнего дня слот должен быть строго в будущем
	// с учетом минимального времени предупреждения
	if calendar.IsSameDay(bookingDate, now) {
		nowTime := types.NewTimeString(now)
		if !startTime.IsAfter(nowTime) {
			return fmt.Errorf("%w: slot start time has already passed", ErrTooLateToBook)
		}
		if config.MinBookingNoticeMinutes > 0 {
			minAllowed, err := nowTime.AddMinutes(config.MinBookingNoticeMinutes)
			if err != nil {
				return fmt.Errorf("%w: failed to calculate min allowed time: %v", ErrInternal, err)
			}
			if startTime.IsBefore(minAllowed) {
				return fmt.Errorf("%w: must book at least %d minutes in advance",
					ErrTooLateToBook, config.MinBookingNoticeMinutes)
			}
		}
	}

	return nil
}

// hasOverlappingBooking проверяет пересечение интервала с подтвержденными
// бронированиями. Границы интервалов не считаются пересечением.
func hasOverlappingBooking(
	startTime types.TimeString,
	durationMinutes int,
	bookings []*domain.Booking,
) (bool, error) {
	startMin, err := startTime.Minutes()
	if err != nil {
		return false, err
	}
	endMin := startMin + durationMinutes

	for _, booking := range bookings {
		if !booking.Occupies() {
			continue
		}

		bookingStartMin, err := booking.StartTime.Minutes()
		if err != nil {
			continue
		}
		bookingEndMin := bookingStartMin + booking.DurationMinutes

		if startMin < bookingEndMin && bookingStartMin < endMin {
			return true, nil
		}
	}

	return false, nil
}

// countUpcomingBookings подсчитывает подтвержденные бронирования клиента в будущем
func countUpcomingBookings(bookings []*domain.Booking, now time.Time) int {
	count := 0
	for _, booking := range bookings {
		if booking.Occupies() && booking.IsUpcoming(now) {
			count++
		}
	}
	return count
}
