package check_slot

import (
	"time"

	"github.com/d4shko/salon-booking-service/internal/calendar"
	"github.com/d4shko/salon-booking-service/internal/domain"
	"github.com/d4shko/salon-booking-service/pkg/types"
)

// checkDate проверяет календарные правила для даты бронирования.
// Возвращает пустую причину, если дата допустима.
func checkDate(config *domain.ScheduleConfig, date time.Time, now time.Time) Reason {
	if calendar.IsPastDay(date, now) {
		return ReasonDateInPast
	}

	if !calendar.IsBusinessDay(date, config.WorkingDays) {
		return ReasonNonWorkingDay
	}

	if config.HasAdvanceBookingLimit() {
		maxDate := calendar.StartOfDay(now).AddDate(0, 0, config.AdvanceBookingDays)
		if calendar.StartOfDay(date).After(maxDate) {
			return ReasonTooFarInFuture
		}
	}

	return ""
}

// checkStartTime проверяет, что время начала попадает в сетку слотов
// и занимаемый интервал не нарушает правил расписания
func checkStartTime(
	config *domain.ScheduleConfig,
	date time.Time,
	start types.TimeString,
	durationMinutes int,
	now time.Time,
) (Reason, error) {
	startMin, err := start.Minutes()
	if err != nil {
		return ReasonOutsideHours, nil
	}

	openMin, err := config.BusinessHours.Start.Minutes()
	if err != nil {
		return "", err
	}
	closeMin, err := config.BusinessHours.End.Minutes()
	if err != nil {
		return "", err
	}

	if startMin < openMin || startMin >= closeMin {
		return ReasonOutsideHours, nil
	}

	if config.SlotGranularityMinutes > 0 && (startMin-openMin)%config.SlotGranularityMinutes != 0 {
		return ReasonNotOnGrid, nil
	}

	endMin := startMin + durationMinutes
	if endMin > closeMin {
		return ReasonExceedsClosing, nil
	}

	// Интервал услуги не должен пересекаться с обедом
	if config.HasLunchBreak() {
		lunchStartMin, err := config.LunchBreak.Start.Minutes()
		if err != nil {
			return "", err
		}
		lunchEndMin, err := config.LunchBreak.End.Minutes()
		if err != nil {
			return "", err
		}
		if startMin < lunchEndMin && lunchStartMin < endMin {
			return ReasonOverlapsLunch, nil
		}
	}

	// Для сегодняшнего дня слот должен быть строго в будущем
	// с учетом минимального времени предупреждения
	if calendar.IsSameDay(date, now) {
		nowTime := types.NewTimeString(now)
		if !start.IsAfter(nowTime) {
			return ReasonTooLateToBook, nil
		}
		if config.MinBookingNoticeMinutes > 0 {
			minAllowed, err := nowTime.AddMinutes(config.MinBookingNoticeMinutes)
			if err != nil {
				return "", err
			}
			if start.IsBefore(minAllowed) {
				return ReasonTooLateToBook, nil
			}
		}
	}

	return "", nil
}

// hasConflict проверяет, пересекается ли интервал [start, start+duration)
// с каким-либо подтвержденным бронированием.
// Границы интервалов не считаются пересечением.
func hasConflict(start types.TimeString, durationMinutes int, bookings []*domain.Booking) bool {
	startMin, err := start.Minutes()
	if err != nil {
		return true
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
			return true
		}
	}

	return false
}

// clientLimitReached проверяет, достиг ли клиент лимита активных бронирований.
// Учитываются только подтвержденные бронирования в будущем.
func clientLimitReached(bookings []*domain.Booking, now time.Time, maxBookings int) bool {
	if maxBookings <= 0 {
		return false
	}

	count := 0
	for _, booking := range bookings {
		if booking.Occupies() && booking.IsUpcoming(now) {
			count++
		}
	}

	return count >= maxBookings
}
