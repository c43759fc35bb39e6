package get_calendar_days

import (
	"time"

	"github.com/d4shko/salon-booking-service/internal/calendar"
	"github.com/d4shko/salon-booking-service/internal/domain"
	"github.com/d4shko/salon-booking-service/pkg/types"
)

// dayAvailability подсчитывает кандидатов и доступные слоты одного дня.
// Для календарного представления нужны только счетчики, поэтому весь расчет
// ведется в минутах от полуночи без построения самих слотов.
func dayAvailability(
	config *domain.ScheduleConfig,
	date time.Time,
	now time.Time,
	serviceDurationMinutes int,
	bookings []*domain.Booking,
) (total, available int) {
	if !calendar.IsBusinessDay(date, config.WorkingDays) || calendar.IsPastDay(date, now) {
		return 0, 0
	}

	openMin, err := config.BusinessHours.Start.Minutes()
	if err != nil {
		return 0, 0
	}
	closeMin, err := config.BusinessHours.End.Minutes()
	if err != nil {
		return 0, 0
	}

	granularity := config.SlotGranularityMinutes
	if granularity <= 0 || openMin >= closeMin {
		return 0, 0
	}

	lunchStartMin, lunchEndMin := -1, -1
	if config.HasLunchBreak() {
		ls, err1 := config.LunchBreak.Start.Minutes()
		le, err2 := config.LunchBreak.End.Minutes()
		if err1 == nil && err2 == nil {
			lunchStartMin, lunchEndMin = ls, le
		}
	}

	// Для сегодняшнего дня кандидаты должны быть строго в будущем
	// с учетом минимального времени предупреждения: старт ровно через
	// notice минут еще допустим
	nowMin, minStartMin := -1, -1
	if calendar.IsToday(date, now) {
		m, err := types.NewTimeString(now).Minutes()
		if err != nil {
			return 0, 0
		}
		nowMin = m
		minStartMin = m + config.MinBookingNoticeMinutes
	}

	occupied := occupiedIntervals(bookings)

	for start := openMin; start < closeMin; start += granularity {
		// Кандидаты внутри обеда не предлагаются
		if lunchStartMin >= 0 && start >= lunchStartMin && start < lunchEndMin {
			continue
		}
		if nowMin >= 0 && (start <= nowMin || start < minStartMin) {
			continue
		}

		total++

		if serviceDurationMinutes <= 0 {
			continue
		}

		end := start + serviceDurationMinutes
		if end > closeMin {
			continue
		}
		if lunchStartMin >= 0 && start < lunchEndMin && lunchStartMin < end {
			continue
		}
		if overlapsAny(start, end, occupied) {
			continue
		}

		available++
	}

	return total, available
}

type interval struct {
	startMin int
	endMin   int
}

// occupiedIntervals извлекает интервалы подтвержденных бронирований в минутах
func occupiedIntervals(bookings []*domain.Booking) []interval {
	intervals := make([]interval, 0, len(bookings))
	for _, booking := range bookings {
		if !booking.Occupies() {
			continue
		}
		startMin, err := booking.StartTime.Minutes()
		if err != nil {
			continue
		}
		intervals = append(intervals, interval{
			startMin: startMin,
			endMin:   startMin + booking.DurationMinutes,
		})
	}
	return intervals
}

// overlapsAny проверяет пересечение [startMin, endMin) с занятыми интервалами.
// Границы интервалов не считаются пересечением.
func overlapsAny(startMin, endMin int, occupied []interval) bool {
	for _, iv := range occupied {
		if startMin < iv.endMin && iv.startMin < endMin {
			return true
		}
	}
	return false
}
