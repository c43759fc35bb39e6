package get_day_slots

import (
	"sort"
	"time"

	"github.com/d4shko/salon-booking-service/internal/calendar"
	"github.com/d4shko/salon-booking-service/internal/domain"
	"github.com/d4shko/salon-booking-service/pkg/types"
)

// generateTimeSlots генерирует сетку кандидатов начала на день.
// Сетка идет от открытия до закрытия салона с шагом slotGranularityMinutes,
// независимо от бронирований: это ответ на вопрос "какие времена вообще
// могут быть предложены". Кандидаты внутри обеденного перерыва и кандидаты
// в прошлом (для сегодняшней даты) отбрасываются.
func generateTimeSlots(config *domain.ScheduleConfig, date time.Time, now time.Time) []types.TimeString {
	// Нерабочий день - пустая сетка
	if !calendar.IsBusinessDay(date, config.WorkingDays) {
		return []types.TimeString{}
	}

	// Прошедший день - пустая сетка
	if calendar.IsPastDay(date, now) {
		return []types.TimeString{}
	}

	openMin, err := config.BusinessHours.Start.Minutes()
	if err != nil {
		return []types.TimeString{}
	}
	closeMin, err := config.BusinessHours.End.Minutes()
	if err != nil {
		return []types.TimeString{}
	}
	if openMin >= closeMin || config.SlotGranularityMinutes <= 0 {
		return []types.TimeString{}
	}

	lunchStartMin, lunchEndMin, hasLunch := lunchWindow(config)

	// Шаг 1: генерируем все кандидаты от открытия до закрытия
	allSlots := make([]types.TimeString, 0, (closeMin-openMin)/config.SlotGranularityMinutes)
	for current := openMin; current < closeMin; current += config.SlotGranularityMinutes {
		// Кандидаты, начинающиеся внутри обеденного перерыва, не предлагаются
		if hasLunch && current >= lunchStartMin && current < lunchEndMin {
			continue
		}

		slot, err := types.NewTimeStringFromMinutes(current)
		if err != nil {
			break
		}
		allSlots = append(allSlots, slot)
	}

	// Шаг 2: если дата не сегодня - возвращаем все кандидаты
	if !calendar.IsToday(date, now) {
		return allSlots
	}

	// Шаг 3: для сегодняшней даты отбрасываем кандидаты, чье время уже
	// наступило (<= now), и кандидаты ближе минимального времени уведомления
	nowTime := types.NewTimeString(now)
	minAllowed, err := nowTime.AddMinutes(config.MinBookingNoticeMinutes)
	if err != nil {
		// Окно уведомления уходит за полночь - сегодня бронировать уже нечего
		return []types.TimeString{}
	}

	futureSlots := make([]types.TimeString, 0, len(allSlots))
	for _, slot := range allSlots {
		if slot.IsAfter(nowTime) && !slot.IsBefore(minAllowed) {
			futureSlots = append(futureSlots, slot)
		}
	}

	return futureSlots
}

// annotateSlots размечает кандидаты занятостью по существующим бронированиям.
// Слот недоступен, если его интервал [start, start+serviceDuration):
//   - пересекается с подтвержденным бронированием (полуоткрытые интервалы,
//     границы не считаются пересечением);
//   - выходит за время закрытия (услуга не успевает завершиться);
//   - пересекается с обеденным перерывом.
//
// Для занятых бронированием слотов прикрепляются метаданные самого раннего
// из пересекающихся бронирований.
func annotateSlots(
	candidates []types.TimeString,
	serviceDuration int,
	config *domain.ScheduleConfig,
	bookings []*domain.Booking,
) []domain.TimeSlot {
	closeMin, err := config.BusinessHours.End.Minutes()
	if err != nil {
		closeMin = 0
	}

	lunchStartMin, lunchEndMin, hasLunch := lunchWindow(config)

	occupying := occupyingIntervals(bookings)

	result := make([]domain.TimeSlot, len(candidates))
	for i, candidate := range candidates {
		result[i] = domain.TimeSlot{StartTime: candidate}

		startMin, err := candidate.Minutes()
		if err != nil || serviceDuration <= 0 {
			// Некорректный кандидат или длительность: отказ в бронировании -
			// безопасное значение по умолчанию
			continue
		}
		endMin := startMin + serviceDuration

		// Услуга должна завершиться до закрытия
		if endMin > closeMin {
			continue
		}

		// Интервал услуги не должен попадать на обеденный перерыв
		if hasLunch && startMin < lunchEndMin && lunchStartMin < endMin {
			continue
		}

		// Пересечение с самым ранним подтвержденным бронированием
		if occ := findOccupant(occupying, startMin, endMin); occ != nil {
			result[i].Occupant = occ
			continue
		}

		result[i].Available = true
	}

	return result
}

// occupiedInterval занятый интервал подтвержденного бронирования в минутах
type occupiedInterval struct {
	startMin int
	endMin   int
	booking  *domain.Booking
}

// occupyingIntervals отбирает подтвержденные бронирования и сортирует их
// интервалы по времени начала, чтобы метаданные занятого слота брались
// из самого раннего пересекающегося бронирования
func occupyingIntervals(bookings []*domain.Booking) []occupiedInterval {
	intervals := make([]occupiedInterval, 0, len(bookings))

	for _, b := range bookings {
		if !b.Occupies() {
			continue
		}
		startMin, err := b.StartTime.Minutes()
		if err != nil || b.DurationMinutes <= 0 {
			continue
		}
		intervals = append(intervals, occupiedInterval{
			startMin: startMin,
			endMin:   startMin + b.DurationMinutes,
			booking:  b,
		})
	}

	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].startMin < intervals[j].startMin
	})

	return intervals
}

// findOccupant возвращает метаданные первого (самого раннего) бронирования,
// пересекающегося с интервалом [startMin, endMin).
// Пересечение полуоткрытых интервалов: a.start < b.end && b.start < a.end.
func findOccupant(intervals []occupiedInterval, startMin, endMin int) *domain.SlotOccupant {
	for _, iv := range intervals {
		if iv.startMin < endMin && startMin < iv.endMin {
			return &domain.SlotOccupant{
				BookingID:   iv.booking.ID,
				ClientName:  iv.booking.ClientName,
				ServiceName: iv.booking.ServiceName,
				ServiceIcon: iv.booking.ServiceIcon,
				Notes:       iv.booking.Notes,
			}
		}
	}
	return nil
}

// lunchWindow возвращает границы обеденного перерыва в минутах
func lunchWindow(config *domain.ScheduleConfig) (startMin, endMin int, ok bool) {
	if config.LunchBreak == nil {
		return 0, 0, false
	}
	start, err := config.LunchBreak.Start.Minutes()
	if err != nil {
		return 0, 0, false
	}
	end, err := config.LunchBreak.End.Minutes()
	if err != nil {
		return 0, 0, false
	}
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}
