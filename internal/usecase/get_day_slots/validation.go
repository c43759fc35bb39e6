package get_day_slots

import (
	"fmt"
	"time"

	"github.com/d4shko/salon-booking-service/internal/calendar"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не превышает горизонт бронирования.
// Прошедшие дни ошибкой не считаются - для них возвращается пустой список
// слотов, так же как для нерабочих дней.
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	// Дата не должна превышать горизонт бронирования
	maxDate := calendar.StartOfDay(now).AddDate(0, 0, advanceBookingDays)
	if calendar.StartOfDay(requestDate).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}
