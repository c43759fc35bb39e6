package check_slot

import (
	"time"

	"github.com/d4shko/salon-booking-service/pkg/types"
)

// Reason код причины отказа в бронировании.
// Пустое значение означает, что слот можно бронировать.
type Reason string

const (
	ReasonDateInPast      Reason = "date_in_past"
	ReasonNonWorkingDay   Reason = "non_working_day"
	ReasonTooFarInFuture  Reason = "date_too_far_in_future"
	ReasonTooLateToBook   Reason = "too_late_to_book"
	ReasonOutsideHours    Reason = "outside_business_hours"
	ReasonNotOnGrid       Reason = "start_time_not_on_grid"
	ReasonOverlapsLunch   Reason = "overlaps_lunch_break"
	ReasonExceedsClosing  Reason = "exceeds_closing_time"
	ReasonSlotOccupied    Reason = "slot_occupied"
	ReasonClientLimit     Reason = "client_booking_limit_reached"
	ReasonServiceInactive Reason = "service_inactive"
)

// Request модель запроса на проверку доступности слота
type Request struct {
	ClientID  int64            // ID клиента, для которого проверяется лимит бронирований
	SalonID   int64            // ID салона
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата слота (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
}

// Response модель ответа проверки доступности
type Response struct {
	CanBook bool   // Можно ли забронировать слот
	Reason  Reason // Код причины отказа (пустой при CanBook=true)
}

func deny(reason Reason) *Response {
	return &Response{CanBook: false, Reason: reason}
}

func allow() *Response {
	return &Response{CanBook: true}
}
