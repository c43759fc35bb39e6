package get_calendar_days

import (
	"time"

	"github.com/d4shko/salon-booking-service/internal/domain"
	getCalendarDays "github.com/d4shko/salon-booking-service/internal/usecase/get_calendar_days"
)

const monthFormat = "2006-01"

// CalendarResponse HTTP response model
type CalendarResponse struct {
	SalonID   int64         `json:"salonId"`
	ServiceID int64         `json:"serviceId"`
	Month     string        `json:"month"`
	Days      []CalendarDay `json:"days"`
}

// CalendarDay модель дня календарной сетки
type CalendarDay struct {
	Date           string `json:"date"`
	InMonth        bool   `json:"inMonth"`
	IsWorkingDay   bool   `json:"isWorkingDay"`
	IsPast         bool   `json:"isPast"`
	AvailableSlots int    `json:"availableSlots"`
	FullyBooked    bool   `json:"fullyBooked"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(month time.Time, resp *getCalendarDays.Response) *CalendarResponse {
	days := make([]CalendarDay, len(resp.Days))
	for i, day := range resp.Days {
		days[i] = CalendarDay{
			Date:           day.Date.Format(domain.DateFormat),
			InMonth:        day.InMonth,
			IsWorkingDay:   day.IsWorkingDay,
			IsPast:         day.IsPast,
			AvailableSlots: day.AvailableSlots,
			FullyBooked:    day.FullyBooked,
		}
	}

	return &CalendarResponse{
		SalonID:   resp.SalonID,
		ServiceID: resp.ServiceID,
		Month:     month.Format(monthFormat),
		Days:      days,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(salonID, serviceID int64, monthStr string) (*getCalendarDays.Request, error) {
	month, err := time.Parse(monthFormat, monthStr)
	if err != nil {
		return nil, err
	}

	return &getCalendarDays.Request{
		SalonID:   salonID,
		ServiceID: serviceID,
		Month:     month,
	}, nil
}
