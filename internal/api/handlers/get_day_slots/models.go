package get_day_slots

import (
	"time"

	"github.com/d4shko/salon-booking-service/internal/domain"
	getDaySlots "github.com/d4shko/salon-booking-service/internal/usecase/get_day_slots"
)

// DaySlotsResponse HTTP response model
type DaySlotsResponse struct {
	Date        string `json:"date"`
	SalonID     int64  `json:"salonId"`
	ServiceID   int64  `json:"serviceId"`
	Slots       []Slot `json:"slots"`
	FullyBooked bool   `json:"fullyBooked"`
}

// Slot модель временного слота
type Slot struct {
	StartTime       string    `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Available       bool      `json:"available"`
	Occupant        *Occupant `json:"occupant,omitempty"`
}

// Occupant метаданные бронирования, занимающего слот
type Occupant struct {
	BookingID   int64   `json:"bookingId"`
	ClientName  string  `json:"clientName"`
	ServiceName string  `json:"serviceName"`
	ServiceIcon *string `json:"serviceIcon,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySlots.Response) *DaySlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		s := Slot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
		}
		if slot.Occupant != nil {
			s.Occupant = &Occupant{
				BookingID:   slot.Occupant.BookingID,
				ClientName:  slot.Occupant.ClientName,
				ServiceName: slot.Occupant.ServiceName,
				ServiceIcon: slot.Occupant.ServiceIcon,
				Notes:       slot.Occupant.Notes,
			}
		}
		slots[i] = s
	}

	return &DaySlotsResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		SalonID:     resp.SalonID,
		ServiceID:   resp.ServiceID,
		Slots:       slots,
		FullyBooked: resp.FullyBooked,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(salonID, serviceID int64, dateStr string) (*getDaySlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getDaySlots.Request{
		SalonID:   salonID,
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
