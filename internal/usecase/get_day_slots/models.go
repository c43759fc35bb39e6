package get_day_slots

import (
	"time"

	"github.com/d4shko/salon-booking-service/internal/domain"
	"github.com/d4shko/salon-booking-service/pkg/types"
)

// Request модель запроса на получение слотов дня
type Request struct {
	SalonID   int64     // ID салона
	ServiceID int64     // ID услуги (определяет длительность)
	Date      time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со слотами дня.
// Содержит и свободные, и занятые слоты - занятые несут метаданные
// бронирования для отображения в календаре.
type Response struct {
	Date        time.Time // Дата, на которую запрашивались слоты
	SalonID     int64     // ID салона
	ServiceID   int64     // ID услуги
	Slots       []Slot    // Все слоты дня в порядке возрастания времени
	FullyBooked bool      // true, если слоты есть, но все заняты
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность услуги в минутах
	Available       bool             // Доступен ли слот для бронирования
	Occupant        *Occupant        // Метаданные занявшего бронирования (только для занятых)
}

// Occupant метаданные бронирования, занимающего слот
type Occupant struct {
	BookingID   int64
	ClientName  string
	ServiceName string
	ServiceIcon *string
	Notes       *string
}

// fromDomainSlots конвертирует доменные слоты в модель ответа
func fromDomainSlots(slots []domain.TimeSlot, durationMinutes int) []Slot {
	result := make([]Slot, len(slots))
	for i, s := range slots {
		slot := Slot{
			StartTime:       s.StartTime,
			DurationMinutes: durationMinutes,
			Available:       s.Available,
		}
		if s.Occupant != nil {
			slot.Occupant = &Occupant{
				BookingID:   s.Occupant.BookingID,
				ClientName:  s.Occupant.ClientName,
				ServiceName: s.Occupant.ServiceName,
				ServiceIcon: s.Occupant.ServiceIcon,
				Notes:       s.Occupant.Notes,
			}
		}
		result[i] = slot
	}
	return result
}
