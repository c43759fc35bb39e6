package check_slot

import (
	"time"

	"github.com/d4shko/salon-booking-service/internal/domain"
	"github.com/d4shko/salon-booking-service/pkg/types"
	checkSlot "github.com/d4shko/salon-booking-service/internal/usecase/check_slot"
)

// CheckSlotResponse HTTP response model
type CheckSlotResponse struct {
	CanBook bool   `json:"canBook"`
	Reason  string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkSlot.Response) *CheckSlotResponse {
	return &CheckSlotResponse{
		CanBook: resp.CanBook,
		Reason:  string(resp.Reason),
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(clientID, salonID, serviceID int64, dateStr, timeStr string) (*checkSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	startTime := types.TimeString(timeStr)
	if err := startTime.Validate(); err != nil {
		return nil, err
	}

	return &checkSlot.Request{
		ClientID:  clientID,
		SalonID:   salonID,
		ServiceID: serviceID,
		Date:      date,
		StartTime: startTime,
	}, nil
}
