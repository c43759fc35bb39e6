package cancel_booking

import (
	"github.com/d4shko/salon-booking-service/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(clientID int64) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		ClientID:           clientID,
		CancellationReason: r.CancellationReason,
	}
}
