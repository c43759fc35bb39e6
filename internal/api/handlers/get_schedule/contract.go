package get_schedule

import (
	"context"

	"github.com/d4shko/salon-booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	Get(ctx context.Context, salonID int64, serviceID *int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
