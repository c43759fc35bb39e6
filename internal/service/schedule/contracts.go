package schedule

import (
	"context"

	"github.com/d4shko/salon-booking-service/internal/domain"
	"github.com/d4shko/salon-booking-service/internal/integrations/catalogservice"
)

// ScheduleRepository интерфейс репозитория конфигурации расписания
type ScheduleRepository interface {
	Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	GetBySalonAndService(ctx context.Context, salonID int64, serviceID *int64) (*domain.ScheduleConfig, error)
	GetConfigWithHierarchy(ctx context.Context, salonID int64, serviceID *int64) (*domain.ScheduleConfig, error)
	Update(ctx context.Context, config *domain.ScheduleConfig) error
	Delete(ctx context.Context, id int64) error
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*catalogservice.Salon, error)
	GetService(ctx context.Context, salonID, serviceID int64) (*catalogservice.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
