package get_calendar_days

import (
	"context"
	"errors"
	"fmt"

	"github.com/d4shko/salon-booking-service/internal/calendar"
	"github.com/d4shko/salon-booking-service/internal/domain"
	scheduleRepo "github.com/d4shko/salon-booking-service/internal/infra/storage/schedule"
	catalogClient "github.com/d4shko/salon-booking-service/internal/integrations/catalogservice"
	"github.com/d4shko/salon-booking-service/pkg/ptr"
)

// UseCase use case для получения календарного представления месяца
type UseCase struct {
	bookingRepo   BookingRepository
	scheduleRepo  ScheduleRepository
	catalogClient CatalogServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		scheduleRepo:  scheduleRepo,
		catalogClient: catalogClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения календаря месяца.
// Все бронирования месяца загружаются одним запросом и группируются по датам.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendarDays: salon=%d, service=%d, month=%s",
		req.SalonID, req.ServiceID, req.Month.Format("2006-01"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCalendarDays: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон
	if _, err := uc.catalogClient.GetSalon(ctx, req.SalonID); err != nil {
		if errors.Is(err, catalogClient.ErrSalonNotFound) {
			uc.logger.Warn("GetCalendarDays: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetCalendarDays: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetCalendarDays: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetCalendarDays: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Получаем конфигурацию расписания с учетом иерархии
	config, err := uc.scheduleRepo.GetConfigWithHierarchy(ctx, req.SalonID, ptr.Ptr(req.ServiceID))
	if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		uc.logger.Error("GetCalendarDays: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	if config == nil {
		config = defaultScheduleConfig(req.SalonID)
		uc.logger.Info("GetCalendarDays: using default schedule config for salon=%d", req.SalonID)
	}

	// 6. Строим календарное представление месяца
	days := calendar.MonthDays(req.Month, config.WorkingDays)
	if len(days) == 0 {
		return &Response{SalonID: req.SalonID, ServiceID: req.ServiceID, Days: []Day{}}, nil
	}

	// 7. Загружаем все активные бронирования за период одним запросом
	startDate := days[0]
	endDate := days[len(days)-1]
	filter := domain.SalonBookingsFilter{
		SalonID:         req.SalonID,
		StartDate:       &startDate,
		EndDate:         &endDate,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetCalendarDays: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	byDate := make(map[string][]*domain.Booking, len(days))
	for _, booking := range bookings {
		key := calendar.FormatDate(booking.BookingDate)
		byDate[key] = append(byDate[key], booking)
	}

	// 8. Считаем доступность каждого дня
	result := make([]Day, 0, len(days))
	for _, date := range days {
		total, available := dayAvailability(config, date, now, service.DurationMinutes, byDate[calendar.FormatDate(date)])

		result = append(result, Day{
			Date:           date,
			InMonth:        date.Month() == req.Month.Month() && date.Year() == req.Month.Year(),
			IsWorkingDay:   calendar.IsBusinessDay(date, config.WorkingDays),
			IsPast:         calendar.IsPastDay(date, now),
			AvailableSlots: available,
			FullyBooked:    total > 0 && available == 0,
		})
	}

	uc.logger.Info("GetCalendarDays: %d days for salon=%d, service=%d, month=%s",
		len(result), req.SalonID, req.ServiceID, req.Month.Format("2006-01"))

	return &Response{
		SalonID:   req.SalonID,
		ServiceID: req.ServiceID,
		Days:      result,
	}, nil
}

// defaultScheduleConfig конфигурация расписания по умолчанию для салонов
// без сохраненной конфигурации
func defaultScheduleConfig(salonID int64) *domain.ScheduleConfig {
	lunch := domain.DefaultLunchBreak
	return &domain.ScheduleConfig{
		SalonID:                 salonID,
		BusinessHours:           domain.DefaultBusinessHours,
		LunchBreak:              &lunch,
		WorkingDays:             domain.DefaultWorkingDays,
		SlotGranularityMinutes:  domain.DefaultSlotGranularityMinutes,
		AdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
		MaxBookingsPerClient:    domain.DefaultMaxBookingsPerClient,
		MinBookingNoticeMinutes: domain.DefaultMinBookingNoticeMinutes,
	}
}
