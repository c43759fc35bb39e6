package check_slot

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

// UseCase use case для проверки доступности конкретного слота
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

// Execute выполняет use case проверки доступности слота.
// Бизнес-отказы возвращаются не ошибками, а кодом причины в Response.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckSlot: client=%d, salon=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.SalonID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон
	if _, err := uc.catalogClient.GetSalon(ctx, req.SalonID); err != nil {
		if errors.Is(err, catalogClient.ErrSalonNotFound) {
			uc.logger.Warn("CheckSlot: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CheckSlot: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CheckSlot: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CheckSlot: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("CheckSlot: service id=%d is inactive", req.ServiceID)
		return deny(ReasonServiceInactive), nil
	}

	// 5. Получаем конфигурацию расписания с учетом иерархии
	config, err := uc.scheduleRepo.GetConfigWithHierarchy(ctx, req.SalonID, ptr.Ptr(req.ServiceID))
	if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		uc.logger.Error("CheckSlot: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	if config == nil {
		config = defaultScheduleConfig(req.SalonID)
		uc.logger.Info("CheckSlot: using default schedule config for salon=%d", req.SalonID)
	}

	// 6. Календарные правила: прошлое, рабочий день, горизонт бронирования
	if reason := checkDate(config, req.Date, now); reason != "" {
		uc.logger.Info("CheckSlot: date check failed: %s", reason)
		return deny(reason), nil
	}

	// 7. Правила времени: сетка, рабочие часы, обед, закрытие, предупреждение
	reason, err := checkStartTime(config, req.Date, req.StartTime, service.DurationMinutes, now)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to check start time: %v", err)
		return nil, fmt.Errorf("%w: failed to check start time: %v", ErrInternal, err)
	}
	if reason != "" {
		uc.logger.Info("CheckSlot: time check failed: %s", reason)
		return deny(reason), nil
	}

	// 8. Проверяем лимит активных бронирований клиента
	if config.HasClientBookingCap() {
		upcoming, err := uc.bookingRepo.GetUpcomingByClient(ctx, req.ClientID, calendar.StartOfDay(now))
		if err != nil {
			uc.logger.Error("CheckSlot: failed to get client bookings: %v", err)
			return nil, fmt.Errorf("%w: failed to get client bookings: %v", ErrInternal, err)
		}

		if clientLimitReached(upcoming, now, config.MaxBookingsPerClient) {
			uc.logger.Info("CheckSlot: client id=%d reached booking limit %d",
				req.ClientID, config.MaxBookingsPerClient)
			return deny(ReasonClientLimit), nil
		}
	}

	// 9. Проверяем пересечения с подтвержденными бронированиями
	filter := domain.SalonBookingsFilter{
		SalonID:         req.SalonID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	if hasConflict(req.StartTime, service.DurationMinutes, bookings) {
		uc.logger.Info("CheckSlot: slot %s on %s is occupied",
			req.StartTime, req.Date.Format(domain.DateFormat))
		return deny(ReasonSlotOccupied), nil
	}

	uc.logger.Info("CheckSlot: slot %s on %s is bookable for client=%d",
		req.StartTime, req.Date.Format(domain.DateFormat), req.ClientID)

	return allow(), nil
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
