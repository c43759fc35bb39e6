package get_day_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/d4shko/salon-booking-service/internal/domain"
	scheduleRepo "github.com/d4shko/salon-booking-service/internal/infra/storage/schedule"
	catalogClient "github.com/d4shko/salon-booking-service/internal/integrations/catalogservice"
	"github.com/d4shko/salon-booking-service/pkg/ptr"
)

// UseCase use case для получения слотов дня с занятостью
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

// Execute выполняет use case получения слотов дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySlots: salon=%d, service=%d, date=%s",
		req.SalonID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDaySlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон
	if _, err := uc.catalogClient.GetSalon(ctx, req.SalonID); err != nil {
		if errors.Is(err, catalogClient.ErrSalonNotFound) {
			uc.logger.Warn("GetDaySlots: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetDaySlots: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Получаем услугу (длительность определяет занимаемый интервал)
	service, err := uc.catalogClient.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetDaySlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetDaySlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Получаем конфигурацию расписания с учетом иерархии
	config, err := uc.scheduleRepo.GetConfigWithHierarchy(ctx, req.SalonID, ptr.Ptr(req.ServiceID))
	if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		uc.logger.Error("GetDaySlots: failed to get schedule config: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
	}

	// Если конфигурация не найдена, используем дефолтные значения
	if config == nil {
		config = defaultScheduleConfig(req.SalonID)
		uc.logger.Info("GetDaySlots: using default schedule config for salon=%d", req.SalonID)
	} else {
		uc.logger.Info("GetDaySlots: using schedule config id=%d", config.ID)
	}

	// 6. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetDaySlots: date validation failed: %v", err)
		return nil, err
	}

	// 7. Генерируем сетку кандидатов
	candidates := generateTimeSlots(config, req.Date, now)

	// Нерабочий день или пустая сетка - бронирований можно не запрашивать
	if len(candidates) == 0 {
		uc.logger.Info("GetDaySlots: no candidate slots for salon=%d on %s",
			req.SalonID, req.Date.Format(domain.DateFormat))
		return &Response{
			Date:      req.Date,
			SalonID:   req.SalonID,
			ServiceID: req.ServiceID,
			Slots:     []Slot{},
		}, nil
	}

	// 8. Получаем все активные бронирования на эту дату
	filter := domain.SalonBookingsFilter{
		SalonID:         req.SalonID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 9. Размечаем кандидаты занятостью
	annotated := annotateSlots(candidates, service.DurationMinutes, config, bookings)

	daySlots := domain.DaySlots{Date: req.Date, Slots: annotated}

	uc.logger.Info("GetDaySlots: %d slots (%d available) for salon=%d, service=%d, date=%s",
		len(annotated), daySlots.AvailableCount(), req.SalonID, req.ServiceID,
		req.Date.Format(domain.DateFormat))

	return &Response{
		Date:        req.Date,
		SalonID:     req.SalonID,
		ServiceID:   req.ServiceID,
		Slots:       fromDomainSlots(annotated, service.DurationMinutes),
		FullyBooked: daySlots.IsFullyBooked(),
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
