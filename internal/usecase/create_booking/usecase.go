package create_booking

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

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	scheduleRepo  ScheduleRepository
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		scheduleRepo:  scheduleRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Использует сериализуемую транзакцию для предотвращения двойного бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, salon=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.SalonID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон
	if _, err := uc.catalogClient.GetSalon(ctx, req.SalonID); err != nil {
		if errors.Is(err, catalogClient.ErrSalonNotFound) {
			uc.logger.Warn("CreateBooking: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateBooking: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Получаем услугу (длительность определяет занимаемый интервал)
	service, err := uc.catalogClient.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем конфигурацию расписания с учетом иерархии
		config, err := uc.scheduleRepo.GetConfigWithHierarchy(txCtx, req.SalonID, ptr.Ptr(req.ServiceID))
		if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateBooking: failed to get schedule config: %v", err)
			return fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
		}

		// Если конфигурация не найдена, используем дефолтные значения
		if config == nil {
			config = defaultScheduleConfig(req.SalonID)
			uc.logger.Info("CreateBooking: using default schedule config for salon=%d", req.SalonID)
		} else {
			uc.logger.Info("CreateBooking: using schedule config id=%d", config.ID)
		}

		// 5.2. Календарные правила: прошлое, рабочий день, горизонт бронирования
		if err := validateDate(config, req.Date, now); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 5.3. Правила времени: сетка, рабочие часы, обед, закрытие, предупреждение
		if err := validateTimeSlot(config, req.Date, req.StartTime, service.DurationMinutes, now); err != nil {
			uc.logger.Warn("CreateBooking: time slot validation failed: %v", err)
			return err
		}

		// 5.4. Проверяем лимит активных бронирований клиента
		if config.HasClientBookingCap() {
			upcoming, err := uc.bookingRepo.GetUpcomingByClient(txCtx, req.ClientID, calendar.StartOfDay(now))
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get client bookings: %v", err)
				return fmt.Errorf("%w: failed to get client bookings: %v", ErrInternal, err)
			}

			if countUpcomingBookings(upcoming, now) >= config.MaxBookingsPerClient {
				uc.logger.Warn("CreateBooking: client id=%d reached booking limit %d",
					req.ClientID, config.MaxBookingsPerClient)
				return fmt.Errorf("%w: at most %d upcoming bookings allowed",
					ErrBookingLimitReached, config.MaxBookingsPerClient)
			}
		}

		// 5.5. Получаем все активные бронирования на эту дату с блокировкой (FOR UPDATE)
		filter := domain.SalonBookingsFilter{
			SalonID:         req.SalonID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetBySalonWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.6. Проверяем, что слот свободен
		overlaps, err := hasOverlappingBooking(req.StartTime, service.DurationMinutes, bookings)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check overlaps: %v", err)
			return fmt.Errorf("%w: failed to check overlaps: %v", ErrInternal, err)
		}
		if overlaps {
			uc.logger.Warn("CreateBooking: slot %s on %s is already taken",
				req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 5.7. Создаем бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			ClientID:        req.ClientID,
			SalonID:         req.SalonID,
			ServiceID:       req.ServiceID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusConfirmed,
			ClientName:      req.ClientName,
			ServiceName:     service.Name,
			ServicePrice:    getServicePrice(service),
			ServiceIcon:     service.Icon,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	endTime, err := result.EndTime()
	if err != nil {
		uc.logger.Error("CreateBooking: failed to calculate end time: %v", err)
		return nil, fmt.Errorf("%w: failed to calculate end time: %v", ErrInternal, err)
	}

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		SalonID:         result.SalonID,
		ServiceID:       result.ServiceID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		EndTime:         endTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ClientName:      result.ClientName,
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		ServiceIcon:     result.ServiceIcon,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// getServicePrice извлекает цену из услуги.
// Если цена не указана (nil), возвращает 0.0
func getServicePrice(service *catalogClient.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
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
