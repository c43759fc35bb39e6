package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/d4shko/salon-booking-service/internal/domain"
	scheduleRepo "github.com/d4shko/salon-booking-service/internal/infra/storage/schedule"
	catalogClient "github.com/d4shko/salon-booking-service/internal/integrations/catalogservice"
	"github.com/d4shko/salon-booking-service/internal/service/schedule/models"
)

// Service сервис для управления конфигурацией расписания
type Service struct {
	scheduleRepo  ScheduleRepository
	catalogClient CatalogServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:  scheduleRepo,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// Create создает новую конфигурацию расписания.
// Проверяет существование салона и услуги (если указана).
func (s *Service) Create(ctx context.Context, req *models.CreateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Create: creating schedule config for salon=%d, service=%v", req.SalonID, req.ServiceID)

	// 1. Конвертируем и валидируем конфигурацию
	config, err := req.ToDomainConfig()
	if err != nil {
		s.logger.Warn("Create: invalid working days: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.validateConfig(config); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование салона
	if _, err := s.catalogClient.GetSalon(ctx, req.SalonID); err != nil {
		if errors.Is(err, catalogClient.ErrSalonNotFound) {
			s.logger.Warn("Create: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("Create: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 3. Если указана услуга, проверяем ее существование
	if req.ServiceID != nil {
		if _, err := s.catalogClient.GetService(ctx, req.SalonID, *req.ServiceID); err != nil {
			if errors.Is(err, catalogClient.ErrServiceNotFound) {
				s.logger.Warn("Create: service id=%d not found in salon=%d", *req.ServiceID, req.SalonID)
				return nil, ErrServiceNotFound
			}
			s.logger.Error("Create: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	// 4. Проверяем, не существует ли уже конфигурация с такими параметрами
	existing, err := s.scheduleRepo.GetBySalonAndService(ctx, req.SalonID, req.ServiceID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
		s.logger.Error("Create: failed to check existing config: %v", err)
		return nil, fmt.Errorf("%w: failed to check existing config: %v", ErrInternal, err)
	}
	if existing != nil {
		s.logger.Warn("Create: config already exists for salon=%d, service=%v", req.SalonID, req.ServiceID)
		return nil, ErrConfigAlreadyExists
	}

	// 5. Создаем конфигурацию
	created, err := s.scheduleRepo.Create(ctx, config)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created schedule config id=%d", created.ID)
	return models.FromDomainConfig(created), nil
}

// Get получает конфигурацию расписания салона.
// При указании serviceID возвращает эффективную конфигурацию с учетом
// иерархии приоритетов: service > salon.
func (s *Service) Get(ctx context.Context, salonID int64, serviceID *int64) (*models.ScheduleResponse, error) {
	s.logger.Info("Get: fetching schedule config for salon=%d, service=%v", salonID, serviceID)

	config, err := s.scheduleRepo.GetConfigWithHierarchy(ctx, salonID, serviceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Warn("Get: no config found for salon=%d, service=%v", salonID, serviceID)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Get: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched schedule config id=%d (level: %s)",
		config.ID, s.configLevel(config))
	return models.FromDomainConfig(config), nil
}

// Update обновляет существующую конфигурацию расписания.
// Поддерживает частичное обновление - обновляются только указанные поля.
func (s *Service) Update(ctx context.Context, salonID int64, serviceID *int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: updating schedule config for salon=%d, service=%v", salonID, serviceID)

	// 1. Получаем существующую конфигурацию
	config, err := s.scheduleRepo.GetBySalonAndService(ctx, salonID, serviceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Warn("Update: config not found for salon=%d, service=%v", salonID, serviceID)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Update: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 2. Применяем обновления к копии и валидируем
	updated := *config
	if err := req.ApplyToConfig(&updated); err != nil {
		s.logger.Warn("Update: invalid update for config id=%d: %v", config.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.validateConfig(&updated); err != nil {
		s.logger.Warn("Update: validation failed for config id=%d: %v", config.ID, err)
		return nil, err
	}

	// 3. Сохраняем изменения
	if err := s.scheduleRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Warn("Update: config id=%d not found during update", config.ID)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Update: repository error for config id=%d: %v", config.ID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated schedule config id=%d", config.ID)
	return models.FromDomainConfig(&updated), nil
}

// Delete удаляет конфигурацию расписания
func (s *Service) Delete(ctx context.Context, salonID int64, serviceID *int64) error {
	s.logger.Info("Delete: deleting schedule config for salon=%d, service=%v", salonID, serviceID)

	config, err := s.scheduleRepo.GetBySalonAndService(ctx, salonID, serviceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Warn("Delete: config not found for salon=%d, service=%v", salonID, serviceID)
			return ErrConfigNotFound
		}
		s.logger.Error("Delete: repository error for salon=%d: %v", salonID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.scheduleRepo.Delete(ctx, config.ID); err != nil {
		if errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Warn("Delete: config id=%d not found during deletion", config.ID)
			return ErrConfigNotFound
		}
		s.logger.Error("Delete: repository error for config id=%d: %v", config.ID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted schedule config id=%d", config.ID)
	return nil
}

// Вспомогательные методы

// validateConfig валидирует параметры конфигурации расписания
func (s *Service) validateConfig(config *domain.ScheduleConfig) error {
	if !config.BusinessHours.IsValid() {
		return fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}

	if config.LunchBreak != nil {
		if !config.LunchBreak.IsValid() {
			return fmt.Errorf("%w: lunchStart must be before lunchEnd", ErrInvalidInput)
		}
		// Обед должен целиком помещаться в рабочие часы
		if config.LunchBreak.Start.IsBefore(config.BusinessHours.Start) ||
			config.BusinessHours.End.IsBefore(config.LunchBreak.End) {
			return fmt.Errorf("%w: lunch break must be within business hours", ErrInvalidInput)
		}
	}

	if config.WorkingDays.IsEmpty() {
		return fmt.Errorf("%w: at least one working day is required", ErrInvalidInput)
	}

	if config.SlotGranularityMinutes < domain.MinSlotGranularityMinutes ||
		config.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slotGranularityMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}

	if config.AdvanceBookingDays < domain.MinAdvanceBookingDays ||
		config.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if config.MaxBookingsPerClient < domain.MinMaxBookingsPerClient ||
		config.MaxBookingsPerClient > domain.MaxMaxBookingsPerClient {
		return fmt.Errorf("%w: maxBookingsPerClient must be between %d and %d",
			ErrInvalidInput, domain.MinMaxBookingsPerClient, domain.MaxMaxBookingsPerClient)
	}

	if config.MinBookingNoticeMinutes < domain.MinNoticeMinutes ||
		config.MinBookingNoticeMinutes > domain.MaxNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinNoticeMinutes, domain.MaxNoticeMinutes)
	}

	return nil
}

// configLevel возвращает строковое представление уровня конфигурации для логирования
func (s *Service) configLevel(config *domain.ScheduleConfig) string {
	if config.IsServiceSpecific() {
		return "service"
	}
	return "salon"
}
