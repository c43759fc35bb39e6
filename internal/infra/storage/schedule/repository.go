package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/d4shko/salon-booking-service/internal/domain"
	"github.com/d4shko/salon-booking-service/pkg/dbmetrics"
	"github.com/d4shko/salon-booking-service/pkg/psqlbuilder"
	"github.com/d4shko/salon-booking-service/pkg/types"
)

// DBExecutor общий интерфейс выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

var configColumns = []string{
	"id",
	"salon_id",
	"service_id",
	"open_time",
	"close_time",
	"lunch_start",
	"lunch_end",
	"working_days",
	"slot_granularity_minutes",
	"advance_booking_days",
	"max_bookings_per_client",
	"min_booking_notice_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с конфигурацией расписания салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую конфигурацию расписания
func (r *Repository) Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var lunchStart, lunchEnd interface{}
	if config.LunchBreak != nil {
		lunchStart = config.LunchBreak.Start
		lunchEnd = config.LunchBreak.End
	}

	query, args, err := psqlbuilder.Insert("schedule_configs").
		Columns(
			"salon_id",
			"service_id",
			"open_time",
			"close_time",
			"lunch_start",
			"lunch_end",
			"working_days",
			"slot_granularity_minutes",
			"advance_booking_days",
			"max_bookings_per_client",
			"min_booking_notice_minutes",
		).
		Values(
			config.SalonID,
			config.ServiceID,
			config.BusinessHours.Start,
			config.BusinessHours.End,
			lunchStart,
			lunchEnd,
			int(config.WorkingDays),
			config.SlotGranularityMinutes,
			config.AdvanceBookingDays,
			config.MaxBookingsPerClient,
			config.MinBookingNoticeMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// GetBySalonAndService получает конфигурацию для салона и услуги.
// serviceID = nil означает общесалонную конфигурацию.
func (r *Repository) GetBySalonAndService(ctx context.Context, salonID int64, serviceID *int64) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("schedule_configs").
		Where(squirrel.Eq{"salon_id": salonID})

	// Фильтрация по service_id (NULL или конкретное значение)
	if serviceID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *serviceID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonAndService - build select query: %v", ErrBuildQuery, err)
	}

	config, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonAndService - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов:
// 1. Конфигурация для конкретной услуги (salon_id, service_id)
// 2. Общесалонная конфигурация (salon_id, NULL)
// Если ничего не найдено, возвращает ErrConfigNotFound.
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, salonID int64, serviceID *int64) (*domain.ScheduleConfig, error) {
	if serviceID != nil {
		config, err := r.GetBySalonAndService(ctx, salonID, serviceID)
		if err == nil {
			return config, nil
		}
		if err != ErrConfigNotFound {
			return nil, err
		}
	}

	return r.GetBySalonAndService(ctx, salonID, nil)
}

// Update обновляет конфигурацию расписания по ID
func (r *Repository) Update(ctx context.Context, config *domain.ScheduleConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var lunchStart, lunchEnd interface{}
	if config.LunchBreak != nil {
		lunchStart = config.LunchBreak.Start
		lunchEnd = config.LunchBreak.End
	}

	query, args, err := psqlbuilder.Update("schedule_configs").
		Set("open_time", config.BusinessHours.Start).
		Set("close_time", config.BusinessHours.End).
		Set("lunch_start", lunchStart).
		Set("lunch_end", lunchEnd).
		Set("working_days", int(config.WorkingDays)).
		Set("slot_granularity_minutes", config.SlotGranularityMinutes).
		Set("advance_booking_days", config.AdvanceBookingDays).
		Set("max_bookings_per_client", config.MaxBookingsPerClient).
		Set("min_booking_notice_minutes", config.MinBookingNoticeMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": config.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

// Delete удаляет конфигурацию расписания
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_configs").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

// scanConfig сканирует строку в конфигурацию расписания
func scanConfig(row *sql.Row) (*domain.ScheduleConfig, error) {
	var config domain.ScheduleConfig
	var lunchStart, lunchEnd types.TimeString
	var workingDays int
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.SalonID,
		&config.ServiceID,
		&config.BusinessHours.Start,
		&config.BusinessHours.End,
		&lunchStart,
		&lunchEnd,
		&workingDays,
		&config.SlotGranularityMinutes,
		&config.AdvanceBookingDays,
		&config.MaxBookingsPerClient,
		&config.MinBookingNoticeMinutes,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	// Обеденный перерыв присутствует, только если заданы обе границы окна
	if !lunchStart.IsZero() && !lunchEnd.IsZero() {
		config.LunchBreak = &domain.LunchBreak{Start: lunchStart, End: lunchEnd}
	}

	config.WorkingDays = domain.WorkingDays(workingDays)
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
