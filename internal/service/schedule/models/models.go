package models

import (
	"errors"
	"strings"
	"time"

	"github.com/d4shko/salon-booking-service/internal/domain"
	"github.com/d4shko/salon-booking-service/pkg/types"
)

var (
	// ErrInvalidWeekday возвращается при неизвестном названии дня недели
	ErrInvalidWeekday = errors.New("invalid weekday name")
)

// Request модели

// CreateScheduleRequest запрос на создание конфигурации расписания
type CreateScheduleRequest struct {
	SalonID                 int64    `json:"salonId"`
	ServiceID               *int64   `json:"serviceId,omitempty"` // nil = конфигурация всего салона
	OpenTime                string   `json:"openTime"`            // "09:00"
	CloseTime               string   `json:"closeTime"`           // "18:00"
	LunchStart              *string  `json:"lunchStart,omitempty"`
	LunchEnd                *string  `json:"lunchEnd,omitempty"`
	WorkingDays             []string `json:"workingDays"` // ["monday", ..., "saturday"]
	SlotGranularityMinutes  int      `json:"slotGranularityMinutes"`
	AdvanceBookingDays      int      `json:"advanceBookingDays"`
	MaxBookingsPerClient    int      `json:"maxBookingsPerClient"`
	MinBookingNoticeMinutes int      `json:"minBookingNoticeMinutes"`
}

// ToDomainConfig конвертирует request в domain модель
func (r *CreateScheduleRequest) ToDomainConfig() (*domain.ScheduleConfig, error) {
	workingDays, err := ToDomainWorkingDays(r.WorkingDays)
	if err != nil {
		return nil, err
	}

	config := &domain.ScheduleConfig{
		SalonID:   r.SalonID,
		ServiceID: r.ServiceID,
		BusinessHours: domain.BusinessHours{
			Start: types.TimeString(r.OpenTime),
			End:   types.TimeString(r.CloseTime),
		},
		WorkingDays:             workingDays,
		SlotGranularityMinutes:  r.SlotGranularityMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MaxBookingsPerClient:    r.MaxBookingsPerClient,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
	}

	if r.LunchStart != nil && r.LunchEnd != nil {
		config.LunchBreak = &domain.LunchBreak{
			Start: types.TimeString(*r.LunchStart),
			End:   types.TimeString(*r.LunchEnd),
		}
	}

	return config, nil
}

// UpdateScheduleRequest запрос на частичное обновление конфигурации.
// Обновляются только указанные поля.
type UpdateScheduleRequest struct {
	OpenTime                *string   `json:"openTime,omitempty"`
	CloseTime               *string   `json:"closeTime,omitempty"`
	LunchStart              *string   `json:"lunchStart,omitempty"`
	LunchEnd                *string   `json:"lunchEnd,omitempty"`
	RemoveLunch             bool      `json:"removeLunch,omitempty"`
	WorkingDays             *[]string `json:"workingDays,omitempty"`
	SlotGranularityMinutes  *int      `json:"slotGranularityMinutes,omitempty"`
	AdvanceBookingDays      *int      `json:"advanceBookingDays,omitempty"`
	MaxBookingsPerClient    *int      `json:"maxBookingsPerClient,omitempty"`
	MinBookingNoticeMinutes *int      `json:"minBookingNoticeMinutes,omitempty"`
}

// ApplyToConfig применяет частичное обновление к конфигурации
func (r *UpdateScheduleRequest) ApplyToConfig(config *domain.ScheduleConfig) error {
	if r.OpenTime != nil {
		config.BusinessHours.Start = types.TimeString(*r.OpenTime)
	}
	if r.CloseTime != nil {
		config.BusinessHours.End = types.TimeString(*r.CloseTime)
	}

	switch {
	case r.RemoveLunch:
		config.LunchBreak = nil
	case r.LunchStart != nil && r.LunchEnd != nil:
		config.LunchBreak = &domain.LunchBreak{
			Start: types.TimeString(*r.LunchStart),
			End:   types.TimeString(*r.LunchEnd),
		}
	}

	if r.WorkingDays != nil {
		workingDays, err := ToDomainWorkingDays(*r.WorkingDays)
		if err != nil {
			return err
		}
		config.WorkingDays = workingDays
	}

	if r.SlotGranularityMinutes != nil {
		config.SlotGranularityMinutes = *r.SlotGranularityMinutes
	}
	if r.AdvanceBookingDays != nil {
		config.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.MaxBookingsPerClient != nil {
		config.MaxBookingsPerClient = *r.MaxBookingsPerClient
	}
	if r.MinBookingNoticeMinutes != nil {
		config.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}

	return nil
}

// Response модели

// ScheduleResponse ответ с конфигурацией расписания
type ScheduleResponse struct {
	ID                      int64    `json:"id"`
	SalonID                 int64    `json:"salonId"`
	ServiceID               *int64   `json:"serviceId,omitempty"`
	OpenTime                string   `json:"openTime"`
	CloseTime               string   `json:"closeTime"`
	LunchStart              *string  `json:"lunchStart,omitempty"`
	LunchEnd                *string  `json:"lunchEnd,omitempty"`
	WorkingDays             []string `json:"workingDays"`
	SlotGranularityMinutes  int      `json:"slotGranularityMinutes"`
	AdvanceBookingDays      int      `json:"advanceBookingDays"`
	MaxBookingsPerClient    int      `json:"maxBookingsPerClient"`
	MinBookingNoticeMinutes int      `json:"minBookingNoticeMinutes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ScheduleConfig) *ScheduleResponse {
	if c == nil {
		return nil
	}

	resp := &ScheduleResponse{
		ID:                      c.ID,
		SalonID:                 c.SalonID,
		ServiceID:               c.ServiceID,
		OpenTime:                c.BusinessHours.Start.String(),
		CloseTime:               c.BusinessHours.End.String(),
		WorkingDays:             FromDomainWorkingDays(c.WorkingDays),
		SlotGranularityMinutes:  c.SlotGranularityMinutes,
		AdvanceBookingDays:      c.AdvanceBookingDays,
		MaxBookingsPerClient:    c.MaxBookingsPerClient,
		MinBookingNoticeMinutes: c.MinBookingNoticeMinutes,
		CreatedAt:               c.CreatedAt,
		UpdatedAt:               c.UpdatedAt,
	}

	if c.LunchBreak != nil {
		start := c.LunchBreak.Start.String()
		end := c.LunchBreak.End.String()
		resp.LunchStart = &start
		resp.LunchEnd = &end
	}

	return resp
}

// Конвертация дней недели

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ToDomainWorkingDays конвертирует названия дней недели в битовую маску
func ToDomainWorkingDays(names []string) (domain.WorkingDays, error) {
	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, ErrInvalidWeekday
		}
		days = append(days, day)
	}
	return domain.NewWorkingDays(days...), nil
}

// FromDomainWorkingDays конвертирует битовую маску в названия дней недели
func FromDomainWorkingDays(workingDays domain.WorkingDays) []string {
	names := make([]string, 0, 7)
	for _, day := range workingDays.Weekdays() {
		names = append(names, strings.ToLower(day.String()))
	}
	return names
}
