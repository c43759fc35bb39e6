package get_calendar_days

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d4shko/salon-booking-service/internal/calendar"
	"github.com/d4shko/salon-booking-service/internal/domain"
	"github.com/d4shko/salon-booking-service/internal/integrations/catalogservice"
	"github.com/d4shko/salon-booking-service/pkg/types"
)

type stubBookingRepo struct {
	bookings   []*domain.Booking
	lastFilter domain.SalonBookingsFilter
}

func (s *stubBookingRepo) GetBySalonWithFilter(_ context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	s.lastFilter = filter
	return s.bookings, nil
}

type stubScheduleRepo struct {
	config *domain.ScheduleConfig
}

func (s *stubScheduleRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.ScheduleConfig, error) {
	return s.config, nil
}

type stubCatalogClient struct {
	service *catalogservice.Service
}

func (s *stubCatalogClient) GetSalon(_ context.Context, _ int64) (*catalogservice.Salon, error) {
	return &catalogservice.Salon{ID: 1, Name: "Lotus"}, nil
}

func (s *stubCatalogClient) GetService(_ context.Context, _, _ int64) (*catalogservice.Service, error) {
	return s.service, nil
}

type stubTimeProvider struct {
	now time.Time
}

func (s *stubTimeProvider) Now() time.Time {
	return s.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testScheduleConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		SalonID: 1,
		BusinessHours: domain.BusinessHours{
			Start: types.TimeString("09:00"),
			End:   types.TimeString("18:00"),
		},
		LunchBreak: &domain.LunchBreak{
			Start: types.TimeString("13:00"),
			End:   types.TimeString("14:00"),
		},
		WorkingDays:            domain.DefaultWorkingDays,
		SlotGranularityMinutes: 30,
	}
}

func newTestUseCase(repo *stubBookingRepo, config *domain.ScheduleConfig, durationMinutes int, now time.Time) *UseCase {
	uc := NewUseCase(
		repo,
		&stubScheduleRepo{config: config},
		&stubCatalogClient{service: &catalogservice.Service{
			ID:              1,
			SalonID:         1,
			Name:            "Haircut",
			DurationMinutes: durationMinutes,
			IsActive:        true,
		}},
		noopLogger{},
	)
	uc.timeProvider = &stubTimeProvider{now: now}
	return uc
}

func monthRequest(month time.Time) *Request {
	return &Request{SalonID: 1, ServiceID: 1, Month: month}
}

func TestExecuteMonthView(t *testing.T) {
	now := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
	repo := &stubBookingRepo{}
	uc := newTestUseCase(repo, testScheduleConfig(), 30, now)

	resp, err := uc.Execute(context.Background(), monthRequest(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)))

	require.NoError(t, err)
	require.NotEmpty(t, resp.Days)

	// Представление начинается с понедельника 29 сентября и
	// заканчивается субботой 1 ноября (рабочая неделя пн-сб)
	assert.Equal(t, time.Date(2025, 9, 29, 0, 0, 0, 0, time.UTC), resp.Days[0].Date)
	assert.Equal(t, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), resp.Days[len(resp.Days)-1].Date)
	assert.False(t, resp.Days[0].InMonth)
	assert.False(t, resp.Days[len(resp.Days)-1].InMonth)

	// Бронирования загружаются одним запросом за весь период
	require.NotNil(t, repo.lastFilter.StartDate)
	require.NotNil(t, repo.lastFilter.EndDate)
	assert.Equal(t, resp.Days[0].Date, *repo.lastFilter.StartDate)
	assert.Equal(t, resp.Days[len(resp.Days)-1].Date, *repo.lastFilter.EndDate)

	for _, day := range resp.Days {
		if day.Date.Weekday() == time.Sunday {
			assert.False(t, day.IsWorkingDay, "sunday %s marked as working", calendar.FormatDate(day.Date))
			assert.Zero(t, day.AvailableSlots)
			assert.False(t, day.FullyBooked)
		}
	}
}

func TestExecutePastDaysHaveNoSlots(t *testing.T) {
	now := time.Date(2025, 10, 15, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&stubBookingRepo{}, testScheduleConfig(), 30, now)

	resp, err := uc.Execute(context.Background(), monthRequest(now))

	require.NoError(t, err)
	for _, day := range resp.Days {
		if day.IsPast {
			assert.Zero(t, day.AvailableSlots, "past day %s has slots", calendar.FormatDate(day.Date))
			assert.False(t, day.FullyBooked)
		}
	}
}

func TestExecuteFullyBookedDay(t *testing.T) {
	now := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
	day := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	repo := &stubBookingRepo{
		bookings: []*domain.Booking{{
			ID:              1,
			ClientID:        50,
			SalonID:         1,
			ServiceID:       1,
			BookingDate:     day,
			StartTime:       types.TimeString("09:00"),
			DurationMinutes: 9 * 60,
			Status:          domain.StatusConfirmed,
		}},
	}
	uc := newTestUseCase(repo, testScheduleConfig(), 30, now)

	resp, err := uc.Execute(context.Background(), monthRequest(day))

	require.NoError(t, err)
	var booked Day
	for _, d := range resp.Days {
		if calendar.IsSameDay(d.Date, day) {
			booked = d
		}
	}
	assert.True(t, booked.FullyBooked)
	assert.Zero(t, booked.AvailableSlots)
	assert.True(t, booked.IsWorkingDay)
}

func TestExecuteAvailableSlotCount(t *testing.T) {
	now := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
	day := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	repo := &stubBookingRepo{
		bookings: []*domain.Booking{{
			ID:              1,
			ClientID:        50,
			SalonID:         1,
			ServiceID:       1,
			BookingDate:     day,
			StartTime:       types.TimeString("10:00"),
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		}},
	}
	uc := newTestUseCase(repo, testScheduleConfig(), 30, now)

	resp, err := uc.Execute(context.Background(), monthRequest(day))

	require.NoError(t, err)
	var target Day
	for _, d := range resp.Days {
		if calendar.IsSameDay(d.Date, day) {
			target = d
		}
	}
	// 16 кандидатов, бронирование 10:00-11:00 занимает два слота
	assert.Equal(t, 14, target.AvailableSlots)
	assert.False(t, target.FullyBooked)
}

func TestDayAvailabilityMinBookingNotice(t *testing.T) {
	config := testScheduleConfig()
	config.MinBookingNoticeMinutes = 60
	day := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)

	total, available := dayAvailability(config, day, now, 30, nil)

	// Кандидат ровно через notice минут (11:00) еще допустим:
	// 11:00-12:30 и 14:00-17:30 дают 12 кандидатов
	assert.Equal(t, 12, total)
	assert.Equal(t, 12, available)
}

func TestDayAvailabilityTodayExcludesCurrentMinute(t *testing.T) {
	config := testScheduleConfig()
	day := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)

	total, available := dayAvailability(config, day, now, 30, nil)

	// Без notice старт ровно в now исключен: 10:30-12:30 и 14:00-17:30
	assert.Equal(t, 13, total)
	assert.Equal(t, 13, available)
}

func TestExecuteInvalidInput(t *testing.T) {
	now := time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&stubBookingRepo{}, testScheduleConfig(), 30, now)

	_, err := uc.Execute(context.Background(), &Request{SalonID: 0, ServiceID: 1, Month: now})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
