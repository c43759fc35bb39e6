package check_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d4shko/salon-booking-service/internal/domain"
	"github.com/d4shko/salon-booking-service/internal/integrations/catalogservice"
	"github.com/d4shko/salon-booking-service/pkg/types"
)

type stubBookingRepo struct {
	dayBookings      []*domain.Booking
	upcomingBookings []*domain.Booking
}

func (s *stubBookingRepo) GetBySalonWithFilter(_ context.Context, _ domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	return s.dayBookings, nil
}

func (s *stubBookingRepo) GetUpcomingByClient(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return s.upcomingBookings, nil
}

type stubScheduleRepo struct {
	config *domain.ScheduleConfig
}

func (s *stubScheduleRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.ScheduleConfig, error) {
	return s.config, nil
}

type stubCatalogClient struct {
	salonErr   error
	service    *catalogservice.Service
	serviceErr error
}

func (s *stubCatalogClient) GetSalon(_ context.Context, _ int64) (*catalogservice.Salon, error) {
	if s.salonErr != nil {
		return nil, s.salonErr
	}
	return &catalogservice.Salon{ID: 1, Name: "Lotus"}, nil
}

func (s *stubCatalogClient) GetService(_ context.Context, _, _ int64) (*catalogservice.Service, error) {
	return s.service, s.serviceErr
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
		MaxBookingsPerClient:   3,
	}
}

// monday возвращает понедельник 2025-10-13
func monday() time.Time {
	return time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
}

func sunday() time.Time {
	return time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)
}

func friday() time.Time {
	return time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
}

func haircut(durationMinutes int) *catalogservice.Service {
	return &catalogservice.Service{
		ID:              1,
		SalonID:         1,
		Name:            "Haircut",
		DurationMinutes: durationMinutes,
		IsActive:        true,
	}
}

func upcomingBooking(id int64, date time.Time, start string) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		ClientID:        50,
		SalonID:         1,
		ServiceID:       1,
		BookingDate:     date,
		StartTime:       types.TimeString(start),
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}
}

func newTestUseCase(repo *stubBookingRepo, config *domain.ScheduleConfig, service *catalogservice.Service, now time.Time) *UseCase {
	uc := NewUseCase(
		repo,
		&stubScheduleRepo{config: config},
		&stubCatalogClient{service: service},
		noopLogger{},
	)
	uc.timeProvider = &stubTimeProvider{now: now}
	return uc
}

func checkRequest(start string) *Request {
	return &Request{
		ClientID:  50,
		SalonID:   1,
		ServiceID: 1,
		Date:      monday(),
		StartTime: types.TimeString(start),
	}
}

func TestExecuteBookableSlot(t *testing.T) {
	uc := newTestUseCase(&stubBookingRepo{}, testScheduleConfig(), haircut(30), friday())

	resp, err := uc.Execute(context.Background(), checkRequest("10:00"))

	require.NoError(t, err)
	assert.True(t, resp.CanBook)
	assert.Empty(t, resp.Reason)
}

func TestExecuteNonWorkingDay(t *testing.T) {
	uc := newTestUseCase(&stubBookingRepo{}, testScheduleConfig(), haircut(30), friday())

	req := checkRequest("10:00")
	req.Date = sunday()
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, resp.CanBook)
	assert.Equal(t, ReasonNonWorkingDay, resp.Reason)
}

func TestExecutePastDate(t *testing.T) {
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&stubBookingRepo{}, testScheduleConfig(), haircut(30), now)

	resp, err := uc.Execute(context.Background(), checkRequest("10:00"))

	require.NoError(t, err)
	assert.False(t, resp.CanBook)
	assert.Equal(t, ReasonDateInPast, resp.Reason)
}

func TestExecuteBeyondAdvanceWindow(t *testing.T) {
	config := testScheduleConfig()
	config.AdvanceBookingDays = 30
	uc := newTestUseCase(&stubBookingRepo{}, config, haircut(30), friday())

	req := checkRequest("10:00")
	req.Date = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, resp.CanBook)
	assert.Equal(t, ReasonTooFarInFuture, resp.Reason)
}

func TestExecuteTimeRules(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		duration int
		want     Reason
	}{
		{"before opening", "08:30", 30, ReasonOutsideHours},
		{"at closing", "18:00", 30, ReasonOutsideHours},
		{"not on grid", "10:15", 30, ReasonNotOnGrid},
		{"start inside lunch", "13:00", 30, ReasonOverlapsLunch},
		{"runs into lunch", "12:30", 60, ReasonOverlapsLunch},
		{"runs past closing", "17:30", 90, ReasonExceedsClosing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&stubBookingRepo{}, testScheduleConfig(), haircut(tt.duration), friday())

			resp, err := uc.Execute(context.Background(), checkRequest(tt.start))

			require.NoError(t, err)
			assert.False(t, resp.CanBook)
			assert.Equal(t, tt.want, resp.Reason)
		})
	}
}

func TestExecuteTooLateToBookToday(t *testing.T) {
	// Сегодня понедельник, 10:30: слот 10:00 уже наступил
	now := time.Date(2025, 10, 13, 10, 30, 0, 0, time.UTC)
	uc := newTestUseCase(&stubBookingRepo{}, testScheduleConfig(), haircut(30), now)

	resp, err := uc.Execute(context.Background(), checkRequest("10:00"))

	require.NoError(t, err)
	assert.False(t, resp.CanBook)
	assert.Equal(t, ReasonTooLateToBook, resp.Reason)
}

func TestExecuteMinBookingNotice(t *testing.T) {
	config := testScheduleConfig()
	config.MinBookingNoticeMinutes = 120
	now := time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&stubBookingRepo{}, config, haircut(30), now)

	resp, err := uc.Execute(context.Background(), checkRequest("10:00"))
	require.NoError(t, err)
	assert.Equal(t, ReasonTooLateToBook, resp.Reason)

	resp, err = uc.Execute(context.Background(), checkRequest("11:00"))
	require.NoError(t, err)
	assert.True(t, resp.CanBook)
}

func TestExecuteOccupiedSlot(t *testing.T) {
	repo := &stubBookingRepo{
		dayBookings: []*domain.Booking{
			func() *domain.Booking {
				b := upcomingBooking(1, monday(), "10:00")
				b.ClientID = 99
				b.DurationMinutes = 60
				return b
			}(),
		},
	}
	uc := newTestUseCase(repo, testScheduleConfig(), haircut(30), friday())

	resp, err := uc.Execute(context.Background(), checkRequest("10:30"))

	require.NoError(t, err)
	assert.False(t, resp.CanBook)
	assert.Equal(t, ReasonSlotOccupied, resp.Reason)

	// Граничный случай: 11:00 начинается ровно в момент окончания
	resp, err = uc.Execute(context.Background(), checkRequest("11:00"))
	require.NoError(t, err)
	assert.True(t, resp.CanBook)
}

func TestExecuteCancelledBookingDoesNotBlock(t *testing.T) {
	cancelled := upcomingBooking(1, monday(), "10:00")
	cancelled.Status = domain.StatusCancelledByClient
	repo := &stubBookingRepo{dayBookings: []*domain.Booking{cancelled}}
	uc := newTestUseCase(repo, testScheduleConfig(), haircut(30), friday())

	resp, err := uc.Execute(context.Background(), checkRequest("10:00"))

	require.NoError(t, err)
	assert.True(t, resp.CanBook)
}

func TestExecuteClientBookingLimit(t *testing.T) {
	repo := &stubBookingRepo{
		upcomingBookings: []*domain.Booking{
			upcomingBooking(1, monday(), "10:00"),
			upcomingBooking(2, monday().AddDate(0, 0, 1), "11:00"),
			upcomingBooking(3, monday().AddDate(0, 0, 2), "12:00"),
		},
	}
	uc := newTestUseCase(repo, testScheduleConfig(), haircut(30), friday())

	req := checkRequest("15:00")
	req.Date = monday().AddDate(0, 0, 3)
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, resp.CanBook)
	assert.Equal(t, ReasonClientLimit, resp.Reason)
}

func TestExecuteClientLimitIgnoresCancelled(t *testing.T) {
	cancelled := upcomingBooking(3, monday().AddDate(0, 0, 2), "12:00")
	cancelled.Status = domain.StatusCancelledBySalon
	repo := &stubBookingRepo{
		upcomingBookings: []*domain.Booking{
			upcomingBooking(1, monday(), "10:00"),
			upcomingBooking(2, monday().AddDate(0, 0, 1), "11:00"),
			cancelled,
		},
	}
	uc := newTestUseCase(repo, testScheduleConfig(), haircut(30), friday())

	resp, err := uc.Execute(context.Background(), checkRequest("15:00"))

	require.NoError(t, err)
	assert.True(t, resp.CanBook)
}

func TestExecuteUnlimitedClientBookings(t *testing.T) {
	config := testScheduleConfig()
	config.MaxBookingsPerClient = 0
	repo := &stubBookingRepo{
		upcomingBookings: []*domain.Booking{
			upcomingBooking(1, monday(), "10:00"),
			upcomingBooking(2, monday().AddDate(0, 0, 1), "11:00"),
			upcomingBooking(3, monday().AddDate(0, 0, 2), "12:00"),
			upcomingBooking(4, monday().AddDate(0, 0, 3), "12:00"),
		},
	}
	uc := newTestUseCase(repo, config, haircut(30), friday())

	resp, err := uc.Execute(context.Background(), checkRequest("15:00"))

	require.NoError(t, err)
	assert.True(t, resp.CanBook)
}

func TestExecuteInactiveService(t *testing.T) {
	service := haircut(30)
	service.IsActive = false
	uc := newTestUseCase(&stubBookingRepo{}, testScheduleConfig(), service, friday())

	resp, err := uc.Execute(context.Background(), checkRequest("10:00"))

	require.NoError(t, err)
	assert.False(t, resp.CanBook)
	assert.Equal(t, ReasonServiceInactive, resp.Reason)
}

func TestExecuteSalonNotFound(t *testing.T) {
	uc := NewUseCase(
		&stubBookingRepo{},
		&stubScheduleRepo{config: testScheduleConfig()},
		&stubCatalogClient{salonErr: catalogservice.ErrSalonNotFound},
		noopLogger{},
	)
	uc.timeProvider = &stubTimeProvider{now: friday()}

	_, err := uc.Execute(context.Background(), checkRequest("10:00"))

	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestExecuteInvalidInput(t *testing.T) {
	uc := newTestUseCase(&stubBookingRepo{}, testScheduleConfig(), haircut(30), friday())

	req := checkRequest("10:00")
	req.ClientID = 0
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = checkRequest("25:99")
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
