package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d4shko/salon-booking-service/internal/domain"
	"github.com/d4shko/salon-booking-service/internal/integrations/catalogservice"
	"github.com/d4shko/salon-booking-service/pkg/ptr"
	"github.com/d4shko/salon-booking-service/pkg/types"
)

type stubBookingRepo struct {
	dayBookings      []*domain.Booking
	upcomingBookings []*domain.Booking
	created          *domain.Booking
	nextID           int64
}

func (s *stubBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	created := *booking
	created.ID = s.nextID
	created.CreatedAt = time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	s.created = &created
	return &created, nil
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
	service *catalogservice.Service
}

func (s *stubCatalogClient) GetSalon(_ context.Context, _ int64) (*catalogservice.Salon, error) {
	return &catalogservice.Salon{ID: 1, Name: "Lotus"}, nil
}

func (s *stubCatalogClient) GetService(_ context.Context, _, _ int64) (*catalogservice.Service, error) {
	return s.service, nil
}

// passthroughTxManager выполняет функцию без реальной транзакции
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func friday() time.Time {
	return time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)
}

func haircut(durationMinutes int) *catalogservice.Service {
	return &catalogservice.Service{
		ID:              1,
		SalonID:         1,
		Name:            "Haircut",
		DurationMinutes: durationMinutes,
		Price:           ptr.Ptr(1500.0),
		IsActive:        true,
	}
}

func newTestUseCase(repo *stubBookingRepo, config *domain.ScheduleConfig, service *catalogservice.Service, now time.Time) *UseCase {
	uc := NewUseCase(
		repo,
		&stubScheduleRepo{config: config},
		&stubCatalogClient{service: service},
		passthroughTxManager{},
		noopLogger{},
	)
	uc.timeProvider = &stubTimeProvider{now: now}
	return uc
}

func bookingRequest(start string) *Request {
	return &Request{
		ClientID:   50,
		SalonID:    1,
		ServiceID:  1,
		Date:       monday(),
		StartTime:  types.TimeString(start),
		ClientName: "Anna",
	}
}

func confirmed(id int64, date time.Time, start string, durationMinutes int) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		ClientID:        99,
		SalonID:         1,
		ServiceID:       1,
		BookingDate:     date,
		StartTime:       types.TimeString(start),
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
	}
}

func TestExecuteCreatesConfirmedBooking(t *testing.T) {
	repo := &stubBookingRepo{nextID: 42}
	uc := newTestUseCase(repo, testScheduleConfig(), haircut(60), friday())

	resp, err := uc.Execute(context.Background(), bookingRequest("10:00"))

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Anna", resp.ClientName)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.ServicePrice)

	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusConfirmed, repo.created.Status)
	assert.Equal(t, 60, repo.created.DurationMinutes)
}

func TestExecuteRejectsOccupiedSlot(t *testing.T) {
	repo := &stubBookingRepo{
		dayBookings: []*domain.Booking{confirmed(1, monday(), "10:00", 60)},
	}
	uc := newTestUseCase(repo, testScheduleConfig(), haircut(30), friday())

	_, err := uc.Execute(context.Background(), bookingRequest("10:30"))

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, repo.created)
}

func TestExecuteAllowsBoundaryTouchingSlot(t *testing.T) {
	repo := &stubBookingRepo{
		nextID:      7,
		dayBookings: []*domain.Booking{confirmed(1, monday(), "10:00", 60)},
	}
	uc := newTestUseCase(repo, testScheduleConfig(), haircut(30), friday())

	// 09:30-10:00 заканчивается ровно в момент начала чужого бронирования
	resp, err := uc.Execute(context.Background(), bookingRequest("09:30"))

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
}

func TestExecuteIgnoresCancelledBookings(t *testing.T) {
	cancelled := confirmed(1, monday(), "10:00", 60)
	cancelled.Status = domain.StatusCancelledByClient
	repo := &stubBookingRepo{
		nextID:      8,
		dayBookings: []*domain.Booking{cancelled},
	}
	uc := newTestUseCase(repo, testScheduleConfig(), haircut(30), friday())

	_, err := uc.Execute(context.Background(), bookingRequest("10:00"))

	require.NoError(t, err)
}

func TestExecuteEnforcesClientLimit(t *testing.T) {
	repo := &stubBookingRepo{
		upcomingBookings: []*domain.Booking{
			confirmed(1, monday(), "10:00", 30),
			confirmed(2, monday().AddDate(0, 0, 1), "11:00", 30),
			confirmed(3, monday().AddDate(0, 0, 2), "12:00", 30),
		},
	}
	uc := newTestUseCase(repo, testScheduleConfig(), haircut(30), friday())

	_, err := uc.Execute(context.Background(), bookingRequest("15:00"))

	assert.ErrorIs(t, err, ErrBookingLimitReached)
	assert.Nil(t, repo.created)
}

func TestExecuteRejectsNonWorkingDay(t *testing.T) {
	uc := newTestUseCase(&stubBookingRepo{}, testScheduleConfig(), haircut(30), friday())

	req := bookingRequest("10:00")
	req.Date = time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC) // воскресенье
	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSalonClosed)
}

func TestExecuteRejectsPastDate(t *testing.T) {
	now := time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)
	uc := newTestUseCase(&stubBookingRepo{}, testScheduleConfig(), haircut(30), now)

	_, err := uc.Execute(context.Background(), bookingRequest("10:00"))

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecuteRejectsInvalidTimeSlots(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		duration int
	}{
		{"before opening", "08:00", 30},
		{"misaligned start", "10:10", 30},
		{"inside lunch", "13:30", 30},
		{"runs into lunch", "12:30", 60},
		{"runs past closing", "17:30", 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&stubBookingRepo{}, testScheduleConfig(), haircut(tt.duration), friday())

			_, err := uc.Execute(context.Background(), bookingRequest(tt.start))

			assert.ErrorIs(t, err, ErrInvalidTimeSlot)
		})
	}
}

func TestExecuteRejectsLateBookingToday(t *testing.T) {
	now := time.Date(2025, 10, 13, 10, 30, 0, 0, time.UTC)
	uc := newTestUseCase(&stubBookingRepo{}, testScheduleConfig(), haircut(30), now)

	_, err := uc.Execute(context.Background(), bookingRequest("10:00"))

	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecuteRejectsInactiveService(t *testing.T) {
	service := haircut(30)
	service.IsActive = false
	uc := newTestUseCase(&stubBookingRepo{}, testScheduleConfig(), service, friday())

	_, err := uc.Execute(context.Background(), bookingRequest("10:00"))

	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecuteRejectsInvalidInput(t *testing.T) {
	uc := newTestUseCase(&stubBookingRepo{}, testScheduleConfig(), haircut(30), friday())

	req := bookingRequest("10:00")
	req.ClientName = "  "
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = bookingRequest("not-a-time")
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
