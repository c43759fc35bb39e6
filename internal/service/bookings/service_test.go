package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d4shko/salon-booking-service/internal/domain"
	bookingRepo "github.com/d4shko/salon-booking-service/internal/infra/storage/booking"
	"github.com/d4shko/salon-booking-service/internal/integrations/catalogservice"
	"github.com/d4shko/salon-booking-service/internal/service/bookings/models"
	"github.com/d4shko/salon-booking-service/pkg/ptr"
)

type stubBookingRepo struct {
	booking  *domain.Booking
	bookings []*domain.Booking

	cancelledID     int64
	cancelledStatus domain.BookingStatus
	cancelReason    string
	updatedID       int64
	updatedStatus   domain.BookingStatus
	lastFilter      domain.SalonBookingsFilter
}

func (s *stubBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if s.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return s.booking, nil
}

func (s *stubBookingRepo) GetByClientID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return s.bookings, nil
}

func (s *stubBookingRepo) GetBySalonWithFilter(_ context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	s.lastFilter = filter
	return s.bookings, nil
}

func (s *stubBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	s.updatedID = id
	s.updatedStatus = status
	return nil
}

func (s *stubBookingRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason string) error {
	s.cancelledID = id
	s.cancelledStatus = status
	s.cancelReason = reason
	return nil
}

type stubCatalogClient struct {
	salonErr error
}

func (s *stubCatalogClient) GetSalon(_ context.Context, _ int64) (*catalogservice.Salon, error) {
	if s.salonErr != nil {
		return nil, s.salonErr
	}
	return &catalogservice.Salon{ID: 1, Name: "Lotus"}, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func confirmedBooking(id, clientID int64) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		ClientID:        clientID,
		SalonID:         1,
		ServiceID:       2,
		BookingDate:     time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
		ClientName:      "Anna",
		ServiceName:     "Haircut",
	}
}

func TestGetByID(t *testing.T) {
	t.Run("returns own booking", func(t *testing.T) {
		repo := &stubBookingRepo{booking: confirmedBooking(7, 100)}
		svc := NewService(repo, &stubCatalogClient{}, noopLogger{})

		resp, err := svc.GetByID(context.Background(), 7, 100)

		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "10:30", resp.EndTime)
	})

	t.Run("denies foreign booking", func(t *testing.T) {
		repo := &stubBookingRepo{booking: confirmedBooking(7, 100)}
		svc := NewService(repo, &stubCatalogClient{}, noopLogger{})

		_, err := svc.GetByID(context.Background(), 7, 200)

		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(&stubBookingRepo{}, &stubCatalogClient{}, noopLogger{})

		_, err := svc.GetByID(context.Background(), 7, 100)

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetClientBookings(t *testing.T) {
	t.Run("returns bookings list", func(t *testing.T) {
		repo := &stubBookingRepo{bookings: []*domain.Booking{
			confirmedBooking(1, 100),
			confirmedBooking(2, 100),
		}}
		svc := NewService(repo, &stubCatalogClient{}, noopLogger{})

		resp, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{ClientID: 100})

		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
		assert.Equal(t, "10:30", resp.Bookings[0].EndTime)
	})

	t.Run("rejects unknown status filter", func(t *testing.T) {
		svc := NewService(&stubBookingRepo{}, &stubCatalogClient{}, noopLogger{})

		_, err := svc.GetClientBookings(context.Background(), &models.GetClientBookingsRequest{
			ClientID: 100,
			Status:   ptr.Ptr("frozen"),
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetSalonBookings(t *testing.T) {
	t.Run("builds domain filter", func(t *testing.T) {
		repo := &stubBookingRepo{bookings: []*domain.Booking{confirmedBooking(1, 100)}}
		svc := NewService(repo, &stubCatalogClient{}, noopLogger{})

		start := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)
		resp, err := svc.GetSalonBookings(context.Background(), &models.GetSalonBookingsRequest{
			SalonID:   1,
			StartDate: &start,
			EndDate:   &end,
			Status:    ptr.Ptr("confirmed"),
		})

		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
		assert.Equal(t, int64(1), repo.lastFilter.SalonID)
		require.NotNil(t, repo.lastFilter.Status)
		assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
	})

	t.Run("salon not found", func(t *testing.T) {
		svc := NewService(&stubBookingRepo{}, &stubCatalogClient{salonErr: catalogservice.ErrSalonNotFound}, noopLogger{})

		_, err := svc.GetSalonBookings(context.Background(), &models.GetSalonBookingsRequest{SalonID: 99})

		assert.ErrorIs(t, err, ErrSalonNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("client cancels own booking", func(t *testing.T) {
		repo := &stubBookingRepo{booking: confirmedBooking(7, 100)}
		svc := NewService(repo, &stubCatalogClient{}, noopLogger{})

		err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{
			ClientID:           100,
			CancellationReason: "changed plans",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(7), repo.cancelledID)
		assert.Equal(t, domain.StatusCancelledByClient, repo.cancelledStatus)
		assert.Equal(t, "changed plans", repo.cancelReason)
	})

	t.Run("salon cancels any booking", func(t *testing.T) {
		repo := &stubBookingRepo{booking: confirmedBooking(7, 100)}
		svc := NewService(repo, &stubCatalogClient{}, noopLogger{})

		err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{
			ClientID: 999,
			BySalon:  true,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelledBySalon, repo.cancelledStatus)
	})

	t.Run("denies foreign client", func(t *testing.T) {
		repo := &stubBookingRepo{booking: confirmedBooking(7, 100)}
		svc := NewService(repo, &stubCatalogClient{}, noopLogger{})

		err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{ClientID: 200})

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Zero(t, repo.cancelledID)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		booking := confirmedBooking(7, 100)
		booking.Status = domain.StatusCompleted
		repo := &stubBookingRepo{booking: booking}
		svc := NewService(repo, &stubCatalogClient{}, noopLogger{})

		err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{ClientID: 100})

		assert.ErrorIs(t, err, ErrCannotCancel)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("updates to completed", func(t *testing.T) {
		repo := &stubBookingRepo{booking: confirmedBooking(7, 100)}
		svc := NewService(repo, &stubCatalogClient{}, noopLogger{})

		err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{Status: "completed"})

		require.NoError(t, err)
		assert.Equal(t, int64(7), repo.updatedID)
		assert.Equal(t, domain.StatusCompleted, repo.updatedStatus)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		repo := &stubBookingRepo{booking: confirmedBooking(7, 100)}
		svc := NewService(repo, &stubCatalogClient{}, noopLogger{})

		err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{Status: "paused"})

		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Zero(t, repo.updatedID)
	})

	t.Run("booking not found", func(t *testing.T) {
		svc := NewService(&stubBookingRepo{}, &stubCatalogClient{}, noopLogger{})

		err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{Status: "completed"})

		assert.True(t, errors.Is(err, ErrBookingNotFound))
	})
}
