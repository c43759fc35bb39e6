package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d4shko/salon-booking-service/internal/domain"
	scheduleRepo "github.com/d4shko/salon-booking-service/internal/infra/storage/schedule"
	"github.com/d4shko/salon-booking-service/internal/integrations/catalogservice"
	"github.com/d4shko/salon-booking-service/internal/service/schedule/models"
	"github.com/d4shko/salon-booking-service/pkg/ptr"
	"github.com/d4shko/salon-booking-service/pkg/types"
)

type stubScheduleRepo struct {
	existing *domain.ScheduleConfig
	created  *domain.ScheduleConfig
	updated  *domain.ScheduleConfig
	deleted  int64
}

func (s *stubScheduleRepo) Create(_ context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	created := *config
	created.ID = 10
	s.created = &created
	return &created, nil
}

func (s *stubScheduleRepo) GetBySalonAndService(_ context.Context, _ int64, _ *int64) (*domain.ScheduleConfig, error) {
	if s.existing == nil {
		return nil, scheduleRepo.ErrConfigNotFound
	}
	return s.existing, nil
}

func (s *stubScheduleRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.ScheduleConfig, error) {
	if s.existing == nil {
		return nil, scheduleRepo.ErrConfigNotFound
	}
	return s.existing, nil
}

func (s *stubScheduleRepo) Update(_ context.Context, config *domain.ScheduleConfig) error {
	s.updated = config
	return nil
}

func (s *stubScheduleRepo) Delete(_ context.Context, id int64) error {
	s.deleted = id
	return nil
}

type stubCatalogClient struct{}

func (stubCatalogClient) GetSalon(_ context.Context, _ int64) (*catalogservice.Salon, error) {
	return &catalogservice.Salon{ID: 1, Name: "Lotus"}, nil
}

func (stubCatalogClient) GetService(_ context.Context, _, _ int64) (*catalogservice.Service, error) {
	return &catalogservice.Service{ID: 1, SalonID: 1, Name: "Haircut", DurationMinutes: 30, IsActive: true}, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func createRequest() *models.CreateScheduleRequest {
	return &models.CreateScheduleRequest{
		SalonID:                1,
		OpenTime:               "09:00",
		CloseTime:              "18:00",
		LunchStart:             ptr.Ptr("13:00"),
		LunchEnd:               ptr.Ptr("14:00"),
		WorkingDays:            []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"},
		SlotGranularityMinutes: 30,
		AdvanceBookingDays:     30,
		MaxBookingsPerClient:   3,
	}
}

func existingConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		ID:      5,
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
		AdvanceBookingDays:     30,
		MaxBookingsPerClient:   3,
	}
}

func TestCreateScheduleConfig(t *testing.T) {
	repo := &stubScheduleRepo{}
	svc := NewService(repo, stubCatalogClient{}, noopLogger{})

	resp, err := svc.Create(context.Background(), createRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "09:00", resp.OpenTime)
	assert.Equal(t, []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}, resp.WorkingDays)
	require.NotNil(t, resp.LunchStart)
	assert.Equal(t, "13:00", *resp.LunchStart)
}

func TestCreateRejectsDuplicate(t *testing.T) {
	repo := &stubScheduleRepo{existing: existingConfig()}
	svc := NewService(repo, stubCatalogClient{}, noopLogger{})

	_, err := svc.Create(context.Background(), createRequest())

	assert.ErrorIs(t, err, ErrConfigAlreadyExists)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CreateScheduleRequest)
	}{
		{"inverted hours", func(r *models.CreateScheduleRequest) { r.OpenTime, r.CloseTime = "18:00", "09:00" }},
		{"lunch outside hours", func(r *models.CreateScheduleRequest) { r.LunchStart = ptr.Ptr("08:00") }},
		{"inverted lunch", func(r *models.CreateScheduleRequest) { r.LunchStart, r.LunchEnd = ptr.Ptr("14:00"), ptr.Ptr("13:00") }},
		{"no working days", func(r *models.CreateScheduleRequest) { r.WorkingDays = nil }},
		{"unknown weekday", func(r *models.CreateScheduleRequest) { r.WorkingDays = []string{"someday"} }},
		{"zero granularity", func(r *models.CreateScheduleRequest) { r.SlotGranularityMinutes = 0 }},
		{"granularity too large", func(r *models.CreateScheduleRequest) { r.SlotGranularityMinutes = 600 }},
		{"negative advance days", func(r *models.CreateScheduleRequest) { r.AdvanceBookingDays = -1 }},
		{"notice too long", func(r *models.CreateScheduleRequest) { r.MinBookingNoticeMinutes = 20000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createRequest()
			tt.mutate(req)
			svc := NewService(&stubScheduleRepo{}, stubCatalogClient{}, noopLogger{})

			_, err := svc.Create(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetNotFound(t *testing.T) {
	svc := NewService(&stubScheduleRepo{}, stubCatalogClient{}, noopLogger{})

	_, err := svc.Get(context.Background(), 1, nil)

	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestUpdatePartial(t *testing.T) {
	repo := &stubScheduleRepo{existing: existingConfig()}
	svc := NewService(repo, stubCatalogClient{}, noopLogger{})

	resp, err := svc.Update(context.Background(), 1, nil, &models.UpdateScheduleRequest{
		CloseTime:          ptr.Ptr("20:00"),
		RemoveLunch:        true,
		AdvanceBookingDays: ptr.Ptr(60),
	})

	require.NoError(t, err)
	assert.Equal(t, "20:00", resp.CloseTime)
	assert.Equal(t, "09:00", resp.OpenTime) // не менялось
	assert.Nil(t, resp.LunchStart)
	assert.Equal(t, 60, resp.AdvanceBookingDays)

	require.NotNil(t, repo.updated)
	assert.Equal(t, int64(5), repo.updated.ID)
}

func TestUpdateRejectsInvalidResult(t *testing.T) {
	repo := &stubScheduleRepo{existing: existingConfig()}
	svc := NewService(repo, stubCatalogClient{}, noopLogger{})

	// Сдвиг закрытия до 12:00 оставил бы обед за пределами рабочих часов
	_, err := svc.Update(context.Background(), 1, nil, &models.UpdateScheduleRequest{
		CloseTime: ptr.Ptr("12:00"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, repo.updated)
}

func TestDelete(t *testing.T) {
	repo := &stubScheduleRepo{existing: existingConfig()}
	svc := NewService(repo, stubCatalogClient{}, noopLogger{})

	err := svc.Delete(context.Background(), 1, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(5), repo.deleted)
}
