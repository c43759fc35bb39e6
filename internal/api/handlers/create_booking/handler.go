package create_booking

import (
	"errors"
	"net/http"

	"github.com/d4shko/salon-booking-service/internal/api/handlers"
	"github.com/d4shko/salon-booking-service/internal/api/middleware"
	createBooking "github.com/d4shko/salon-booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidBody     = "некорректное тело запроса"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUnauthorized    = "клиент не авторизован"
	msgSalonNotFound   = "салон не найден"
	msgServiceNotFound = "услуга не найдена"
	msgServiceInactive = "услуга недоступна для записи"
	msgDateInPast      = "нельзя забронировать дату в прошлом"
	msgDateTooFar      = "дата слишком далеко в будущем"
	msgSalonClosed     = "салон не работает в этот день"
	msgInvalidTimeSlot = "недопустимое время начала слота"
	msgTooLateToBook   = "слишком поздно для бронирования на это время"
	msgSlotOccupied    = "слот уже занят"
	msgBookingLimit    = "превышен лимит активных бронирований"
	msgInvalidInput    = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetClientID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing client ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSalonNotFound):
			h.logger.Warn("POST /bookings - Salon not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: salon_id=%d, service_id=%d",
				req.SalonID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceInactive):
			h.logger.Warn("POST /bookings - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondError(w, http.StatusConflict, msgServiceInactive)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date in past: client_id=%d, date=%s", clientID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: client_id=%d, date=%s", clientID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrSalonClosed):
			h.logger.Warn("POST /bookings - Salon closed: salon_id=%d, date=%s", req.SalonID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgSalonClosed)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: salon_id=%d, time=%s", req.SalonID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: client_id=%d, time=%s", clientID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: salon_id=%d, date=%s, time=%s",
				req.SalonID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotOccupied)

		case errors.Is(err, createBooking.ErrBookingLimitReached):
			h.logger.Warn("POST /bookings - Booking limit reached: client_id=%d", clientID)
			handlers.RespondError(w, http.StatusConflict, msgBookingLimit)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client_id=%d, salon_id=%d, error=%v",
				clientID, req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, client_id=%d, salon_id=%d, date=%s, time=%s",
		result.ID, clientID, req.SalonID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
