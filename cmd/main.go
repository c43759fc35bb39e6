package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/d4shko/salon-booking-service/internal/api/handlers/cancel_booking"
	checkSlotHandler "github.com/d4shko/salon-booking-service/internal/api/handlers/check_slot"
	createBookingHandler "github.com/d4shko/salon-booking-service/internal/api/handlers/create_booking"
	createScheduleHandler "github.com/d4shko/salon-booking-service/internal/api/handlers/create_schedule"
	deleteScheduleHandler "github.com/d4shko/salon-booking-service/internal/api/handlers/delete_schedule"
	getBookingHandler "github.com/d4shko/salon-booking-service/internal/api/handlers/get_booking"
	getCalendarDaysHandler "github.com/d4shko/salon-booking-service/internal/api/handlers/get_calendar_days"
	getClientBookingsHandler "github.com/d4shko/salon-booking-service/internal/api/handlers/get_client_bookings"
	getDaySlotsHandler "github.com/d4shko/salon-booking-service/internal/api/handlers/get_day_slots"
	getSalonBookingsHandler "github.com/d4shko/salon-booking-service/internal/api/handlers/get_salon_bookings"
	getScheduleHandler "github.com/d4shko/salon-booking-service/internal/api/handlers/get_schedule"
	updateBookingStatusHandler "github.com/d4shko/salon-booking-service/internal/api/handlers/update_booking_status"
	updateScheduleHandler "github.com/d4shko/salon-booking-service/internal/api/handlers/update_schedule"
	"github.com/d4shko/salon-booking-service/internal/api/middleware"
	"github.com/d4shko/salon-booking-service/internal/config"
	bookingRepo "github.com/d4shko/salon-booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/d4shko/salon-booking-service/internal/infra/storage/schedule"
	catalogServiceClient "github.com/d4shko/salon-booking-service/internal/integrations/catalogservice"
	bookingsService "github.com/d4shko/salon-booking-service/internal/service/bookings"
	scheduleService "github.com/d4shko/salon-booking-service/internal/service/schedule"
	checkSlotUC "github.com/d4shko/salon-booking-service/internal/usecase/check_slot"
	createBookingUC "github.com/d4shko/salon-booking-service/internal/usecase/create_booking"
	getCalendarDaysUC "github.com/d4shko/salon-booking-service/internal/usecase/get_calendar_days"
	getDaySlotsUC "github.com/d4shko/salon-booking-service/internal/usecase/get_day_slots"
	"github.com/d4shko/salon-booking-service/pkg/dbmetrics"
	"github.com/d4shko/salon-booking-service/pkg/logger"
	"github.com/d4shko/salon-booking-service/pkg/metrics"
	"github.com/d4shko/salon-booking-service/pkg/simpletxmanager"
	"github.com/d4shko/salon-booking-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting salon-booking-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент CatalogService
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		catalogClient,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		catalogClient,
		log,
	)

	// Инициализируем use cases
	getDaySlotsUseCase := getDaySlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogClient,
		log,
	)
	getCalendarDaysUseCase := getCalendarDaysUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogClient,
		log,
	)
	checkSlotUseCase := checkSlotUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogClient,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getDaySlots := getDaySlotsHandler.NewHandler(getDaySlotsUseCase, log)
	getCalendarDays := getCalendarDaysHandler.NewHandler(getCalendarDaysUseCase, log)
	checkSlot := checkSlotHandler.NewHandler(checkSlotUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getSalonBookings := getSalonBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	createSchedule := createScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	deleteSchedule := deleteScheduleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты салона на день
	api.HandleFunc("/salons/{salonId}/day-slots", getDaySlots.Handle).Methods(http.MethodGet)

	// Календарная сетка месяца с доступностью по дням
	api.HandleFunc("/salons/{salonId}/calendar", getCalendarDays.Handle).Methods(http.MethodGet)

	// Конфигурация расписания салона
	api.HandleFunc("/salons/{salonId}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Client-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Проверка доступности конкретного слота
	protected.HandleFunc("/salons/{salonId}/check-slot", checkSlot.Handle).Methods(http.MethodGet)

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// --- Управление салоном (административные эндпоинты) ---
	// Список бронирований салона
	protected.HandleFunc("/salons/{salonId}/bookings", getSalonBookings.Handle).Methods(http.MethodGet)

	// Обновление статуса бронирования (completed, no_show, cancelled_by_salon)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Управление конфигурацией расписания
	protected.HandleFunc("/salons/{salonId}/schedule", createSchedule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId}/schedule", updateSchedule.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/salons/{salonId}/schedule", deleteSchedule.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
