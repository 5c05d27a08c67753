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

	cancelBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_booking"
	createBreakHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_break"
	deleteBreakHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/delete_break"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getAvailableStaffHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_staff"
	getBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking"
	getBookingStatsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking_stats"
	getStaffScheduleHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_staff_schedule"
	listBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_bookings"
	updateBookingStatusHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_booking_status"
	updateStaffScheduleHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_staff_schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	scheduleService "github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	getAvailableStaffUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_staff"
	"github.com/m04kA/SMC-SalonBooking/pkg/bookingref"
	"github.com/m04kA/SMC-SalonBooking/pkg/clock"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
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

	log.Info("Starting SMC-SalonBooking...")

	// Часовой пояс салона: "сегодня" и окно уведомления считаются в нём
	loc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}
	businessClock := clock.NewBusiness(loc)
	policy := cfg.Booking.Policy()
	log.Info("Booking policy: step=%dm, notice=%dm, advance=%dd, timezone=%s",
		policy.SlotStepMinutes, policy.MinNoticeMinutes, policy.MaxAdvanceDays, loc)

	// Инициализируем метрики (если включены). nil коллектор молча пропускает запись.
	var metricsCollector *metrics.Metrics
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
	txManager := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)

	refGenerator := bookingref.NewGenerator(bookingref.WithClock(businessClock.Now))

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, txManager, businessClock, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, catalogRepository, txManager, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogRepository,
		txManager,
		refGenerator,
		businessClock,
		policy,
		metricsCollector,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogRepository,
		scheduleRepository,
		bookingRepository,
		businessClock,
		policy,
		metricsCollector,
		log,
	)

	getAvailableStaffUseCase := getAvailableStaffUC.NewUseCase(
		catalogRepository,
		scheduleRepository,
		businessClock,
		policy,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableStaff := getAvailableStaffHandler.NewHandler(getAvailableStaffUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBookingStats := getBookingStatsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getStaffSchedule := getStaffScheduleHandler.NewHandler(scheduleSvc, log)
	updateStaffSchedule := updateStaffScheduleHandler.NewHandler(scheduleSvc, log)
	createBreak := createBreakHandler.NewHandler(scheduleSvc, log)
	deleteBreak := deleteBreakHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации, с ограничением частоты)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerSecond,
			cfg.RateLimit.Burst,
			time.Duration(cfg.RateLimit.ClientTTL)*time.Second,
		)
		limiter, err = limiter.WithTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Failed to configure rate limiter: %v", err)
		}
		public.Use(limiter.Middleware)
		log.Info("Rate limit enabled: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// Свободные слоты мастера на дату
	public.HandleFunc("/staff/{staffId}/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Мастера, которые оказывают услугу и работают в эту дату
	public.HandleFunc("/services/{serviceId}/staff", getAvailableStaff.Handle).Methods(http.MethodGet)

	// Создание бронирования
	public.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Поиск и отмена по номеру бронирования
	public.HandleFunc("/bookings/ref/{reference}", getBooking.Handle).Methods(http.MethodGet)
	public.HandleFunc("/bookings/ref/{reference}/cancel", cancelBooking.Handle).Methods(http.MethodPut)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-ID header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/stats", getBookingStats.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPut)

	// --- Расписание мастеров ---
	admin.HandleFunc("/staff/{staffId}/schedule", getStaffSchedule.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/staff/{staffId}/schedule", updateStaffSchedule.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/staff/{staffId}/breaks", createBreak.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/staff/{staffId}/breaks/{breakId}", deleteBreak.Handle).Methods(http.MethodDelete)

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
	close(stopMetricsCh)

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
