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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	commitBookingHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/commit_booking"
	createDayHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/create_day"
	findSlotHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/find_slot"
	getDaySlotsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_day_slots"
	getUserBookingsHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/get_user_bookings"
	listDaysHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/list_days"
	listProceduresHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/list_procedures"
	updateDayHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/update_day"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/catalog"
	"github.com/m04kA/SMC-SalonBookingService/internal/config"
	dayRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/day"
	userServiceClient "github.com/m04kA/SMC-SalonBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-SalonBookingService/internal/schedule"
	bookingsService "github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	daysService "github.com/m04kA/SMC-SalonBookingService/internal/service/days"
	proceduresService "github.com/m04kA/SMC-SalonBookingService/internal/service/procedures"
	commitBookingUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/commit_booking"
	findSlotUC "github.com/m04kA/SMC-SalonBookingService/internal/usecase/find_slot"
	"github.com/m04kA/SMC-SalonBookingService/pkg/daylock"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/metrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/txmanager"
)

// dayRepository хранилище дней, общее для usecases и сервиса
type dayRepository interface {
	findSlotUC.DayRepository
	commitBookingUC.DayRepository
	daysService.DayRepository
	bookingsService.SlotRepository
}

// txManager менеджер транзакций для обоих usecases
type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-SalonBookingService...")
	log.Info("Configuration loaded from %s (storage=%s)", configPath, cfg.Storage.Mode)

	// Метрики собираются всегда; наружу отдаются только при metrics.enabled
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		metricsCollector = metrics.NewWithRegisterer(cfg.Metrics.ServiceName, prometheus.NewRegistry())
	}
	stopMetricsCh := make(chan struct{})

	// Каталог процедур
	procedureCatalog := catalog.Default()
	if cfg.Catalog.File != "" {
		procedureCatalog, err = catalog.LoadFile(cfg.Catalog.File)
		if err != nil {
			log.Fatal("Failed to load procedure catalog: %v", err)
		}
		log.Info("Procedure catalog loaded from %s", cfg.Catalog.File)
	}

	// Хранилище и транзакции
	var (
		days  dayRepository
		txMgr txManager
	)

	switch cfg.Storage.Mode {
	case config.StorageMemory:
		days = dayRepo.NewMemoryRepository()
		txMgr = txmanager.NewNoopManager()
		log.Warn("In-memory storage is used: data is lost on restart")

	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(config.Seconds(cfg.Database.ConnMaxLifetime))

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		days = dayRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	}

	// Блокировки дней: redis для нескольких инстансов, иначе в памяти процесса
	var locker daylock.Locker = daylock.NewLocalLocker()
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		locker = daylock.NewRedisLocker(redisClient, daylock.WithTTL(config.Seconds(cfg.Redis.LockTTL)))
		log.Info("Redis day locks enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.LockTTL)
	}

	// Клиент UserService
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		config.Seconds(cfg.UserService.Timeout),
		config.Seconds(cfg.UserService.CacheTTL),
		log,
	)
	log.Info("UserService client initialized (url=%s, timeout=%ds, cache_ttl=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.UserService.CacheTTL)

	// Сервисы
	workStart, workEnd := cfg.WorkHours()
	daySvc := daysService.NewService(days, userClient, daysService.WorkingHours{Start: workStart, End: workEnd}, log)
	procedureSvc := proceduresService.NewService(procedureCatalog)
	bookingSvc := bookingsService.NewService(days, userClient, log)

	// Use cases
	policy := schedule.Policy{SkipOwnTransit: cfg.Booking.SkipOwnTransit}
	findSlotUseCase := findSlotUC.NewUseCase(days, procedureCatalog, userClient, txMgr, locker, metricsCollector, policy, log)
	commitBookingUseCase := commitBookingUC.NewUseCase(days, procedureCatalog, userClient, txMgr, locker, metricsCollector, policy, log)

	// Handlers
	listProcedures := listProceduresHandler.NewHandler(procedureSvc, log)
	listDays := listDaysHandler.NewHandler(daySvc, log)
	findSlot := findSlotHandler.NewHandler(findSlotUseCase, log)
	commitBooking := commitBookingHandler.NewHandler(commitBookingUseCase, log)
	createDay := createDayHandler.NewHandler(daySvc, log)
	updateDay := updateDayHandler.NewHandler(daySvc, log)
	getDaySlots := getDaySlotsHandler.NewHandler(daySvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.MetricsMiddleware(metricsCollector))

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, config.Seconds(cfg.RateLimit.IdleTTL))
		api.Use(limiter.Middleware)
		log.Info("Rate limit enabled (rps=%.2f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/procedures", listProcedures.Handle).Methods(http.MethodGet)
	api.HandleFunc("/days", listDays.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Запись клиента ---
	protected.HandleFunc("/days/{date}/fit", findSlot.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/days/{date}/confirm", findSlot.HandleConfirm).Methods(http.MethodPost)
	protected.HandleFunc("/days/{date}/bookings", commitBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление днями (для администраторов) ---
	protected.HandleFunc("/days", createDay.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/days/{date}", updateDay.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/days/{date}/slots", getDaySlots.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  config.Seconds(cfg.Server.ReadTimeout),
		WriteTimeout: config.Seconds(cfg.Server.WriteTimeout),
		IdleTimeout:  config.Seconds(cfg.Server.IdleTimeout),
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Seconds(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
