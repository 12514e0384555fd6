package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	appointmentsHandler "github.com/leerunique7-spec/Medsol-appointment/internal/api/handlers/appointments"
	catalogHandler "github.com/leerunique7-spec/Medsol-appointment/internal/api/handlers/catalog"
	createAppointmentHandler "github.com/leerunique7-spec/Medsol-appointment/internal/api/handlers/create_appointment"
	employeesHandler "github.com/leerunique7-spec/Medsol-appointment/internal/api/handlers/employees"
	getAvailableSlotsHandler "github.com/leerunique7-spec/Medsol-appointment/internal/api/handlers/get_available_slots"
	locationsHandler "github.com/leerunique7-spec/Medsol-appointment/internal/api/handlers/locations"
	settingsHandler "github.com/leerunique7-spec/Medsol-appointment/internal/api/handlers/settings"
	"github.com/leerunique7-spec/Medsol-appointment/internal/api/middleware"
	"github.com/leerunique7-spec/Medsol-appointment/internal/config"
	"github.com/leerunique7-spec/Medsol-appointment/internal/infra/cache"
	appointmentRepo "github.com/leerunique7-spec/Medsol-appointment/internal/infra/storage/appointment"
	catalogRepo "github.com/leerunique7-spec/Medsol-appointment/internal/infra/storage/catalog"
	employeeRepo "github.com/leerunique7-spec/Medsol-appointment/internal/infra/storage/employee"
	locationRepo "github.com/leerunique7-spec/Medsol-appointment/internal/infra/storage/location"
	settingsRepo "github.com/leerunique7-spec/Medsol-appointment/internal/infra/storage/settings"
	appointmentsService "github.com/leerunique7-spec/Medsol-appointment/internal/service/appointments"
	catalogService "github.com/leerunique7-spec/Medsol-appointment/internal/service/catalog"
	employeesService "github.com/leerunique7-spec/Medsol-appointment/internal/service/employees"
	locationsService "github.com/leerunique7-spec/Medsol-appointment/internal/service/locations"
	settingsService "github.com/leerunique7-spec/Medsol-appointment/internal/service/settings"
	createAppointmentUC "github.com/leerunique7-spec/Medsol-appointment/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/leerunique7-spec/Medsol-appointment/internal/usecase/get_available_slots"
	"github.com/leerunique7-spec/Medsol-appointment/pkg/dbmetrics"
	"github.com/leerunique7-spec/Medsol-appointment/pkg/logger"
	"github.com/leerunique7-spec/Medsol-appointment/pkg/metrics"
	"github.com/leerunique7-spec/Medsol-appointment/pkg/simpletxmanager"
	"github.com/leerunique7-spec/Medsol-appointment/pkg/txmanager"
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

	log.Info("Starting Medsol-appointment...")
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

	// Прогоняем миграции (если включены)
	if cfg.Database.Migrate {
		if err := runMigrations(cfg); err != nil {
			log.Fatal("Failed to run migrations: %v", err)
		}
		log.Info("Migrations applied from %s", cfg.Database.MigrationsPath)
	}

	// Инициализируем кэш списков
	var listCache cache.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancelPing()
			log.Fatal("Failed to ping redis: %v", err)
		}
		cancelPing()

		listCache = cache.NewRedisCache(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		log.Info("Redis list cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	} else {
		listCache = cache.NewNoop()
		log.Info("Redis disabled, list cache is a no-op")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		employeeRepository    *employeeRepo.Repository
		locationRepository    *locationRepo.Repository
		serviceRepository     *catalogRepo.Repository
		settingsRepository    *settingsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		employeeRepository = employeeRepo.NewRepository(wrappedDB)
		locationRepository = locationRepo.NewRepository(wrappedDB)
		serviceRepository = catalogRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		employeeRepository = employeeRepo.NewRepository(db)
		locationRepository = locationRepo.NewRepository(db)
		serviceRepository = catalogRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	employeesSvc := employeesService.NewService(employeeRepository, listCache, txMgr, log)
	locationsSvc := locationsService.NewService(locationRepository, listCache, txMgr, log)
	catalogSvc := catalogService.NewService(serviceRepository, listCache, log)
	settingsSvc := settingsService.NewService(settingsRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		employeeRepository,
		locationRepository,
		serviceRepository,
		settingsSvc,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		employeeRepository,
		locationRepository,
		serviceRepository,
		settingsSvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	appointments := appointmentsHandler.NewHandler(appointmentsSvc, log)
	employees := employeesHandler.NewHandler(employeesSvc, log)
	locations := locationsHandler.NewHandler(locationsSvc, log)
	catalog := catalogHandler.NewHandler(catalogSvc, log)
	settings := settingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// Получение доступных слотов для записи
	api.HandleFunc("/employees/{employeeId}/locations/{locationId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание записи клиентом
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Публичные справочники
	api.HandleFunc("/employees", employees.List).Methods(http.MethodGet)
	api.HandleFunc("/employees/{employeeId}", employees.Get).Methods(http.MethodGet)
	api.HandleFunc("/locations", locations.List).Methods(http.MethodGet)
	api.HandleFunc("/locations/{locationId}", locations.Get).Methods(http.MethodGet)
	api.HandleFunc("/services", catalog.List).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", catalog.Get).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", appointments.List).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", appointments.Get).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", appointments.Update).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{appointmentId}/status", appointments.UpdateStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}", appointments.Delete).Methods(http.MethodDelete)

	// --- Сотрудники ---
	protected.HandleFunc("/employees", employees.Create).Methods(http.MethodPost)
	protected.HandleFunc("/employees/{employeeId}", employees.Update).Methods(http.MethodPut)
	protected.HandleFunc("/employees/{employeeId}", employees.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/employees/{employeeId}/days-off", employees.AddDayOff).Methods(http.MethodPost)
	protected.HandleFunc("/employees/{employeeId}/days-off", employees.ListDaysOff).Methods(http.MethodGet)
	protected.HandleFunc("/employees/{employeeId}/days-off/{dayOffId}", employees.DeleteDayOff).Methods(http.MethodDelete)

	// --- Локации ---
	protected.HandleFunc("/locations", locations.Create).Methods(http.MethodPost)
	protected.HandleFunc("/locations/{locationId}", locations.Update).Methods(http.MethodPut)
	protected.HandleFunc("/locations/{locationId}", locations.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/locations/{locationId}/days-off", locations.AddDayOff).Methods(http.MethodPost)
	protected.HandleFunc("/locations/{locationId}/days-off", locations.ListDaysOff).Methods(http.MethodGet)
	protected.HandleFunc("/locations/{locationId}/days-off/{dayOffId}", locations.DeleteDayOff).Methods(http.MethodDelete)

	// --- Услуги ---
	protected.HandleFunc("/services", catalog.Create).Methods(http.MethodPost)
	protected.HandleFunc("/services/{serviceId}", catalog.Update).Methods(http.MethodPut)
	protected.HandleFunc("/services/{serviceId}", catalog.Delete).Methods(http.MethodDelete)

	// --- Настройки ---
	protected.HandleFunc("/settings", settings.GetSettings).Methods(http.MethodGet)
	protected.HandleFunc("/settings", settings.UpdateSettings).Methods(http.MethodPut)
	protected.HandleFunc("/settings/notifications", settings.GetNotifications).Methods(http.MethodGet)
	protected.HandleFunc("/settings/notifications", settings.UpdateNotifications).Methods(http.MethodPut)

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

// runMigrations применяет миграции из каталога migrations к базе данных
func runMigrations(cfg *config.Config) error {
	m, err := migrate.New("file://"+cfg.Database.MigrationsPath, cfg.Database.MigrateURL())
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
