package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	createAppointmentHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/create_appointment"
	createBlockHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/create_block"
	deleteBlockHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/delete_block"
	getAppointmentHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/get_available_slots"
	getSettingsHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/get_settings"
	getWorkingHoursHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/get_working_hours"
	listAppointmentsHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/list_appointments"
	listBlocksHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/list_blocks"
	listServicesHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/list_services"
	listStaffHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/list_staff"
	replaceWorkingHoursHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/replace_working_hours"
	updateAppointmentHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/update_appointment"
	updateSettingsHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/update_settings"
	"github.com/m04kA/salon-booking-service/internal/api/middleware"
	"github.com/m04kA/salon-booking-service/internal/config"
	appointmentRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/appointment"
	blockRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/block"
	catalogRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/client"
	settingsRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/settings"
	staffRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/staff"
	workingHoursRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/workinghours"
	"github.com/m04kA/salon-booking-service/internal/integrations/events"
	appointmentsService "github.com/m04kA/salon-booking-service/internal/service/appointments"
	blocksService "github.com/m04kA/salon-booking-service/internal/service/blocks"
	catalogService "github.com/m04kA/salon-booking-service/internal/service/catalog"
	"github.com/m04kA/salon-booking-service/internal/service/scheduling"
	settingsService "github.com/m04kA/salon-booking-service/internal/service/settings"
	staffService "github.com/m04kA/salon-booking-service/internal/service/staff"
	createAppointmentUC "github.com/m04kA/salon-booking-service/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/salon-booking-service/internal/usecase/get_available_slots"
	"github.com/m04kA/salon-booking-service/pkg/dbmetrics"
	"github.com/m04kA/salon-booking-service/pkg/logger"
	"github.com/m04kA/salon-booking-service/pkg/metrics"
	"github.com/m04kA/salon-booking-service/pkg/tracing"
	"github.com/m04kA/salon-booking-service/pkg/txmanager"
)

// publisher издатель событий записей
type publisher interface {
	Publish(ctx context.Context, event events.AppointmentEvent) error
	Close() error
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(*configPath)
		},
	}
}

func runServer(configPath string) error {
	cfg, log, err := loadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return err
	}
	defer log.Close()

	if err := cfg.RequireServeSecrets(); err != nil {
		log.Error("Refusing to start: %v", err)
		return err
	}

	log.Info("Starting salon-booking-service...")

	ctx := context.Background()

	// Трейсинг (no-op, если выключен)
	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Metrics.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Error("Failed to setup tracing: %v", err)
		return err
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := openDB(ctx, cfg.Database, log)
	if err != nil {
		log.Error("%v", err)
		return err
	}
	defer db.Close()

	// С выключенными метриками обёртка только проксирует вызовы
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	staffRepository := staffRepo.NewRepository(wrappedDB)
	workingHoursRepository := workingHoursRepo.NewRepository(wrappedDB)
	blockRepository := blockRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)

	// Издатель событий
	var eventPublisher publisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		eventPublisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		log.Info("Kafka publisher enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer func() {
		if err := eventPublisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	// Инициализируем сервисы
	resolver := scheduling.NewResolver(catalogRepository, settingsRepository, staffRepository, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	settingsSvc := settingsService.NewService(settingsRepository, txMgr, log)
	staffSvc := staffService.NewService(staffRepository, workingHoursRepository, txMgr, log)
	blocksSvc := blocksService.NewService(blockRepository, staffRepository, log)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		blockRepository,
		txMgr,
		eventPublisher,
		metricsCollector,
		nil,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		resolver,
		workingHoursRepository,
		appointmentRepository,
		blockRepository,
		metricsCollector,
		nil,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		resolver,
		appointmentRepository,
		blockRepository,
		workingHoursRepository,
		clientRepository,
		txMgr,
		eventPublisher,
		metricsCollector,
		nil,
		nil,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentsSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	listStaff := listStaffHandler.NewHandler(staffSvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(staffSvc, log)
	replaceWorkingHours := replaceWorkingHoursHandler.NewHandler(staffSvc, log)
	listBlocks := listBlocksHandler.NewHandler(blocksSvc, log)
	createBlock := createBlockHandler.NewHandler(blocksSvc, log)
	deleteBlock := deleteBlockHandler.NewHandler(blocksSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	public := r.PathPrefix("/api/public").Subrouter()

	// Каталог услуг
	public.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Свободные слоты на дату
	public.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Статус записи для клиента
	public.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)

	// Создание записи (с ограничением частоты)
	var createHandler http.Handler = http.HandlerFunc(createAppointment.Handle)
	if cfg.RateLimit.Enabled {
		limiter, closeLimiter, err := newLimiter(ctx, cfg, stopCh, log)
		if err != nil {
			log.Error("Failed to init rate limiter: %v", err)
			return err
		}
		defer closeLimiter()

		clients, err := middleware.NewClientResolver(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Error("Failed to parse rate_limit.trusted_proxies: %v", err)
			return err
		}
		createHandler = middleware.RateLimit(limiter, clients, log)(createHandler)
	}
	public.Handle("/appointments", createHandler).Methods(http.MethodPost)

	// ============================================================
	// CRM ROUTES (JWT с ролью администратора)
	// ============================================================

	crm := r.PathPrefix("/api/crm").Subrouter()
	crm.Use(middleware.AdminAuth(cfg.Auth.JWTSecret, cfg.Auth.AdminRole, log))

	// --- Записи ---
	crm.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	crm.HandleFunc("/appointments/{id}", updateAppointment.Handle).Methods(http.MethodPatch)

	// --- Настройки расписания ---
	crm.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	crm.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPatch)

	// --- Мастера и график ---
	crm.HandleFunc("/staff", listStaff.Handle).Methods(http.MethodGet)
	crm.HandleFunc("/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)
	crm.HandleFunc("/working-hours", replaceWorkingHours.Handle).Methods(http.MethodPut)

	// --- Блокировки ---
	crm.HandleFunc("/blocks", listBlocks.Handle).Methods(http.MethodGet)
	crm.HandleFunc("/blocks", createBlock.Handle).Methods(http.MethodPost)
	crm.HandleFunc("/blocks/{id}", deleteBlock.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, "salon-booking-service"),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Server failed to start: %v", err)
		close(stopCh)
		return err
	}

	log.Info("Shutting down server...")

	// Останавливаем фоновые горутины (статистика пула, очистка лимитера)
	close(stopCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// newLimiter создает лимитер для создания записей: в памяти процесса или общий в Redis
func newLimiter(ctx context.Context, cfg *config.Config, stopCh <-chan struct{}, log *logger.Logger) (middleware.Limiter, func(), error) {
	switch cfg.RateLimit.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		log.Info("Redis rate limiter enabled (addr=%s, limit=%d/min)", cfg.Redis.Addr, cfg.RateLimit.RequestsPerMinute)
		limiter := middleware.NewRedisLimiter(rdb, cfg.RateLimit.RequestsPerMinute, time.Minute, "salon:rl:appointments")
		return limiter, func() { _ = rdb.Close() }, nil

	default:
		log.Info("In-memory rate limiter enabled (limit=%d/min, burst=%d)",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		return middleware.NewMemoryLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, stopCh), func() {}, nil
	}
}
