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

	checkInHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/check_in"
	checkOutHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/check_out"
	createSlotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_slots"
	getBillingSummaryHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_billing_summary"
	getDashboardHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_dashboard"
	getPricingConfigHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_pricing_config"
	listSlotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_slots"
	runOverstayCheckHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/run_overstay_check"
	setSlotMaintenanceHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/set_slot_maintenance"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/infra/cache"
	pricingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/pricing"
	sessionRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/session"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
	billingService "github.com/m04kA/SMC-ParkingService/internal/service/billing"
	dashboardService "github.com/m04kA/SMC-ParkingService/internal/service/dashboard"
	slotsService "github.com/m04kA/SMC-ParkingService/internal/service/slots"
	tariffsService "github.com/m04kA/SMC-ParkingService/internal/service/tariffs"
	checkInUC "github.com/m04kA/SMC-ParkingService/internal/usecase/check_in"
	checkOutUC "github.com/m04kA/SMC-ParkingService/internal/usecase/check_out"
	sweepOverstaysUC "github.com/m04kA/SMC-ParkingService/internal/usecase/sweep_overstays"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
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

	log.Info("Starting SMC-ParkingService...")
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

	// Подключаемся к redis (опционально, деградируем без кеша)
	var dashboardCache dashboardService.Cache
	if cfg.Cache.Enabled {
		cacheClient, err := cache.New(cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
		if err != nil {
			log.Warn("Redis unavailable, dashboard cache disabled: %v", err)
		} else {
			defer cacheClient.Close()
			dashboardCache = cacheClient
			log.Info("Dashboard cache enabled (redis=%s, ttl=%ds)", cfg.Cache.Addr, cfg.Cache.TTLSeconds)
		}
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		vehicleRepository *vehicleRepo.Repository
		slotRepository    *slotRepo.Repository
		sessionRepository *sessionRepo.Repository
		pricingRepository *pricingRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		vehicleRepository = vehicleRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		pricingRepository = pricingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		vehicleRepository = vehicleRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		sessionRepository = sessionRepo.NewRepository(db)
		pricingRepository = pricingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Параметры overstay-проверки
	thresholdHours := cfg.Overstay.ThresholdHours
	if thresholdHours <= 0 {
		thresholdHours = 6
	}
	sweepInterval := time.Duration(cfg.Overstay.SweepIntervalMinutes) * time.Minute
	if sweepInterval <= 0 {
		sweepInterval = 3 * time.Minute
	}

	// Инициализируем сервисы
	slotsSvc := slotsService.NewService(slotRepository, txMgr, log)
	dashboardSvc := dashboardService.NewService(
		slotRepository,
		sessionRepository,
		dashboardCache,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		log,
	)
	billingSvc := billingService.NewService(sessionRepository, log)
	tariffsSvc := tariffsService.NewService(pricingRepository, log)

	// Инициализируем use cases
	checkInUseCase := checkInUC.NewUseCase(
		vehicleRepository,
		slotRepository,
		sessionRepository,
		txMgr,
		log,
	)
	checkOutUseCase := checkOutUC.NewUseCase(
		vehicleRepository,
		slotRepository,
		sessionRepository,
		txMgr,
		log,
	)
	sweepOverstaysUseCase := sweepOverstaysUC.NewUseCase(
		sessionRepository,
		txMgr,
		thresholdHours,
		log,
	)

	// Инициализируем handlers
	checkIn := checkInHandler.NewHandler(checkInUseCase, log)
	checkOut := checkOutHandler.NewHandler(checkOutUseCase, log)
	getDashboard := getDashboardHandler.NewHandler(dashboardSvc, log)
	runOverstayCheck := runOverstayCheckHandler.NewHandler(sweepOverstaysUseCase, log)
	createSlots := createSlotsHandler.NewHandler(slotsSvc, log)
	listSlots := listSlotsHandler.NewHandler(slotsSvc, log)
	setSlotMaintenance := setSlotMaintenanceHandler.NewHandler(slotsSvc, log)
	getBillingSummary := getBillingSummaryHandler.NewHandler(billingSvc, log)
	getPricingConfig := getPricingConfigHandler.NewHandler(tariffsSvc, log)

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

	// Дашборд: счетчики слотов и открытые сессии
	api.HandleFunc("/parking/dashboard", getDashboard.Handle).Methods(http.MethodGet)

	// Список всех слотов
	api.HandleFunc("/parking/slots", listSlots.Handle).Methods(http.MethodGet)

	// Действующие тарифные конфигурации
	api.HandleFunc("/pricing/config", getPricingConfig.Handle).Methods(http.MethodGet)

	// Сводка выручки и транзакции за период
	api.HandleFunc("/billing/summary", getBillingSummary.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Operator-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Сессии ---
	// Оформление въезда
	protected.HandleFunc("/parking/check-in", checkIn.Handle).Methods(http.MethodPost)

	// Оформление выезда
	protected.HandleFunc("/parking/check-out", checkOut.Handle).Methods(http.MethodPut)

	// Ручной запуск проверки пересиженных сессий
	protected.HandleFunc("/parking/overstay-check", runOverstayCheck.Handle).Methods(http.MethodGet)

	// --- Администрирование слотов ---
	// Создание слотов (пакетом)
	protected.HandleFunc("/parking/slots", createSlots.Handle).Methods(http.MethodPost)

	// Перевод слота на обслуживание и обратно
	protected.HandleFunc("/parking/slots/{slotNumber}/maintenance", setSlotMaintenance.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Фоновый тикер overstay-проверки (если включен в конфигурации;
	// ручной запуск через HTTP-эндпоинт доступен в любом случае)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	if cfg.Overstay.SweepEnabled {
		go func() {
			ticker := time.NewTicker(sweepInterval)
			defer ticker.Stop()

			log.Info("Overstay sweeper started (threshold=%dh, interval=%s)", thresholdHours, sweepInterval)
			for {
				select {
				case <-sweepCtx.Done():
					return
				case <-ticker.C:
					if _, err := sweepOverstaysUseCase.Execute(sweepCtx); err != nil {
						log.Error("Overstay sweep failed: %v", err)
					}
				}
			}
		}()
	} else {
		log.Info("Overstay sweeper disabled, manual trigger endpoint only")
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

	// Останавливаем фоновый sweeper
	stopSweep()

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
