package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tair/warehouse-ledger/internal/inbound"
	"github.com/tair/warehouse-ledger/internal/inventory"
	invhttp "github.com/tair/warehouse-ledger/internal/inventory/delivery/http"
	invrepo "github.com/tair/warehouse-ledger/internal/inventory/repository"
	"github.com/tair/warehouse-ledger/internal/middleware"
	"github.com/tair/warehouse-ledger/internal/packing"
	packrepo "github.com/tair/warehouse-ledger/internal/packing/repository"
	"github.com/tair/warehouse-ledger/internal/reallocation"
	reallocrepo "github.com/tair/warehouse-ledger/internal/reallocation/repository"
	"github.com/tair/warehouse-ledger/internal/warehouse"
	whrepo "github.com/tair/warehouse-ledger/internal/warehouse/repository"
	"github.com/tair/warehouse-ledger/kafka"
	"github.com/tair/warehouse-ledger/pkg/config"
	"github.com/tair/warehouse-ledger/pkg/database"
	"github.com/tair/warehouse-ledger/pkg/logger"
	"github.com/tair/warehouse-ledger/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting warehouse ledger")

	// Initialize tracing
	_, shutdownTracer, err := tracing.InitTracer(cfg.ServiceName, cfg.JaegerEndpoint)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shut down tracer")
		}
	}()

	// Connect to database
	db, err := database.NewGormConnection(cfg.Database())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations context by context, then seed reference data
	allocationRepo := invrepo.NewGormAllocationRepository(db)
	if err := allocationRepo.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run inventory migrations")
	}
	if err := whrepo.NewGormWarehouseRepository(db).AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run warehouse migrations")
	}
	if err := reallocrepo.NewGormTenderContractRepository(db).AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run reallocation migrations")
	}
	if err := packrepo.NewGormManifestRepository(db).AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run packing migrations")
	}
	if err := allocationRepo.SeedTypes(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to seed allocation types")
	}

	// Separate raw connection for health pings, so the health endpoint
	// observes connectivity independently of the ORM pool.
	healthDB, err := database.NewPostgresConnection(cfg.Database())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open health check connection")
	}
	defer healthDB.Close()

	logger.Logger.Info().Msg("Database initialized successfully")

	// Kafka publisher is optional; without brokers the ledger runs without
	// eventing.
	var publisher *kafka.Publisher
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		publisher, err = kafka.NewPublisher(brokers)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
		}
		defer publisher.Close()
	} else {
		logger.Logger.Warn().Msg("KAFKA_BROKERS not set, event publishing disabled")
	}

	// Initialize handlers with Wire DI
	inventoryHandler, err := inventory.InitializeInventoryHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize inventory handler")
	}
	warehouseHandler, err := warehouse.InitializeWarehouseHandler(db, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize warehouse handler")
	}
	inboundHandler, err := inbound.InitializeInboundHandler(db, publisher, inbound.QuarantinePolicy(cfg.QuarantineOnReceipt))
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize inbound handler")
	}
	reallocationHandler, err := reallocation.InitializeReallocationHandler(db, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize reallocation handler")
	}
	packingHandler, err := packing.InitializePackingHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize packing handler")
	}

	// Setup router
	router := mux.NewRouter()
	middlewareConfig := middleware.DefaultConfig()
	middleware.Register(router, middlewareConfig)

	inventoryHandler.RegisterRoutes(router)
	warehouseHandler.RegisterRoutes(router)
	inboundHandler.RegisterRoutes(router)
	reallocationHandler.RegisterRoutes(router)
	packingHandler.RegisterRoutes(router)

	inventoryHandler.RegisterHealthCheck(router, healthDB)
	router.Handle("/metrics", promhttp.Handler())
	invhttp.RegisterSwaggerDocs(router, httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: middleware.SetupCORS(middlewareConfig)(router),
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shut down")
	}

	logger.Logger.Info().Msg("Server stopped")
}
