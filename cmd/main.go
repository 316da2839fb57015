package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"blinds-storefront/internal/api"
	"blinds-storefront/internal/backend"
	"blinds-storefront/internal/cart"
	"blinds-storefront/internal/catalog"
	"blinds-storefront/internal/config"
	"blinds-storefront/internal/customize"
	"blinds-storefront/internal/logging"
	"blinds-storefront/internal/store"
)

const (
	defaultAppName = "BlindsStorefront" // App name for logger
)

// pinger is implemented by stores with a live connection to check.
type pinger interface {
	Ping(ctx context.Context) error
}

func main() {
	if err := godotenv.Load(); err != nil {
		zlog.Info().Msg("no .env file found, relying on system environment")
	}

	// --- Configuration Loading ---
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("error loading configuration")
	}

	logger := logging.New(defaultAppName, cfg.LogLevel)
	zlog.Logger = logger
	logger.Info().
		Str("app_env", cfg.AppEnv).
		Str("catalog_source", cfg.Storefront.CatalogSource).
		Str("cart_backend", cfg.Storefront.CartBackend).
		Str("feature_mode", cfg.Storefront.FeatureMode).
		Msg("starting service")

	// --- Database Connection ---
	var pgStore *store.PostgresStore
	if cfg.UsesPostgres() {
		db, err := sql.Open("postgres", cfg.Postgres.DSN())
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize database connection")
		}
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = db.PingContext(pingCtx)
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to ping database")
		}
		logger.Info().Msg("database connection established")
		pgStore = store.NewPostgresStore(db, logger)
	}

	// --- Product Source ---
	var products store.ProductSource
	switch cfg.Storefront.CatalogSource {
	case config.CatalogSourcePostgres:
		products = pgStore
	default:
		products = backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout, logger.With().Str("component", "backend").Logger())
	}

	// --- Cart Store ---
	var (
		carts   store.CartStorer
		closers []io.Closer
		checks  = map[string]pinger{}
	)
	if pgStore != nil {
		closers = append(closers, pgStore)
		checks["database"] = pgStore
	}
	switch cfg.Storefront.CartBackend {
	case config.CartBackendRedis:
		client := store.NewRedisClient(cfg.Redis.Addr,
			store.WithRedisPassword(cfg.Redis.Password),
			store.WithRedisDB(cfg.Redis.DB),
		)
		redisStore := store.NewRedisCartStore(client, "cart", cfg.Redis.CartTTL)
		carts = redisStore
		closers = append(closers, redisStore)
		checks["redis"] = redisStore
	case config.CartBackendPostgres:
		carts = pgStore
	default:
		carts = store.NewMemoryCartStore()
	}

	// --- Services ---
	features := catalog.ResolveFeatures
	if cfg.Storefront.FeatureMode == config.FeatureModeStatic {
		features = catalog.StaticFeatures
	}
	catalogSvc := catalog.NewService(products, features, cfg.Storefront.RelatedLimit, logger.With().Str("component", "catalog").Logger())
	engine := customize.NewEngine(cfg.Storefront.Currency)
	cartSvc := cart.NewService(carts, logger.With().Str("component", "cart").Logger())

	// --- Initialize API Handlers ---
	httpAPIHandler := api.NewHTTPHandler(catalogSvc, engine, cartSvc, logger)
	grpcAPIHandler := api.NewGRPCHandler(catalogSvc, engine, logger)

	// --- Setup & Start HTTP Server ---
	httpRouter := chi.NewRouter()
	setupBaseMiddleware(httpRouter, logger)
	registerHealthCheck(httpRouter, logger, checks)
	httpAPIHandler.RegisterRoutes(httpRouter)

	httpServer := &http.Server{
		Addr:         ":" + cfg.HttpServer.Port,
		Handler:      httpRouter,
		ReadTimeout:  cfg.HttpServer.TimeoutRead,
		WriteTimeout: cfg.HttpServer.TimeoutWrite,
		IdleTimeout:  cfg.HttpServer.TimeoutIdle,
	}

	go func() {
		logger.Info().Str("port", cfg.HttpServer.Port).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server ListenAndServe error")
		}
		logger.Info().Msg("HTTP server has stopped")
	}()

	// --- Setup & Start gRPC Server ---
	grpcServer := setupGRPCServer(logger, grpcAPIHandler)
	grpcListener, err := net.Listen("tcp", ":"+cfg.GrpcServer.Port)
	if err != nil {
		logger.Fatal().Err(err).Str("port", cfg.GrpcServer.Port).Msg("failed to listen for gRPC")
	}

	go func() {
		logger.Info().Str("port", cfg.GrpcServer.Port).Msg("gRPC server listening")
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			logger.Fatal().Err(err).Msg("gRPC server Serve error")
		}
		logger.Info().Msg("gRPC server has stopped")
	}()

	// --- Graceful Shutdown ---
	shutdownComplete := make(chan struct{})
	go waitForShutdown(logger, httpServer, grpcServer, closers, shutdownComplete)

	<-shutdownComplete
	logger.Info().Msg("service shutdown sequence finished")
}

func setupBaseMiddleware(router *chi.Mux, logger zerolog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(api.RequestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
}

func registerHealthCheck(router *chi.Mux, logger zerolog.Logger, checks map[string]pinger) {
	healthPath := "/api/v1/healthz"
	router.Get(healthPath, func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		payload := map[string]interface{}{
			"status":      "healthy",
			"serviceName": defaultAppName,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		}
		for name, check := range checks {
			state := "healthy"
			if err := check.Ping(ctx); err != nil {
				state = "unhealthy"
				logger.Warn().Err(err).Str("dependency", name).Msg("health check ping failed")
			}
			payload[name] = state
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK) // Always 200, but payload indicates detailed status
		_ = json.NewEncoder(w).Encode(payload)
	})
	logger.Info().Str("path", healthPath).Msg("HTTP health check registered")
}

func setupGRPCServer(logger zerolog.Logger, grpcAPIHandler *api.GRPCHandler) *grpc.Server {
	s := grpc.NewServer()

	api.RegisterStorefrontServer(s, grpcAPIHandler)
	grpc_health_v1.RegisterHealthServer(s, health.NewServer())
	// Enable gRPC server reflection (useful for tools like grpcurl).
	reflection.Register(s)
	logger.Info().Str("service", api.StorefrontServiceName).Msg("gRPC services registered")

	return s
}

func waitForShutdown(
	logger zerolog.Logger,
	httpServer *http.Server,
	grpcServer *grpc.Server,
	closers []io.Closer,
	shutdownComplete chan struct{},
) {
	defer close(shutdownComplete)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-sigChan
	logger.Info().Str("signal", receivedSignal.String()).Msg("starting graceful shutdown")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	stoppedGrpc := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stoppedGrpc)
	}()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("HTTP server graceful shutdown failed")
	} else {
		logger.Info().Msg("HTTP server gracefully shut down")
	}

	select {
	case <-stoppedGrpc:
		logger.Info().Msg("gRPC server gracefully shut down")
	case <-shutdownCtx.Done():
		logger.Warn().Err(shutdownCtx.Err()).Msg("gRPC server graceful shutdown timed out, forcing stop")
		grpcServer.Stop()
	}

	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Warn().Err(err).Msg("error closing store")
		}
	}

	logger.Info().Msg("graceful shutdown sequence completed")
}
