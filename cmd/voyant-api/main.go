// README: Entry point; loads config, wires services, starts HTTP server and weather poller.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"voyant/internal/ai"
	"voyant/internal/config"
	httptransport "voyant/internal/http"
	"voyant/internal/infra"
	"voyant/internal/maps"
	"voyant/internal/modules/aiusage"
	"voyant/internal/modules/trip"
	"voyant/internal/modules/weather"
	"voyant/internal/service"
)

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(cfg.IsProduction())
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Firebase.ProjectID == "" {
		logger.Fatal("VOYANT_FIREBASE_PROJECT_ID is required")
	}
	verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		logger.Fatal("firebase init", zap.Error(err))
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("db init", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	provider, err := ai.NewProvider(ctx, ai.ProviderConfig{
		Backend:   cfg.AI.Backend,
		APIKey:    cfg.AI.APIKey,
		Model:     cfg.AI.Model,
		ForceMock: cfg.AI.ForceMock,
	})
	if err != nil {
		logger.Fatal("ai provider init", zap.Error(err))
	}
	if _, mock := provider.(*ai.MockProvider); mock {
		logger.Info("no AI credential configured; using the mock provider")
	}

	var geo service.Geocoder
	if cfg.Maps.APIKey != "" {
		g, err := maps.NewGeocodeService(cfg.Maps.APIKey)
		if err != nil {
			logger.Fatal("maps init", zap.Error(err))
		}
		geo = g
	}

	planner := service.NewPlanner(provider, geo, logger)

	tripSvc := trip.NewService(trip.NewStore(dbPool))
	quotaSvc := aiusage.NewService(aiusage.NewStore(dbPool))

	var weatherSvc *weather.Service
	if cfg.Weather.BaseURL != "" {
		weatherSvc = weather.NewService(
			redisClient,
			weather.NewHTTPForecastClient(cfg.Weather.BaseURL),
			weather.Config{
				Destinations: cfg.Weather.Destinations,
				Interval:     time.Duration(cfg.Weather.IntervalSeconds) * time.Second,
				CacheTTL:     time.Duration(cfg.Weather.CacheTTLSeconds) * time.Second,
			},
			logger,
		)
		go weatherSvc.RunPoller(ctx)
	}

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Planner:    planner,
		Trips:      tripSvc,
		Quota:      quotaSvc,
		Weather:    weatherSvc,
		Verifier:   verifier,
		Logger:     logger,
		Production: cfg.IsProduction(),
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server", zap.Error(err))
	}
}
