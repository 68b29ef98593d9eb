package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alicebob/miniredis/v2"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/money-movements/pkg/auth"
	"github.com/chris/money-movements/pkg/config"
	"github.com/chris/money-movements/pkg/handlers"
	authhandler "github.com/chris/money-movements/pkg/handlers/auth"
	"github.com/chris/money-movements/pkg/handlers/dashboard"
	"github.com/chris/money-movements/pkg/handlers/exports"
	"github.com/chris/money-movements/pkg/handlers/movements"
	"github.com/chris/money-movements/pkg/handlers/preferences"
	"github.com/chris/money-movements/pkg/handlers/profile"
	livehandler "github.com/chris/money-movements/pkg/handlers/websockets"
	"github.com/chris/money-movements/pkg/logging"
	"github.com/chris/money-movements/pkg/metrics"
	prefs "github.com/chris/money-movements/pkg/preferences"
	"github.com/chris/money-movements/pkg/scheduler"
	"github.com/chris/money-movements/pkg/storage"
	dydbstore "github.com/chris/money-movements/pkg/storage/dynamodb"
	"github.com/chris/money-movements/pkg/storage/memory"
	"github.com/chris/money-movements/pkg/websockets"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := logging.New(level, cfg.LogFormat)
	slog.SetDefault(logger)

	loc, _ := cfg.Location()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store storage.Storage
	var sched scheduler.ReminderScheduler
	switch cfg.DataBackend {
	case config.BackendDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Fatalf("unable to load SDK config, %v", err)
		}
		ddb := dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.MovementsTableName, cfg.UsersTableName, cfg.ConnectionsTableName)
		ddb.Location = loc
		store = ddb
		if cfg.SQSQueueURL != "" {
			sched = scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL)
		}
	case config.BackendMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		store = memory.NewStore()
	}

	redisOpts := cfg.RedisOptions()
	if redisOpts.Addr == "" {
		// Only reachable with the memory backend.
		mr, err := miniredis.Run()
		if err != nil {
			log.Fatalf("Failed to start embedded redis: %v", err)
		}
		defer mr.Close()
		redisOpts.Addr = mr.Addr()
		logger.Warn("REDIS_ADDR not set, using embedded redis", "addr", mr.Addr())
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	m := metrics.New()
	hub := websockets.NewHub(0)
	hub.OnDrop = m.LiveDropped

	publisher := websockets.MultiPublisher{hub}
	if cfg.WebsocketAPIEndpoint != "" {
		gw, err := websockets.NewAPIGatewayPublisher(ctx, store, store, cfg.WebsocketAPIEndpoint)
		if err != nil {
			log.Fatalf("Failed to create websocket publisher: %v", err)
		}
		publisher = append(publisher, gw)
	}

	authService := auth.NewService(store, auth.NewRedisSessionStore(redisClient, cfg.SessionTTL))
	theme := prefs.NewTheme(prefs.NewRedisStore(redisClient))

	movementsHandler := movements.NewMovementsHandler(store, sched, publisher)
	movementsHandler.Metrics = m
	movementsHandler.Location = loc
	movementsHandler.ReminderWindow = cfg.ReminderWindow

	exportsHandler := exports.NewExportsHandler(store, cfg.GotenbergURL, theme, loc)
	exportsHandler.Metrics = m

	authHandler := authhandler.NewAuthHandler(authService, cfg.SessionTTL, cfg.SessionCookieSecure)
	authHandler.Metrics = m

	liveHandler := livehandler.NewLiveHandler(store, hub, theme, loc)
	liveHandler.Metrics = m

	router := handlers.NewRouter(handlers.RouterConfig{
		Logger:      logger,
		Metrics:     m,
		Auth:        authService,
		AuthHandler: authHandler,
		Api: handlers.NewApiHandler(
			movementsHandler,
			dashboard.NewDashboardHandler(store, theme, loc),
			exportsHandler,
			profile.NewProfileHandler(store),
			preferences.NewPreferencesHandler(theme, publisher),
		),
		Live:                   liveHandler,
		Production:             cfg.Production,
		AuthRateLimitPerMinute: cfg.RateLimitAuthPerMinute,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down server", "error", err)
		}
	}()

	logger.Info("starting server", "port", cfg.HTTPPort, "backend", cfg.DataBackend)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
}
