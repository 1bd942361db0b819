package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"listing-site/internal/adapters/cachestore"
	consulting_adapter "listing-site/internal/adapters/consulting"
	logger_adapter "listing-site/internal/adapters/logger"
	rabbitmq_adapter "listing-site/internal/adapters/rabbitmq"
	"listing-site/internal/adapters/rest"
	"listing-site/internal/adapters/sheetfeed"
	"listing-site/internal/adapters/web"
	"listing-site/internal/configs"
	"listing-site/internal/constants"
	"listing-site/internal/contextkeys"
	"listing-site/internal/contracts"
	"listing-site/internal/core/port"
	"listing-site/internal/core/usecase"
	fluentlogger "listing-site/pkg/fluent_logger"
	"listing-site/pkg/postgres"
	"listing-site/pkg/rabbitmq/rabbitmq_common"
	"listing-site/pkg/rabbitmq/rabbitmq_producer"
	redisclient "listing-site/pkg/redis"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

const shutdownTimeout = 20 * time.Second

// App – структура приложения
type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server
	logger    port.LoggerPort
	baseLog   port.LoggerPort

	loader       *usecase.LoadCatalogUseCase
	consultingUC *usecase.SubmitConsultingUseCase

	dbPool       *pgxpool.Pool
	redisClient  *goredis.Client
	connManager  *rabbitmq_common.ConnectionManager
	producer     *rabbitmq_producer.Publisher
	fluentClient *fluent.Fluent
}

// NewApp - точка сборки: здесь создаются и связываются все зависимости
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- ЛОГГЕРЫ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   appConfig.StdoutLogger.JSON,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			_ = fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	application := &App{
		config:       appConfig,
		logger:       appLogger,
		baseLog:      baseLogger,
		fluentClient: fluentClient,
	}

	// --- ХРАНИЛИЩЕ КЭША ---
	cacheStore, err := application.newCacheStore()
	if err != nil {
		application.closeResources()
		return nil, err
	}

	// --- ПОЛУЧАТЕЛИ ЗАЯВОК ---
	sinks, err := application.newConsultingSinks()
	if err != nil {
		application.closeResources()
		return nil, err
	}
	if len(sinks) == 0 {
		appLogger.Warn("No consulting sinks configured, submissions will only be logged", nil)
	}

	// --- USE CASES ---
	feed := sheetfeed.NewClient(appConfig.Catalog.APIURL, appConfig.Catalog.FetchTimeout)
	application.loader = usecase.NewLoadCatalogUseCase(feed, cacheStore, contracts.NewCatalogDecoder(), usecase.LoadCatalogConfig{
		CacheKey:      appConfig.Catalog.CacheKey,
		CacheWindow:   appConfig.Catalog.CacheWindow,
		CacheHitDelay: appConfig.Catalog.CacheHitDelay,
		FetchTimeout:  appConfig.Catalog.FetchTimeout,
	})
	refreshUC := usecase.NewRefreshCatalogUseCase(application.loader)
	browseUC := usecase.NewBrowseCatalogUseCase(application.loader)
	application.consultingUC = usecase.NewSubmitConsultingUseCase(sinks, appConfig.Consulting.FeedbackDelay, appConfig.Consulting.DeliveryTimeout)
	appLogger.Info("All use cases initialized.", nil)

	// --- HTTP ---
	renderer, err := web.NewRenderer()
	if err != nil {
		appLogger.Error("Failed to parse page templates", err, nil)
		application.closeResources()
		return nil, err
	}

	cacheMinutes := int(appConfig.Catalog.CacheWindow / time.Minute)
	siteHandlers := rest.NewSiteHandlers(browseUC, refreshUC, application.loader, application.consultingUC, renderer, cacheMinutes)
	apiHandlers := rest.NewAPIHandlers(browseUC, refreshUC, application.loader, application.consultingUC)

	application.apiServer = rest.NewServer(rest.ServerConfig{
		Port:           appConfig.Rest.Port,
		AllowedOrigins: appConfig.Rest.CORSAllowedOrigins,
		ReadTimeout:    appConfig.Rest.ReadTimeout,
		WriteTimeout:   appConfig.Rest.WriteTimeout,
	}, siteHandlers, apiHandlers, baseLogger)
	appLogger.Info("HTTP server configured.", nil)

	return application, nil
}

func (a *App) newCacheStore() (port.CacheStorePort, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := a.config.Cache
	logger := a.logger.WithFields(port.Fields{"cache_backend": cfg.Backend})

	switch cfg.Backend {
	case configs.CacheBackendRedis:
		client, err := redisclient.NewClient(ctx, redisclient.Config{URL: cfg.RedisURL})
		if err != nil {
			logger.Error("Failed to connect to Redis", err, nil)
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		a.redisClient = client
		store, err := cachestore.NewRedisStore(client, a.config.AppName+":")
		if err != nil {
			return nil, err
		}
		logger.Info("Successfully connected to Redis!", nil)
		return store, nil

	case configs.CacheBackendPostgres:
		pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: cfg.DatabaseURL})
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL", err, nil)
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		a.dbPool = pool
		store, err := cachestore.NewPostgresStore(pool)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Error("Failed to prepare cache table", err, nil)
			return nil, err
		}
		logger.Info("Successfully connected to PostgreSQL pool!", nil)
		return store, nil

	default:
		store, err := cachestore.NewFileStore(cfg.Dir)
		if err != nil {
			logger.Error("Failed to prepare cache directory", err, nil)
			return nil, err
		}
		logger.Info("File cache initialized", port.Fields{"dir": cfg.Dir})
		return store, nil
	}
}

func (a *App) newConsultingSinks() ([]port.ConsultingSinkPort, error) {
	var sinks []port.ConsultingSinkPort

	if a.config.Consulting.FormURL != "" {
		relay, err := consulting_adapter.NewFormRelaySink(a.config.Consulting.FormURL, a.config.Consulting.DeliveryTimeout)
		if err != nil {
			a.logger.Error("Failed to create consulting form relay", err, nil)
			return nil, err
		}
		sinks = append(sinks, relay)
	}

	if a.config.RabbitMQ.Enabled {
		connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(a.baseLog.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
		connManager, err := rabbitmq_common.NewManager(rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}, connManagerBridge)
		if err != nil {
			a.logger.Error("Failed to create connection manager", err, nil)
			return nil, fmt.Errorf("failed to create connection manager: %w", err)
		}
		a.connManager = connManager
		a.logger.Info("RabbitMQ Connection Manager initialized.", nil)

		producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: a.config.RabbitMQ.URL},
			ExchangeName:             a.config.RabbitMQ.Exchange,
			ExchangeType:             "direct",
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(a.baseLog.WithFields(port.Fields{"component": "rabbitmq_producer"})),
		}, connManager)
		if err != nil {
			a.logger.Error("Failed to create event producer", err, nil)
			return nil, fmt.Errorf("failed to create event producer: %w", err)
		}
		a.producer = producer

		eventSink, err := rabbitmq_adapter.NewConsultingEventSink(producer, constants.RoutingKeyConsultingRequests, a.config.AppName)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, eventSink)
		a.logger.Info("RabbitMQ consulting sink initialized.", nil)
	}

	return sinks, nil
}

// Run запускает сервер и управляет жизненным циклом приложения
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	defer a.shutdown()

	a.logger.Info("Application is starting...", nil)

	// каталог прогревается в фоне, первый посетитель не ждет загрузки
	go func() {
		warmCtx := contextkeys.ContextWithLogger(appCtx, a.baseLog.WithFields(port.Fields{"component": "warmup"}))
		if _, err := a.loader.Snapshot(warmCtx); err != nil {
			a.logger.Warn("Catalog warm-up failed, will retry on first request", port.Fields{"error": err.Error()})
			return
		}
		a.logger.Info("Catalog warm-up finished", nil)
	}()

	errorsCh := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil {
			errorsCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
		return err
	}
}

func (a *App) shutdown() {
	a.logger.Info("Shutdown sequence initiated...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.apiServer != nil {
		if err := a.apiServer.Stop(ctx); err != nil {
			a.logger.Error("Error during HTTP server shutdown", err, nil)
		}
	}

	// заявки, принятые до остановки сервера, должны дойти до получателей
	if a.consultingUC != nil {
		if err := a.consultingUC.Wait(ctx); err != nil {
			a.logger.Error("Timed out waiting for consulting deliveries", err, nil)
		}
	}

	a.closeResources()
	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

// closeResources закрывает внешние подключения. Fluent закрывается последним в shutdown.
func (a *App) closeResources() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("Error closing event producer", err, nil)
		}
		a.producer = nil
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
		a.connManager = nil
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("Error closing Redis client", err, nil)
		}
		a.redisClient = nil
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.dbPool = nil
		a.logger.Info("PostgreSQL pool closed.", nil)
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
