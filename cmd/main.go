package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/sashabaranov/go-openai"

	"github.com/shenikar/safety_heatmap/internal/config"
	"github.com/shenikar/safety_heatmap/internal/events"
	v1 "github.com/shenikar/safety_heatmap/internal/handler/http/v1"
	"github.com/shenikar/safety_heatmap/internal/news"
	"github.com/shenikar/safety_heatmap/internal/observability"
	"github.com/shenikar/safety_heatmap/internal/repository"
	"github.com/shenikar/safety_heatmap/internal/scoring"
	"github.com/shenikar/safety_heatmap/internal/service"
	"github.com/shenikar/safety_heatmap/pkg/lock"
	"github.com/shenikar/safety_heatmap/pkg/logger"
	"github.com/shenikar/safety_heatmap/pkg/postgres"
	redisclient "github.com/shenikar/safety_heatmap/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/safety_heatmap/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const rebuildConcurrency = 8

// @title Safety Heatmap API
// @version 1.0
// @description Incident verification and geospatial risk aggregation API.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// eventBus собирает издателей из EVENT_BUS. Возвращает функцию закрытия соединений.
func eventBus(cfg *config.Config, log *logrus.Logger, hub *events.Hub, redisPublisher events.Publisher) (events.Publisher, func()) {
	var publishers []events.Publisher
	var closers []func()

	for _, bus := range cfg.EventBus {
		switch strings.ToLower(bus) {
		case "redis":
			publishers = append(publishers, redisPublisher)
		case "ws":
			publishers = append(publishers, hub)
		case "nats":
			conn, err := events.ConnectNATS(cfg.NATSURL, log)
			if err != nil {
				log.WithError(err).Warn("NATS bus disabled")
				continue
			}
			publishers = append(publishers, events.NewNATSPublisher(conn))
			closers = append(closers, func() { _ = conn.Drain() })
		case "kafka":
			kafka := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
			publishers = append(publishers, kafka)
			closers = append(closers, func() {
				if err := kafka.Close(); err != nil {
					log.WithError(err).Warn("Failed to close Kafka writer")
				}
			})
		default:
			log.WithField("bus", bus).Warn("Unknown event bus, ignored")
		}
	}
	log.WithField("buses", cfg.EventBus).Info("Event bus configured")

	return events.NewFanout(log, publishers...), func() {
		for _, closeFn := range closers {
			closeFn()
		}
	}
}

// loadNeighborhoods загружает границы из файла, если он задан, иначе из базы
func loadNeighborhoods(ctx context.Context, cfg *config.Config, svc service.NeighborhoodService, log *logrus.Logger) {
	if cfg.NeighborhoodsGeoJSON == "" {
		if err := svc.Reload(ctx); err != nil {
			log.WithError(err).Warn("Failed to load neighborhoods")
		}
		return
	}

	data, err := os.ReadFile(cfg.NeighborhoodsGeoJSON)
	if err != nil {
		log.WithError(err).Warn("Failed to read neighborhoods file")
		return
	}
	imported, err := svc.ImportGeoJSON(ctx, data)
	if err != nil {
		log.WithError(err).Warn("Failed to import neighborhoods")
		return
	}
	log.WithField("imported", imported).Info("Neighborhood boundaries seeded")
}

// newsJob собирает конвейер новостей; nil, если источники или ключи не настроены
func newsJob(cfg *config.Config, store news.Store, reconciler service.Reconciler, log *logrus.Logger, clock clockwork.Clock) (*news.Job, error) {
	if len(cfg.NewsFeeds) == 0 || cfg.OpenAIAPIKey == "" || cfg.GoogleMapsAPIKey == "" {
		return nil, nil
	}

	google, err := news.NewGoogleGeocoder(cfg.GoogleMapsAPIKey)
	if err != nil {
		return nil, err
	}
	cached, err := news.NewCachedGeocoder(google, cfg.GeocoderCacheSize)
	if err != nil {
		return nil, err
	}
	geocoder := news.NewRateLimitedGeocoder(cached, cfg.GeocoderRate, cfg.GeocoderTimeout)

	classifier := news.NewOpenAIClassifier(openai.NewClient(cfg.OpenAIAPIKey), cfg.OpenAIModel, cfg.ClassifierTimeout)
	fetcher := news.NewRSSFetcher(cfg.NewsFeeds, cfg.NewsFetchTimeout, log)

	return news.NewJob(fetcher, classifier, geocoder, store, reconciler, log, clock), nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()

	// Шины событий и доставка вебхуков
	hub := events.NewHub(log)
	publisher, closeBus := eventBus(cfg, log, hub, events.NewRedisPublisher(redisClient))
	defer closeBus()
	if slices.Contains(cfg.EventBus, "redis") {
		webhookWorker := events.NewWebhookWorker(redisClient, log, cfg)
		webhookWorker.Start(ctx)
	}

	// Инициализация репозиториев
	incidentRepo := repository.NewIncidentRepository(dbpool, redisClient)
	cellRepo := repository.NewHeatCellRepository(dbpool)
	neighborhoodRepo := repository.NewNeighborhoodRepository(dbpool)
	newsRepo := repository.NewNewsRepository(dbpool)
	reputation := repository.NewReputationStore(redisClient)

	// Инициализация сервисов
	scorer := scoring.NewScorer(cfg.DecayHalfLifeDays)
	consensus := service.NewConsensusEngine(service.ConsensusPolicy{
		MinVotes:          cfg.ConsensusMinVotes,
		PositiveThreshold: cfg.ConsensusPositiveThreshold,
		NegativeThreshold: cfg.ConsensusNegativeThreshold,
		Weight:            service.ReputationWeight,
	})

	heatmapService := service.NewHeatmapService(incidentRepo, cellRepo, lock.NewRedisLocker(redisClient), publisher, scorer, log, clock, metrics)
	neighborhoodService := service.NewNeighborhoodService(incidentRepo, neighborhoodRepo, publisher, log, clock, metrics)

	dispatcher := service.NewDispatcher(heatmapService, neighborhoodService, log, metrics, cfg.AggregationWorkers, cfg.AggregationQueueSize)
	dispatcher.Start(ctx)

	incidentService := service.NewIncidentService(incidentRepo, consensus, reputation, dispatcher, publisher, log, clock, metrics)
	reconciler := service.NewReconciler(incidentRepo, dispatcher, publisher, service.ReconcileConfig{
		Window:             cfg.ReconcileWindow,
		RadiusMeters:       cfg.ReconcileRadiusMeters,
		ReporterReputation: cfg.NewsReporterReputation,
	}, log, clock, metrics)
	maintenance := service.NewMaintenanceService(incidentRepo, cellRepo, neighborhoodRepo, heatmapService, neighborhoodService, log, clock, rebuildConcurrency)

	loadNeighborhoods(ctx, cfg, neighborhoodService, log)

	go heatmapService.RunRebalanceLoop(ctx, cfg.RebalanceInterval, cfg.RebalanceDebounce)

	// Фоновые задачи по расписанию
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.RebuildSchedule, func() {
		report, err := maintenance.RebuildAll(ctx)
		if err != nil {
			log.WithError(err).Error("Scheduled rebuild failed")
			return
		}
		log.WithField("cells", report.Cells).WithField("duration", report.Duration).Info("Scheduled rebuild finished")
	})
	if err != nil {
		log.Fatalf("Invalid rebuild schedule %q: %v", cfg.RebuildSchedule, err)
	}

	job, err := newsJob(cfg, newsRepo, reconciler, log, clock)
	if err != nil {
		log.Fatalf("Failed to set up news job: %v", err)
	}
	if job != nil {
		if err := job.Schedule(ctx, scheduler, cfg.NewsSchedule); err != nil {
			log.Fatalf("Failed to schedule news job: %v", err)
		}
	} else {
		log.Info("News ingestion disabled: feeds or API keys are not configured")
	}
	scheduler.Start()

	// Инициализация хэндлеров
	handler := v1.NewHandler(v1.Services{
		Incidents:     incidentService,
		Heatmap:       heatmapService,
		Neighborhoods: neighborhoodService,
		Reconciler:    reconciler,
		Maintenance:   maintenance,
	}, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Сокеты карты и метрики
	router.GET("/ws", gin.WrapH(hub))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	<-scheduler.Stop().Done()
	cancel()
	dispatcher.Wait()

	log.Info("Server gracefully stopped")
}
