package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/benbjohnson/clock"

	"acadiasafe/internal/api"
	"acadiasafe/internal/api/handlers/http/system"
	"acadiasafe/internal/config"
	"acadiasafe/internal/metrics"
	"acadiasafe/internal/redis"
	"acadiasafe/internal/service"
	"acadiasafe/internal/storage/memory"
	"acadiasafe/internal/storage/postgres"
	"acadiasafe/internal/workers"
	"acadiasafe/pkg/logger"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Service    *service.Service
	Metrics    *metrics.Metrics
	Postgres   *postgres.Postgres
	Redis      *redis.Redis
	Notifier   *workers.Notifier
	Dispatcher *workers.EscortDispatcher
}

type repositories struct {
	users     service.UserRepository
	contacts  service.ContactRepository
	sos       service.SOSRepository
	incidents service.IncidentRepository
	escorts   service.EscortRepository
	walks     service.WalkRepository
	campus    service.CampusRepository
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	c := &Components{logger: logger, Metrics: metrics.New()}
	checks := make(map[string]system.Pinger)

	var repos repositories
	switch cfg.Storage {
	case config.StorageMemory:
		logger.Warn("Using in-memory storage; data is lost on exit")
		store := memory.New()
		repos = repositories{
			users: store.Users, contacts: store.Contacts, sos: store.SOS, incidents: store.Incidents,
			escorts: store.Escorts, walks: store.Walks, campus: store.Campus,
		}
	default:
		logger.Info("Initializing Postgres")
		storage, err := postgres.NewPostgres(ctx, cfg, logger)
		if err != nil {
			logger.Error("Failed to init postgres", slog.Any("error", err))
			return nil, fmt.Errorf("failed to init postgres: %w", err)
		}
		c.Postgres = storage
		checks["postgres"] = storage
		repos = repositories{
			users: storage.Users, contacts: storage.Contacts, sos: storage.SOS, incidents: storage.Incidents,
			escorts: storage.Escorts, walks: storage.Walks, campus: storage.Campus,
		}

		logger.Info("Initializing Redis")
		redisClient, err := redis.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			storage.Close()
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		c.Redis = redisClient
		checks["redis"] = redisClient
	}

	// Interfaces stay nil, not typed-nil, when Redis is absent.
	var (
		queue service.NotificationQueue
		cache service.CampusCacheService
		nq    *redis.NotificationQueue
	)
	if c.Redis != nil {
		cache = redis.NewCampusCache(c.Redis, cfg.Redis.CacheTTL)
		if !cfg.Notify.Disabled {
			nq = redis.NewNotificationQueue(c.Redis.Client, cfg.Notify.QueueKey, cfg.Notify.QueueMax)
			queue = nq
		}
	}

	clk := clock.New()
	svc := service.NewService(
		service.NewAuthService(repos.users, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.CampusDomain, clk, logger),
		service.NewContactService(repos.contacts, clk, logger),
		service.NewSOSService(repos.sos, repos.users, repos.contacts, queue, clk, logger),
		service.NewIncidentService(repos.incidents, queue, clk, logger),
		service.NewEscortService(repos.escorts, queue, cfg.Escort.AssignAfter, clk, logger),
		service.NewWalkService(repos.walks, repos.contacts, queue, clk, logger),
		service.NewCampusService(repos.campus, cache, clk, logger),
	)
	c.Service = svc

	if nq != nil {
		c.Notifier = workers.NewNotifier(logger, cfg.Notify.WebhookURL, nq, c.Metrics, workers.WithDeadLetters(nq))
	} else {
		logger.Info("Notification delivery disabled")
	}
	c.Dispatcher = workers.NewEscortDispatcher(svc.Escorts, cfg.Escort.DispatchInterval, clk, c.Metrics, logger)

	c.HttpServer = api.NewServer(ctx, cfg, logger, svc, c.Metrics, checks)
	logger.Info("Initialized server")

	return c, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Component shutdown started")

	if c.Postgres != nil {
		c.Postgres.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
