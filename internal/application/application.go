package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"realty_extractor/internal/config"
	"realty_extractor/internal/domain/entity"
	"realty_extractor/internal/domain/service/listing"
	"realty_extractor/internal/infrastructure/notifier"
	"realty_extractor/internal/infrastructure/persistence"
	"realty_extractor/internal/infrastructure/resultstore"
	"realty_extractor/internal/infrastructure/telemetry"
	"realty_extractor/internal/server"
	"realty_extractor/internal/transport/bot"
	"realty_extractor/internal/transport/bot/handler"
	"realty_extractor/internal/worker"
	"realty_extractor/pkg/application/connectors"
	"realty_extractor/pkg/application/modules"
	"realty_extractor/pkg/logx"
	"realty_extractor/pkg/middlewarex"
	"realty_extractor/pkg/probe"
)

const (
	alertsBuffer = 100

	httpReadHeaderTimeout = 5 * time.Second
)

func Run(ctx context.Context, log *slog.Logger, cfg config.Config) error {
	// Хранилища
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	rds := &connectors.Redis{
		Address:        cfg.Redis.Address,
		Username:       cfg.Redis.Username,
		Password:       cfg.Redis.Password,
		DatabaseNumber: cfg.Redis.DB,
		PoolSize:       cfg.Redis.PoolSize,
	}
	redisClient := rds.Client(ctx)
	defer rds.Close(ctx)

	listingRepo := persistence.NewListingRepository(db)
	tasks := resultstore.NewRedisStore(redisClient, cfg.Extractor.ResultTTL)

	// Извлечение
	extractor, err := NewExtractor(cfg.Extractor, telemetry.NewCollectors(prometheus.DefaultRegisterer))
	if err != nil {
		return fmt.Errorf("new extractor: %w", err)
	}

	listings := listing.NewService(extractor, listingRepo).
		WithQualityThreshold(cfg.Extractor.LowQualityThreshold)

	g, ctx := errgroup.WithContext(ctx)

	// Алерты
	if cfg.Bot.Enabled() {
		alertBot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
		if err != nil {
			return fmt.Errorf("notifier bot: %w", err)
		}

		alerts := make(chan entity.QualityAlert, alertsBuffer)
		listings = listings.WithAlerts(alerts)

		g.Go(func() error {
			log.Info("notifier bot started listening")
			notice := notifier.FormatStartup(cfg.App.Name, cfg.App.Version, cfg.Extractor.LowQualityThreshold)
			if err := alertBot.SendText(ctx, notice); err != nil {
				log.Warn("failed to send startup notice", logx.Error(err))
			}
			if err := alertBot.Run(ctx, alerts); err != nil && ctx.Err() == nil {
				return fmt.Errorf("alertBot.Run: %w", err)
			}
			return nil
		})
	} else {
		log.Warn("telegram alerts are disabled")
	}

	if cfg.Bot.CommandsEnabled() {
		commandBot, err := bot.New(cfg.Bot.Token, cfg.Bot.AdminID, handler.New(extractor, listings))
		if err != nil {
			return fmt.Errorf("command bot: %w", err)
		}

		g.Go(func() error {
			if err := commandBot.Run(ctx); err != nil {
				return fmt.Errorf("commandBot.Run: %w", err)
			}
			return nil
		})
	}

	// Очередь
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	queueClient := asynq.NewClient(redisOpt)
	defer queueClient.Close()

	enqueuer := worker.NewEnqueuer(queueClient, tasks)
	extractHandler := worker.NewExtractHandler(listings, tasks)

	modules.AsynqServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DB,
		Concurrency:   cfg.Extractor.WorkerConcurrency,
	}.Run(ctx, g,
		modules.AsynqQueues{worker.QueueExtraction: 1},
		modules.AsynqHandler{Pattern: worker.TypeExtract, Handle: extractHandler.Handle},
	)

	// HTTP
	srv := server.NewServer(
		server.NewExtractServer(extractor, listings, enqueuer, cfg.Extractor.BatchParallelism),
		server.NewListingServer(listings),
		server.NewTaskServer(tasks),
	)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, &http.Server{
		//nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           newRouter(srv, cfg.HTTP.LogFieldMaxLen),
		ReadHeaderTimeout: httpReadHeaderTimeout,
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.ListenAddress,
		Checks: map[string]probe.Check{
			"postgres": db.PingContext,
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		},
	}.Run(ctx, g)

	modules.MetricServer{ListenAddress: cfg.Metrics.ListenAddress}.Run(ctx, g)

	log.Info("application started",
		slog.String(logx.FieldAppName, cfg.App.Name),
		slog.String(logx.FieldAppVersion, cfg.App.Version),
	)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("errgroup.Wait: %w", err)
	}

	log.Info("application stopping...")

	return nil
}

func newRouter(srv server.Server, logFieldMaxLen int) http.Handler {
	masker := logx.NewSensitiveDataMasker()

	r := chi.NewRouter()
	r.Use(
		middlewarex.TraceID,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
	)

	srv.RegisterRoutes(r)

	return r
}
