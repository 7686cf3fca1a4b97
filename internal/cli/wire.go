package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventdiscovery/config"
	"eventdiscovery/internal/adapters/graphql"
	"eventdiscovery/internal/adapters/seed"
	"eventdiscovery/internal/cache"
	"eventdiscovery/internal/domain"
	"eventdiscovery/internal/metrics"
	"eventdiscovery/internal/repository/postgres"
	"eventdiscovery/internal/services"
)

// App is the assembled service graph shared by the commands.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Collector
	Service domain.EventService

	results *cache.TTL[[]domain.Event]
	closers []func() error
}

// Build wires the event source chosen by cfg behind the caching service.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
		results: cache.New[[]domain.Event](cache.WithDefaultTTL(cfg.CacheTTL)),
	}

	source, err := app.newSource(ctx)
	if err != nil {
		return nil, errors.Join(err, app.Close())
	}

	var opts []services.Option
	if cfg.CoalesceFetches {
		opts = append(opts, services.WithCoalescing())
	}
	app.Service = services.NewEventService(source, app.results, app.Metrics, logger, cfg.RequestTimeout, opts...)
	logger.Info("event service ready",
		"source", cfg.EventSource,
		"cache_ttl", cfg.CacheTTL.String(),
		"coalesce", cfg.CoalesceFetches,
	)
	return app, nil
}

func (a *App) newSource(ctx context.Context) (domain.EventSource, error) {
	cfg := a.Config
	switch cfg.EventSource {
	case config.SourceGraphQL:
		return graphql.NewClient(graphql.Options{
			Endpoint:  cfg.GraphQLEndpoint,
			APIKey:    cfg.GraphQLAPIKey,
			AuthToken: cfg.GraphQLAuthToken,
			AuthType:  cfg.GraphQLAuthType,
			Timeout:   cfg.GraphQLTimeout,
		}, nil), nil
	case config.SourcePostgres:
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return postgres.NewEventRepository(db), nil
	case config.SourceSeed, "":
		events, err := loadSeed(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		return seed.NewSource(events, cfg.SimulatedLatency), nil
	default:
		return nil, fmt.Errorf("unknown event source %q", cfg.EventSource)
	}
}

func loadSeed(path string) ([]domain.Event, error) {
	if path == "" {
		return seed.DefaultCatalog()
	}
	return seed.LoadFile(path)
}

// RunJanitor drops expired cache entries every interval until ctx is done.
func (a *App) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = cache.DefaultTTL
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := a.results.Purge(); n > 0 {
				a.Logger.Debug("purged expired cache entries", "count", n)
			}
		}
	}
}

// Close releases the resources held by the event source.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}
