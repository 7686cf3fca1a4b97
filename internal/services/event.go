package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/singleflight"

	"eventdiscovery/internal/cache"
	"eventdiscovery/internal/domain"
	"eventdiscovery/internal/metrics"
	"eventdiscovery/internal/query"
)

type eventService struct {
	source         domain.EventSource
	cache          *cache.TTL[[]domain.Event]
	metrics        *metrics.Collector
	logger         *slog.Logger
	clock          cache.Clock
	contextTimeout time.Duration
	inflight       *singleflight.Group
}

// Option configures the event service.
type Option func(*eventService)

// WithClock sets the clock that anchors relative date filters.
func WithClock(c cache.Clock) Option {
	return func(s *eventService) { s.clock = c }
}

// WithCoalescing makes identical concurrent cache misses share one source call.
func WithCoalescing() Option {
	return func(s *eventService) { s.inflight = &singleflight.Group{} }
}

// NewEventService wires the façade over a source and a result cache. Every
// source call is bounded by timeout; zero means no extra bound.
func NewEventService(
	source domain.EventSource,
	results *cache.TTL[[]domain.Event],
	m *metrics.Collector,
	logger *slog.Logger,
	timeout time.Duration,
	opts ...Option,
) domain.EventService {
	s := &eventService{
		source:         source,
		cache:          results,
		metrics:        m,
		logger:         logger.With("component", "event_service"),
		clock:          cache.SystemClock{},
		contextTimeout: timeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *eventService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.contextTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.contextTimeout)
}

func (s *eventService) FetchEvents(ctx context.Context, filters domain.Filters) ([]domain.Event, error) {
	filters = domain.NormalizeFilters(filters)
	key := domain.CacheKey(filters)

	if cached, ok := s.cache.Get(key); ok {
		s.metrics.CacheHit()
		s.logger.DebugContext(ctx, "cache hit", "key", key, "count", len(cached))
		return slices.Clone(cached), nil
	}
	s.metrics.CacheMiss()
	s.logger.DebugContext(ctx, "cache miss", "key", key)

	if s.inflight == nil {
		events, err := s.load(ctx, key, filters)
		if err != nil {
			return nil, err
		}
		return slices.Clone(events), nil
	}

	// A shared load outlives any single caller; the service timeout still bounds it.
	ch := s.inflight.DoChan(key, func() (any, error) {
		return s.load(context.WithoutCancel(ctx), key, filters)
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: list events: %w", domain.ErrSourceUnavailable, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.DebugContext(ctx, "shared in-flight load", "key", key)
		}
		return slices.Clone(res.Val.([]domain.Event)), nil
	}
}

// load runs the miss path. The cache is written only on success.
func (s *eventService) load(ctx context.Context, key string, filters domain.Filters) ([]domain.Event, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	all, err := s.source.ListEvents(ctx)
	s.metrics.ObserveSourceFetch(time.Since(start), err)
	if err != nil {
		s.logger.WarnContext(ctx, "list events failed", "key", key, "err", err)
		return nil, fmt.Errorf("%w: list events: %w", domain.ErrSourceUnavailable, err)
	}

	result := query.Apply(all, filters, s.clock.Now())
	s.cache.Set(key, result)
	return result, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	if !domain.ValidEventID(id) {
		return nil, domain.ErrNotFound
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	event, err := s.source.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: get event: %w", domain.ErrSourceUnavailable, err)
	}
	return event, nil
}

func (s *eventService) ClearCache() {
	s.cache.Clear()
	s.logger.Info("event cache cleared")
}
