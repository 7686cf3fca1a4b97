package seed

import (
	"context"
	"slices"
	"time"

	"eventdiscovery/internal/domain"
)

type source struct {
	events  []domain.Event
	byID    map[string]int
	latency time.Duration
}

// NewSource returns an EventSource over a fixed catalog. Every call waits
// latency first to mimic a network round trip; zero disables the wait.
func NewSource(events []domain.Event, latency time.Duration) domain.EventSource {
	byID := make(map[string]int, len(events))
	for i, e := range events {
		byID[e.ID] = i
	}
	return &source{events: slices.Clone(events), byID: byID, latency: latency}
}

func (s *source) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *source) ListEvents(ctx context.Context) ([]domain.Event, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(s.events), nil
}

func (s *source) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	i, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	e := s.events[i]
	return &e, nil
}
