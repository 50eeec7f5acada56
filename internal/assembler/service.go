package assembler

import (
	"context"
	"log/slog"
	"time"

	"github.com/rsviz/budgetflow/internal/graph"
	"github.com/rsviz/budgetflow/internal/record"
	"github.com/rsviz/budgetflow/internal/selector"
	"github.com/rsviz/budgetflow/internal/view"
)

// Service assembles envelopes from one immutable dataset. It is safe for
// concurrent use: the dataset is read-only and the cache serializes itself.
type Service struct {
	dataset *record.Dataset
	cache   *cache
	now     func() time.Time
	logger  *slog.Logger
}

// ServiceOption configures a Service at construction time.
type ServiceOption func(*Service)

// WithClock replaces the wall clock, fixing generatedAt in tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithCacheCapacity bounds the envelope cache. Zero or negative falls back
// to DefaultCacheCapacity.
func WithCacheCapacity(n int) ServiceOption {
	return func(s *Service) {
		s.cache = newCache(n)
	}
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

// New creates a Service over the given dataset.
func New(ds *record.Dataset, opts ...ServiceOption) *Service {
	s := &Service{
		dataset: ds,
		cache:   newCache(DefaultCacheCapacity),
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build produces the envelope for the given request. Identical normalized
// requests return the cached envelope; callers must treat it as read-only.
//
// Errors come out typed: selector.NotFoundError for an unknown focus target,
// view.ErrAmbiguousTarget for a request naming more than one focus.
func (s *Service) Build(ctx context.Context, spec view.Spec) (*Envelope, error) {
	norm, mode, err := spec.Normalize()
	if err != nil {
		return nil, err
	}

	key := norm.Key()
	if env, ok := s.cache.get(key); ok {
		s.logger.DebugContext(ctx, "envelope cache hit", "mode", mode.String(), "key", key)
		return env, nil
	}

	started := s.now()
	sel, err := selector.Select(s.dataset, norm, mode)
	if err != nil {
		return nil, err
	}
	g := graph.Build(sel)
	if err := graph.CheckConservation(g); err != nil {
		// The envelope is still served; a conservation breach means the
		// source data is internally inconsistent, not that the request failed.
		s.logger.WarnContext(ctx, "flow conservation violated", "mode", mode.String(), "err", err)
	}

	env := &Envelope{
		Metadata: Metadata{
			GeneratedAt:    s.now().UTC(),
			FiscalYear:     s.dataset.FiscalYear(),
			ViewMode:       mode.String(),
			FilterSettings: norm,
			Summary:        summarize(sel),
		},
		Graph: g,
	}
	s.cache.put(key, env)
	s.logger.InfoContext(ctx, "envelope assembled",
		"mode", mode.String(),
		"nodes", len(g.Nodes),
		"links", len(g.Links),
		"elapsed", s.now().Sub(started),
	)
	return env, nil
}

// CacheStats exposes cache counters for metrics collection.
func (s *Service) CacheStats() CacheStats {
	return s.cache.stats()
}
