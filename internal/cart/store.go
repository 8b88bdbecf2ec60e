// Package cart holds the order summary shown by the navbar and the summary
// panel. The summary is fetched once and afterwards only changed locally by
// quantity updates; every change replaces the summary value.
package cart

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/fjod/go_checkout/internal/domain"
)

var (
	ErrSummaryNotLoaded = errors.New("order summary not loaded")
	ErrItemNotFound     = domain.ErrItemNotFound
)

// SummaryFetcher reads the order summary from the checkout API.
type SummaryFetcher interface {
	FetchSummary(ctx context.Context) (*domain.OrderSummary, error)
}

// Listener is called with the new summary after every replacement.
type Listener func(*domain.OrderSummary)

// Store owns the order summary. Readers share the same *OrderSummary until
// the next replacement and must treat it as read-only.
type Store struct {
	fetcher SummaryFetcher
	logger  *zap.Logger
	sfg     singleflight.Group

	mu        sync.RWMutex
	summary   *domain.OrderSummary
	loading   bool
	loaded    bool
	err       error
	listeners map[int]Listener
	nextID    int
}

func NewStore(fetcher SummaryFetcher, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		fetcher:   fetcher,
		logger:    logger,
		loading:   true,
		listeners: make(map[int]Listener),
	}
}

// Load fetches the summary unless it is already loaded. Concurrent callers
// share a single request. A failed fetch leaves the summary absent and is
// returned to every waiting caller; it is not retried automatically.
func (s *Store) Load(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	_, err, _ := s.sfg.Do("summary", func() (interface{}, error) {
		s.mu.Lock()
		s.loading = true
		s.mu.Unlock()

		summary, err := s.fetcher.FetchSummary(ctx)

		s.mu.Lock()
		s.loading = false
		if err != nil {
			s.err = err
			s.mu.Unlock()
			s.logger.Warn("failed to fetch order summary", zap.Error(err))
			return nil, err
		}
		s.summary = summary
		s.loaded = true
		s.err = nil
		listeners := s.snapshotListeners()
		s.mu.Unlock()

		notify(listeners, summary)
		return nil, nil
	})
	return err
}

// UpdateQuantity applies delta to the quantity of item id, clamping at 1, and
// replaces the summary with recomputed totals.
func (s *Store) UpdateQuantity(id string, delta int) error {
	s.mu.Lock()
	if s.summary == nil {
		s.mu.Unlock()
		return ErrSummaryNotLoaded
	}
	next, err := s.summary.WithQuantityDelta(id, delta)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.summary = next
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, next)
	return nil
}

// Summary returns the current summary, or nil while loading or after a
// failed fetch.
func (s *Store) Summary() *domain.OrderSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the error of the last failed fetch.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// ItemCount is the number of units in the cart, 0 without a summary.
func (s *Store) ItemCount() int {
	return s.Summary().ItemCount()
}

// Subscribe registers fn for summary replacements and returns a function that
// removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// snapshotListeners must be called with mu held.
func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}

func notify(listeners []Listener, summary *domain.OrderSummary) {
	for _, l := range listeners {
		l(summary)
	}
}
