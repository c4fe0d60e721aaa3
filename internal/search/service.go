package search

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"quickfind/internal/catalog"
	"quickfind/internal/domain"
)

// Default latency bounds in milliseconds, both inclusive
const (
	DefaultMinDelay = 200
	DefaultMaxDelay = 1100
)

// Options configures a Service
type Options struct {
	MinDelay int // milliseconds
	MaxDelay int // milliseconds

	// IntN returns a value in [0, n); defaults to math/rand/v2
	IntN func(n int) int
	// Sleep waits d or until ctx is done
	Sleep func(ctx context.Context, d time.Duration) error
}

// Service answers search requests over a catalog with injected latency
type Service struct {
	store    catalog.Store
	minDelay int
	maxDelay int
	intN     func(n int) int
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewService creates a search service
func NewService(store catalog.Store, opts Options) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("search: missing catalog store")
	}
	if opts.MinDelay < 0 || opts.MaxDelay < 0 {
		return nil, fmt.Errorf("search: negative delay bounds %d..%d", opts.MinDelay, opts.MaxDelay)
	}
	if opts.MinDelay > opts.MaxDelay {
		return nil, fmt.Errorf("search: min delay %d exceeds max delay %d", opts.MinDelay, opts.MaxDelay)
	}
	s := &Service{
		store:    store,
		minDelay: opts.MinDelay,
		maxDelay: opts.MaxDelay,
		intN:     opts.IntN,
		sleep:    opts.Sleep,
	}
	if s.intN == nil {
		s.intN = rand.IntN
	}
	if s.sleep == nil {
		s.sleep = sleepContext
	}
	return s, nil
}

// Bounds returns the configured latency range in milliseconds
func (s *Service) Bounds() (int, int) {
	return s.minDelay, s.maxDelay
}

// Store returns the catalog the service scans
func (s *Service) Store() catalog.Store {
	return s.store
}

// Search waits a random delay, then returns the items matching raw.
// The response echoes raw unmodified.
func (s *Service) Search(ctx context.Context, raw string) (domain.SearchResponse, error) {
	delay := s.drawDelay()
	if err := s.sleep(ctx, time.Duration(delay)*time.Millisecond); err != nil {
		return domain.SearchResponse{}, err
	}

	resp := domain.SearchResponse{Query: raw, Results: []domain.Item{}, Delay: delay}
	if Normalize(raw) == "" {
		return resp, nil
	}

	items, err := s.store.Items(ctx)
	if err != nil {
		return domain.SearchResponse{}, fmt.Errorf("failed to load catalog: %w", err)
	}
	resp.Results = Match(items, raw)
	return resp, nil
}

func (s *Service) drawDelay() int {
	span := s.maxDelay - s.minDelay
	if span == 0 {
		return s.minDelay
	}
	return s.minDelay + s.intN(span+1)
}

// Normalize trims and case-folds a query
func Normalize(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Match returns the items whose title or description contains q, ignoring
// case, in dataset order. A blank q matches nothing and scans nothing.
func Match(items []domain.Item, q string) []domain.Item {
	needle := Normalize(q)
	matches := []domain.Item{}
	if needle == "" {
		return matches
	}
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Title), needle) ||
			strings.Contains(strings.ToLower(it.Description), needle) {
			matches = append(matches, it)
		}
	}
	return matches
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
