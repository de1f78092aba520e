package store

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kinitsZ/HybridAI-System/pkg/stress"
	"github.com/kinitsZ/HybridAI-System/pkg/types"
)

// Dataset is one generated and scored dataset.
type Dataset struct {
	ID        string
	Seed      int64
	Records   []types.ScoredRecord
	Summary   stress.Summary
	CreatedAt time.Time
}

// Store is a thread-safe in-memory dataset store, keyed by dataset ID.
// A background goroutine (Run) periodically evicts datasets older than the
// configured TTL.
type Store struct {
	mu    sync.RWMutex
	data  map[string]*Dataset
	ttl   time.Duration
	now   func() time.Time // injectable for deterministic tests
	newID func() string
}

// New creates a Store with the given TTL.
func New(ttl time.Duration) *Store {
	return &Store{
		data:  make(map[string]*Dataset),
		ttl:   ttl,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// TTL returns the configured retention period.
func (s *Store) TTL() time.Duration { return s.ttl }

// Add stores a new dataset built from seed and records, assigning it an ID
// and computing its summary. Callers must not modify records afterwards.
func (s *Store) Add(seed int64, records []types.ScoredRecord) *Dataset {
	ds := &Dataset{
		ID:      s.newID(),
		Seed:    seed,
		Records: records,
		Summary: stress.Summarize(records),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ds.CreatedAt = s.now()
	s.data[ds.ID] = ds
	return ds
}

// Get returns the dataset with the given ID. Expired datasets that have not
// been evicted yet are reported as missing.
func (s *Store) Get(id string) (*Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.data[id]
	if !ok || !ds.CreatedAt.After(s.now().Add(-s.ttl)) {
		return nil, false
	}
	return ds, true
}

// List returns all live datasets, oldest first.
func (s *Store) List() []*Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cutoff := s.now().Add(-s.ttl)
	out := make([]*Dataset, 0, len(s.data))
	for _, ds := range s.data {
		if ds.CreatedAt.After(cutoff) {
			out = append(out, ds)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Count returns the total number of datasets currently held, including expired ones.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Evict removes datasets whose CreatedAt is older than now minus TTL.
// It returns the number of datasets removed.
func (s *Store) Evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-s.ttl)
	removed := 0
	for id, ds := range s.data {
		if !ds.CreatedAt.After(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// Run starts the background TTL eviction loop. It ticks at half the TTL
// interval (minimum 1 second). onEvict, if non-nil, is called after each
// sweep with the number of datasets still held. Run blocks until ctx is
// cancelled.
func (s *Store) Run(ctx context.Context, onEvict func(held int)) {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.Evict(now); n > 0 {
				slog.Debug("store: evicted expired datasets", "count", n)
			}
			if onEvict != nil {
				onEvict(s.Count())
			}
		}
	}
}
