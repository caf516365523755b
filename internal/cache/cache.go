// Package cache provides the keyed read-through cache shared by the data
// fetch layer. Entries are keyed by resource name plus normalized request
// parameters and carry their own staleness window. Only the fetch path and
// the sanctioned optimistic-mutation flow write entries.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Entry is a cached fetch result. TTL 0 means the entry never goes stale
// absent explicit invalidation.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	FetchedAt time.Time       `json:"fetched_at"`
	TTL       time.Duration   `json:"ttl"`
}

// Fresh reports whether the entry is younger than its staleness window.
func (e Entry) Fresh(now time.Time) bool {
	return e.TTL == 0 || now.Sub(e.FetchedAt) < e.TTL
}

type flight struct {
	cancel context.CancelFunc
	gen    uint64
}

// Store is an in-memory keyed cache with per-entry staleness windows and
// tracking of in-flight fetches so they can be cancelled or superseded.
type Store struct {
	mu       sync.RWMutex
	entries  map[string]Entry
	inflight map[string]*flight
	gen      uint64
	log      *logrus.Logger
}

// NewStore creates an empty cache.
func NewStore(log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{
		entries:  make(map[string]Entry),
		inflight: make(map[string]*flight),
		log:      log,
	}
}

// Get unmarshals a fresh entry for key into out. It reports false when the
// entry is absent or stale.
func (s *Store) Get(key string, out any) bool {
	s.mu.RLock()
	ent, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || !ent.Fresh(time.Now()) {
		return false
	}
	if out != nil {
		if err := json.Unmarshal(ent.Data, out); err != nil {
			return false
		}
	}
	return true
}

// GetOrFetch returns cached data for key when the entry is younger than its
// staleness window; otherwise it runs fetch, stores the result keyed by key
// and returns it. A fetch superseded by CancelInFlight, or by a newer fetch
// for the same key, never writes its result into the cache.
func (s *Store) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch func(context.Context) (any, error), out any) error {
	if s.Get(key, out) {
		s.log.WithField("key", key).Debug("cache hit")
		return nil
	}
	s.log.WithField("key", key).Debug("cache miss")

	fctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.gen++
	gen := s.gen
	if prev := s.inflight[key]; prev != nil {
		prev.cancel()
	}
	s.inflight[key] = &flight{cancel: cancel, gen: gen}
	s.mu.Unlock()

	v, err := fetch(fctx)

	s.mu.Lock()
	current := s.inflight[key] != nil && s.inflight[key].gen == gen
	if current {
		delete(s.inflight, key)
	}
	s.mu.Unlock()
	cancel()

	if err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if current {
		s.mu.Lock()
		s.entries[key] = Entry{Data: data, FetchedAt: time.Now(), TTL: ttl}
		s.mu.Unlock()
	} else {
		s.log.WithField("key", key).Debug("discarding superseded fetch result")
	}
	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

// Write stores v under key with the given staleness window. Reserved for
// the fetch path and the optimistic-mutation flow.
func (s *Store) Write(key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	s.mu.Lock()
	s.entries[key] = Entry{Data: data, FetchedAt: time.Now(), TTL: ttl}
	s.mu.Unlock()
	return nil
}

// Invalidate marks the entry for key stale, forcing a fresh fetch on the
// next read. The data itself is kept until overwritten, so a rolled-back
// optimistic write stays observable through Peek.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	if ent, ok := s.entries[key]; ok {
		ent.FetchedAt = time.Time{}
		ent.TTL = -1
		s.entries[key] = ent
	}
	s.mu.Unlock()
}

// InvalidatePrefix marks every entry whose key starts with prefix stale.
// Entries under other prefixes are never affected.
func (s *Store) InvalidatePrefix(prefix string) {
	s.mu.Lock()
	for key, ent := range s.entries {
		if strings.HasPrefix(key, prefix) {
			ent.FetchedAt = time.Time{}
			ent.TTL = -1
			s.entries[key] = ent
		}
	}
	s.mu.Unlock()
}

// Peek unmarshals the entry for key into out regardless of freshness.
func (s *Store) Peek(key string, out any) bool {
	s.mu.RLock()
	ent, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if out != nil {
		if err := json.Unmarshal(ent.Data, out); err != nil {
			return false
		}
	}
	return true
}

// CancelInFlight cancels every in-flight fetch whose key starts with
// prefix. A cancelled fetch's result is discarded even if its request
// already completed; no racing response may override later writes.
func (s *Store) CancelInFlight(prefix string) {
	s.mu.Lock()
	for key, fl := range s.inflight {
		if strings.HasPrefix(key, prefix) {
			fl.cancel()
			delete(s.inflight, key)
		}
	}
	s.mu.Unlock()
}

// Snapshot copies every entry whose key starts with prefix.
func (s *Store) Snapshot(prefix string) map[string]Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(map[string]Entry)
	for key, ent := range s.entries {
		if strings.HasPrefix(key, prefix) {
			snap[key] = ent
		}
	}
	return snap
}

// Restore writes snapshotted entries back verbatim, preserving their
// original fetch times and staleness windows.
func (s *Store) Restore(snap map[string]Entry) {
	s.mu.Lock()
	for key, ent := range snap {
		s.entries[key] = ent
	}
	s.mu.Unlock()
}

// Keys lists the keys of all entries under prefix.
func (s *Store) Keys(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys
}

// Clear drops every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]Entry)
	s.mu.Unlock()
}
