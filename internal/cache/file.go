package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// CLI invocations are short-lived, so the cache persists between runs as a
// JSON file in the state directory. Staleness windows apply identically to
// entries loaded from disk.

// LoadFile merges entries from the file at path into the store. Missing or
// corrupt files are ignored; entries already stale are dropped.
func (s *Store) LoadFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var entries map[string]Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.log.WithField("path", path).Debug("ignoring corrupt cache file")
		return
	}
	now := time.Now()
	s.mu.Lock()
	for key, ent := range entries {
		if ent.Fresh(now) {
			s.entries[key] = ent
		}
	}
	s.mu.Unlock()
}

// SaveFile writes all current entries to the file at path.
func (s *Store) SaveFile(path string) error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.entries, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
