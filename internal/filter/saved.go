package filter

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
)

const savedFiltersFile = "filters.json"

// Save persists the state snapshot under the state directory so a later
// invocation can pick the same view back up.
func Save(dir string, s State) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(map[string]string{
		"title":      s.Title,
		"categoryId": strconv.Itoa(s.CategoryID),
		"price_min":  strconv.Itoa(s.PriceMin),
		"price_max":  strconv.Itoa(s.PriceMax),
		"sortBy":     string(s.SortBy),
		"sortOrder":  string(s.SortOrder),
		"page":       strconv.Itoa(s.Page),
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, savedFiltersFile), data, 0o600)
}

// Load reads the saved snapshot. A missing or corrupt file yields the
// default state, mirroring the tolerant URL decoding.
func Load(dir string) State {
	data, err := os.ReadFile(filepath.Join(dir, savedFiltersFile))
	if err != nil {
		return Default()
	}
	var saved map[string]string
	if err := json.Unmarshal(data, &saved); err != nil {
		return Default()
	}
	q := url.Values{}
	for k, v := range saved {
		q.Set(k, v)
	}
	return Decode(q)
}

// Clear removes the saved snapshot.
func Clear(dir string) {
	os.Remove(filepath.Join(dir, savedFiltersFile))
}

