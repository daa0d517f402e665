package travel

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/thecatthatbarks/buzzbot/pkg/venues"
)

// Cache is the persistent travel-time store. Keys are directed coordinate
// pairs ("{originLat},{originLng}_{destLat},{destLng}"), values are travel
// times in whole seconds as returned by the remote service. The file is
// read wholesale at startup and rewritten wholesale after every new entry.
type Cache struct {
	path    string
	entries map[string]int
}

// LoadCache reads the cache file at path. A missing file yields an empty
// cache; a malformed file is an error.
func LoadCache(path string) (*Cache, error) {
	cache := &Cache{
		path:    path,
		entries: make(map[string]int),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read travel cache: %w", err)
	}

	if err := yaml.Unmarshal(data, &cache.entries); err != nil {
		return nil, fmt.Errorf("failed to parse travel cache %s: %w", path, err)
	}
	if cache.entries == nil {
		cache.entries = make(map[string]int)
	}

	return cache, nil
}

// Get returns the cached travel time in seconds for a directed key.
func (c *Cache) Get(key string) (int, bool) {
	seconds, ok := c.entries[key]
	return seconds, ok
}

// Put stores a new entry and immediately persists the whole cache.
func (c *Cache) Put(key string, seconds int) error {
	c.entries[key] = seconds
	return c.persist()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

func (c *Cache) persist() error {
	if c.path == "" {
		return nil
	}

	data, err := yaml.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("failed to encode travel cache: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write travel cache %s: %w", c.path, err)
	}

	return nil
}

// PairKey builds the directed cache key for an origin/destination pair.
func PairKey(origin, destination venues.Coordinates) string {
	return coordString(origin) + "_" + coordString(destination)
}

func coordString(c venues.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}
