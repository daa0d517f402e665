package venues

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/agnivade/levenshtein"
)

// Coordinates is a latitude/longitude pair for a venue.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Registry holds the known venues, loaded once per run. It is immutable
// reference data; an unknown name on lookup is a configuration error.
type Registry struct {
	locations map[string]Coordinates
}

// UnknownVenueError is returned when a venue name does not resolve. It
// carries the closest known name so callers can render a suggestion.
type UnknownVenueError struct {
	Name       string
	Suggestion string
}

func (e *UnknownVenueError) Error() string {
	if e.Suggestion == "" {
		return fmt.Sprintf("unknown venue %q", e.Name)
	}
	return fmt.Sprintf("unknown venue %q, did you mean %q?", e.Name, e.Suggestion)
}

// NewRegistry builds a registry from an explicit name -> coordinates map.
func NewRegistry(locations map[string]Coordinates) *Registry {
	copied := make(map[string]Coordinates, len(locations))
	for name, coords := range locations {
		copied[name] = coords
	}
	return &Registry{locations: copied}
}

// LoadRegistry reads venue reference data from a CSV file with the headers
// LocationName, Latitude, Longitude.
func LoadRegistry(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open venues file: %w", err)
	}
	defer f.Close()

	return ReadRegistry(f)
}

// ReadRegistry parses venue reference data from CSV.
func ReadRegistry(r io.Reader) (*Registry, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read venues header: %w", err)
	}
	if len(header) < 3 || header[0] != "LocationName" || header[1] != "Latitude" || header[2] != "Longitude" {
		return nil, fmt.Errorf("unexpected venues header %v, want [LocationName Latitude Longitude]", header)
	}

	locations := make(map[string]Coordinates)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read venues row: %w", err)
		}

		lat, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("venue %q: bad latitude %q: %w", row[0], row[1], err)
		}
		lng, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("venue %q: bad longitude %q: %w", row[0], row[2], err)
		}

		locations[row[0]] = Coordinates{Lat: lat, Lng: lng}
	}

	return &Registry{locations: locations}, nil
}

// Lookup resolves a venue name to its coordinates. Unknown names fail with
// an UnknownVenueError rather than a silent default.
func (r *Registry) Lookup(name string) (Coordinates, error) {
	coords, ok := r.locations[name]
	if !ok {
		return Coordinates{}, &UnknownVenueError{Name: name, Suggestion: r.ClosestMatch(name)}
	}
	return coords, nil
}

// Contains reports whether the venue name is known.
func (r *Registry) Contains(name string) bool {
	_, ok := r.locations[name]
	return ok
}

// Names returns all known venue names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.locations))
	for name := range r.locations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClosestMatch returns the known venue name with the smallest edit distance
// to the target, for "did you mean" suggestions. Returns "" if the registry
// is empty.
func (r *Registry) ClosestMatch(target string) string {
	best := ""
	bestDistance := -1
	for _, name := range r.Names() {
		distance := levenshtein.ComputeDistance(target, name)
		if bestDistance < 0 || distance < bestDistance {
			bestDistance = distance
			best = name
		}
	}
	return best
}
