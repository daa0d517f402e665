package venues

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const venuesCSV = `LocationName,Latitude,Longitude
Peffermill,55.929,-3.151
Meggetland,55.929,-3.231
Goldenacre,55.972,-3.203
`

func TestReadRegistry(t *testing.T) {
	registry, err := ReadRegistry(strings.NewReader(venuesCSV))
	require.NoError(t, err)

	coords, err := registry.Lookup("Peffermill")
	require.NoError(t, err)
	assert.Equal(t, Coordinates{Lat: 55.929, Lng: -3.151}, coords)

	assert.Equal(t, []string{"Goldenacre", "Meggetland", "Peffermill"}, registry.Names())
}

func TestReadRegistry_RejectsBadHeader(t *testing.T) {
	_, err := ReadRegistry(strings.NewReader("Name,Lat,Lng\nPeffermill,55.9,-3.1\n"))
	assert.Error(t, err)
}

func TestReadRegistry_RejectsBadCoordinates(t *testing.T) {
	_, err := ReadRegistry(strings.NewReader("LocationName,Latitude,Longitude\nPeffermill,north,-3.1\n"))
	assert.Error(t, err)
}

func TestLookup_UnknownVenueSuggestsClosest(t *testing.T) {
	registry, err := ReadRegistry(strings.NewReader(venuesCSV))
	require.NoError(t, err)

	_, err = registry.Lookup("Pefermill")
	require.Error(t, err)

	var unknownErr *UnknownVenueError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "Pefermill", unknownErr.Name)
	assert.Equal(t, "Peffermill", unknownErr.Suggestion)
	assert.Contains(t, err.Error(), "did you mean")
}

func TestClosestMatch_EmptyRegistry(t *testing.T) {
	registry := NewRegistry(nil)
	assert.Equal(t, "", registry.ClosestMatch("Peffermill"))
}
