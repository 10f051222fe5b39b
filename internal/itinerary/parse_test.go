package itinerary

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcal/internal/model"
)

const sampleItinerary = `[
	{
		"type": "marker",
		"date": "2026-08-03T08:00:00",
		"timezone": "Europe/Paris",
		"title": "Salida del vuelo",
		"color": "red"
	},
	{
		"type": "event",
		"start": "2026-08-04T09:30:00",
		"end": "2026-08-04T12:00:00",
		"timezone": "Europe/Paris",
		"title": "Museo del Louvre",
		"color": "purple",
		"coordinates": {"lat": 48.8606, "lng": 2.3376}
	}
]`

func TestParseItems(t *testing.T) {
	items, err := ParseItems([]byte(sampleItinerary))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, model.TypeMarker, items[0].Type)
	assert.Equal(t, "Salida del vuelo", items[0].Title)
	assert.Equal(t, model.TypeEvent, items[1].Type)
	require.NotNil(t, items[1].Coordinates)
}

func TestParseItems_SkipsBadRecords(t *testing.T) {
	payload := `[
		{"type": "marker", "date": "2026-08-03T08:00:00", "timezone": "Europe/Paris", "title": "ok"},
		{"type": "reminder", "timezone": "Europe/Paris", "title": "unknown tag"},
		{"type": "event", "end": "2026-08-04T12:00:00", "timezone": "Europe/Paris", "title": "no start"},
		{"type": "event", "start": "2026-08-05T10:00:00", "end": "2026-08-05T11:00:00", "timezone": "Europe/London", "title": "ok too"}
	]`

	items, err := ParseItems([]byte(payload))
	require.NoError(t, err)
	require.Len(t, items, 2, "bad records are skipped, not fatal")
	assert.Equal(t, "ok", items[0].Title)
	assert.Equal(t, "ok too", items[1].Title)
}

func TestParseItems_Errors(t *testing.T) {
	_, err := ParseItems(nil)
	assert.Error(t, err, "empty body")

	_, err = ParseItems([]byte(`{"not": "an array"}`))
	assert.Error(t, err, "top-level document must be an array")
}

func TestLoaderFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleItinerary), 0o600))

	loader := NewLoader(filepath.Join(dir, "cache"))
	items, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestLoaderMissingFile(t *testing.T) {
	loader := NewLoader(t.TempDir())
	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	_, err = loader.Load(context.Background(), "")
	assert.Error(t, err)
}
