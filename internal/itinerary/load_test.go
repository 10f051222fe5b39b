package itinerary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderHTTP_FetchAndConditionalReuse(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte(sampleItinerary))
	}))
	defer srv.Close()

	loader := NewLoader(t.TempDir())

	items, err := loader.Load(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// Second load sends the ETag and reuses the cached body on 304.
	items, err = loader.Load(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int32(2), hits.Load())
}

func TestLoaderHTTP_FallsBackToCacheOnServerError(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(sampleItinerary))
	}))
	defer srv.Close()

	loader := NewLoader(t.TempDir())

	_, err := loader.Load(context.Background(), srv.URL)
	require.NoError(t, err)

	fail.Store(true)
	items, err := loader.Load(context.Background(), srv.URL)
	require.NoError(t, err, "cached body keeps the calendar up")
	assert.Len(t, items, 2)
}

func TestLoaderHTTP_ErrorWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	loader := NewLoader(t.TempDir())
	_, err := loader.Load(context.Background(), srv.URL)
	assert.Error(t, err)
}
