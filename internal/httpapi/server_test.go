package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muralhq/mural/internal/canvas"
	"github.com/muralhq/mural/pkg/pixelboard"
)

func setupAPI(t *testing.T) (*Server, *canvas.Service) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	t.Cleanup(mr.Close)

	client, err := pixelboard.NewClient(&redis.Options{Addr: mr.Addr()}, "test-instance")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	svc := canvas.New(client)
	return New(svc, client, ":0"), svc
}

func TestCanvasRoute(t *testing.T) {
	t.Run("returns meta and encoded pixels", func(t *testing.T) {
		api, svc := setupAPI(t)

		_, err := svc.SetPixel(context.Background(), 1, 1, "#123456", pixelboard.SourceHTTPAPI)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		api.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/canvas", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var state pixelboard.State
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
		assert.Equal(t, 64, state.Meta.Width)
		assert.Len(t, state.Meta.Palette, 17)
		assert.NotEmpty(t, state.PixelsBase64)
	})

	t.Run("lazily initializes a fresh canvas", func(t *testing.T) {
		api, _ := setupAPI(t)

		rec := httptest.NewRecorder()
		api.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/canvas", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var state pixelboard.State
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
		assert.Len(t, state.Meta.Palette, 16)
	})

	t.Run("rejects non-GET methods", func(t *testing.T) {
		api, _ := setupAPI(t)

		rec := httptest.NewRecorder()
		api.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/canvas", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestEventsRoute(t *testing.T) {
	t.Run("returns events oldest-first honoring limit", func(t *testing.T) {
		api, svc := setupAPI(t)

		for x := 0; x < 5; x++ {
			_, err := svc.SetPixel(context.Background(), x, 0, "#000", pixelboard.SourceScript)
			require.NoError(t, err)
		}

		rec := httptest.NewRecorder()
		api.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/canvas/events?limit=2", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var payload EventsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		require.Len(t, payload.Events, 2)
		assert.Equal(t, 3, payload.Events[0].X)
		assert.Equal(t, 4, payload.Events[1].X)
	})

	t.Run("empty log yields an empty array", func(t *testing.T) {
		api, _ := setupAPI(t)

		rec := httptest.NewRecorder()
		api.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/canvas/events", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"events":[]}`, rec.Body.String())
	})

	t.Run("rejects malformed limit", func(t *testing.T) {
		api, _ := setupAPI(t)

		for _, query := range []string{"limit=abc", "limit=-1", "limit=1.5"} {
			rec := httptest.NewRecorder()
			api.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/canvas/events?"+query, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code, query)
		}
	})

	t.Run("rejects non-GET methods", func(t *testing.T) {
		api, _ := setupAPI(t)

		rec := httptest.NewRecorder()
		api.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/canvas/events", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHealthzRoute(t *testing.T) {
	t.Run("healthy when Redis responds", func(t *testing.T) {
		api, _ := setupAPI(t)

		rec := httptest.NewRecorder()
		api.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var health HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
		assert.Equal(t, "healthy", health.Status)
		assert.Equal(t, "connected", health.Redis)
	})

	t.Run("unhealthy when Redis is down", func(t *testing.T) {
		mr := miniredis.NewMiniRedis()
		require.NoError(t, mr.Start())

		client, err := pixelboard.NewClient(&redis.Options{Addr: mr.Addr()}, "test-instance")
		require.NoError(t, err)
		t.Cleanup(func() { client.Close() })

		api := New(canvas.New(client), client, ":0")
		mr.Close()

		rec := httptest.NewRecorder()
		api.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var health HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
		assert.Equal(t, "unhealthy", health.Status)
	})
}
