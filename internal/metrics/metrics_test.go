package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRecordsRoutePattern(t *testing.T) {
	m, err := New("newsapi-test")
	require.NoError(t, err)
	defer m.Shutdown(context.Background())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/articles/{article_id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/articles/7")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "http_server_completed_count")
	assert.Contains(t, string(body), "http_server_duration_milliseconds")
	assert.Contains(t, string(body), `http_route="/api/articles/{article_id}"`)
	assert.Contains(t, string(body), `http_status_code="418"`)
	assert.NotContains(t, string(body), "/api/articles/7")
}
