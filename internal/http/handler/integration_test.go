package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userapi/internal/database"
	"userapi/internal/database/databasetest"
	"userapi/internal/http/middleware"
	"userapi/internal/model"
	"userapi/internal/repository"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	reg := prometheus.NewRegistry()
	prom, err := middleware.NewPrometheusMiddleware(reg)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(middleware.RequestID())
	app.Use(prom.Handler())
	app.Use(middleware.LoggerWithWriter(io.Discard, time.UTC))

	RegisterRoutes(app, Dependencies{
		Store:             database.NewSessions(databasetest.Open(t)),
		NewUserRepository: repository.NewUserRepository,
		Metrics:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string, out any) *http.Response {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestUserLifecycle(t *testing.T) {
	app := newTestApp(t)

	var alice model.User
	resp := doJSON(t, app, http.MethodPost, "/users", `{"name":"Alice"}`, &alice)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.User{ID: 1, Name: "Alice"}, alice)

	var bob model.User
	doJSON(t, app, http.MethodPost, "/users", `{"name":"Bob","email":"bob@example.com"}`, &bob)
	assert.Equal(t, int64(2), bob.ID)
	assert.Equal(t, "bob@example.com", bob.Email)

	var users []model.User
	resp = doJSON(t, app, http.MethodGet, "/users?offset=0&limit=100", "", &users)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get(TotalCountHeader))
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "Bob", users[1].Name)

	var deleted model.User
	resp = doJSON(t, app, http.MethodDelete, "/users/1", "", &deleted)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.User{ID: 1, Name: "Alice"}, deleted)

	var raw json.RawMessage
	resp = doJSON(t, app, http.MethodGet, "/users/1", "", &raw)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "null", string(raw))

	resp = doJSON(t, app, http.MethodDelete, "/users/1", "", &raw)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "null", string(raw))

	users = nil
	resp = doJSON(t, app, http.MethodGet, "/users", "", &users)
	assert.Equal(t, "1", resp.Header.Get(TotalCountHeader))
	require.Len(t, users, 1)
	assert.Equal(t, int64(2), users[0].ID)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t)

	doJSON(t, app, http.MethodGet, "/users/5", "", nil)

	req := httptest.NewRequest(http.MethodGet, middleware.MetricsPath, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{method="GET",path="/users/:id",status="200"} 1`)
	assert.NotContains(t, string(body), `path="/metrics"`)
}
