package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"vidly/proj/internal/config"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/lib/logger"
	"vidly/proj/internal/services"
	"vidly/proj/internal/storage/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app     *Application
	store   *memory.Storage
	handler http.Handler
	clock   time.Time
}

func NewTestApplication(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{
		AppSecret: "test-secret",
		Workers:   config.Workers{Count: 1, QueueSize: 10},
	}
	env := &testEnv{store: memory.New(), clock: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	env.app = NewApplication(cfg, logger.Discard(), services.FromMemory(env.store))
	env.app.Services.Rentals.WithClock(func() time.Time { return env.clock })
	env.handler = env.app.routes()
	t.Cleanup(env.app.Close)
	return env
}

func (e *testEnv) token(t *testing.T, isAdmin bool) string {
	t.Helper()
	token, err := e.app.Services.Auth.Tokens.Issue(&models.User{ID: uuid.New(), IsAdmin: isAdmin})
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(authTokenHeader, token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) seedCustomer(t *testing.T) *models.Customer {
	t.Helper()
	customer, err := e.store.Customers.Insert(context.Background(), &models.Customer{Name: "12345", Phone: "12345"})
	require.NoError(t, err)
	return customer
}

func (e *testEnv) seedGenre(t *testing.T, name string) *models.Genre {
	t.Helper()
	genre, err := e.store.Genres.Insert(context.Background(), name)
	require.NoError(t, err)
	return genre
}

func (e *testEnv) seedMovie(t *testing.T, title string, stock int, rate float64) *models.Movie {
	t.Helper()
	genre := e.seedGenre(t, "genre-"+title)
	movie, err := e.store.Movies.Insert(context.Background(), &models.Movie{
		Title:           title,
		Genre:           genre.Snapshot(),
		NumberInStock:   stock,
		DailyRentalRate: rate,
	})
	require.NoError(t, err)
	return movie
}

func (e *testEnv) stock(t *testing.T, movieID uuid.UUID) int {
	t.Helper()
	movie, err := e.store.Movies.Get(context.Background(), movieID)
	require.NoError(t, err)
	return movie.NumberInStock
}

type testResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) testResponse {
	t.Helper()
	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}
