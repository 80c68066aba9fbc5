package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"vidly/proj/internal/services/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func requestWithClaims(claims *auth.Claims) *http.Request {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	return request.WithContext(context.WithValue(request.Context(), CtxKeyUser, claims))
}

func TestAuthenticate(t *testing.T) {
	env := NewTestApplication(t)
	var got *auth.Claims
	next := env.app.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = contextGetClaims(r)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("no token", func(t *testing.T) {
		got = nil
		recorder := httptest.NewRecorder()
		next.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Same(t, auth.AnonymousClaims, got)
	})
	t.Run("valid token", func(t *testing.T) {
		got = nil
		token := env.token(t, true)
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(authTokenHeader, token)
		recorder := httptest.NewRecorder()
		next.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
		require.NotNil(t, got)
		assert.False(t, got.IsAnonymous())
		assert.True(t, got.IsAdmin)
	})
	t.Run("invalid token", func(t *testing.T) {
		got = nil
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(authTokenHeader, "not-a-token")
		recorder := httptest.NewRecorder()
		next.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Same(t, auth.AnonymousClaims, got)
	})
}

func TestRequireAuthenticatedUser(t *testing.T) {
	env := NewTestApplication(t)
	handler := env.app.requireAuthenticatedUser(http.HandlerFunc(okHandler))
	t.Run("authenticated", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, requestWithClaims(&auth.Claims{UserID: uuid.New()}))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("anonymous", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, requestWithClaims(auth.AnonymousClaims))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
	t.Run("invalid token", func(t *testing.T) {
		request := requestWithClaims(auth.AnonymousClaims)
		request = request.WithContext(context.WithValue(request.Context(), CtxKeyInvalidToken, true))
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "Invalid token.", decodeResponse(t, recorder).Message)
	})
	t.Run("no claims", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	env := NewTestApplication(t)
	handler := env.app.requireAdmin(http.HandlerFunc(okHandler))
	testCases := []struct {
		name   string
		claims *auth.Claims
		want   int
	}{
		{"anonymous", auth.AnonymousClaims, http.StatusUnauthorized},
		{"regular user", &auth.Claims{UserID: uuid.New()}, http.StatusForbidden},
		{"admin", &auth.Claims{UserID: uuid.New(), IsAdmin: true}, http.StatusOK},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, requestWithClaims(tc.claims))
			assert.Equal(t, tc.want, recorder.Code)
		})
	}
}

func TestRecoverer(t *testing.T) {
	env := NewTestApplication(t)
	handler := env.app.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.False(t, decodeResponse(t, recorder).Success)
}

func TestRateLimiter(t *testing.T) {
	env := NewTestApplication(t)
	env.app.cfg.Limiter.Enabled = true
	env.app.cfg.Limiter.Rps = 1
	env.app.cfg.Limiter.Burst = 1
	handler := env.app.RateLimiter(http.HandlerFunc(okHandler))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
}

func TestRateLimiterJanitor(t *testing.T) {
	clients := &rateLimitedClients{clients: map[string]*rateLimitedClient{
		"stale": {limiter: rate.NewLimiter(1, 1), lastSeen: time.Now().Add(-time.Hour)},
		"fresh": {limiter: rate.NewLimiter(1, 1), lastSeen: time.Now()},
	}}
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		clients.janitor(done, time.Millisecond, time.Minute)
		close(stopped)
	}()

	assert.Eventually(t, func() bool {
		clients.mu.Lock()
		defer clients.mu.Unlock()
		_, stale := clients.clients["stale"]
		return !stale
	}, time.Second, time.Millisecond)

	close(done)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after done was closed")
	}
	assert.Contains(t, clients.clients, "fresh")
}
