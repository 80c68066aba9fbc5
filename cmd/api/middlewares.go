package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
	"vidly/proj/internal/services/auth"

	"golang.org/x/time/rate"
)

func (app *Application) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil && rvr != http.ErrAbortHandler {
				err, ok := rvr.(error)
				if !ok {
					err = fmt.Errorf("%v", rvr)
				}
				w.Header().Set("Connection", "close")
				app.Http.ServerError(w, r, err, "")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

type rateLimitedClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimitedClients struct {
	mu      sync.Mutex
	clients map[string]*rateLimitedClient
}

func (c *rateLimitedClients) allow(ip string, newLimiter func() *rate.Limiter) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	client, ok := c.clients[ip]
	if !ok {
		client = &rateLimitedClient{limiter: newLimiter()}
		c.clients[ip] = client
	}
	client.lastSeen = time.Now()
	return client.limiter.Allow()
}

func (c *rateLimitedClients) evictStale(ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for ip, client := range c.clients {
		if time.Since(client.lastSeen) > ttl {
			delete(c.clients, ip)
		}
	}
}

// janitor evicts idle clients every interval until done is closed.
func (c *rateLimitedClients) janitor(done <-chan struct{}, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			c.evictStale(ttl)
		}
	}
}

func (app *Application) RateLimiter(next http.Handler) http.Handler {
	const op = "middlewares.RateLimiter"
	log := app.log.With("op", op)
	clients := &rateLimitedClients{clients: make(map[string]*rateLimitedClient)}
	go clients.janitor(app.done, 5*time.Minute, 5*time.Minute)
	newLimiter := func() *rate.Limiter {
		return rate.NewLimiter(rate.Limit(app.cfg.Limiter.Rps), app.cfg.Limiter.Burst)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.cfg.Limiter.Enabled {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				app.Http.ServerError(w, r, err, "")
				return
			}
			if !clients.allow(ip, newLimiter) {
				log.Warn("rate limit exceeded", "ip", ip)
				app.Http.Response(
					w, r,
					envelop{"error": "rate limit exceeded"},
					"Can't process request see an error below.",
					http.StatusTooManyRequests,
				)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

type CtxKey string

const (
	CtxKeyUser         CtxKey = "user"
	CtxKeyInvalidToken CtxKey = "invalid_token"
)

const authTokenHeader = "x-auth-token"

// Authenticate attaches the token's claims to the request context, or
// auth.AnonymousClaims when no valid token is sent. A token that fails
// verification is flagged on the context so guarded routes can reject it;
// public routes serve the request as anonymous.
func (app *Application) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := auth.AnonymousClaims
		ctx := r.Context()
		if token := r.Header.Get(authTokenHeader); token != "" {
			verified, err := app.Services.Auth.Tokens.Verify(token)
			if err != nil {
				app.Http.setupLogPerReq(r).Info("invalid auth token", "reason", err.Error())
				ctx = context.WithValue(ctx, CtxKeyInvalidToken, true)
			} else {
				claims = verified
			}
		}
		r = r.WithContext(context.WithValue(ctx, CtxKeyUser, claims))
		next.ServeHTTP(w, r)
	})
}

func contextGetClaims(r *http.Request) *auth.Claims {
	claims, ok := r.Context().Value(CtxKeyUser).(*auth.Claims)
	if !ok || claims == nil {
		return auth.AnonymousClaims
	}
	return claims
}

func contextHasInvalidToken(r *http.Request) bool {
	invalid, _ := r.Context().Value(CtxKeyInvalidToken).(bool)
	return invalid
}

func (app *Application) requireAuthenticatedUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contextHasInvalidToken(r) {
			app.Http.Unauthorized(w, r, "Invalid token.")
			return
		}
		if contextGetClaims(r).IsAnonymous() {
			app.Http.Unauthorized(w, r, "Access denied. No token provided.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireAdmin(next http.Handler) http.Handler {
	return app.requireAuthenticatedUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !contextGetClaims(r).IsAdmin {
			app.Http.Forbidden(w, r, "Access denied.")
			return
		}
		next.ServeHTTP(w, r)
	}))
}
