// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
}

type clientLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: 15 * time.Minute,
	}
}

// Allow reports whether key may make a request now.
func (l *RateLimiter) Allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	c, ok := l.clients[key]
	if !ok {
		c = &clientLimiter{lim: rate.NewLimiter(l.rps, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	l.mu.Unlock()

	return c.lim.AllowN(now, 1)
}

// Cleanup forgets clients idle since before now minus the idle TTL.
func (l *RateLimiter) Cleanup(now time.Time) {
	cutoff := now.Add(-l.idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, k)
		}
	}
}

// StartJanitor runs Cleanup every interval until ctx is done.
func (l *RateLimiter) StartJanitor(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				l.Cleanup(now)
			}
		}
	}()
}

// Middleware rejects requests over the limit with 429 and a Retry-After hint.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(GetClientIP(r)) {
			retry := 1
			if l.rps > 0 && float64(l.rps) < 1 {
				retry = int(1/float64(l.rps) + 0.5)
			}
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			ErrorResponse(w, http.StatusTooManyRequests, "Demasiadas solicitudes")
			return
		}
		next.ServeHTTP(w, r)
	})
}
