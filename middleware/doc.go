// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /estados", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms). Every request gets an X-Request-ID, taken from the incoming
header or generated as a UUID, echoed back in the response.

# Metrics

Count and time requests per route with Prometheus:

	metrics := middleware.NewMetrics(store.DB())
	mux.HandleFunc("GET /estados", metrics.Instrument("GET /estados", handler))
	mux.Handle("GET /metrics", metrics.Handler())

Each Metrics value owns its registry, so several routers can coexist in tests.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type and X-Request-ID.

# Rate Limiting

Optional token bucket per client IP (golang.org/x/time/rate):

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiter.StartJanitor(ctx, 2*time.Minute)
	handler = limiter.Middleware(handler)

Rejected requests get 429 with a Retry-After header.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "Nombre y capital son requeridos")
	middleware.ErrorDetails(w, http.StatusInternalServerError, "Error al listar estados", err.Error(), "")

Parse JSON request bodies:

	var req models.EstadoRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used as the rate limiting key.
*/
package middleware
