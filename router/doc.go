// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the catalogo API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cfg)

# Endpoints

Operations:

	GET /health  - Liveness, answers OK
	GET /metrics - Prometheus exposition

Estados:

	GET    /estados      - List states
	POST   /estados      - Create state
	PUT    /estados/{id} - Replace state
	DELETE /estados/{id} - Delete state and its municipalities

Municipios:

	GET    /municipios      - List municipalities
	POST   /municipios      - Create municipality
	PUT    /municipios/{id} - Replace municipality
	DELETE /municipios/{id} - Delete municipality

Any other GET is served from cfg.StaticDir, with index.html at /.

# Instrumentation

Resource routes are wrapped with request logging and with Prometheus
counters labelled by route pattern. Each router owns its metrics registry.
*/
package router
