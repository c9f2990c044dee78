// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/catalogo/cliparse"
	"github.com/danielhkuo/catalogo/db"
	"github.com/danielhkuo/catalogo/handlers"
	"github.com/danielhkuo/catalogo/middleware"
)

func NewRouter(store *db.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	estadoHandler := handlers.NewEstadoHandler(store, cfg)
	municipioHandler := handlers.NewMunicipioHandler(store, cfg)

	metrics := middleware.NewMetrics(store.DB())
	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, metrics.Instrument(pattern, middleware.WithLogging(h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Estados
	handle("GET /estados", estadoHandler.ListEstados)
	handle("POST /estados", estadoHandler.CreateEstado)
	handle("PUT /estados/{id}", estadoHandler.UpdateEstado)
	handle("DELETE /estados/{id}", estadoHandler.DeleteEstado)

	// Municipios
	handle("GET /municipios", municipioHandler.ListMunicipios)
	handle("POST /municipios", municipioHandler.CreateMunicipio)
	handle("PUT /municipios/{id}", municipioHandler.UpdateMunicipio)
	handle("DELETE /municipios/{id}", municipioHandler.DeleteMunicipio)

	// Front-end: index.html at the root, other files by path
	mux.Handle("GET /", http.FileServer(http.Dir(cfg.StaticDir)))

	return mux
}
