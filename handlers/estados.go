// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/catalogo/cliparse"
	"github.com/danielhkuo/catalogo/db"
	"github.com/danielhkuo/catalogo/middleware"
	"github.com/danielhkuo/catalogo/models"
)

type EstadoHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewEstadoHandler(store *db.Store, cfg cliparse.Config) *EstadoHandler {
	return &EstadoHandler{store: store, cfg: cfg}
}

func estadoFields(e *models.Estado) []any {
	return []any{&e.ID, &e.Nombre, &e.NumeroHabitantes, &e.Capital}
}

// ListEstados handles GET /estados
func (h *EstadoHandler) ListEstados(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.Query(r.Context(), db.Estados.SelectAllSQL())
	if err != nil {
		serverError(w, h.cfg, "Error al listar estados", err)
		return
	}
	defer rows.Close()

	estados := []models.Estado{}
	for rows.Next() {
		var e models.Estado
		if err := rows.Scan(estadoFields(&e)...); err != nil {
			serverError(w, h.cfg, "Error al listar estados", err)
			return
		}
		estados = append(estados, e)
	}
	if err := rows.Err(); err != nil {
		serverError(w, h.cfg, "Error al listar estados", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, estados)
}

// validateEstado checks the payload and returns the population to store,
// or a message for a 400 response.
func validateEstado(req models.EstadoRequest) (int64, string) {
	if req.Nombre == "" || req.Capital == "" {
		return 0, "Nombre y capital son requeridos"
	}
	poblacion, ok := parseStatePopulation(req.NumeroHabitantes)
	if !ok {
		return 0, "Número de habitantes inválido"
	}
	return poblacion, ""
}

// CreateEstado handles POST /estados
func (h *EstadoHandler) CreateEstado(w http.ResponseWriter, r *http.Request) {
	var req models.EstadoRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	poblacion, msg := validateEstado(req)
	if msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	var e models.Estado
	_, err := h.store.InsertReturning(r.Context(), db.Estados,
		[]any{req.Nombre, poblacion, req.Capital}, estadoFields(&e)...)
	if err != nil {
		serverError(w, h.cfg, "Error al crear estado", err)
		return
	}

	slog.Info("estado created", "id_estado", e.ID, "nombre", e.Nombre)

	middleware.JSONResponse(w, http.StatusCreated, e)
}

// UpdateEstado handles PUT /estados/{id}
func (h *EstadoHandler) UpdateEstado(w http.ResponseWriter, r *http.Request) {
	var req models.EstadoRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	poblacion, msg := validateEstado(req)
	if msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	id, ok := parsePathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Estado no encontrado")
		return
	}

	// Existing municipalities are not re-checked against the new population.
	var e models.Estado
	_, err := h.store.UpdateReturning(r.Context(), db.Estados, id,
		[]any{req.Nombre, poblacion, req.Capital}, estadoFields(&e)...)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Estado no encontrado")
		return
	}
	if err != nil {
		serverError(w, h.cfg, "Error al actualizar estado", err)
		return
	}

	slog.Info("estado updated", "id_estado", e.ID)

	middleware.JSONResponse(w, http.StatusOK, e)
}

// DeleteEstado handles DELETE /estados/{id}
// Municipalities of the state go with it (ON DELETE CASCADE).
func (h *EstadoHandler) DeleteEstado(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Estado no encontrado")
		return
	}

	err := h.store.Delete(r.Context(), db.Estados, id)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Estado no encontrado")
		return
	}
	if err != nil {
		serverError(w, h.cfg, "Error al eliminar estado", err)
		return
	}

	slog.Info("estado deleted", "id_estado", id)

	w.WriteHeader(http.StatusNoContent)
}
