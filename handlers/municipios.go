// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/catalogo/cliparse"
	"github.com/danielhkuo/catalogo/db"
	"github.com/danielhkuo/catalogo/middleware"
	"github.com/danielhkuo/catalogo/models"
)

type MunicipioHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewMunicipioHandler(store *db.Store, cfg cliparse.Config) *MunicipioHandler {
	return &MunicipioHandler{store: store, cfg: cfg}
}

func municipioFields(m *models.Municipio) []any {
	return []any{&m.ID, &m.Nombre, &m.TipoZona, &m.NumeroHabitantes, &m.PuebloMagico, &m.Tipo, &m.IDEstado}
}

// ListMunicipios handles GET /municipios
func (h *MunicipioHandler) ListMunicipios(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.Query(r.Context(), db.Municipios.SelectAllSQL())
	if err != nil {
		serverError(w, h.cfg, "Error al listar municipios", err)
		return
	}
	defer rows.Close()

	municipios := []models.Municipio{}
	for rows.Next() {
		var m models.Municipio
		if err := rows.Scan(municipioFields(&m)...); err != nil {
			serverError(w, h.cfg, "Error al listar municipios", err)
			return
		}
		municipios = append(municipios, m)
	}
	if err := rows.Err(); err != nil {
		serverError(w, h.cfg, "Error al listar municipios", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, municipios)
}

// municipioInput is a payload that passed validation.
type municipioInput struct {
	nombre    string
	zona      models.ZoneType
	poblacion int64
	magico    bool
	tipo      models.TerrainType
	idEstado  int64
}

func (in municipioInput) values() []any {
	return []any{in.nombre, string(in.zona), in.poblacion, in.magico, string(in.tipo), in.idEstado}
}

// rejection is a validation failure: the status and message to answer with.
type rejection struct {
	status  int
	message string
}

// validateMunicipio runs the checks shared by create and update, in order:
// required fields, enumerations, population, owning state, and the population
// ceiling set by the owning state. A non-nil error is a store failure.
func (h *MunicipioHandler) validateMunicipio(ctx context.Context, req models.MunicipioRequest) (municipioInput, *rejection, error) {
	idEstado, present, validRef := parseEstadoRef(req.IDEstado)
	if req.Nombre == "" || !present {
		return municipioInput{}, &rejection{http.StatusBadRequest, "Nombre e id_estado son requeridos"}, nil
	}

	zona, ok := models.ParseZoneType(req.TipoZona)
	if !ok {
		return municipioInput{}, &rejection{http.StatusBadRequest, `Tipo de zona inválido. Debe ser "Urbana" o "Rural"`}, nil
	}
	tipo, ok := models.ParseTerrainType(req.Tipo)
	if !ok {
		return municipioInput{}, &rejection{http.StatusBadRequest, `Tipo de municipio inválido. Debe ser "Desierto", "Playa", "Ciudad" o "Montaña"`}, nil
	}

	poblacion, ok := parseMunicipalityPopulation(req.NumeroHabitantes)
	if !ok {
		return municipioInput{}, &rejection{http.StatusBadRequest, "El número de habitantes debe ser mayor a 0"}, nil
	}

	if !validRef {
		return municipioInput{}, &rejection{http.StatusNotFound, "Estado no encontrado"}, nil
	}

	var estadoPoblacion int64
	var estadoNombre string
	err := h.store.ScanRow(ctx,
		"SELECT numero_habitantes, nombre FROM estado WHERE id_estado = $1",
		[]any{idEstado}, &estadoPoblacion, &estadoNombre)
	if errors.Is(err, db.ErrNotFound) {
		return municipioInput{}, &rejection{http.StatusNotFound, "Estado no encontrado"}, nil
	}
	if err != nil {
		return municipioInput{}, nil, err
	}

	slog.Debug("population check",
		"estado", estadoNombre,
		"estado_habitantes", estadoPoblacion,
		"municipio_habitantes", poblacion,
	)

	// Checked here only; nothing holds the state row until the write below.
	if poblacion > estadoPoblacion {
		return municipioInput{}, &rejection{http.StatusBadRequest, fmt.Sprintf(
			"El número de habitantes del municipio (%s) no puede ser mayor que el del estado \"%s\" (%s)",
			humanize.Comma(poblacion), estadoNombre, humanize.Comma(estadoPoblacion),
		)}, nil
	}

	return municipioInput{
		nombre:    req.Nombre,
		zona:      zona,
		poblacion: poblacion,
		magico:    bool(req.PuebloMagico),
		tipo:      tipo,
		idEstado:  idEstado,
	}, nil, nil
}

// CreateMunicipio handles POST /municipios
func (h *MunicipioHandler) CreateMunicipio(w http.ResponseWriter, r *http.Request) {
	var req models.MunicipioRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	slog.Debug("municipio received",
		"nombre", req.Nombre,
		"tipo_zona", req.TipoZona,
		"numero_habitantes", string(req.NumeroHabitantes),
		"pueblo_magico", bool(req.PuebloMagico),
		"tipo", req.Tipo,
		"id_estado", string(req.IDEstado),
	)

	in, rej, err := h.validateMunicipio(r.Context(), req)
	if err != nil {
		serverError(w, h.cfg, "Error al crear municipio", err)
		return
	}
	if rej != nil {
		middleware.ErrorResponse(w, rej.status, rej.message)
		return
	}

	var m models.Municipio
	if _, err := h.store.InsertReturning(r.Context(), db.Municipios, in.values(), municipioFields(&m)...); err != nil {
		serverError(w, h.cfg, "Error al crear municipio", err)
		return
	}

	slog.Info("municipio created", "id_municipio", m.ID, "id_estado", m.IDEstado)

	middleware.JSONResponse(w, http.StatusCreated, m)
}

// UpdateMunicipio handles PUT /municipios/{id}
func (h *MunicipioHandler) UpdateMunicipio(w http.ResponseWriter, r *http.Request) {
	var req models.MunicipioRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	in, rej, err := h.validateMunicipio(r.Context(), req)
	if err != nil {
		serverError(w, h.cfg, "Error al actualizar municipio", err)
		return
	}
	if rej != nil {
		middleware.ErrorResponse(w, rej.status, rej.message)
		return
	}

	id, ok := parsePathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Municipio no encontrado")
		return
	}

	var m models.Municipio
	_, err = h.store.UpdateReturning(r.Context(), db.Municipios, id, in.values(), municipioFields(&m)...)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Municipio no encontrado")
		return
	}
	if err != nil {
		serverError(w, h.cfg, "Error al actualizar municipio", err)
		return
	}

	slog.Info("municipio updated", "id_municipio", m.ID)

	middleware.JSONResponse(w, http.StatusOK, m)
}

// DeleteMunicipio handles DELETE /municipios/{id}
func (h *MunicipioHandler) DeleteMunicipio(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Municipio no encontrado")
		return
	}

	err := h.store.Delete(r.Context(), db.Municipios, id)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Municipio no encontrado")
		return
	}
	if err != nil {
		serverError(w, h.cfg, "Error al eliminar municipio", err)
		return
	}

	slog.Info("municipio deleted", "id_municipio", id)

	w.WriteHeader(http.StatusNoContent)
}
