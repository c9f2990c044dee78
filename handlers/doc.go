// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the catalogo API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - EstadoHandler: CRUD for states
  - MunicipioHandler: CRUD for municipalities, validated against their state

Handlers are created via constructor functions that accept *db.Store and Config:

	estadoHandler := handlers.NewEstadoHandler(store, cfg)

# Estados

	GET    /estados      → ListEstados (ordered by id_estado)
	POST   /estados      → CreateEstado (201 with the stored row)
	PUT    /estados/{id} → UpdateEstado (full replacement)
	DELETE /estados/{id} → DeleteEstado (204, municipalities go with it)

nombre and capital are required. numero_habitantes must be a non-negative
whole number, sent as a JSON number or a numeric string.

# Municipios

	GET    /municipios      → ListMunicipios
	POST   /municipios      → CreateMunicipio
	PUT    /municipios/{id} → UpdateMunicipio
	DELETE /municipios/{id} → DeleteMunicipio

Create and update validate in a fixed order and stop at the first failure:

 1. nombre and id_estado present (400)
 2. tipo_zona is Urbana or Rural (400)
 3. tipo is Desierto, Playa, Ciudad or Montaña (400)
 4. numero_habitantes is at least 1 (400)
 5. the referenced state exists (404)
 6. numero_habitantes does not exceed the state's (400)

Updating a state never re-checks its municipalities.

# Errors

Every failure answers {"error": "..."} with the Spanish message clients
display. Store failures answer 500 with details, plus a stack trace when
VerboseErrors is set. Ids that are not integers are treated as unknown
and answer 404.
*/
package handlers
