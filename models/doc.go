// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - EstadoRequest: nombre, numero_habitantes, capital
  - MunicipioRequest: nombre, tipo_zona, numero_habitantes, pueblo_magico, tipo, id_estado

numero_habitantes and id_estado are kept as json.RawMessage; the handlers
decide what counts as a valid number. pueblo_magico is a Flag.

# Domain Types

Rows as stored and returned by the API:

  - Estado: id_estado, nombre, numero_habitantes, capital
  - Municipio: id_municipio, nombre, tipo_zona, numero_habitantes,
    pueblo_magico, tipo, id_estado

# Enumerations

Zone types (tipo_zona):

	ZonaUrbana = "Urbana"
	ZonaRural  = "Rural"

Terrain types (tipo):

	TipoDesierto = "Desierto"
	TipoPlaya    = "Playa"
	TipoCiudad   = "Ciudad"
	TipoMontana  = "Montaña"

ParseZoneType and ParseTerrainType reject anything else.

# Errors

ErrorResponse is the body of every non-2xx response: error, and optionally
details (underlying error text) and stack (verbose mode only).
*/
package models
