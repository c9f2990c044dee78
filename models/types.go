package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ZoneType is the tipo_zona of a municipality.
type ZoneType string

const (
	ZonaUrbana ZoneType = "Urbana"
	ZonaRural  ZoneType = "Rural"
)

// ParseZoneType accepts only the declared zone types.
func ParseZoneType(s string) (ZoneType, bool) {
	switch z := ZoneType(s); z {
	case ZonaUrbana, ZonaRural:
		return z, true
	}
	return "", false
}

// TerrainType is the tipo of a municipality.
type TerrainType string

const (
	TipoDesierto TerrainType = "Desierto"
	TipoPlaya    TerrainType = "Playa"
	TipoCiudad   TerrainType = "Ciudad"
	TipoMontana  TerrainType = "Montaña"
)

// ParseTerrainType accepts only the declared terrain types.
func ParseTerrainType(s string) (TerrainType, bool) {
	switch tt := TerrainType(s); tt {
	case TipoDesierto, TipoPlaya, TipoCiudad, TipoMontana:
		return tt, true
	}
	return "", false
}

// Request types

// Populations and ids stay raw so handlers can tell missing, null,
// numeric strings and numbers apart.
type EstadoRequest struct {
	Nombre           string          `json:"nombre"`
	NumeroHabitantes json.RawMessage `json:"numero_habitantes"`
	Capital          string          `json:"capital"`
}

type MunicipioRequest struct {
	Nombre           string          `json:"nombre"`
	TipoZona         string          `json:"tipo_zona"`
	NumeroHabitantes json.RawMessage `json:"numero_habitantes"`
	PuebloMagico     Flag            `json:"pueblo_magico"`
	Tipo             string          `json:"tipo"`
	IDEstado         json.RawMessage `json:"id_estado"`
}

// Domain types

type Estado struct {
	ID               int64  `json:"id_estado"`
	Nombre           string `json:"nombre"`
	NumeroHabitantes int64  `json:"numero_habitantes"`
	Capital          string `json:"capital"`
}

type Municipio struct {
	ID               int64       `json:"id_municipio"`
	Nombre           string      `json:"nombre"`
	TipoZona         ZoneType    `json:"tipo_zona"`
	NumeroHabitantes int64       `json:"numero_habitantes"`
	PuebloMagico     bool        `json:"pueblo_magico"`
	Tipo             TerrainType `json:"tipo"`
	IDEstado         int64       `json:"id_estado"`
}

// Flag decodes any JSON value by truthiness: false, null, 0, "" and NaN
// are false, everything else is true. Clients send booleans, 0/1 or "on".
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*f = false
	case bytes.Equal(data, []byte("true")):
		*f = true
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = s != ""
	case data[0] == '{' || data[0] == '[':
		*f = true
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		*f = n != 0
	}
	return nil
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Stack   string `json:"stack,omitempty"`
}
