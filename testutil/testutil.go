// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/catalogo/cliparse"
	"github.com/danielhkuo/catalogo/db"
	"github.com/danielhkuo/catalogo/models"
)

// TestDBURL opens a private in-memory SQLite database per store.
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh test database with the full schema.
// The store is closed when the test ends.
func SetupTestDB(t *testing.T) *db.Store {
	t.Helper()

	ctx := context.Background()
	store, err := db.Open(ctx, cliparse.DefaultDatabaseType, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := db.CreateSchema(ctx, store); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3000,
		DatabaseURL:    TestDBURL,
		DatabaseType:   cliparse.DefaultDatabaseType,
		StaticDir:      cliparse.DefaultStaticDir,
		LogFormat:      "json",
		RateLimitBurst: cliparse.DefaultRateLimitBurst,
	}
}

// CreateTestEstado inserts a state directly and returns it
func CreateTestEstado(t *testing.T, store *db.Store, nombre string, poblacion int64, capital string) models.Estado {
	t.Helper()

	e := models.Estado{}
	_, err := store.InsertReturning(context.Background(), db.Estados,
		[]any{nombre, poblacion, capital},
		&e.ID, &e.Nombre, &e.NumeroHabitantes, &e.Capital)
	if err != nil {
		t.Fatalf("Failed to create test estado: %v", err)
	}

	return e
}

// CreateTestMunicipio inserts a municipality of a Ciudad terrain in an urban
// zone and returns it
func CreateTestMunicipio(t *testing.T, store *db.Store, idEstado int64, nombre string, poblacion int64, puebloMagico bool) models.Municipio {
	t.Helper()

	m := models.Municipio{}
	_, err := store.InsertReturning(context.Background(), db.Municipios,
		[]any{nombre, string(models.ZonaUrbana), poblacion, puebloMagico, string(models.TipoCiudad), idEstado},
		&m.ID, &m.Nombre, &m.TipoZona, &m.NumeroHabitantes, &m.PuebloMagico, &m.Tipo, &m.IDEstado)
	if err != nil {
		t.Fatalf("Failed to create test municipio: %v", err)
	}

	return m
}

// CountRows returns the number of rows in table
func CountRows(t *testing.T, store *db.Store, table string) int {
	t.Helper()

	var n int
	if err := store.ScanRow(context.Background(), "SELECT COUNT(*) FROM "+table, nil, &n); err != nil {
		t.Fatalf("Failed to count %s rows: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		// Raw payloads, for bodies a struct cannot express
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(b)))
		req.Header.Set("Content-Type", "application/json")
	default:
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertError checks the status and the error message of a failed request
func AssertError(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	AssertStatus(t, w, status)

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error != message {
		t.Errorf("Expected error %q, got %q", message, resp.Error)
	}
}
