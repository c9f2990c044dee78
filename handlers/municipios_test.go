// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/catalogo/models"
	"github.com/danielhkuo/catalogo/testutil"
)

func municipioBody(nombre, zona string, poblacion any, magico any, tipo string, idEstado any) map[string]any {
	return map[string]any{
		"nombre":            nombre,
		"tipo_zona":         zona,
		"numero_habitantes": poblacion,
		"pueblo_magico":     magico,
		"tipo":              tipo,
		"id_estado":         idEstado,
	}
}

func TestCreateMunicipio(t *testing.T) {
	tests := []struct {
		name           string
		body           func(idEstado int64) any
		expectedStatus int
		expectedError  string
	}{
		{
			name: "valid municipio",
			body: func(id int64) any {
				return municipioBody("Tequila", "Rural", 42000, true, "Montaña", id)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "population equal to the state",
			body: func(id int64) any {
				return municipioBody("Todo", "Urbana", 100000, false, "Ciudad", id)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "numeric strings for population and id_estado",
			body: func(id int64) any {
				return municipioBody("Sayula", "Urbana", "34829", "si", "Ciudad", fmt.Sprint(id))
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "population with trailing text",
			body: func(id int64) any {
				return municipioBody("Ajijic", "Rural", "1200 habitantes", 1, "Playa", id)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing nombre",
			body: func(id int64) any {
				return municipioBody("", "Rural", 100, false, "Playa", id)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Nombre e id_estado son requeridos",
		},
		{
			name: "missing id_estado",
			body: func(int64) any {
				return municipioBody("Tequila", "Rural", 100, false, "Playa", nil)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Nombre e id_estado son requeridos",
		},
		{
			name: "id_estado zero",
			body: func(int64) any {
				return municipioBody("Tequila", "Rural", 100, false, "Playa", 0)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Nombre e id_estado son requeridos",
		},
		{
			name: "unknown zone",
			body: func(id int64) any {
				return municipioBody("Tequila", "Suburbana", 100, false, "Playa", id)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  `Tipo de zona inválido. Debe ser "Urbana" o "Rural"`,
		},
		{
			name: "zone is case sensitive",
			body: func(id int64) any {
				return municipioBody("Tequila", "urbana", 100, false, "Playa", id)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  `Tipo de zona inválido. Debe ser "Urbana" o "Rural"`,
		},
		{
			name: "unknown terrain",
			body: func(id int64) any {
				return municipioBody("Tequila", "Rural", 100, false, "Selva", id)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  `Tipo de municipio inválido. Debe ser "Desierto", "Playa", "Ciudad" o "Montaña"`,
		},
		{
			name: "terrain without accent",
			body: func(id int64) any {
				return municipioBody("Tequila", "Rural", 100, false, "Montana", id)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  `Tipo de municipio inválido. Debe ser "Desierto", "Playa", "Ciudad" o "Montaña"`,
		},
		{
			name: "zero population",
			body: func(id int64) any {
				return municipioBody("Tequila", "Rural", 0, false, "Playa", id)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "El número de habitantes debe ser mayor a 0",
		},
		{
			name: "negative population",
			body: func(id int64) any {
				return municipioBody("Tequila", "Rural", -10, false, "Playa", id)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "El número de habitantes debe ser mayor a 0",
		},
		{
			name: "non-numeric population",
			body: func(id int64) any {
				return municipioBody("Tequila", "Rural", "muchos", false, "Playa", id)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "El número de habitantes debe ser mayor a 0",
		},
		{
			name: "unknown estado",
			body: func(int64) any {
				return municipioBody("Tequila", "Rural", 100, false, "Playa", 9999)
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "Estado no encontrado",
		},
		{
			name: "population above the state",
			body: func(id int64) any {
				return municipioBody("Enorme", "Urbana", 100001, false, "Ciudad", id)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  `El número de habitantes del municipio (100,001) no puede ser mayor que el del estado "Jalisco" (100,000)`,
		},
		{
			name: "enumerations are checked before population",
			body: func(id int64) any {
				return municipioBody("Tequila", "Suburbana", -1, false, "Selva", id)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  `Tipo de zona inválido. Debe ser "Urbana" o "Rural"`,
		},
		{
			name: "malformed JSON",
			body: func(int64) any {
				return `{"nombre":"Tequila",`
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "JSON inválido",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.SetupTestDB(t)
			handler := NewMunicipioHandler(store, testutil.GetTestConfig())
			estado := testutil.CreateTestEstado(t, store, "Jalisco", 100000, "Guadalajara")

			w := httptest.NewRecorder()
			handler.CreateMunicipio(w, testutil.MakeRequest("POST", "/municipios", tt.body(estado.ID), nil))

			if tt.expectedError != "" {
				testutil.AssertError(t, w, tt.expectedStatus, tt.expectedError)
				if n := testutil.CountRows(t, store, "municipio"); n != 0 {
					t.Errorf("Expected no rows after rejection, got %d", n)
				}
				return
			}
			testutil.AssertStatus(t, w, tt.expectedStatus)

			var m models.Municipio
			testutil.AssertJSON(t, w, &m)
			if m.ID == 0 {
				t.Error("Expected id_municipio to be assigned")
			}
			if m.IDEstado != estado.ID {
				t.Errorf("Expected id_estado %d, got %d", estado.ID, m.IDEstado)
			}
		})
	}
}

func TestCreateMunicipioStoresNormalizedValues(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewMunicipioHandler(store, testutil.GetTestConfig())
	estado := testutil.CreateTestEstado(t, store, "Jalisco", 100000, "Guadalajara")

	w := httptest.NewRecorder()
	body := municipioBody("Ajijic", "Rural", "1200 habitantes", "si", "Playa", fmt.Sprint(estado.ID))
	handler.CreateMunicipio(w, testutil.MakeRequest("POST", "/municipios", body, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var m models.Municipio
	testutil.AssertJSON(t, w, &m)

	if m.NumeroHabitantes != 1200 {
		t.Errorf("Expected numero_habitantes 1200, got %d", m.NumeroHabitantes)
	}
	if !m.PuebloMagico {
		t.Error("Expected pueblo_magico true for a non-empty string")
	}
	if m.TipoZona != models.ZonaRural || m.Tipo != models.TipoPlaya {
		t.Errorf("Unexpected enumerations: %q %q", m.TipoZona, m.Tipo)
	}
}

func TestCreateMunicipioCeilingNamesEstadoVerbatim(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewMunicipioHandler(store, testutil.GetTestConfig())
	estado := testutil.CreateTestEstado(t, store, `Baja California "Sur"`, 798447, "La Paz")

	w := httptest.NewRecorder()
	body := municipioBody("Los Cabos", "Urbana", 1000000, false, "Playa", estado.ID)
	handler.CreateMunicipio(w, testutil.MakeRequest("POST", "/municipios", body, nil))

	testutil.AssertError(t, w, http.StatusBadRequest,
		`El número de habitantes del municipio (1,000,000) no puede ser mayor que el del estado "Baja California "Sur"" (798,447)`)
}

func TestListMunicipios(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewMunicipioHandler(store, testutil.GetTestConfig())

	jalisco := testutil.CreateTestEstado(t, store, "Jalisco", 8348151, "Guadalajara")
	sonora := testutil.CreateTestEstado(t, store, "Sonora", 2944840, "Hermosillo")
	testutil.CreateTestMunicipio(t, store, jalisco.ID, "Tequila", 42000, true)
	testutil.CreateTestMunicipio(t, store, sonora.ID, "Álamos", 25000, true)
	testutil.CreateTestMunicipio(t, store, jalisco.ID, "Zapopan", 1476491, false)

	w := httptest.NewRecorder()
	handler.ListMunicipios(w, testutil.MakeRequest("GET", "/municipios", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var municipios []models.Municipio
	testutil.AssertJSON(t, w, &municipios)

	if len(municipios) != 3 {
		t.Fatalf("Expected 3 municipios, got %d", len(municipios))
	}
	want := []string{"Tequila", "Álamos", "Zapopan"}
	for i, m := range municipios {
		if m.Nombre != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], m.Nombre)
		}
	}
	if municipios[1].IDEstado != sonora.ID {
		t.Errorf("Expected Álamos in estado %d, got %d", sonora.ID, municipios[1].IDEstado)
	}
	if municipios[2].PuebloMagico {
		t.Error("Expected Zapopan not to be a pueblo mágico")
	}
}

func TestUpdateMunicipio(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewMunicipioHandler(store, testutil.GetTestConfig())

	jalisco := testutil.CreateTestEstado(t, store, "Jalisco", 100000, "Guadalajara")
	colima := testutil.CreateTestEstado(t, store, "Colima", 5000, "Colima")
	municipio := testutil.CreateTestMunicipio(t, store, jalisco.ID, "Tequila", 4000, false)
	id := pathID(municipio.ID)

	put := func(id string, body any) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("PUT", "/municipios/"+id, body, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.UpdateMunicipio(w, req)
		return w
	}

	t.Run("moves to another estado", func(t *testing.T) {
		w := put(id, municipioBody("Tequila", "Rural", 4500, true, "Montaña", colima.ID))
		testutil.AssertStatus(t, w, http.StatusOK)

		var m models.Municipio
		testutil.AssertJSON(t, w, &m)
		if m.ID != municipio.ID || m.IDEstado != colima.ID || !m.PuebloMagico || m.Tipo != models.TipoMontana {
			t.Errorf("Unexpected updated municipio: %+v", m)
		}
	})

	t.Run("checked against the new estado", func(t *testing.T) {
		w := put(id, municipioBody("Tequila", "Rural", 6000, true, "Montaña", colima.ID))
		testutil.AssertError(t, w, http.StatusBadRequest,
			`El número de habitantes del municipio (6,000) no puede ser mayor que el del estado "Colima" (5,000)`)
	})

	t.Run("unknown estado", func(t *testing.T) {
		w := put(id, municipioBody("Tequila", "Rural", 10, true, "Montaña", 9999))
		testutil.AssertError(t, w, http.StatusNotFound, "Estado no encontrado")
	})

	t.Run("non-numeric id_estado", func(t *testing.T) {
		w := put(id, municipioBody("Tequila", "Rural", 10, true, "Montaña", "abc"))
		testutil.AssertError(t, w, http.StatusNotFound, "Estado no encontrado")
	})

	t.Run("unknown municipio", func(t *testing.T) {
		w := put("9999", municipioBody("Tequila", "Rural", 10, true, "Montaña", jalisco.ID))
		testutil.AssertError(t, w, http.StatusNotFound, "Municipio no encontrado")
	})

	t.Run("validation runs before lookup", func(t *testing.T) {
		w := put("9999", municipioBody("Tequila", "Suburbana", 10, true, "Montaña", jalisco.ID))
		testutil.AssertError(t, w, http.StatusBadRequest, `Tipo de zona inválido. Debe ser "Urbana" o "Rural"`)
	})
}

func TestDeleteMunicipio(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewMunicipioHandler(store, testutil.GetTestConfig())

	estado := testutil.CreateTestEstado(t, store, "Jalisco", 100000, "Guadalajara")
	municipio := testutil.CreateTestMunicipio(t, store, estado.ID, "Tequila", 4000, true)
	id := pathID(municipio.ID)

	del := func(id string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("DELETE", "/municipios/"+id, nil, nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.DeleteMunicipio(w, req)
		return w
	}

	w := del(id)
	testutil.AssertStatus(t, w, http.StatusNoContent)
	if n := testutil.CountRows(t, store, "municipio"); n != 0 {
		t.Errorf("Expected municipio removed, %d left", n)
	}
	if n := testutil.CountRows(t, store, "estado"); n != 1 {
		t.Errorf("Expected estado kept, got %d rows", n)
	}

	testutil.AssertError(t, del(id), http.StatusNotFound, "Municipio no encontrado")
	testutil.AssertError(t, del("abc"), http.StatusNotFound, "Municipio no encontrado")
}
