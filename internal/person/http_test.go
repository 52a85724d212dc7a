// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package person_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/helpdesk/internal/person"
	"github.com/taibuivan/helpdesk/internal/platform/ctxutil"
	"github.com/taibuivan/helpdesk/internal/platform/respond"
	"github.com/taibuivan/helpdesk/internal/platform/sec"
)

// router mounts both collections behind a middleware that plays the part of
// the authorization gate.
func router(f *fixture, security *sec.SecurityContext) http.Handler {
	mux := chi.NewRouter()
	mux.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if security != nil {
				request = request.WithContext(ctxutil.WithSecurity(request.Context(), security))
			}
			next.ServeHTTP(writer, request)
		})
	})
	mux.Route("/clientes", person.NewClientHandler(f.service).RegisterRoutes)
	mux.Route("/tecnicos", person.NewTechnicianHandler(f.service).RegisterRoutes)
	return mux
}

func do(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, path, nil)
	} else {
		request = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

const linusJSON = `{"nome":"Linus Torvalds","cpf":"529.982.247-25","email":"linus@mail.com","senha":"123","perfis":[0]}`

var (
	adminContext  = &sec.SecurityContext{UserID: 100, Identity: "bill@mail.com", Roles: sec.NewRoleSet(sec.RoleAdmin, sec.RoleTecnico)}
	clientContext = &sec.SecurityContext{UserID: 1, Identity: "linus@mail.com", Roles: sec.NewRoleSet(sec.RoleCliente)}
)

func TestHandler_CreateIsPublic(t *testing.T) {
	f := newFixture()

	recorder := do(router(f, nil), http.MethodPost, "/clientes", linusJSON)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "/clientes/1", recorder.Header().Get("Location"))
	assert.Empty(t, recorder.Body.String())

	recorder = do(router(f, nil), http.MethodPost, "/tecnicos",
		`{"nome":"Richard Stallman","cpf":"11144477735","email":"stallman@mail.com","senha":"123"}`)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "/tecnicos/2", recorder.Header().Get("Location"))
}

func TestHandler_CreateErrors(t *testing.T) {
	f := newFixture()
	handler := router(f, nil)

	recorder := do(handler, http.MethodPost, "/clientes", `{"nome":`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = do(handler, http.MethodPost, "/clientes", `{"nome":"Linus"}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var body respond.StandardError
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Validation Error", body.Error)
	assert.Equal(t, "/clientes", body.Path)
	assert.NotEmpty(t, body.Errors)

	require.Equal(t, http.StatusCreated, do(handler, http.MethodPost, "/clientes", linusJSON).Code)

	recorder = do(handler, http.MethodPost, "/tecnicos", linusJSON)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Data Violation", body.Error)
	assert.Equal(t, person.MsgCPFTaken, body.Message)
}

func TestHandler_CreateRejectsOverlongPassword(t *testing.T) {
	f := newFixture()
	body := strings.Replace(linusJSON, `"senha":"123"`, `"senha":"`+strings.Repeat("a", 80)+`"`, 1)

	recorder := do(router(f, nil), http.MethodPost, "/clientes", body)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var response respond.StandardError
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "Validation Error", response.Error)
	require.Len(t, response.Errors, 1)
	assert.Equal(t, "senha", response.Errors[0].Field)
}

func TestHandler_Get(t *testing.T) {
	f := newFixture()
	require.Equal(t, http.StatusCreated, do(router(f, nil), http.MethodPost, "/clientes", linusJSON).Code)

	assert.Equal(t, http.StatusUnauthorized, do(router(f, nil), http.MethodGet, "/clientes/1", "").Code)

	recorder := do(router(f, clientContext), http.MethodGet, "/clientes/1", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "Linus Torvalds", body["nome"])
	assert.Equal(t, "52998224725", body["cpf"])
	assert.Equal(t, []any{float64(1)}, body["perfis"])
	assert.Regexp(t, `^\d{2}/\d{2}/\d{4}$`, body["dataCriacao"])
	assert.NotContains(t, body, "senha")

	assert.Equal(t, http.StatusNotFound, do(router(f, clientContext), http.MethodGet, "/tecnicos/1", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(router(f, clientContext), http.MethodGet, "/clientes/abc", "").Code)
}

func TestHandler_RoutePolicy(t *testing.T) {
	technicianContext := &sec.SecurityContext{UserID: 50, Roles: sec.NewRoleSet(sec.RoleTecnico)}

	tests := []struct {
		name     string
		security *sec.SecurityContext
		method   string
		path     string
		want     int
	}{
		{"list clients anonymous", nil, http.MethodGet, "/clientes", http.StatusUnauthorized},
		{"list clients as client", clientContext, http.MethodGet, "/clientes", http.StatusForbidden},
		{"list clients as technician", technicianContext, http.MethodGet, "/clientes", http.StatusOK},
		{"list technicians anonymous", nil, http.MethodGet, "/tecnicos", http.StatusUnauthorized},
		{"list technicians as technician", technicianContext, http.MethodGet, "/tecnicos", http.StatusForbidden},
		{"list technicians as admin", adminContext, http.MethodGet, "/tecnicos", http.StatusOK},
		{"delete client as technician", technicianContext, http.MethodDelete, "/clientes/1", http.StatusForbidden},
		{"update technician as client", clientContext, http.MethodPut, "/tecnicos/1", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			recorder := do(router(f, tt.security), tt.method, tt.path, "")
			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}

func TestHandler_List(t *testing.T) {
	f := newFixture()
	require.Equal(t, http.StatusCreated, do(router(f, nil), http.MethodPost, "/clientes", linusJSON).Code)

	recorder := do(router(f, adminContext), http.MethodGet, "/clientes", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "linus@mail.com", body[0]["email"])

	recorder = do(router(f, adminContext), http.MethodGet, "/tecnicos", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, recorder.Body.String())
}

func TestHandler_UpdateAndDelete(t *testing.T) {
	f := newFixture()
	require.Equal(t, http.StatusCreated, do(router(f, nil), http.MethodPost, "/clientes", linusJSON).Code)

	recorder := do(router(f, clientContext), http.MethodPut, "/clientes/1",
		`{"nome":"Linus B. Torvalds","cpf":"52998224725","email":"linus@mail.com","senha":""}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Linus B. Torvalds", body["nome"])

	other := &sec.SecurityContext{UserID: 9, Roles: sec.NewRoleSet(sec.RoleCliente)}
	recorder = do(router(f, other), http.MethodPut, "/clientes/1", linusJSON)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	assert.Equal(t, http.StatusNoContent, do(router(f, adminContext), http.MethodDelete, "/clientes/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(router(f, adminContext), http.MethodDelete, "/clientes/1", "").Code)
}
