// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ticket_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/helpdesk/internal/platform/ctxutil"
	"github.com/taibuivan/helpdesk/internal/platform/sec"
	"github.com/taibuivan/helpdesk/internal/ticket"
)

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
	mux.Route("/chamados", ticket.NewHandler(f.service).RegisterRoutes)
	return mux
}

func do(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func (f *fixture) body() string {
	return fmt.Sprintf(`{"titulo":"Printer jam","observacoes":"Paper stuck","tecnicoId":%d,"clienteId":%d}`,
		f.technician.ID, f.client.ID)
}

func TestHandler_CreateAndGet(t *testing.T) {
	f := newFixture(t)

	recorder := do(router(f, f.clientContext()), http.MethodPost, "/chamados", f.body())
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "/chamados/1", recorder.Header().Get("Location"))

	recorder = do(router(f, f.clientContext()), http.MethodGet, "/chamados/1", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, float64(0), body["prioridade"])
	assert.Equal(t, "BAIXA", body["nomePrioridade"])
	assert.Equal(t, float64(0), body["status"])
	assert.Equal(t, "ABERTO", body["nomeStatus"])
	assert.Equal(t, "Valdir Cezar", body["nomeTecnico"])
	assert.Equal(t, "Albert Einstein", body["nomeCliente"])
	assert.Nil(t, body["dataFechamento"])
	assert.Regexp(t, `^\d{2}/\d{2}/\d{4}$`, body["dataAbertura"])
}

func TestHandler_Update(t *testing.T) {
	f := newFixture(t)
	staff := &sec.SecurityContext{UserID: f.technician.ID, Roles: f.technician.Roles}

	require.Equal(t, http.StatusCreated, do(router(f, f.clientContext()), http.MethodPost, "/chamados", f.body()).Code)

	update := fmt.Sprintf(`{"prioridade":2,"status":2,"titulo":"Printer jam","observacoes":"Roller replaced","tecnicoId":%d,"clienteId":%d}`,
		f.technician.ID, f.client.ID)
	recorder := do(router(f, staff), http.MethodPut, "/chamados/1", update)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "ALTA", body["nomePrioridade"])
	assert.Equal(t, "ENCERRADO", body["nomeStatus"])
	assert.NotNil(t, body["dataFechamento"])
}

func TestHandler_RoutePolicy(t *testing.T) {
	f := newFixture(t)
	staff := &sec.SecurityContext{UserID: f.technician.ID, Roles: f.technician.Roles}
	admin := &sec.SecurityContext{UserID: 99, Roles: sec.NewRoleSet(sec.RoleAdmin)}

	tests := []struct {
		name     string
		security *sec.SecurityContext
		method   string
		path     string
		want     int
	}{
		{"get anonymous", nil, http.MethodGet, "/chamados/1", http.StatusUnauthorized},
		{"list anonymous", nil, http.MethodGet, "/chamados", http.StatusUnauthorized},
		{"list as client", f.clientContext(), http.MethodGet, "/chamados", http.StatusForbidden},
		{"list as technician", staff, http.MethodGet, "/chamados", http.StatusOK},
		{"create as technician", staff, http.MethodPost, "/chamados", http.StatusForbidden},
		{"update as client", f.clientContext(), http.MethodPut, "/chamados/1", http.StatusForbidden},
		{"delete as technician", staff, http.MethodDelete, "/chamados/1", http.StatusForbidden},
		{"delete missing as admin", admin, http.MethodDelete, "/chamados/1", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := do(router(f, tt.security), tt.method, tt.path, "")
			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}
