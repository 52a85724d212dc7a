// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/helpdesk/internal/api"
	"github.com/taibuivan/helpdesk/internal/auth"
	"github.com/taibuivan/helpdesk/internal/person"
	"github.com/taibuivan/helpdesk/internal/platform/config"
	"github.com/taibuivan/helpdesk/internal/platform/metrics"
	"github.com/taibuivan/helpdesk/internal/platform/respond"
	"github.com/taibuivan/helpdesk/internal/platform/sec"
	"github.com/taibuivan/helpdesk/internal/ticket"
	"github.com/taibuivan/helpdesk/pkg/date"
)

const testSecret = "helpdesk-test-secret-0123456789abcdef"

type testApp struct {
	handler http.Handler
	codec   *sec.TokenCodec
	people  *person.MemoryRepository
	bill    *person.Person
	linus   *person.Person
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hasher := sec.NewBcryptHasher(bcrypt.MinCost)
	codec, err := sec.NewTokenCodec([]byte(testSecret), time.Hour)
	require.NoError(t, err)

	personRepo := person.NewMemoryRepository()
	ticketRepo := ticket.NewMemoryRepository(personRepo)
	directory := person.NewDirectory(personRepo, nil, logger)
	people := person.NewService(personRepo, ticketRepo, hasher, directory, logger)
	tickets := ticket.NewService(ticketRepo, people, logger)
	observer := metrics.New()

	app := &testApp{codec: codec, people: personRepo}
	app.bill = seed(t, personRepo, hasher, person.KindTechnician, "Bill Gates", "12345678909", "bill@mail.com",
		sec.NewRoleSet(sec.RoleAdmin, sec.RoleTecnico))
	app.linus = seed(t, personRepo, hasher, person.KindClient, "Linus Torvalds", "98765432100", "linus@mail.com",
		sec.NewRoleSet(sec.RoleCliente))

	cfg := &config.Config{
		ServerPort:         "0",
		CORSAllowedOrigins: []string{"*"},
		LoginRateLimit:     100,
	}

	verifier, err := auth.NewCredentialVerifier(directory, hasher)
	require.NoError(t, err)

	server := api.NewServer(ctx, cfg, logger,
		api.Security{Verifier: codec, Directory: directory},
		observer,
		api.Handlers{
			Liveness:    func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) },
			Readiness:   func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) },
			Login:       auth.NewHandler(verifier, codec, observer),
			Clients:     person.NewClientHandler(people),
			Technicians: person.NewTechnicianHandler(people),
			Tickets:     ticket.NewHandler(tickets),
		},
	)
	app.handler = server.Handler()
	return app
}

func seed(t *testing.T, repo *person.MemoryRepository, hasher *sec.BcryptHasher, kind person.Kind, name, cpf, email string, roles sec.RoleSet) *person.Person {
	t.Helper()

	hash, err := hasher.Hash("123")
	require.NoError(t, err)

	p := &person.Person{
		Kind:         kind,
		Name:         name,
		CPF:          cpf,
		Email:        email,
		PasswordHash: hash,
		Roles:        roles,
		CreatedAt:    date.New(2026, time.October, 1),
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func (app *testApp) do(method, path, token, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	app.handler.ServeHTTP(recorder, request)
	return recorder
}

func (app *testApp) login(t *testing.T, email string) string {
	t.Helper()

	recorder := app.do(http.MethodPost, "/login", "", `{"email":"`+email+`","senha":"123"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	token, found := strings.CutPrefix(recorder.Header().Get("Authorization"), "Bearer ")
	require.True(t, found)
	return token
}

func TestLogin_Bill(t *testing.T) {
	app := newTestApp(t)

	recorder := app.do(http.MethodPost, "/login", "", `{"email":"bill@mail.com","senha":"123"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Body.String())
	assert.Equal(t, "Authorization", recorder.Header().Get("Access-Control-Expose-Headers"))

	token, found := strings.CutPrefix(recorder.Header().Get("Authorization"), "Bearer ")
	require.True(t, found)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := app.codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "bill@mail.com", claims.Subject)
	assert.Equal(t, app.bill.ID, claims.UserID)
	assert.Equal(t, []string{"ROLE_ADMIN", "ROLE_TECNICO"}, claims.Roles)
}

func TestLogin_RejectionsAreIdentical(t *testing.T) {
	app := newTestApp(t)

	unknown := app.do(http.MethodPost, "/login", "", `{"email":"nobody@mail.com","senha":"123"}`)
	wrong := app.do(http.MethodPost, "/login", "", `{"email":"bill@mail.com","senha":"456"}`)

	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, http.StatusUnauthorized, wrong.Code)

	var unknownBody, wrongBody respond.StandardError
	require.NoError(t, json.Unmarshal(unknown.Body.Bytes(), &unknownBody))
	require.NoError(t, json.Unmarshal(wrong.Body.Bytes(), &wrongBody))

	unknownBody.Timestamp, wrongBody.Timestamp = 0, 0
	assert.Equal(t, unknownBody, wrongBody)
	assert.Equal(t, auth.RejectedMessage, wrongBody.Message)
	assert.Empty(t, wrong.Header().Get("Authorization"))
}

func TestTechnicianList_Authorization(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/tecnicos", "", "").Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/tecnicos", app.login(t, "bill@mail.com"), "").Code)
	assert.Equal(t, http.StatusForbidden, app.do(http.MethodGet, "/tecnicos", app.login(t, "linus@mail.com"), "").Code)
	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/tecnicos", "not.a.token", "").Code)
}

func TestClientCreate_IsPublic(t *testing.T) {
	app := newTestApp(t)

	recorder := app.do(http.MethodPost, "/clientes", "",
		`{"nome":"Richard Stallman","cpf":"111.444.777-35","email":"stallman@mail.com","senha":"123"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "/clientes/3", recorder.Header().Get("Location"))

	app.login(t, "stallman@mail.com")
}

func TestRoleChange_VisibleOnNextRequest(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, "linus@mail.com")

	require.Equal(t, http.StatusForbidden, app.do(http.MethodGet, "/tecnicos", token, "").Code)

	promote := app.do(http.MethodPut, "/clientes/2", app.login(t, "bill@mail.com"),
		`{"nome":"Linus Torvalds","cpf":"98765432100","email":"linus@mail.com","perfis":[0,1]}`)
	require.Equal(t, http.StatusOK, promote.Code)

	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/tecnicos", token, "").Code)
}

func TestExpiredToken_IsAnonymous(t *testing.T) {
	app := newTestApp(t)

	past := time.Now().Add(-48 * time.Hour)
	stale, err := sec.NewTokenCodec([]byte(testSecret), time.Hour, sec.WithClock(func() time.Time { return past }))
	require.NoError(t, err)

	token, err := stale.Issue("bill@mail.com", app.bill.ID, []string{"ROLE_ADMIN"})
	require.NoError(t, err)

	_, err = app.codec.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/tecnicos", token, "").Code)
}

func TestTicketFlow(t *testing.T) {
	app := newTestApp(t)
	linus := app.login(t, "linus@mail.com")
	bill := app.login(t, "bill@mail.com")

	created := app.do(http.MethodPost, "/chamados", linus,
		`{"titulo":"VPN down","observacoes":"Cannot reach the office network","tecnicoId":1}`)
	require.Equal(t, http.StatusCreated, created.Code)
	assert.Equal(t, "/chamados/1", created.Header().Get("Location"))

	list := app.do(http.MethodGet, "/chamados", bill, "")
	require.Equal(t, http.StatusOK, list.Code)

	var tickets []map[string]any
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &tickets))
	require.Len(t, tickets, 1)
	assert.Equal(t, "Linus Torvalds", tickets[0]["nomeCliente"])
	assert.Equal(t, "Bill Gates", tickets[0]["nomeTecnico"])

	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodDelete, "/clientes/2", bill, "").Code)
	assert.Equal(t, http.StatusNoContent, app.do(http.MethodDelete, "/chamados/1", bill, "").Code)
	assert.Equal(t, http.StatusNoContent, app.do(http.MethodDelete, "/clientes/2", bill, "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t)
	app.login(t, "bill@mail.com")

	recorder := app.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `helpdesk_login_attempts_total{outcome="authenticated"} 1`)
	assert.Contains(t, recorder.Body.String(), `route="/login"`)
}
