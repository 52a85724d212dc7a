// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/helpdesk/internal/auth"
	"github.com/taibuivan/helpdesk/internal/platform/metrics"
)

func TestInstrument_UsesRoutePattern(t *testing.T) {
	m := metrics.New()

	router := chi.NewRouter()
	router.Use(m.Instrument)
	router.Get("/clientes/{id}", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2", "3"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/clientes/"+id, nil))
	}

	body := scrape(t, m)
	assert.Contains(t, body, `helpdesk_http_requests_total{method="GET",route="/clientes/{id}",status="404"} 3`)
	assert.NotContains(t, body, `route="/clientes/1"`)
}

func TestObserveLogin(t *testing.T) {
	m := metrics.New()

	m.ObserveLogin(auth.OutcomeAuthenticated)
	m.ObserveLogin(auth.OutcomeRejected)
	m.ObserveLogin(auth.OutcomeRejected)

	count, err := testutil.GatherAndCount(m.Registry(), "helpdesk_login_attempts_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Contains(t, scrape(t, m), `helpdesk_login_attempts_total{outcome="rejected"} 2`)
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	return recorder.Body.String()
}
