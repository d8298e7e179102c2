package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentCountsRequests(t *testing.T) {
	m := New()
	h := m.Instrument("/login", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	for i := 0; i < 3; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/login", nil))
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues("/login", "post", "401"))
	assert.Equal(t, float64(3), got)
}

func TestCountersAndHandler(t *testing.T) {
	m := New()
	m.RecordSaved("financial_info", "insert")
	m.RecordSaved("financial_info", "update")
	m.RecordSaved("financial_info", "update")
	m.AuthFailure("invalid_token")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.recordsSaved.WithLabelValues("financial_info", "update")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.authFailures.WithLabelValues("invalid_token")))

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "finanzas_records_saved_total"))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordSaved("users", "insert")
	m.AuthFailure("x")

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	rr := httptest.NewRecorder()
	m.Instrument("/x", inner).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
