package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestStore_ObserveAction(t *testing.T) {
	before := testutil.ToFloat64(storeActions.WithLabelValues("addLog", "memory", "error"))
	Store{}.ObserveAction("addLog", "memory", errors.New("boom"), time.Millisecond)
	after := testutil.ToFloat64(storeActions.WithLabelValues("addLog", "memory", "error"))
	require.Equal(t, before+1, after)
}

func TestInstrumentHandler_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(InstrumentHandler)
	r.Get("/cats/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	r.Handle("/metrics", Handler())

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/cats/{id}", "418"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/cats/abc", nil))
	require.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/cats/{id}", "418")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "catlog_http_requests_total"))
}
