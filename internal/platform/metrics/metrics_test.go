package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	c := New()

	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/patients/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients/"+id, nil))
	}

	got := testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "/patients/{id}", "418"))
	assert.Equal(t, 2.0, got)
}

func TestObserveUpstream_TransportErrorLabel(t *testing.T) {
	c := New()
	c.ObserveUpstream("backend", "GET", 0, time.Millisecond)
	c.ObserveUpstream("backend", "GET", 409, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.upstreamCalls.WithLabelValues("backend", "GET", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.upstreamCalls.WithLabelValues("backend", "GET", "409")))
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.ObserveUpstream("backend", "GET", 200, time.Second)
	c.ObserveDispensation("ok")
}
