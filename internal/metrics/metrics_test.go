package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"medistock/internal/domain/ledger"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/cycles/{cycleID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/cycles/"+id, nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.HTTPRequestTotals.WithLabelValues("GET", "/cycles/{cycleID}", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPRequestInFlight))
}

func TestObserver(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.VisitCommitted("create")
	m.VisitCommitted("create")
	m.StockRejected("insufficient_stock")
	m.CycleStockChanged(ledger.Cycle{ID: "c1", Stock: []ledger.StockEntry{
		{ProductID: "p1", Quantity: 4},
		{ProductID: "p2", Quantity: 6},
	}})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.VisitsTotal.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StockRejectionsTotal.WithLabelValues("insufficient_stock")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.CycleStockUnits.WithLabelValues("c1")))

	m.CycleDeleted("c1")
	assert.Equal(t, 0, testutil.CollectAndCount(m.CycleStockUnits))

	m.AuditFinished(ledger.AuditReport{Cycles: []ledger.CycleAudit{
		{CycleID: "c1", Added: []string{"p3"}},
		{CycleID: "c2"},
	}})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuditRepairsTotal))
}
