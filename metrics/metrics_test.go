package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandlerExposesRegisteredCollectors(t *testing.T) {
	m := New()
	m.CompileDuration.WithLabelValues("Test").Observe(0.01)
	m.BlockClones.Add(3)
	m.ActiveWorkers.Set(2)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "yulc_compile_duration_seconds")
	require.Contains(t, body, "yulc_ethereal_ir_block_clones_total 3")
	require.Contains(t, body, "yulc_project_active_workers 2")
}

func TestNewInstancesAreIndependent(t *testing.T) {
	a := New()
	b := New()
	a.BlockClones.Inc()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	b.Handler().ServeHTTP(rec, req)
	require.NotContains(t, rec.Body.String(), "yulc_ethereal_ir_block_clones_total 1")
}
