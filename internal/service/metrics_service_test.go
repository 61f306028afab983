package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teacher-admin-api/internal/models"
)

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()
	m.RecordMutation("add_teacher", 3)
	m.RecordMutation("add_teacher", 4)
	m.ObservePersist(time.Millisecond, nil)
	m.ObservePersist(time.Millisecond, errors.New("boom"))
	m.RecordSlotTransition("", models.SlotAvailable)
	m.RecordSlotTransition(models.SlotAvailable, models.SlotBooked)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.mutations.WithLabelValues("add_teacher")))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.rosterSize))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.persistFailures))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.slotTransitions.WithLabelValues("empty", "available")))

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "roster_mutations_total")
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.RecordMutation("noop", 1)
	m.ObservePersist(time.Second, nil)
	m.RecordSlotTransition(models.SlotBooked, models.SlotUnavailable)
	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
