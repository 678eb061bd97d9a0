package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("salon", reg)

	m.IncBookingCommit(OutcomeCommitted)
	m.IncBookingCommit(OutcomeConflict)
	m.IncBookingCommit(OutcomeCommitted)
	m.IncFit(OutcomeNoAvailability)
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/days", http.StatusOK, 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookings.WithLabelValues(OutcomeCommitted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookings.WithLabelValues(OutcomeConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fits.WithLabelValues(OutcomeNoAvailability)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/api/v1/days", "200")))
}

func TestMetricsRegisterTwiceInDifferentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewWithRegisterer("salon", prometheus.NewRegistry())
		NewWithRegisterer("salon", prometheus.NewRegistry())
	})
}
