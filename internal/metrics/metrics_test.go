package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountersAndHandler(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Ratings.Inc()
	m.Ratings.Inc()
	m.Reassignments.WithLabelValues(OutcomeLinked).Inc()
	m.MutationFailures.WithLabelValues("rate").Inc()
	m.ObserveRecompute(time.Now())

	if got := testutil.ToFloat64(m.Ratings); got != 2 {
		t.Errorf("ratings: expected 2, got %v", got)
	}
	if got := testutil.ToFloat64(m.Reassignments.WithLabelValues(OutcomeLinked)); got != 1 {
		t.Errorf("reassignments: expected 1, got %v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, name := range []string{
		"bithub_ratings_total 2",
		`bithub_mutation_failures_total{op="rate"} 1`,
		"bithub_board_recompute_seconds_count 1",
	} {
		if !strings.Contains(string(body), name) {
			t.Errorf("expected %q in exposition output", name)
		}
	}
}
