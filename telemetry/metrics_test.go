package telemetry

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsObserve(t *testing.T) {
	m := NewMetrics()

	m.ObserveTick(12, 40, 90)
	m.ObserveGeneration(3, 201)
	m.ObserveGeneration(4, 57)
	m.ObserveSaves(5, 1)

	if got := testutil.ToFloat64(m.Alive); got != 12 {
		t.Errorf("alive = %v, want 12", got)
	}
	if got := testutil.ToFloat64(m.HighScore); got != 90 {
		t.Errorf("high score = %v, want 90", got)
	}
	if got := testutil.ToFloat64(m.Generation); got != 4 {
		t.Errorf("generation = %v, want 4", got)
	}
	if got := testutil.ToFloat64(m.GenerationsTotal); got != 2 {
		t.Errorf("generations total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.SavesTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("failed saves = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.GenerationTicks); n != 1 {
		t.Errorf("histogram series = %d, want 1", n)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveTick(1, 2, 3)
	m.ObserveGeneration(1, 1)
	m.ObserveSaves(1, 0)
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.ObserveGeneration(7, 100)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), "snakevo_generation 7") {
		t.Errorf("metrics output missing generation gauge:\n%s", body)
	}
}
