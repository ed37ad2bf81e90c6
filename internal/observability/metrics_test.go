package observability

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/minimize"
)

func TestPipelineMetrics_Counters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()

	m, err := NewPipelineMetrics(reg)
	require.NoError(t, err)

	m.CommitProcessed(minimize.StatusOk)
	m.CommitProcessed(minimize.StatusOk)
	m.CommitProcessed(minimize.StatusPartial)
	m.FileExcluded(minimize.ReasonTestNotBug)
	m.RecordsEmitted(3, 5)

	assert.InDelta(t, 2, testutil.ToFloat64(m.commits.WithLabelValues("ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.commits.WithLabelValues("partial")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.excluded.WithLabelValues("test-not-bug")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.records), 0)
	assert.InDelta(t, 5, testutil.ToFloat64(m.units), 0)
}

func TestPipelineMetrics_DoubleRegistrationFails(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()

	_, err := NewPipelineMetrics(reg)
	require.NoError(t, err)

	_, err = NewPipelineMetrics(reg)
	assert.Error(t, err)
}

func TestDiagnosticsServer_HealthAndMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()

	m, err := NewPipelineMetrics(reg)
	require.NoError(t, err)

	m.CommitProcessed(minimize.StatusOk)

	srv, err := NewDiagnosticsServer("127.0.0.1:0", reg)
	require.NoError(t, err)

	t.Cleanup(func() { _ = srv.Close() })

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", srv.Addr()))
	require.NoError(t, err)

	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	metricsResp, err := http.Get(fmt.Sprintf("http://%s/metrics", srv.Addr()))
	require.NoError(t, err)

	defer metricsResp.Body.Close()

	body, err := io.ReadAll(metricsResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `minfix_commits_processed_total{status="ok"} 1`)
}
