package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContainer struct{}

func (fakeContainer) Status() map[string]string {
	return map[string]string{"db": "active"}
}

func (fakeContainer) EventMetrics() map[string]int64 {
	return map[string]int64{"processed_events": 3, "last_event_time": 99}
}

func TestMetrics_ObserveHTTP(t *testing.T) {
	m := New()
	m.ObserveHTTP("GET", "/actuator/health", 200, 10*time.Millisecond)
	m.ObserveHTTP("GET", "/actuator/health", 200, 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/actuator/health", "200")))
}

func TestMetrics_SetState(t *testing.T) {
	m := New()
	m.SetState("starting")
	m.SetState("ready")

	assert.Equal(t, 1, testutil.CollectAndCount(m.ApplicationStatus))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ApplicationStatus.WithLabelValues("ready")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	require.NoError(t, m.RegisterContainer(fakeContainer{}))
	m.StartupDuration.Set(1.5)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `springlab_container_component_status{component="db",status="active"} 1`)
	assert.Contains(t, text, `springlab_container_events{kind="processed_events"} 3`)
	assert.NotContains(t, text, "last_event_time")
	assert.Contains(t, text, "springlab_application_startup_seconds 1.5")
	assert.True(t, strings.Contains(text, "go_goroutines"))
}
