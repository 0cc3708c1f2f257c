package container

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/container/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects lifecycle calls across components
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) filter(prefix string) []string {
	var out []string
	for _, c := range r.get() {
		if len(c) > len(prefix) && c[:len(prefix)] == prefix {
			out = append(out, c[len(prefix):])
		}
	}
	return out
}

type testComponent struct {
	types.OptionalImpl

	name    string
	deps    []string
	weak    []string
	rec     *recorder
	failOn  string
	panicOn string
	block   string
	health  error
}

func (c *testComponent) Name() string    { return c.name }
func (c *testComponent) Version() string { return "1.0.0" }
func (c *testComponent) GetMetadata() types.Metadata {
	return types.Metadata{Name: c.name, Version: "1.0.0", Dependencies: c.deps, Group: "test", Type: "core"}
}
func (c *testComponent) Dependencies() []string { return c.deps }

func (c *testComponent) GetAllDependencies() []types.DependencyEntry {
	var entries []types.DependencyEntry
	for _, w := range c.weak {
		entries = append(entries, types.DependencyEntry{Name: w, Type: types.WeakDependency})
	}
	return entries
}

func (c *testComponent) step(phase string) error {
	if c.rec != nil {
		c.rec.add(phase + ":" + c.name)
	}
	if c.panicOn == phase {
		panic("boom")
	}
	if c.block == phase {
		time.Sleep(time.Second)
	}
	if c.failOn == phase {
		return errors.New(phase + " failed")
	}
	return nil
}

func (c *testComponent) PreInit() error                                      { return c.step("preinit") }
func (c *testComponent) Init(*config.Config, types.ContainerInterface) error { return c.step("init") }
func (c *testComponent) PostInit() error                                     { return c.step("postinit") }
func (c *testComponent) Start(context.Context) error                         { return c.step("start") }
func (c *testComponent) Stop(context.Context) error                          { return c.step("stop") }
func (c *testComponent) PreCleanup() error                                   { return c.step("precleanup") }
func (c *testComponent) Cleanup() error                                      { return c.step("cleanup") }
func (c *testComponent) Health(context.Context) error                        { return c.health }

func testConfig() *config.Config {
	return &config.Config{
		AppName: "test",
		Container: &config.Container{
			InitTimeout:   2 * time.Second,
			PhaseTimeout:  100 * time.Millisecond,
			HealthTimeout: 100 * time.Millisecond,
			EventWorkers:  2,
			EventQueue:    16,
		},
	}
}

func newTestContainer(t *testing.T) *Container {
	t.Helper()
	c := New(testConfig())
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c
}

func TestContainer_Empty(t *testing.T) {
	c := newTestContainer(t)
	ctx := context.Background()

	require.NoError(t, c.Refresh(ctx))
	require.NoError(t, c.Start(ctx))

	assert.Empty(t, c.Order())
	assert.Empty(t, c.List())
	assert.NotEmpty(t, c.ID())
	assert.False(t, c.StartedAt().IsZero())
	assert.True(t, c.Health(ctx).IsUp())

	require.NoError(t, c.Close(ctx))
	assert.True(t, c.IsClosed())
}

func TestContainer_Register(t *testing.T) {
	c := newTestContainer(t)

	require.NoError(t, c.Register(&testComponent{name: "a"}))
	assert.ErrorIs(t, c.Register(&testComponent{name: "a"}), ErrAlreadyRegistered)
	assert.ErrorIs(t, c.Register(&testComponent{name: "b"}, &testComponent{name: "b"}), ErrAlreadyRegistered)
	_, err := c.Get("b")
	assert.ErrorIs(t, err, ErrNotFound, "failed batch registers nothing")

	comp, err := c.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "a", comp.Name())
	assert.Equal(t, types.StatusInactive, c.Status()["a"])
	assert.Equal(t, "test", c.Metadata()["a"].Group)

	require.NoError(t, c.Refresh(context.Background()))
	assert.ErrorIs(t, c.Register(&testComponent{name: "c"}), ErrAlreadyRefreshed)
	assert.ErrorIs(t, c.Refresh(context.Background()), ErrAlreadyRefreshed)
}

func TestContainer_LifecycleOrder(t *testing.T) {
	rec := &recorder{}
	c := newTestContainer(t)
	ctx := context.Background()

	require.NoError(t, c.Register(
		&testComponent{name: "web", deps: []string{"db", "cache"}, rec: rec},
		&testComponent{name: "db", rec: rec},
		&testComponent{name: "cache", weak: []string{"db", "absent"}, rec: rec},
		&testComponent{name: "audit", rec: rec},
	))

	var ready []string
	var mu sync.Mutex
	for _, n := range []string{"web", "db", "cache", "audit"} {
		c.Subscribe(ComponentReadyEvent(n), func(e types.EventData) {
			mu.Lock()
			ready = append(ready, e.EventType)
			mu.Unlock()
		})
	}

	require.NoError(t, c.Refresh(ctx))
	assert.Equal(t, []string{"audit", "db", "cache", "web"}, c.Order())
	assert.Equal(t, []string{"audit", "db", "cache", "web"}, rec.filter("preinit:"))
	assert.Equal(t, []string{"audit", "db", "cache", "web"}, rec.filter("init:"))
	assert.Len(t, ready, 4)
	for _, s := range c.Status() {
		assert.Equal(t, types.StatusActive, s)
	}

	require.NoError(t, c.Start(ctx))
	assert.Equal(t, []string{"audit", "db", "cache", "web"}, rec.filter("start:"))

	require.NoError(t, c.Close(ctx))
	assert.Equal(t, []string{"web", "cache", "db", "audit"}, rec.filter("stop:"))
	assert.Equal(t, []string{"web", "cache", "db", "audit"}, rec.filter("cleanup:"))
	for _, s := range c.Status() {
		assert.Equal(t, types.StatusStopped, s)
	}

	calls := len(rec.get())
	require.NoError(t, c.Close(ctx))
	assert.Len(t, rec.get(), calls, "second close does nothing")
}

func TestContainer_MissingDependency(t *testing.T) {
	c := newTestContainer(t)
	require.NoError(t, c.Register(&testComponent{name: "a", deps: []string{"missing"}}))

	err := c.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrMissingDependency)
	assert.Contains(t, err.Error(), "missing")
}

func TestContainer_CyclicDependency(t *testing.T) {
	c := newTestContainer(t)
	require.NoError(t, c.Register(
		&testComponent{name: "a", deps: []string{"b"}},
		&testComponent{name: "b", deps: []string{"a"}},
		&testComponent{name: "c"},
	))

	assert.ErrorIs(t, c.Refresh(context.Background()), ErrCyclicDependency)
}

func TestContainer_InitFailureCleansUp(t *testing.T) {
	rec := &recorder{}
	c := newTestContainer(t)
	require.NoError(t, c.Register(
		&testComponent{name: "a", rec: rec},
		&testComponent{name: "b", deps: []string{"a"}, rec: rec, failOn: "init"},
		&testComponent{name: "c", deps: []string{"b"}, rec: rec},
	))

	err := c.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "component b")

	assert.Equal(t, []string{"c", "b", "a"}, rec.filter("cleanup:"))
	assert.Empty(t, rec.filter("postinit:"))
	assert.False(t, c.IsRefreshed())
	assert.Equal(t, types.StatusStopped, c.Status()["b"])
}

func TestContainer_InitPanic(t *testing.T) {
	c := newTestContainer(t)
	require.NoError(t, c.Register(&testComponent{name: "a", panicOn: "preinit"}))

	err := c.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic")
}

func TestContainer_PhaseTimeout(t *testing.T) {
	c := newTestContainer(t)
	require.NoError(t, c.Register(&testComponent{name: "slow", block: "init"}))

	assert.ErrorIs(t, c.Refresh(context.Background()), ErrInitTimeout)
}

func TestContainer_StartFailureStopsStarted(t *testing.T) {
	rec := &recorder{}
	c := newTestContainer(t)
	require.NoError(t, c.Register(
		&testComponent{name: "a", rec: rec},
		&testComponent{name: "b", deps: []string{"a"}, rec: rec, failOn: "start"},
	))
	ctx := context.Background()

	assert.ErrorIs(t, c.Start(ctx), ErrNotRefreshed)
	require.NoError(t, c.Refresh(ctx))
	require.Error(t, c.Start(ctx))
	assert.Equal(t, []string{"a"}, rec.filter("stop:"))
}

func TestContainer_ClosedRejects(t *testing.T) {
	c := newTestContainer(t)
	require.NoError(t, c.Close(context.Background()))

	assert.ErrorIs(t, c.Register(&testComponent{name: "a"}), ErrClosed)
	assert.ErrorIs(t, c.Refresh(context.Background()), ErrClosed)
}

func TestContainer_Health(t *testing.T) {
	c := newTestContainer(t)
	sick := &testComponent{name: "sick"}
	require.NoError(t, c.Register(&testComponent{name: "ok"}, sick))

	report := c.Health(context.Background())
	assert.False(t, report.IsUp(), "inactive components are down")

	require.NoError(t, c.Refresh(context.Background()))
	assert.True(t, c.Health(context.Background()).IsUp())

	sick.health = errors.New("unreachable")
	report = c.Health(context.Background())
	assert.Equal(t, HealthDown, report.Status)
	assert.Equal(t, HealthUp, report.Components["ok"].Status)
	assert.Equal(t, "unreachable", report.Components["sick"].Error)
}

func TestContainer_HealthTimeout(t *testing.T) {
	c := newTestContainer(t)
	require.NoError(t, c.Register(&blockingHealth{testComponent{name: "slow"}}))
	require.NoError(t, c.Refresh(context.Background()))

	report := c.Health(context.Background())
	assert.Equal(t, HealthDown, report.Components["slow"].Status)
}

type blockingHealth struct{ testComponent }

func (b *blockingHealth) Health(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestContainer_ExecuteWithCircuitBreaker(t *testing.T) {
	c := newTestContainer(t)
	require.NoError(t, c.Register(&testComponent{name: "a"}))

	v, err := c.ExecuteWithCircuitBreaker("a", func() (any, error) { return 1, nil })
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = c.ExecuteWithCircuitBreaker("missing", func() (any, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContainer_ManageRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := newTestContainer(t)
	require.NoError(t, c.Register(&testComponent{name: "a"}, &testComponent{name: "b", deps: []string{"a"}}))
	require.NoError(t, c.Refresh(context.Background()))

	r := gin.New()
	c.ManageRoutes(r.Group("/actuator"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/actuator/components", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Order      []string                    `json:"order"`
		Components map[string][]map[string]any `json:"components"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"a", "b"}, body.Order)
	assert.Len(t, body.Components["test"], 2)
}

func TestEventBus_PublishAsync(t *testing.T) {
	c := newTestContainer(t)

	var got atomic.Int32
	done := make(chan struct{}, 2)
	c.Subscribe("custom", func(e types.EventData) {
		assert.Equal(t, "custom", e.EventType)
		assert.Equal(t, EventSource, e.Source)
		got.Add(1)
		done <- struct{}{}
	})
	c.Subscribe("custom", func(e types.EventData) {
		done <- struct{}{}
		panic("handler panic")
	})

	c.PublishAsync("custom", 42)
	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("async handlers not run")
		}
	}

	assert.Eventually(t, func() bool {
		m := c.EventMetrics()
		return m["processed_events"] == 1 && m["failed_events"] == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), got.Load())
}

func TestEventBus_PublishAfterClose(t *testing.T) {
	c := New(testConfig())
	c.Subscribe("late", func(types.EventData) {})
	require.NoError(t, c.Close(context.Background()))

	c.PublishAsync("late", nil)
	assert.Equal(t, int64(1), c.EventMetrics()["dropped_events"])
}
