package discovery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/container/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAgent struct {
	mu           sync.Mutex
	registered   map[string]map[string]any
	deregistered []string
	leader       string
}

func newFakeAgent(t *testing.T) (*fakeAgent, *httptest.Server) {
	a := &fakeAgent{registered: map[string]map[string]any{}, leader: "10.0.0.1:8300"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		defer a.mu.Unlock()

		switch {
		case r.Method == http.MethodPut && r.URL.Path == "/v1/agent/service/register":
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			a.registered[body["ID"].(string)] = body
		case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/v1/agent/service/deregister/"):
			a.deregistered = append(a.deregistered, strings.TrimPrefix(r.URL.Path, "/v1/agent/service/deregister/"))
		case r.Method == http.MethodGet && r.URL.Path == "/v1/status/leader":
			_ = json.NewEncoder(w).Encode(a.leader)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return a, srv
}

type fakeContainer struct {
	handlers map[string][]types.EventHandler
}

func (f *fakeContainer) GetConfig() *config.Config                { return nil }
func (f *fakeContainer) Get(name string) (types.Interface, error) { return nil, nil }
func (f *fakeContainer) Publish(eventName string, data any)       { f.emit(eventName, data) }
func (f *fakeContainer) PublishAsync(eventName string, data any)  { f.emit(eventName, data) }
func (f *fakeContainer) Subscribe(name string, h types.EventHandler) {
	f.handlers[name] = append(f.handlers[name], h)
}

func (f *fakeContainer) emit(name string, data any) {
	for _, h := range f.handlers[name] {
		h(types.EventData{Time: time.Now(), EventType: name, Data: data})
	}
}

func consulConfig(addr string) *config.Consul {
	c := &config.Consul{Address: addr, Scheme: "http"}
	c.Discovery.Tags = []string{"lab"}
	c.Discovery.Meta = map[string]string{"env": "test"}
	c.Discovery.HealthCheck = true
	c.Discovery.CheckInterval = 10 * time.Second
	c.Discovery.Timeout = 5 * time.Second
	return c
}

func appConfig() *config.Config {
	return &config.Config{
		AppName:    "springlab",
		Management: &config.Management{Enabled: true, BasePath: "/actuator"},
	}
}

func TestConsul_RegisterOnServerStarted(t *testing.T) {
	agent, srv := newFakeAgent(t)
	c := &fakeContainer{handlers: map[string][]types.EventHandler{}}

	d := New(consulConfig(strings.TrimPrefix(srv.URL, "http://")))
	require.NoError(t, d.Init(appConfig(), c))
	assert.True(t, strings.HasPrefix(d.ServiceID(), "springlab-"))
	assert.False(t, d.IsRegistered())

	c.Publish(types.EventServerStarted, "127.0.0.1:18080")
	require.True(t, d.IsRegistered())

	agent.mu.Lock()
	reg := agent.registered[d.ServiceID()]
	agent.mu.Unlock()
	require.NotNil(t, reg)
	assert.Equal(t, "springlab", reg["Name"])
	assert.Equal(t, "127.0.0.1", reg["Address"])
	assert.EqualValues(t, 18080, reg["Port"])
	check := reg["Check"].(map[string]any)
	assert.Equal(t, "http://127.0.0.1:18080/actuator/health", check["HTTP"])
	assert.Equal(t, "10s", check["Interval"])

	assert.NoError(t, d.Health(context.Background()))

	require.NoError(t, d.Stop(context.Background()))
	assert.False(t, d.IsRegistered())
	agent.mu.Lock()
	assert.Equal(t, []string{d.ServiceID()}, agent.deregistered)
	agent.mu.Unlock()

	// nothing left to deregister
	require.NoError(t, d.Stop(context.Background()))
	agent.mu.Lock()
	assert.Len(t, agent.deregistered, 1)
	agent.mu.Unlock()
}

func TestConsul_NoCheckWithoutManagement(t *testing.T) {
	agent, srv := newFakeAgent(t)
	d := New(consulConfig(strings.TrimPrefix(srv.URL, "http://")))

	conf := appConfig()
	conf.Management.Enabled = false
	require.NoError(t, d.Init(conf, nil))
	require.NoError(t, d.Register("127.0.0.1:9000"))

	agent.mu.Lock()
	defer agent.mu.Unlock()
	assert.Nil(t, agent.registered[d.ServiceID()]["Check"])
}

func TestConsul_HealthWithoutLeader(t *testing.T) {
	agent, srv := newFakeAgent(t)
	agent.leader = ""

	d := New(consulConfig(strings.TrimPrefix(srv.URL, "http://")))
	require.NoError(t, d.Init(appConfig(), nil))
	assert.Error(t, d.Health(context.Background()))
}

func TestConsul_RegisterBeforeInit(t *testing.T) {
	assert.Error(t, New(consulConfig("127.0.0.1:1")).Register("127.0.0.1:80"))
	assert.Error(t, New(consulConfig("127.0.0.1:1")).Health(context.Background()))
}

func TestServiceAddress(t *testing.T) {
	host, port, err := serviceAddress("10.1.2.3:8080")
	require.NoError(t, err)
	assert.Equal(t, "10.1.2.3", host)
	assert.Equal(t, 8080, port)

	host, _, err = serviceAddress("[::]:8080")
	require.NoError(t, err)
	assert.NotEqual(t, "::", host)
	assert.NotEmpty(t, host)

	_, _, err = serviceAddress("nope")
	assert.Error(t, err)
}

func TestComponents(t *testing.T) {
	assert.Empty(t, Components(&config.Consul{}))
	assert.Len(t, Components(consulConfig("127.0.0.1:8500")), 1)
}
