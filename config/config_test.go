package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the file search at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := SearchPaths
	SearchPaths = []string{dir}
	t.Cleanup(func() { SearchPaths = old })
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(ParseArguments(nil))
	require.NoError(t, err)

	assert.Equal(t, "springlab", cfg.AppName)
	assert.Equal(t, "release", cfg.RunMode)
	assert.Empty(t, cfg.Profiles)
	assert.Empty(t, cfg.File)
	assert.Equal(t, "console", cfg.Banner.Mode)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Address())
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Management.Enabled)
	assert.Equal(t, "/actuator", cfg.Management.BasePath)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "springlab_log", cfg.Logger.IndexName)
	assert.Equal(t, 5*time.Minute, cfg.Container.InitTimeout)
	assert.Equal(t, 4, cfg.Container.EventWorkers)
	assert.True(t, cfg.Monitor.Enabled)
	assert.False(t, cfg.Data.Database.Enabled())
	assert.False(t, cfg.Data.Redis.Enabled())
	assert.False(t, cfg.Data.MongoDB.Enabled())
	assert.False(t, cfg.Data.Kafka.Enabled())
	assert.False(t, cfg.Logger.OpenSearch.Enabled())
	assert.False(t, cfg.Logger.Meilisearch.Enabled())
	assert.False(t, cfg.Consul.Enabled())
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "application.yaml"), `
app_name: from-file
profiles:
  active: [dev]
server:
  port: 8081
  host: 127.0.0.1
`)
	writeFile(t, filepath.Join(dir, "application-dev.yaml"), `
server:
  port: 8082
logger:
  level: debug
`)

	cfg, err := Load(ParseArguments(nil))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "application.yaml"), cfg.File)
	assert.Equal(t, "from-file", cfg.AppName)
	assert.Equal(t, []string{"dev"}, cfg.Profiles)
	assert.True(t, cfg.IsProfileActive("dev"))
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8082, cfg.Server.Port, "profile file overrides application file")
	assert.Equal(t, "debug", cfg.Logger.Level)

	t.Setenv("SPRINGLAB_SERVER_PORT", "8083")
	cfg, err = Load(ParseArguments(nil))
	require.NoError(t, err)
	assert.Equal(t, 8083, cfg.Server.Port, "env overrides profile file")

	cfg, err = Load(ParseArguments([]string{"--server.port=8084"}))
	require.NoError(t, err)
	assert.Equal(t, 8084, cfg.Server.Port, "argument overrides env")
	assert.Equal(t, "127.0.0.1:8084", cfg.Address())
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.json")
	writeFile(t, path, `{"app_name": "custom", "monitor": {"enabled": false}}`)

	cfg, err := Load(ParseArguments([]string{"--config=" + path}))
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.AppName)
	assert.False(t, cfg.Monitor.Enabled)
	assert.False(t, cfg.Viper.IsSet("config"), "location option is not a property")
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	isolate(t)

	_, err := Load(ParseArguments([]string{"--config=/nonexistent/application.yaml"}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_ProfilesFromArguments(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "application-b.yaml"), "app_name: profile-b\n")

	cfg, err := Load(ParseArguments([]string{"--profiles.active=a", "--profiles.active=b"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cfg.Profiles)
	assert.Equal(t, "profile-b", cfg.AppName)
}

func TestLoad_ArbitraryArguments(t *testing.T) {
	isolate(t)

	cfg, err := Load(ParseArguments([]string{"--", "--=x", "--unknown.key=1", "--verbose", "positional"}))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"--", "--=x", "positional"}, cfg.Arguments.NonOptions)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"port out of range", []string{"--server.port=70000"}},
		{"port not a number", []string{"--server.port=abc"}},
		{"unknown run mode", []string{"--run_mode=fast"}},
		{"file output without file", []string{"--logger.output=file"}},
		{"bad base path", []string{"--management.base_path=actuator"}},
		{"unknown driver", []string{"--data.database.driver=oracle", "--data.database.source=x"}},
		{"driver without source", []string{"--data.database.driver=sqlite"}},
		{"zero workers", []string{"--container.event_workers=0"}},
		{"bad duration", []string{"--container.init_timeout=soon"}},
		{"negative memory threshold", []string{"--monitor.max_memory=-1"}},
		{"negative goroutine threshold", []string{"--monitor.max_goroutines=-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := Load(ParseArguments(tt.args))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_DataSources(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "application.yaml"), `
data:
  mongodb:
    uri: mongodb://db:27017
  neo4j:
    uri: neo4j://graph:7687
    username: neo4j
  opensearch:
    addresses: [http://os:9200]
  kafka:
    brokers: [k1:9092, k2:9092]
  rabbitmq:
    url: mq:5672
    vhost: orders
logger:
  meilisearch:
    host: http://meili:7700
`)

	cfg, err := Load(ParseArguments([]string{"--data.meilisearch.host=http://search:7700"}))
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db:27017", cfg.Data.MongoDB.URI)
	assert.Equal(t, 10*time.Second, cfg.Data.MongoDB.ConnectTimeout)
	assert.Equal(t, "neo4j", cfg.Data.Neo4j.Username)
	assert.Equal(t, []string{"http://os:9200"}, cfg.Data.OpenSearch.Addresses)
	assert.Equal(t, "http://search:7700", cfg.Data.Meilisearch.Host)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Data.Kafka.Brokers)
	assert.Equal(t, "orders", cfg.Data.RabbitMQ.Vhost)
	assert.True(t, cfg.Logger.Meilisearch.Enabled())
	assert.False(t, cfg.Logger.OpenSearch.Enabled())
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	isolate(t)
	t.Setenv("SPRINGLAB_CONSUL_DISCOVERY_TAGS", "a, b,,c")

	cfg, err := Load(ParseArguments(nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Consul.Discovery.Tags)
}

func TestWatch(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "application.yaml")
	writeFile(t, path, "server:\n  port: 9001\n")

	cfg, err := Load(ParseArguments(nil))
	require.NoError(t, err)

	reloaded := make(chan *Config, 16)
	require.NoError(t, Watch(cfg, func(next *Config, err error) {
		if err == nil {
			reloaded <- next
		}
	}))

	writeFile(t, path, "server:\n  port: 9002\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case next := <-reloaded:
			if next.Server.Port == 9002 {
				return
			}
		case <-deadline:
			t.Fatal("config change not observed")
		}
	}
}

func TestWatch_NoFile(t *testing.T) {
	isolate(t)
	cfg, err := Load(ParseArguments(nil))
	require.NoError(t, err)
	assert.ErrorIs(t, Watch(cfg, func(*Config, error) {}), ErrNoConfigFile)
}
