package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/ctxutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_ContextFields(t *testing.T) {
	l := NewLogger()
	cleanup, err := l.Init(&config.Logger{Level: "debug", Format: "json", Output: "stdout"})
	require.NoError(t, err)
	defer cleanup()

	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.SetVersion("1.2.3")

	ctx := ctxutil.SetTraceID(context.Background(), "abc")
	l.Infof(ctx, "hello %s", "world")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello world", entry["msg"])
	assert.Equal(t, "abc", entry[TraceKey])
	assert.Equal(t, "1.2.3", entry[VersionKey])
	assert.Equal(t, "info", entry["level"])
}

func TestLogger_Level(t *testing.T) {
	l := NewLogger()
	_, err := l.Init(&config.Logger{Level: "warn", Format: "text", Output: "stdout"})
	require.NoError(t, err)

	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Info(context.Background(), "hidden")
	l.Warn(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger().Init(&config.Logger{Level: "loud"})
	assert.Error(t, err)
}

func TestLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	l := NewLogger()
	cleanup, err := l.Init(&config.Logger{Level: "info", Format: "text", Output: "file", OutputFile: path})
	require.NoError(t, err)

	l.Info(context.Background(), "to file")
	cleanup()
	cleanup()

	data, err := os.ReadFile(l.logFileName(time.Now()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.True(t, strings.HasSuffix(l.logFileName(time.Now()), time.Now().Format("2006-01-02")+".log"))
}

func TestElasticsearchHook_Fire(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
		docs  []map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var doc map[string]any
		_ = json.Unmarshal(body, &doc)

		mu.Lock()
		paths = append(paths, r.URL.Path)
		docs = append(docs, doc)
		mu.Unlock()

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	}))
	defer srv.Close()

	hook, err := NewElasticsearchHook(&config.Elasticsearch{Addresses: []string{srv.URL}}, "springlab_log")
	require.NoError(t, err)

	entry := &logrus.Entry{
		Time:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "shipped",
		Data:    logrus.Fields{"component": "server", "message": "ignored"},
	}
	require.NoError(t, hook.Fire(entry))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, paths, 1)
	assert.Equal(t, "/springlab_log-2024.03.01/_doc", paths[0])
	assert.Equal(t, "shipped", docs[0]["message"])
	assert.Equal(t, "server", docs[0]["component"])
	assert.Equal(t, "info", docs[0]["level"])
}

func TestElasticsearchHook_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	hook, err := NewElasticsearchHook(&config.Elasticsearch{Addresses: []string{srv.URL}}, "idx")
	require.NoError(t, err)

	err = hook.Fire(&logrus.Entry{Time: time.Now(), Level: logrus.ErrorLevel, Message: "x", Data: logrus.Fields{}})
	assert.Error(t, err)
}

func TestNewElasticsearchHook_NoAddresses(t *testing.T) {
	_, err := NewElasticsearchHook(&config.Elasticsearch{}, "idx")
	assert.Error(t, err)
}

type indexRequest struct {
	method string
	path   string
	doc    any
}

func recordingServer(t *testing.T, status int, response string) (*httptest.Server, func() []indexRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []indexRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var doc any
		_ = json.Unmarshal(body, &doc)

		mu.Lock()
		reqs = append(reqs, indexRequest{method: r.Method, path: r.URL.Path, doc: doc})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	return srv, func() []indexRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]indexRequest(nil), reqs...)
	}
}

func TestOpenSearchHook_Fire(t *testing.T) {
	srv, requests := recordingServer(t, http.StatusCreated,
		`{"_index":"springlab_log-2024.03.01","_id":"1","_version":1,"result":"created"}`)

	hook, err := NewOpenSearchHook(&config.OpenSearch{Addresses: []string{srv.URL}}, "springlab_log")
	require.NoError(t, err)

	entry := &logrus.Entry{
		Time:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "shipped",
		Data:    logrus.Fields{"error": errors.New("boom")},
	}
	require.NoError(t, hook.Fire(entry))

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/springlab_log-2024.03.01/_doc", reqs[0].path)
	doc := reqs[0].doc.(map[string]any)
	assert.Equal(t, "shipped", doc["message"])
	assert.Equal(t, "warning", doc["level"])
	assert.Equal(t, "boom", doc["error"])
}

func TestOpenSearchHook_ServerError(t *testing.T) {
	srv, _ := recordingServer(t, http.StatusBadRequest,
		`{"error":{"type":"mapper_parsing_exception","reason":"bad"},"status":400}`)

	hook, err := NewOpenSearchHook(&config.OpenSearch{Addresses: []string{srv.URL}}, "idx")
	require.NoError(t, err)

	err = hook.Fire(&logrus.Entry{Time: time.Now(), Level: logrus.ErrorLevel, Message: "x", Data: logrus.Fields{}})
	assert.Error(t, err)
}

func TestMeilisearchHook_Fire(t *testing.T) {
	srv, requests := recordingServer(t, http.StatusAccepted,
		`{"taskUid":1,"indexUid":"springlab_log-20240301","status":"enqueued","type":"documentAdditionOrUpdate","enqueuedAt":"2024-03-01T10:00:00Z"}`)

	hook, err := NewMeilisearchHook(&config.Meilisearch{Host: srv.URL, APIKey: "key"}, "springlab_log")
	require.NoError(t, err)

	entry := &logrus.Entry{
		Time:    time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "shipped",
		Data:    logrus.Fields{"component": "server"},
	}
	require.NoError(t, hook.Fire(entry))

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].method)
	assert.Equal(t, "/indexes/springlab_log-20240301/documents", reqs[0].path)

	docs := reqs[0].doc.([]any)
	require.Len(t, docs, 1)
	doc := docs[0].(map[string]any)
	assert.Equal(t, "shipped", doc["message"])
	assert.Equal(t, "server", doc["component"])
	assert.NotEmpty(t, doc["id"])
}

func TestNewSearchHooks_NotConfigured(t *testing.T) {
	_, err := NewOpenSearchHook(&config.OpenSearch{}, "idx")
	assert.Error(t, err)
	_, err = NewMeilisearchHook(nil, "idx")
	assert.Error(t, err)
}

func TestInit_SearchHooks(t *testing.T) {
	srv, _ := recordingServer(t, http.StatusCreated, `{"result":"created"}`)

	l := NewLogger()
	cleanup, err := l.Init(&config.Logger{
		Level:       "info",
		Format:      "json",
		Output:      "stderr",
		IndexName:   "idx",
		OpenSearch:  &config.OpenSearch{Addresses: []string{srv.URL}},
		Meilisearch: &config.Meilisearch{Host: srv.URL},
	})
	require.NoError(t, err)
	defer cleanup()

	var opensearchHooks, meilisearchHooks int
	for _, hook := range l.Hooks[logrus.InfoLevel] {
		switch hook.(type) {
		case *OpenSearchHook:
			opensearchHooks++
		case *MeilisearchHook:
			meilisearchHooks++
		}
	}
	assert.Equal(t, 1, opensearchHooks)
	assert.Equal(t, 1, meilisearchHooks)
}
