package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/epoint/springlab/config"
	"github.com/sirupsen/logrus"
)

// ElasticsearchHook ships log entries to a daily Elasticsearch index.
type ElasticsearchHook struct {
	client    *elasticsearch.Client
	indexName string
	hostname  string
	levels    []logrus.Level
}

// NewElasticsearchHook creates the hook. No request is made until the first
// entry fires.
func NewElasticsearchHook(c *config.Elasticsearch, indexName string) (*ElasticsearchHook, error) {
	if c == nil || len(c.Addresses) == 0 {
		return nil, fmt.Errorf("elasticsearch addresses are empty")
	}

	esCfg := elasticsearch.Config{
		Addresses: c.Addresses,
	}
	if c.Username != "" {
		esCfg.Username = c.Username
		esCfg.Password = c.Password
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	hostname, _ := os.Hostname()
	return &ElasticsearchHook{
		client:    client,
		indexName: indexName,
		hostname:  hostname,
		levels:    logrus.AllLevels,
	}, nil
}

// Levels returns the log levels this hook fires for
func (h *ElasticsearchHook) Levels() []logrus.Level {
	return h.levels
}

// Fire sends the log entry to Elasticsearch
func (h *ElasticsearchHook) Fire(entry *logrus.Entry) error {
	body, err := json.Marshal(h.document(entry))
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	res, err := h.client.Index(
		h.currentIndex(entry.Time),
		bytes.NewReader(body),
		h.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to index log entry: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch index error: %s", res.Status())
	}
	return nil
}

// currentIndex returns <index>-<yyyy.mm.dd>
func (h *ElasticsearchHook) currentIndex(t time.Time) string {
	return dailyIndex(h.indexName, t)
}

func (h *ElasticsearchHook) document(entry *logrus.Entry) map[string]any {
	return logDocument(entry, h.hostname)
}
