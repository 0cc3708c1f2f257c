package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/epoint/springlab/config"
	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
	"github.com/sirupsen/logrus"
)

// OpenSearchHook ships log entries to a daily OpenSearch index.
type OpenSearchHook struct {
	client    *opensearchapi.Client
	indexName string
	hostname  string
	levels    []logrus.Level
}

// NewOpenSearchHook creates the hook without contacting the cluster.
func NewOpenSearchHook(c *config.OpenSearch, indexName string) (*OpenSearchHook, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("opensearch addresses are empty")
	}

	client, err := opensearchapi.NewClient(opensearchapi.Config{
		Client: opensearch.Config{
			Addresses: c.Addresses,
			Username:  c.Username,
			Password:  c.Password,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create opensearch client: %w", err)
	}

	hostname, _ := os.Hostname()
	return &OpenSearchHook{
		client:    client,
		indexName: indexName,
		hostname:  hostname,
		levels:    logrus.AllLevels,
	}, nil
}

// Levels returns the log levels this hook fires for
func (h *OpenSearchHook) Levels() []logrus.Level {
	return h.levels
}

// Fire sends the log entry to OpenSearch
func (h *OpenSearchHook) Fire(entry *logrus.Entry) error {
	body, err := json.Marshal(logDocument(entry, h.hostname))
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	_, err = h.client.Index(ctx, opensearchapi.IndexReq{
		Index: dailyIndex(h.indexName, entry.Time),
		Body:  bytes.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("failed to index log entry: %w", err)
	}
	return nil
}
