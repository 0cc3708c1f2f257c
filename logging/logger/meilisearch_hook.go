package logger

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/epoint/springlab/config"
	"github.com/meilisearch/meilisearch-go"
	"github.com/sirupsen/logrus"
)

const meilisearchPrimaryKey = "id"

// MeilisearchHook adds log entries to a daily Meilisearch index. Documents
// are enqueued; indexing failures surface as failed tasks on the server.
type MeilisearchHook struct {
	client    meilisearch.ServiceManager
	indexName string
	hostname  string
	levels    []logrus.Level
}

// NewMeilisearchHook creates the hook without contacting the server.
func NewMeilisearchHook(c *config.Meilisearch, indexName string) (*MeilisearchHook, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("meilisearch host is empty")
	}

	hostname, _ := os.Hostname()
	return &MeilisearchHook{
		client:    meilisearch.New(c.Host, meilisearch.WithAPIKey(c.APIKey)),
		indexName: indexName,
		hostname:  hostname,
		levels:    logrus.AllLevels,
	}, nil
}

// Levels returns the log levels this hook fires for
func (h *MeilisearchHook) Levels() []logrus.Level {
	return h.levels
}

// Fire enqueues the log entry on Meilisearch
func (h *MeilisearchHook) Fire(entry *logrus.Entry) error {
	doc := logDocument(entry, h.hostname)
	doc[meilisearchPrimaryKey] = strconv.FormatInt(entry.Time.UnixNano(), 10)

	pk := meilisearchPrimaryKey
	_, err := h.client.Index(h.currentIndex(entry.Time)).
		AddDocuments([]map[string]any{doc}, &meilisearch.DocumentOptions{PrimaryKey: &pk})
	if err != nil {
		return fmt.Errorf("failed to index log entry: %w", err)
	}
	return nil
}

// currentIndex returns <index>-<yyyymmdd>; index uids allow only
// alphanumerics, hyphens and underscores.
func (h *MeilisearchHook) currentIndex(t time.Time) string {
	return fmt.Sprintf("%s-%s", h.indexName, t.UTC().Format("20060102"))
}
