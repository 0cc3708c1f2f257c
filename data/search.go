package data

import (
	"context"
	"fmt"

	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/container/types"
	"github.com/epoint/springlab/logging/logger"
	"github.com/meilisearch/meilisearch-go"
	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

// Search component names
const (
	OpenSearchName  = "opensearch"
	MeilisearchName = "meilisearch"
)

// OpenSearch is a component owning an *opensearchapi.Client
type OpenSearch struct {
	types.OptionalImpl

	cfg    *config.OpenSearch
	client *opensearchapi.Client
}

// NewOpenSearch creates the opensearch component
func NewOpenSearch(cfg *config.OpenSearch) *OpenSearch {
	return &OpenSearch{cfg: cfg}
}

func (o *OpenSearch) Name() string           { return OpenSearchName }
func (o *OpenSearch) Version() string        { return "1.0.0" }
func (o *OpenSearch) Dependencies() []string { return nil }

func (o *OpenSearch) GetMetadata() types.Metadata {
	return types.Metadata{
		Name:        OpenSearchName,
		Version:     o.Version(),
		Description: "OpenSearch client",
		Type:        "data",
		Group:       "data",
	}
}

// Init creates the client and requests the cluster info
func (o *OpenSearch) Init(_ *config.Config, _ types.ContainerInterface) error {
	if !o.cfg.Enabled() {
		return fmt.Errorf("opensearch: addresses are empty")
	}

	client, err := opensearchapi.NewClient(opensearchapi.Config{
		Client: opensearch.Config{
			Addresses: o.cfg.Addresses,
			Username:  o.cfg.Username,
			Password:  o.cfg.Password,
		},
	})
	if err != nil {
		return fmt.Errorf("opensearch: failed to create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	info, err := client.Info(ctx, nil)
	if err != nil {
		return fmt.Errorf("opensearch: failed to connect: %w", err)
	}

	o.client = client
	logger.Infof(ctx, "connected to opensearch cluster %s", info.ClusterName)
	return nil
}

// Health requests the cluster info
func (o *OpenSearch) Health(ctx context.Context) error {
	if o.client == nil {
		return fmt.Errorf("opensearch: not connected")
	}
	if _, err := o.client.Info(ctx, nil); err != nil {
		return fmt.Errorf("opensearch: info request failed: %w", err)
	}
	return nil
}

// Cleanup drops the client; the transport holds no long-lived connection
func (o *OpenSearch) Cleanup() error {
	o.client = nil
	return nil
}

// Client returns the opensearch client, nil before Init
func (o *OpenSearch) Client() *opensearchapi.Client {
	return o.client
}

// Meilisearch is a component owning a meilisearch.ServiceManager
type Meilisearch struct {
	types.OptionalImpl

	cfg    *config.Meilisearch
	client meilisearch.ServiceManager
}

// NewMeilisearch creates the meilisearch component
func NewMeilisearch(cfg *config.Meilisearch) *Meilisearch {
	return &Meilisearch{cfg: cfg}
}

func (m *Meilisearch) Name() string           { return MeilisearchName }
func (m *Meilisearch) Version() string        { return "1.0.0" }
func (m *Meilisearch) Dependencies() []string { return nil }

func (m *Meilisearch) GetMetadata() types.Metadata {
	return types.Metadata{
		Name:        MeilisearchName,
		Version:     m.Version(),
		Description: "Meilisearch client",
		Type:        "data",
		Group:       "data",
	}
}

// Init creates the client and checks the server health
func (m *Meilisearch) Init(_ *config.Config, _ types.ContainerInterface) error {
	if !m.cfg.Enabled() {
		return fmt.Errorf("meilisearch: host is empty")
	}

	client := meilisearch.New(m.cfg.Host, meilisearch.WithAPIKey(m.cfg.APIKey))
	health, err := client.Health()
	if err != nil {
		return fmt.Errorf("meilisearch: failed to connect: %w", err)
	}
	if health.Status != "available" {
		return fmt.Errorf("meilisearch: server status %q", health.Status)
	}

	m.client = client
	logger.Infof(context.Background(), "connected to meilisearch at %s", m.cfg.Host)
	return nil
}

// Health checks the server health
func (m *Meilisearch) Health(context.Context) error {
	if m.client == nil {
		return fmt.Errorf("meilisearch: not connected")
	}
	health, err := m.client.Health()
	if err != nil {
		return fmt.Errorf("meilisearch: health request failed: %w", err)
	}
	if health.Status != "available" {
		return fmt.Errorf("meilisearch: server status %q", health.Status)
	}
	return nil
}

// Cleanup drops the client
func (m *Meilisearch) Cleanup() error {
	m.client = nil
	return nil
}

// Client returns the meilisearch client, nil before Init
func (m *Meilisearch) Client() meilisearch.ServiceManager {
	return m.client
}
