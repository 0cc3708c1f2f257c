package data

import (
	"context"
	"fmt"

	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/container/types"
	"github.com/epoint/springlab/logging/logger"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jName is the component name of the neo4j driver
const Neo4jName = "neo4j"

// Neo4j is a component owning a neo4j.DriverWithContext
type Neo4j struct {
	types.OptionalImpl

	cfg    *config.Neo4j
	driver neo4j.DriverWithContext
}

// NewNeo4j creates the neo4j component
func NewNeo4j(cfg *config.Neo4j) *Neo4j {
	return &Neo4j{cfg: cfg}
}

func (n *Neo4j) Name() string           { return Neo4jName }
func (n *Neo4j) Version() string        { return "1.0.0" }
func (n *Neo4j) Dependencies() []string { return nil }

func (n *Neo4j) GetMetadata() types.Metadata {
	return types.Metadata{
		Name:        Neo4jName,
		Version:     n.Version(),
		Description: "Neo4j graph database driver",
		Type:        "data",
		Group:       "data",
	}
}

// Init creates the driver and verifies connectivity
func (n *Neo4j) Init(_ *config.Config, _ types.ContainerInterface) error {
	if n.cfg.URI == "" {
		return fmt.Errorf("neo4j: URI is empty")
	}

	driver, err := neo4j.NewDriverWithContext(n.cfg.URI, neo4j.BasicAuth(n.cfg.Username, n.cfg.Password, ""))
	if err != nil {
		return fmt.Errorf("neo4j: failed to create driver: %w", err)
	}

	timeout := n.cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = connectTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(context.Background())
		return fmt.Errorf("neo4j: connectivity verification failed: %w", err)
	}

	n.driver = driver
	logger.Infof(ctx, "connected to neo4j at %s", n.cfg.URI)
	return nil
}

// Health verifies connectivity
func (n *Neo4j) Health(ctx context.Context) error {
	if n.driver == nil {
		return fmt.Errorf("neo4j: not connected")
	}
	if err := n.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("neo4j: connectivity check failed: %w", err)
	}
	return nil
}

// Cleanup closes the driver
func (n *Neo4j) Cleanup() error {
	if n.driver == nil {
		return nil
	}
	err := n.driver.Close(context.Background())
	n.driver = nil
	if err != nil {
		return fmt.Errorf("neo4j: failed to close driver: %w", err)
	}
	return nil
}

// Driver returns the neo4j driver, nil before Init
func (n *Neo4j) Driver() neo4j.DriverWithContext {
	return n.driver
}
