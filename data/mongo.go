package data

import (
	"context"
	"fmt"

	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/container/types"
	"github.com/epoint/springlab/logging/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoName is the component name of the mongodb client
const MongoName = "mongodb"

// Mongo is a component owning a *mongo.Client
type Mongo struct {
	types.OptionalImpl

	cfg    *config.MongoDB
	client *mongo.Client
}

// NewMongo creates the mongodb component
func NewMongo(cfg *config.MongoDB) *Mongo {
	return &Mongo{cfg: cfg}
}

func (m *Mongo) Name() string           { return MongoName }
func (m *Mongo) Version() string        { return "1.0.0" }
func (m *Mongo) Dependencies() []string { return nil }

func (m *Mongo) GetMetadata() types.Metadata {
	return types.Metadata{
		Name:        MongoName,
		Version:     m.Version(),
		Description: "MongoDB client",
		Type:        "data",
		Group:       "data",
	}
}

// Init connects to the deployment and pings the primary
func (m *Mongo) Init(_ *config.Config, _ types.ContainerInterface) error {
	if m.cfg.URI == "" {
		return fmt.Errorf("mongodb: URI is empty")
	}

	timeout := m.cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	opts := options.Client().ApplyURI(m.cfg.URI).SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("mongodb: failed to connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("mongodb: failed to ping primary: %w", err)
	}

	m.client = client
	logger.Infof(ctx, "connected to mongodb")
	return nil
}

// Health pings the primary
func (m *Mongo) Health(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("mongodb: not connected")
	}
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb: ping failed: %w", err)
	}
	return nil
}

// Cleanup disconnects the client
func (m *Mongo) Cleanup() error {
	if m.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	err := m.client.Disconnect(ctx)
	m.client = nil
	if err != nil {
		return fmt.Errorf("mongodb: failed to disconnect: %w", err)
	}
	return nil
}

// Client returns the mongodb client, nil before Init
func (m *Mongo) Client() *mongo.Client {
	return m.client
}
