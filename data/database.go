package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/container/types"
	"github.com/epoint/springlab/logging/logger"
)

// DatabaseName is the component name of the SQL database
const DatabaseName = "database"

const connectTimeout = 10 * time.Second

// Database is a component owning a *sql.DB
type Database struct {
	types.OptionalImpl

	cfg *config.Database
	db  *sql.DB
}

// NewDatabase creates the database component
func NewDatabase(cfg *config.Database) *Database {
	return &Database{cfg: cfg}
}

func (d *Database) Name() string           { return DatabaseName }
func (d *Database) Version() string        { return "1.0.0" }
func (d *Database) Dependencies() []string { return nil }

func (d *Database) GetMetadata() types.Metadata {
	return types.Metadata{
		Name:        DatabaseName,
		Version:     d.Version(),
		Description: fmt.Sprintf("%s database connection", d.cfg.Driver),
		Type:        "data",
		Group:       "data",
	}
}

// Init opens the connection pool and verifies it with a ping
func (d *Database) Init(_ *config.Config, _ types.ContainerInterface) error {
	driverName, err := sqlDriverName(d.cfg.Driver)
	if err != nil {
		return err
	}
	if d.cfg.Source == "" {
		return fmt.Errorf("%s: connection source is empty", d.cfg.Driver)
	}

	db, err := sql.Open(driverName, d.cfg.Source)
	if err != nil {
		return fmt.Errorf("%s: failed to open connection: %w", d.cfg.Driver, err)
	}

	if d.cfg.MaxIdleConn > 0 {
		db.SetMaxIdleConns(d.cfg.MaxIdleConn)
	}
	if d.cfg.MaxOpenConn > 0 {
		db.SetMaxOpenConns(d.cfg.MaxOpenConn)
	}
	if d.cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(d.cfg.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("%s: failed to ping database: %w", d.cfg.Driver, err)
	}

	d.db = db
	logger.Infof(ctx, "connected to %s database", d.cfg.Driver)
	return nil
}

// Health pings the database
func (d *Database) Health(ctx context.Context) error {
	if d.db == nil {
		return fmt.Errorf("%s: not connected", d.cfg.Driver)
	}
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: ping failed: %w", d.cfg.Driver, err)
	}
	return nil
}

// Cleanup closes the connection pool
func (d *Database) Cleanup() error {
	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	if err != nil {
		return fmt.Errorf("%s: failed to close connection: %w", d.cfg.Driver, err)
	}
	return nil
}

// DB returns the connection pool, nil before Init
func (d *Database) DB() *sql.DB {
	return d.db
}
