package data

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/container/types"
	"github.com/epoint/springlab/logging/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQName is the component name of the rabbitmq connection
const RabbitMQName = "rabbitmq"

// RabbitMQ is a component owning an *amqp.Connection
type RabbitMQ struct {
	types.OptionalImpl

	cfg  *config.RabbitMQ
	conn *amqp.Connection
}

// NewRabbitMQ creates the rabbitmq component
func NewRabbitMQ(cfg *config.RabbitMQ) *RabbitMQ {
	return &RabbitMQ{cfg: cfg}
}

func (r *RabbitMQ) Name() string           { return RabbitMQName }
func (r *RabbitMQ) Version() string        { return "1.0.0" }
func (r *RabbitMQ) Dependencies() []string { return nil }

func (r *RabbitMQ) GetMetadata() types.Metadata {
	return types.Metadata{
		Name:        RabbitMQName,
		Version:     r.Version(),
		Description: "RabbitMQ connection",
		Type:        "data",
		Group:       "data",
	}
}

// amqpURL returns cfg.URL when it carries a scheme, otherwise an amqp URL
// built from the host, credentials and vhost.
func amqpURL(cfg *config.RabbitMQ) string {
	if strings.HasPrefix(cfg.URL, "amqp://") || strings.HasPrefix(cfg.URL, "amqps://") {
		return cfg.URL
	}

	u := url.URL{Scheme: "amqp", Host: cfg.URL}
	if cfg.Username != "" || cfg.Password != "" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	}
	if cfg.Vhost != "" {
		u.Path = "/" + strings.TrimPrefix(cfg.Vhost, "/")
	}
	return u.String()
}

// Init dials the broker
func (r *RabbitMQ) Init(_ *config.Config, _ types.ContainerInterface) error {
	if r.cfg.URL == "" {
		return fmt.Errorf("rabbitmq: URL is empty")
	}

	timeout := r.cfg.DialTimeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	conn, err := amqp.DialConfig(amqpURL(r.cfg), amqp.Config{
		Dial: amqp.DefaultDial(timeout),
	})
	if err != nil {
		return fmt.Errorf("rabbitmq: failed to connect: %w", err)
	}

	r.conn = conn
	logger.Infof(context.Background(), "connected to rabbitmq at %s", conn.RemoteAddr())
	return nil
}

// Health reports whether the connection is still open
func (r *RabbitMQ) Health(context.Context) error {
	if r.conn == nil {
		return fmt.Errorf("rabbitmq: not connected")
	}
	if r.conn.IsClosed() {
		return fmt.Errorf("rabbitmq: connection closed")
	}
	return nil
}

// Cleanup closes the connection
func (r *RabbitMQ) Cleanup() error {
	if r.conn == nil {
		return nil
	}
	err := r.conn.Close()
	r.conn = nil
	if err != nil && !errors.Is(err, amqp.ErrClosed) {
		return fmt.Errorf("rabbitmq: failed to close connection: %w", err)
	}
	return nil
}

// Conn returns the rabbitmq connection, nil before Init
func (r *RabbitMQ) Conn() *amqp.Connection {
	return r.conn
}
