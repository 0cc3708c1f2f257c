package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/container/types"
	"github.com/epoint/springlab/logging/logger"
	"github.com/segmentio/kafka-go"
)

// KafkaName is the component name of the kafka connection
const KafkaName = "kafka"

// Kafka is a component owning a connection to the first reachable broker
type Kafka struct {
	types.OptionalImpl

	cfg    *config.Kafka
	dialer *kafka.Dialer
	conn   *kafka.Conn
}

// NewKafka creates the kafka component
func NewKafka(cfg *config.Kafka) *Kafka {
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = connectTimeout
	}
	return &Kafka{cfg: cfg, dialer: &kafka.Dialer{Timeout: timeout}}
}

func (k *Kafka) Name() string           { return KafkaName }
func (k *Kafka) Version() string        { return "1.0.0" }
func (k *Kafka) Dependencies() []string { return nil }

func (k *Kafka) GetMetadata() types.Metadata {
	return types.Metadata{
		Name:        KafkaName,
		Version:     k.Version(),
		Description: "Kafka broker connection",
		Type:        "data",
		Group:       "data",
	}
}

// dial tries the brokers in order and returns the first connection
func (k *Kafka) dial(ctx context.Context) (*kafka.Conn, error) {
	if len(k.cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka: brokers are empty")
	}

	var errs []error
	for _, broker := range k.cfg.Brokers {
		conn, err := k.dialer.DialContext(ctx, "tcp", broker)
		if err == nil {
			return conn, nil
		}
		errs = append(errs, err)
	}
	return nil, fmt.Errorf("kafka: failed to connect: %w", errors.Join(errs...))
}

// Init connects to the first reachable broker
func (k *Kafka) Init(_ *config.Config, _ types.ContainerInterface) error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	conn, err := k.dial(ctx)
	if err != nil {
		return err
	}

	k.conn = conn
	logger.Infof(ctx, "connected to kafka broker %s", conn.RemoteAddr())
	return nil
}

// Health dials a fresh broker connection and closes it
func (k *Kafka) Health(ctx context.Context) error {
	if k.conn == nil {
		return fmt.Errorf("kafka: not connected")
	}
	conn, err := k.dial(ctx)
	if err != nil {
		return err
	}
	return conn.Close()
}

// Cleanup closes the broker connection
func (k *Kafka) Cleanup() error {
	if k.conn == nil {
		return nil
	}
	err := k.conn.Close()
	k.conn = nil
	if err != nil {
		return fmt.Errorf("kafka: failed to close connection: %w", err)
	}
	return nil
}

// Conn returns the broker connection, nil before Init
func (k *Kafka) Conn() *kafka.Conn {
	return k.conn
}
