package config

import "time"

// Database SQL database config struct
type Database struct {
	Driver          string        `json:"driver" yaml:"driver" validate:"omitempty,oneof=postgres mysql sqlite"`
	Source          string        `json:"source" yaml:"source" validate:"required_with=Driver"`
	MaxIdleConn     int           `json:"max_idle_conn" yaml:"max_idle_conn" validate:"gte=0"`
	MaxOpenConn     int           `json:"max_open_conn" yaml:"max_open_conn" validate:"gte=0"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" yaml:"conn_max_lifetime" validate:"gte=0"`
}

// Enabled reports whether a database is configured.
func (d *Database) Enabled() bool {
	return d != nil && d.Driver != ""
}

// Redis config struct
type Redis struct {
	Addr         string        `json:"addr" yaml:"addr"`
	Username     string        `json:"username" yaml:"username"`
	Password     string        `json:"password" yaml:"password"`
	Db           int           `json:"db" yaml:"db" validate:"gte=0"`
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
	DialTimeout  time.Duration `json:"dial_timeout" yaml:"dial_timeout"`
}

// Enabled reports whether redis is configured.
func (r *Redis) Enabled() bool {
	return r != nil && r.Addr != ""
}

// MongoDB config struct
type MongoDB struct {
	URI            string        `json:"uri" yaml:"uri"`
	ConnectTimeout time.Duration `json:"connect_timeout" yaml:"connect_timeout" validate:"gte=0"`
}

// Enabled reports whether mongodb is configured.
func (m *MongoDB) Enabled() bool {
	return m != nil && m.URI != ""
}

// Neo4j config struct
type Neo4j struct {
	URI            string        `json:"uri" yaml:"uri"`
	Username       string        `json:"username" yaml:"username"`
	Password       string        `json:"password" yaml:"password"`
	ConnectTimeout time.Duration `json:"connect_timeout" yaml:"connect_timeout" validate:"gte=0"`
}

// Enabled reports whether neo4j is configured.
func (n *Neo4j) Enabled() bool {
	return n != nil && n.URI != ""
}

// Kafka config struct
type Kafka struct {
	Brokers     []string      `json:"brokers" yaml:"brokers"`
	DialTimeout time.Duration `json:"dial_timeout" yaml:"dial_timeout" validate:"gte=0"`
}

// Enabled reports whether at least one broker is configured.
func (k *Kafka) Enabled() bool {
	return k != nil && len(k.Brokers) > 0
}

// RabbitMQ config struct. URL is either a full amqp(s):// URL or host:port,
// in which case the credentials and vhost are added to it.
type RabbitMQ struct {
	URL         string        `json:"url" yaml:"url"`
	Username    string        `json:"username" yaml:"username"`
	Password    string        `json:"password" yaml:"password"`
	Vhost       string        `json:"vhost" yaml:"vhost"`
	DialTimeout time.Duration `json:"dial_timeout" yaml:"dial_timeout" validate:"gte=0"`
}

// Enabled reports whether rabbitmq is configured.
func (r *RabbitMQ) Enabled() bool {
	return r != nil && r.URL != ""
}

// Data represents the data configuration
type Data struct {
	Database    *Database
	Redis       *Redis
	MongoDB     *MongoDB
	Neo4j       *Neo4j
	OpenSearch  *OpenSearch
	Meilisearch *Meilisearch
	Kafka       *Kafka
	RabbitMQ    *RabbitMQ
}

// getDataConfig returns data config
func getDataConfig(r *reader) *Data {
	return &Data{
		Database: &Database{
			Driver:          r.stringOr("data.database.driver", ""),
			Source:          r.stringOr("data.database.source", ""),
			MaxIdleConn:     r.intOr("data.database.max_idle_conn", 10),
			MaxOpenConn:     r.intOr("data.database.max_open_conn", 100),
			ConnMaxLifetime: r.durationOr("data.database.conn_max_lifetime", time.Hour),
		},
		Redis: &Redis{
			Addr:         r.stringOr("data.redis.addr", ""),
			Username:     r.stringOr("data.redis.username", ""),
			Password:     r.stringOr("data.redis.password", ""),
			Db:           r.intOr("data.redis.db", 0),
			ReadTimeout:  r.durationOr("data.redis.read_timeout", 3*time.Second),
			WriteTimeout: r.durationOr("data.redis.write_timeout", 3*time.Second),
			DialTimeout:  r.durationOr("data.redis.dial_timeout", 5*time.Second),
		},
		MongoDB: &MongoDB{
			URI:            r.stringOr("data.mongodb.uri", ""),
			ConnectTimeout: r.durationOr("data.mongodb.connect_timeout", 10*time.Second),
		},
		Neo4j: &Neo4j{
			URI:            r.stringOr("data.neo4j.uri", ""),
			Username:       r.stringOr("data.neo4j.username", ""),
			Password:       r.stringOr("data.neo4j.password", ""),
			ConnectTimeout: r.durationOr("data.neo4j.connect_timeout", 10*time.Second),
		},
		OpenSearch: &OpenSearch{
			Addresses: r.stringSliceOr("data.opensearch.addresses", nil),
			Username:  r.stringOr("data.opensearch.username", ""),
			Password:  r.stringOr("data.opensearch.password", ""),
		},
		Meilisearch: &Meilisearch{
			Host:   r.stringOr("data.meilisearch.host", ""),
			APIKey: r.stringOr("data.meilisearch.api_key", ""),
		},
		Kafka: &Kafka{
			Brokers:     r.stringSliceOr("data.kafka.brokers", nil),
			DialTimeout: r.durationOr("data.kafka.dial_timeout", 5*time.Second),
		},
		RabbitMQ: &RabbitMQ{
			URL:         r.stringOr("data.rabbitmq.url", ""),
			Username:    r.stringOr("data.rabbitmq.username", ""),
			Password:    r.stringOr("data.rabbitmq.password", ""),
			Vhost:       r.stringOr("data.rabbitmq.vhost", ""),
			DialTimeout: r.durationOr("data.rabbitmq.dial_timeout", 5*time.Second),
		},
	}
}
