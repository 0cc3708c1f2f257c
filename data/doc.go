// Package data provides the data source components. Each one is registered
// only when its connection is configured.
//
// Supported database drivers are postgres (pgx), mysql and sqlite (the pure
// Go modernc driver). Redis, MongoDB, Neo4j, OpenSearch, Meilisearch, Kafka
// and RabbitMQ each get their own component which connects in Init, checks
// the server in Health and closes in Cleanup.
package data
