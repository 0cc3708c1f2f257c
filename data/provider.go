package data

import (
	"github.com/epoint/springlab/config"
	"github.com/epoint/springlab/container/types"
)

// Components returns the data components whose connections are configured
func Components(cfg *config.Data) []types.Interface {
	if cfg == nil {
		return nil
	}

	var components []types.Interface
	if cfg.Database.Enabled() {
		components = append(components, NewDatabase(cfg.Database))
	}
	if cfg.Redis.Enabled() {
		components = append(components, NewRedis(cfg.Redis))
	}
	if cfg.MongoDB.Enabled() {
		components = append(components, NewMongo(cfg.MongoDB))
	}
	if cfg.Neo4j.Enabled() {
		components = append(components, NewNeo4j(cfg.Neo4j))
	}
	if cfg.OpenSearch.Enabled() {
		components = append(components, NewOpenSearch(cfg.OpenSearch))
	}
	if cfg.Meilisearch.Enabled() {
		components = append(components, NewMeilisearch(cfg.Meilisearch))
	}
	if cfg.Kafka.Enabled() {
		components = append(components, NewKafka(cfg.Kafka))
	}
	if cfg.RabbitMQ.Enabled() {
		components = append(components, NewRabbitMQ(cfg.RabbitMQ))
	}
	return components
}
