package config

// Elasticsearch log shipping target
type Elasticsearch struct {
	Addresses []string `json:"addresses" yaml:"addresses"`
	Username  string   `json:"username" yaml:"username"`
	Password  string   `json:"password" yaml:"password"`
}

// OpenSearch cluster addresses and credentials
type OpenSearch struct {
	Addresses []string `json:"addresses" yaml:"addresses"`
	Username  string   `json:"username" yaml:"username"`
	Password  string   `json:"password" yaml:"password"`
}

// Enabled reports whether at least one address is configured.
func (o *OpenSearch) Enabled() bool {
	return o != nil && len(o.Addresses) > 0
}

// Meilisearch server
type Meilisearch struct {
	Host   string `json:"host" yaml:"host"`
	APIKey string `json:"api_key" yaml:"api_key"`
}

// Enabled reports whether a host is configured.
func (m *Meilisearch) Enabled() bool {
	return m != nil && m.Host != ""
}

// Logger logger config struct
type Logger struct {
	Level         string `validate:"oneof=trace debug info warn warning error fatal panic"`
	Format        string `validate:"oneof=text json"`
	Output        string `validate:"oneof=stdout stderr file"`
	OutputFile    string `validate:"required_if=Output file"`
	IndexName     string
	Elasticsearch *Elasticsearch
	OpenSearch    *OpenSearch
	Meilisearch   *Meilisearch
}

func getLoggerConfig(r *reader) *Logger {
	return &Logger{
		Level:      r.stringOr("logger.level", "info"),
		Format:     r.stringOr("logger.format", "text"),
		Output:     r.stringOr("logger.output", "stdout"),
		OutputFile: r.stringOr("logger.output_file", ""),
		Elasticsearch: &Elasticsearch{
			Addresses: r.stringSliceOr("logger.elasticsearch.addresses", nil),
			Username:  r.stringOr("logger.elasticsearch.username", ""),
			Password:  r.stringOr("logger.elasticsearch.password", ""),
		},
		OpenSearch: &OpenSearch{
			Addresses: r.stringSliceOr("logger.opensearch.addresses", nil),
			Username:  r.stringOr("logger.opensearch.username", ""),
			Password:  r.stringOr("logger.opensearch.password", ""),
		},
		Meilisearch: &Meilisearch{
			Host:   r.stringOr("logger.meilisearch.host", ""),
			APIKey: r.stringOr("logger.meilisearch.api_key", ""),
		},
		IndexName: r.stringOr("logger.index_name", r.stringOr("app_name", "springlab")+"_log"),
	}
}
