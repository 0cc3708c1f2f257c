package config

import "time"

// Sentry config struct
type Sentry struct {
	Endpoint    string  `json:"endpoint" yaml:"endpoint"`
	Environment string  `json:"environment" yaml:"environment"`
	Release     string  `json:"release" yaml:"release"`
	SampleRate  float64 `json:"sample_rate" yaml:"sample_rate" validate:"gte=0,lte=1"`
}

// getSentryConfig get sentry config
func getSentryConfig(r *reader) *Sentry {
	return &Sentry{
		Endpoint:    r.stringOr("observes.sentry.endpoint", ""),
		Environment: r.stringOr("observes.sentry.environment", ""),
		Release:     r.stringOr("observes.sentry.release", ""),
		SampleRate:  r.float64Or("observes.sentry.sample_rate", 1.0),
	}
}

// Tracer config struct for OpenTelemetry
type Tracer struct {
	Endpoint string `json:"endpoint" yaml:"endpoint"` // OTLP gRPC endpoint

	ServiceName    string `json:"service_name" yaml:"service_name"`
	ServiceVersion string `json:"service_version" yaml:"service_version"`
	Environment    string `json:"environment" yaml:"environment"`

	SamplingRate float64 `json:"sampling_rate" yaml:"sampling_rate" validate:"gte=0,lte=1"`

	MaxExportBatchSize int           `json:"max_export_batch_size" yaml:"max_export_batch_size" validate:"gte=1"`
	BatchTimeout       time.Duration `json:"batch_timeout" yaml:"batch_timeout"`
	ExportTimeout      time.Duration `json:"export_timeout" yaml:"export_timeout"`
	MaxQueueSize       int           `json:"max_queue_size" yaml:"max_queue_size" validate:"gte=1"`

	Insecure bool              `json:"insecure" yaml:"insecure"`
	Headers  map[string]string `json:"headers" yaml:"headers"`
}

// getTracerConfig get tracer config with defaults
func getTracerConfig(r *reader) *Tracer {
	return &Tracer{
		Endpoint: r.stringOr("observes.tracer.endpoint", ""),

		ServiceName:    r.stringOr("observes.tracer.service_name", r.stringOr("app_name", "springlab")),
		ServiceVersion: r.stringOr("observes.tracer.service_version", ""),
		Environment:    r.stringOr("observes.tracer.environment", ""),

		SamplingRate: r.float64Or("observes.tracer.sampling_rate", 1.0),

		MaxExportBatchSize: r.intOr("observes.tracer.max_export_batch_size", 512),
		BatchTimeout:       r.durationOr("observes.tracer.batch_timeout", 5*time.Second),
		ExportTimeout:      r.durationOr("observes.tracer.export_timeout", 30*time.Second),
		MaxQueueSize:       r.intOr("observes.tracer.max_queue_size", 2048),

		Insecure: r.boolOr("observes.tracer.insecure", true),
		Headers:  r.stringMap("observes.tracer.headers"),
	}
}

// Observes config struct
type Observes struct {
	Sentry *Sentry
	Tracer *Tracer
}

// get Observes config
func getObservesConfig(r *reader) *Observes {
	return &Observes{
		Sentry: getSentryConfig(r),
		Tracer: getTracerConfig(r),
	}
}
