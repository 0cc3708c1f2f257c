package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ContainerSource is the part of the container reported as metrics
type ContainerSource interface {
	Status() map[string]string
	EventMetrics() map[string]int64
}

// containerCollector reads component statuses and event counters on scrape
type containerCollector struct {
	src ContainerSource

	components *prometheus.Desc
	events     *prometheus.Desc
}

// RegisterContainer exposes component statuses and event counters of src
func (m *Metrics) RegisterContainer(src ContainerSource) error {
	return m.Registry.Register(&containerCollector{
		src: src,
		components: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "container", "component_status"),
			"Component lifecycle status, 1 for the current status",
			[]string{"component", "status"}, nil,
		),
		events: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "container", "events"),
			"Event bus counters",
			[]string{"kind"}, nil,
		),
	})
}

// Describe implements prometheus.Collector
func (c *containerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.components
	ch <- c.events
}

// Collect implements prometheus.Collector
func (c *containerCollector) Collect(ch chan<- prometheus.Metric) {
	for name, status := range c.src.Status() {
		ch <- prometheus.MustNewConstMetric(c.components, prometheus.GaugeValue, 1, name, status)
	}
	for kind, v := range c.src.EventMetrics() {
		if kind == "last_event_time" {
			continue
		}
		ch <- prometheus.MustNewConstMetric(c.events, prometheus.CounterValue, float64(v), kind)
	}
}
