package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Stats is a point-in-time summary of the address book.
type Stats struct {
	Persons int

	// Tags counts tag assignments per category name.
	Tags map[string]int
}

// StatsFunc returns the current address book statistics.
type StatsFunc func() Stats

// Collector reports address book statistics on every scrape.
type Collector struct {
	stats StatsFunc

	persons *prometheus.Desc
	tags    *prometheus.Desc
}

// NewCollector creates a collector backed by stats.
func NewCollector(stats StatsFunc) *Collector {
	return &Collector{
		stats: stats,
		persons: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "persons"),
			"Persons in the address book.",
			nil, nil,
		),
		tags: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "tags"),
			"Tag assignments in the address book, by category.",
			[]string{"category"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.persons
	ch <- c.tags
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats()
	ch <- prometheus.MustNewConstMetric(c.persons, prometheus.GaugeValue, float64(s.Persons))
	for category, n := range s.Tags {
		ch <- prometheus.MustNewConstMetric(c.tags, prometheus.GaugeValue, float64(n), category)
	}
}
