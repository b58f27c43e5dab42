// Package metric provides Prometheus metrics for ConnectUS.
//
//   - prometheus.go: the application Registry and command counters
//   - collector.go: a collector reporting address book statistics
//
// A command-line application has no scrape endpoint, so the registry is
// written to a node_exporter textfile when the session ends.
package metric
