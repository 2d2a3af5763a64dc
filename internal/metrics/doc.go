// Package metrics records per-run Prometheus metrics for series evaluations
// and exports them as a node_exporter textfile.
package metrics
