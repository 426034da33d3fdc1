// Package metrics defines the Prometheus instrumentation for the file
// service: event stream throughput, decode pool activity and discovery
// state. Collectors are registered with the default registry at init
// time via promauto; main exposes them on the metrics endpoint.
package metrics
