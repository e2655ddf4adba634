/*
Package metrics exposes Prometheus metrics for the registry: publish,
download, index and token counters plus API request latency. Collectors
are package-level and registered once via Register; the handler is mounted
at /metrics on the main router.
*/
package metrics
