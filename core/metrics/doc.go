package metrics

// Package metrics defines interfaces for collecting simulation metrics.
// Sinks like PromSink and InfluxSink record run summaries, tail utilization
// and failures, and can be combined with NewMultiSink. The factory helpers
// return a MultiSink automatically when multiple sinks are configured.
