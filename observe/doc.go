// Package observe provides telemetry for governed catalog calls: an
// OpenTelemetry tracer and meter behind a single Observer, a structured JSON
// logger that carries call context, and a middleware that wraps governed
// executions with all three.
package observe
