// Package telemetry groups Scrivener's observability subsystems:
// structured logging (telemetry/logging) and Prometheus metrics
// (telemetry/metrics).
package telemetry
