// Package observability wires OpenTelemetry tracing and metrics for sitekit.
//
// InitTracer and InitMeter install global OTLP/HTTP providers for the CLI.
// Libraries only talk to the otel globals (or an injected provider), so
// nothing is exported unless a provider has been installed.
package observability
