// Package server exposes the flow graph over HTTP: one JSON endpoint for
// assembled envelopes, a health probe, and a Prometheus metrics endpoint.
package server
