// Package assembler turns a view request into a complete response envelope:
// it normalizes the request, runs the selector and the graph builder, wraps
// the result with generation metadata and coverage summary, and memoizes
// envelopes in a bounded FIFO cache keyed by the normalized request.
package assembler
