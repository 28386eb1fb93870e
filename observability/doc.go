// Package observability provides OpenTelemetry tracing and metrics for
// catalogq runs.
//
// Spans end up in the debug log through LogSpanExporter; metrics aggregate
// in a manual reader and are logged when the telemetry component stops.
// Nothing is sent over the network.
//
// # Usage
//
//	oc := observability.NewOperationContext("catalogq", "sort", runID, metrics)
//	ctx, span := oc.StartSpanForOperation(ctx, observability.SpanQuery)
//	// ... run the query ...
//	oc.EndOperation(ctx, span, len(results), err)
package observability
