// Package pipeline provides lazy, pull-based query operators over in-memory
// sequences.
//
// Nothing runs until a terminal (Collect or First) pulls values. Each stage
// pulls from the one before it on demand, and a pipeline built from a slice
// can be run any number of times.
//
// Streaming operators: Map, Filter, Reduce, Take, Skip.
//
// Buffering operators drain their source on the first pull:
//
//   - OrderBy, OrderByDescending, OrderByFunc: stable sort of a private copy
//   - GroupBy: partition by key in first-appearance order
//
// # Usage
//
//	src := pipeline.FromSlice(products)
//	pricey := pipeline.Filter(src, func(p catalog.Product) bool {
//	    return p.Price.GreaterThan(threshold)
//	})
//	sorted := pipeline.OrderByFunc(pricey, func(a, b catalog.Product) int {
//	    return a.Price.Cmp(b.Price)
//	})
//	results, err := pipeline.Collect(ctx, sorted)
package pipeline
