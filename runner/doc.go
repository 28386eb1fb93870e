// Package runner runs the catalog queries and writes their report.
//
// A run takes one snapshot of the catalog and applies, in order: the
// expensive-product filter, the name projection, the price sort, the
// category grouping, the price totals and the tax reshape. Each operation
// gets its own span and metrics under the run's span; the run id is
// attached to every log line written through the context.
package runner
