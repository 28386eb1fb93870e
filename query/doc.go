// Package query implements the six catalog queries: filter, projection,
// sort, group, aggregate and reshape. Each one reads the full product list
// and builds an independent result; none mutates its input.
package query
