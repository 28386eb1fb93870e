// Package catalog holds the product model, the built-in sample catalog and
// the catalog component that validates and serves the product list for a run.
package catalog
