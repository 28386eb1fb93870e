// Package report renders the results of the catalog queries as the
// plain-text sections printed on standard output.
package report
