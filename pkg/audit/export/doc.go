// Package export provides audit bundle exporters for JSON and CSV.
package export
