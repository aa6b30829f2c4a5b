// Package importer reads vocabulary rows from .xlsx workbooks.
//
// The first sheet must start with a header row naming at least the "word" and
// "meaning" columns. "type" and "example" are optional. Header names are
// matched case-insensitively and may appear in any order.
package importer
