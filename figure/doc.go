// Package figure prepares surfaces for an external plotting toolkit: it picks
// the output format from a filename and writes surfaces as whitespace
// separated tables.
package figure
