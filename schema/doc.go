// Package schema defines the data contract shared by every embedding:
// the Config a host hands in, and the Output or Diagnostics it gets back.
//
// The types are plain values. A Config is built fresh for each call and
// owned by that call; Output and Diagnostics are immutable once produced.
// Keys in the host-facing mapping are snake_case and are declared with
// mapstructure tags on each field.
//
// # Defaults
//
// Normalize fills the optional fields:
//
//	loader    from the filename extension, else js
//	target    esnext
//	format    preserve
//	platform  browser
//
// Validate then rejects enum values outside their sets and a line_limit
// outside [0, MaxLineLimit], both as decode-phase errors.
package schema
