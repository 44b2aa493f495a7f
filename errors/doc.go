// Package errors provides structured error types for the transform adapter.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). Decode-phase errors mean the caller handed in a malformed
// configuration; encode-phase errors mean a produced value has no host
// representation. Neither is used for problems in the transformed source,
// which travel as ordinary Diagnostics.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
//		Path("config", "minify").
//		GoType("bool").
//		HostType("string").
//		Detail("expected a boolean").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.FieldMissing(errors.PhaseDecode, path, "code")
//	err := errors.Overflow(errors.PhaseEncode, path, v, "number")
//
// Record and FromRecord move an error across a boundary as a keyed mapping.
// All errors implement the standard error interface and support errors.Is/As.
package errors
