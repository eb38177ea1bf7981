// Package errors provides structured error types for the blendfile library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: DNA structure and field
// names, the pointer value involved, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
//		Structure("Mesh").
//		Field("totvert").
//		Detail("expected scalar, found array").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.FieldMissing("Mesh", "mloop")
//	err := errors.BadPointer(0xdeadbeef, "no block covers address")
//
// Kinds split into two severities. Most are schema mismatches governed by
// the per-field error policy of the conversion protocol. KindBadPointer and
// KindTypeConflict are always fatal; IsFatal reports them so policy code can
// refuse to downgrade corruption into a warning.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
