package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseStream  Phase = "stream"  // byte-level reads
	PhaseHeader  Phase = "header"  // file header parsing
	PhaseBlocks  Phase = "blocks"  // file-block scan
	PhaseDNA     Phase = "dna"     // DNA catalog parsing
	PhaseConvert Phase = "convert" // structure conversion
	PhaseResolve Phase = "resolve" // pointer resolution
	PhaseGraph   Phase = "graph"   // scene-graph flattening
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidData   Kind = "invalid_data"
	KindTruncated     Kind = "truncated"
	KindOutOfBounds   Kind = "out_of_bounds"
	KindFieldMissing  Kind = "field_missing"
	KindTypeMismatch  Kind = "type_mismatch"
	KindUnsupported   Kind = "unsupported"
	KindNotRegistered Kind = "not_registered"
	KindBadPointer    Kind = "bad_pointer"
	KindTypeConflict  Kind = "type_conflict"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	Structure string
	Field     string
	Detail    string
	Address   uint64
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Structure != "" || e.Field != "" {
		b.WriteString(" at ")
		if e.Structure != "" {
			b.WriteString(e.Structure)
			if e.Field != "" {
				b.WriteByte('.')
			}
		}
		b.WriteString(e.Field)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Address != 0 {
		fmt.Fprintf(&b, " (addr 0x%x)", e.Address)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsFatal reports whether err carries a kind that may never be downgraded
// by a field's error policy. Bad pointers and type conflicts indicate a
// corrupted or hostile file, not version skew. Wrapping a fatal error
// keeps it fatal, so the whole chain is checked.
func IsFatal(err error) bool {
	for {
		var e *Error
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Kind == KindBadPointer || e.Kind == KindTypeConflict {
			return true
		}
		err = e.Unwrap()
	}
}

// KindOf returns the Kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if !stderrors.As(err, &e) {
		return ""
	}
	return e.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Structure sets the DNA structure name
func (b *Builder) Structure(name string) *Builder {
	b.err.Structure = name
	return b
}

// Field sets the field name
func (b *Builder) Field(name string) *Builder {
	b.err.Field = name
	return b
}

// Address sets the pointer value involved
func (b *Builder) Address(addr uint64) *Builder {
	b.err.Address = addr
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// FieldMissing creates an error for a field the DNA structure never declares
func FieldMissing(structure, field string) *Error {
	return &Error{
		Phase:     PhaseConvert,
		Kind:      KindFieldMissing,
		Structure: structure,
		Field:     field,
		Detail:    "field not declared in DNA structure",
	}
}

// TypeMismatch creates an error for a field whose on-disk shape or
// primitive type cannot feed the requested destination
func TypeMismatch(structure, field, detail string) *Error {
	return &Error{
		Phase:     PhaseConvert,
		Kind:      KindTypeMismatch,
		Structure: structure,
		Field:     field,
		Detail:    detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// NotRegistered creates an error for a type name with no registered converter
func NotRegistered(typeName string) *Error {
	return &Error{
		Phase:     PhaseResolve,
		Kind:      KindNotRegistered,
		Structure: typeName,
		Detail:    "no converter registered",
	}
}

// BadPointer creates a fatal invalid-pointer error
func BadPointer(addr uint64, detail string) *Error {
	return &Error{
		Phase:   PhaseResolve,
		Kind:    KindBadPointer,
		Address: addr,
		Detail:  detail,
	}
}

// TypeConflict creates a fatal error for a block whose recorded type
// contradicts the statically expected structure
func TypeConflict(expected, actual string, addr uint64) *Error {
	return &Error{
		Phase:     PhaseResolve,
		Kind:      KindTypeConflict,
		Structure: expected,
		Address:   addr,
		Detail:    fmt.Sprintf("block holds %q, expected %q", actual, expected),
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// Truncated creates an error for a read past the end of the stream
func Truncated(pos, need, have int) *Error {
	return &Error{
		Phase:  PhaseStream,
		Kind:   KindTruncated,
		Detail: fmt.Sprintf("need %d bytes at offset %d, %d available", need, pos, have),
	}
}

// OutOfBounds creates an error for a seek outside the stream
func OutOfBounds(pos, length int) *Error {
	return &Error{
		Phase:  PhaseStream,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("position %d outside stream of %d bytes", pos, length),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
