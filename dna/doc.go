// Package dna implements the DNA-driven structure reader at the core of
// the library.
//
// Every .blend file embeds its own schema: the DNA catalog, a complete
// description of every structure the writing program compiled with. This
// package parses that catalog and uses it to decode file bytes into Go
// structs by field name, so files written by very different program
// versions all load through the same converters:
//
//	┌──────────────────────────────────────────────────────────┐
//	│ file bytes ←  [DNA catalog]  → named, typed field reads  │
//	└──────────────────────────────────────────────────────────┘
//
// # Key Types
//
//	Catalog      - Parsed DNA: structures, type names, sizes
//	Structure    - One struct declaration with field offsets
//	Field        - One member: name, type, shape, offset
//	Database     - Per-file conversion state: stream, index, cache
//	Elem         - Interface every materialized object implements
//	ErrorPolicy  - Fail, Warn or Ignore, chosen per field read
//	Factory      - Allocator plus converter for one target type
//
// # Positional Protocol
//
// A converter is entered with the reader at its instance's first byte.
// Field readers remember that base position, seek to the field's offset,
// decode, and restore the base before returning. Converters therefore
// never move the cursor as far as their caller can tell; the caller
// decides where the next instance begins. ReadFieldPtrNoRecurse is the
// one deliberate exception and documents its cursor contract.
//
// # Schema Tolerance
//
// Fields are located by name, never by position. A field the file does
// not declare, or declares with an incompatible shape, fails that one
// read and the failure passes through the field's error policy:
//
//	Policy  Missing or mismatched field
//	───────────────────────────────────
//	Fail    conversion stops with the error
//	Warn    logged, destination keeps its default
//	Ignore  destination keeps its default
//
// Bad pointers and type conflicts are never downgraded by a policy; they
// indicate corruption, not version skew.
//
// # Numeric Conversion
//
// Scalar reads rescale between the declared and requested primitive
// types. char and short are treated as normalized fixed-point when
// converted to or from float:
//
//	char  ←→ float   v/255,  round(v*255)
//	short ←→ float   v/32767, clamp(v)*32767
//
// Integer widths widen or truncate without scaling.
//
// # Pointer Resolution
//
//  1. Null resolves to nil without touching the block index.
//  2. The address is located in the sorted block index; no spanning
//     block is a fatal bad_pointer.
//  3. The target structure comes from the field's declared type
//     (verified against the block, mismatch is a fatal type_conflict)
//     or from the block itself for opaque fields.
//  4. The cache is consulted, keyed by structure and address.
//  5. On a miss the object is allocated and cached before its converter
//     runs, so pointer cycles terminate.
//
// ReadFieldPtrSlice materializes blocks that pack N instances as one
// shared slice; ReadFieldPtrList resolves blocks that pack N pointers.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[resolve] bad_pointer: no file block spans this address (addr 0x4fe0)
//	[convert] field_missing at MVert.bweight: field not declared in DNA structure
//
// # Thread Safety
//
// Catalog is safe for concurrent use once built. Database holds the
// stream cursor and cache for one conversion and is NOT thread-safe.
package dna
