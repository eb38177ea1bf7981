// Package file parses the .blend container: the 12-byte header and the
// sequence of file blocks up to the ENDB terminator.
//
// # Container Layout
//
// A .blend file is a flat sequence of blocks behind a fixed header:
//
//	┌──────────┬─────────┬─────────┬─────┬──────────┐
//	│ Header   │ Block 0 │ Block 1 │ ... │ ENDB     │
//	└──────────┴─────────┴─────────┴─────┴──────────┘
//
// # Header
//
//	Offset  Size  Content
//	──────────────────────────────────────────────
//	0       7     "BLENDER"
//	7       1     pointer size: '_' = 4 bytes, '-' = 8 bytes
//	8       1     endianness: 'v' = little, 'V' = big
//	9       3     version digits, e.g. "279" for 2.79
//
// # File Block
//
// Each block starts with a header followed by Size payload bytes:
//
//	Field      Size            Content
//	────────────────────────────────────────────────────
//	Code       4               block identifier ("GLOB", "SC", "DNA1", ...)
//	Size       4               payload length in bytes
//	Address    pointer size    memory address the payload lived at on save
//	SDNAIndex  4               index into the DNA structure table
//	Count      4               number of struct instances in the payload
//
// Every multi-byte integer, the block Address included, honors the
// header's endianness. The Address is what pointer fields elsewhere in
// the file carry, which makes the address-sorted Index the ground truth
// for pointer resolution: Find answers which block's [Address,
// Address+Size) range contains a given pointer value.
//
// The "DNA1" block payload is not decoded here; the dna package parses
// it into a Catalog. Compressed images (gzip or zstd) are recognized by
// magic and rejected with an unsupported error.
package file
