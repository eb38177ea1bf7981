// Package scene maps file structures onto Go types: the datablock model
// (Scene, Object, Mesh, Material and the rest) and a converter per type
// that reads fields by name through the dna package.
//
// Converters never assume a layout. Every field access goes through the
// structure's own offsets from the file's DNA, and each field carries a
// policy saying what a schema mismatch costs: geometry and identity must
// be present, cosmetic parameters degrade to zero values. A 2.5 file and
// a 2.8 file run through the same converters; fields one of them lacks
// settle according to policy.
//
// Linked lists (scene bases, group members, collection contents) are
// walked with explicit loops over no-recurse pointer hops, so list
// length never turns into call-stack depth. Back-links are left nil.
//
// ConvertScene is the entry point: register the converters on a parsed
// catalog, then hand it the file to materialize the first scene and
// everything reachable from it.
package scene
