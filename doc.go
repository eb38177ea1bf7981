// Package blendfile reads Blender .blend files: the binary container,
// the DNA schema every file embeds, and the datablock graph, which it
// materializes into Go structs without hard-coding a single layout.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	blendfile/           Root package with the Document facade
//	├── stream/          Bounded cursor reads over the file image
//	├── file/            Container parsing: header, block scan, address index
//	├── dna/             DNA catalog, field readers, pointer resolution
//	├── scene/           Datablock model and per-type converters
//	├── scenegraph/      Flattened node/mesh/material scene for consumers
//	└── errors/          Structured errors shared by every phase
//
// # Quick Start
//
// Import a file and flatten it:
//
//	doc, err := blendfile.Import("cube.blend")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	graph, err := doc.Graph()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(graph.Root.Name, len(graph.Meshes))
//
// # Version Tolerance
//
// A .blend file is a memory dump: every struct the writing Blender knew,
// at that build's exact field offsets. The DNA block in the same file
// describes those offsets, so the reader never assumes a layout. Fields
// are fetched by name through the catalog, which is why one code path
// covers 2.5-era files and 2.8-era files alike. Fields a file lacks are
// settled by per-field error policies: identity and geometry must be
// present, cosmetic parameters quietly default.
//
// # Logging
//
// The dna and scenegraph packages log schema mismatches through zap.
// Both default to a no-op logger; hand them a real one to see what a
// tolerant import skipped:
//
//	dna.SetLogger(logger)
//	scenegraph.SetLogger(logger)
//
// # Thread Safety
//
// A Document and its Database are single-conversion state and NOT safe
// for concurrent use. Import files concurrently by giving each goroutine
// its own Document.
//
// # Memory Model
//
// ImportBytes keeps the input image referenced: packed file payloads
// (embedded textures) are returned as offsets into it rather than
// copies. Hold the image as long as those offsets matter.
package blendfile
