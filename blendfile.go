package blendfile

import (
	"os"

	"github.com/kismeter/blendfile/dna"
	"github.com/kismeter/blendfile/errors"
	"github.com/kismeter/blendfile/file"
	"github.com/kismeter/blendfile/scene"
	"github.com/kismeter/blendfile/scenegraph"
)

// Document is one imported file: the parsed container, the conversion
// database over it, and the materialized scene.
type Document struct {
	File  *file.File
	DB    *dna.Database
	Scene *scene.Scene
}

// Import reads and converts the file at path.
func Import(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStream, errors.KindInvalidData, err, "reading "+path)
	}
	return ImportBytes(data)
}

// ImportBytes converts an in-memory file image: container scan, DNA
// catalog, then the scene and everything reachable from it. The document
// keeps data referenced; packed file payloads resolve against it.
func ImportBytes(data []byte) (*Document, error) {
	f, r, err := file.Parse(data)
	if err != nil {
		return nil, err
	}
	if err := r.Seek(f.DNA.Start); err != nil {
		return nil, err
	}
	cat, err := dna.ParseCatalog(r, f.Header.PointerSize)
	if err != nil {
		return nil, err
	}
	scene.RegisterConverters(cat)
	db := dna.NewDatabase(r, cat, f.Index, f.Header.PointerSize)
	sc, err := scene.ConvertScene(db, f)
	if err != nil {
		return nil, err
	}
	return &Document{File: f, DB: db, Scene: sc}, nil
}

// Graph flattens the document's scene into a generic node tree.
func (d *Document) Graph() (*scenegraph.Scene, error) {
	return scenegraph.Build(d.Scene)
}
