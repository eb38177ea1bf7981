package scene

import (
	"github.com/kismeter/blendfile/dna"
	"github.com/kismeter/blendfile/errors"
	"github.com/kismeter/blendfile/file"
)

// converter adapts a typed field-reading function into the factory shape
// the catalog registry takes.
func converter[T any, PT dna.ElemPtr[T]](read func(db *dna.Database, s *dna.Structure, out PT) error) dna.Factory {
	return dna.Factory{
		New: func() dna.Elem { return PT(new(T)) },
		Convert: func(db *dna.Database, s *dna.Structure, out dna.Elem) error {
			return read(db, s, out.(PT))
		},
	}
}

// RegisterConverters installs a factory for every structure the model
// covers. Structures the file declares but nothing here registers stay
// opaque; pointers at them surface as recoverable not_registered errors
// settled by the field's policy.
func RegisterConverters(cat *dna.Catalog) {
	cat.Register("ID", converter(readID))
	cat.Register("ListBase", converter(readListBase))
	cat.Register("PackedFile", converter(readPackedFile))
	cat.Register("Base", converter(readBaseList))
	cat.Register("Scene", converter(readScene))
	cat.Register("Object", converter(readObject))
	cat.Register("Mesh", converter(readMesh))
	cat.Register("MVert", converter(readMVert))
	cat.Register("MEdge", converter(readMEdge))
	cat.Register("MFace", converter(readMFace))
	cat.Register("MTFace", converter(readMTFace))
	cat.Register("MLoop", converter(readMLoop))
	cat.Register("MLoopUV", converter(readMLoopUV))
	cat.Register("MLoopCol", converter(readMLoopCol))
	cat.Register("MPoly", converter(readMPoly))
	cat.Register("MCol", converter(readMCol))
	cat.Register("MDeformWeight", converter(readMDeformWeight))
	cat.Register("MDeformVert", converter(readMDeformVert))
	cat.Register("CustomData", converter(readCustomData))
	cat.Register("CustomDataLayer", converter(readCustomDataLayer))
	cat.Register("Material", converter(readMaterial))
	cat.Register("MTex", converter(readMTex))
	cat.Register("Tex", converter(readTex))
	cat.Register("Image", converter(readImage))
	cat.Register("Camera", converter(readCamera))
	cat.Register("Lamp", converter(readLamp))
	cat.Register("World", converter(readWorld))
	cat.Register("Library", converter(readLibrary))
	cat.Register("Group", converter(readGroup))
	cat.Register("GroupObject", converter(readGroupObjects))
	cat.Register("Collection", converter(readCollection))
	cat.Register("CollectionObject", converter(readCollectionObjects))
	cat.Register("CollectionChild", converter(readCollectionChildren))
	cat.Register("ModifierData", converter(readModifierData))
	cat.Register("SubsurfModifierData", converter(readSubsurfModifier))
	cat.Register("MirrorModifierData", converter(readMirrorModifier))
}

// ConvertScene materializes the object graph hanging off the file's first
// scene block. Resolution goes through the database cache, so everything
// reachable from the scene unifies with later lookups by address.
func ConvertScene(db *dna.Database, f *file.File) (*Scene, error) {
	for i := range f.Blocks {
		b := &f.Blocks[i]
		st, ok := db.Catalog.StructAt(int(b.SDNAIndex))
		if !ok || st.Name != "Scene" {
			continue
		}
		e, _, err := db.ResolveAt(st, b.Address, false)
		if err != nil {
			return nil, err
		}
		sc, ok := e.(*Scene)
		if !ok {
			return nil, errors.New(errors.PhaseConvert, errors.KindTypeMismatch).
				Structure("Scene").
				Detail("registered converter produced %T", e).
				Build()
		}
		return sc, nil
	}
	return nil, errors.InvalidData(errors.PhaseConvert, "file contains no scene block")
}
