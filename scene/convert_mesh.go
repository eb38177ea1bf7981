package scene

import (
	"github.com/kismeter/blendfile/dna"
)

// readMesh pulls every geometry array the file carries. Which arrays are
// populated depends on the writing version: 2.62 and earlier fill Face,
// 2.63+ fill Loop/Poly and usually leave Face empty. Counts and vertices
// are load-bearing; everything else degrades to an empty slice.
func readMesh(db *dna.Database, s *dna.Structure, out *Mesh) error {
	if err := s.ReadStruct(db, "id", dna.Fail, &out.ID); err != nil {
		return err
	}
	if err := s.ReadInt(db, "totvert", dna.Fail, &out.TotVert); err != nil {
		return err
	}
	if err := s.ReadInt(db, "totedge", dna.Ignore, &out.TotEdge); err != nil {
		return err
	}
	if err := s.ReadInt(db, "totface", dna.Fail, &out.TotFace); err != nil {
		return err
	}
	if err := s.ReadInt(db, "totloop", dna.Ignore, &out.TotLoop); err != nil {
		return err
	}
	if err := s.ReadInt(db, "totpoly", dna.Ignore, &out.TotPoly); err != nil {
		return err
	}
	if err := dna.ReadFieldPtrSlice(db, s, "mvert", dna.Fail, &out.Vert); err != nil {
		return err
	}
	if err := dna.ReadFieldPtrSlice(db, s, "medge", dna.Warn, &out.Edge); err != nil {
		return err
	}
	if err := dna.ReadFieldPtrSlice(db, s, "mface", dna.Warn, &out.Face); err != nil {
		return err
	}
	if err := dna.ReadFieldPtrSlice(db, s, "mtface", dna.Warn, &out.TFace); err != nil {
		return err
	}
	if err := dna.ReadFieldPtrSlice(db, s, "mloop", dna.Ignore, &out.Loop); err != nil {
		return err
	}
	if err := dna.ReadFieldPtrSlice(db, s, "mloopuv", dna.Ignore, &out.LoopUV); err != nil {
		return err
	}
	if err := dna.ReadFieldPtrSlice(db, s, "mloopcol", dna.Ignore, &out.LoopCol); err != nil {
		return err
	}
	if err := dna.ReadFieldPtrSlice(db, s, "mpoly", dna.Ignore, &out.Poly); err != nil {
		return err
	}
	if err := dna.ReadFieldPtrSlice(db, s, "mcol", dna.Ignore, &out.Col); err != nil {
		return err
	}
	if err := dna.ReadFieldPtrSlice(db, s, "dvert", dna.Warn, &out.DVert); err != nil {
		return err
	}
	if err := dna.ReadFieldPtrList(db, s, "mat", dna.Warn, &out.Mat); err != nil {
		return err
	}
	if err := s.ReadStruct(db, "vdata", dna.Ignore, &out.VData); err != nil {
		return err
	}
	if err := s.ReadStruct(db, "ldata", dna.Ignore, &out.LData); err != nil {
		return err
	}
	return s.ReadStruct(db, "pdata", dna.Ignore, &out.PData)
}

func readMVert(db *dna.Database, s *dna.Structure, out *MVert) error {
	if err := s.ReadFloatArray(db, "co", dna.Fail, out.Co[:]); err != nil {
		return err
	}
	if err := s.ReadShortArray(db, "no", dna.Warn, out.No[:]); err != nil {
		return err
	}
	if err := s.ReadChar(db, "flag", dna.Ignore, &out.Flag); err != nil {
		return err
	}
	return s.ReadChar(db, "bweight", dna.Ignore, &out.BWeight)
}

func readMEdge(db *dna.Database, s *dna.Structure, out *MEdge) error {
	if err := s.ReadInt(db, "v1", dna.Fail, &out.V1); err != nil {
		return err
	}
	if err := s.ReadInt(db, "v2", dna.Fail, &out.V2); err != nil {
		return err
	}
	if err := s.ReadChar(db, "crease", dna.Ignore, &out.Crease); err != nil {
		return err
	}
	return s.ReadShort(db, "flag", dna.Ignore, &out.Flag)
}

func readMFace(db *dna.Database, s *dna.Structure, out *MFace) error {
	if err := s.ReadInt(db, "v1", dna.Fail, &out.V1); err != nil {
		return err
	}
	if err := s.ReadInt(db, "v2", dna.Fail, &out.V2); err != nil {
		return err
	}
	if err := s.ReadInt(db, "v3", dna.Fail, &out.V3); err != nil {
		return err
	}
	if err := s.ReadInt(db, "v4", dna.Fail, &out.V4); err != nil {
		return err
	}
	if err := s.ReadShort(db, "mat_nr", dna.Warn, &out.MatNr); err != nil {
		return err
	}
	return s.ReadChar(db, "flag", dna.Ignore, &out.Flag)
}

func readMTFace(db *dna.Database, s *dna.Structure, out *MTFace) error {
	if err := dna.ReadFloatMatrix(db, s, "uv", dna.Fail, out.UV[:]); err != nil {
		return err
	}
	if err := dna.ReadFieldPtr(db, s, "tpage", dna.Warn, &out.TPage); err != nil {
		return err
	}
	if err := s.ReadChar(db, "flag", dna.Ignore, &out.Flag); err != nil {
		return err
	}
	if err := s.ReadShort(db, "mode", dna.Ignore, &out.Mode); err != nil {
		return err
	}
	return s.ReadShort(db, "tile", dna.Ignore, &out.Tile)
}

func readMLoop(db *dna.Database, s *dna.Structure, out *MLoop) error {
	if err := s.ReadInt(db, "v", dna.Fail, &out.V); err != nil {
		return err
	}
	return s.ReadInt(db, "e", dna.Warn, &out.E)
}

func readMLoopUV(db *dna.Database, s *dna.Structure, out *MLoopUV) error {
	if err := s.ReadFloatArray(db, "uv", dna.Fail, out.UV[:]); err != nil {
		return err
	}
	return s.ReadInt(db, "flag", dna.Ignore, &out.Flag)
}

func readMLoopCol(db *dna.Database, s *dna.Structure, out *MLoopCol) error {
	if err := s.ReadChar(db, "r", dna.Ignore, &out.R); err != nil {
		return err
	}
	if err := s.ReadChar(db, "g", dna.Ignore, &out.G); err != nil {
		return err
	}
	if err := s.ReadChar(db, "b", dna.Ignore, &out.B); err != nil {
		return err
	}
	return s.ReadChar(db, "a", dna.Ignore, &out.A)
}

func readMPoly(db *dna.Database, s *dna.Structure, out *MPoly) error {
	if err := s.ReadInt(db, "loopstart", dna.Fail, &out.LoopStart); err != nil {
		return err
	}
	if err := s.ReadInt(db, "totloop", dna.Fail, &out.TotLoop); err != nil {
		return err
	}
	if err := s.ReadShort(db, "mat_nr", dna.Warn, &out.MatNr); err != nil {
		return err
	}
	return s.ReadChar(db, "flag", dna.Ignore, &out.Flag)
}

func readMCol(db *dna.Database, s *dna.Structure, out *MCol) error {
	if err := s.ReadChar(db, "a", dna.Ignore, &out.A); err != nil {
		return err
	}
	if err := s.ReadChar(db, "r", dna.Ignore, &out.R); err != nil {
		return err
	}
	if err := s.ReadChar(db, "g", dna.Ignore, &out.G); err != nil {
		return err
	}
	return s.ReadChar(db, "b", dna.Ignore, &out.B)
}

func readMDeformWeight(db *dna.Database, s *dna.Structure, out *MDeformWeight) error {
	if err := s.ReadInt(db, "def_nr", dna.Fail, &out.DefNr); err != nil {
		return err
	}
	return s.ReadFloat(db, "weight", dna.Fail, &out.Weight)
}

func readMDeformVert(db *dna.Database, s *dna.Structure, out *MDeformVert) error {
	if err := dna.ReadFieldPtrSlice(db, s, "dw", dna.Warn, &out.DW); err != nil {
		return err
	}
	return s.ReadInt(db, "totweight", dna.Warn, &out.TotWeight)
}

// readCustomData records the layer directory only. Layer payloads are
// typed unions keyed by layer type; decoding them is out of scope, and
// consumers fall back to the geometry arrays on the mesh itself.
func readCustomData(db *dna.Database, s *dna.Structure, out *CustomData) error {
	if err := s.ReadInt(db, "totlayer", dna.Ignore, &out.TotLayer); err != nil {
		return err
	}
	return dna.ReadFieldPtrSlice(db, s, "layers", dna.Ignore, &out.Layers)
}

// readCustomDataLayer leaves the layer's data pointer unresolved, its
// layout depends on the layer type.
func readCustomDataLayer(db *dna.Database, s *dna.Structure, out *CustomDataLayer) error {
	if err := s.ReadInt(db, "type", dna.Warn, &out.Type); err != nil {
		return err
	}
	if err := s.ReadInt(db, "flag", dna.Ignore, &out.Flag); err != nil {
		return err
	}
	if err := s.ReadInt(db, "active", dna.Ignore, &out.Active); err != nil {
		return err
	}
	return s.ReadString(db, "name", dna.Warn, &out.Name)
}
