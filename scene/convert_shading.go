package scene

import (
	"github.com/kismeter/blendfile/dna"
)

// readMaterial covers the fixed-function surface parameters. The texture
// stack is an embedded array of 18 slot pointers; only the first slot is
// resolved here, which is where the primary texture sits in practice.
func readMaterial(db *dna.Database, s *dna.Structure, out *Material) error {
	if err := s.ReadStruct(db, "id", dna.Fail, &out.ID); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "r", dna.Warn, &out.R); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "g", dna.Warn, &out.G); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "b", dna.Warn, &out.B); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "specr", dna.Warn, &out.SpecR); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "specg", dna.Warn, &out.SpecG); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "specb", dna.Warn, &out.SpecB); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "alpha", dna.Warn, &out.Alpha); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "spec", dna.Warn, &out.Spec); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "emit", dna.Warn, &out.Emit); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "amb", dna.Warn, &out.Amb); err != nil {
		return err
	}
	if err := s.ReadShort(db, "har", dna.Ignore, &out.Har); err != nil {
		return err
	}
	if err := s.ReadChar(db, "use_nodes", dna.Ignore, &out.UseNodes); err != nil {
		return err
	}
	return dna.ReadFieldPtr(db, s, "mtex", dna.Warn, &out.MTex)
}

func readMTex(db *dna.Database, s *dna.Structure, out *MTex) error {
	if err := s.ReadShort(db, "texco", dna.Warn, &out.TexCo); err != nil {
		return err
	}
	if err := s.ReadShort(db, "mapto", dna.Warn, &out.MapTo); err != nil {
		return err
	}
	if err := s.ReadShort(db, "blendtype", dna.Ignore, &out.BlendType); err != nil {
		return err
	}
	if err := dna.ReadFieldPtr(db, s, "tex", dna.Warn, &out.Tex); err != nil {
		return err
	}
	if err := s.ReadString(db, "uvname", dna.Warn, &out.UVName); err != nil {
		return err
	}
	if err := s.ReadFloatArray(db, "ofs", dna.Ignore, out.Ofs[:]); err != nil {
		return err
	}
	if err := s.ReadFloatArray(db, "size", dna.Ignore, out.Size[:]); err != nil {
		return err
	}
	return s.ReadFloat(db, "colfac", dna.Ignore, &out.ColFac)
}

func readTex(db *dna.Database, s *dna.Structure, out *Tex) error {
	if err := s.ReadStruct(db, "id", dna.Fail, &out.ID); err != nil {
		return err
	}
	if err := s.ReadShort(db, "type", dna.Warn, &out.Type); err != nil {
		return err
	}
	return dna.ReadFieldPtr(db, s, "ima", dna.Warn, &out.Ima)
}

func readImage(db *dna.Database, s *dna.Structure, out *Image) error {
	if err := s.ReadStruct(db, "id", dna.Fail, &out.ID); err != nil {
		return err
	}
	if err := s.ReadString(db, "name", dna.Warn, &out.Name); err != nil {
		return err
	}
	if err := s.ReadShort(db, "source", dna.Ignore, &out.Source); err != nil {
		return err
	}
	return dna.ReadFieldPtr(db, s, "packedfile", dna.Warn, &out.PackedFile)
}

func readCamera(db *dna.Database, s *dna.Structure, out *Camera) error {
	if err := s.ReadStruct(db, "id", dna.Fail, &out.ID); err != nil {
		return err
	}
	if err := s.ReadChar(db, "type", dna.Warn, &out.Type); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "lens", dna.Warn, &out.Lens); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "ortho_scale", dna.Warn, &out.OrthoScale); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "clipsta", dna.Warn, &out.ClipSta); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "clipend", dna.Warn, &out.ClipEnd); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "shiftx", dna.Ignore, &out.ShiftX); err != nil {
		return err
	}
	return s.ReadFloat(db, "shifty", dna.Ignore, &out.ShiftY)
}

func readLamp(db *dna.Database, s *dna.Structure, out *Lamp) error {
	if err := s.ReadStruct(db, "id", dna.Fail, &out.ID); err != nil {
		return err
	}
	if err := s.ReadShort(db, "type", dna.Warn, &out.Type); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "r", dna.Warn, &out.R); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "g", dna.Warn, &out.G); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "b", dna.Warn, &out.B); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "energy", dna.Warn, &out.Energy); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "dist", dna.Warn, &out.Dist); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "spotsize", dna.Warn, &out.SpotSize); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "spotblend", dna.Warn, &out.SpotBlend); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "att1", dna.Ignore, &out.Att1); err != nil {
		return err
	}
	return s.ReadFloat(db, "att2", dna.Ignore, &out.Att2)
}

func readWorld(db *dna.Database, s *dna.Structure, out *World) error {
	if err := s.ReadStruct(db, "id", dna.Fail, &out.ID); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "horr", dna.Warn, &out.HorR); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "horg", dna.Warn, &out.HorG); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "horb", dna.Warn, &out.HorB); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "ambr", dna.Ignore, &out.AmbR); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "ambg", dna.Ignore, &out.AmbG); err != nil {
		return err
	}
	return s.ReadFloat(db, "ambb", dna.Ignore, &out.AmbB)
}
