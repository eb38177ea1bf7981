package scene

import (
	"github.com/kismeter/blendfile/dna"
)

func readID(db *dna.Database, s *dna.Structure, out *ID) error {
	if err := s.ReadString(db, "name", dna.Warn, &out.Name); err != nil {
		return err
	}
	if err := s.ReadShort(db, "flag", dna.Ignore, &out.Flag); err != nil {
		return err
	}
	return dna.ReadFieldPtr(db, s, "lib", dna.Warn, &out.Lib)
}

func readListBase(db *dna.Database, s *dna.Structure, out *ListBase) error {
	if err := dna.ReadFieldPtrAny(db, s, "first", dna.Ignore, &out.First); err != nil {
		return err
	}
	return dna.ReadFieldPtrAny(db, s, "last", dna.Ignore, &out.Last)
}

func readPackedFile(db *dna.Database, s *dna.Structure, out *PackedFile) error {
	if err := s.ReadInt(db, "size", dna.Warn, &out.Size); err != nil {
		return err
	}
	if err := s.ReadInt(db, "seek", dna.Ignore, &out.Seek); err != nil {
		return err
	}
	return dna.ReadFieldOffset(db, s, "data", dna.Warn, &out.Data)
}

// readBaseList materializes the chain starting at the entry under the
// cursor. Scene lists can run to thousands of entries, so next hops use
// no-recurse resolution and an explicit loop instead of nesting converter
// calls. A cached next means the tail is already built or the list is
// circular; either way the link is set and the walk stops. Prev stays
// nil, traversal is forward only.
func readBaseList(db *dna.Database, s *dna.Structure, out *Base) error {
	for cur := out; ; {
		if err := dna.ReadFieldPtr(db, s, "object", dna.Warn, &cur.Object); err != nil {
			return err
		}
		cached, err := dna.ReadFieldPtrNoRecurse(db, s, "next", dna.Warn, &cur.Next)
		if err != nil {
			return err
		}
		if cur.Next == nil || cached {
			return nil
		}
		cur = cur.Next
	}
}

func readScene(db *dna.Database, s *dna.Structure, out *Scene) error {
	if err := s.ReadStruct(db, "id", dna.Fail, &out.ID); err != nil {
		return err
	}
	if err := dna.ReadFieldPtr(db, s, "camera", dna.Warn, &out.Camera); err != nil {
		return err
	}
	if err := dna.ReadFieldPtr(db, s, "world", dna.Warn, &out.World); err != nil {
		return err
	}
	if err := s.ReadStruct(db, "base", dna.Warn, &out.Base); err != nil {
		return err
	}
	if err := dna.ReadFieldPtr(db, s, "basact", dna.Warn, &out.Basact); err != nil {
		return err
	}
	// 2.80+ moved scene membership into collections; older files warn
	// the field away.
	return dna.ReadFieldPtr(db, s, "master_collection", dna.Warn, &out.MasterCollection)
}

func readObject(db *dna.Database, s *dna.Structure, out *Object) error {
	if err := s.ReadStruct(db, "id", dna.Fail, &out.ID); err != nil {
		return err
	}
	var typ int16
	if err := s.ReadShort(db, "type", dna.Fail, &typ); err != nil {
		return err
	}
	out.Type = ObjectType(typ)
	if err := dna.ReadFloatMatrix(db, s, "obmat", dna.Fail, out.ObMat[:]); err != nil {
		return err
	}
	if err := dna.ReadFloatMatrix(db, s, "parentinv", dna.Warn, out.ParentInv[:]); err != nil {
		return err
	}
	if err := dna.ReadFieldPtr(db, s, "parent", dna.Warn, &out.Parent); err != nil {
		return err
	}
	if err := dna.ReadFieldPtr(db, s, "track", dna.Ignore, &out.Track); err != nil {
		return err
	}
	if err := dna.ReadFieldPtrAny(db, s, "data", dna.Warn, &out.Data); err != nil {
		return err
	}
	if err := dna.ReadFieldPtr(db, s, "dup_group", dna.Ignore, &out.DupGroup); err != nil {
		return err
	}
	if err := s.ReadInt(db, "lay", dna.Ignore, &out.Lay); err != nil {
		return err
	}
	return s.ReadStruct(db, "modifiers", dna.Warn, &out.Modifiers)
}

// readModifierData handles the shared modifier header. The next link is
// dynamic: each stack entry is written under its concrete structure, so
// the declared ModifierData type would conflict with the block.
func readModifierData(db *dna.Database, s *dna.Structure, out *ModifierData) error {
	if err := dna.ReadFieldPtrAny(db, s, "next", dna.Warn, &out.Next); err != nil {
		return err
	}
	if err := s.ReadInt(db, "type", dna.Warn, &out.Type); err != nil {
		return err
	}
	if err := s.ReadInt(db, "mode", dna.Ignore, &out.Mode); err != nil {
		return err
	}
	return s.ReadString(db, "name", dna.Warn, &out.Name)
}

func readSubsurfModifier(db *dna.Database, s *dna.Structure, out *SubsurfModifierData) error {
	if err := s.ReadStruct(db, "modifier", dna.Fail, &out.Modifier); err != nil {
		return err
	}
	if err := s.ReadShort(db, "subdivType", dna.Ignore, &out.SubdivType); err != nil {
		return err
	}
	if err := s.ReadShort(db, "levels", dna.Warn, &out.Levels); err != nil {
		return err
	}
	if err := s.ReadShort(db, "renderLevels", dna.Ignore, &out.RenderLevels); err != nil {
		return err
	}
	return s.ReadShort(db, "flags", dna.Ignore, &out.Flags)
}

func readMirrorModifier(db *dna.Database, s *dna.Structure, out *MirrorModifierData) error {
	if err := s.ReadStruct(db, "modifier", dna.Fail, &out.Modifier); err != nil {
		return err
	}
	if err := s.ReadShort(db, "axis", dna.Ignore, &out.Axis); err != nil {
		return err
	}
	if err := s.ReadShort(db, "flag", dna.Warn, &out.Flag); err != nil {
		return err
	}
	if err := s.ReadFloat(db, "tolerance", dna.Ignore, &out.Tolerance); err != nil {
		return err
	}
	return dna.ReadFieldPtr(db, s, "mirror_ob", dna.Warn, &out.MirrorOb)
}
