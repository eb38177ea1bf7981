package scene

import (
	"github.com/kismeter/blendfile/dna"
)

func readLibrary(db *dna.Database, s *dna.Structure, out *Library) error {
	if err := s.ReadStruct(db, "id", dna.Fail, &out.ID); err != nil {
		return err
	}
	if err := s.ReadString(db, "name", dna.Warn, &out.Name); err != nil {
		return err
	}
	return dna.ReadFieldPtr(db, s, "parent", dna.Warn, &out.Parent)
}

func readGroup(db *dna.Database, s *dna.Structure, out *Group) error {
	if err := s.ReadStruct(db, "id", dna.Fail, &out.ID); err != nil {
		return err
	}
	if err := s.ReadInt(db, "layer", dna.Ignore, &out.Layer); err != nil {
		return err
	}
	return s.ReadStruct(db, "gobject", dna.Warn, &out.GObject)
}

// readGroupObjects walks the membership chain the same way base lists are
// walked: forward only, no recursion, back-links left nil.
func readGroupObjects(db *dna.Database, s *dna.Structure, out *GroupObject) error {
	for cur := out; ; {
		if err := dna.ReadFieldPtr(db, s, "ob", dna.Warn, &cur.Object); err != nil {
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

func readCollection(db *dna.Database, s *dna.Structure, out *Collection) error {
	if err := s.ReadStruct(db, "id", dna.Fail, &out.ID); err != nil {
		return err
	}
	if err := s.ReadStruct(db, "gobject", dna.Warn, &out.GObject); err != nil {
		return err
	}
	return s.ReadStruct(db, "children", dna.Warn, &out.Children)
}

func readCollectionObjects(db *dna.Database, s *dna.Structure, out *CollectionObject) error {
	for cur := out; ; {
		if err := dna.ReadFieldPtr(db, s, "ob", dna.Warn, &cur.Object); err != nil {
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

func readCollectionChildren(db *dna.Database, s *dna.Structure, out *CollectionChild) error {
	for cur := out; ; {
		if err := dna.ReadFieldPtr(db, s, "collection", dna.Warn, &cur.Collection); err != nil {
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
