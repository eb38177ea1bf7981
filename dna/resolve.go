package dna

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kismeter/blendfile/errors"
)

// FileOffset marks a resolved position inside the file image for data that
// has no DNA structure of its own, such as packed file payloads.
type FileOffset struct {
	Value int
}

// ResolveAt materializes the object a raw address refers to. With a
// non-nil expected structure the target block must record exactly that
// type; with nil the block's own record picks the structure and the result
// is stamped with the structure name it was decoded as. The returned bool
// reports a cache hit, meaning the object already existed before this
// call.
//
// In nonRecursive mode a cache miss allocates and caches the target but
// does not convert it; the reader is left at the target's bytes and the
// caller drives conversion itself. Recursive mode restores the reader
// position before returning.
func (db *Database) ResolveAt(expected *Structure, addr uint64, nonRecursive bool) (Elem, bool, error) {
	if addr == 0 {
		return nil, false, nil
	}
	db.stats.PointersResolved++

	block, ok := db.Blocks.Find(addr)
	if !ok {
		return nil, false, errors.BadPointer(addr, "no file block spans this address")
	}
	s, ok := db.Catalog.StructAt(int(block.SDNAIndex))
	if !ok {
		return nil, false, errors.BadPointer(addr,
			fmt.Sprintf("target block %q records structure index %d outside the catalog", block.Code, block.SDNAIndex))
	}
	if expected != nil && s.Name != expected.Name {
		return nil, false, errors.TypeConflict(expected.Name, s.Name, addr)
	}

	key := cacheKey{s.CacheSlot, addr}
	if e, ok := db.cache[key]; ok {
		db.stats.CacheHits++
		return e, true, nil
	}

	f, ok := db.Catalog.factory(s.Name)
	if !ok {
		return nil, false, errors.NotRegistered(s.Name)
	}
	out := f.New()
	if expected == nil {
		out.SetDNAType(s.Name)
	}

	// Cache before converting so cyclic references find the object
	// instead of recursing forever.
	db.cache[key] = out
	db.stats.CachedObjects++

	save := db.Reader.Position()
	if err := db.Reader.Seek(block.Start + int(addr-block.Address)); err != nil {
		return nil, false, err
	}
	if nonRecursive {
		return out, false, nil
	}
	err := f.Convert(db, s, out)
	db.Reader.Seek(save)
	if err != nil {
		return nil, false, err
	}
	return out, false, nil
}

// pointerField looks up the named field, seeks to it from base and reads
// its raw address. The caller restores the reader position. An embedded
// pointer array reads as its first slot only; the remaining slots are not
// materialized, so the skip is logged.
func pointerField(db *Database, s *Structure, name string, base int) (*Field, uint64, error) {
	f, err := s.Field(name)
	if err != nil {
		return nil, 0, err
	}
	if !f.IsPointer {
		return nil, 0, errors.TypeMismatch(s.Name, f.Name, "field is not a pointer")
	}
	if f.IsArray {
		Logger().Warn("pointer array field resolves first slot only",
			zap.String("structure", s.Name),
			zap.String("field", f.Name),
			zap.Int("declared", f.Total))
	}
	if err := db.Reader.Seek(base + f.Offset); err != nil {
		return nil, 0, err
	}
	addr, err := db.readPointer()
	if err != nil {
		return nil, 0, err
	}
	return f, addr, nil
}

// declaredStruct maps a pointer field's declared type to its structure.
func declaredStruct(db *Database, s *Structure, f *Field) (*Structure, error) {
	t, ok := db.Catalog.StructByName(f.Type)
	if !ok {
		return nil, errors.TypeMismatch(s.Name, f.Name, "declared type "+f.Type+" is not a structure")
	}
	return t, nil
}

func factoryMismatch(s *Structure, f *Field, e Elem) error {
	return errors.New(errors.PhaseResolve, errors.KindTypeMismatch).
		Structure(s.Name).
		Field(f.Name).
		Detail("registered converter produced %T", e).
		Build()
}

// ReadFieldPtr reads the named pointer field and materializes the object
// it refers to, which must match the field's declared type. A null pointer
// leaves *out nil without error.
func ReadFieldPtr[T any, PT ElemPtr[T]](db *Database, s *Structure, name string, pol ErrorPolicy, out *PT) error {
	base := db.Reader.Position()
	defer db.Reader.Seek(base)

	err := func() error {
		f, addr, err := pointerField(db, s, name, base)
		if err != nil {
			return err
		}
		if addr == 0 {
			*out = nil
			return nil
		}
		expected, err := declaredStruct(db, s, f)
		if err != nil {
			return err
		}
		e, _, err := db.ResolveAt(expected, addr, false)
		if err != nil {
			return err
		}
		typed, ok := e.(PT)
		if !ok {
			return factoryMismatch(s, f, e)
		}
		*out = typed
		return nil
	}()
	if err != nil {
		return pol.apply(err, s.Name, name)
	}
	db.stats.FieldsRead++
	return nil
}

// ReadFieldPtrNoRecurse reads the named pointer field, allocating and
// caching its target without converting it. On a cache miss with a
// non-null target the reader is left parked at the target's bytes and the
// caller drives conversion; the returned bool is true when the target was
// already cached and therefore needs no conversion at all. Linked-list
// converters use this to walk node by node without recursing.
func ReadFieldPtrNoRecurse[T any, PT ElemPtr[T]](db *Database, s *Structure, name string, pol ErrorPolicy, out *PT) (bool, error) {
	base := db.Reader.Position()
	restore := true
	defer func() {
		if restore {
			db.Reader.Seek(base)
		}
	}()

	cached := false
	err := func() error {
		f, addr, err := pointerField(db, s, name, base)
		if err != nil {
			return err
		}
		if addr == 0 {
			*out = nil
			return nil
		}
		expected, err := declaredStruct(db, s, f)
		if err != nil {
			return err
		}
		e, hit, err := db.ResolveAt(expected, addr, true)
		if err != nil {
			return err
		}
		typed, ok := e.(PT)
		if !ok {
			return factoryMismatch(s, f, e)
		}
		*out = typed
		cached = hit
		if !hit {
			// Reader stays at the freshly allocated target.
			restore = false
		}
		return nil
	}()
	if err != nil {
		return false, pol.apply(err, s.Name, name)
	}
	db.stats.FieldsRead++
	return cached, nil
}

// ReadFieldPtrSlice reads a pointer field whose target block packs N
// consecutive instances of the declared type and materializes all of them
// as one slice. N is the block size divided by the structure size, and all
// references to the same address share the cached slice.
func ReadFieldPtrSlice[T any, PT ElemPtr[T]](db *Database, s *Structure, name string, pol ErrorPolicy, out *[]T) error {
	base := db.Reader.Position()
	defer db.Reader.Seek(base)

	err := func() error {
		f, addr, err := pointerField(db, s, name, base)
		if err != nil {
			return err
		}
		if addr == 0 {
			*out = nil
			return nil
		}
		expected, err := declaredStruct(db, s, f)
		if err != nil {
			return err
		}
		db.stats.PointersResolved++

		block, ok := db.Blocks.Find(addr)
		if !ok {
			return errors.BadPointer(addr, "no file block spans this address")
		}
		actual, ok := db.Catalog.StructAt(int(block.SDNAIndex))
		if !ok {
			return errors.BadPointer(addr,
				fmt.Sprintf("target block %q records structure index %d outside the catalog", block.Code, block.SDNAIndex))
		}
		if actual.Name != expected.Name {
			return errors.TypeConflict(expected.Name, actual.Name, addr)
		}

		key := cacheKey{actual.CacheSlot, addr}
		if v, ok := db.slices[key]; ok {
			db.stats.CacheHits++
			typed, ok := v.([]T)
			if !ok {
				return errors.New(errors.PhaseResolve, errors.KindTypeMismatch).
					Structure(s.Name).
					Field(f.Name).
					Detail("cached slice holds %T", v).
					Build()
			}
			*out = typed
			return nil
		}

		n := int(block.Size) / actual.Size
		vec := make([]T, n)
		db.slices[key] = vec
		db.stats.CachedSlices++

		start := block.Start + int(addr-block.Address)
		for i := 0; i < n; i++ {
			if err := db.Reader.Seek(start + i*actual.Size); err != nil {
				return err
			}
			if err := db.Convert(actual, PT(&vec[i])); err != nil {
				return err
			}
		}
		*out = vec
		return nil
	}()
	if err != nil {
		return pol.apply(err, s.Name, name)
	}
	db.stats.FieldsRead++
	return nil
}

// ReadFieldPtrList reads a pointer field whose target block holds a packed
// array of pointers, resolving each entry against the field's declared
// type. Null entries and entries that fail recoverably stay nil under Warn
// and Ignore; under Fail any entry that cannot be resolved fails the whole
// field.
func ReadFieldPtrList[T any, PT ElemPtr[T]](db *Database, s *Structure, name string, pol ErrorPolicy, out *[]PT) error {
	base := db.Reader.Position()
	defer db.Reader.Seek(base)

	err := func() error {
		f, addr, err := pointerField(db, s, name, base)
		if err != nil {
			return err
		}
		if addr == 0 {
			*out = nil
			return nil
		}
		expected, err := declaredStruct(db, s, f)
		if err != nil {
			return err
		}
		db.stats.PointersResolved++

		block, ok := db.Blocks.Find(addr)
		if !ok {
			return errors.BadPointer(addr, "no file block spans this address")
		}

		n := int(block.Size) / db.PointerSize
		if err := db.Reader.Seek(block.Start + int(addr-block.Address)); err != nil {
			return err
		}
		addrs := make([]uint64, n)
		for i := range addrs {
			if addrs[i], err = db.readPointer(); err != nil {
				return err
			}
		}

		vec := make([]PT, n)
		for i, a := range addrs {
			if a == 0 {
				continue
			}
			e, _, err := db.ResolveAt(expected, a, false)
			if err == nil {
				typed, ok := e.(PT)
				if !ok {
					err = factoryMismatch(s, f, e)
				} else {
					vec[i] = typed
				}
			}
			if err = pol.apply(err, s.Name, name); err != nil {
				return err
			}
		}
		*out = vec
		return nil
	}()
	if err != nil {
		return pol.apply(err, s.Name, name)
	}
	db.stats.FieldsRead++
	return nil
}

// ReadFieldPtrAny reads a pointer field declared with an opaque type and
// lets the target block pick the structure, stamping the materialized
// object with the structure name it was decoded as.
func ReadFieldPtrAny(db *Database, s *Structure, name string, pol ErrorPolicy, out *Elem) error {
	base := db.Reader.Position()
	defer db.Reader.Seek(base)

	err := func() error {
		_, addr, err := pointerField(db, s, name, base)
		if err != nil {
			return err
		}
		if addr == 0 {
			*out = nil
			return nil
		}
		e, _, err := db.ResolveAt(nil, addr, false)
		if err != nil {
			return err
		}
		*out = e
		return nil
	}()
	if err != nil {
		return pol.apply(err, s.Name, name)
	}
	db.stats.FieldsRead++
	return nil
}

// ReadFieldOffset resolves a pointer field to the raw file position of its
// target bytes without materializing an object.
func ReadFieldOffset(db *Database, s *Structure, name string, pol ErrorPolicy, out **FileOffset) error {
	base := db.Reader.Position()
	defer db.Reader.Seek(base)

	err := func() error {
		_, addr, err := pointerField(db, s, name, base)
		if err != nil {
			return err
		}
		if addr == 0 {
			*out = nil
			return nil
		}
		db.stats.PointersResolved++
		block, ok := db.Blocks.Find(addr)
		if !ok {
			return errors.BadPointer(addr, "no file block spans this address")
		}
		*out = &FileOffset{Value: block.Start + int(addr-block.Address)}
		return nil
	}()
	if err != nil {
		return pol.apply(err, s.Name, name)
	}
	db.stats.FieldsRead++
	return nil
}
