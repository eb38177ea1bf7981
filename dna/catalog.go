package dna

import (
	"github.com/kismeter/blendfile/errors"
	"github.com/kismeter/blendfile/stream"
)

// ConvertFunc populates out from the structure instance at the reader's
// current position. Implementations read fields by name through the
// positional protocol and never advance the caller's position.
type ConvertFunc func(db *Database, s *Structure, out Elem) error

// Factory pairs the allocator and converter registered for one target
// type name.
type Factory struct {
	New     func() Elem
	Convert ConvertFunc
}

// Catalog is the full set of structures parsed from one file's DNA block
// plus the registry mapping type names to (constructor, converter) pairs.
// Built once per file; read-only during conversion apart from Register.
type Catalog struct {
	structures []*Structure
	byName     map[string]int
	names      []string
	types      []string
	lengths    []uint16
	factories  map[string]Factory
}

// NewCatalog returns an empty catalog. Tests and tools build catalogs
// programmatically; ParseCatalog builds them from DNA1 payload bytes.
func NewCatalog() *Catalog {
	return &Catalog{
		byName:    make(map[string]int),
		factories: make(map[string]Factory),
	}
}

// Add appends a structure and assigns its index and cache slot.
func (c *Catalog) Add(s *Structure) {
	s.Index = len(c.structures)
	s.CacheSlot = s.Index
	c.byName[s.Name] = s.Index
	c.structures = append(c.structures, s)
}

// StructByName returns the structure declared under the given type name.
func (c *Catalog) StructByName(name string) (*Structure, bool) {
	i, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return c.structures[i], true
}

// StructAt returns the structure at the given table index, as recorded in
// file block headers.
func (c *Catalog) StructAt(i int) (*Structure, bool) {
	if i < 0 || i >= len(c.structures) {
		return nil, false
	}
	return c.structures[i], true
}

// NumStructs returns the number of declared structures.
func (c *Catalog) NumStructs() int {
	return len(c.structures)
}

// Structures returns the ordered structure table. Callers must not
// mutate it.
func (c *Catalog) Structures() []*Structure {
	return c.structures
}

// Register installs the (constructor, converter) pair for a target type
// name. Run once before any conversion.
func (c *Catalog) Register(typeName string, f Factory) {
	c.factories[typeName] = f
}

// factory returns the registered pair for a type name.
func (c *Catalog) factory(typeName string) (Factory, bool) {
	f, ok := c.factories[typeName]
	return f, ok
}

// ParseCatalog decodes a DNA1 payload. The reader must be positioned at
// the payload start; section padding aligns to 4 bytes relative to that
// position. ptrSize is the header's pointer width, which fixes the
// on-disk size of every pointer field.
func ParseCatalog(r *stream.Reader, ptrSize int) (*Catalog, error) {
	base := r.Position()

	if err := expectTag(r, "SDNA"); err != nil {
		return nil, err
	}

	if err := expectTag(r, "NAME"); err != nil {
		return nil, err
	}
	numNames, err := r.ReadU32()
	if err != nil {
		return nil, dnaTruncated(err, "name count")
	}
	names := make([]string, numNames)
	for i := range names {
		if names[i], err = r.ReadCString(); err != nil {
			return nil, dnaTruncated(err, "name table")
		}
	}
	if err := align4(r, base); err != nil {
		return nil, err
	}

	if err := expectTag(r, "TYPE"); err != nil {
		return nil, err
	}
	numTypes, err := r.ReadU32()
	if err != nil {
		return nil, dnaTruncated(err, "type count")
	}
	types := make([]string, numTypes)
	for i := range types {
		if types[i], err = r.ReadCString(); err != nil {
			return nil, dnaTruncated(err, "type table")
		}
	}
	if err := align4(r, base); err != nil {
		return nil, err
	}

	if err := expectTag(r, "TLEN"); err != nil {
		return nil, err
	}
	lengths := make([]uint16, numTypes)
	for i := range lengths {
		if lengths[i], err = r.ReadU16(); err != nil {
			return nil, dnaTruncated(err, "length table")
		}
	}
	if err := align4(r, base); err != nil {
		return nil, err
	}

	if err := expectTag(r, "STRC"); err != nil {
		return nil, err
	}
	numStructs, err := r.ReadU32()
	if err != nil {
		return nil, dnaTruncated(err, "structure count")
	}

	c := NewCatalog()
	c.names = names
	c.types = types
	c.lengths = lengths

	for i := 0; i < int(numStructs); i++ {
		typeIdx, err := r.ReadU16()
		if err != nil {
			return nil, dnaTruncated(err, "structure header")
		}
		numFields, err := r.ReadU16()
		if err != nil {
			return nil, dnaTruncated(err, "structure header")
		}
		if int(typeIdx) >= len(types) {
			return nil, errors.New(errors.PhaseDNA, errors.KindInvalidData).
				Detail("structure %d names type index %d of %d", i, typeIdx, len(types)).
				Build()
		}

		fields := make([]Field, 0, numFields)
		offset := 0
		for j := 0; j < int(numFields); j++ {
			ft, err := r.ReadU16()
			if err != nil {
				return nil, dnaTruncated(err, "field table")
			}
			fn, err := r.ReadU16()
			if err != nil {
				return nil, dnaTruncated(err, "field table")
			}
			if int(ft) >= len(types) || int(fn) >= len(names) {
				return nil, errors.New(errors.PhaseDNA, errors.KindInvalidData).
					Detail("field %d.%d references type %d / name %d out of range", i, j, ft, fn).
					Build()
			}

			f, err := parseFieldName(names[fn])
			if err != nil {
				return nil, err
			}
			f.Type = types[ft]
			f.Offset = offset
			if f.IsPointer {
				f.Size = ptrSize * f.Total
			} else {
				f.Size = int(lengths[ft]) * f.Total
			}
			offset += f.Size
			fields = append(fields, f)
		}

		name := types[typeIdx]
		size := int(lengths[typeIdx])
		if offset != size {
			return nil, errors.New(errors.PhaseDNA, errors.KindInvalidData).
				Structure(name).
				Detail("field layout spans %d bytes, TLEN declares %d", offset, size).
				Build()
		}
		c.Add(NewStructure(name, size, fields))
	}

	return c, nil
}

func expectTag(r *stream.Reader, tag string) error {
	b, err := r.ReadBytes(4)
	if err != nil {
		return dnaTruncated(err, tag+" tag")
	}
	if string(b) != tag {
		return errors.New(errors.PhaseDNA, errors.KindInvalidData).
			Detail("expected %q table identifier, found %q", tag, b).
			Build()
	}
	return nil
}

func align4(r *stream.Reader, base int) error {
	if pad := (r.Position() - base) & 3; pad != 0 {
		return r.Skip(4 - pad)
	}
	return nil
}

func dnaTruncated(cause error, what string) error {
	return errors.Wrap(errors.PhaseDNA, errors.KindTruncated, cause, "short read in "+what)
}
