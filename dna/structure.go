package dna

import (
	"fmt"

	"github.com/kismeter/blendfile/errors"
)

// Structure describes one DNA-declared type: its ordered fields, total
// on-disk size, and the dense slot the object cache files its instances
// under. Read-only after catalog construction.
type Structure struct {
	Name      string
	Index     int // position in the catalog's structure table
	CacheSlot int
	Size      int // on-disk bytes per instance
	fields    []Field
	byName    map[string]int
}

// NewStructure builds a structure from fields whose offsets and sizes are
// already computed.
func NewStructure(name string, size int, fields []Field) *Structure {
	s := &Structure{
		Name:   name,
		Size:   size,
		fields: fields,
		byName: make(map[string]int, len(fields)),
	}
	for i := range fields {
		s.byName[fields[i].Name] = i
	}
	return s
}

// Field returns the declared field with the given name. The error is a
// schema mismatch: this file's DNA version simply does not carry the
// field, which per-field policies routinely tolerate.
func (s *Structure) Field(name string) (*Field, error) {
	i, ok := s.byName[name]
	if !ok {
		return nil, errors.FieldMissing(s.Name, name)
	}
	return &s.fields[i], nil
}

// HasField reports whether the structure declares the field.
func (s *Structure) HasField(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// FieldAt returns the field at positional index i.
func (s *Structure) FieldAt(i int) *Field {
	return &s.fields[i]
}

// NumFields returns the number of declared fields.
func (s *Structure) NumFields() int {
	return len(s.fields)
}

// Fields returns the ordered field list. Callers must not mutate it.
func (s *Structure) Fields() []Field {
	return s.fields
}

func (s *Structure) String() string {
	return fmt.Sprintf("%s (%d bytes, %d fields)", s.Name, s.Size, len(s.fields))
}
