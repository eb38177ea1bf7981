package blendtest

import (
	"strconv"
	"strings"
)

// DNABuilder accumulates DNA tables with interned names and types and
// computes structure lengths from field declarations, so fixtures read
// like the dna_genfile shorthand: "float co[3]", "Object *ob".
type DNABuilder struct {
	ptrSize int
	names   []string
	nameIx  map[string]uint16
	types   []string
	lens    []uint16
	typeIx  map[string]uint16
	structs []DNAStruct
	index   map[string]uint32
}

// NewDNABuilder seeds the primitive types at the given pointer width.
func NewDNABuilder(ptrSize int) *DNABuilder {
	b := &DNABuilder{
		ptrSize: ptrSize,
		nameIx:  map[string]uint16{},
		typeIx:  map[string]uint16{},
		index:   map[string]uint32{},
	}
	prims := []struct {
		name string
		size uint16
	}{
		{"char", 1}, {"uchar", 1}, {"short", 2}, {"ushort", 2},
		{"int", 4}, {"long", 8}, {"float", 4}, {"double", 8}, {"void", 0},
	}
	for _, p := range prims {
		b.typ(p.name, p.size)
	}
	return b
}

func (b *DNABuilder) name(n string) uint16 {
	if ix, ok := b.nameIx[n]; ok {
		return ix
	}
	ix := uint16(len(b.names))
	b.names = append(b.names, n)
	b.nameIx[n] = ix
	return ix
}

func (b *DNABuilder) typ(t string, size uint16) uint16 {
	if ix, ok := b.typeIx[t]; ok {
		if size != 0 {
			b.lens[ix] = size
		}
		return ix
	}
	ix := uint16(len(b.types))
	b.types = append(b.types, t)
	b.lens = append(b.lens, size)
	b.typeIx[t] = ix
	return ix
}

// fieldSize follows the shape a DNA name encodes: pointers and function
// pointers take the pointer width, array extents multiply.
func (b *DNABuilder) fieldSize(typeName, raw string) int {
	size := int(b.lens[b.typeIx[typeName]])
	if strings.HasPrefix(raw, "*") || strings.HasPrefix(raw, "(") {
		size = b.ptrSize
	}
	rest := raw
	for {
		open := strings.IndexByte(rest, '[')
		if open < 0 {
			return size
		}
		end := strings.IndexByte(rest, ']')
		dim, _ := strconv.Atoi(rest[open+1 : end])
		size *= dim
		rest = rest[end+1:]
	}
}

// Struct appends a structure declared as "type name" field pairs and
// returns its SDNA index. The length is the sum of the field sizes, so
// payloads written field by field in declaration order line up exactly.
// Embedded struct fields need the embedded type declared first; pointer
// fields may reference types declared later.
func (b *DNABuilder) Struct(name string, fields ...string) uint32 {
	st := DNAStruct{Type: b.typ(name, 0)}
	size := 0
	for _, decl := range fields {
		sp := strings.IndexByte(decl, ' ')
		tn, fn := decl[:sp], decl[sp+1:]
		st.Fields = append(st.Fields, [2]uint16{b.typ(tn, 0), b.name(fn)})
		size += b.fieldSize(tn, fn)
	}
	b.lens[st.Type] = uint16(size)
	ix := uint32(len(b.structs))
	b.structs = append(b.structs, st)
	b.index[name] = ix
	return ix
}

// Index returns the SDNA index of a declared structure.
func (b *DNABuilder) Index(name string) uint32 {
	return b.index[name]
}

// Size returns the declared length of a type.
func (b *DNABuilder) Size(name string) int {
	return int(b.lens[b.typeIx[name]])
}

// Tables renders the accumulated DNA.
func (b *DNABuilder) Tables() DNA {
	return DNA{Names: b.names, Types: b.types, Lens: b.lens, Structs: b.structs}
}
