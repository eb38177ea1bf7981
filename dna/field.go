package dna

import (
	"fmt"
	"strings"

	"github.com/kismeter/blendfile/errors"
)

// Field is one declared member of a DNA structure. Immutable once the
// catalog is built.
type Field struct {
	Name      string // bare identifier, shape decorations stripped
	Type      string // declared type name
	Offset    int    // byte offset inside the structure
	Size      int    // total on-disk bytes, array extents included
	IsPointer bool
	IsArray   bool
	ArrayDims [2]int // up to two extents, inner dimension last
	Total     int    // flattened element count, 1 for scalars
}

func (f *Field) String() string {
	var b strings.Builder
	b.WriteString(f.Type)
	b.WriteByte(' ')
	if f.IsPointer {
		b.WriteByte('*')
	}
	b.WriteString(f.Name)
	if f.IsArray {
		fmt.Fprintf(&b, "[%d]", f.ArrayDims[0])
		if f.ArrayDims[1] > 0 {
			fmt.Fprintf(&b, "[%d]", f.ArrayDims[1])
		}
	}
	return b.String()
}

// parseFieldName splits a DNA name entry into the bare identifier and its
// shape. DNA encodes shape in the name string: leading '*' marks pointers,
// trailing "[n]" or "[n][m]" marks arrays, and "(*name)()" is a function
// pointer stored at pointer width.
func parseFieldName(raw string) (f Field, err error) {
	s := raw
	f.Total = 1

	// Function pointer: "(*doit)()" and variants.
	if strings.HasPrefix(s, "(") {
		s = strings.TrimPrefix(s, "(")
		if !strings.HasPrefix(s, "*") {
			return f, badName(raw)
		}
		for strings.HasPrefix(s, "*") {
			s = s[1:]
		}
		end := strings.IndexByte(s, ')')
		if end < 0 {
			return f, badName(raw)
		}
		f.Name = s[:end]
		f.IsPointer = true
		if f.Name == "" {
			return f, badName(raw)
		}
		return f, nil
	}

	for strings.HasPrefix(s, "*") {
		f.IsPointer = true
		s = s[1:]
	}

	open := strings.IndexByte(s, '[')
	if open < 0 {
		f.Name = s
		if f.Name == "" {
			return f, badName(raw)
		}
		return f, nil
	}

	f.Name = s[:open]
	if f.Name == "" {
		return f, badName(raw)
	}
	f.IsArray = true

	dims := 0
	for rest := s[open:]; rest != ""; {
		if rest[0] != '[' {
			return f, badName(raw)
		}
		end := strings.IndexByte(rest, ']')
		if end < 2 {
			return f, badName(raw)
		}
		n := 0
		for _, c := range rest[1:end] {
			if c < '0' || c > '9' {
				return f, badName(raw)
			}
			n = n*10 + int(c-'0')
		}
		if dims >= len(f.ArrayDims) {
			return f, errors.New(errors.PhaseDNA, errors.KindUnsupported).
				Detail("field %q has more than two array dimensions", raw).
				Build()
		}
		f.ArrayDims[dims] = n
		dims++
		f.Total *= n
		rest = rest[end+1:]
	}

	return f, nil
}

func badName(raw string) error {
	return errors.New(errors.PhaseDNA, errors.KindInvalidData).
		Detail("malformed field name %q", raw).
		Build()
}
