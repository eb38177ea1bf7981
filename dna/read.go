package dna

import (
	"github.com/kismeter/blendfile/errors"
)

// readField implements the positional protocol shared by every field
// reader: remember the instance base, seek to the field, decode, restore
// the base. Converters therefore never move the cursor as far as their
// caller can tell. Failures pass through the field's error policy.
func (s *Structure) readField(db *Database, name string, pol ErrorPolicy, decode func(f *Field) error) error {
	base := db.Reader.Position()
	defer db.Reader.Seek(base)

	f, err := s.Field(name)
	if err == nil {
		if err = db.Reader.Seek(base + f.Offset); err == nil {
			err = decode(f)
		}
	}
	if err != nil {
		return pol.apply(err, s.Name, name)
	}
	db.stats.FieldsRead++
	return nil
}

func wantScalar(s *Structure, f *Field) error {
	if f.IsPointer {
		return errors.TypeMismatch(s.Name, f.Name, "field is a pointer")
	}
	if f.IsArray {
		return errors.TypeMismatch(s.Name, f.Name, "expected a scalar, field is an array")
	}
	return nil
}

func wantArray(s *Structure, f *Field) error {
	if f.IsPointer {
		return errors.TypeMismatch(s.Name, f.Name, "field is a pointer")
	}
	if !f.IsArray {
		return errors.TypeMismatch(s.Name, f.Name, "expected an array, field is a scalar")
	}
	return nil
}

// ReadChar decodes the named field into a char, rescaling from wider
// numeric types where the file declares them.
func (s *Structure) ReadChar(db *Database, name string, pol ErrorPolicy, out *uint8) error {
	return s.readField(db, name, pol, func(f *Field) error {
		if err := wantScalar(s, f); err != nil {
			return err
		}
		v, err := convertToChar(db.Reader, f.Type)
		if err != nil {
			return err
		}
		*out = v
		return nil
	})
}

// ReadShort decodes the named field into a short.
func (s *Structure) ReadShort(db *Database, name string, pol ErrorPolicy, out *int16) error {
	return s.readField(db, name, pol, func(f *Field) error {
		if err := wantScalar(s, f); err != nil {
			return err
		}
		v, err := convertToShort(db.Reader, f.Type)
		if err != nil {
			return err
		}
		*out = v
		return nil
	})
}

// ReadInt decodes the named field into an int.
func (s *Structure) ReadInt(db *Database, name string, pol ErrorPolicy, out *int32) error {
	return s.readField(db, name, pol, func(f *Field) error {
		if err := wantScalar(s, f); err != nil {
			return err
		}
		v, err := convertToInt(db.Reader, f.Type)
		if err != nil {
			return err
		}
		*out = v
		return nil
	})
}

// ReadFloat decodes the named field into a float, rescaling chars by 1/255
// and shorts by 1/32767.
func (s *Structure) ReadFloat(db *Database, name string, pol ErrorPolicy, out *float32) error {
	return s.readField(db, name, pol, func(f *Field) error {
		if err := wantScalar(s, f); err != nil {
			return err
		}
		v, err := convertToFloat(db.Reader, f.Type)
		if err != nil {
			return err
		}
		*out = v
		return nil
	})
}

// ReadString decodes an embedded char array into a string, stopping at the
// first NUL.
func (s *Structure) ReadString(db *Database, name string, pol ErrorPolicy, out *string) error {
	return s.readField(db, name, pol, func(f *Field) error {
		if err := wantArray(s, f); err != nil {
			return err
		}
		if f.Type != "char" && f.Type != "uchar" {
			return errors.TypeMismatch(s.Name, f.Name, "expected a char array, found "+f.Type)
		}
		raw, err := db.Reader.ReadBytes(f.Total)
		if err != nil {
			return err
		}
		for i, b := range raw {
			if b == 0 {
				raw = raw[:i]
				break
			}
		}
		*out = string(raw)
		return nil
	})
}

// ReadCharArray decodes up to len(dst) elements of the named array field.
// Destination slots past the declared extent keep their previous value.
func (s *Structure) ReadCharArray(db *Database, name string, pol ErrorPolicy, dst []uint8) error {
	return s.readField(db, name, pol, func(f *Field) error {
		if err := wantArray(s, f); err != nil {
			return err
		}
		n := min(f.Total, len(dst))
		for i := 0; i < n; i++ {
			v, err := convertToChar(db.Reader, f.Type)
			if err != nil {
				return err
			}
			dst[i] = v
		}
		return nil
	})
}

// ReadShortArray decodes up to len(dst) elements of the named array field.
func (s *Structure) ReadShortArray(db *Database, name string, pol ErrorPolicy, dst []int16) error {
	return s.readField(db, name, pol, func(f *Field) error {
		if err := wantArray(s, f); err != nil {
			return err
		}
		n := min(f.Total, len(dst))
		for i := 0; i < n; i++ {
			v, err := convertToShort(db.Reader, f.Type)
			if err != nil {
				return err
			}
			dst[i] = v
		}
		return nil
	})
}

// ReadIntArray decodes up to len(dst) elements of the named array field.
func (s *Structure) ReadIntArray(db *Database, name string, pol ErrorPolicy, dst []int32) error {
	return s.readField(db, name, pol, func(f *Field) error {
		if err := wantArray(s, f); err != nil {
			return err
		}
		n := min(f.Total, len(dst))
		for i := 0; i < n; i++ {
			v, err := convertToInt(db.Reader, f.Type)
			if err != nil {
				return err
			}
			dst[i] = v
		}
		return nil
	})
}

// ReadFloatArray decodes up to len(dst) elements of the named array field,
// rescaling each element from the declared primitive type.
func (s *Structure) ReadFloatArray(db *Database, name string, pol ErrorPolicy, dst []float32) error {
	return s.readField(db, name, pol, func(f *Field) error {
		if err := wantArray(s, f); err != nil {
			return err
		}
		n := min(f.Total, len(dst))
		for i := 0; i < n; i++ {
			v, err := convertToFloat(db.Reader, f.Type)
			if err != nil {
				return err
			}
			dst[i] = v
		}
		return nil
	})
}

// ReadFloatMatrix decodes a two-dimensional float array field row by row.
// dst supplies the destination shape; rows and columns beyond the declared
// extents keep their previous values, and declared elements beyond the
// destination are skipped.
func ReadFloatMatrix[R ~[2]float32 | ~[3]float32 | ~[4]float32](db *Database, s *Structure, name string, pol ErrorPolicy, dst []R) error {
	return s.readField(db, name, pol, func(f *Field) error {
		if err := wantArray(s, f); err != nil {
			return err
		}
		if f.ArrayDims[1] == 0 {
			return errors.TypeMismatch(s.Name, f.Name, "expected a two-dimensional array")
		}
		var zero R
		rows := min(f.ArrayDims[0], len(dst))
		cols := min(f.ArrayDims[1], len(zero))
		stride := f.ArrayDims[1] * (f.Size / f.Total)
		start := db.Reader.Position()
		for r := 0; r < rows; r++ {
			if err := db.Reader.Seek(start + r*stride); err != nil {
				return err
			}
			for c := 0; c < cols; c++ {
				v, err := convertToFloat(db.Reader, f.Type)
				if err != nil {
					return err
				}
				dst[r][c] = v
			}
		}
		return nil
	})
}

// ReadStruct decodes an embedded compound field by running the converter
// registered for its declared type against the field's bytes.
func (s *Structure) ReadStruct(db *Database, name string, pol ErrorPolicy, out Elem) error {
	return s.readField(db, name, pol, func(f *Field) error {
		if f.IsPointer {
			return errors.TypeMismatch(s.Name, f.Name, "field is a pointer")
		}
		if f.IsArray {
			return errors.TypeMismatch(s.Name, f.Name, "expected an embedded structure, field is an array")
		}
		inner, ok := db.Catalog.StructByName(f.Type)
		if !ok {
			return errors.TypeMismatch(s.Name, f.Name, "declared type "+f.Type+" is not a structure")
		}
		return db.Convert(inner, out)
	})
}
