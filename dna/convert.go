package dna

import (
	"math"

	"github.com/kismeter/blendfile/errors"
	"github.com/kismeter/blendfile/stream"
)

// Primitive conversion between the on-disk type a field declares and the
// destination a converter asks for. Rescaling follows Blender's storage
// conventions: color channels travel as bytes meaning [0,1], vertex
// normals as shorts meaning [-1,1].

func convertToInt(r *stream.Reader, src string) (int32, error) {
	switch src {
	case "int":
		return r.ReadI32()
	case "short":
		v, err := r.ReadI16()
		return int32(v), err
	case "char", "uchar":
		v, err := r.ReadByte()
		return int32(v), err
	case "float":
		v, err := r.ReadF32()
		return int32(v), err
	case "double":
		v, err := r.ReadF64()
		return int32(v), err
	}
	return 0, unsupportedPrimitive(src, "int")
}

func convertToShort(r *stream.Reader, src string) (int16, error) {
	switch src {
	case "short":
		return r.ReadI16()
	case "char", "uchar":
		v, err := r.ReadByte()
		return int16(v), err
	case "int":
		v, err := r.ReadI32()
		return int16(v), err
	case "float":
		v, err := r.ReadF32()
		if err != nil {
			return 0, err
		}
		if v > 1 {
			v = 1
		}
		if v < -1 {
			v = -1
		}
		return int16(v * 32767), nil
	case "double":
		v, err := r.ReadF64()
		return int16(v * 32767), err
	}
	return 0, unsupportedPrimitive(src, "short")
}

func convertToChar(r *stream.Reader, src string) (uint8, error) {
	switch src {
	case "char", "uchar":
		return r.ReadByte()
	case "short":
		v, err := r.ReadI16()
		return uint8(v), err
	case "int":
		v, err := r.ReadI32()
		return uint8(v), err
	case "float":
		v, err := r.ReadF32()
		if err != nil {
			return 0, err
		}
		return uint8(math.Round(float64(v) * 255)), nil
	case "double":
		v, err := r.ReadF64()
		if err != nil {
			return 0, err
		}
		return uint8(math.Round(v * 255)), nil
	}
	return 0, unsupportedPrimitive(src, "char")
}

func convertToFloat(r *stream.Reader, src string) (float32, error) {
	switch src {
	case "float":
		return r.ReadF32()
	case "char", "uchar":
		v, err := r.ReadByte()
		return float32(v) / 255, err
	case "short":
		v, err := r.ReadI16()
		return float32(v) / 32767, err
	case "int":
		v, err := r.ReadI32()
		return float32(v), err
	case "double":
		v, err := r.ReadF64()
		return float32(v), err
	}
	return 0, unsupportedPrimitive(src, "float")
}

func unsupportedPrimitive(src, dst string) error {
	return errors.New(errors.PhaseConvert, errors.KindUnsupported).
		Detail("cannot convert source primitive %q to %s", src, dst).
		Build()
}
