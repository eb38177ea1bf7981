package dna

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/kismeter/blendfile/errors"
	"github.com/kismeter/blendfile/internal/blendtest"
	"github.com/kismeter/blendfile/stream"
)

func payloadReader(build func(w *blendtest.Writer)) *stream.Reader {
	w := blendtest.NewWriter(binary.LittleEndian, 8)
	build(w)
	return stream.NewReader(w.Bytes(), binary.LittleEndian)
}

func TestConvertToFloat(t *testing.T) {
	tests := []struct {
		name string
		src  string
		put  func(w *blendtest.Writer)
		want float32
	}{
		{"char full", "char", func(w *blendtest.Writer) { w.Byte(255) }, 1},
		{"char zero", "char", func(w *blendtest.Writer) { w.Byte(0) }, 0},
		{"char mid", "char", func(w *blendtest.Writer) { w.Byte(51) }, 51.0 / 255},
		{"short full", "short", func(w *blendtest.Writer) { w.I16(32767) }, 1},
		{"short neg", "short", func(w *blendtest.Writer) { w.I16(-32767) }, -1},
		{"short mid", "short", func(w *blendtest.Writer) { w.I16(16384) }, 16384.0 / 32767},
		{"int", "int", func(w *blendtest.Writer) { w.I32(-7) }, -7},
		{"float", "float", func(w *blendtest.Writer) { w.F32(0.25) }, 0.25},
		{"double", "double", func(w *blendtest.Writer) { w.F64(0.5) }, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convertToFloat(payloadReader(tt.put), tt.src)
			if err != nil {
				t.Fatalf("convertToFloat(%s): %v", tt.src, err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertToChar(t *testing.T) {
	tests := []struct {
		name string
		src  string
		put  func(w *blendtest.Writer)
		want uint8
	}{
		{"float one", "float", func(w *blendtest.Writer) { w.F32(1) }, 255},
		{"float half", "float", func(w *blendtest.Writer) { w.F32(0.5) }, 128},
		{"float zero", "float", func(w *blendtest.Writer) { w.F32(0) }, 0},
		{"double one", "double", func(w *blendtest.Writer) { w.F64(1) }, 255},
		{"char", "char", func(w *blendtest.Writer) { w.Byte(7) }, 7},
		{"short narrows", "short", func(w *blendtest.Writer) { w.I16(0x0102) }, 2},
		{"int narrows", "int", func(w *blendtest.Writer) { w.I32(0x01020304) }, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convertToChar(payloadReader(tt.put), tt.src)
			if err != nil {
				t.Fatalf("convertToChar(%s): %v", tt.src, err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConvertToShort(t *testing.T) {
	tests := []struct {
		name string
		src  string
		put  func(w *blendtest.Writer)
		want int16
	}{
		{"float clamps high", "float", func(w *blendtest.Writer) { w.F32(2.5) }, 32767},
		{"float clamps low", "float", func(w *blendtest.Writer) { w.F32(-3) }, -32767},
		{"float half", "float", func(w *blendtest.Writer) { w.F32(0.5) }, 16383},
		{"double half", "double", func(w *blendtest.Writer) { w.F64(0.5) }, 16383},
		{"short", "short", func(w *blendtest.Writer) { w.I16(-5) }, -5},
		{"char widens", "char", func(w *blendtest.Writer) { w.Byte(200) }, 200},
		{"int narrows", "int", func(w *blendtest.Writer) { w.I32(0x00011234) }, 0x1234},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convertToShort(payloadReader(tt.put), tt.src)
			if err != nil {
				t.Fatalf("convertToShort(%s): %v", tt.src, err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConvertToInt(t *testing.T) {
	tests := []struct {
		name string
		src  string
		put  func(w *blendtest.Writer)
		want int32
	}{
		{"char", "char", func(w *blendtest.Writer) { w.Byte(200) }, 200},
		{"short", "short", func(w *blendtest.Writer) { w.I16(-3) }, -3},
		{"int", "int", func(w *blendtest.Writer) { w.I32(123456) }, 123456},
		{"float truncates", "float", func(w *blendtest.Writer) { w.F32(3.9) }, 3},
		{"double truncates", "double", func(w *blendtest.Writer) { w.F64(-2.7) }, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convertToInt(payloadReader(tt.put), tt.src)
			if err != nil {
				t.Fatalf("convertToInt(%s): %v", tt.src, err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

// Color channels survive a byte, float, byte trip exactly, and a float,
// byte, float trip within one quantization step.
func TestConvertColorRoundTrip(t *testing.T) {
	for _, b := range []uint8{0, 1, 128, 255} {
		f, err := convertToFloat(payloadReader(func(w *blendtest.Writer) { w.Byte(b) }), "char")
		if err != nil {
			t.Fatalf("to float: %v", err)
		}
		back, err := convertToChar(payloadReader(func(w *blendtest.Writer) { w.F32(f) }), "float")
		if err != nil {
			t.Fatalf("to char: %v", err)
		}
		if back != b {
			t.Errorf("byte %d came back as %d via %v", b, back, f)
		}
	}
	for _, f := range []float32{0, 0.5, 1} {
		c, err := convertToChar(payloadReader(func(w *blendtest.Writer) { w.F32(f) }), "float")
		if err != nil {
			t.Fatalf("to char: %v", err)
		}
		back, err := convertToFloat(payloadReader(func(w *blendtest.Writer) { w.Byte(c) }), "char")
		if err != nil {
			t.Fatalf("to float: %v", err)
		}
		if d := math.Abs(float64(back - f)); d > 1.0/255 {
			t.Errorf("float %v came back as %v via byte %d", f, back, c)
		}
	}
}

func TestConvertNormalRoundTrip(t *testing.T) {
	for _, s := range []int16{0, 1, -32767, 32767, 16384} {
		f, err := convertToFloat(payloadReader(func(w *blendtest.Writer) { w.I16(s) }), "short")
		if err != nil {
			t.Fatalf("to float: %v", err)
		}
		back, err := convertToShort(payloadReader(func(w *blendtest.Writer) { w.F32(f) }), "float")
		if err != nil {
			t.Fatalf("to short: %v", err)
		}
		if d := back - s; d < -1 || d > 1 {
			t.Errorf("short %d came back as %d via %v", s, back, f)
		}
	}
}

func TestConvertUnsupportedSource(t *testing.T) {
	for _, dst := range []string{"int", "short", "char", "float"} {
		t.Run(dst, func(t *testing.T) {
			r := payloadReader(func(w *blendtest.Writer) { w.U64(0) })
			var err error
			switch dst {
			case "int":
				_, err = convertToInt(r, "Mesh")
			case "short":
				_, err = convertToShort(r, "Mesh")
			case "char":
				_, err = convertToChar(r, "Mesh")
			case "float":
				_, err = convertToFloat(r, "Mesh")
			}
			if errors.KindOf(err) != errors.KindUnsupported {
				t.Errorf("converting from struct source: got %v, want unsupported", err)
			}
		})
	}
}
