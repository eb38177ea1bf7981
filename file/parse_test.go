package file

import (
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	bferrors "github.com/kismeter/blendfile/errors"
	"github.com/kismeter/blendfile/internal/blendtest"
)

func minimalDNA() blendtest.DNA {
	return blendtest.DNA{
		Names:   []string{"x"},
		Types:   []string{"int", "Dummy"},
		Lens:    []uint16{4, 4},
		Structs: []blendtest.DNAStruct{{Type: 1, Fields: [][2]uint16{{0, 0}}}},
	}
}

func TestParseMinimalFile(t *testing.T) {
	img := blendtest.New().
		Block("GLOB", 0x1000, 0, 1, []byte{1, 2, 3, 4}).
		DNA(minimalDNA()).
		Bytes()

	f, r, err := Parse(img)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Header.PointerSize != 8 {
		t.Errorf("PointerSize = %d, want 8", f.Header.PointerSize)
	}
	if f.Header.Order != binary.LittleEndian {
		t.Errorf("Order = %v, want little-endian", f.Header.Order)
	}
	if f.Header.VersionNum != 279 {
		t.Errorf("VersionNum = %d, want 279", f.Header.VersionNum)
	}
	if len(f.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d, want 2", len(f.Blocks))
	}
	if f.DNA == nil || f.DNA.Code != "DNA1" {
		t.Fatalf("DNA block not located: %+v", f.DNA)
	}
	if r == nil || r.Len() != len(img) {
		t.Fatal("reader not positioned over the image")
	}

	glob := f.Blocks[0]
	if glob.Code != "GLOB" || glob.Address != 0x1000 || glob.Size != 4 {
		t.Errorf("GLOB block = %+v", glob)
	}
	// Start must point at the payload bytes.
	if err := r.Seek(glob.Start); err != nil {
		t.Fatalf("Seek(Start): %v", err)
	}
	b, _ := r.ReadByte()
	if b != 1 {
		t.Errorf("payload first byte = %d, want 1", b)
	}
}

func TestParse32BitPointers(t *testing.T) {
	b := blendtest.New()
	b.PointerSize = 4
	img := b.Block("TEST", 0x2000, 0, 1, []byte{9}).DNA(minimalDNA()).Bytes()

	f, _, err := Parse(img)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Header.PointerSize != 4 {
		t.Errorf("PointerSize = %d, want 4", f.Header.PointerSize)
	}
	if f.Blocks[0].Address != 0x2000 {
		t.Errorf("Address = %#x, want 0x2000", f.Blocks[0].Address)
	}
}

func TestParseBigEndian(t *testing.T) {
	b := blendtest.New()
	b.Order = binary.BigEndian
	img := b.Block("TEST", 0xabcd, 3, 2, []byte{0, 0}).DNA(minimalDNA()).Bytes()

	f, _, err := Parse(img)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Header.Order != binary.BigEndian {
		t.Errorf("Order = %v, want big-endian", f.Header.Order)
	}
	blk := f.Blocks[0]
	if blk.Address != 0xabcd || blk.SDNAIndex != 3 || blk.Count != 2 {
		t.Errorf("block = %+v", blk)
	}
}

func TestParseErrors(t *testing.T) {
	valid := blendtest.New().DNA(minimalDNA()).Bytes()

	tests := []struct {
		name string
		img  []byte
		kind bferrors.Kind
	}{
		{"empty", nil, bferrors.KindInvalidData},
		{"short header", []byte("BLEND"), bferrors.KindInvalidData},
		{"bad magic", []byte("NOTBLENDXXXX"), bferrors.KindInvalidData},
		{"bad pointer size", []byte("BLENDERxv279"), bferrors.KindInvalidData},
		{"bad endianness", []byte("BLENDER-x279"), bferrors.KindInvalidData},
		{"bad version", []byte("BLENDER-vab9"), bferrors.KindInvalidData},
		{"gzip", []byte{0x1f, 0x8b, 0x08, 0x00}, bferrors.KindUnsupported},
		{"zstd", []byte{0x28, 0xb5, 0x2f, 0xfd}, bferrors.KindUnsupported},
		{"no ENDB", valid[:len(valid)-24], bferrors.KindInvalidData},
		{"truncated payload", truncatedPayload(), bferrors.KindTruncated},
		{"no DNA", blendtest.New().Block("GLOB", 1, 0, 1, nil).Bytes(), bferrors.KindInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.img)
			if err == nil {
				t.Fatal("Parse should fail")
			}
			var e *bferrors.Error
			if !errors.As(err, &e) {
				t.Fatalf("error type = %T: %v", err, err)
			}
			if e.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v (%v)", e.Kind, tt.kind, err)
			}
		})
	}
}

// truncatedPayload builds an image whose block header promises more
// payload bytes than the file holds.
func truncatedPayload() []byte {
	w := blendtest.NewWriter(binary.LittleEndian, 8)
	w.Raw([]byte("BLENDER-v279"))
	w.CStr("GLOB", 4)
	w.U32(1000)
	w.Ptr(0x1000)
	w.U32(0)
	w.U32(1)
	w.Raw([]byte{1, 2, 3})
	return w.Bytes()
}

func TestHeaderString(t *testing.T) {
	h := Header{PointerSize: 8, Order: binary.LittleEndian, Version: "279", VersionNum: 279}
	s := h.String()
	for _, want := range []string{"2.79", "64-bit", "little-endian"} {
		if !strings.Contains(s, want) {
			t.Errorf("Header.String() = %q, missing %q", s, want)
		}
	}
}
