package dna

import (
	"encoding/binary"
	"testing"

	"github.com/kismeter/blendfile/file"
	"github.com/kismeter/blendfile/internal/blendtest"
	"github.com/kismeter/blendfile/stream"
)

// Target types mirroring the structures testTables declares.

type testNode struct {
	ElemBase
	Next  *testNode
	Prev  *testNode
	Data  Elem
	Value int32
	FVal  float32
	Name  string
}

type testVert struct {
	ElemBase
	Co   [3]float32
	No   [3]float32
	Flag uint8
}

type testHolder struct {
	ElemBase
	Elems []testVert
	Items []*testNode
	Mat   [4][4]float32
	UV    [2][2]float32
	Verts int16
	Vert  testVert
	DVal  float32
}

// registerNode installs the Node converter with pol governing the three
// pointer fields, so tests can probe each policy against bad targets.
func registerNode(cat *Catalog, pol ErrorPolicy) {
	cat.Register("Node", Factory{
		New: func() Elem { return &testNode{} },
		Convert: func(db *Database, s *Structure, out Elem) error {
			n := out.(*testNode)
			if err := ReadFieldPtr(db, s, "next", pol, &n.Next); err != nil {
				return err
			}
			if err := ReadFieldPtr(db, s, "prev", pol, &n.Prev); err != nil {
				return err
			}
			if err := ReadFieldPtrAny(db, s, "data", pol, &n.Data); err != nil {
				return err
			}
			if err := s.ReadInt(db, "value", Fail, &n.Value); err != nil {
				return err
			}
			if err := s.ReadFloat(db, "fval", Ignore, &n.FVal); err != nil {
				return err
			}
			return s.ReadString(db, "name", Warn, &n.Name)
		},
	})
}

func registerVert(cat *Catalog) {
	cat.Register("Vert", Factory{
		New: func() Elem { return &testVert{} },
		Convert: func(db *Database, s *Structure, out Elem) error {
			v := out.(*testVert)
			if err := s.ReadFloatArray(db, "co", Fail, v.Co[:]); err != nil {
				return err
			}
			if err := s.ReadFloatArray(db, "no", Warn, v.No[:]); err != nil {
				return err
			}
			return s.ReadChar(db, "flag", Ignore, &v.Flag)
		},
	})
}

func registerHolder(cat *Catalog) {
	cat.Register("Holder", Factory{
		New: func() Elem { return &testHolder{} },
		Convert: func(db *Database, s *Structure, out Elem) error {
			h := out.(*testHolder)
			if err := ReadFieldPtrSlice(db, s, "elems", Fail, &h.Elems); err != nil {
				return err
			}
			if err := ReadFieldPtrList(db, s, "items", Warn, &h.Items); err != nil {
				return err
			}
			if err := ReadFloatMatrix(db, s, "mat", Fail, h.Mat[:]); err != nil {
				return err
			}
			if err := ReadFloatMatrix(db, s, "uv", Warn, h.UV[:]); err != nil {
				return err
			}
			if err := s.ReadShort(db, "verts", Warn, &h.Verts); err != nil {
				return err
			}
			if err := s.ReadStruct(db, "vert", Ignore, &h.Vert); err != nil {
				return err
			}
			return s.ReadFloat(db, "dval", Ignore, &h.DVal)
		},
	})
}

// Instance payload builders matching the testTables layouts.

type nodeSpec struct {
	next, prev, data uint64
	value            int32
	fval             float32
	name             string
}

func nodeBytes(order binary.ByteOrder, ptrSize int, n nodeSpec) []byte {
	w := blendtest.NewWriter(order, ptrSize)
	w.Ptr(n.next).Ptr(n.prev).Ptr(n.data).I32(n.value).F32(n.fval).CStr(n.name, 8)
	return w.Bytes()
}

func vertBytes(order binary.ByteOrder, co [3]float32, no [3]int16, flag uint8) []byte {
	w := blendtest.NewWriter(order, 8)
	w.F32(co[0]).F32(co[1]).F32(co[2])
	w.I16(no[0]).I16(no[1]).I16(no[2])
	w.Byte(flag).Byte(0)
	return w.Bytes()
}

type holderSpec struct {
	elems, items uint64
	mat          [4][4]float32
	uv           [2][2]float32
	verts        int16
	vert         []byte
	dval         float64
}

func holderBytes(order binary.ByteOrder, ptrSize int, h holderSpec) []byte {
	w := blendtest.NewWriter(order, ptrSize)
	w.Ptr(h.elems).Ptr(h.items)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			w.F32(h.mat[r][c])
		}
	}
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			w.F32(h.uv[r][c])
		}
	}
	w.I16(h.verts)
	w.Pad(6)
	if h.vert != nil {
		w.Raw(h.vert)
	} else {
		w.Pad(20)
	}
	w.F64(h.dval)
	w.Ptr(0)
	return w.Bytes()
}

// openPayload wraps raw instance bytes in a database with no file blocks
// behind them, which is enough for scalar and array reads.
func openPayload(t *testing.T, cat *Catalog, payload []byte) *Database {
	t.Helper()
	return NewDatabase(stream.NewReader(payload, binary.LittleEndian), cat, nil, 8)
}

// imageWith assembles a full container: caller-provided blocks plus the
// test DNA.
func imageWith(order binary.ByteOrder, ptrSize int, blocks func(b *blendtest.Builder)) []byte {
	b := blendtest.New()
	b.Order = order
	b.PointerSize = ptrSize
	blocks(b)
	b.DNA(testTables(ptrSize))
	return b.Bytes()
}

// openImage parses a synthetic container and builds conversion state over
// it.
func openImage(t *testing.T, img []byte) (*Database, *file.File) {
	t.Helper()
	f, r, err := file.Parse(img)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := r.Seek(f.DNA.Start); err != nil {
		t.Fatalf("seek DNA: %v", err)
	}
	cat, err := ParseCatalog(r, f.Header.PointerSize)
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	return NewDatabase(r, cat, f.Index, f.Header.PointerSize), f
}

func seekBlock(t *testing.T, db *Database, addr uint64) *file.Block {
	t.Helper()
	b, ok := db.Blocks.Find(addr)
	if !ok {
		t.Fatalf("no block at %#x", addr)
	}
	if err := db.Reader.Seek(b.Start); err != nil {
		t.Fatal(err)
	}
	return b
}

func mustStruct(t *testing.T, cat *Catalog, name string) *Structure {
	t.Helper()
	s, ok := cat.StructByName(name)
	if !ok {
		t.Fatalf("%s not in catalog", name)
	}
	return s
}
