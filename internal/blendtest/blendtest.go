// Package blendtest assembles synthetic .blend images in memory for tests.
// Images are valid containers: header, blocks with real payloads, a DNA1
// block encoded from explicit name/type/length/structure tables, and the
// ENDB terminator.
package blendtest

import (
	"encoding/binary"
	"math"
)

// Writer appends primitives to a byte buffer honoring a byte order and a
// pointer width. It is the payload-side counterpart of the stream reader.
type Writer struct {
	buf     []byte
	order   binary.ByteOrder
	ptrSize int
}

func NewWriter(order binary.ByteOrder, ptrSize int) *Writer {
	return &Writer{order: order, ptrSize: ptrSize}
}

func (w *Writer) Bytes() []byte { return w.buf }
func (w *Writer) Len() int      { return len(w.buf) }

func (w *Writer) Raw(b []byte) *Writer {
	w.buf = append(w.buf, b...)
	return w
}

func (w *Writer) Byte(v byte) *Writer {
	w.buf = append(w.buf, v)
	return w
}

func (w *Writer) U16(v uint16) *Writer {
	w.buf = w.order.(binary.AppendByteOrder).AppendUint16(w.buf, v)
	return w
}

func (w *Writer) U32(v uint32) *Writer {
	w.buf = w.order.(binary.AppendByteOrder).AppendUint32(w.buf, v)
	return w
}

func (w *Writer) U64(v uint64) *Writer {
	w.buf = w.order.(binary.AppendByteOrder).AppendUint64(w.buf, v)
	return w
}

func (w *Writer) I16(v int16) *Writer { return w.U16(uint16(v)) }
func (w *Writer) I32(v int32) *Writer { return w.U32(uint32(v)) }

func (w *Writer) F32(v float32) *Writer {
	return w.U32(math.Float32bits(v))
}

func (w *Writer) F64(v float64) *Writer {
	return w.U64(math.Float64bits(v))
}

// Ptr writes an address at the configured pointer width.
func (w *Writer) Ptr(addr uint64) *Writer {
	if w.ptrSize == 4 {
		return w.U32(uint32(addr))
	}
	return w.U64(addr)
}

// CStr writes s padded with NULs to exactly n bytes.
func (w *Writer) CStr(s string, n int) *Writer {
	b := make([]byte, n)
	copy(b, s)
	w.buf = append(w.buf, b...)
	return w
}

// Pad appends n zero bytes.
func (w *Writer) Pad(n int) *Writer {
	w.buf = append(w.buf, make([]byte, n)...)
	return w
}

// Align pads with zeros to the next multiple of n within the buffer.
func (w *Writer) Align(n int) *Writer {
	if rem := len(w.buf) % n; rem != 0 {
		w.Pad(n - rem)
	}
	return w
}

// DNAStruct is one STRC entry: the struct's type index and its fields as
// (type index, name index) pairs.
type DNAStruct struct {
	Type   uint16
	Fields [][2]uint16
}

// DNA holds the four SDNA tables ready for encoding.
type DNA struct {
	Names   []string
	Types   []string
	Lens    []uint16
	Structs []DNAStruct
}

// Encode renders the DNA1 payload with section identifiers and 4-byte
// alignment relative to the payload start.
func (d DNA) Encode(order binary.ByteOrder) []byte {
	w := NewWriter(order, 8)
	w.Raw([]byte("SDNA"))

	w.Raw([]byte("NAME"))
	w.U32(uint32(len(d.Names)))
	for _, n := range d.Names {
		w.Raw([]byte(n)).Byte(0)
	}
	w.Align(4)

	w.Raw([]byte("TYPE"))
	w.U32(uint32(len(d.Types)))
	for _, t := range d.Types {
		w.Raw([]byte(t)).Byte(0)
	}
	w.Align(4)

	w.Raw([]byte("TLEN"))
	for _, l := range d.Lens {
		w.U16(l)
	}
	w.Align(4)

	w.Raw([]byte("STRC"))
	w.U32(uint32(len(d.Structs)))
	for _, s := range d.Structs {
		w.U16(s.Type)
		w.U16(uint16(len(s.Fields)))
		for _, f := range s.Fields {
			w.U16(f[0])
			w.U16(f[1])
		}
	}

	return w.Bytes()
}

type block struct {
	code    string
	addr    uint64
	sdna    uint32
	count   uint32
	payload []byte
}

// Builder assembles a whole container image.
type Builder struct {
	PointerSize int
	Order       binary.ByteOrder
	Version     string
	blocks      []block
}

func New() *Builder {
	return &Builder{
		PointerSize: 8,
		Order:       binary.LittleEndian,
		Version:     "279",
	}
}

// Block appends a file block.
func (b *Builder) Block(code string, addr uint64, sdna, count uint32, payload []byte) *Builder {
	b.blocks = append(b.blocks, block{code: code, addr: addr, sdna: sdna, count: count, payload: payload})
	return b
}

// DNA appends the DNA1 block encoded from the given tables.
func (b *Builder) DNA(d DNA) *Builder {
	return b.Block("DNA1", 0xd4a000, 0, 1, d.Encode(b.Order))
}

// Bytes renders the complete image.
func (b *Builder) Bytes() []byte {
	w := NewWriter(b.Order, b.PointerSize)

	w.Raw([]byte("BLENDER"))
	if b.PointerSize == 4 {
		w.Byte('_')
	} else {
		w.Byte('-')
	}
	if b.Order == binary.BigEndian {
		w.Byte('V')
	} else {
		w.Byte('v')
	}
	w.Raw([]byte(b.Version))

	for _, blk := range b.blocks {
		w.CStr(blk.code, 4)
		w.U32(uint32(len(blk.payload)))
		w.Ptr(blk.addr)
		w.U32(blk.sdna)
		w.U32(blk.count)
		w.Raw(blk.payload)
	}

	w.CStr("ENDB", 4)
	w.U32(0)
	w.Ptr(0)
	w.U32(0)
	w.U32(0)

	return w.Bytes()
}
