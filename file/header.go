package file

import (
	"encoding/binary"
	"fmt"

	"github.com/kismeter/blendfile/errors"
	"github.com/kismeter/blendfile/stream"
)

const headerSize = 12

var (
	magic     = []byte("BLENDER")
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Header is the decoded 12-byte .blend file header.
type Header struct {
	PointerSize int              // 4 or 8
	Order       binary.ByteOrder // endianness of every multi-byte value
	Version     string           // raw digits, e.g. "279"
	VersionNum  int              // numeric form, e.g. 279
}

func (h Header) String() string {
	endian := "little-endian"
	if h.Order == binary.BigEndian {
		endian = "big-endian"
	}
	return fmt.Sprintf("blender %s, %d-bit pointers, %s", h.FormatVersion(), h.PointerSize*8, endian)
}

// FormatVersion renders the version digits as "2.79" style text.
func (h Header) FormatVersion() string {
	if len(h.Version) != 3 {
		return h.Version
	}
	return h.Version[:1] + "." + h.Version[1:]
}

func parseHeader(data []byte) (Header, error) {
	if len(data) >= 2 && data[0] == gzipMagic[0] && data[1] == gzipMagic[1] {
		return Header{}, errors.Unsupported(errors.PhaseHeader, "compressed (gzip) .blend files")
	}
	if len(data) >= 4 && string(data[:4]) == string(zstdMagic) {
		return Header{}, errors.Unsupported(errors.PhaseHeader, "compressed (zstd) .blend files")
	}
	if len(data) < headerSize {
		return Header{}, errors.InvalidData(errors.PhaseHeader, "file shorter than the 12-byte header")
	}
	if string(data[:7]) != string(magic) {
		return Header{}, errors.New(errors.PhaseHeader, errors.KindInvalidData).
			Detail("bad magic %q", data[:7]).
			Build()
	}

	var h Header
	switch data[7] {
	case '_':
		h.PointerSize = 4
	case '-':
		h.PointerSize = 8
	default:
		return Header{}, errors.New(errors.PhaseHeader, errors.KindInvalidData).
			Detail("unknown pointer size marker %q", data[7]).
			Build()
	}

	switch data[8] {
	case 'v':
		h.Order = binary.LittleEndian
	case 'V':
		h.Order = binary.BigEndian
	default:
		return Header{}, errors.New(errors.PhaseHeader, errors.KindInvalidData).
			Detail("unknown endianness marker %q", data[8]).
			Build()
	}

	num := 0
	for _, c := range data[9:headerSize] {
		if c < '0' || c > '9' {
			return Header{}, errors.New(errors.PhaseHeader, errors.KindInvalidData).
				Detail("non-numeric version %q", data[9:headerSize]).
				Build()
		}
		num = num*10 + int(c-'0')
	}
	h.Version = string(data[9:headerSize])
	h.VersionNum = num
	return h, nil
}

// readAddress reads a block address at the header's pointer width,
// widening 32-bit addresses to 64 bits.
func readAddress(r *stream.Reader, ptrSize int) (uint64, error) {
	if ptrSize == 4 {
		v, err := r.ReadU32()
		return uint64(v), err
	}
	return r.ReadU64()
}
