package file

import (
	"github.com/kismeter/blendfile/errors"
	"github.com/kismeter/blendfile/stream"
)

const (
	codeDNA = "DNA1"
	codeEnd = "ENDB"
)

// File is the parsed container: header, blocks in file order, and the
// address-sorted index used for pointer resolution.
type File struct {
	Header Header
	Blocks []Block // file order, ENDB excluded
	Index  Index   // sorted by Address
	DNA    *Block  // the DNA1 block
}

// Parse decodes the container from a complete in-memory file image and
// returns the parsed file plus a reader positioned over the same image
// with the header's byte order.
func Parse(data []byte) (*File, *stream.Reader, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, nil, err
	}

	r := stream.NewReader(data, h.Order)
	if err := r.Seek(headerSize); err != nil {
		return nil, nil, err
	}

	f := &File{Header: h}
	dnaIndex := -1
	for {
		code, err := r.ReadBytes(4)
		if err != nil {
			return nil, nil, errors.Wrap(errors.PhaseBlocks, errors.KindInvalidData, err,
				"file ended before ENDB")
		}
		if trimCode(code) == codeEnd {
			break
		}

		var b Block
		b.Code = trimCode(code)
		if b.Size, err = r.ReadU32(); err != nil {
			return nil, nil, wrapBlock(err, b.Code)
		}
		if b.Address, err = readAddress(r, h.PointerSize); err != nil {
			return nil, nil, wrapBlock(err, b.Code)
		}
		if b.SDNAIndex, err = r.ReadU32(); err != nil {
			return nil, nil, wrapBlock(err, b.Code)
		}
		if b.Count, err = r.ReadU32(); err != nil {
			return nil, nil, wrapBlock(err, b.Code)
		}
		b.Start = r.Position()

		if err := r.Skip(int(b.Size)); err != nil {
			return nil, nil, errors.New(errors.PhaseBlocks, errors.KindTruncated).
				Detail("block %q payload of %d bytes runs past end of file", b.Code, b.Size).
				Cause(err).
				Build()
		}

		if b.Code == codeDNA {
			dnaIndex = len(f.Blocks)
		}
		f.Blocks = append(f.Blocks, b)
	}

	if dnaIndex < 0 {
		return nil, nil, errors.InvalidData(errors.PhaseBlocks, "no DNA1 block in file")
	}
	f.DNA = &f.Blocks[dnaIndex]

	f.Index = buildIndex(f.Blocks)
	return f, r, nil
}

// BlocksBySDNA returns the blocks recorded against the given DNA
// structure index, in file order.
func (f *File) BlocksBySDNA(index uint32) []*Block {
	var out []*Block
	for i := range f.Blocks {
		if f.Blocks[i].SDNAIndex == index {
			out = append(out, &f.Blocks[i])
		}
	}
	return out
}

func wrapBlock(err error, code string) error {
	return errors.Wrap(errors.PhaseBlocks, errors.KindTruncated, err,
		"short block header after "+code)
}
