package file

import (
	"fmt"
	"sort"
	"strings"
)

// Block describes one file block: where its payload lives in the stream
// and which memory address its contents were referenced by on save.
type Block struct {
	Code      string // identifier with trailing NULs stripped
	Size      uint32 // payload bytes
	Address   uint64 // old memory address, the value pointers carry
	SDNAIndex uint32 // index into the DNA structure table
	Count     uint32 // struct instances in the payload
	Start     int    // absolute payload offset in the stream
}

// End returns the first address past the block's payload range.
func (b *Block) End() uint64 {
	return b.Address + uint64(b.Size)
}

func (b *Block) String() string {
	return fmt.Sprintf("%s addr=0x%x size=%d sdna=%d count=%d", b.Code, b.Address, b.Size, b.SDNAIndex, b.Count)
}

// Index is the pointer-resolution view of the block list, sorted
// ascending by Address.
type Index []Block

// Find returns the block whose [Address, End) range contains addr.
func (ix Index) Find(addr uint64) (*Block, bool) {
	i := sort.Search(len(ix), func(i int) bool {
		return addr < ix[i].End()
	})
	if i == len(ix) || addr < ix[i].Address {
		return nil, false
	}
	return &ix[i], true
}

func buildIndex(blocks []Block) Index {
	ix := make(Index, len(blocks))
	copy(ix, blocks)
	sort.Slice(ix, func(i, j int) bool {
		return ix[i].Address < ix[j].Address
	})
	return ix
}

func trimCode(code []byte) string {
	return strings.TrimRight(string(code), "\x00")
}
