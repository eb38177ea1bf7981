package dna

import (
	"github.com/kismeter/blendfile/errors"
	"github.com/kismeter/blendfile/file"
	"github.com/kismeter/blendfile/stream"
)

// Stats counts the work one conversion performed. The cache counters make
// the idempotence contract observable: resolving an address twice bumps
// CacheHits, not CachedObjects.
type Stats struct {
	FieldsRead       uint64
	PointersResolved uint64
	CacheHits        uint64
	CachedObjects    uint64
	CachedSlices     uint64
}

type cacheKey struct {
	slot int
	addr uint64
}

// Database bundles everything one conversion needs: the stream over the
// file image, the parsed catalog, the address-sorted block index, and the
// object cache. It is single-conversion state; create one per file and
// discard it with the materialized graph.
type Database struct {
	Reader      *stream.Reader
	Catalog     *Catalog
	Blocks      file.Index
	PointerSize int

	cache  map[cacheKey]Elem
	slices map[cacheKey]any
	stats  Stats
}

// NewDatabase creates a database over an already parsed file.
func NewDatabase(r *stream.Reader, cat *Catalog, blocks file.Index, ptrSize int) *Database {
	return &Database{
		Reader:      r,
		Catalog:     cat,
		Blocks:      blocks,
		PointerSize: ptrSize,
		cache:       make(map[cacheKey]Elem),
		slices:      make(map[cacheKey]any),
	}
}

// Stats returns a copy of the conversion counters.
func (db *Database) Stats() Stats {
	return db.stats
}

// readPointer reads a raw address at the file's pointer width, widened to
// 64 bits.
func (db *Database) readPointer() (uint64, error) {
	if db.PointerSize == 4 {
		v, err := db.Reader.ReadU32()
		return uint64(v), err
	}
	return db.Reader.ReadU64()
}

// Convert runs the converter registered for s's type name against the
// instance at the reader's current position.
func (db *Database) Convert(s *Structure, out Elem) error {
	f, ok := db.Catalog.factory(s.Name)
	if !ok {
		return errors.NotRegistered(s.Name)
	}
	return f.Convert(db, s, out)
}

// ConvertBlock materializes the first instance held by a file block into
// out, which must match the block's recorded structure. The reader
// position is restored afterwards.
func (db *Database) ConvertBlock(b *file.Block, out Elem) error {
	s, ok := db.Catalog.StructAt(int(b.SDNAIndex))
	if !ok {
		return errors.New(errors.PhaseConvert, errors.KindInvalidData).
			Detail("block %q records structure index %d outside the catalog", b.Code, b.SDNAIndex).
			Build()
	}

	save := db.Reader.Position()
	defer db.Reader.Seek(save)

	if err := db.Reader.Seek(b.Start); err != nil {
		return err
	}
	return db.Convert(s, out)
}
