package dna

// Elem is implemented by every materialized target object. The DNA type
// stamp records which structure an instance was actually built from when
// the static type was only approximately known.
type Elem interface {
	SetDNAType(name string)
	DNAType() string
}

// ElemBase carries the discovered-type stamp. Embed it in every target
// type so pointers to the type can flow through resolution.
type ElemBase struct {
	dnaType string
}

// SetDNAType records the DNA structure name the instance was built from.
func (e *ElemBase) SetDNAType(name string) {
	e.dnaType = name
}

// DNAType returns the recorded DNA structure name, or "" before the
// instance passed through dynamic resolution.
func (e *ElemBase) DNAType() string {
	return e.dnaType
}

// ElemPtr constrains a pointer-to-target type for the generic pointer
// readers: *T must carry the ElemBase stamp.
type ElemPtr[T any] interface {
	*T
	Elem
}
