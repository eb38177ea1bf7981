package scene

import (
	"github.com/kismeter/blendfile/dna"
)

// ObjectType tags what an Object's data pointer refers to, using the codes
// the file format assigns.
type ObjectType int16

const (
	ObjEmpty    ObjectType = 0
	ObjMesh     ObjectType = 1
	ObjCurve    ObjectType = 2
	ObjSurf     ObjectType = 3
	ObjFont     ObjectType = 4
	ObjMball    ObjectType = 5
	ObjLamp     ObjectType = 10
	ObjCamera   ObjectType = 11
	ObjSpeaker  ObjectType = 12
	ObjLattice  ObjectType = 22
	ObjArmature ObjectType = 25
)

// Lamp type codes.
const (
	LampLocal int16 = 0
	LampSun   int16 = 1
	LampSpot  int16 = 2
	LampHemi  int16 = 3
	LampArea  int16 = 4
)

// Camera type codes.
const (
	CamPersp uint8 = 0
	CamOrtho uint8 = 1
)

// ID is the header every library datablock starts with: the display name
// and the library the block was linked from, if any.
type ID struct {
	dna.ElemBase
	Name string
	Flag int16
	Lib  *Library
}

// ListBase is the file format's doubly linked list anchor. First and Last
// are resolved dynamically since the anchor never names the element type.
type ListBase struct {
	dna.ElemBase
	First dna.Elem
	Last  dna.Elem
}

// PackedFile carries a file embedded into the .blend. Data marks where the
// payload bytes live in the image; they are not decoded further.
type PackedFile struct {
	dna.ElemBase
	Size int32
	Seek int32
	Data *dna.FileOffset
}

// Base is one entry in a scene's object list.
type Base struct {
	dna.ElemBase
	Next   *Base
	Prev   *Base // never resolved, traversal is forward only
	Object *Object
}

// Scene is the conversion root.
type Scene struct {
	dna.ElemBase
	ID               ID
	Camera           *Object
	World            *World
	Base             ListBase
	Basact           *Base
	MasterCollection *Collection // 2.80+ files only
}

// Object places a datablock in the scene: transform, parenting, and the
// dynamically typed Data pointer.
type Object struct {
	dna.ElemBase
	ID        ID
	Type      ObjectType
	Parent    *Object
	Track     *Object
	Data      dna.Elem
	DupGroup  *Group
	Lay       int32
	ObMat     [4][4]float32
	ParentInv [4][4]float32
	Modifiers ListBase
}

// Mesh carries the geometry arrays. Pre-2.63 files fill MFace; newer files
// fill the loop and polygon arrays instead.
type Mesh struct {
	dna.ElemBase
	ID       ID
	TotVert  int32
	TotEdge  int32
	TotFace  int32
	TotLoop  int32
	TotPoly  int32
	Vert     []MVert
	Edge     []MEdge
	Face     []MFace
	TFace    []MTFace
	Loop     []MLoop
	LoopUV   []MLoopUV
	LoopCol  []MLoopCol
	Poly     []MPoly
	Col      []MCol
	DVert    []MDeformVert
	Mat      []*Material
	VData    CustomData
	LData    CustomData
	PData    CustomData
}

// MVert is one vertex: position plus a normal packed as fixed-point
// shorts on a 1/32767 scale.
type MVert struct {
	dna.ElemBase
	Co      [3]float32
	No      [3]int16
	Flag    uint8
	BWeight uint8
}

type MEdge struct {
	dna.ElemBase
	V1     int32
	V2     int32
	Crease uint8
	Flag   int16
}

// MFace is a legacy triangle or quad; V4 == 0 marks a triangle.
type MFace struct {
	dna.ElemBase
	V1    int32
	V2    int32
	V3    int32
	V4    int32
	MatNr int16
	Flag  uint8
}

// MTFace holds per-corner UVs and the texture page of a legacy face.
type MTFace struct {
	dna.ElemBase
	UV    [4][2]float32
	TPage *Image
	Flag  uint8
	Mode  int16
	Tile  int16
}

// MLoop is one face corner in 2.63+ geometry.
type MLoop struct {
	dna.ElemBase
	V int32
	E int32
}

type MLoopUV struct {
	dna.ElemBase
	UV   [2]float32
	Flag int32
}

type MLoopCol struct {
	dna.ElemBase
	R uint8
	G uint8
	B uint8
	A uint8
}

// MPoly addresses a run of loops forming one polygon.
type MPoly struct {
	dna.ElemBase
	LoopStart int32
	TotLoop   int32
	MatNr     int16
	Flag      uint8
}

type MCol struct {
	dna.ElemBase
	R uint8
	G uint8
	B uint8
	A uint8
}

type MDeformWeight struct {
	dna.ElemBase
	DefNr  int32
	Weight float32
}

type MDeformVert struct {
	dna.ElemBase
	DW        []MDeformWeight
	TotWeight int32
}

// CustomData is the layered attribute container. Only the layer directory
// is read; per-layer payloads are not decoded.
type CustomData struct {
	dna.ElemBase
	Layers   []CustomDataLayer
	TotLayer int32
}

type CustomDataLayer struct {
	dna.ElemBase
	Type   int32
	Flag   int32
	Active int32
	Name   string
}

type Material struct {
	dna.ElemBase
	ID       ID
	R        float32
	G        float32
	B        float32
	SpecR    float32
	SpecG    float32
	SpecB    float32
	Alpha    float32
	Spec     float32
	Emit     float32
	Amb      float32
	Har      int16
	UseNodes uint8
	MTex     *MTex // first slot of the texture stack
}

// MTex is one slot in a material's texture stack.
type MTex struct {
	dna.ElemBase
	TexCo     int16
	MapTo     int16
	BlendType int16
	Tex       *Tex
	UVName    string
	Ofs       [3]float32
	Size      [3]float32
	ColFac    float32
}

type Tex struct {
	dna.ElemBase
	ID   ID
	Type int16
	Ima  *Image
}

// Image is an image datablock; Name is the file path as stored, which may
// be relative to the .blend ("//textures/...").
type Image struct {
	dna.ElemBase
	ID         ID
	Name       string
	Source     int16
	PackedFile *PackedFile
}

type Camera struct {
	dna.ElemBase
	ID         ID
	Type       uint8
	Lens       float32
	OrthoScale float32
	ClipSta    float32
	ClipEnd    float32
	ShiftX     float32
	ShiftY     float32
}

type Lamp struct {
	dna.ElemBase
	ID        ID
	Type      int16
	R         float32
	G         float32
	B         float32
	Energy    float32
	Dist      float32
	SpotSize  float32
	SpotBlend float32
	Att1      float32
	Att2      float32
}

type World struct {
	dna.ElemBase
	ID   ID
	HorR float32
	HorG float32
	HorB float32
	AmbR float32
	AmbG float32
	AmbB float32
}

// Library records where linked datablocks come from.
type Library struct {
	dna.ElemBase
	ID     ID
	Name   string
	Parent *Library
}

// Group is the pre-2.80 object grouping datablock.
type Group struct {
	dna.ElemBase
	ID      ID
	Layer   int32
	GObject ListBase
}

type GroupObject struct {
	dna.ElemBase
	Next   *GroupObject
	Prev   *GroupObject // never resolved
	Object *Object
}

// Collection replaces Group in 2.80+ files.
type Collection struct {
	dna.ElemBase
	ID       ID
	GObject  ListBase
	Children ListBase
}

type CollectionObject struct {
	dna.ElemBase
	Next   *CollectionObject
	Prev   *CollectionObject // never resolved
	Object *Object
}

type CollectionChild struct {
	dna.ElemBase
	Next       *CollectionChild
	Prev       *CollectionChild // never resolved
	Collection *Collection
}

// ModifierData is the header every modifier starts with. Next resolves
// dynamically because each stack entry is written as its concrete type.
type ModifierData struct {
	dna.ElemBase
	Next dna.Elem
	Type int32
	Mode int32
	Name string
}

// Modifier type codes for the converted modifier structures.
const (
	ModifierSubsurf int32 = 5
	ModifierMirror  int32 = 8
)

type SubsurfModifierData struct {
	dna.ElemBase
	Modifier     ModifierData
	SubdivType   int16
	Levels       int16
	RenderLevels int16
	Flags        int16
}

type MirrorModifierData struct {
	dna.ElemBase
	Modifier  ModifierData
	Axis      int16
	Flag      int16
	Tolerance float32
	MirrorOb  *Object
}
