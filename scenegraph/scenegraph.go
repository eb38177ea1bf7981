// Package scenegraph flattens a converted datablock graph into a plain
// renderer-facing scene: a node hierarchy with local transforms, indexed
// meshes, materials, cameras and lights.
//
// No mesh processing happens here. Faces come through exactly as stored,
// triangles and quads from the legacy face array, n-gons from the loop
// tables. What the package does do is decode fixed-point data (normals,
// transforms) into mathgl types and rebuild parenting as a tree.
package scenegraph

import "github.com/go-gl/mathgl/mgl32"

// Scene is the flattened result. Slices are in discovery order: base
// list first, then collection members.
type Scene struct {
	Root      *Node
	Meshes    []*Mesh
	Materials []*Material
	Cameras   []*Camera
	Lights    []*Light
	World     *World
}

// Node is one object in the hierarchy. Transform is relative to the
// parent node; the root carries identity, so its direct children hold
// their world matrices unchanged.
type Node struct {
	Name        string
	Transform   mgl32.Mat4
	Children    []*Node
	MeshIndices []int
}

// Mesh is indexed geometry. Positions and Normals are per vertex. UVs
// and Colors are per corner, laid out in face order: face 0's corners
// first, then face 1's, matching a walk over Faces. They are empty when
// the mesh carries no such layer.
type Mesh struct {
	Name          string
	Positions     []mgl32.Vec3
	Normals       []mgl32.Vec3
	UVs           []mgl32.Vec2
	Colors        [][4]uint8
	Faces         [][]int
	MaterialIndex int
}

// Material carries the classic shading parameters. Texture is the path
// of the first texture slot's image, empty when the slot chain breaks
// anywhere.
type Material struct {
	Name      string
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32
	Alpha     float32
	Emit      float32
	Ambient   float32
	Texture   string
}

// Camera parameters. Lens applies to perspective cameras, OrthoScale to
// orthographic ones.
type Camera struct {
	Name       string
	Ortho      bool
	Lens       float32
	OrthoScale float32
	ClipStart  float32
	ClipEnd    float32
	ShiftX     float32
	ShiftY     float32
}

// LightKind mirrors the stored lamp types.
type LightKind uint8

const (
	LightPoint LightKind = iota
	LightSun
	LightSpot
	LightHemi
	LightArea
)

var lightKindNames = [...]string{
	LightPoint: "point",
	LightSun:   "sun",
	LightSpot:  "spot",
	LightHemi:  "hemi",
	LightArea:  "area",
}

func (k LightKind) String() string {
	if int(k) < len(lightKindNames) {
		return lightKindNames[k]
	}
	return "unknown"
}

// Light is a positioned light source. Position and direction live on the
// node that referenced the lamp, not here.
type Light struct {
	Name      string
	Kind      LightKind
	Color     mgl32.Vec3
	Energy    float32
	Distance  float32
	SpotSize  float32
	SpotBlend float32
	Att1      float32
	Att2      float32
}

// World is the scene background: horizon color and flat ambient light.
type World struct {
	Horizon mgl32.Vec3
	Ambient mgl32.Vec3
}
