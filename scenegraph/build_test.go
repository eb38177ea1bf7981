package scenegraph

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/kismeter/blendfile/errors"
	"github.com/kismeter/blendfile/scene"
)

func ident() [4][4]float32 {
	var m [4][4]float32
	m[0][0], m[1][1], m[2][2], m[3][3] = 1, 1, 1, 1
	return m
}

func translated(x, y, z float32) [4][4]float32 {
	m := ident()
	m[3][0], m[3][1], m[3][2] = x, y, z
	return m
}

// sceneWith chains the objects into a base list under a fresh scene.
func sceneWith(objs ...*scene.Object) *scene.Scene {
	sc := &scene.Scene{ID: scene.ID{Name: "SCMain"}}
	var tail *scene.Base
	for _, o := range objs {
		b := &scene.Base{Object: o}
		if tail == nil {
			sc.Base.First = b
		} else {
			tail.Next = b
		}
		tail = b
	}
	if tail != nil {
		sc.Base.Last = tail
	}
	return sc
}

func quadMesh() *scene.Mesh {
	return &scene.Mesh{
		ID:      scene.ID{Name: "MEQuad"},
		TotVert: 4,
		TotFace: 1,
		Vert: []scene.MVert{
			{Co: [3]float32{0, 0, 0}, No: [3]int16{0, 0, 32767}},
			{Co: [3]float32{1, 0, 0}, No: [3]int16{0, 0, 32767}},
			{Co: [3]float32{1, 1, 0}, No: [3]int16{18918, 18918, 18918}},
			{Co: [3]float32{0, 1, 0}, No: [3]int16{0, 0, 32767}},
		},
		Face:  []scene.MFace{{V1: 0, V2: 1, V3: 2, V4: 3}},
		TFace: []scene.MTFace{{UV: [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}},
	}
}

func TestBuildMeshObject(t *testing.T) {
	mesh := quadMesh()
	mesh.Mat = []*scene.Material{{
		ID:    scene.ID{Name: "MAWood"},
		R:     0.6, G: 0.4, B: 0.2,
		SpecR: 1, SpecG: 1, SpecB: 1,
		Spec:  0.5,
		Alpha: 1,
		Har:   64,
		MTex:  &scene.MTex{Tex: &scene.Tex{Ima: &scene.Image{Name: "//wood.png"}}},
	}}
	obj := &scene.Object{
		ID:    scene.ID{Name: "OBQuad"},
		Type:  scene.ObjMesh,
		Data:  mesh,
		ObMat: translated(1, 2, 3),
	}

	g, err := Build(sceneWith(obj))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.Root.Name != "Main" {
		t.Errorf("root name = %q, want Main", g.Root.Name)
	}
	if len(g.Root.Children) != 1 {
		t.Fatalf("root has %d children, want 1", len(g.Root.Children))
	}
	n := g.Root.Children[0]
	if n.Name != "Quad" {
		t.Errorf("node name = %q, want Quad", n.Name)
	}
	if !n.Transform.ApproxEqual(mgl32.Translate3D(1, 2, 3)) {
		t.Errorf("node transform = %v", n.Transform)
	}
	if len(n.MeshIndices) != 1 || n.MeshIndices[0] != 0 {
		t.Fatalf("mesh indices = %v", n.MeshIndices)
	}

	gm := g.Meshes[0]
	if gm.Name != "Quad" {
		t.Errorf("mesh name = %q", gm.Name)
	}
	if len(gm.Positions) != 4 || gm.Positions[2] != (mgl32.Vec3{1, 1, 0}) {
		t.Errorf("positions = %v", gm.Positions)
	}
	if gm.Normals[0] != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("normal 0 = %v, want unit z", gm.Normals[0])
	}
	unit := float32(18918) / 32767
	if gm.Normals[2] != (mgl32.Vec3{unit, unit, unit}) {
		t.Errorf("normal 2 = %v", gm.Normals[2])
	}
	if len(gm.Faces) != 1 || len(gm.Faces[0]) != 4 || gm.Faces[0][3] != 3 {
		t.Errorf("faces = %v", gm.Faces)
	}
	if len(gm.UVs) != 4 || gm.UVs[3] != (mgl32.Vec2{0, 1}) {
		t.Errorf("uvs = %v", gm.UVs)
	}
	if gm.MaterialIndex != 0 {
		t.Errorf("material index = %d", gm.MaterialIndex)
	}

	m := g.Materials[0]
	if m.Name != "Wood" || m.Texture != "//wood.png" {
		t.Errorf("material = %q texture %q", m.Name, m.Texture)
	}
	if m.Diffuse != (mgl32.Vec3{0.6, 0.4, 0.2}) {
		t.Errorf("diffuse = %v", m.Diffuse)
	}
	if m.Specular != (mgl32.Vec3{0.5, 0.5, 0.5}) {
		t.Errorf("specular = %v", m.Specular)
	}
	if m.Shininess != 64 {
		t.Errorf("shininess = %v", m.Shininess)
	}
}

func TestBuildParenting(t *testing.T) {
	parent := &scene.Object{
		ID:    scene.ID{Name: "OBRig"},
		Type:  scene.ObjEmpty,
		ObMat: translated(2, 1, 0),
	}
	child := &scene.Object{
		ID:     scene.ID{Name: "OBHand"},
		Type:   scene.ObjEmpty,
		Parent: parent,
		ObMat:  translated(5, 1, 0),
	}

	// Only the child sits in the base list; the parent is reachable
	// through its link alone and must still become a node.
	g, err := Build(sceneWith(child))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.Root.Children) != 1 {
		t.Fatalf("root has %d children, want 1", len(g.Root.Children))
	}
	rig := g.Root.Children[0]
	if rig.Name != "Rig" {
		t.Errorf("root child = %q, want Rig", rig.Name)
	}
	if len(rig.Children) != 1 || rig.Children[0].Name != "Hand" {
		t.Fatalf("rig children = %+v", rig.Children)
	}
	hand := rig.Children[0]
	if !hand.Transform.ApproxEqual(mgl32.Translate3D(3, 0, 0)) {
		t.Errorf("hand local transform = %v, want translate(3,0,0)", hand.Transform)
	}
}

func TestBuildSingularParent(t *testing.T) {
	parent := &scene.Object{ID: scene.ID{Name: "OBFlat"}, Type: scene.ObjEmpty} // zero matrix
	child := &scene.Object{
		ID:     scene.ID{Name: "OBLeaf"},
		Type:   scene.ObjEmpty,
		Parent: parent,
		ObMat:  translated(1, 0, 0),
	}

	g, err := Build(sceneWith(child, parent))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.Root.Children) != 2 {
		t.Fatalf("root has %d children, want both at root", len(g.Root.Children))
	}
	leaf := g.Root.Children[0]
	if leaf.Name != "Leaf" {
		t.Fatalf("first root child = %q", leaf.Name)
	}
	if !leaf.Transform.ApproxEqual(mgl32.Translate3D(1, 0, 0)) {
		t.Errorf("leaf kept transform = %v", leaf.Transform)
	}
}

func TestBuildLightsCamerasWorld(t *testing.T) {
	lamp := &scene.Object{
		ID:    scene.ID{Name: "OBSun"},
		Type:  scene.ObjLamp,
		ObMat: ident(),
		Data: &scene.Lamp{
			ID:   scene.ID{Name: "LASun"},
			Type: scene.LampSun,
			R:    1, G: 0.9, B: 0.8,
			Energy: 3,
		},
	}
	cam := &scene.Object{
		ID:    scene.ID{Name: "OBShot"},
		Type:  scene.ObjCamera,
		ObMat: ident(),
		Data: &scene.Camera{
			ID:         scene.ID{Name: "CAShot"},
			Type:       scene.CamOrtho,
			OrthoScale: 7.5,
			ClipSta:    0.1,
			ClipEnd:    500,
		},
	}
	sc := sceneWith(lamp, cam)
	sc.World = &scene.World{HorR: 0.1, HorG: 0.2, HorB: 0.3, AmbR: 0.05}

	g, err := Build(sc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.Lights) != 1 || len(g.Cameras) != 1 {
		t.Fatalf("lights=%d cameras=%d, want 1/1", len(g.Lights), len(g.Cameras))
	}
	l := g.Lights[0]
	if l.Name != "Sun" || l.Kind != LightSun || l.Energy != 3 {
		t.Errorf("light = %+v", l)
	}
	if l.Color != (mgl32.Vec3{1, 0.9, 0.8}) {
		t.Errorf("light color = %v", l.Color)
	}
	c := g.Cameras[0]
	if !c.Ortho || c.OrthoScale != 7.5 || c.ClipEnd != 500 {
		t.Errorf("camera = %+v", c)
	}
	if g.World == nil || g.World.Horizon != (mgl32.Vec3{0.1, 0.2, 0.3}) {
		t.Fatalf("world = %+v", g.World)
	}
	if g.World.Ambient[0] != 0.05 {
		t.Errorf("ambient = %v", g.World.Ambient)
	}
}

func TestBuildPolyFaces(t *testing.T) {
	m := &scene.Mesh{
		ID:   scene.ID{Name: "MEPent"},
		Vert: make([]scene.MVert, 5),
		Loop: []scene.MLoop{{V: 0}, {V: 1}, {V: 2}, {V: 3}, {V: 4}},
		LoopUV: []scene.MLoopUV{
			{UV: [2]float32{0, 0}}, {UV: [2]float32{1, 0}}, {UV: [2]float32{1, 1}},
			{UV: [2]float32{0.5, 1.5}}, {UV: [2]float32{0, 1}},
		},
		LoopCol: []scene.MLoopCol{
			{R: 255, A: 255}, {}, {}, {}, {G: 128},
		},
		Poly: []scene.MPoly{{LoopStart: 0, TotLoop: 5}},
	}
	obj := &scene.Object{ID: scene.ID{Name: "OBPent"}, Type: scene.ObjMesh, Data: m, ObMat: ident()}

	g, err := Build(sceneWith(obj))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	gm := g.Meshes[0]
	if len(gm.Faces) != 1 || len(gm.Faces[0]) != 5 || gm.Faces[0][4] != 4 {
		t.Fatalf("faces = %v", gm.Faces)
	}
	if len(gm.UVs) != 5 || gm.UVs[3] != (mgl32.Vec2{0.5, 1.5}) {
		t.Errorf("uvs = %v", gm.UVs)
	}
	if len(gm.Colors) != 5 || gm.Colors[0] != [4]uint8{255, 0, 0, 255} || gm.Colors[4] != [4]uint8{0, 128, 0, 0} {
		t.Errorf("colors = %v", gm.Colors)
	}
	if gm.MaterialIndex != -1 {
		t.Errorf("material index = %d, want -1", gm.MaterialIndex)
	}
}

func TestBuildLegacyTriangle(t *testing.T) {
	m := &scene.Mesh{
		ID:   scene.ID{Name: "METri"},
		Vert: make([]scene.MVert, 3),
		Face: []scene.MFace{{V1: 2, V2: 1, V3: 0, V4: 0}},
		Col:  []scene.MCol{{R: 9}, {}, {}, {}},
	}
	obj := &scene.Object{ID: scene.ID{Name: "OBTri"}, Type: scene.ObjMesh, Data: m, ObMat: ident()}

	g, err := Build(sceneWith(obj))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	gm := g.Meshes[0]
	if len(gm.Faces) != 1 || len(gm.Faces[0]) != 3 {
		t.Fatalf("faces = %v", gm.Faces)
	}
	if gm.Faces[0][0] != 2 {
		t.Errorf("face = %v", gm.Faces[0])
	}
	if len(gm.Colors) != 3 || gm.Colors[0] != [4]uint8{9, 0, 0, 0} {
		t.Errorf("colors = %v", gm.Colors)
	}
}

func TestBuildFaceOutOfBounds(t *testing.T) {
	m := &scene.Mesh{
		ID:   scene.ID{Name: "MEBad"},
		Vert: make([]scene.MVert, 3),
		Face: []scene.MFace{{V1: 0, V2: 1, V3: 9}},
	}
	obj := &scene.Object{ID: scene.ID{Name: "OBBad"}, Type: scene.ObjMesh, Data: m, ObMat: ident()}

	_, err := Build(sceneWith(obj))
	if errors.KindOf(err) != errors.KindOutOfBounds {
		t.Fatalf("Build with stray vertex index = %v", err)
	}
}

func TestBuildSharedMesh(t *testing.T) {
	mesh := quadMesh()
	left := &scene.Object{ID: scene.ID{Name: "OBLeft"}, Type: scene.ObjMesh, Data: mesh, ObMat: translated(-2, 0, 0)}
	right := &scene.Object{ID: scene.ID{Name: "OBRight"}, Type: scene.ObjMesh, Data: mesh, ObMat: translated(2, 0, 0)}

	g, err := Build(sceneWith(left, right))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.Meshes) != 1 {
		t.Fatalf("shared mesh duplicated: %d entries", len(g.Meshes))
	}
	for _, n := range g.Root.Children {
		if len(n.MeshIndices) != 1 || n.MeshIndices[0] != 0 {
			t.Errorf("node %s mesh indices = %v", n.Name, n.MeshIndices)
		}
	}
}

func TestBuildCollectionScene(t *testing.T) {
	member := &scene.Object{ID: scene.ID{Name: "OBProp"}, Type: scene.ObjEmpty, ObMat: ident()}
	inst := &scene.Object{
		ID: scene.ID{Name: "OBSpawner"}, Type: scene.ObjEmpty, ObMat: ident(),
		DupGroup: &scene.Group{
			ID:      scene.ID{Name: "GRProps"},
			GObject: scene.ListBase{First: &scene.GroupObject{Object: member}},
		},
	}
	deco := &scene.Object{ID: scene.ID{Name: "OBDeco"}, Type: scene.ObjEmpty, ObMat: ident()}

	sc := &scene.Scene{ID: scene.ID{Name: "SCSet"}}
	sc.MasterCollection = &scene.Collection{
		ID:      scene.ID{Name: "GRMaster"},
		GObject: scene.ListBase{First: &scene.CollectionObject{Object: inst}},
		Children: scene.ListBase{First: &scene.CollectionChild{
			Collection: &scene.Collection{
				ID:      scene.ID{Name: "GRDetail"},
				GObject: scene.ListBase{First: &scene.CollectionObject{Object: deco}},
			},
		}},
	}

	g, err := Build(sc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var names []string
	for _, n := range g.Root.Children {
		names = append(names, n.Name)
	}
	want := []string{"Spawner", "Deco", "Prop"}
	if len(names) != len(want) {
		t.Fatalf("root children = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("root children = %v, want %v", names, want)
		}
	}
}

func TestBuildMissingData(t *testing.T) {
	bare := &scene.Object{ID: scene.ID{Name: "OBGhost"}, Type: scene.ObjCurve, ObMat: ident()}

	g, err := Build(sceneWith(bare))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.Root.Children) != 1 || g.Root.Children[0].Name != "Ghost" {
		t.Fatalf("root children = %+v", g.Root.Children)
	}
	if len(g.Meshes) != 0 || len(g.Lights) != 0 || len(g.Cameras) != 0 {
		t.Errorf("dataless object produced resources")
	}
}

func TestBuildNilScene(t *testing.T) {
	if _, err := Build(nil); errors.KindOf(err) != errors.KindInvalidData {
		t.Fatalf("Build(nil) = %v", err)
	}
}
