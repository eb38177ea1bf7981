package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/kismeter/blendfile/errors"
	"github.com/kismeter/blendfile/scene"
)

type builder struct {
	out       *Scene
	meshIndex map[*scene.Mesh]int
	matIndex  map[*scene.Material]int
	nodes     map[*scene.Object]*Node
}

// Build flattens a converted scene into a node tree with indexed
// resources. Objects shared between bases, collections and groups come
// out as a single node; meshes and materials referenced from several
// places come out as a single slice entry.
func Build(sc *scene.Scene) (*Scene, error) {
	if sc == nil {
		return nil, errors.InvalidData(errors.PhaseGraph, "no scene to flatten")
	}
	b := &builder{
		out:       &Scene{},
		meshIndex: make(map[*scene.Mesh]int),
		matIndex:  make(map[*scene.Material]int),
		nodes:     make(map[*scene.Object]*Node),
	}
	b.out.Root = &Node{Name: trimIDName(sc.ID.Name), Transform: mgl32.Ident4()}

	objs := collectObjects(sc)
	for _, o := range objs {
		if err := b.addObject(o); err != nil {
			return nil, err
		}
	}
	b.attach(objs)

	if sc.World != nil {
		b.out.World = &World{
			Horizon: mgl32.Vec3{sc.World.HorR, sc.World.HorG, sc.World.HorB},
			Ambient: mgl32.Vec3{sc.World.AmbR, sc.World.AmbG, sc.World.AmbB},
		}
	}
	return b.out, nil
}

// collectObjects gathers every object the scene references: the base
// list, the collection tree, group instance members, and any parent
// reachable only through a parent link. Order is discovery order and
// each object appears once.
func collectObjects(sc *scene.Scene) []*scene.Object {
	var (
		out  []*scene.Object
		seen = make(map[*scene.Object]bool)
	)
	add := func(o *scene.Object) {
		if o != nil && !seen[o] {
			seen[o] = true
			out = append(out, o)
		}
	}

	for b, _ := sc.Base.First.(*scene.Base); b != nil; b = b.Next {
		add(b.Object)
	}

	visited := make(map[*scene.Collection]bool)
	var walk func(c *scene.Collection)
	walk = func(c *scene.Collection) {
		if c == nil || visited[c] {
			return
		}
		visited[c] = true
		for co, _ := c.GObject.First.(*scene.CollectionObject); co != nil; co = co.Next {
			add(co.Object)
		}
		for cc, _ := c.Children.First.(*scene.CollectionChild); cc != nil; cc = cc.Next {
			walk(cc.Collection)
		}
	}
	walk(sc.MasterCollection)

	// Appending while indexing pulls in parents of parents and group
	// members of freshly added instancers too.
	for i := 0; i < len(out); i++ {
		add(out[i].Parent)
		if g := out[i].DupGroup; g != nil {
			for m, _ := g.GObject.First.(*scene.GroupObject); m != nil; m = m.Next {
				add(m.Object)
			}
		}
	}
	return out
}

func (b *builder) addObject(o *scene.Object) error {
	n := &Node{Name: trimIDName(o.ID.Name), Transform: matrix(o.ObMat)}
	b.nodes[o] = n

	switch data := o.Data.(type) {
	case nil:
		if o.Type != scene.ObjEmpty {
			Logger().Warn("object has no materialized data",
				zap.String("object", o.ID.Name),
				zap.Int16("type", int16(o.Type)))
		}
	case *scene.Mesh:
		idx, err := b.mesh(data)
		if err != nil {
			return err
		}
		n.MeshIndices = append(n.MeshIndices, idx)
	case *scene.Camera:
		b.out.Cameras = append(b.out.Cameras, camera(n.Name, data))
	case *scene.Lamp:
		b.out.Lights = append(b.out.Lights, light(n.Name, data))
	default:
		Logger().Warn("object data has no scene-graph mapping",
			zap.String("object", o.ID.Name),
			zap.String("type", data.DNAType()))
	}
	return nil
}

// attach wires child nodes under their parents and rebases transforms.
// Stored object matrices are world matrices; a child's node transform is
// the parent's world inverse times its own.
func (b *builder) attach(objs []*scene.Object) {
	for _, o := range objs {
		n := b.nodes[o]
		if p := o.Parent; p != nil {
			pn := b.nodes[p]
			pw := matrix(p.ObMat)
			if pn != nil && pw.Det() != 0 {
				n.Transform = pw.Inv().Mul4(matrix(o.ObMat))
				pn.Children = append(pn.Children, n)
				continue
			}
			Logger().Warn("parent transform is singular, keeping world matrix",
				zap.String("object", o.ID.Name),
				zap.String("parent", p.ID.Name))
		}
		b.out.Root.Children = append(b.out.Root.Children, n)
	}
}

func (b *builder) mesh(m *scene.Mesh) (int, error) {
	if i, ok := b.meshIndex[m]; ok {
		return i, nil
	}
	out := &Mesh{Name: trimIDName(m.ID.Name), MaterialIndex: -1}

	out.Positions = make([]mgl32.Vec3, len(m.Vert))
	out.Normals = make([]mgl32.Vec3, len(m.Vert))
	for i, v := range m.Vert {
		out.Positions[i] = mgl32.Vec3{v.Co[0], v.Co[1], v.Co[2]}
		out.Normals[i] = mgl32.Vec3{
			float32(v.No[0]) / 32767,
			float32(v.No[1]) / 32767,
			float32(v.No[2]) / 32767,
		}
	}

	nvert := int32(len(m.Vert))
	var err error
	if len(m.Poly) > 0 {
		err = polyFaces(m, out, nvert)
	} else {
		err = legacyFaces(m, out, nvert)
	}
	if err != nil {
		return 0, err
	}

	if len(m.Mat) > 0 && m.Mat[0] != nil {
		out.MaterialIndex = b.material(m.Mat[0])
	}

	idx := len(b.out.Meshes)
	b.meshIndex[m] = idx
	b.out.Meshes = append(b.out.Meshes, out)
	return idx, nil
}

// legacyFaces decodes the pre-2.63 face array. A zero fourth index marks
// a triangle; the writer rotates quads so a real vertex 0 never lands in
// the last slot.
func legacyFaces(m *scene.Mesh, out *Mesh, nvert int32) error {
	for fi, f := range m.Face {
		corners := [4]int32{f.V1, f.V2, f.V3, f.V4}
		n := 4
		if f.V4 == 0 {
			n = 3
		}
		face := make([]int, n)
		for c := 0; c < n; c++ {
			v := corners[c]
			if v < 0 || v >= nvert {
				return errors.New(errors.PhaseGraph, errors.KindOutOfBounds).
					Structure("MFace").
					Detail("face %d corner %d references vertex %d of %d", fi, c, v, nvert).
					Build()
			}
			face[c] = int(v)
		}
		out.Faces = append(out.Faces, face)

		if fi < len(m.TFace) {
			t := m.TFace[fi]
			for c := 0; c < n; c++ {
				out.UVs = append(out.UVs, mgl32.Vec2{t.UV[c][0], t.UV[c][1]})
			}
		}
		if base := fi * 4; base+n <= len(m.Col) {
			for c := 0; c < n; c++ {
				col := m.Col[base+c]
				out.Colors = append(out.Colors, [4]uint8{col.R, col.G, col.B, col.A})
			}
		}
	}
	return nil
}

// polyFaces decodes the 2.63+ loop representation: each poly is a run of
// loops, each loop one corner with optional UV and color layers.
func polyFaces(m *scene.Mesh, out *Mesh, nvert int32) error {
	nloop := int32(len(m.Loop))
	for pi, p := range m.Poly {
		if p.LoopStart < 0 || p.TotLoop < 3 || p.LoopStart+p.TotLoop > nloop {
			return errors.New(errors.PhaseGraph, errors.KindOutOfBounds).
				Structure("MPoly").
				Detail("poly %d spans loops [%d,%d) of %d", pi, p.LoopStart, p.LoopStart+p.TotLoop, nloop).
				Build()
		}
		face := make([]int, p.TotLoop)
		for c := int32(0); c < p.TotLoop; c++ {
			li := p.LoopStart + c
			v := m.Loop[li].V
			if v < 0 || v >= nvert {
				return errors.New(errors.PhaseGraph, errors.KindOutOfBounds).
					Structure("MLoop").
					Detail("loop %d references vertex %d of %d", li, v, nvert).
					Build()
			}
			face[c] = int(v)
			if int(li) < len(m.LoopUV) {
				uv := m.LoopUV[li].UV
				out.UVs = append(out.UVs, mgl32.Vec2{uv[0], uv[1]})
			}
			if int(li) < len(m.LoopCol) {
				col := m.LoopCol[li]
				out.Colors = append(out.Colors, [4]uint8{col.R, col.G, col.B, col.A})
			}
		}
		out.Faces = append(out.Faces, face)
	}
	return nil
}

func (b *builder) material(m *scene.Material) int {
	if i, ok := b.matIndex[m]; ok {
		return i
	}
	out := &Material{
		Name:      trimIDName(m.ID.Name),
		Diffuse:   mgl32.Vec3{m.R, m.G, m.B},
		Specular:  mgl32.Vec3{m.SpecR, m.SpecG, m.SpecB}.Mul(m.Spec),
		Shininess: float32(m.Har),
		Alpha:     m.Alpha,
		Emit:      m.Emit,
		Ambient:   m.Amb,
	}
	if mt := m.MTex; mt != nil && mt.Tex != nil && mt.Tex.Ima != nil {
		out.Texture = mt.Tex.Ima.Name
	}
	idx := len(b.out.Materials)
	b.matIndex[m] = idx
	b.out.Materials = append(b.out.Materials, out)
	return idx
}

func camera(name string, c *scene.Camera) *Camera {
	return &Camera{
		Name:       name,
		Ortho:      c.Type == scene.CamOrtho,
		Lens:       c.Lens,
		OrthoScale: c.OrthoScale,
		ClipStart:  c.ClipSta,
		ClipEnd:    c.ClipEnd,
		ShiftX:     c.ShiftX,
		ShiftY:     c.ShiftY,
	}
}

func light(name string, la *scene.Lamp) *Light {
	l := &Light{
		Name:      name,
		Color:     mgl32.Vec3{la.R, la.G, la.B},
		Energy:    la.Energy,
		Distance:  la.Dist,
		SpotSize:  la.SpotSize,
		SpotBlend: la.SpotBlend,
		Att1:      la.Att1,
		Att2:      la.Att2,
	}
	switch la.Type {
	case scene.LampLocal:
		l.Kind = LightPoint
	case scene.LampSun:
		l.Kind = LightSun
	case scene.LampSpot:
		l.Kind = LightSpot
	case scene.LampHemi:
		l.Kind = LightHemi
	case scene.LampArea:
		l.Kind = LightArea
	default:
		Logger().Warn("unknown lamp type, treating as point",
			zap.String("lamp", name),
			zap.Int16("type", la.Type))
	}
	return l
}

// matrix converts a stored 4x4 block to a column-major mgl32.Mat4. Row i
// of the stored matrix is basis vector i with the translation in row 3,
// so stored rows become mathgl columns element for element.
func matrix(m [4][4]float32) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i*4+j] = m[i][j]
		}
	}
	return out
}

// trimIDName drops the two-character type code every datablock name
// carries ("OBCube" reads back as "Cube").
func trimIDName(name string) string {
	if len(name) >= 2 {
		return name[2:]
	}
	return name
}
