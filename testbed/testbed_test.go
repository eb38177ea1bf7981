// Package testbed holds end-to-end tests that run whole file images
// through the public facade: container scan, DNA catalog, conversion,
// and scene-graph flattening in one pass.
package testbed

import (
	"encoding/binary"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/kismeter/blendfile"
	"github.com/kismeter/blendfile/errors"
	"github.com/kismeter/blendfile/internal/blendtest"
	"github.com/kismeter/blendfile/scene"
	"github.com/kismeter/blendfile/scenegraph"
)

func payload(t *testing.T, d *blendtest.DNABuilder, name string, count int, w *blendtest.Writer) []byte {
	t.Helper()
	if want := count * d.Size(name); w.Len() != want {
		t.Fatalf("%s payload is %d bytes, want %d", name, w.Len(), want)
	}
	return w.Bytes()
}

// tinyScene renders a one-object scene at the given pointer width and
// byte order.
func tinyScene(t *testing.T, ptrSize int, order binary.ByteOrder) []byte {
	t.Helper()
	d := blendtest.SceneDNA(ptrSize)
	img := blendtest.New()
	img.PointerSize = ptrSize
	img.Order = order

	const (
		scAddr = 0x1000
		bsAddr = 0x2000
		obAddr = 0x3000
	)

	w := blendtest.NewWriter(order, ptrSize)
	blendtest.WriteID(w, "SCTiny")
	w.Ptr(0).Ptr(0)
	w.Ptr(bsAddr).Ptr(bsAddr)
	w.Ptr(0).Ptr(0)
	img.Block("SC", scAddr, d.Index("Scene"), 1, payload(t, d, "Scene", 1, w))

	w = blendtest.NewWriter(order, ptrSize)
	w.Ptr(0).Ptr(0).Ptr(obAddr)
	img.Block("DATA", bsAddr, d.Index("Base"), 1, payload(t, d, "Base", 1, w))

	w = blendtest.NewWriter(order, ptrSize)
	blendtest.WriteID(w, "OBAnchor")
	w.I16(0).Pad(6)
	w.Ptr(0).Ptr(0).Ptr(0).Ptr(0)
	w.I32(1).Pad(4)
	blendtest.WriteIdentity(w, 4, 5, 6)
	blendtest.WriteIdentity(w, 0, 0, 0)
	w.Ptr(0).Ptr(0)
	img.Block("OB", obAddr, d.Index("Object"), 1, payload(t, d, "Object", 1, w))

	img.DNA(d.Tables())
	return img.Bytes()
}

func TestImportAcrossLayouts(t *testing.T) {
	cases := []struct {
		name    string
		ptrSize int
		order   binary.ByteOrder
	}{
		{"64-bit little-endian", 8, binary.LittleEndian},
		{"32-bit little-endian", 4, binary.LittleEndian},
		{"64-bit big-endian", 8, binary.BigEndian},
		{"32-bit big-endian", 4, binary.BigEndian},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := blendfile.ImportBytes(tinyScene(t, tc.ptrSize, tc.order))
			if err != nil {
				t.Fatalf("ImportBytes: %v", err)
			}
			if doc.File.Header.PointerSize != tc.ptrSize {
				t.Errorf("pointer size = %d, want %d", doc.File.Header.PointerSize, tc.ptrSize)
			}

			b, ok := doc.Scene.Base.First.(*scene.Base)
			if !ok || b.Object == nil {
				t.Fatalf("base list did not materialize: %+v", doc.Scene.Base.First)
			}
			if b.Object.ID.Name != "OBAnchor" {
				t.Errorf("object = %q, want OBAnchor", b.Object.ID.Name)
			}
			if b.Object.ObMat[3] != [4]float32{4, 5, 6, 1} {
				t.Errorf("translation row = %v", b.Object.ObMat[3])
			}

			g, err := doc.Graph()
			if err != nil {
				t.Fatalf("Graph: %v", err)
			}
			if len(g.Root.Children) != 1 || g.Root.Children[0].Name != "Anchor" {
				t.Fatalf("graph root children = %+v", g.Root.Children)
			}
			if !g.Root.Children[0].Transform.ApproxEqual(mgl32.Translate3D(4, 5, 6)) {
				t.Errorf("node transform = %v", g.Root.Children[0].Transform)
			}
		})
	}
}

func TestCubeGeometry(t *testing.T) {
	doc, err := blendfile.ImportBytes(blendtest.CubeImage())
	if err != nil {
		t.Fatalf("ImportBytes: %v", err)
	}
	g, err := doc.Graph()
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}

	if len(g.Meshes) != 1 {
		t.Fatalf("meshes = %d, want 1", len(g.Meshes))
	}
	m := g.Meshes[0]
	if m.Name != "Cube" || len(m.Positions) != 8 {
		t.Fatalf("mesh = %q with %d vertices", m.Name, len(m.Positions))
	}
	if m.Positions[0] != (mgl32.Vec3{-1, -1, -1}) || m.Positions[6] != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("corner positions = %v, %v", m.Positions[0], m.Positions[6])
	}
	unit := mgl32.Vec3{1, 1, 1}.Normalize()
	if !m.Normals[6].ApproxEqualThreshold(unit, 1e-3) {
		t.Errorf("corner normal = %v, want about %v", m.Normals[6], unit)
	}
	if len(m.Faces) != 6 {
		t.Fatalf("faces = %d, want 6", len(m.Faces))
	}
	for i, f := range m.Faces {
		if len(f) != 4 {
			t.Errorf("face %d has %d corners, want 4", i, len(f))
		}
	}
	if m.MaterialIndex != 0 {
		t.Errorf("material index = %d", m.MaterialIndex)
	}

	mat := g.Materials[0]
	if mat.Diffuse != (mgl32.Vec3{0.8, 0.1, 0.1}) || mat.Shininess != 50 {
		t.Errorf("material = %+v", mat)
	}
	if mat.Texture != "//textures/checker.png" {
		t.Errorf("texture path = %q", mat.Texture)
	}

	if len(g.Lights) != 1 || g.Lights[0].Kind != scenegraph.LightPoint || g.Lights[0].Energy != 2 {
		t.Errorf("lights = %+v", g.Lights)
	}
	if len(g.Cameras) != 1 || g.Cameras[0].Ortho || g.Cameras[0].Lens != 35 {
		t.Errorf("cameras = %+v", g.Cameras)
	}
	if g.World == nil || g.World.Horizon != (mgl32.Vec3{0.05, 0.05, 0.1}) {
		t.Errorf("world = %+v", g.World)
	}
}

func TestRejectsCompressed(t *testing.T) {
	gz := []byte{0x1f, 0x8b, 0x08, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := blendfile.ImportBytes(gz); errors.KindOf(err) != errors.KindUnsupported {
		t.Errorf("gzip image = %v, want unsupported", err)
	}
	zst := []byte{0x28, 0xb5, 0x2f, 0xfd, 0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := blendfile.ImportBytes(zst); errors.KindOf(err) != errors.KindUnsupported {
		t.Errorf("zstd image = %v, want unsupported", err)
	}
}

func TestTruncatedImage(t *testing.T) {
	img := blendtest.CubeImage()
	for _, cut := range []int{5, 13, 40, len(img) / 2} {
		if _, err := blendfile.ImportBytes(img[:cut]); err == nil {
			t.Errorf("import of a %d-byte prefix succeeded", cut)
		}
	}
}
