package blendfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kismeter/blendfile/internal/blendtest"
)

func TestImportBytes(t *testing.T) {
	doc, err := ImportBytes(blendtest.CubeImage())
	if err != nil {
		t.Fatalf("ImportBytes: %v", err)
	}
	if doc.File.Header.VersionNum != 279 {
		t.Errorf("version = %d, want 279", doc.File.Header.VersionNum)
	}
	if doc.Scene.ID.Name != "SCScene" {
		t.Errorf("scene = %q", doc.Scene.ID.Name)
	}

	g, err := doc.Graph()
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if len(g.Root.Children) != 3 {
		t.Fatalf("graph root has %d children, want 3", len(g.Root.Children))
	}
	if len(g.Meshes) != 1 || len(g.Lights) != 1 || len(g.Cameras) != 1 {
		t.Fatalf("resources = %d meshes, %d lights, %d cameras",
			len(g.Meshes), len(g.Lights), len(g.Cameras))
	}
	if g.Meshes[0].Name != "Cube" || len(g.Meshes[0].Faces) != 6 {
		t.Errorf("mesh = %q with %d faces", g.Meshes[0].Name, len(g.Meshes[0].Faces))
	}
	if len(g.Materials) != 1 || g.Materials[0].Texture != "//textures/checker.png" {
		t.Errorf("materials = %+v", g.Materials)
	}
	if g.World == nil || g.World.Horizon[2] != 0.1 {
		t.Errorf("world = %+v", g.World)
	}
}

func TestImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.blend")
	if err := os.WriteFile(path, blendtest.CubeImage(), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := Import(path)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if doc.Scene == nil {
		t.Fatal("import produced no scene")
	}
}

func TestImportMissing(t *testing.T) {
	if _, err := Import(filepath.Join(t.TempDir(), "gone.blend")); err == nil {
		t.Fatal("import of a missing file succeeded")
	}
}
