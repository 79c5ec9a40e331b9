package formats

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const tramMTL = `# tram materials
newmtl Body
Ka 0.1 0.1 0.1
Kd 0.5 0.6 0.7
Ks 1.0 1.0 1.0
Ns 250
d 0.5
map_Kd -bm 1.0 textures/tram.png
map_bump tram_n.png

newmtl Glass
illum 1
`

func TestParseMTL(t *testing.T) {
	mtl, err := ParseMTL(strings.NewReader(tramMTL))
	if err != nil {
		t.Fatalf("ParseMTL failed: %v", err)
	}
	if len(mtl.Materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(mtl.Materials))
	}

	body, ok := mtl.Lookup("Body")
	if !ok {
		t.Fatal("Body material not found")
	}
	if body.Ambient != [4]float32{0.1, 0.1, 0.1, 1} {
		t.Errorf("ambient = %v", body.Ambient)
	}
	if body.Diffuse != [4]float32{0.5, 0.6, 0.7, 1} {
		t.Errorf("diffuse = %v", body.Diffuse)
	}
	if body.Shininess != 0.25 {
		t.Errorf("shininess = %f, want 0.25", body.Shininess)
	}
	if body.Alpha != 0.5 {
		t.Errorf("alpha = %f, want 0.5", body.Alpha)
	}
	if body.ColorMap != "textures/tram.png" {
		t.Errorf("color map = %q", body.ColorMap)
	}
	if body.BumpMap != "tram_n.png" {
		t.Errorf("bump map = %q", body.BumpMap)
	}
}

func TestParseMTL_Defaults(t *testing.T) {
	mtl, err := ParseMTL(strings.NewReader(tramMTL))
	if err != nil {
		t.Fatalf("ParseMTL failed: %v", err)
	}

	glass, ok := mtl.Lookup("Glass")
	if !ok {
		t.Fatal("Glass material not found")
	}
	if glass.Ambient != [4]float32{0.2, 0.2, 0.2, 1} {
		t.Errorf("default ambient = %v", glass.Ambient)
	}
	if glass.Diffuse != [4]float32{0.8, 0.8, 0.8, 1} {
		t.Errorf("default diffuse = %v", glass.Diffuse)
	}
	if glass.Specular != [4]float32{0, 0, 0, 1} {
		t.Errorf("illum 1 specular = %v", glass.Specular)
	}
	if glass.Alpha != 1 {
		t.Errorf("default alpha = %f", glass.Alpha)
	}

	if _, ok := mtl.Lookup("Chrome"); ok {
		t.Error("unexpected Chrome material")
	}
}

func TestParseMTL_PropertyBeforeNewmtl(t *testing.T) {
	_, err := ParseMTL(strings.NewReader("Kd 1 0 0\nnewmtl Red\n"))
	if !errors.Is(err, ErrMTLNoMaterial) {
		t.Errorf("expected ErrMTLNoMaterial, got %v", err)
	}
}

func TestParseMTL_MalformedColor(t *testing.T) {
	_, err := ParseMTL(strings.NewReader("newmtl Red\nKd 1 x 0\n"))
	if !errors.Is(err, ErrMalformedMTLValue) {
		t.Errorf("expected ErrMalformedMTLValue, got %v", err)
	}
}

func TestParseMTL_Redefinition(t *testing.T) {
	src := "newmtl A\nKd 1 0 0\nnewmtl B\nnewmtl A\nKd 0 1 0\n"
	mtl, err := ParseMTL(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseMTL failed: %v", err)
	}
	if len(mtl.Materials) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(mtl.Materials))
	}
	a, _ := mtl.Lookup("A")
	if a.Diffuse != [4]float32{0, 1, 0, 1} {
		t.Errorf("redefined A diffuse = %v", a.Diffuse)
	}
}

func TestLoadMTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tram.mtl")
	if err := os.WriteFile(path, []byte(tramMTL), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	mtl, err := LoadMTL(path)
	if err != nil {
		t.Fatalf("LoadMTL failed: %v", err)
	}
	if _, ok := mtl.Lookup("Glass"); !ok {
		t.Error("Glass material not found")
	}
}

func TestLoadMTL_MissingFile(t *testing.T) {
	mtl, err := LoadMTL(filepath.Join(t.TempDir(), "missing.mtl"))
	if !errors.Is(err, ErrOpen) || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrOpen wrapping fs.ErrNotExist, got %v", err)
	}
	if mtl != nil {
		t.Error("expected nil MTL")
	}
}
