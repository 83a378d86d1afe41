package export

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/retromoe/stortrooper-editor/internal/compose"
	"github.com/retromoe/stortrooper-editor/internal/model"
	"github.com/retromoe/stortrooper-editor/internal/testfixture"
)

func decode(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

func TestPNG(t *testing.T) {
	_, c := testfixture.Load(t, testfixture.BodyHair("hero"))
	r := compose.NewRenderer()
	path := filepath.Join(t.TempDir(), "out", "hero"+Extension)

	if err := PNG(r, c, model.Selection{"body": "B1", "hair": "H1"}, path); err != nil {
		t.Fatalf("PNG failed: %v", err)
	}

	img := decode(t, path)
	if img.Bounds() != image.Rect(0, 0, 8, 8) {
		t.Errorf("Expected canvas-sized image, got %v", img.Bounds())
	}
	expected, err := r.Render(c, model.Selection{"body": "B1", "hair": "H1"})
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			er, eg, eb, ea := expected.At(x, y).RGBA()
			gr, gg, gb, ga := img.At(x, y).RGBA()
			if er != gr || eg != gg || eb != gb || ea != ga {
				t.Fatalf("pixel %d,%d differs from render", x, y)
			}
		}
	}
}

func TestPNGWithoutSelectionIsTransparent(t *testing.T) {
	ch := testfixture.BodyHair("hero")
	ch.Categories[1].Policy = "optional"
	_, c := testfixture.Load(t, ch)
	path := filepath.Join(t.TempDir(), "empty"+Extension)

	if err := PNG(compose.NewRenderer(), c, model.Selection{}, path); err != nil {
		t.Fatalf("PNG failed: %v", err)
	}
	img := decode(t, path)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0 {
				t.Fatalf("pixel %d,%d should be transparent", x, y)
			}
		}
	}
}

func TestPNGErrors(t *testing.T) {
	_, c := testfixture.Load(t, testfixture.BodyHair("hero"))
	r := compose.NewRenderer()

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	err := PNG(r, c, model.Selection{"body": "B1"}, filepath.Join(blocker, "x.png"))
	if !errors.Is(err, ErrWrite) {
		t.Errorf("Expected ErrWrite, got %v", err)
	}

	body, _ := c.Asset("body", "B1")
	if err := os.Remove(body.Image); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(t.TempDir(), "missing.png")
	err = PNG(r, c, model.Selection{"body": "B1"}, target)
	if !errors.Is(err, compose.ErrMissingAssetImage) {
		t.Errorf("Expected ErrMissingAssetImage, got %v", err)
	}
	if _, statErr := os.Stat(target); !os.IsNotExist(statErr) {
		t.Error("Failed export must not leave a file behind")
	}
}

func TestEncodeKeepsAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, testfixture.Half)

	var buf bytes.Buffer
	if err := Encode(&buf, src); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a>>8 != 128 {
		t.Errorf("Expected alpha 128, got %d", a>>8)
	}
	if _, _, _, a := img.At(1, 0).RGBA(); a != 0 {
		t.Errorf("Expected transparent pixel, got alpha %d", a)
	}
}
