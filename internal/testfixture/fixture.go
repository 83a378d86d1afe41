// Package testfixture writes small character resource trees for tests.
package testfixture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v2"

	"github.com/retromoe/stortrooper-editor/internal/catalog"
	"github.com/retromoe/stortrooper-editor/internal/model"
)

// DefaultFile is the articles file written when Character.File is empty
const DefaultFile = "articles.yaml"

// Character describes one character directory to generate
type Character struct {
	Name       string
	File       string // defaults to DefaultFile
	Width      int
	Height     int
	Categories []Category
}

// Category describes one layer and its assets
type Category struct {
	ID      string
	Depth   int
	Policy  string
	Default string
	Chance  *float64
	Assets  []Asset
}

// Asset is drawn as a solid W x H rectangle of Color at X,Y
type Asset struct {
	ID            string
	Color         color.NRGBA
	X, Y          int
	W, H          int
	ExcludeRandom bool
}

// Solid colours used by the stock fixtures
var (
	Red   = color.NRGBA{R: 255, A: 255}
	Green = color.NRGBA{G: 255, A: 255}
	Blue  = color.NRGBA{B: 255, A: 255}
	Half  = color.NRGBA{R: 255, G: 255, A: 128}
)

type yamlAsset struct {
	ID            string `yaml:"id"`
	Image         string `yaml:"image"`
	X             int    `yaml:"x"`
	Y             int    `yaml:"y"`
	ExcludeRandom bool   `yaml:"exclude_random,omitempty"`
}

type yamlCategory struct {
	ID      string      `yaml:"id"`
	Depth   int         `yaml:"depth"`
	Policy  string      `yaml:"policy,omitempty"`
	Default string      `yaml:"default,omitempty"`
	Chance  *float64    `yaml:"chance,omitempty"`
	Assets  []yamlAsset `yaml:"assets"`
}

type yamlDoc struct {
	Canvas struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"canvas"`
	Categories []yamlCategory `yaml:"categories"`
}

// Write creates <root>/<name>/<file> and one PNG per asset under data/
func Write(t *testing.T, root string, ch Character) model.CharacterType {
	t.Helper()
	if ch.File == "" {
		ch.File = DefaultFile
	}
	dataDir := filepath.Join(root, ch.Name, catalog.ImageDirName)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dataDir, err)
	}

	var doc yamlDoc
	doc.Canvas.Width, doc.Canvas.Height = ch.Width, ch.Height
	for _, cat := range ch.Categories {
		yc := yamlCategory{ID: cat.ID, Depth: cat.Depth, Policy: cat.Policy, Default: cat.Default, Chance: cat.Chance}
		for _, a := range cat.Assets {
			name := cat.ID + "_" + a.ID + ".png"
			WritePNG(t, filepath.Join(dataDir, name), a.W, a.H, a.Color)
			yc.Assets = append(yc.Assets, yamlAsset{ID: a.ID, Image: name, X: a.X, Y: a.Y, ExcludeRandom: a.ExcludeRandom})
		}
		doc.Categories = append(doc.Categories, yc)
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		t.Fatalf("marshal articles: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, ch.Name, ch.File), data, 0o644); err != nil {
		t.Fatalf("write articles: %v", err)
	}
	return model.CharacterType{Name: ch.Name, ArticlesFile: ch.File}
}

// WritePNG writes a solid w x h image
func WritePNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

// BodyHair is the two-layer character used across tests: a mandatory body
// at depth 0 with B1, and an optional hair layer at depth 1 with H1 and H2.
// The canvas is 8x8; B1 covers it, H1 and H2 are 4x4 squares at 2,2.
func BodyHair(name string) Character {
	return Character{
		Name:   name,
		Width:  8,
		Height: 8,
		Categories: []Category{
			{ID: "hair", Depth: 1, Policy: "optional", Assets: []Asset{
				{ID: "H1", Color: Green, X: 2, Y: 2, W: 4, H: 4},
				{ID: "H2", Color: Blue, X: 2, Y: 2, W: 4, H: 4},
			}},
			{ID: "body", Depth: 0, Policy: "default", Assets: []Asset{
				{ID: "B1", Color: Red, W: 8, H: 8},
			}},
		},
	}
}

// Load writes ch under a fresh temp root and loads its catalog through a Library
func Load(t *testing.T, ch Character) (*catalog.Library, *catalog.Catalog) {
	t.Helper()
	root := t.TempDir()
	ct := Write(t, root, ch)
	lib := catalog.NewLibrary(root)
	c, err := lib.Load(ct)
	if err != nil {
		t.Fatalf("load catalog %s: %v", ct, err)
	}
	return lib, c
}
