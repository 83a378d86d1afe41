package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/retromoe/stortrooper-editor/internal/model"
)

func TestLibraryDiscovery(t *testing.T) {
	root := t.TempDir()
	writeCharacter(t, root, "hero", "articles.txt", heroArticles, "body.png", "shirt.png")
	writeCharacter(t, root, "hero", "articles_winter.txt", heroArticles, "body.png", "shirt.png")
	writeCharacter(t, root, "alien", "articles_b.yaml", "categories: []", "x.png")
	for _, dir := range []string{ImageDirName, ".git"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "hero", "notes.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	lib := NewLibrary(root)

	types, err := lib.CharacterTypes()
	if err != nil {
		t.Fatalf("CharacterTypes: %v", err)
	}
	if !reflect.DeepEqual(types, []string{"alien", "hero"}) {
		t.Errorf("CharacterTypes() = %v, expected [alien hero]", types)
	}

	files, err := lib.ArticleFiles("hero")
	if err != nil {
		t.Fatalf("ArticleFiles: %v", err)
	}
	if !reflect.DeepEqual(files, []string{"articles.txt", "articles_winter.txt"}) {
		t.Errorf("ArticleFiles(hero) = %v", files)
	}

	ct, err := lib.DefaultType("hero")
	if err != nil || ct.ArticlesFile != model.DefaultArticlesFile {
		t.Errorf("DefaultType(hero) = (%v, %v), expected articles.txt", ct, err)
	}
	ct, err = lib.DefaultType("alien")
	if err != nil || ct.ArticlesFile != "articles_b.yaml" {
		t.Errorf("DefaultType(alien) = (%v, %v), expected first file", ct, err)
	}

	if _, err := lib.ArticleFiles("nobody"); !errors.Is(err, ErrUnknownCharacterType) {
		t.Errorf("ArticleFiles(nobody) error = %v, expected ErrUnknownCharacterType", err)
	}
}

func TestLibraryLoadSharesCatalog(t *testing.T) {
	root := t.TempDir()
	ct := writeCharacter(t, root, "hero", "articles.txt", heroArticles, "body.png", "shirt.png")
	lib := NewLibrary(root)

	first, err := lib.Load(ct)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := lib.Load(ct)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if first != second {
		t.Error("Expected the same shared catalog instance")
	}

	lib.Forget(ct)
	third, err := lib.Load(ct)
	if err != nil {
		t.Fatalf("Load after Forget: %v", err)
	}
	if third == first {
		t.Error("Expected a fresh catalog after Forget")
	}
}

func TestLibraryLoadUnknownType(t *testing.T) {
	root := t.TempDir()
	writeCharacter(t, root, "hero", "articles.txt", heroArticles, "body.png", "shirt.png")
	lib := NewLibrary(root)

	tests := []model.CharacterType{
		{Name: "villain", ArticlesFile: "articles.txt"},
		{Name: "hero", ArticlesFile: "articles_gone.txt"},
		{Name: "../hero", ArticlesFile: "articles.txt"},
	}
	for _, ct := range tests {
		if _, err := lib.Load(ct); !errors.Is(err, ErrUnknownCharacterType) {
			t.Errorf("Load(%v) error = %v, expected ErrUnknownCharacterType", ct, err)
		}
	}
}

func TestIsArticlesFile(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"articles.txt", true},
		{"articles_alt.TXT", true},
		{"articles.yaml", true},
		{"articles.yml", true},
		{"config.txt", false},
		{"articles.json", false},
	}
	for _, tt := range tests {
		if result := IsArticlesFile(tt.name); result != tt.expected {
			t.Errorf("IsArticlesFile(%q) = %v, expected %v", tt.name, result, tt.expected)
		}
	}
}
