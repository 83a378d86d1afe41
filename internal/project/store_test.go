package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/retromoe/stortrooper-editor/internal/catalog"
	"github.com/retromoe/stortrooper-editor/internal/character"
	"github.com/retromoe/stortrooper-editor/internal/history"
	"github.com/retromoe/stortrooper-editor/internal/model"
	"github.com/retromoe/stortrooper-editor/internal/testfixture"
)

func newTestStore(t *testing.T) (*Store, *catalog.Catalog) {
	t.Helper()
	lib, c := testfixture.Load(t, testfixture.BodyHair("hero"))
	app := test.NewApp()
	t.Cleanup(app.Quit)
	return NewStore(lib, history.NewPreferences(app.Preferences(), nil)), c
}

func writeRaw(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "raw"+Extension)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, c := newTestStore(t)

	state := character.New(c)
	_ = state.Select("body", "B1")
	_ = state.Select("hair", "H1")
	_ = state.Select("hair", "H2")

	p := &model.Project{Type: c.Type(), Selection: state.CurrentSelection()}
	path := filepath.Join(t.TempDir(), "hero"+Extension)
	if err := store.Save(p, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if p.ID == "" {
		t.Error("Save should assign an id")
	}
	if p.GetDisplayTitle() != "hero"+Extension {
		t.Errorf("Expected title from file name, got %s", p.GetDisplayTitle())
	}

	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.ID != p.ID || loaded.Type != p.Type {
		t.Errorf("Loaded %+v, expected id %s type %s", loaded, p.ID, p.Type)
	}
	if !loaded.Selection.Equal(p.Selection) {
		t.Errorf("Loaded selection %v, expected %v", loaded.Selection, p.Selection)
	}

	// Clearing hair is saved as null and restored as none
	_ = state.Clear("hair")
	p.Selection = state.CurrentSelection()
	if err := store.Save(p, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	raw, _ := os.ReadFile(path)
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Saved file is not JSON: %v", err)
	}
	if sel := doc["selection"].(map[string]any); sel["hair"] != nil {
		t.Errorf("Expected hair saved as null, got %v", sel["hair"])
	}
	loaded, err = store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if hair, ok := loaded.Selection.Get("hair"); ok {
		t.Errorf("Expected no hair, got %s", hair)
	}
}

func TestSaveLoadKeepsEmptyMandatoryCategory(t *testing.T) {
	store, c := newTestStore(t)

	state := character.New(c)
	if err := state.Select("hair", "H1"); err != nil {
		t.Fatal(err)
	}
	saved := state.CurrentSelection()

	p := &model.Project{Type: c.Type(), Selection: saved}
	path := filepath.Join(t.TempDir(), "bald"+Extension)
	if err := store.Save(p, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.Selection.Equal(saved) {
		t.Errorf("Loaded selection %v, expected %v", loaded.Selection, saved)
	}
}

func TestLoadLegacyProjectLeavesUnlistedEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	path := writeRaw(t, `{"character_name": "hero", "articles_file": "articles.yaml", "active_articles": ["H1"]}`)

	p, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !p.Selection.Equal(model.Selection{"body": "", "hair": "H1"}) {
		t.Errorf("Expected no body in legacy selection, got %v", p.Selection)
	}
}

func TestLoadLegacyProject(t *testing.T) {
	store, _ := newTestStore(t)
	path := writeRaw(t, `{"character_name": "hero", "articles_file": "articles.yaml", "active_articles": ["H1", "B1"]}`)

	p, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !p.Selection.Equal(model.Selection{"body": "B1", "hair": "H1"}) {
		t.Errorf("Unexpected legacy selection %v", p.Selection)
	}
}

func TestLoadDanglingReferences(t *testing.T) {
	store, _ := newTestStore(t)
	path := writeRaw(t, `{
		"version": 2,
		"character_name": "hero",
		"articles_file": "articles.yaml",
		"selection": {"hair": "H9", "wings": "W1", "body": "B1"}
	}`)

	p, err := store.Load(path)
	if p == nil {
		t.Fatal("Expected a best-effort project")
	}
	if !errors.Is(err, catalog.ErrUnknownAsset) || !errors.Is(err, catalog.ErrUnknownCategory) {
		t.Errorf("Expected error matching unknown asset and category, got %v", err)
	}
	var derr *DanglingError
	if !errors.As(err, &derr) || len(derr.Refs) != 2 {
		t.Fatalf("Expected DanglingError with 2 refs, got %v", err)
	}
	if derr.Refs[0].Category != "hair" || derr.Refs[0].Asset != "H9" {
		t.Errorf("Unexpected first ref %+v", derr.Refs[0])
	}
	if !derr.Refs[1].UnknownCategory || derr.Refs[1].Category != "wings" {
		t.Errorf("Unexpected second ref %+v", derr.Refs[1])
	}
	if !IsDangling(err) {
		t.Error("IsDangling should report true")
	}
	if !p.Selection.Equal(model.Selection{"body": "B1", "hair": ""}) {
		t.Errorf("Expected valid entries kept, got %v", p.Selection)
	}
}

func TestLoadOnlyAssetDangling(t *testing.T) {
	store, _ := newTestStore(t)
	path := writeRaw(t, `{"character_name": "hero", "articles_file": "articles.yaml", "active_articles": ["B1", "gone"]}`)

	p, err := store.Load(path)
	if p == nil || !errors.Is(err, catalog.ErrUnknownAsset) {
		t.Fatalf("Expected project and ErrUnknownAsset, got %v, %v", p, err)
	}
	if errors.Is(err, catalog.ErrUnknownCategory) {
		t.Error("No category is unknown, error should not match ErrUnknownCategory")
	}
}

func TestLoadErrors(t *testing.T) {
	store, _ := newTestStore(t)

	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"garbage", `{not json`, ErrParse},
		{"trailing data", `{"version": 2, "character_name": "hero", "articles_file": "articles.yaml", "selection": {}} {"x"`, ErrParse},
		{"missing name", `{"version": 2, "articles_file": "articles.yaml", "selection": {}}`, ErrParse},
		{"missing articles file", `{"version": 2, "character_name": "hero", "selection": {}}`, ErrParse},
		{"future version", `{"version": 9, "character_name": "hero", "articles_file": "articles.yaml"}`, ErrParse},
		{"escaping name", `{"version": 2, "character_name": "../hero", "articles_file": "articles.yaml"}`, ErrParse},
		{"unknown type", `{"version": 2, "character_name": "villain", "articles_file": "articles.yaml", "selection": {}}`, catalog.ErrUnknownCharacterType},
		{"unknown articles file", `{"version": 2, "character_name": "hero", "articles_file": "articles_x.yaml", "selection": {}}`, catalog.ErrUnknownCharacterType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := store.Load(writeRaw(t, tt.content))
			if !errors.Is(err, tt.target) {
				t.Errorf("Load() error = %v, expected %v", err, tt.target)
			}
			if p != nil {
				t.Errorf("Expected nil project, got %+v", p)
			}
		})
	}

	if _, err := store.Load(filepath.Join(t.TempDir(), "missing.stp")); !errors.Is(err, ErrParse) {
		t.Errorf("Missing file error = %v, expected ErrParse", err)
	}
}

func TestSaveWriteError(t *testing.T) {
	store, c := newTestStore(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	p := &model.Project{Type: c.Type(), Selection: character.New(c).CurrentSelection()}
	err := store.Save(p, filepath.Join(blocker, "out.stp"))
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("Save error = %v, expected ErrWrite", err)
	}
	var werr *WriteError
	if !errors.As(err, &werr) {
		t.Error("Expected *WriteError")
	}
	if len(store.RecentFiles()) != 0 {
		t.Error("Failed saves must not be recorded as recent")
	}
}

func TestRecentsAndSession(t *testing.T) {
	store, c := newTestStore(t)
	dir := t.TempDir()
	p := &model.Project{Type: c.Type(), Selection: character.NewWithDefaults(c).CurrentSelection()}

	a := filepath.Join(dir, "a"+Extension)
	b := filepath.Join(dir, "b"+Extension)
	for _, path := range []string{a, b, a} {
		if err := store.Save(p, path); err != nil {
			t.Fatalf("Save %s: %v", path, err)
		}
	}

	recent := store.RecentFiles()
	if len(recent) != 2 || recent[0] != a || recent[1] != b {
		t.Errorf("RecentFiles() = %v, expected [a b]", recent)
	}

	gone := filepath.Join(dir, "gone"+Extension)
	if err := store.RecordSession([]string{b, gone}); err != nil {
		t.Fatalf("RecordSession: %v", err)
	}
	session := store.LastSession()
	if len(session) != 1 || session[0] != b {
		t.Errorf("LastSession() = %v, expected only existing file", session)
	}
}

func TestStoreWithoutRecents(t *testing.T) {
	lib, c := testfixture.Load(t, testfixture.BodyHair("hero"))
	store := NewStore(lib, nil)

	p := &model.Project{Type: c.Type(), Selection: model.Selection{}}
	if err := store.Save(p, filepath.Join(t.TempDir(), "x"+Extension)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if store.RecentFiles() != nil || store.LastSession() != nil || store.RecordSession([]string{"x"}) != nil {
		t.Error("Store without recents should be a no-op for history")
	}
}
