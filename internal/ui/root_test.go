package ui

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/retromoe/stortrooper-editor/internal/catalog"
	"github.com/retromoe/stortrooper-editor/internal/compose"
	"github.com/retromoe/stortrooper-editor/internal/config"
	"github.com/retromoe/stortrooper-editor/internal/editor"
	"github.com/retromoe/stortrooper-editor/internal/export"
	"github.com/retromoe/stortrooper-editor/internal/history"
	"github.com/retromoe/stortrooper-editor/internal/model"
	"github.com/retromoe/stortrooper-editor/internal/project"
	"github.com/retromoe/stortrooper-editor/internal/testfixture"
)

func newTestUI(t *testing.T) (*RootUI, *project.Store) {
	t.Helper()
	root := t.TempDir()
	testfixture.Write(t, root, testfixture.BodyHair("hero"))
	testfixture.Write(t, root, testfixture.BodyHair("robot"))

	app := test.NewApp()
	t.Cleanup(app.Quit)
	settings := config.NewSettings(app)
	store := project.NewStore(catalog.NewLibrary(root), history.NewPreferences(app.Preferences(), settings.GetMaxRecentFiles))
	ws := editor.NewWorkspace(store, compose.NewRenderer())

	return NewRootUI(app.NewWindow("test"), app, ws, settings), store
}

func TestRootUIStartsWithRestoredDocument(t *testing.T) {
	ui, _ := newTestUI(t)

	if !reflect.DeepEqual(ui.characterSelect.Options, []string{"hero", "robot"}) {
		t.Errorf("Unexpected character options %v", ui.characterSelect.Options)
	}

	docs, err := ui.workspace.RestoreSession(model.CharacterType{})
	if err != nil {
		t.Fatalf("RestoreSession failed: %v", err)
	}
	ui.ShowDocuments(docs)

	doc, ok := ui.ActiveDocument()
	if !ok || doc.ID() != docs[0].ID() {
		t.Fatalf("Expected restored document to be active")
	}
	if len(ui.docTabs.Items) != 1 {
		t.Errorf("Expected one document tab, got %d", len(ui.docTabs.Items))
	}
	if ui.characterSelect.Selected != "hero" || ui.articlesSelect.Selected != testfixture.DefaultFile {
		t.Errorf("Pickers show %s/%s", ui.characterSelect.Selected, ui.articlesSelect.Selected)
	}
	if ui.preview.Image == nil {
		t.Error("Expected a rendered preview")
	}
	if len(ui.categoryPanel.tabs.Items) != 2 {
		t.Errorf("Expected two category tabs, got %d", len(ui.categoryPanel.tabs.Items))
	}
}

func TestRootUIEditing(t *testing.T) {
	ui, _ := newTestUI(t)
	ui.onNew()

	doc, ok := ui.ActiveDocument()
	if !ok {
		t.Fatal("Expected a new active document")
	}

	ui.onToggleAsset("hair", "H1")
	if doc.Project.Selection["hair"] != "H1" {
		t.Errorf("Expected H1 selected, got %v", doc.Project.Selection)
	}
	if !ui.isActive("hair", "H1") {
		t.Error("isActive should reflect the selection")
	}

	ui.onClearCategoryID("hair")
	if doc.Project.Selection["hair"] != "" {
		t.Errorf("Expected hair cleared, got %v", doc.Project.Selection)
	}

	// Clearing a default category restores its default
	ui.onClearCategoryID("body")
	if doc.Project.Selection["body"] != "B1" {
		t.Errorf("Expected body default restored, got %v", doc.Project.Selection)
	}

	ui.onRandomize()
	if ui.seedLabel.Text == "" {
		t.Error("Expected the seed to be shown after randomizing")
	}

	ui.onCharacterChanged("robot")
	if doc.Project.Type.Name != "robot" {
		t.Errorf("Expected robot character, got %s", doc.Project.Type)
	}
	name, _ := ui.settings.GetLastCharacter()
	if name != "robot" {
		t.Errorf("Expected last character robot, got %s", name)
	}
}

func TestRootUISaveExportAndQuit(t *testing.T) {
	ui, store := newTestUI(t)
	ui.onNew()
	first, _ := ui.ActiveDocument()
	ui.onNew()
	second, _ := ui.ActiveDocument()

	if len(ui.docTabs.Items) != 2 || first.ID() == second.ID() {
		t.Fatalf("Expected two documents, got %d tabs", len(ui.docTabs.Items))
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "hero"+project.Extension)
	ui.saveAs(first, path)
	if first.Dirty || first.Project.Path != path {
		t.Errorf("Expected saved document, dirty=%v path=%s", first.Dirty, first.Project.Path)
	}

	pngPath := filepath.Join(dir, "hero"+export.Extension)
	ui.exportTo(first, pngPath)
	if _, err := os.Stat(pngPath); err != nil {
		t.Errorf("Expected exported PNG: %v", err)
	}
	if ui.settings.GetExportDirectory() != dir {
		t.Errorf("Expected export directory %s, got %s", dir, ui.settings.GetExportDirectory())
	}

	// Second document is unsaved; closing it directly skips the prompt
	ui.closeDocument(second.ID())
	if len(ui.docTabs.Items) != 1 {
		t.Errorf("Expected one tab after closing, got %d", len(ui.docTabs.Items))
	}
	if active, ok := ui.ActiveDocument(); !ok || active.ID() != first.ID() {
		t.Error("Expected remaining document to become active")
	}

	ui.quit()
	if session := store.LastSession(); !reflect.DeepEqual(session, []string{path}) {
		t.Errorf("Expected session %v, got %v", []string{path}, session)
	}
}

func TestRootUIOpenPath(t *testing.T) {
	ui, _ := newTestUI(t)
	ui.onNew()
	doc, _ := ui.ActiveDocument()

	path := filepath.Join(t.TempDir(), "saved"+project.Extension)
	ui.saveAs(doc, path)
	ui.closeDocument(doc.ID())
	if _, ok := ui.ActiveDocument(); ok {
		t.Fatal("Expected no active document after closing the last one")
	}

	ui.openPath(path)
	reopened, ok := ui.ActiveDocument()
	if !ok || reopened.Project.Path != path {
		t.Fatalf("Expected %s to be open and active", path)
	}

	// Opening the same file again reuses its tab
	ui.openPath(path)
	if len(ui.docTabs.Items) != 1 {
		t.Errorf("Expected one tab, got %d", len(ui.docTabs.Items))
	}
}
