package editor

import (
	"errors"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/retromoe/stortrooper-editor/internal/catalog"
	"github.com/retromoe/stortrooper-editor/internal/character"
	"github.com/retromoe/stortrooper-editor/internal/compose"
	"github.com/retromoe/stortrooper-editor/internal/export"
	"github.com/retromoe/stortrooper-editor/internal/model"
	"github.com/retromoe/stortrooper-editor/internal/project"
	"github.com/retromoe/stortrooper-editor/internal/random"
)

var (
	// ErrDocumentNotFound is returned for ids that are not open
	ErrDocumentNotFound = errors.New("document not found")
	// ErrNoPath is returned by Save for a document that was never saved
	ErrNoPath = errors.New("document has no file path")
	// ErrNoCharacterTypes is returned when the resource directory holds no usable character
	ErrNoCharacterTypes = errors.New("no character types available")
)

var _ Editor = (*Workspace)(nil)

// Document is one open project and its live selection
type Document struct {
	Project *model.Project
	State   *character.State
	Dirty   bool
}

// ID returns the document id
func (d *Document) ID() string {
	return d.Project.ID
}

// Title returns the display title, marked when there are unsaved changes
func (d *Document) Title() string {
	title := d.Project.GetDisplayTitle()
	if d.Dirty {
		return title + " *"
	}
	return title
}

// Workspace manages open documents
type Workspace struct {
	lib      *catalog.Library
	store    *project.Store
	renderer *compose.Renderer

	docs      map[string]*Document
	order     []string
	docsMutex sync.RWMutex
	onUpdate  func(*Document) // callback for UI updates
}

// NewWorkspace creates a workspace backed by a project store
func NewWorkspace(store *project.Store, renderer *compose.Renderer) *Workspace {
	return &Workspace{
		lib:      store.Library(),
		store:    store,
		renderer: renderer,
		docs:     make(map[string]*Document),
	}
}

// SetUpdateCallback sets the callback function for document updates
func (w *Workspace) SetUpdateCallback(callback func(*Document)) {
	w.onUpdate = callback
}

// Library returns the catalog library
func (w *Workspace) Library() *catalog.Library {
	return w.lib
}

// Renderer returns the renderer used for previews and exports
func (w *Workspace) Renderer() *compose.Renderer {
	return w.renderer
}

// Store returns the project store
func (w *Workspace) Store() *project.Store {
	return w.store
}

// NewDocument opens an unsaved document of the given character type with
// its default assets selected
func (w *Workspace) NewDocument(ct model.CharacterType) (*Document, error) {
	c, err := w.lib.Load(ct)
	if err != nil {
		return nil, err
	}
	state := character.NewWithDefaults(c)
	doc := &Document{
		Project: &model.Project{
			ID:        uuid.NewString(),
			Type:      ct,
			Selection: state.CurrentSelection(),
		},
		State: state,
	}
	w.add(doc)
	log.Printf("New document %s (%s)", doc.ID(), ct)
	return doc, nil
}

// Open loads a project file. A file that is already open returns the open
// document without reading the file again. Dangling references still open
// the document and the *project.DanglingError is returned with it.
func (w *Workspace) Open(path string) (*Document, error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if existing := w.findByPath(path); existing != nil {
		return existing, nil
	}

	p, err := w.store.Load(path)
	if p == nil {
		return nil, err
	}

	c, lerr := w.lib.Load(p.Type)
	if lerr != nil {
		return nil, lerr
	}
	state := character.New(c)
	if rerr := state.Replace(p.Selection); rerr != nil {
		return nil, rerr
	}
	// ids collide when the same file was copied and opened twice
	if _, taken := w.Document(p.ID); taken {
		p.ID = uuid.NewString()
	}

	doc := &Document{Project: p, State: state, Dirty: err != nil}
	w.add(doc)
	return doc, err
}

// Close removes a document from the workspace
func (w *Workspace) Close(id string) error {
	w.docsMutex.Lock()
	defer w.docsMutex.Unlock()

	if _, exists := w.docs[id]; !exists {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	delete(w.docs, id)
	w.order = slices.DeleteFunc(w.order, func(other string) bool { return other == id })
	return nil
}

// Document returns a document by id
func (w *Workspace) Document(id string) (*Document, bool) {
	w.docsMutex.RLock()
	defer w.docsMutex.RUnlock()
	doc, exists := w.docs[id]
	return doc, exists
}

// Documents returns the open documents in the order they were opened
func (w *Workspace) Documents() []*Document {
	w.docsMutex.RLock()
	defer w.docsMutex.RUnlock()

	docs := make([]*Document, 0, len(w.order))
	for _, id := range w.order {
		docs = append(docs, w.docs[id])
	}
	return docs
}

// Select makes assetID the selection of its category
func (w *Workspace) Select(id, categoryID, assetID string) error {
	return w.mutate(id, func(doc *Document) error {
		return doc.State.Select(categoryID, assetID)
	})
}

// Clear removes the selection of a category according to its clear policy
func (w *Workspace) Clear(id, categoryID string) error {
	return w.mutate(id, func(doc *Document) error {
		return doc.State.Clear(categoryID)
	})
}

// Toggle selects assetID or clears it when it is already selected
func (w *Workspace) Toggle(id, categoryID, assetID string) error {
	return w.mutate(id, func(doc *Document) error {
		return doc.State.Toggle(categoryID, assetID)
	})
}

// SetCharacterType switches a document to another character type and
// resets its selection to that catalog's defaults
func (w *Workspace) SetCharacterType(id string, ct model.CharacterType) error {
	c, err := w.lib.Load(ct)
	if err != nil {
		return err
	}
	return w.mutate(id, func(doc *Document) error {
		doc.Project.Type = ct
		doc.State = character.NewWithDefaults(c)
		return nil
	})
}

// Randomize replaces the outfit with a random one. A nil seed draws a fresh
// seed; the seed used is returned either way.
func (w *Workspace) Randomize(id string, seed *uint64) (uint64, error) {
	gen, used, err := generator(seed)
	if err != nil {
		return 0, err
	}
	err = w.mutate(id, func(doc *Document) error {
		state, err := gen.Randomize(doc.State.Catalog())
		if err != nil {
			return err
		}
		doc.State = state
		return nil
	})
	return used, err
}

// RandomizeAll picks a random character type, a random articles file of it
// and a random outfit
func (w *Workspace) RandomizeAll(id string) (uint64, error) {
	gen, seed, err := generator(nil)
	if err != nil {
		return 0, err
	}
	if _, ok := w.Document(id); !ok {
		return 0, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}

	names, err := w.lib.CharacterTypes()
	if err != nil {
		return 0, err
	}
	if len(names) == 0 {
		return 0, ErrNoCharacterTypes
	}
	name := names[gen.Intn(len(names))]
	files, err := w.lib.ArticleFiles(name)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("%w: %s has no articles files", ErrNoCharacterTypes, name)
	}
	ct := model.CharacterType{Name: name, ArticlesFile: files[gen.Intn(len(files))]}

	c, err := w.lib.Load(ct)
	if err != nil {
		return 0, err
	}
	state, err := gen.Randomize(c)
	if err != nil {
		return 0, err
	}
	err = w.mutate(id, func(doc *Document) error {
		doc.Project.Type = ct
		doc.State = state
		return nil
	})
	return seed, err
}

// Render composites the current selection of a document
func (w *Workspace) Render(id string) (*image.RGBA, error) {
	w.docsMutex.RLock()
	defer w.docsMutex.RUnlock()

	doc, exists := w.docs[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	return w.renderer.Render(doc.State.Catalog(), doc.State.CurrentSelection())
}

// Save writes a document back to the file it came from
func (w *Workspace) Save(id string) error {
	doc, exists := w.Document(id)
	if !exists {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	if doc.Project.Path == "" {
		return ErrNoPath
	}
	return w.SaveAs(id, doc.Project.Path)
}

// SaveAs writes a document to path and makes path its file
func (w *Workspace) SaveAs(id, path string) error {
	w.docsMutex.Lock()
	doc, exists := w.docs[id]
	if !exists {
		w.docsMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	doc.Project.Selection = doc.State.CurrentSelection()
	err := w.store.Save(doc.Project, path)
	if err == nil {
		doc.Dirty = false
	}
	w.docsMutex.Unlock()

	if err != nil {
		return err
	}
	w.notifyUpdate(doc)
	return nil
}

// Export renders a document and writes it as PNG
func (w *Workspace) Export(id, path string) error {
	w.docsMutex.RLock()
	defer w.docsMutex.RUnlock()

	doc, exists := w.docs[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	return export.PNG(w.renderer, doc.State.Catalog(), doc.State.CurrentSelection(), path)
}

// SessionPaths returns the files of open documents that have been saved
func (w *Workspace) SessionPaths() []string {
	var paths []string
	for _, doc := range w.Documents() {
		if doc.Project.Path != "" {
			paths = append(paths, doc.Project.Path)
		}
	}
	return paths
}

// RecordSession stores the open files so the next start can reopen them
func (w *Workspace) RecordSession() error {
	return w.store.RecordSession(w.SessionPaths())
}

// RestoreSession reopens the files of the last session. When none can be
// reopened a new document is created, of the preferred character type if
// it is usable and of the first available one otherwise.
func (w *Workspace) RestoreSession(preferred model.CharacterType) ([]*Document, error) {
	var docs []*Document
	for _, path := range w.store.LastSession() {
		doc, err := w.Open(path)
		if doc == nil {
			log.Printf("Failed to reopen %s: %v", path, err)
			continue
		}
		if err != nil {
			log.Printf("Reopened %s with problems: %v", path, err)
		}
		docs = append(docs, doc)
	}
	if len(docs) > 0 {
		return docs, nil
	}

	ct, err := w.fallbackType(preferred)
	if err != nil {
		return nil, err
	}
	doc, err := w.NewDocument(ct)
	if err != nil {
		return nil, err
	}
	return []*Document{doc}, nil
}

func (w *Workspace) fallbackType(preferred model.CharacterType) (model.CharacterType, error) {
	if preferred.Validate() == nil {
		if _, err := w.lib.Load(preferred); err == nil {
			return preferred, nil
		}
	}
	names, err := w.lib.CharacterTypes()
	if err != nil {
		return model.CharacterType{}, err
	}
	for _, name := range names {
		ct, err := w.lib.DefaultType(name)
		if err != nil {
			continue
		}
		if _, err := w.lib.Load(ct); err != nil {
			log.Printf("Skipping character type %s: %v", ct, err)
			continue
		}
		return ct, nil
	}
	return model.CharacterType{}, ErrNoCharacterTypes
}

// mutate applies fn to a document under the write lock, syncs the project
// snapshot and notifies listeners on success
func (w *Workspace) mutate(id string, fn func(doc *Document) error) error {
	w.docsMutex.Lock()
	doc, exists := w.docs[id]
	if !exists {
		w.docsMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	if err := fn(doc); err != nil {
		w.docsMutex.Unlock()
		return err
	}
	doc.Project.Selection = doc.State.CurrentSelection()
	doc.Dirty = true
	w.docsMutex.Unlock()

	w.notifyUpdate(doc)
	return nil
}

func (w *Workspace) add(doc *Document) {
	w.docsMutex.Lock()
	w.docs[doc.ID()] = doc
	w.order = append(w.order, doc.ID())
	w.docsMutex.Unlock()

	w.notifyUpdate(doc)
}

func (w *Workspace) findByPath(path string) *Document {
	for _, doc := range w.Documents() {
		if doc.Project.Path == path {
			return doc
		}
	}
	return nil
}

// notifyUpdate calls the update callback if set
func (w *Workspace) notifyUpdate(doc *Document) {
	if w.onUpdate != nil {
		w.onUpdate(doc)
	}
}

func generator(seed *uint64) (*random.Generator, uint64, error) {
	if seed != nil {
		return random.New(*seed), *seed, nil
	}
	return random.NewFromEntropy()
}
