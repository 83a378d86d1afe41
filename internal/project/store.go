// Package project saves and restores character projects as JSON files and
// keeps the recent files list.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/retromoe/stortrooper-editor/internal/catalog"
	"github.com/retromoe/stortrooper-editor/internal/character"
	"github.com/retromoe/stortrooper-editor/internal/history"
	"github.com/retromoe/stortrooper-editor/internal/model"
	"github.com/retromoe/stortrooper-editor/internal/platform"
)

// Store reads and writes project files against a catalog library
type Store struct {
	lib     *catalog.Library
	recents history.Recents
}

// NewStore creates a project store. recents may be nil.
func NewStore(lib *catalog.Library, recents history.Recents) *Store {
	return &Store{lib: lib, recents: recents}
}

// Library returns the catalog library used to resolve projects
func (s *Store) Library() *catalog.Library {
	return s.lib
}

// Save writes p to path atomically and records it as recently used.
// A project without an id is given one.
func (s *Store) Save(p *model.Project, path string) error {
	if err := p.Type.Validate(); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	data, err := newDocument(p).marshal()
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	err = platform.WriteFileAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	p.Path = absPath(path)
	s.remember(p.Path)
	log.Printf("Saved project %s (%s)", p.Path, p.Type)
	return nil
}

// Load reads a project file and resolves it against its catalog.
//
// References the catalog no longer knows are dropped from the returned
// project and reported in a *DanglingError returned alongside it; every
// other failure returns a nil project.
func (s *Store) Load(path string) (*model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, parseErr(path, "%v", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, parseErr(path, "%v", err)
	}

	ct, err := doc.characterType(path)
	if err != nil {
		return nil, err
	}

	c, err := s.lib.Load(ct)
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", path, err)
	}

	sel, dangling := doc.resolve(c)
	state := character.New(c)
	if err := state.Replace(sel); err != nil {
		return nil, fmt.Errorf("load project %s: %w", path, err)
	}

	p := &model.Project{
		ID:        doc.ID,
		Type:      ct,
		Selection: state.CurrentSelection(),
		Path:      absPath(path),
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.remember(p.Path)

	if len(dangling) > 0 {
		derr := &DanglingError{Path: path, Refs: dangling}
		log.Printf("Loaded project %s with dropped references: %v", p.Path, derr)
		return p, derr
	}
	log.Printf("Loaded project %s (%s)", p.Path, p.Type)
	return p, nil
}

func (d document) characterType(path string) (model.CharacterType, error) {
	switch {
	case d.Version < VersionLegacy:
		// legacy files carry no version and may omit the articles file
		if d.ArticlesFile == "" {
			d.ArticlesFile = model.DefaultArticlesFile
		}
	case d.Version > VersionCurrent:
		return model.CharacterType{}, parseErr(path, "unsupported version %d", d.Version)
	}
	if d.CharacterName == "" {
		return model.CharacterType{}, parseErr(path, "character_name is missing")
	}
	if d.ArticlesFile == "" {
		return model.CharacterType{}, parseErr(path, "articles_file is missing")
	}
	ct := model.CharacterType{Name: d.CharacterName, ArticlesFile: d.ArticlesFile}
	if err := ct.Validate(); err != nil {
		return model.CharacterType{}, parseErr(path, "%v", err)
	}
	return ct, nil
}

// resolve splits the stored references into a valid selection and the dangling ones
func (d document) resolve(c *catalog.Catalog) (model.Selection, []DanglingRef) {
	sel := make(model.Selection)
	var dangling []DanglingRef

	if d.Selection == nil && len(d.ActiveArticles) > 0 {
		// the list is the whole outfit: unlisted categories stay empty
		for _, cat := range c.Categories() {
			sel[cat.ID] = ""
		}
		for _, assetID := range d.ActiveArticles {
			asset, ok := c.FindAsset(assetID)
			if !ok {
				dangling = append(dangling, DanglingRef{Asset: assetID})
				continue
			}
			sel[asset.Category] = asset.ID
		}
		sortRefs(dangling)
		return sel, dangling
	}

	for categoryID, assetID := range d.Selection {
		if _, err := c.Category(categoryID); err != nil {
			ref := DanglingRef{Category: categoryID, UnknownCategory: true}
			if assetID != nil {
				ref.Asset = *assetID
			}
			dangling = append(dangling, ref)
			continue
		}
		if assetID == nil || *assetID == "" {
			sel[categoryID] = ""
			continue
		}
		if _, err := c.Asset(categoryID, *assetID); err != nil {
			dangling = append(dangling, DanglingRef{Category: categoryID, Asset: *assetID})
			continue
		}
		sel[categoryID] = *assetID
	}
	sortRefs(dangling)
	return sel, dangling
}

func sortRefs(refs []DanglingRef) {
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Category != refs[j].Category {
			return refs[i].Category < refs[j].Category
		}
		return refs[i].Asset < refs[j].Asset
	})
}

// RecentFiles returns recently saved or opened projects, most recent first
func (s *Store) RecentFiles() []string {
	if s.recents == nil {
		return nil
	}
	return s.recents.RecentFiles()
}

// RecordSession remembers the projects open at shutdown
func (s *Store) RecordSession(paths []string) error {
	if s.recents == nil {
		return nil
	}
	return s.recents.SetSessionFiles(paths)
}

// LastSession returns the recorded session files that still exist
func (s *Store) LastSession() []string {
	if s.recents == nil {
		return nil
	}
	var paths []string
	for _, p := range s.recents.SessionFiles() {
		if _, err := os.Stat(p); err == nil {
			paths = append(paths, p)
		}
	}
	return paths
}

func (s *Store) remember(path string) {
	if s.recents == nil {
		return
	}
	if err := s.recents.AddRecent(path); err != nil {
		log.Printf("Failed to record recent file %s: %v", path, err)
	}
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// IsDangling reports whether err only describes dropped references
func IsDangling(err error) bool {
	var derr *DanglingError
	return errors.As(err, &derr)
}
