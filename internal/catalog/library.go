package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/retromoe/stortrooper-editor/internal/model"
)

// Library discovers character types under a resource root and hands out
// shared catalogs, loading each character type at most once.
type Library struct {
	root      string
	cache     map[string]*Catalog
	cacheLock sync.Mutex
}

// NewLibrary creates a library rooted at the resource directory
func NewLibrary(root string) *Library {
	return &Library{
		root:  root,
		cache: make(map[string]*Catalog),
	}
}

// Root returns the resource directory
func (l *Library) Root() string {
	return l.root
}

// CharacterTypes lists the character directories, sorted by name
func (l *Library) CharacterTypes() ([]string, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, fmt.Errorf("read resource dir %s: %w", l.root, err)
	}
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || name == ImageDirName || strings.HasPrefix(name, ".") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// ArticleFiles lists the articles files available for a character type
func (l *Library) ArticleFiles(name string) ([]string, error) {
	if err := (model.CharacterType{Name: name, ArticlesFile: model.DefaultArticlesFile}).Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownCharacterType, err)
	}
	entries, err := os.ReadDir(filepath.Join(l.root, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCharacterType, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read character dir %s: %w", name, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !IsArticlesFile(entry.Name()) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

// DefaultType returns the character type using articles.txt when present,
// otherwise the first articles file found
func (l *Library) DefaultType(name string) (model.CharacterType, error) {
	files, err := l.ArticleFiles(name)
	if err != nil {
		return model.CharacterType{}, err
	}
	if len(files) == 0 {
		return model.CharacterType{}, fmt.Errorf("%w: %s has no articles files", ErrUnknownCharacterType, name)
	}
	for _, f := range files {
		if f == model.DefaultArticlesFile {
			return model.CharacterType{Name: name, ArticlesFile: f}, nil
		}
	}
	return model.CharacterType{Name: name, ArticlesFile: files[0]}, nil
}

// Load returns the shared catalog for ct, reading it on first use
func (l *Library) Load(ct model.CharacterType) (*Catalog, error) {
	l.cacheLock.Lock()
	defer l.cacheLock.Unlock()

	if c, ok := l.cache[ct.ID()]; ok {
		return c, nil
	}
	if err := l.checkExists(ct); err != nil {
		return nil, err
	}

	c, err := Load(ct, l.root)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d articles in %d categories for %s", c.AssetCount(), len(c.categories), ct)
	l.cache[ct.ID()] = c
	return c, nil
}

// Forget evicts a cached catalog so the next Load re-reads it from disk
func (l *Library) Forget(ct model.CharacterType) {
	l.cacheLock.Lock()
	defer l.cacheLock.Unlock()
	delete(l.cache, ct.ID())
}

func (l *Library) checkExists(ct model.CharacterType) error {
	if err := ct.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownCharacterType, err)
	}
	info, err := os.Stat(filepath.Join(l.root, ct.Name))
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrUnknownCharacterType, ct.Name)
	}
	if _, err := os.Stat(filepath.Join(l.root, ct.Name, ct.ArticlesFile)); err != nil {
		return fmt.Errorf("%w: %s has no %s", ErrUnknownCharacterType, ct.Name, ct.ArticlesFile)
	}
	return nil
}

// IsArticlesFile reports whether a file name looks like an articles file
func IsArticlesFile(name string) bool {
	if !strings.HasPrefix(name, ArticlesPrefix) {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ExtText, ExtYAML, ExtYML:
		return true
	}
	return false
}
