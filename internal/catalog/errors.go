package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrCatalogLoad is matched by every failure to read or validate an articles file.
	ErrCatalogLoad = errors.New("catalog load failed")
	// ErrDuplicateDepth reports two categories sharing one paint depth.
	ErrDuplicateDepth = errors.New("duplicate category depth")
	// ErrUnknownCategory reports a category id that is not in the catalog.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrUnknownAsset reports an asset id that is not in its category.
	ErrUnknownAsset = errors.New("unknown asset")
	// ErrUnknownCharacterType reports a character type or articles file that does not exist.
	ErrUnknownCharacterType = errors.New("unknown character type")
)

// LoadError describes why an articles file could not be loaded.
// Line is 0 when the problem is not tied to a single row.
type LoadError struct {
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("catalog %s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("catalog %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes every LoadError match ErrCatalogLoad.
func (e *LoadError) Is(target error) bool { return target == ErrCatalogLoad }

func loadErr(path string, line int, format string, args ...any) error {
	return &LoadError{Path: path, Line: line, Err: fmt.Errorf(format, args...)}
}
