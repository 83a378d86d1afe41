package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/retromoe/stortrooper-editor/internal/catalog"
)

var (
	// ErrParse is matched when a project file is unreadable, malformed or missing required fields.
	ErrParse = errors.New("project parse failed")
	// ErrWrite is matched when a project file cannot be written.
	ErrWrite = errors.New("project write failed")
)

// WriteError wraps the I/O failure of a save
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Is makes every WriteError match ErrWrite
func (e *WriteError) Is(target error) bool { return target == ErrWrite }

// DanglingRef is one entry of a project file that the catalog does not know.
// Category is empty for legacy files that recorded bare asset ids.
type DanglingRef struct {
	Category string
	Asset    string
	// UnknownCategory is true when the category itself is missing
	UnknownCategory bool
}

func (r DanglingRef) String() string {
	switch {
	case r.UnknownCategory:
		return fmt.Sprintf("category %q", r.Category)
	case r.Category == "":
		return fmt.Sprintf("asset %q", r.Asset)
	default:
		return fmt.Sprintf("asset %q in category %q", r.Asset, r.Category)
	}
}

// DanglingError lists the references dropped while loading a project.
// It is returned together with the best-effort project.
type DanglingError struct {
	Path string
	Refs []DanglingRef
}

func (e *DanglingError) Error() string {
	parts := make([]string, len(e.Refs))
	for i, r := range e.Refs {
		parts[i] = r.String()
	}
	return fmt.Sprintf("project %s references unknown %s", e.Path, strings.Join(parts, ", "))
}

// Unwrap exposes catalog.ErrUnknownCategory and/or catalog.ErrUnknownAsset
func (e *DanglingError) Unwrap() []error {
	var category, asset bool
	for _, r := range e.Refs {
		if r.UnknownCategory {
			category = true
		} else {
			asset = true
		}
	}
	var errs []error
	if category {
		errs = append(errs, catalog.ErrUnknownCategory)
	}
	if asset {
		errs = append(errs, catalog.ErrUnknownAsset)
	}
	return errs
}

func parseErr(path string, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrParse, path, fmt.Sprintf(format, args...))
}
