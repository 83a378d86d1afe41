// Package export writes composited characters to PNG files.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"

	"github.com/retromoe/stortrooper-editor/internal/catalog"
	"github.com/retromoe/stortrooper-editor/internal/compose"
	"github.com/retromoe/stortrooper-editor/internal/model"
	"github.com/retromoe/stortrooper-editor/internal/platform"
)

// Extension is the file extension of exported images
const Extension = ".png"

// ErrWrite is matched when the image file cannot be written
var ErrWrite = errors.New("export write failed")

// WriteError wraps the I/O failure of an export
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Is makes every WriteError match ErrWrite
func (e *WriteError) Is(target error) bool { return target == ErrWrite }

// PNG renders sel and writes it to path as an RGBA PNG of the catalog's
// canvas size. Render failures are returned unchanged, so a missing asset
// image matches compose.ErrMissingAssetImage.
func PNG(r *compose.Renderer, c *catalog.Catalog, sel model.Selection, path string) error {
	img, err := r.Render(c, sel)
	if err != nil {
		return err
	}
	if err := platform.WriteFileAtomic(path, func(w io.Writer) error { return Encode(w, img) }); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	log.Printf("Exported %s (%dx%d)", path, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

// Encode writes img as PNG, keeping the alpha channel
func Encode(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
