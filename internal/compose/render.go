package compose

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/retromoe/stortrooper-editor/internal/catalog"
	"github.com/retromoe/stortrooper-editor/internal/model"
)

// Renderer composites selections using an image source
type Renderer struct {
	Images ImageSource
}

// NewRenderer creates a renderer backed by a file decode cache
func NewRenderer() *Renderer {
	return &Renderer{Images: NewFileImages()}
}

// Render paints the selected asset of every category, lowest depth first,
// onto a transparent canvas of the catalog's size. Categories with no
// selection leave the canvas untouched. Selection keys the catalog does
// not know are ignored.
func (r *Renderer) Render(c *catalog.Catalog, sel model.Selection) (*image.RGBA, error) {
	canvas := image.NewRGBA(image.Rectangle{Max: c.Canvas()})

	for _, cat := range c.Categories() {
		assetID, ok := sel.Get(cat.ID)
		if !ok {
			continue
		}
		asset, err := c.Asset(cat.ID, assetID)
		if err != nil {
			return nil, err
		}
		src, err := r.Images.Image(asset.Image)
		if err != nil {
			return nil, &MissingImageError{Category: cat.ID, Asset: asset.ID, Path: asset.Image, Err: err}
		}
		paint(canvas, src, image.Pt(asset.X, asset.Y))
	}
	return canvas, nil
}

// paint draws src with its top-left corner at offset, clipped to dst
func paint(dst *image.RGBA, src image.Image, offset image.Point) {
	b := src.Bounds()
	rect := image.Rectangle{Min: offset, Max: offset.Add(b.Size())}
	draw.Draw(dst, rect, src, b.Min, draw.Over)
}
