package compose

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/retromoe/stortrooper-editor/internal/model"
)

// Thumbnail scales img to fit a size x size square, keeping the aspect
// ratio and hard pixel edges. The result is centred on a transparent square.
func Thumbnail(img image.Image, size int) *image.RGBA {
	if size <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	b := img.Bounds()
	if b.Empty() {
		return dst
	}

	w, h := b.Dx(), b.Dy()
	if w >= h {
		h = max(1, h*size/w)
		w = size
	} else {
		w = max(1, w*size/h)
		h = size
	}
	x := (size - w) / 2
	y := (size - h) / 2
	draw.NearestNeighbor.Scale(dst, image.Rect(x, y, x+w, y+h), img, b, draw.Over, nil)
	return dst
}

// Icon loads the list icon of an asset, falling back to its image, and thumbnails it
func (r *Renderer) Icon(asset model.Asset, size int) (*image.RGBA, error) {
	src, err := r.Images.Image(asset.IconPath())
	if err != nil {
		return nil, &MissingImageError{Category: asset.Category, Asset: asset.ID, Path: asset.IconPath(), Err: err}
	}
	return Thumbnail(src, size), nil
}
