package compose

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrMissingAssetImage is matched when an asset's image cannot be read at render time
var ErrMissingAssetImage = errors.New("asset image missing")

// MissingImageError names the asset whose image could not be loaded
type MissingImageError struct {
	Category string
	Asset    string
	Path     string
	Err      error
}

func (e *MissingImageError) Error() string {
	return fmt.Sprintf("asset %s/%s image %s: %v", e.Category, e.Asset, e.Path, e.Err)
}

func (e *MissingImageError) Unwrap() error { return e.Err }

// Is makes every MissingImageError match ErrMissingAssetImage
func (e *MissingImageError) Is(target error) bool { return target == ErrMissingAssetImage }

// ImageSource loads decoded asset images by path
type ImageSource interface {
	Image(path string) (image.Image, error)
}

type cachedImage struct {
	modTime time.Time
	size    int64
	img     image.Image
}

// FileImages decodes images from disk and keeps them while the file is unchanged
type FileImages struct {
	cache     map[string]cachedImage
	cacheLock sync.Mutex
}

// NewFileImages creates an empty decode cache
func NewFileImages() *FileImages {
	return &FileImages{cache: make(map[string]cachedImage)}
}

// Image returns the decoded image at path. The file is stat'ed on every
// call so a deleted or replaced image is noticed.
func (f *FileImages) Image(path string) (image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		f.evict(path)
		return nil, err
	}

	f.cacheLock.Lock()
	entry, ok := f.cache[path]
	f.cacheLock.Unlock()
	if ok && entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
		return entry.img, nil
	}

	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	f.cacheLock.Lock()
	f.cache[path] = cachedImage{modTime: info.ModTime(), size: info.Size(), img: img}
	f.cacheLock.Unlock()
	return img, nil
}

// Len returns the number of cached images
func (f *FileImages) Len() int {
	f.cacheLock.Lock()
	defer f.cacheLock.Unlock()
	return len(f.cache)
}

func (f *FileImages) evict(path string) {
	f.cacheLock.Lock()
	delete(f.cache, path)
	f.cacheLock.Unlock()
}

func decodeFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
