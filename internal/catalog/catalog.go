package catalog

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/retromoe/stortrooper-editor/internal/model"
)

// Directory and canvas defaults shared by both articles formats
const (
	ImageDirName  = "data"
	DefaultWidth  = 300
	DefaultHeight = 300
)

// Articles file extensions
const (
	ExtText = ".txt"
	ExtYAML = ".yaml"
	ExtYML  = ".yml"

	ArticlesPrefix = "articles"
)

// Catalog is the validated set of categories and assets for one character type
type Catalog struct {
	charType   model.CharacterType
	source     string
	canvas     image.Point
	categories []model.Category
	byID       map[string]int
	assets     map[string][]model.Asset
	assetIdx   map[string]map[string]int
}

// rawCategory and rawAsset are what the format parsers produce before validation
type rawCategory struct {
	ID      string
	Label   string
	Depth   int
	Policy  string
	Default string
	Chance  *float64
	Line    int
}

type rawAsset struct {
	ID       string
	Category string
	Image    string
	Icon     string
	X, Y     int
	Random   bool
	Line     int
}

type rawCatalog struct {
	Width, Height int
	Categories    []rawCategory
	Assets        []rawAsset
	// implicitLayers marks a text file without a layers section; only
	// layers that own at least one asset are kept from the built-in table.
	implicitLayers bool
}

// Load reads the articles file of ct from the resource root and validates it
func Load(ct model.CharacterType, root string) (*Catalog, error) {
	if err := ct.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownCharacterType, err)
	}
	dir := filepath.Join(root, ct.Name)
	path := filepath.Join(dir, ct.ArticlesFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var raw *rawCatalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtYAML, ExtYML:
		raw, err = parseYAML(path, data)
	default:
		raw, err = parseText(path, data)
	}
	if err != nil {
		return nil, err
	}
	return build(ct, dir, path, raw)
}

// build validates a parsed articles file and resolves image paths
func build(ct model.CharacterType, dir, path string, raw *rawCatalog) (*Catalog, error) {
	if raw.Width <= 0 || raw.Height <= 0 {
		return nil, loadErr(path, 0, "invalid canvas size %dx%d", raw.Width, raw.Height)
	}

	c := &Catalog{
		charType: ct,
		source:   path,
		canvas:   image.Pt(raw.Width, raw.Height),
		byID:     make(map[string]int),
		assets:   make(map[string][]model.Asset),
		assetIdx: make(map[string]map[string]int),
	}

	declared := make(map[string]rawCategory, len(raw.Categories))
	depths := make(map[int]string, len(raw.Categories))
	for _, rc := range raw.Categories {
		if rc.ID == "" {
			return nil, loadErr(path, rc.Line, "category id is empty")
		}
		if _, dup := declared[rc.ID]; dup {
			return nil, loadErr(path, rc.Line, "duplicate category %q", rc.ID)
		}
		if other, dup := depths[rc.Depth]; dup {
			return nil, loadErr(path, rc.Line, "%w: %q and %q both use depth %d", ErrDuplicateDepth, other, rc.ID, rc.Depth)
		}
		if rc.Chance != nil && (*rc.Chance < 0 || *rc.Chance > 1) {
			return nil, loadErr(path, rc.Line, "category %q chance %v outside [0,1]", rc.ID, *rc.Chance)
		}
		declared[rc.ID] = rc
		depths[rc.Depth] = rc.ID
	}

	for _, ra := range raw.Assets {
		if _, ok := declared[ra.Category]; !ok {
			return nil, loadErr(path, ra.Line, "asset %q uses unknown layer %q", ra.ID, ra.Category)
		}
		if ra.ID == "" {
			return nil, loadErr(path, ra.Line, "asset id is empty")
		}
		if _, dup := c.assetIdx[ra.Category][ra.ID]; dup {
			return nil, loadErr(path, ra.Line, "duplicate asset %q in category %q", ra.ID, ra.Category)
		}
		imagePath, err := resolveImage(dir, ra.Image)
		if err != nil {
			return nil, loadErr(path, ra.Line, "asset %q: %v", ra.ID, err)
		}
		var iconPath string
		if ra.Icon != "" {
			if iconPath, err = resolveImage(dir, ra.Icon); err != nil {
				return nil, loadErr(path, ra.Line, "asset %q icon: %v", ra.ID, err)
			}
		}
		if c.assetIdx[ra.Category] == nil {
			c.assetIdx[ra.Category] = make(map[string]int)
		}
		c.assetIdx[ra.Category][ra.ID] = len(c.assets[ra.Category])
		c.assets[ra.Category] = append(c.assets[ra.Category], model.Asset{
			ID:       ra.ID,
			Category: ra.Category,
			Image:    imagePath,
			Icon:     iconPath,
			X:        ra.X,
			Y:        ra.Y,
			Random:   ra.Random,
		})
	}

	for _, rc := range raw.Categories {
		if raw.implicitLayers && len(c.assets[rc.ID]) == 0 {
			continue
		}
		policy, ok := model.ParseClearPolicy(rc.Policy)
		if !ok {
			return nil, loadErr(path, rc.Line, "category %q has unknown policy %q", rc.ID, rc.Policy)
		}
		cat := model.Category{
			ID:      rc.ID,
			Label:   rc.Label,
			Depth:   rc.Depth,
			Policy:  policy,
			Default: rc.Default,
			Chance:  rc.Chance,
		}
		if cat.Label == "" {
			cat.Label = defaultLabel(rc.ID)
		}
		if cat.Default != "" {
			if _, ok := c.assetIdx[rc.ID][cat.Default]; !ok {
				return nil, loadErr(path, rc.Line, "category %q default %q: %w", rc.ID, cat.Default, ErrUnknownAsset)
			}
		} else if policy == model.PolicyDefault {
			if len(c.assets[rc.ID]) == 0 {
				return nil, loadErr(path, rc.Line, "mandatory category %q has no assets to default to", rc.ID)
			}
			cat.Default = c.assets[rc.ID][0].ID
		}
		c.categories = append(c.categories, cat)
	}

	sort.Slice(c.categories, func(i, j int) bool {
		return c.categories[i].Depth < c.categories[j].Depth
	})
	for i, cat := range c.categories {
		c.byID[cat.ID] = i
	}
	return c, nil
}

// resolveImage joins an image reference onto the data directory and checks it exists
func resolveImage(dir, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("image reference is empty")
	}
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("image reference %q escapes the data directory", name)
	}
	p := filepath.Join(dir, ImageDirName, clean)
	info, err := os.Stat(p)
	if err != nil {
		return "", fmt.Errorf("image %s: %w", name, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("image %s is a directory", name)
	}
	return p, nil
}

func defaultLabel(id string) string {
	if id == "" {
		return id
	}
	return strings.ToUpper(id[:1]) + id[1:]
}

// Type returns the character type this catalog was loaded for
func (c *Catalog) Type() model.CharacterType {
	return c.charType
}

// Source returns the path of the articles file
func (c *Catalog) Source() string {
	return c.source
}

// Canvas returns the fixed output size shared by every asset of the catalog
func (c *Catalog) Canvas() image.Point {
	return c.canvas
}

// Categories returns the categories in ascending depth order
func (c *Catalog) Categories() []model.Category {
	return append([]model.Category(nil), c.categories...)
}

// Category looks up one category by id
func (c *Catalog) Category(id string) (model.Category, error) {
	i, ok := c.byID[id]
	if !ok {
		return model.Category{}, fmt.Errorf("%w: %s", ErrUnknownCategory, id)
	}
	return c.categories[i], nil
}

// AssetsIn returns the assets of a category in source order
func (c *Catalog) AssetsIn(categoryID string) ([]model.Asset, error) {
	if _, ok := c.byID[categoryID]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, categoryID)
	}
	return append([]model.Asset(nil), c.assets[categoryID]...), nil
}

// Asset looks up one asset inside a category
func (c *Catalog) Asset(categoryID, assetID string) (model.Asset, error) {
	if _, ok := c.byID[categoryID]; !ok {
		return model.Asset{}, fmt.Errorf("%w: %s", ErrUnknownCategory, categoryID)
	}
	i, ok := c.assetIdx[categoryID][assetID]
	if !ok {
		return model.Asset{}, fmt.Errorf("%w: %s in category %s", ErrUnknownAsset, assetID, categoryID)
	}
	return c.assets[categoryID][i], nil
}

// FindAsset searches every category, in depth order, for an asset id.
// Used for project files that recorded bare asset ids.
func (c *Catalog) FindAsset(assetID string) (model.Asset, bool) {
	for _, cat := range c.categories {
		if i, ok := c.assetIdx[cat.ID][assetID]; ok {
			return c.assets[cat.ID][i], true
		}
	}
	return model.Asset{}, false
}

// AssetCount returns the total number of assets across categories
func (c *Catalog) AssetCount() int {
	n := 0
	for _, list := range c.assets {
		n += len(list)
	}
	return n
}
