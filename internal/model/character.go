package model

import (
	"fmt"
	"strings"
)

// DefaultArticlesFile is the articles file picked when a character type is chosen
const DefaultArticlesFile = "articles.txt"

// CharacterType identifies a base character style and the articles file its catalog is read from
type CharacterType struct {
	Name         string // directory name under the resource root, e.g. "boy"
	ArticlesFile string // articles file inside that directory
}

// ID returns a stable identifier of the form "name/articlesFile"
func (ct CharacterType) ID() string {
	return ct.Name + "/" + ct.ArticlesFile
}

// String implements fmt.Stringer
func (ct CharacterType) String() string {
	return ct.ID()
}

// Validate checks that both parts are set and do not escape the resource root
func (ct CharacterType) Validate() error {
	if strings.TrimSpace(ct.Name) == "" {
		return fmt.Errorf("character type name is empty")
	}
	if strings.TrimSpace(ct.ArticlesFile) == "" {
		return fmt.Errorf("articles file is empty for character type %s", ct.Name)
	}
	for _, part := range []string{ct.Name, ct.ArticlesFile} {
		if strings.Contains(part, "..") || strings.ContainsAny(part, `/\`) {
			return fmt.Errorf("invalid character type component: %q", part)
		}
	}
	return nil
}

// Category is a named layering slot with a fixed paint depth
type Category struct {
	ID      string
	Label   string
	Depth   int         // lower depth is painted first
	Policy  ClearPolicy // what clearing the slot does
	Default string      // asset restored by PolicyDefault; empty otherwise
	Chance  *float64    // inclusion probability for random outfits; nil means uniform with "none"
}

// Mandatory returns true if the category must never be empty once selected
func (c Category) Mandatory() bool {
	return !c.Policy.AllowsEmpty()
}

// Asset is one selectable image belonging to exactly one category
type Asset struct {
	ID       string
	Category string
	Image    string // absolute path of the source image
	Icon     string // absolute path of the list icon; falls back to Image
	X        int    // canvas offset of the image's top-left corner
	Y        int
	Random   bool // candidate for random outfits
}

// IconPath returns the icon reference, or the image when no icon is declared
func (a Asset) IconPath() string {
	if a.Icon != "" {
		return a.Icon
	}
	return a.Image
}

// DisplayName returns the image file name without its directory
func (a Asset) DisplayName() string {
	name := a.Image
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}
	if name == "" {
		return a.ID
	}
	return name
}
