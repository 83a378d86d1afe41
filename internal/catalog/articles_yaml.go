package catalog

import (
	"gopkg.in/yaml.v2"
)

type yamlArticles struct {
	Canvas struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"canvas"`
	Categories []yamlCategory `yaml:"categories"`
}

type yamlCategory struct {
	ID      string      `yaml:"id"`
	Label   string      `yaml:"label"`
	Depth   *int        `yaml:"depth"`
	Policy  string      `yaml:"policy"`
	Default string      `yaml:"default"`
	Chance  *float64    `yaml:"chance"`
	Assets  []yamlAsset `yaml:"assets"`
}

type yamlAsset struct {
	ID            string `yaml:"id"`
	Image         string `yaml:"image"`
	Icon          string `yaml:"icon"`
	X             int    `yaml:"x"`
	Y             int    `yaml:"y"`
	ExcludeRandom bool   `yaml:"exclude_random"`
}

// parseYAML reads the structured articles format. Depth is required on
// every category so paint order never depends on list position.
func parseYAML(path string, data []byte) (*rawCatalog, error) {
	var doc yamlArticles
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, loadErr(path, 0, "parse yaml: %v", err)
	}

	raw := &rawCatalog{Width: doc.Canvas.Width, Height: doc.Canvas.Height}
	if raw.Width == 0 && raw.Height == 0 {
		raw.Width, raw.Height = DefaultWidth, DefaultHeight
	}
	if len(doc.Categories) == 0 {
		return nil, loadErr(path, 0, "no categories declared")
	}

	for i, yc := range doc.Categories {
		if yc.Depth == nil {
			return nil, loadErr(path, 0, "category %d (%q) has no depth", i, yc.ID)
		}
		raw.Categories = append(raw.Categories, rawCategory{
			ID:      yc.ID,
			Label:   yc.Label,
			Depth:   *yc.Depth,
			Policy:  yc.Policy,
			Default: yc.Default,
			Chance:  yc.Chance,
		})
		for _, ya := range yc.Assets {
			raw.Assets = append(raw.Assets, rawAsset{
				ID:       ya.ID,
				Category: yc.ID,
				Image:    ya.Image,
				Icon:     ya.Icon,
				X:        ya.X,
				Y:        ya.Y,
				Random:   !ya.ExcludeRandom,
			})
		}
	}
	return raw, nil
}
