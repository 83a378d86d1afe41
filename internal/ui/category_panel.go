package ui

import (
	"image"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/retromoe/stortrooper-editor/internal/catalog"
	"github.com/retromoe/stortrooper-editor/internal/compose"
	"github.com/retromoe/stortrooper-editor/internal/model"
)

// CategoryPanel shows one tab per category with the selectable assets of
// that category. Clicking an asset toggles it.
type CategoryPanel struct {
	tabs         *container.AppTabs
	renderer     *compose.Renderer
	localization *Localization

	catalog   *catalog.Catalog
	lists     map[string]*widget.List
	clearBtns map[string]*widget.Button
	icons     map[string]image.Image

	// Callbacks
	isActive func(categoryID, assetID string) bool
	onToggle func(categoryID, assetID string)
	onClear  func(categoryID string)
}

// NewCategoryPanel creates an empty panel
func NewCategoryPanel(renderer *compose.Renderer, localization *Localization) *CategoryPanel {
	return &CategoryPanel{
		tabs:         container.NewAppTabs(),
		renderer:     renderer,
		localization: localization,
		lists:        make(map[string]*widget.List),
		clearBtns:    make(map[string]*widget.Button),
		icons:        make(map[string]image.Image),
		isActive:     func(string, string) bool { return false },
	}
}

// SetCallbacks sets the selection callbacks
func (p *CategoryPanel) SetCallbacks(isActive func(categoryID, assetID string) bool, onToggle func(categoryID, assetID string), onClear func(categoryID string)) {
	if isActive != nil {
		p.isActive = isActive
	}
	p.onToggle = onToggle
	p.onClear = onClear
}

// Container returns the panel widget
func (p *CategoryPanel) Container() fyne.CanvasObject {
	return p.tabs
}

// Catalog returns the catalog currently shown
func (p *CategoryPanel) Catalog() *catalog.Catalog {
	return p.catalog
}

// SetCatalog rebuilds the tabs for another catalog. The same catalog only
// refreshes the lists.
func (p *CategoryPanel) SetCatalog(c *catalog.Catalog) {
	if c == p.catalog {
		p.Refresh()
		return
	}
	p.catalog = c
	p.lists = make(map[string]*widget.List)
	p.clearBtns = make(map[string]*widget.Button)

	var items []*container.TabItem
	if c != nil {
		for _, cat := range c.Categories() {
			items = append(items, container.NewTabItem(cat.Label, p.createCategoryTab(cat)))
		}
	}
	p.tabs.SetItems(items)
	log.Printf("Category panel shows %d categories", len(items))
}

// Refresh redraws check marks after a selection change
func (p *CategoryPanel) Refresh() {
	for _, list := range p.lists {
		list.Refresh()
	}
}

// RefreshTexts updates localized button labels
func (p *CategoryPanel) RefreshTexts() {
	for _, btn := range p.clearBtns {
		btn.SetText(p.localization.GetText(KeyClearCategory))
	}
}

// SelectedCategory returns the id of the visible tab
func (p *CategoryPanel) SelectedCategory() string {
	if p.catalog == nil {
		return ""
	}
	index := p.tabs.SelectedIndex()
	cats := p.catalog.Categories()
	if index < 0 || index >= len(cats) {
		return ""
	}
	return cats[index].ID
}

func (p *CategoryPanel) createCategoryTab(cat model.Category) fyne.CanvasObject {
	assets, err := p.catalog.AssetsIn(cat.ID)
	if err != nil {
		log.Printf("Category %s: %v", cat.ID, err)
		return widget.NewLabel(err.Error())
	}

	categoryID := cat.ID
	list := widget.NewList(
		func() int { return len(assets) },
		func() fyne.CanvasObject { return p.createAssetRow() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { p.updateAssetRow(assets[id], obj) },
	)
	list.OnSelected = func(id widget.ListItemID) {
		if p.onToggle != nil {
			p.onToggle(categoryID, assets[id].ID)
		}
		list.Unselect(id)
	}
	p.lists[categoryID] = list

	clearBtn := widget.NewButton(p.localization.GetText(KeyClearCategory), func() {
		if p.onClear != nil {
			p.onClear(categoryID)
		}
	})
	// Reject categories can never be emptied
	if cat.Policy == model.PolicyReject {
		clearBtn.Disable()
	}
	p.clearBtns[categoryID] = clearBtn

	return container.NewBorder(nil, clearBtn, nil, nil, list)
}

func (p *CategoryPanel) createAssetRow() fyne.CanvasObject {
	icon := canvas.NewImageFromImage(nil)
	icon.ScaleMode = canvas.ImageScalePixels
	icon.FillMode = canvas.ImageFillContain
	icon.SetMinSize(fyne.NewSize(AssetIconSize, AssetIconSize))

	name := widget.NewLabel("")
	name.Truncation = fyne.TextTruncateEllipsis
	check := widget.NewLabel("")

	return container.NewBorder(nil, nil, icon, check, name)
}

func (p *CategoryPanel) updateAssetRow(asset model.Asset, obj fyne.CanvasObject) {
	row, ok := obj.(*fyne.Container)
	if !ok || len(row.Objects) < 3 {
		return
	}
	// Border layout stores center first, then the outer objects
	name := row.Objects[0].(*widget.Label)
	icon := row.Objects[1].(*canvas.Image)
	check := row.Objects[2].(*widget.Label)

	name.SetText(asset.DisplayName())
	if p.isActive(asset.Category, asset.ID) {
		check.SetText(IconCheck)
	} else {
		check.SetText("")
	}
	icon.Image = p.icon(asset)
	icon.Refresh()
}

// icon returns the cached list icon of an asset
func (p *CategoryPanel) icon(asset model.Asset) image.Image {
	key := asset.IconPath()
	if img, ok := p.icons[key]; ok {
		return img
	}
	img, err := p.renderer.Icon(asset, AssetIconSize)
	if err != nil {
		log.Printf("Icon for %s/%s: %v", asset.Category, asset.ID, err)
		p.icons[key] = nil
		return nil
	}
	p.icons[key] = img
	return img
}
