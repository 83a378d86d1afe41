package character

import (
	"errors"

	"github.com/retromoe/stortrooper-editor/internal/catalog"
)

var (
	// ErrMandatoryCategory is returned when clearing a category whose policy rejects it.
	ErrMandatoryCategory = errors.New("category is mandatory")

	// ErrUnknownCategory and ErrUnknownAsset are the catalog's lookup errors,
	// re-exported so callers of this package need not import catalog.
	ErrUnknownCategory = catalog.ErrUnknownCategory
	ErrUnknownAsset    = catalog.ErrUnknownAsset
)
