package editor

import (
	"image"

	"github.com/retromoe/stortrooper-editor/internal/model"
)

// Editor defines the interface for the document workspace.
type Editor interface {
	SetUpdateCallback(func(*Document))
	NewDocument(ct model.CharacterType) (*Document, error)
	Open(path string) (*Document, error)
	Close(id string) error
	Document(id string) (*Document, bool)
	Documents() []*Document

	// Selection changes
	Select(id, categoryID, assetID string) error
	Clear(id, categoryID string) error
	Toggle(id, categoryID, assetID string) error
	SetCharacterType(id string, ct model.CharacterType) error

	// Randomize draws a new outfit and returns the seed used
	Randomize(id string, seed *uint64) (uint64, error)

	// RandomizeAll also picks a random character type and articles file
	RandomizeAll(id string) (uint64, error)

	Render(id string) (*image.RGBA, error)
	Save(id string) error
	SaveAs(id, path string) error
	Export(id, path string) error

	// Session handling
	SessionPaths() []string
	RecordSession() error
	RestoreSession(preferred model.CharacterType) ([]*Document, error)
}
