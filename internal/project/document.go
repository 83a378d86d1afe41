package project

import (
	"encoding/json"

	"github.com/retromoe/stortrooper-editor/internal/model"
)

// Project file format versions
const (
	VersionLegacy  = 1
	VersionCurrent = 2
)

// Extension is the file extension of saved projects
const Extension = ".stp"

// document is the JSON layout of a project file.
//
// Version 2 stores one entry per category, null meaning no selection:
//
//	{"version":2,"id":"…","character_name":"boy","articles_file":"articles.txt",
//	 "selection":{"body":"10","hair":null}}
//
// Version 1 files have no version field and list bare asset ids in active_articles.
type document struct {
	Version        int                `json:"version,omitempty"`
	ID             string             `json:"id,omitempty"`
	CharacterName  string             `json:"character_name"`
	ArticlesFile   string             `json:"articles_file"`
	Selection      map[string]*string `json:"selection"`
	ActiveArticles []string           `json:"active_articles,omitempty"`
}

func newDocument(p *model.Project) document {
	doc := document{
		Version:       VersionCurrent,
		ID:            p.ID,
		CharacterName: p.Type.Name,
		ArticlesFile:  p.Type.ArticlesFile,
		Selection:     make(map[string]*string, len(p.Selection)),
	}
	for categoryID, assetID := range p.Selection {
		if assetID == "" {
			doc.Selection[categoryID] = nil
			continue
		}
		id := assetID
		doc.Selection[categoryID] = &id
	}
	return doc
}

func (d document) marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
