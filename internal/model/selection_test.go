package model

import (
	"reflect"
	"testing"
)

func TestSelection_Equal(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Selection
		expected bool
	}{
		{"both empty", Selection{}, nil, true},
		{"missing key equals empty value", Selection{"hair": ""}, Selection{}, true},
		{"same assets", Selection{"body": "1", "hair": "2"}, Selection{"hair": "2", "body": "1"}, true},
		{"different asset", Selection{"body": "1"}, Selection{"body": "2"}, false},
		{"extra selection", Selection{"body": "1"}, Selection{"body": "1", "hair": "3"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.a.Equal(tt.b); result != tt.expected {
				t.Errorf("Equal() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestSelection_CloneIsIndependent(t *testing.T) {
	original := Selection{"body": "1"}
	clone := original.Clone()
	clone["body"] = "2"

	if original["body"] != "1" {
		t.Errorf("Clone should not share storage, original body = %s", original["body"])
	}
}

func TestSelection_Active(t *testing.T) {
	sel := Selection{"tops": "5", "body": "1", "hair": ""}
	expected := []string{"body", "tops"}

	if result := sel.Active(); !reflect.DeepEqual(result, expected) {
		t.Errorf("Active() = %v, expected %v", result, expected)
	}
}

func TestSelection_Get(t *testing.T) {
	sel := Selection{"body": "1", "hair": ""}

	if id, ok := sel.Get("body"); !ok || id != "1" {
		t.Errorf("Get(body) = (%s, %v), expected (1, true)", id, ok)
	}
	if _, ok := sel.Get("hair"); ok {
		t.Error("Get(hair) should report no selection")
	}
	if _, ok := sel.Get("hats"); ok {
		t.Error("Get(hats) should report no selection")
	}
}

func TestCharacterType_Validate(t *testing.T) {
	tests := []struct {
		ct      CharacterType
		wantErr bool
	}{
		{CharacterType{Name: "boy", ArticlesFile: "articles.txt"}, false},
		{CharacterType{Name: "", ArticlesFile: "articles.txt"}, true},
		{CharacterType{Name: "boy", ArticlesFile: ""}, true},
		{CharacterType{Name: "..", ArticlesFile: "articles.txt"}, true},
		{CharacterType{Name: "boy", ArticlesFile: "../articles.txt"}, true},
	}

	for _, test := range tests {
		err := test.ct.Validate()
		if (err != nil) != test.wantErr {
			t.Errorf("Validate(%+v) error = %v, wantErr %v", test.ct, err, test.wantErr)
		}
	}
}

func TestAsset_IconPathAndDisplayName(t *testing.T) {
	asset := Asset{ID: "10", Image: "/res/boy/data/boy_body_02.gif"}
	if asset.IconPath() != asset.Image {
		t.Errorf("IconPath() = %s, expected image fallback", asset.IconPath())
	}
	if asset.DisplayName() != "boy_body_02.gif" {
		t.Errorf("DisplayName() = %s, expected boy_body_02.gif", asset.DisplayName())
	}

	asset.Icon = "/res/boy/data/icon.png"
	if asset.IconPath() != "/res/boy/data/icon.png" {
		t.Errorf("IconPath() = %s, expected declared icon", asset.IconPath())
	}
}

func TestProject_GetDisplayTitle(t *testing.T) {
	p := &Project{}
	if p.GetDisplayTitle() != UntitledProject {
		t.Errorf("GetDisplayTitle() = %s, expected %s", p.GetDisplayTitle(), UntitledProject)
	}
	p.Path = "/tmp/hero.stp"
	if p.GetDisplayTitle() != "hero.stp" {
		t.Errorf("GetDisplayTitle() = %s, expected hero.stp", p.GetDisplayTitle())
	}
}
