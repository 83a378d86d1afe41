package catalog

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/retromoe/stortrooper-editor/internal/model"
)

// Section markers of the quoted-token articles format
const (
	MarkerPrefix = "HCDataSetFile_"
	MarkerData   = "HCDataSetFile_data"
	MarkerLayers = "HCDataSetFile_layers"
	MarkerCanvas = "HCDataSetFile_canvas"
)

// AlternatePoseSuffix marks raised-arms variants that are not selectable on their own
const AlternatePoseSuffix = "_brazos_arriba"

// Minimum token counts per row
const (
	minDataTokens  = 7
	minLayerTokens = 4
)

// builtinLayers is the paint order used when an articles file has no layers section
var builtinLayers = []struct {
	id     string
	policy model.ClearPolicy
}{
	{"behind", model.PolicyOptional},
	{"body", model.PolicyDefault},
	{"hair", model.PolicyOptional},
	{"underware", model.PolicyOptional},
	{"tops", model.PolicyOptional},
	{"shoes", model.PolicyOptional},
	{"bottoms", model.PolicyOptional},
	{"jackets", model.PolicyOptional},
	{"hats", model.PolicyOptional},
	{"infront", model.PolicyOptional},
}

type textSection int

const (
	sectionNone textSection = iota
	sectionLayers
	sectionData
)

// parseText reads the quoted-token format:
//
//	"HCDataSetFile_canvas" "300" "300"
//	"HCDataSetFile_layers" "1.0"
//	"body" "Body" "1" "default" ["10"]
//	"HCDataSetFile_data" "1.0"
//	"10" "boy_body_02.gif" "body" "body" "26" "28" "-1"
func parseText(path string, data []byte) (*rawCatalog, error) {
	raw := &rawCatalog{Width: DefaultWidth, Height: DefaultHeight}
	section := sectionNone
	sawLayers := false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens, err := tokenize(line)
		if err != nil {
			return nil, loadErr(path, lineNo, "%v", err)
		}
		if len(tokens) == 0 {
			continue
		}

		if strings.HasPrefix(tokens[0], MarkerPrefix) {
			switch tokens[0] {
			case MarkerData:
				section = sectionData
			case MarkerLayers:
				section = sectionLayers
				sawLayers = true
			case MarkerCanvas:
				section = sectionNone
				if len(tokens) < 3 {
					return nil, loadErr(path, lineNo, "canvas marker needs width and height")
				}
				w, errW := strconv.Atoi(tokens[1])
				h, errH := strconv.Atoi(tokens[2])
				if errW != nil || errH != nil {
					return nil, loadErr(path, lineNo, "canvas size %q x %q is not numeric", tokens[1], tokens[2])
				}
				raw.Width, raw.Height = w, h
			default:
				section = sectionNone
			}
			continue
		}

		switch section {
		case sectionLayers:
			rc, err := parseLayerRow(tokens)
			if err != nil {
				return nil, loadErr(path, lineNo, "%v", err)
			}
			rc.Line = lineNo
			raw.Categories = append(raw.Categories, rc)
		case sectionData:
			ra, skip, err := parseDataRow(tokens)
			if err != nil {
				return nil, loadErr(path, lineNo, "%v", err)
			}
			if skip {
				continue
			}
			ra.Line = lineNo
			raw.Assets = append(raw.Assets, ra)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, loadErr(path, 0, "read: %v", err)
	}

	if !sawLayers {
		raw.implicitLayers = true
		for depth, l := range builtinLayers {
			raw.Categories = append(raw.Categories, rawCategory{
				ID:     l.id,
				Depth:  depth,
				Policy: string(l.policy),
			})
		}
	}
	return raw, nil
}

func parseLayerRow(tokens []string) (rawCategory, error) {
	if len(tokens) < minLayerTokens {
		return rawCategory{}, fmt.Errorf("layer row needs %d fields, got %d", minLayerTokens, len(tokens))
	}
	depth, err := strconv.Atoi(tokens[2])
	if err != nil {
		return rawCategory{}, fmt.Errorf("layer %q depth %q is not an integer", tokens[0], tokens[2])
	}
	rc := rawCategory{
		ID:     tokens[0],
		Label:  tokens[1],
		Depth:  depth,
		Policy: tokens[3],
	}
	if len(tokens) > minLayerTokens {
		rc.Default = tokens[4]
	}
	return rc, nil
}

// parseDataRow returns skip=true for alternate pose rows
func parseDataRow(tokens []string) (rawAsset, bool, error) {
	if len(tokens) < minDataTokens {
		return rawAsset{}, false, fmt.Errorf("article row needs %d fields, got %d", minDataTokens, len(tokens))
	}
	if strings.Contains(tokens[1], AlternatePoseSuffix) {
		return rawAsset{}, true, nil
	}
	x, errX := strconv.Atoi(tokens[4])
	y, errY := strconv.Atoi(tokens[5])
	if errX != nil || errY != nil {
		return rawAsset{}, false, fmt.Errorf("article %q position %q,%q is not numeric", tokens[0], tokens[4], tokens[5])
	}
	return rawAsset{
		ID:       tokens[0],
		Image:    tokens[1],
		Category: tokens[3],
		X:        x,
		Y:        y,
		Random:   true,
	}, false, nil
}

// tokenize splits a row into double-quoted or whitespace-separated tokens
func tokenize(line string) ([]string, error) {
	var tokens []string
	i := 0
	for i < len(line) {
		switch c := line[i]; {
		case c == ' ' || c == '\t':
			i++
		case c == '"':
			end := strings.IndexByte(line[i+1:], '"')
			if end < 0 {
				return nil, fmt.Errorf("unterminated quote at column %d", i+1)
			}
			tokens = append(tokens, line[i+1:i+1+end])
			i += end + 2
		default:
			end := strings.IndexAny(line[i:], " \t\"")
			if end < 0 {
				end = len(line) - i
			}
			tokens = append(tokens, line[i:i+end])
			i += end
		}
	}
	return tokens, nil
}
