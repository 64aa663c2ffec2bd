// Package smufl provides music font metrics: glyph bounding boxes, advance
// widths and engraving defaults resolved from SMuFL font metadata, with an
// optional fallback to metrics computed from the font file itself.
//
// SMuFL (Standard Music Font Layout) fonts ship a JSON metadata file whose
// lengths are expressed in staff spaces. A [Font] binds that metadata to a
// concrete staff-space unit so that all returned lengths carry the right
// unit for the staff using the font.
package smufl

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// GlyphBBox is a glyph bounding box in staff spaces, as given by SMuFL
// metadata: the north-east (right/top) and south-west (left/bottom)
// corners relative to the glyph origin on the baseline, y up.
type GlyphBBox struct {
	NE [2]float64 `json:"bBoxNE"`
	SW [2]float64 `json:"bBoxSW"`
}

// Width returns the bounding box width in staff spaces.
func (b GlyphBBox) Width() float64 { return b.NE[0] - b.SW[0] }

// Height returns the bounding box height in staff spaces.
func (b GlyphBBox) Height() float64 { return b.NE[1] - b.SW[1] }

// Metadata is the parsed SMuFL metadata for one font. All lengths are in
// staff spaces.
type Metadata struct {
	FontName           string               `json:"fontName"`
	FontVersion        json.Number          `json:"fontVersion"`
	EngravingDefaults  map[string]float64   `json:"engravingDefaults"`
	GlyphBBoxes        map[string]GlyphBBox `json:"glyphBBoxes"`
	GlyphAdvanceWidths map[string]float64   `json:"glyphAdvanceWidths"`
}

// ParseMetadata reads a SMuFL metadata JSON document.
func ParseMetadata(r io.Reader) (*Metadata, error) {
	var meta Metadata
	dec := json.NewDecoder(r)
	if err := dec.Decode(&meta); err != nil {
		return nil, fmt.Errorf("decoding SMuFL metadata: %w", err)
	}
	if len(meta.GlyphBBoxes) == 0 {
		return nil, fmt.Errorf("SMuFL metadata has no glyph bounding boxes")
	}
	return &meta, nil
}

// ParseGlyphnames reads a SMuFL glyphnames JSON document mapping canonical
// glyph names to codepoints, e.g. {"gClef": {"codepoint": "U+E050"}}.
func ParseGlyphnames(r io.Reader) (map[string]rune, error) {
	var raw map[string]struct {
		Codepoint string `json:"codepoint"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding SMuFL glyphnames: %w", err)
	}
	names := make(map[string]rune, len(raw))
	for name, entry := range raw {
		cp, err := parseCodepoint(entry.Codepoint)
		if err != nil {
			return nil, fmt.Errorf("glyph %q: %w", name, err)
		}
		names[name] = cp
	}
	return names, nil
}

func parseCodepoint(s string) (rune, error) {
	hex, ok := strings.CutPrefix(s, "U+")
	if !ok {
		return 0, fmt.Errorf("codepoint %q does not start with U+", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("codepoint %q: %w", s, err)
	}
	return rune(v), nil
}
