package smufl

// This file carries a trimmed copy of Bravura's SMuFL metadata covering
// the glyphs the western package uses, so the engine works out of the box
// without shipping the full metadata file. Complete metadata for any SMuFL
// font can be loaded with [ParseMetadata] instead.

// Bravura returns the built-in metadata subset.
func Bravura() *Metadata {
	return &Metadata{
		FontName: "Bravura",
		EngravingDefaults: map[string]float64{
			"staffLineThickness":    0.13,
			"stemThickness":         0.12,
			"thinBarlineThickness":  0.16,
			"thickBarlineThickness": 0.5,
			"barlineSeparation":     0.4,
			"legerLineThickness":    0.16,
			"legerLineExtension":    0.4,
			"bracketThickness":      0.5,
		},
		GlyphBBoxes: map[string]GlyphBBox{
			"gClef":                    {NE: [2]float64{2.684, 4.392}, SW: [2]float64{0, -2.632}},
			"fClef":                    {NE: [2]float64{2.736, 1.048}, SW: [2]float64{-0.02, -2.54}},
			"cClef":                    {NE: [2]float64{2.796, 2.024}, SW: [2]float64{0, -2.024}},
			"unpitchedPercussionClef1": {NE: [2]float64{1.528, 1}, SW: [2]float64{0, -1}},
			"accidentalFlat":           {NE: [2]float64{0.904, 1.756}, SW: [2]float64{0, -0.7}},
			"accidentalNatural":        {NE: [2]float64{0.672, 1.364}, SW: [2]float64{0, -1.34}},
			"accidentalSharp":          {NE: [2]float64{0.996, 1.4}, SW: [2]float64{0, -1.392}},
			"timeSig0":                 {NE: [2]float64{1.8, 1.004}, SW: [2]float64{0.08, -1}},
			"timeSig1":                 {NE: [2]float64{1.256, 1.004}, SW: [2]float64{0.08, -1}},
			"timeSig2":                 {NE: [2]float64{1.704, 1.016}, SW: [2]float64{0.08, -1.028}},
			"timeSig3":                 {NE: [2]float64{1.604, 1.004}, SW: [2]float64{0.08, -1.004}},
			"timeSig4":                 {NE: [2]float64{1.8, 1.004}, SW: [2]float64{0.08, -1}},
			"timeSig5":                 {NE: [2]float64{1.532, 1.004}, SW: [2]float64{0.08, -1}},
			"timeSig6":                 {NE: [2]float64{1.656, 1.004}, SW: [2]float64{0.08, -1.004}},
			"timeSig7":                 {NE: [2]float64{1.684, 1.004}, SW: [2]float64{0.08, -0.996}},
			"timeSig8":                 {NE: [2]float64{1.664, 1.036}, SW: [2]float64{0.08, -1.036}},
			"timeSig9":                 {NE: [2]float64{1.656, 1.004}, SW: [2]float64{0.08, -1.004}},
			"timeSigCommon":            {NE: [2]float64{1.696, 0.496}, SW: [2]float64{0.02, -0.5}},
			"timeSigCutCommon":         {NE: [2]float64{1.672, 1.004}, SW: [2]float64{0, -1.004}},
			"noteheadWhole":            {NE: [2]float64{1.7, 0.5}, SW: [2]float64{0, -0.5}},
			"noteheadHalf":             {NE: [2]float64{1.18, 0.5}, SW: [2]float64{0, -0.5}},
			"noteheadBlack":            {NE: [2]float64{1.18, 0.5}, SW: [2]float64{0, -0.5}},
		},
		GlyphAdvanceWidths: map[string]float64{
			"gClef":                    2.684,
			"fClef":                    2.736,
			"cClef":                    2.796,
			"unpitchedPercussionClef1": 1.528,
			"accidentalFlat":           0.904,
			"accidentalNatural":        0.672,
			"accidentalSharp":          0.996,
			"noteheadWhole":            1.7,
			"noteheadHalf":             1.18,
			"noteheadBlack":            1.18,
		},
	}
}

// defaultCodepoints maps the built-in glyph names to their SMuFL
// codepoints for font-file metric fallback.
var defaultCodepoints = map[string]rune{
	"gClef":                    0xE050,
	"cClef":                    0xE05C,
	"fClef":                    0xE062,
	"unpitchedPercussionClef1": 0xE069,
	"timeSig0":                 0xE080,
	"timeSig1":                 0xE081,
	"timeSig2":                 0xE082,
	"timeSig3":                 0xE083,
	"timeSig4":                 0xE084,
	"timeSig5":                 0xE085,
	"timeSig6":                 0xE086,
	"timeSig7":                 0xE087,
	"timeSig8":                 0xE088,
	"timeSig9":                 0xE089,
	"timeSigCommon":            0xE08A,
	"timeSigCutCommon":         0xE08B,
	"noteheadWhole":            0xE0A2,
	"noteheadHalf":             0xE0A3,
	"noteheadBlack":            0xE0A4,
	"accidentalFlat":           0xE260,
	"accidentalNatural":        0xE261,
	"accidentalSharp":          0xE262,
}
