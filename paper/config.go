package paper

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/cantus/engrave/units"
)

// paperDef mirrors one [paper.<name>] table in a definition file. Lengths
// are interpreted in the unit named by Units ("mm", "inch" or "gu",
// defaulting to mm). Values may be given as integers or floats.
type paperDef struct {
	Units        string `toml:"units"`
	Width        any    `toml:"width"`
	Height       any    `toml:"height"`
	MarginTop    any    `toml:"margin_top"`
	MarginRight  any    `toml:"margin_right"`
	MarginBottom any    `toml:"margin_bottom"`
	MarginLeft   any    `toml:"margin_left"`
	Gutter       any    `toml:"gutter"`
}

type paperFile struct {
	Paper map[string]paperDef `toml:"paper"`
}

// Load reads named paper definitions from a TOML file.
func Load(path string) (map[string]Paper, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening paper definitions: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads named paper definitions from TOML data.
//
// The expected format:
//
//	[paper.concert]
//	units = "mm"
//	width = 229
//	height = 305
//	margin_top = 15
//	margin_right = 15
//	margin_bottom = 15
//	margin_left = 15
//	gutter = 5
func Parse(r io.Reader) (map[string]Paper, error) {
	var file paperFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding paper definitions: %w", err)
	}

	papers := make(map[string]Paper, len(file.Paper))
	for name, def := range file.Paper {
		p, err := def.toPaper()
		if err != nil {
			return nil, fmt.Errorf("paper %q: %w", name, err)
		}
		papers[name] = p
	}
	return papers, nil
}

func (d paperDef) toPaper() (Paper, error) {
	kind, err := kindByName(d.Units)
	if err != nil {
		return Paper{}, err
	}

	p := Paper{}
	fields := []struct {
		name string
		v    any
		dst  *units.Unit
	}{
		{"width", d.Width, &p.Width},
		{"height", d.Height, &p.Height},
		{"margin_top", d.MarginTop, &p.MarginTop},
		{"margin_right", d.MarginRight, &p.MarginRight},
		{"margin_bottom", d.MarginBottom, &p.MarginBottom},
		{"margin_left", d.MarginLeft, &p.MarginLeft},
		{"gutter", d.Gutter, &p.Gutter},
	}
	for _, f := range fields {
		if f.v == nil {
			continue // absent fields stay zero
		}
		u, err := kind.Coerce(f.v)
		if err != nil {
			return Paper{}, fmt.Errorf("field %s: %w", f.name, err)
		}
		*f.dst = u
	}

	if !p.Width.Gt(units.ZERO) || !p.Height.Gt(units.ZERO) {
		return Paper{}, fmt.Errorf("paper must have positive width and height")
	}
	return p, nil
}

func kindByName(name string) (units.Kind, error) {
	switch name {
	case "", "mm":
		return units.Mm, nil
	case "inch", "in":
		return units.Inch, nil
	case "gu", "point", "pt":
		return units.GraphicUnit, nil
	default:
		return units.Kind{}, fmt.Errorf("unknown unit name %q", name)
	}
}
