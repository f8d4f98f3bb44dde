// Package assets resolves the opaque visual handles the game attaches to
// actors. The simulation only stores handles; the terminal renderer looks
// them up here to pick glyphs and colors.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blahaj-tide/internal/core"
)

//go:embed sprites.yaml
var defaultSpritesYAML []byte

// Well-known sprite names.
const (
	Shark = "shark"
	Prey  = "prey"
	Sky   = "sky"
	Water = "water"
)

// ErrNotFound is returned for names missing from the catalog.
var ErrNotFound = errors.New("assets: sprite not found")

// Handle is an opaque reference to a loaded visual. The zero Handle is
// "nothing to draw".
type Handle uint32

// Valid reports whether h refers to a loaded sprite.
func (h Handle) Valid() bool { return h != 0 }

// Loader hands out handles by name.
type Loader interface {
	Load(name string) (Handle, error)
}

// Sprite is the terminal rendition of a handle.
type Sprite struct {
	Name   string
	Glyphs []rune     // Directional glyphs, evenly spaced clockwise starting at screen up
	Ramp   []rune     // Shading ramp, dark to bright (surfaces only)
	Color  core.Color // Foreground color
	Accent core.Color // Secondary color (foam, highlights)
}

// Glyph returns the glyph facing closest to angle (radians clockwise from
// screen up).
func (s Sprite) Glyph(angle float64) rune {
	if len(s.Glyphs) == 0 {
		return '?'
	}
	n := len(s.Glyphs)
	sector := 2 * math.Pi / float64(n)
	i := int(math.Round(angle/sector)) % n
	if i < 0 {
		i += n
	}
	return s.Glyphs[i]
}

// Shade maps t in [0, 1] onto the ramp.
func (s Sprite) Shade(t float64) rune {
	if len(s.Ramp) == 0 {
		return ' '
	}
	i := int(t * float64(len(s.Ramp)))
	return s.Ramp[core.Clamp(i, 0, len(s.Ramp)-1)]
}

type spriteFile struct {
	Sprites map[string]spriteSpec `yaml:"sprites"`
}

type spriteSpec struct {
	Glyphs []string `yaml:"glyphs"`
	Ramp   string   `yaml:"ramp"`
	Color  string   `yaml:"color"`
	Accent string   `yaml:"accent"`
}

// Catalog is a Loader backed by a YAML sprite sheet. It is immutable after
// construction and safe for concurrent use.
type Catalog struct {
	byName  map[string]Handle
	sprites []Sprite // index = handle-1
}

// DefaultCatalog parses the embedded sprite sheet.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultSpritesYAML)
}

// ParseCatalog builds a catalog from YAML. Handles are assigned in name
// order so they are stable for a given file.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f spriteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("assets: failed to parse sprite sheet: %w", err)
	}
	if len(f.Sprites) == 0 {
		return nil, errors.New("assets: sprite sheet is empty")
	}

	names := make([]string, 0, len(f.Sprites))
	for name := range f.Sprites {
		names = append(names, name)
	}
	sort.Strings(names)

	c := &Catalog{byName: make(map[string]Handle, len(names))}
	for _, name := range names {
		spec := f.Sprites[name]
		sp := Sprite{Name: name, Ramp: []rune(spec.Ramp)}

		for _, g := range spec.Glyphs {
			r := []rune(g)
			if len(r) != 1 {
				return nil, fmt.Errorf("assets: sprite %q: glyph %q must be a single character", name, g)
			}
			sp.Glyphs = append(sp.Glyphs, r[0])
		}
		if len(sp.Glyphs) == 0 && len(sp.Ramp) == 0 {
			return nil, fmt.Errorf("assets: sprite %q has neither glyphs nor ramp", name)
		}

		var ok bool
		if sp.Color, ok = core.ParseColor(spec.Color); !ok && spec.Color != "" {
			return nil, fmt.Errorf("assets: sprite %q: unknown color %q", name, spec.Color)
		}
		if sp.Accent, ok = core.ParseColor(spec.Accent); !ok && spec.Accent != "" {
			return nil, fmt.Errorf("assets: sprite %q: unknown accent %q", name, spec.Accent)
		}

		c.sprites = append(c.sprites, sp)
		c.byName[name] = Handle(len(c.sprites))
	}
	return c, nil
}

// Load implements Loader.
func (c *Catalog) Load(name string) (Handle, error) {
	h, ok := c.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return h, nil
}

// Sprite returns the sprite for h. The zero Handle and unknown handles
// return ok=false.
func (c *Catalog) Sprite(h Handle) (Sprite, bool) {
	if h == 0 || int(h) > len(c.sprites) {
		return Sprite{}, false
	}
	return c.sprites[h-1], true
}

// Names lists the catalog entries in handle order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.sprites))
	for i, sp := range c.sprites {
		names[i] = sp.Name
	}
	return names
}
