package style

import (
	"image/color"
	"strconv"
	"strings"

	"arshapes/internal/config"
)

// Rule is a single CSS rule: one selector and a set of property values (raw strings).
type Rule struct {
	Selector string            // e.g. ".chip" or "#shape-cube"
	Props    map[string]string // e.g. "background" -> "#333"
}

// Stylesheet is a list of rules (order matters: later overrides earlier).
type Stylesheet struct {
	Rules []Rule
}

// Match returns the merged properties of every rule matching one of classes or id, in
// sheet order (last wins).
func (s *Stylesheet) Match(id string, classes ...string) map[string]string {
	merged := make(map[string]string)
	if s == nil {
		return merged
	}
	for _, rule := range s.Rules {
		sel := rule.Selector
		if len(sel) < 2 {
			continue
		}
		matches := false
		switch sel[0] {
		case '.':
			for _, c := range classes {
				if c != "" && sel[1:] == c {
					matches = true
				}
			}
		case '#':
			matches = id != "" && sel[1:] == id
		}
		if matches {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// Computed holds resolved values used for drawing.
// LeftPct/TopPct: 0–100 for percentage positioning; -1 means use Left/Top as pixels.
// Padding is the offset (in pixels) from the node's left/top when drawing text.
type Computed struct {
	Background color.RGBA
	Color      color.RGBA
	Border     color.RGBA
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32 // -1 = not set
	TopPct     int32 // -1 = not set
	Padding    int32
	Gap        int32 // spacing between items laid out in a row
	FontSize   int32
}

// Default returns a minimal style (transparent background, white text, no border, zero size).
func Default() Computed {
	return Computed{
		Color:    color.RGBA{255, 255, 255, 255},
		Border:   color.RGBA{0, 0, 0, 255},
		LeftPct:  -1,
		TopPct:   -1,
		Padding:  4,
		Gap:      8,
		FontSize: 20,
	}
}

// ParseHexColor parses #RGB or #RRGGBB. Returns false on parse error.
func ParseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{A: 255}, false
	}
	c, err := config.ParseHexColor(s)
	if err != nil {
		return color.RGBA{A: 255}, false
	}
	return c, true
}

// ParseRGBA parses #RRGGBBAA as well as the forms accepted by ParseHexColor.
func ParseRGBA(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 9 && s[0] == '#' {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return color.RGBA{A: 255}, false
		}
		return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
	}
	return ParseHexColor(s)
}

// ParsePx parses a number, with optional "px" suffix, to int32. Unitless is treated as pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" to int32 (0–100). Used for left/top percentage positioning.
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// Resolve builds a Computed style from a merged property map (e.g. from Match).
func Resolve(props map[string]string) Computed {
	out := Default()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background":
			if c, ok := ParseRGBA(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseRGBA(v); ok {
				out.Color = c
			}
		case "border":
			if c, ok := ParseRGBA(v); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left", "x":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top", "y":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "gap":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Gap = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		}
	}
	return out
}

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, W, H int32
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Place returns the rectangle of a box of style s on a screen of the given size.
// Percentages place the box so that 0% is flush left/top and 100% flush right/bottom.
func Place(s Computed, screenW, screenH int32) Rect {
	r := Rect{X: s.Left, Y: s.Top, W: s.Width, H: s.Height}
	if s.LeftPct >= 0 {
		r.X = (screenW - r.W) * s.LeftPct / 100
	}
	if s.TopPct >= 0 {
		r.Y = (screenH - r.H) * s.TopPct / 100
	}
	return r
}

// Row lays out n boxes of item's size left to right starting at origin, item.Gap apart.
func Row(origin Rect, item Computed, n int) []Rect {
	out := make([]Rect, n)
	x := origin.X
	for i := range out {
		out[i] = Rect{X: x, Y: origin.Y, W: item.Width, H: item.Height}
		x += item.Width + item.Gap
	}
	return out
}
