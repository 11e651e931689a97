package style

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

const sheet = `
/* chips */
.chip, .toast { background: #222; color: #eee; width: 110px; height: 36; }
.chip-checked { background: #3a7bd5; border: #ffffff; }
#shape-row { left: 16px; top: 16px; gap: 6px; }
.toast { left: 50%; top: 90%; background: #000000c0; font-size: 18px; }
body { color: #f00; }
.a > .b { color: #0f0; }
.broken { color: #00f;
`

func TestParse(t *testing.T) {
	s := Parse(sheet)
	if len(s.Rules) != 5 {
		t.Fatalf("got %d rules: %+v", len(s.Rules), s.Rules)
	}
	if s.Rules[0].Selector != ".chip" || s.Rules[1].Selector != ".toast" {
		t.Fatalf("group selectors = %q, %q", s.Rules[0].Selector, s.Rules[1].Selector)
	}
	if s.Rules[0].Props["height"] != "36" {
		t.Fatalf("props = %v", s.Rules[0].Props)
	}
}

func TestMatchLastWins(t *testing.T) {
	s := Parse(sheet)
	checked := Resolve(s.Match("", "chip", "chip-checked"))
	if checked.Background != (color.RGBA{0x3a, 0x7b, 0xd5, 255}) || !checked.HasBorder {
		t.Fatalf("checked chip = %+v", checked)
	}
	if checked.Width != 110 || checked.Height != 36 || checked.Color != (color.RGBA{0xee, 0xee, 0xee, 255}) {
		t.Fatalf("checked chip lost base style: %+v", checked)
	}
	toast := Resolve(s.Match("", "toast"))
	if toast.Background != (color.RGBA{0, 0, 0, 0xc0}) || toast.LeftPct != 50 || toast.FontSize != 18 {
		t.Fatalf("toast = %+v", toast)
	}
	row := Resolve(s.Match("shape-row"))
	if row.Left != 16 || row.Gap != 6 || row.LeftPct != -1 {
		t.Fatalf("row = %+v", row)
	}
	if got := s.Match("", "unknown"); len(got) != 0 {
		t.Fatalf("unknown class matched %v", got)
	}
}

func TestParseColors(t *testing.T) {
	if c, ok := ParseHexColor("#fff"); !ok || c != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("#fff = %v, %v", c, ok)
	}
	if _, ok := ParseHexColor("fff"); ok {
		t.Fatal("color without # accepted")
	}
	if _, ok := ParseRGBA("#12345678x"); ok {
		t.Fatal("bad #RRGGBBAA accepted")
	}
}

func TestPlaceAndRow(t *testing.T) {
	box := Computed{Width: 100, Height: 20, LeftPct: 50, TopPct: 100}
	if r := Place(box, 1000, 500); r != (Rect{X: 450, Y: 480, W: 100, H: 20}) {
		t.Fatalf("Place = %+v", r)
	}
	item := Computed{Width: 50, Height: 30, Gap: 10}
	rects := Row(Rect{X: 5, Y: 7}, item, 3)
	if len(rects) != 3 || rects[2] != (Rect{X: 125, Y: 7, W: 50, H: 30}) {
		t.Fatalf("Row = %+v", rects)
	}
	if !rects[1].Contains(65, 7) || rects[1].Contains(115, 7) || rects[1].Contains(70, 37) {
		t.Fatal("Contains edges wrong")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui.css")
	if err := os.WriteFile(path, []byte(".chip { width: 80px; }"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil || len(s.Rules) != 1 {
		t.Fatalf("Load = %+v, %v", s, err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "none.css")); err == nil {
		t.Fatal("missing file loaded")
	}
}
