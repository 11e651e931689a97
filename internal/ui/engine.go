// Package ui draws the overlay laid out by package widget with raylib.
package ui

import (
	"image/color"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"arshapes/internal/ui/style"
	"arshapes/internal/ui/widget"
)

// Engine holds the stylesheet and font the overlay is drawn with.
// If a font is loaded (LoadFont), text is drawn with it; otherwise raylib's default (pixel) font is used.
type Engine struct {
	sheet *style.Stylesheet
	font  rl.Font
}

// New creates an engine with an empty stylesheet.
func New() *Engine {
	return &Engine{sheet: &style.Stylesheet{}}
}

// LoadCSS loads and parses a CSS file from path. Replaces the current stylesheet.
func (e *Engine) LoadCSS(path string) error {
	sheet, err := style.Load(path)
	if err != nil {
		return err
	}
	e.sheet = sheet
	return nil
}

// SetStylesheet sets the stylesheet directly (e.g. the built-in one).
func (e *Engine) SetStylesheet(sheet *style.Stylesheet) {
	e.sheet = sheet
}

// Stylesheet returns the current stylesheet.
func (e *Engine) Stylesheet() *style.Stylesheet {
	return e.sheet
}

// LoadFont loads a TTF font from path for text rendering. If loading fails, the engine keeps using the default font.
// Call after the window/OpenGL context exists.
func (e *Engine) LoadFont(path string) error {
	f := rl.LoadFont(path)
	if f.Texture.ID == 0 {
		return os.ErrNotExist
	}
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
	}
	e.font = f
	return nil
}

// Font returns the loaded font; its texture ID is zero when none is loaded.
func (e *Engine) Font() rl.Font {
	return e.font
}

// Unload releases the font.
func (e *Engine) Unload() {
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
		e.font = rl.Font{}
	}
}

// ScreenSize returns the current render size in pixels.
func ScreenSize() (int32, int32) {
	return int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
}

// Draw draws boxes in order: background, border, then text.
func (e *Engine) Draw(boxes []widget.Box) {
	for _, b := range boxes {
		r := b.Rect
		st := b.Style
		if st.Background.A > 0 {
			rl.DrawRectangle(r.X, r.Y, r.W, r.H, rlColor(st.Background))
		}
		if st.HasBorder && r.W > 0 && r.H > 0 {
			rl.DrawRectangleLines(r.X, r.Y, r.W, r.H, rlColor(st.Border))
		}
		if b.Text != "" {
			e.Text(b.Text, r.X+st.Padding, r.Y+st.Padding, st.FontSize, st.Color)
		}
	}
}

// Text draws one line with the engine font.
func (e *Engine) Text(text string, x, y, size int32, c color.RGBA) {
	if e.font.Texture.ID != 0 {
		rl.DrawTextEx(e.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, rlColor(c))
		return
	}
	rl.DrawText(text, x, y, size, rlColor(c))
}

func rlColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
