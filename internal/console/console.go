// Package console is the command line drawn over the bottom of the view. ESC shows and
// hides it; each submitted line is logged and run through the command registry.
package console

import (
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"arshapes/internal/commands"
	"arshapes/internal/logger"
)

const (
	BarHeight = 40
	// When windowed, move bar up by this many pixels so it stays visible (avoids being cut off by taskbar/window bounds).
	WindowedBarOffset = 56
	prompt            = "> "
	fontSize          = 20
	padding           = 8
	// Number of log lines drawn above the input bar when the console is open.
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
	maxLineLen       = 200
	maxHistory       = 50
)

var (
	// Reused every frame when drawing the bar to avoid per-frame color allocations.
	barColor    = rl.NewColor(40, 40, 40, 255)
	lineColor   = rl.NewColor(80, 80, 80, 255)
	logBgColor  = rl.NewColor(24, 24, 24, 240)
	errorColor  = rl.NewColor(255, 120, 110, 255)
	promptColor = rl.White
)

// Console reads commands typed by the user. It starts closed.
type Console struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
	font     rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	history  []string
	histPos  int
	lastErr  string
}

// New returns a console that logs lines and runs them through reg.
func New(log *logger.Logger, reg *commands.Registry) *Console {
	return &Console{log: log, reg: reg}
}

// IsOpen returns true when the console is visible and capturing keyboard input.
func (c *Console) IsOpen() bool {
	return c.open
}

// SetFont sets the font used to draw the console (e.g. same as UI). Zero texture ID = use raylib default.
func (c *Console) SetFont(font rl.Font) {
	c.font = font
}

// Update handles ESC (toggle open/closed), and when open: typing, paste, history, backspace, enter. Call once per frame.
func (c *Console) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		c.open = !c.open
		return
	}
	if !c.open {
		return
	}
	// Paste: Ctrl+V (Windows/Linux) or Cmd+V (macOS)
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			c.inputBuf += pasted
		}
	} else {
		for {
			r := rl.GetCharPressed()
			if r == 0 {
				break
			}
			c.inputBuf += string(rune(r))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(c.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(c.inputBuf)
		c.inputBuf = c.inputBuf[:len(c.inputBuf)-size]
	}
	if rl.IsKeyPressed(rl.KeyUp) && c.histPos > 0 {
		c.histPos--
		c.inputBuf = c.history[c.histPos]
	}
	if rl.IsKeyPressed(rl.KeyDown) && c.histPos < len(c.history) {
		c.histPos++
		c.inputBuf = ""
		if c.histPos < len(c.history) {
			c.inputBuf = c.history[c.histPos]
		}
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && c.inputBuf != "" {
		c.Submit(c.inputBuf)
		c.inputBuf = ""
	}
}

// Submit logs line and executes it. Errors are logged and shown under the prompt.
func (c *Console) Submit(line string) {
	c.log.Log(prompt + line)
	c.history = append(c.history, line)
	if len(c.history) > maxHistory {
		c.history = c.history[len(c.history)-maxHistory:]
	}
	c.histPos = len(c.history)
	c.lastErr = ""
	if line == "help" {
		for _, h := range c.reg.Help() {
			c.log.Log("  " + h)
		}
		return
	}
	if err := c.reg.ExecuteLine(line); err != nil {
		c.lastErr = err.Error()
		c.log.Log(c.lastErr)
	}
}

// Draw draws the bar at the bottom when open, and the recent log lines above it.
// Uses GetScreenWidth/GetScreenHeight so the bar matches the 2D overlay coordinate system (correct in fullscreen).
func (c *Console) Draw() {
	if !c.open {
		return
	}
	screenW := int(rl.GetScreenWidth())
	screenH := int(rl.GetScreenHeight())
	barY := screenH - BarHeight
	if !rl.IsWindowFullscreen() {
		barY -= WindowedBarOffset
	}

	logHeight := maxLinesOnScreen * lineHeight
	logY := barY - logHeight
	if logY < 0 {
		logHeight = barY
		logY = 0
	}
	if logHeight > 0 {
		rl.DrawRectangle(0, int32(logY), int32(screenW), int32(logHeight), logBgColor)
	}
	lines := c.log.Lines()
	start := 0
	if len(lines) > maxLinesOnScreen {
		start = len(lines) - maxLinesOnScreen
	}
	for i := start; i < len(lines); i++ {
		y := logY + (i-start)*lineHeight + padding
		line := lines[i]
		if len(line) > maxLineLen {
			line = line[:maxLineLen-3] + "..."
		}
		col := rl.LightGray
		if c.lastErr != "" && i == len(lines)-1 {
			col = errorColor
		}
		c.text(line, padding, y, col)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), int32(BarHeight), barColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, lineColor)
	c.text(prompt+c.inputBuf+"|", padding, barY+padding, promptColor)
}

func (c *Console) text(s string, x, y int, col rl.Color) {
	if c.font.Texture.ID != 0 {
		rl.DrawTextEx(c.font, s, rl.NewVector2(float32(x), float32(y)), fontSize, 1, col)
		return
	}
	rl.DrawText(s, int32(x), int32(y), fontSize, col)
}
