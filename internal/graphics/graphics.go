package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"arshapes/internal/config"
)

var background = rl.NewColor(18, 20, 26, 255)

// Run opens the window described by w and runs the main loop until the window is closed.
// Each frame it calls update (input, taps), then clears the screen and calls draw.
// ESC toggles the console, so it does not quit; close via the window button.
// onClose runs before the window is destroyed, while GPU resources can still be released.
func Run(w config.Window, update, draw, onClose func()) {
	flags := uint32(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	width, height := int32(w.Width), int32(w.Height)
	if w.Fullscreen {
		flags |= rl.FlagFullscreenMode
		width, height = 0, 0
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(width, height, w.Title)
	defer rl.CloseWindow()
	if onClose != nil {
		defer onClose()
	}

	rl.SetExitKey(rl.KeyNull)
	fps := int32(w.TargetFPS)
	if fps <= 0 {
		fps = 60
	}
	rl.SetTargetFPS(fps)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(background)
		draw()
		rl.EndDrawing()
	}
}
