package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh text every N frames to reduce allocations.
	updateInterval = 30
)

// Stats are the scene counters shown under the FPS line.
type Stats struct {
	Anchors int
	Planes  int
	Loaded  int // material pipelines that produced a material
	Failed  int // material pipelines that settled with an error
}

// Debug holds runtime overlays (FPS, memory, scene stats) and the plane visualization
// switch. All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowPlanes   bool
	// Stats, if set, is polled for the stats line drawn with the FPS counter.
	Stats func() Stats

	font         rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	frameCount   uint32
	lines        []string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter and stats are drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
	d.lines = nil
}

// SetShowMemAlloc sets whether the memory allocation counter is drawn.
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
	d.lines = nil
}

// SetShowPlanes sets whether tracked planes are drawn.
func (d *Debug) SetShowPlanes(show bool) {
	d.ShowPlanes = show
}

// SetFont sets the font used to draw overlays. Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// Draw renders any enabled overlays at the top right. Call last in the draw loop.
// Text is only recomputed every updateInterval frames to limit allocations.
func (d *Debug) Draw() {
	d.frameCount++
	if d.lines == nil || d.frameCount%updateInterval == 0 {
		d.refresh()
	}
	screenW := float32(rl.GetScreenWidth())
	y := float32(padding)
	for _, text := range d.lines {
		if d.font.Texture.ID != 0 {
			w := rl.MeasureTextEx(d.font, text, fontSize, 1).X
			rl.DrawTextEx(d.font, text, rl.NewVector2(screenW-w-padding, y), fontSize, 1, rl.Green)
		} else {
			w := float32(rl.MeasureText(text, fontSize))
			rl.DrawText(text, int32(screenW-w-padding), int32(y), fontSize, rl.Green)
		}
		y += lineHeight
	}
}

func (d *Debug) refresh() {
	d.lines = d.lines[:0]
	if d.ShowFPS {
		d.lines = append(d.lines, fmt.Sprintf("FPS: %d", rl.GetFPS()))
		if d.Stats != nil {
			s := d.Stats()
			d.lines = append(d.lines, fmt.Sprintf("Anchors: %d  Planes: %d", s.Anchors, s.Planes))
			d.lines = append(d.lines, fmt.Sprintf("Materials: %d loaded, %d failed", s.Loaded, s.Failed))
		}
	}
	if d.ShowMemAlloc {
		runtime.ReadMemStats(&d.lastMemStats)
		d.lines = append(d.lines, fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024)))
	}
}
