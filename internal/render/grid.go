package render

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	gridExtent     = 10
	gridMajorStep  = 5
	gridMinorAlpha = 40
	gridMajorAlpha = 100
	axisLineAlpha  = 200
)

// DrawGrid draws a reference grid on the XZ plane (Y=0), one line per meter, with the X
// and Z axes highlighted.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func DrawGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i++ {
		c := minor
		if i%gridMajorStep == 0 {
			c = major
		}
		start.X, start.Y, start.Z = float32(i), 0, -gridExtent
		end.X, end.Y, end.Z = float32(i), 0, gridExtent
		if i == 0 {
			rl.DrawLine3D(start, end, axisZ)
		} else {
			rl.DrawLine3D(start, end, c)
		}
		start.X, start.Y, start.Z = -gridExtent, 0, float32(i)
		end.X, end.Y, end.Z = gridExtent, 0, float32(i)
		if i == 0 {
			rl.DrawLine3D(start, end, axisX)
		} else {
			rl.DrawLine3D(start, end, c)
		}
	}
}
