// Package viewer is the interactive simulator: it owns the camera, turns mouse and keyboard
// input into taps and gestures, and draws the scene and overlay each frame.
package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"arshapes/internal/ar"
	"arshapes/internal/commands"
	"arshapes/internal/console"
	"arshapes/internal/debug"
	"arshapes/internal/logger"
	"arshapes/internal/material"
	"arshapes/internal/physics"
	"arshapes/internal/placement"
	"arshapes/internal/render"
	"arshapes/internal/scene"
	"arshapes/internal/selection"
	"arshapes/internal/sim"
	"arshapes/internal/ui"
	"arshapes/internal/ui/widget"
)

// Input tuning.
const (
	rotateSpeed = 0.005 // radians per pixel of drag
	panSpeed    = 0.004 // meters per pixel of drag, per meter of distance
	keyPanSpeed = 2.0   // meters per second
	zoomStep    = 0.1
	rotateStep  = 15 // degrees per key press
	scaleUpStep = 1.1
	scaleDnStep = 1 / 1.1
)

// Chip row ids, matched by "#shapes" and "#materials" in the stylesheet.
const (
	shapesRow    = "shapes"
	materialsRow = "materials"
)

// Options wires a View to the rest of the app.
type Options struct {
	Log       *logger.Logger
	Session   *sim.Session
	Placer    *placement.Placer
	Shapes    *selection.Group
	Materials *selection.Group
	Slots     *material.Slots
	CSSPath   string // optional stylesheet file; the built-in one is used when empty or unreadable
	FontPath  string // optional TTF for overlay text
	// DropHeight is how far above its anchor a new shape starts falling. Zero disables
	// the animation.
	DropHeight float32
}

// View is the simulator's window content.
type View struct {
	log      *logger.Logger
	session  *sim.Session
	placer   *placement.Placer
	slots    *material.Slots
	shapes   *selection.Group
	mats     *selection.Group
	orbit    sim.Orbit
	camera   rl.Camera3D
	renderer *render.Renderer
	drops    *physics.World[*scene.AnchorNode]
	ui       *ui.Engine
	chips    []*widget.ChipGroup
	console  *console.Console
	debug    *debug.Debug
	cssPath  string
	fontPath string
	loaded   bool
}

// New builds a view. No GPU resources are touched until the first Draw.
func New(o Options) *View {
	if o.Placer.Transforms == nil {
		o.Placer.Transforms = &scene.TransformSystem{}
	}
	v := &View{
		log:      o.Log,
		session:  o.Session,
		placer:   o.Placer,
		slots:    o.Slots,
		shapes:   o.Shapes,
		mats:     o.Materials,
		orbit:    sim.DefaultOrbit(),
		renderer: render.New(),
		drops:    physics.NewWorld[*scene.AnchorNode](),
		ui:       ui.New(),
		debug:    debug.New(),
		cssPath:  o.CSSPath,
		fontPath: o.FontPath,
	}
	v.chips = []*widget.ChipGroup{
		{ID: shapesRow, Group: o.Shapes, Labels: map[string]string{
			selection.IDCube: "Cube", selection.IDSphere: "Sphere", selection.IDCylinder: "Cylinder",
		}},
		{ID: materialsRow, Group: o.Materials, Labels: map[string]string{
			selection.IDColor: "Color", selection.IDTexture: "Texture", selection.IDCustom: "Custom",
		}},
	}
	v.drops.DropHeight = o.DropHeight
	reg := commands.NewRegistry()
	commands.RegisterApp(reg, v, v.log.Log)
	v.console = console.New(v.log, reg)
	v.debug.Stats = v.stats
	v.camera = rl.Camera3D{
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}
	v.syncCamera()
	return v
}

// Debug returns the overlay switches, e.g. to apply config defaults.
func (v *View) Debug() *debug.Debug {
	return v.debug
}

// load runs once the window exists: stylesheet and font.
func (v *View) load() {
	if v.loaded {
		return
	}
	v.loaded = true
	v.ui.SetStylesheet(ui.DefaultStylesheet())
	if v.cssPath != "" {
		if err := v.ui.LoadCSS(v.cssPath); err != nil {
			v.log.Logf("stylesheet %s: %v, using built-in style", v.cssPath, err)
		}
	}
	if v.fontPath != "" {
		if err := v.ui.LoadFont(v.fontPath); err != nil {
			v.log.Logf("font %s: %v", v.fontPath, err)
		} else {
			v.console.SetFont(v.ui.Font())
			v.debug.SetFont(v.ui.Font())
		}
	}
}

func (v *View) syncCamera() {
	v.camera.Position = vec(v.orbit.Position())
	v.camera.Target = vec(v.orbit.Target)
}

// Update handles one frame of input. Call once per frame before Draw.
func (v *View) Update() {
	v.updateDrops()
	v.console.Update()
	if v.console.IsOpen() {
		return
	}
	v.updateCamera()
	v.updateKeys()
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		v.click(rl.GetMousePosition())
	}
}

// updateDrops advances falling shapes and forgets the ones removed from the scene.
func (v *View) updateDrops() {
	if v.drops.Active() == 0 {
		return
	}
	live := make(map[*scene.AnchorNode]bool)
	for _, a := range v.placer.Root.Children() {
		live[a] = true
	}
	v.drops.Retain(func(a *scene.AnchorNode) bool { return live[a] })
	v.drops.Step(rl.GetFrameTime())
}

func (v *View) updateCamera() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.orbit.Zoom(1 - wheel*zoomStep)
	}
	delta := rl.GetMouseDelta()
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		v.orbit.Rotate(-delta.X*rotateSpeed, delta.Y*rotateSpeed)
	}
	if rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		s := panSpeed * v.orbit.Distance
		v.orbit.Pan(-delta.X*s, delta.Y*s)
	}
	step := keyPanSpeed * rl.GetFrameTime()
	var right, forward float32
	if rl.IsKeyDown(rl.KeyW) {
		forward += step
	}
	if rl.IsKeyDown(rl.KeyS) {
		forward -= step
	}
	if rl.IsKeyDown(rl.KeyD) {
		right += step
	}
	if rl.IsKeyDown(rl.KeyA) {
		right -= step
	}
	if right != 0 || forward != 0 {
		v.orbit.Pan(right, forward)
	}
	v.syncCamera()
}

func (v *View) updateKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyDelete), rl.IsKeyPressed(rl.KeyBackspace):
		v.RemoveSelected()
	case rl.IsKeyPressed(rl.KeyQ):
		v.RotateSelected(-rotateStep)
	case rl.IsKeyPressed(rl.KeyE):
		v.RotateSelected(rotateStep)
	case rl.IsKeyPressed(rl.KeyEqual), rl.IsKeyPressed(rl.KeyKpAdd):
		v.ScaleSelected(scaleUpStep)
	case rl.IsKeyPressed(rl.KeyMinus), rl.IsKeyPressed(rl.KeyKpSubtract):
		v.ScaleSelected(scaleDnStep)
	case rl.IsKeyPressed(rl.KeyF1):
		v.SetShowFPS(!v.debug.ShowFPS)
	case rl.IsKeyPressed(rl.KeyF2):
		v.SetShowPlanes(!v.debug.ShowPlanes)
	}
}

// click routes a left click: chips first, then the scene.
func (v *View) click(pos rl.Vector2) {
	sw, sh := ui.ScreenSize()
	x, y := int32(pos.X), int32(pos.Y)
	for _, c := range v.chips {
		if id, ok := c.Click(v.ui.Stylesheet(), sw, sh, x, y); ok {
			v.log.Logf("%s: %s", c.ID, id)
			return
		}
	}
	r := rl.GetScreenToWorldRay(pos, v.camera)
	ray := ar.Ray{
		Origin: ar.V3(r.Position.X, r.Position.Y, r.Position.Z),
		Dir:    ar.V3(r.Direction.X, r.Direction.Y, r.Direction.Z),
	}
	res, err := v.placer.Dispatch(ray)
	switch {
	case err != nil:
		v.log.Notify(err.Error())
	case res.Placed != nil:
		v.drops.Drop(res.Placed)
		p := res.Placed.Position()
		v.log.Logf("placed %s on %s at %.2f, %.2f, %.2f", v.placer.Resolver.ResolveShapeKind(), res.Plane.ID, p.X, p.Y, p.Z)
	case res.Plane != nil && res.Node == nil:
		v.log.Logf("tap on %s plane %s ignored", res.Plane.Type, res.Plane.ID)
	}
}

// Draw renders the scene and the overlay. Call between BeginDrawing and EndDrawing.
func (v *View) Draw() {
	v.load()
	selected := v.placer.Transforms.Selected()

	rl.BeginMode3D(v.camera)
	render.DrawGrid()
	v.renderer.Begin(v.session.LightEstimate(), v.orbit.Position())
	for _, n := range v.placer.Root.Nodes() {
		v.renderer.DrawNode(n, v.drops.Offset(n.Parent()), n == selected)
	}
	if v.debug.ShowPlanes {
		v.renderer.DrawPlanes(v.session.Planes())
	}
	rl.EndMode3D()

	sw, sh := ui.ScreenSize()
	sheet := v.ui.Stylesheet()
	for _, c := range v.chips {
		v.ui.Draw(c.Layout(sheet, sw, sh))
	}
	if lines := widget.Inspect(selected); lines != nil {
		v.ui.Draw(widget.Panel(sheet, "inspector", lines, sw, sh))
	}
	if toasts := v.log.Toasts(); len(toasts) > 0 {
		texts := make([]string, len(toasts))
		for i, t := range toasts {
			texts[i] = t.Text
		}
		v.ui.Draw(widget.Toasts(sheet, texts, sw, sh))
	}
	v.console.Draw()
	v.debug.Draw()
}

// Close releases GPU resources. Call before the window closes.
func (v *View) Close() {
	v.renderer.Unload()
	v.ui.Unload()
}

func (v *View) stats() debug.Stats {
	s := debug.Stats{Anchors: len(v.session.Anchors()), Planes: len(v.session.Planes())}
	for _, k := range []material.Kind{material.KindColor, material.KindTexture, material.KindCustom} {
		slot := v.slots.For(k)
		switch {
		case slot.Ready():
			s.Loaded++
		case slot.Settled():
			s.Failed++
		}
	}
	return s
}

func vec(p ar.Vec3) rl.Vector3 {
	return rl.NewVector3(p.X, p.Y, p.Z)
}
