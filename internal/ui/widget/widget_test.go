package widget

import (
	"image/color"
	"strings"
	"testing"

	"arshapes/internal/ar"
	"arshapes/internal/material"
	"arshapes/internal/scene"
	"arshapes/internal/selection"
	"arshapes/internal/shape"
	"arshapes/internal/ui/style"
)

const css = `
#shapes { left: 10px; top: 20px; gap: 5px; }
.chip { width: 100px; height: 30px; background: #222222; }
.chip-checked { background: #3a7bd5; }
.toast { left: 50%; top: 100%; width: 200px; height: 20px; gap: 4px; }
.inspector { left: 100%; top: 0%; padding: 10px; }
.inspector-line { font-size: 16px; padding: 4px; }
`

func TestChipLayoutMarksChecked(t *testing.T) {
	sheet := style.Parse(css)
	g := selection.NewShapeGroup()
	chips := &ChipGroup{ID: "shapes", Group: g, Labels: map[string]string{selection.IDCube: "Cube"}}

	boxes := chips.Layout(sheet, 800, 600)
	if len(boxes) != 3 {
		t.Fatalf("got %d boxes", len(boxes))
	}
	if boxes[0].Rect != (style.Rect{X: 10, Y: 20, W: 100, H: 30}) || boxes[1].Rect.X != 115 {
		t.Fatalf("rects = %+v, %+v", boxes[0].Rect, boxes[1].Rect)
	}
	if boxes[0].Text != "Cube" || boxes[1].Text != "sphere" {
		t.Fatalf("labels = %q, %q", boxes[0].Text, boxes[1].Text)
	}
	checked := color.RGBA{0x3a, 0x7b, 0xd5, 255}
	if boxes[0].Style.Background != checked || boxes[1].Style.Background == checked {
		t.Fatal("checked styling not applied to the checked chip only")
	}
}

func TestChipClickChecks(t *testing.T) {
	sheet := style.Parse(css)
	g := selection.NewMaterialGroup()
	chips := &ChipGroup{ID: "shapes", Group: g}

	id, ok := chips.Click(sheet, 800, 600, 230, 25) // third chip starts at x=220
	if !ok || id != selection.IDCustom || g.CheckedID() != selection.IDCustom {
		t.Fatalf("Click = %q, %v; checked %q", id, ok, g.CheckedID())
	}
	if _, ok := chips.Click(sheet, 800, 600, 112, 25); ok {
		t.Fatal("click in the gap checked an option")
	}
	if g.CheckedID() != selection.IDCustom {
		t.Fatal("missed click changed the selection")
	}
}

func TestToastsStackUpward(t *testing.T) {
	boxes := Toasts(style.Parse(css), []string{"old", "new"}, 800, 600)
	if len(boxes) != 2 {
		t.Fatalf("got %d toasts", len(boxes))
	}
	if boxes[1].Rect != (style.Rect{X: 300, Y: 580, W: 200, H: 20}) {
		t.Fatalf("newest toast at %+v", boxes[1].Rect)
	}
	if boxes[0].Rect.Y != 556 || boxes[0].Text != "old" {
		t.Fatalf("older toast = %+v", boxes[0])
	}
}

func TestInspectorPanel(t *testing.T) {
	if Inspect(nil) != nil {
		t.Fatal("nil node inspected")
	}
	m := &material.Material{Name: "wood", Kind: material.KindTexture}
	n := scene.NewNode(shape.Generate(shape.Sphere, 0.3, m))
	n.SetParent(scene.NewAnchorNode(ar.NewAnchor(ar.Pose{Position: ar.V3(1, 0, -2)})))
	n.Transform.Yaw = 90

	lines := Inspect(n)
	want := []string{"Shape: sphere", "Material: texture (wood)", "Position: 1.00, 0.00, -2.00", "Scale: 1.00", "Yaw: 90°"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Fatalf("Inspect = %q", lines)
	}

	n.Renderable.SetMaterial(nil)
	if got := Inspect(n)[1]; got != "Material: none (not loaded)" {
		t.Fatalf("unloaded material line = %q", got)
	}

	boxes := Panel(style.Parse(css), "inspector", lines, 800, 600)
	if len(boxes) != 6 {
		t.Fatalf("got %d boxes", len(boxes))
	}
	panel := boxes[0].Rect
	// 5 lines of 20px plus 10px padding on both sides.
	if panel != (style.Rect{X: 500, Y: 0, W: 300, H: 120}) {
		t.Fatalf("panel = %+v", panel)
	}
	if boxes[1].Rect.Y != 10 || boxes[2].Rect.Y != 30 || boxes[1].Rect.X != 510 {
		t.Fatalf("lines at %+v, %+v", boxes[1].Rect, boxes[2].Rect)
	}
}
