package scene

import "github.com/chewxy/math32"

// Scale limits applied by the transform system.
const (
	MinScale = 0.75
	MaxScale = 1.75
)

// Transform is the user-adjustable part of a node's pose: uniform scale and rotation
// about the vertical axis, in degrees.
type Transform struct {
	Scale float32
	Yaw   float32
}

// Identity is the transform of a freshly placed node.
func Identity() Transform {
	return Transform{Scale: 1}
}

// TransformSystem tracks the selected node and applies scale and rotate gestures to it.
type TransformSystem struct {
	selected *Node
}

// Select makes n the target of later gestures. nil clears the selection.
func (ts *TransformSystem) Select(n *Node) {
	ts.selected = n
}

// Selected returns the selected node, or nil.
func (ts *TransformSystem) Selected() *Node {
	return ts.selected
}

// ScaleBy multiplies the selected node's scale by f, clamped to [MinScale, MaxScale].
// It reports whether a node was selected.
func (ts *TransformSystem) ScaleBy(f float32) bool {
	n := ts.selected
	if n == nil || f <= 0 {
		return false
	}
	n.Transform.Scale = math32.Max(MinScale, math32.Min(MaxScale, n.Transform.Scale*f))
	return true
}

// RotateBy turns the selected node by deg degrees about Y, normalized to [0, 360).
func (ts *TransformSystem) RotateBy(deg float32) bool {
	n := ts.selected
	if n == nil {
		return false
	}
	yaw := math32.Mod(n.Transform.Yaw+deg, 360)
	if yaw < 0 {
		yaw += 360
	}
	n.Transform.Yaw = yaw
	return true
}

// Forget clears the selection if it points into the removed anchor node.
func (ts *TransformSystem) Forget(a *AnchorNode) {
	if ts.selected != nil && ts.selected.parent == a {
		ts.selected = nil
	}
}
