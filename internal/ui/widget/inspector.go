package widget

import (
	"fmt"

	"arshapes/internal/material"
	"arshapes/internal/scene"
)

// Inspect describes the selected node for the inspector panel: shape, material, position,
// scale and yaw.
func Inspect(n *scene.Node) []string {
	if n == nil || n.Renderable == nil {
		return nil
	}
	p := n.WorldPosition()
	return []string{
		"Shape: " + n.Renderable.Kind.String(),
		"Material: " + describeMaterial(n.Renderable.Material),
		fmt.Sprintf("Position: %.2f, %.2f, %.2f", p.X, p.Y, p.Z),
		fmt.Sprintf("Scale: %.2f", n.Transform.Scale),
		fmt.Sprintf("Yaw: %.0f°", n.Transform.Yaw),
	}
}

func describeMaterial(m *material.Material) string {
	if m == nil {
		return "none (not loaded)"
	}
	s := m.Kind.String()
	if m.Name != "" {
		s += " (" + m.Name + ")"
	}
	return s
}
