package viewer

// The methods below implement commands.Controls for the console.

func (v *View) SelectShape(id string) error {
	return v.shapes.Check(id)
}

func (v *View) SelectMaterial(id string) error {
	return v.mats.Check(id)
}

func (v *View) RemoveSelected() bool {
	n := v.placer.Transforms.Selected()
	if n == nil || n.Parent() == nil {
		return false
	}
	return v.placer.Remove(n.Parent())
}

func (v *View) ClearScene() {
	v.placer.Clear()
}

func (v *View) ScaleSelected(f float32) bool {
	return v.placer.Transforms.ScaleBy(f)
}

func (v *View) RotateSelected(deg float32) bool {
	return v.placer.Transforms.RotateBy(deg)
}

func (v *View) SetShowFPS(show bool) {
	v.debug.SetShowFPS(show)
}

func (v *View) SetShowPlanes(show bool) {
	v.debug.SetShowPlanes(show)
}
