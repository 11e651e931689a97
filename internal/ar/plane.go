package ar

import (
	"fmt"

	"github.com/chewxy/math32"
)

// PlaneType is the runtime's classification of a detected flat surface.
type PlaneType int

const (
	HorizontalUpwardFacing PlaneType = iota
	HorizontalDownwardFacing
	Vertical
)

func (t PlaneType) String() string {
	switch t {
	case HorizontalUpwardFacing:
		return "horizontal_upward_facing"
	case HorizontalDownwardFacing:
		return "horizontal_downward_facing"
	case Vertical:
		return "vertical"
	}
	return fmt.Sprintf("PlaneType(%d)", int(t))
}

// ParsePlaneType parses the names used in config files ("horizontal_upward_facing", "up", ...).
func ParsePlaneType(s string) (PlaneType, error) {
	switch s {
	case "horizontal_upward_facing", "up", "floor":
		return HorizontalUpwardFacing, nil
	case "horizontal_downward_facing", "down", "ceiling":
		return HorizontalDownwardFacing, nil
	case "vertical", "wall":
		return Vertical, nil
	}
	return 0, fmt.Errorf("ar: unknown plane type %q", s)
}

// IsHorizontal reports whether the plane type is one of the two horizontal kinds.
func (t PlaneType) IsHorizontal() bool {
	return t == HorizontalUpwardFacing || t == HorizontalDownwardFacing
}

// Plane is a detected planar surface. Center is the plane's center pose; ExtentX and
// ExtentZ are the full sizes along the plane's local axes. Normal points away from the
// surface (up for floors, down for ceilings, horizontal for walls).
type Plane struct {
	ID      string
	Type    PlaneType
	Center  Pose
	Normal  Vec3
	ExtentX float32
	ExtentZ float32
}

// Intersect returns the hit of r with the bounded plane, if any. Hits behind the ray
// origin, parallel rays and points outside the extents are misses.
func (p *Plane) Intersect(r Ray) (HitResult, bool) {
	n := p.Normal.Normalize()
	denom := n.Dot(r.Dir)
	if math32.Abs(denom) < 1e-6 {
		return HitResult{}, false
	}
	t := n.Dot(p.Center.Position.Sub(r.Origin)) / denom
	if t < 0 {
		return HitResult{}, false
	}
	point := r.At(t)
	if !p.contains(point, n) {
		return HitResult{}, false
	}
	return HitResult{Pose: Pose{Position: point}, Distance: t, Plane: p}, true
}

// contains checks the in-plane extents. For horizontal planes the local axes are world
// X and Z; for vertical planes the horizontal axis is perpendicular to the normal and
// ExtentZ spans world Y.
func (p *Plane) contains(point, n Vec3) bool {
	d := point.Sub(p.Center.Position)
	hx, hz := p.ExtentX/2, p.ExtentZ/2
	if p.Type.IsHorizontal() {
		return math32.Abs(d.X) <= hx && math32.Abs(d.Z) <= hz
	}
	side := Vec3{X: -n.Z, Y: 0, Z: n.X}.Normalize()
	return math32.Abs(d.Dot(side)) <= hx && math32.Abs(d.Y) <= hz
}
