package sim

import (
	"github.com/chewxy/math32"

	"arshapes/internal/ar"
)

// Orbit limits.
const (
	MinPitch    = -0.2
	MaxPitch    = 1.45
	MinDistance = 0.5
	MaxDistance = 20
)

// Orbit is the simulated device pose: a camera circling Target at Distance, Pitch radians
// above the horizon and Yaw radians around the vertical axis.
type Orbit struct {
	Target   ar.Vec3
	Distance float32
	Pitch    float32
	Yaw      float32
}

// DefaultOrbit looks at the floor in front of the default wall from standing height.
func DefaultOrbit() Orbit {
	return Orbit{Target: ar.V3(0, 0.5, -1), Distance: 4, Pitch: 0.45}
}

// Position returns the camera position.
func (o Orbit) Position() ar.Vec3 {
	sp, cp := math32.Sincos(o.Pitch)
	sy, cy := math32.Sincos(o.Yaw)
	return o.Target.Add(ar.V3(o.Distance*cp*sy, o.Distance*sp, o.Distance*cp*cy))
}

// Rotate turns the camera by the given angles, keeping pitch within limits.
func (o *Orbit) Rotate(dYaw, dPitch float32) {
	o.Yaw = math32.Mod(o.Yaw+dYaw, 2*math32.Pi)
	o.Pitch = math32.Max(MinPitch, math32.Min(MaxPitch, o.Pitch+dPitch))
}

// Zoom scales the distance by f, within limits.
func (o *Orbit) Zoom(f float32) {
	if f <= 0 {
		return
	}
	o.Distance = math32.Max(MinDistance, math32.Min(MaxDistance, o.Distance*f))
}

// Pan moves the target in the horizontal plane relative to the view direction: right is
// along the camera's right vector, forward along its horizontal forward vector.
func (o *Orbit) Pan(right, forward float32) {
	sy, cy := math32.Sincos(o.Yaw)
	r := ar.V3(cy, 0, -sy)
	f := ar.V3(-sy, 0, -cy)
	o.Target = o.Target.Add(r.Scale(right)).Add(f.Scale(forward))
}
