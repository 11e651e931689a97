// Package physics animates freshly placed shapes settling onto their anchors. Each body
// starts a drop height above its rest position, falls under gravity and bounces until it
// comes to rest. Bodies only carry a vertical offset; anchors and hit testing always use
// the rest pose.
package physics

import "github.com/chewxy/math32"

const (
	DefaultGravity     = -9.8
	DefaultRestitution = 0.35
	DefaultDropHeight  = 0.25

	// restSpeed is the bounce speed below which a body stops.
	restSpeed = 0.05
	// maxStep caps one integration step so a stalled frame does not tunnel the body.
	maxStep = 1.0 / 30
)

// Body is one falling shape.
type Body struct {
	Height   float32 // above the rest position, never negative
	Velocity float32 // vertical, meters per second
}

// World holds the bodies still in flight, keyed by whatever the caller draws.
type World[K comparable] struct {
	Gravity     float32
	Restitution float32
	DropHeight  float32

	bodies map[K]*Body
}

// NewWorld returns a world with default gravity, restitution and drop height.
func NewWorld[K comparable]() *World[K] {
	return &World[K]{
		Gravity:     DefaultGravity,
		Restitution: DefaultRestitution,
		DropHeight:  DefaultDropHeight,
		bodies:      make(map[K]*Body),
	}
}

// Drop starts k falling from DropHeight. A zero or negative DropHeight disables the
// animation.
func (w *World[K]) Drop(k K) {
	if w.DropHeight <= 0 {
		return
	}
	w.bodies[k] = &Body{Height: w.DropHeight}
}

// Offset is the height of k above its rest position, 0 once it has settled.
func (w *World[K]) Offset(k K) float32 {
	if b, ok := w.bodies[k]; ok {
		return b.Height
	}
	return 0
}

// Active is the number of bodies still moving.
func (w *World[K]) Active() int {
	return len(w.bodies)
}

// Remove forgets k.
func (w *World[K]) Remove(k K) {
	delete(w.bodies, k)
}

// Retain forgets every body for which keep returns false.
func (w *World[K]) Retain(keep func(K) bool) {
	for k := range w.bodies {
		if !keep(k) {
			delete(w.bodies, k)
		}
	}
}

// Step advances every body by dt seconds and drops the ones that came to rest.
func (w *World[K]) Step(dt float32) {
	if dt <= 0 {
		return
	}
	for dt > 0 {
		h := math32.Min(dt, maxStep)
		dt -= h
		for k, b := range w.bodies {
			if w.step(b, h) {
				delete(w.bodies, k)
			}
		}
	}
}

// step integrates one body and reports whether it is at rest.
func (w *World[K]) step(b *Body, dt float32) bool {
	b.Velocity += w.Gravity * dt
	b.Height += b.Velocity * dt
	if b.Height > 0 {
		return false
	}
	b.Height = 0
	b.Velocity = -b.Velocity * w.Restitution
	// A bounce slower than one step of gravity cannot lift the body for a full step.
	if math32.Abs(b.Velocity) < math32.Max(restSpeed, math32.Abs(w.Gravity)*dt) {
		b.Velocity = 0
		return true
	}
	return false
}
