package ar

import "github.com/google/uuid"

// Pose is a fixed position in world space. Shapes placed by this app are never rotated
// by their anchor, so orientation is not tracked.
type Pose struct {
	Position Vec3
}

// HitResult is the intersection of a screen tap with a tracked plane.
type HitResult struct {
	Pose     Pose
	Distance float32
	Plane    *Plane
}

// Anchor is a pose fixed in the real world and tracked by the runtime across frames.
type Anchor struct {
	ID       uuid.UUID
	Pose     Pose
	detached bool
}

// NewAnchor returns a tracking anchor at pose with a fresh id.
func NewAnchor(pose Pose) *Anchor {
	return &Anchor{ID: uuid.New(), Pose: pose}
}

// Detach stops tracking. It is safe to call more than once.
func (a *Anchor) Detach() {
	a.detached = true
}

// Tracking reports whether the anchor is still tracked.
func (a *Anchor) Tracking() bool {
	return !a.detached
}
