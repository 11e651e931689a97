// Package sim is a desktop stand-in for an AR runtime. Planes are declared up front
// instead of detected from a camera feed; everything else (hit testing, anchors, session
// configuration, light estimation) behaves like the runtime the app is written against.
package sim

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"arshapes/internal/ar"
)

// ErrNotConfigured is returned by CreateAnchor before Configure has been called.
var ErrNotConfigured = errors.New("sim: session not configured")

// Session implements ar.Session over a fixed set of planes.
type Session struct {
	mu         sync.Mutex
	planes     []*ar.Plane
	anchors    []*ar.Anchor
	cfg        ar.SessionConfig
	configured bool
	light      ar.LightEstimate
}

// NewSession returns a session that tracks the given planes once configured.
// light is reported by LightEstimate when light estimation is enabled.
func NewSession(planes []*ar.Plane, light ar.LightEstimate) *Session {
	light.Valid = true
	return &Session{planes: planes, light: light}
}

// Configure applies cfg. Planes whose type the plane finding mode excludes stop being
// reported and hit tested.
func (s *Session) Configure(cfg ar.SessionConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.configured = true
	return nil
}

// Config returns the applied session configuration.
func (s *Session) Config() ar.SessionConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Planes returns the planes currently tracked under the configured plane finding mode.
func (s *Session) Planes() []*ar.Plane {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trackedLocked()
}

func (s *Session) trackedLocked() []*ar.Plane {
	if !s.configured {
		return nil
	}
	out := make([]*ar.Plane, 0, len(s.planes))
	for _, p := range s.planes {
		if s.cfg.PlaneFinding.Allows(p.Type) {
			out = append(out, p)
		}
	}
	return out
}

// HitTest intersects r with every tracked plane and returns the hits nearest first.
func (s *Session) HitTest(r ar.Ray) []ar.HitResult {
	s.mu.Lock()
	planes := s.trackedLocked()
	s.mu.Unlock()

	var hits []ar.HitResult
	for _, p := range planes {
		if hit, ok := p.Intersect(r); ok {
			hits = append(hits, hit)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}

// CreateAnchor starts tracking a new anchor at the hit pose.
func (s *Session) CreateAnchor(hit ar.HitResult) (*ar.Anchor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.configured {
		return nil, ErrNotConfigured
	}
	if hit.Plane == nil {
		return nil, fmt.Errorf("sim: hit result has no plane")
	}
	a := ar.NewAnchor(hit.Pose)
	s.anchors = append(s.anchors, a)
	return a, nil
}

// RemoveAnchor detaches a and stops tracking it. Unknown anchors are only detached.
func (s *Session) RemoveAnchor(a *ar.Anchor) {
	if a == nil {
		return
	}
	a.Detach()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tracked := range s.anchors {
		if tracked == a {
			s.anchors = append(s.anchors[:i], s.anchors[i+1:]...)
			return
		}
	}
}

// Anchors returns the anchors currently tracked.
func (s *Session) Anchors() []*ar.Anchor {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*ar.Anchor, len(s.anchors))
	copy(out, s.anchors)
	return out
}

// LightEstimate returns the configured estimate, or an invalid one when light estimation
// is disabled.
func (s *Session) LightEstimate() ar.LightEstimate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.configured || s.cfg.LightEstimation == ar.LightEstimationDisabled {
		return ar.LightEstimate{}
	}
	est := s.light
	if s.cfg.LightEstimation == ar.LightEstimationAmbientIntensity {
		// Ambient intensity mode has no directional component.
		est.MainLightDir = ar.Vec3{}
	}
	return est
}
