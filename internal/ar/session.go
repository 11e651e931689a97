package ar

import "fmt"

// PlaneFindingMode selects which plane orientations the runtime detects.
type PlaneFindingMode int

const (
	PlaneFindingDisabled PlaneFindingMode = iota
	PlaneFindingHorizontal
	PlaneFindingVertical
	PlaneFindingHorizontalAndVertical
)

// Allows reports whether planes of type t are detected in this mode.
func (m PlaneFindingMode) Allows(t PlaneType) bool {
	switch m {
	case PlaneFindingHorizontal:
		return t.IsHorizontal()
	case PlaneFindingVertical:
		return t == Vertical
	case PlaneFindingHorizontalAndVertical:
		return true
	}
	return false
}

// LightEstimationMode selects the lighting information the runtime estimates per frame.
type LightEstimationMode int

const (
	LightEstimationDisabled LightEstimationMode = iota
	LightEstimationAmbientIntensity
	LightEstimationEnvironmentalHDR
)

// SessionConfig is what the app declares to the runtime when the session starts.
type SessionConfig struct {
	PlaneFinding    PlaneFindingMode
	LightEstimation LightEstimationMode
}

// DefaultSessionConfig detects both horizontal and vertical planes and estimates
// environmental HDR lighting.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		PlaneFinding:    PlaneFindingHorizontalAndVertical,
		LightEstimation: LightEstimationEnvironmentalHDR,
	}
}

// LightEstimate is the per-frame lighting estimate. Valid is false when estimation is disabled.
type LightEstimate struct {
	Valid            bool
	AmbientIntensity float32
	AmbientColor     [3]float32
	MainLightDir     Vec3
}

// Session is the subset of the AR runtime the app drives: hit testing, anchors and
// session configuration.
type Session interface {
	Configure(cfg SessionConfig) error
	HitTest(r Ray) []HitResult
	CreateAnchor(hit HitResult) (*Anchor, error)
	RemoveAnchor(a *Anchor)
	Planes() []*Plane
	LightEstimate() LightEstimate
}

// Availability is the runtime's answer to "can this device run AR".
type Availability int

const (
	AvailabilityUnknownError Availability = iota
	AvailabilityUnknownChecking
	AvailabilityUnknownTimedOut
	SupportedInstalled
	SupportedNotInstalled
	SupportedApkTooOld
	UnsupportedDeviceNotCapable
)

var availabilityNames = map[Availability]string{
	AvailabilityUnknownError:    "unknown_error",
	AvailabilityUnknownChecking: "unknown_checking",
	AvailabilityUnknownTimedOut: "unknown_timed_out",
	SupportedInstalled:          "supported_installed",
	SupportedNotInstalled:       "supported_not_installed",
	SupportedApkTooOld:          "supported_apk_too_old",
	UnsupportedDeviceNotCapable: "unsupported_device_not_capable",
}

func (a Availability) String() string {
	if s, ok := availabilityNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Availability(%d)", int(a))
}

// ParseAvailability parses the names returned by Availability.String.
func ParseAvailability(s string) (Availability, error) {
	for a, name := range availabilityNames {
		if name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("ar: unknown availability %q", s)
}
