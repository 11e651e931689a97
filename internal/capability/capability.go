// Package capability decides at startup whether the host can run an AR session at all.
package capability

import (
	"regexp"
	"strconv"

	"arshapes/internal/ar"
)

// MinGLVersion is the lowest OpenGL ES version the renderer supports.
const MinGLVersion = 3.0

const (
	MsgRuntimeUnsupported = "arshapes requires an AR runtime"
	MsgGraphicsTooOld     = "Rendering requires OpenGL ES 3.0 or later"
)

// AvailabilityChecker asks the AR runtime whether this device is capable.
type AvailabilityChecker interface {
	CheckAvailability() ar.Availability
}

// GraphicsInfo reports the installed graphics API version string. ok is false when it
// cannot be queried.
type GraphicsInfo interface {
	GLESVersion() (version string, ok bool)
}

// Notifier shows a message to the user.
type Notifier interface {
	Notify(msg string)
}

// Gate runs the startup check. Finish is called when the session must terminate.
type Gate struct {
	Runtime  AvailabilityChecker
	Graphics GraphicsInfo
	Notifier Notifier
	Finish   func()
	// MinVersion overrides MinGLVersion when non-zero.
	MinVersion float64
}

// CheckDeviceSupported returns false, after notifying the user and requesting finish,
// when the runtime reports the device as not capable or when the graphics version is
// below the minimum. An unknown graphics version counts as supported.
func (g *Gate) CheckDeviceSupported() bool {
	if g.Runtime != nil && g.Runtime.CheckAvailability() == ar.UnsupportedDeviceNotCapable {
		g.fail(MsgRuntimeUnsupported)
		return false
	}
	if g.Graphics == nil {
		return true
	}
	s, ok := g.Graphics.GLESVersion()
	if !ok {
		return true
	}
	v, ok := ParseGLVersion(s)
	if !ok {
		return true
	}
	if v < g.minVersion() {
		g.fail(MsgGraphicsTooOld)
		return false
	}
	return true
}

func (g *Gate) minVersion() float64 {
	if g.MinVersion > 0 {
		return g.MinVersion
	}
	return MinGLVersion
}

func (g *Gate) fail(msg string) {
	if g.Notifier != nil {
		g.Notifier.Notify(msg)
	}
	if g.Finish != nil {
		g.Finish()
	}
}

var glVersionRe = regexp.MustCompile(`\d+(\.\d+)?`)

// ParseGLVersion extracts the leading "major.minor" number from a driver version string
// such as "3.0", "OpenGL ES 3.2 v1.r26" or "3.3.0 NVIDIA 535".
func ParseGLVersion(s string) (float64, bool) {
	m := glVersionRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
