package sim

import "arshapes/internal/ar"

// Device reports what the simulated host supports. The zero value is an unknown device
// with no graphics version, which the capability gate lets through.
type Device struct {
	Availability ar.Availability
	// GLVersion is the version string the graphics driver would report (e.g. "3.0").
	// Empty means the version could not be queried.
	GLVersion string
}

// CheckAvailability implements capability.AvailabilityChecker.
func (d Device) CheckAvailability() ar.Availability {
	return d.Availability
}

// GLESVersion implements capability.GraphicsInfo.
func (d Device) GLESVersion() (string, bool) {
	return d.GLVersion, d.GLVersion != ""
}
