package sim

import (
	"errors"
	"testing"

	"arshapes/internal/ar"
)

func testPlanes() []*ar.Plane {
	return []*ar.Plane{
		{ID: "ceiling", Type: ar.HorizontalDownwardFacing, Center: ar.Pose{Position: ar.V3(0, 3, 0)}, Normal: ar.V3(0, -1, 0), ExtentX: 8, ExtentZ: 8},
		{ID: "floor", Type: ar.HorizontalUpwardFacing, Normal: ar.V3(0, 1, 0), ExtentX: 8, ExtentZ: 8},
		{ID: "wall", Type: ar.Vertical, Center: ar.Pose{Position: ar.V3(0, 1.5, -4)}, Normal: ar.V3(0, 0, 1), ExtentX: 8, ExtentZ: 3},
	}
}

func TestHitTestNearestFirst(t *testing.T) {
	s := NewSession(testPlanes(), ar.LightEstimate{})
	if hits := s.HitTest(ar.Ray{Origin: ar.V3(0, 1, 0), Dir: ar.V3(0, -1, 0)}); hits != nil {
		t.Fatalf("unconfigured session returned hits %v", hits)
	}
	s.Configure(ar.DefaultSessionConfig())

	// From inside the room looking up: only the ceiling is in front.
	hits := s.HitTest(ar.Ray{Origin: ar.V3(0, 1, 0), Dir: ar.V3(0, 1, 0)})
	if len(hits) != 1 || hits[0].Plane.ID != "ceiling" {
		t.Fatalf("hits = %+v", hits)
	}
	// From above the ceiling looking down: ceiling then floor.
	hits = s.HitTest(ar.Ray{Origin: ar.V3(0, 5, 0), Dir: ar.V3(0, -1, 0)})
	if len(hits) != 2 || hits[0].Plane.ID != "ceiling" || hits[1].Plane.ID != "floor" {
		t.Fatalf("hits = %+v", hits)
	}
}

func TestPlaneFindingFilter(t *testing.T) {
	s := NewSession(testPlanes(), ar.LightEstimate{})
	s.Configure(ar.SessionConfig{PlaneFinding: ar.PlaneFindingVertical})
	planes := s.Planes()
	if len(planes) != 1 || planes[0].ID != "wall" {
		t.Fatalf("planes = %v", planes)
	}
	if hits := s.HitTest(ar.Ray{Origin: ar.V3(0, 1, 0), Dir: ar.V3(0, -1, 0)}); len(hits) != 0 {
		t.Fatalf("floor hit with vertical plane finding: %+v", hits)
	}
}

func TestAnchors(t *testing.T) {
	s := NewSession(testPlanes(), ar.LightEstimate{})
	hit := ar.HitResult{Pose: ar.Pose{Position: ar.V3(1, 0, 1)}, Plane: testPlanes()[1]}
	if _, err := s.CreateAnchor(hit); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("CreateAnchor before Configure: %v", err)
	}
	s.Configure(ar.DefaultSessionConfig())
	if _, err := s.CreateAnchor(ar.HitResult{}); err == nil {
		t.Fatal("anchor created without a plane")
	}
	a, err := s.CreateAnchor(hit)
	if err != nil {
		t.Fatal(err)
	}
	if a.Pose != hit.Pose || !a.Tracking() || len(s.Anchors()) != 1 {
		t.Fatalf("anchor = %+v", a)
	}
	s.RemoveAnchor(a)
	if a.Tracking() || len(s.Anchors()) != 0 {
		t.Fatal("removed anchor still tracked")
	}
	s.RemoveAnchor(nil)
}

func TestLightEstimateModes(t *testing.T) {
	light := ar.LightEstimate{AmbientIntensity: 0.6, MainLightDir: ar.V3(0, 1, 0)}
	s := NewSession(nil, light)
	if s.LightEstimate().Valid {
		t.Fatal("valid estimate before Configure")
	}
	s.Configure(ar.DefaultSessionConfig())
	if est := s.LightEstimate(); !est.Valid || est.MainLightDir != light.MainLightDir {
		t.Fatalf("HDR estimate = %+v", est)
	}
	s.Configure(ar.SessionConfig{LightEstimation: ar.LightEstimationAmbientIntensity})
	if est := s.LightEstimate(); !est.Valid || est.AmbientIntensity != 0.6 || est.MainLightDir != (ar.Vec3{}) {
		t.Fatalf("ambient estimate = %+v", est)
	}
	s.Configure(ar.SessionConfig{LightEstimation: ar.LightEstimationDisabled})
	if s.LightEstimate().Valid {
		t.Fatal("estimate valid with estimation disabled")
	}
}

func TestDevice(t *testing.T) {
	d := Device{Availability: ar.SupportedInstalled, GLVersion: "3.2"}
	if d.CheckAvailability() != ar.SupportedInstalled {
		t.Fatal("availability")
	}
	if v, ok := d.GLESVersion(); !ok || v != "3.2" {
		t.Fatalf("GLESVersion = %q, %v", v, ok)
	}
	if _, ok := (Device{}).GLESVersion(); ok {
		t.Fatal("empty version reported as known")
	}
}
