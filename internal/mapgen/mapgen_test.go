package mapgen

import (
	"testing"

	"arshapes/internal/ar"
)

func TestSurfacesDeterministic(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 42
	a, b := Surfaces(opts), Surfaces(opts)
	if len(a) != len(b) {
		t.Fatalf("same seed gave %d and %d surfaces", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Center != b[i].Center {
			t.Fatalf("surface %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSurfacesShape(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 7
	opts.Threshold = 0
	got := Surfaces(opts)
	if len(got) == 0 {
		t.Fatal("threshold 0 produced no surfaces")
	}
	seen := map[string]bool{}
	limit := float32(opts.Cols) * opts.Cell / 2
	for _, p := range got {
		if seen[p.ID] {
			t.Errorf("duplicate id %s", p.ID)
		}
		seen[p.ID] = true
		if p.Type != ar.HorizontalUpwardFacing || p.Normal != ar.V3(0, 1, 0) {
			t.Errorf("%s: type %v normal %v", p.ID, p.Type, p.Normal)
		}
		y := p.Center.Position.Y
		if y < opts.MinHeight || y > opts.MaxHeight {
			t.Errorf("%s: height %v outside [%v, %v]", p.ID, y, opts.MinHeight, opts.MaxHeight)
		}
		x, z := p.Center.Position.X, p.Center.Position.Z
		if x < -limit || x > limit || z < -limit || z > limit {
			t.Errorf("%s: center %v outside the grid", p.ID, p.Center.Position)
		}
		if want := opts.Cell * opts.Fill; p.ExtentX != want || p.ExtentZ != want {
			t.Errorf("%s: extent %v x %v, want %v", p.ID, p.ExtentX, p.ExtentZ, want)
		}
	}
}

func TestSurfacesThresholdOne(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 3
	opts.Threshold = 1
	if got := Surfaces(opts); len(got) != 0 {
		t.Fatalf("threshold 1 produced %d surfaces", len(got))
	}
}

func TestSurfacesEmptyGrid(t *testing.T) {
	opts := DefaultOptions()
	opts.Cols = 0
	if Surfaces(opts) != nil {
		t.Fatal("empty grid produced surfaces")
	}
}

func TestNoiseRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		x := float32(i) * 0.37
		n := fractalValueNoise2D(x, x*1.3, 99, 4, 2, 0.5)
		if n < 0 || n > 1 {
			t.Fatalf("noise(%v) = %v", x, n)
		}
	}
}
