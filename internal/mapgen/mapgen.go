// Package mapgen scatters simulated furniture surfaces over the floor. The floor is split
// into a grid of cells; cells where fractal value noise exceeds a threshold get an
// upward-facing table top whose height follows the noise.
package mapgen

import (
	"fmt"
	"math"
	"time"

	"arshapes/internal/ar"
)

// Options controls surface generation. The grid is Cols x Rows cells of Cell meters,
// centered on the origin. Seed == 0 uses a time-based seed. Octaves, Frequency,
// Lacunarity and Gain shape the noise.
type Options struct {
	Cols      int
	Rows      int
	Cell      float32
	Fill      float32 // fraction of a cell's side covered by its surface
	MinHeight float32
	MaxHeight float32
	Threshold float32 // noise level in [0,1] below which a cell stays empty

	Seed       int64
	Octaves    int
	Frequency  float32
	Lacunarity float32
	Gain       float32
}

// DefaultOptions returns a small room's worth of surfaces.
func DefaultOptions() Options {
	return Options{
		Cols:       4,
		Rows:       4,
		Cell:       1.5,
		Fill:       0.6,
		MinHeight:  0.4,
		MaxHeight:  1.1,
		Threshold:  0.55,
		Octaves:    3,
		Frequency:  0.45,
		Lacunarity: 2.0,
		Gain:       0.5,
	}
}

// Surfaces generates the table tops for opts. IDs are "surface-<row>-<col>".
func Surfaces(opts Options) []*ar.Plane {
	if opts.Cols <= 0 || opts.Rows <= 0 || opts.Cell <= 0 {
		return nil
	}
	if opts.Fill <= 0 || opts.Fill > 1 {
		opts.Fill = 0.6
	}
	if opts.MaxHeight < opts.MinHeight {
		opts.MinHeight, opts.MaxHeight = opts.MaxHeight, opts.MinHeight
	}
	if opts.Octaves <= 0 {
		opts.Octaves = 1
	}
	if opts.Frequency <= 0 {
		opts.Frequency = 0.45
	}
	if opts.Lacunarity <= 0 {
		opts.Lacunarity = 2.0
	}
	if opts.Gain <= 0 {
		opts.Gain = 0.5
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	half := opts.Cell * 0.5
	startX := -float32(opts.Cols)*half + half
	startZ := -float32(opts.Rows)*half + half
	span := 1 - opts.Threshold
	side := opts.Cell * opts.Fill

	var out []*ar.Plane
	for r := 0; r < opts.Rows; r++ {
		for c := 0; c < opts.Cols; c++ {
			n := fractalValueNoise2D(float32(c)*opts.Frequency, float32(r)*opts.Frequency, seed, opts.Octaves, opts.Lacunarity, opts.Gain)
			if !isFinite(n) || n <= opts.Threshold {
				continue
			}
			t := float32(1)
			if span > 0 {
				t = (n - opts.Threshold) / span
			}
			h := min(max(lerp(opts.MinHeight, opts.MaxHeight, t), opts.MinHeight), opts.MaxHeight)
			out = append(out, &ar.Plane{
				ID:      fmt.Sprintf("surface-%d-%d", r, c),
				Type:    ar.HorizontalUpwardFacing,
				Center:  ar.Pose{Position: ar.V3(startX+float32(c)*opts.Cell, h, startZ+float32(r)*opts.Cell)},
				Normal:  ar.V3(0, 1, 0),
				ExtentX: side,
				ExtentZ: side,
			})
		}
	}
	return out
}

// fractalValueNoise2D layers octaves of value noise. Output is in [0,1].
func fractalValueNoise2D(x, y float32, seed int64, octaves int, lacunarity, gain float32) float32 {
	var sum, maxAmp float32
	amplitude := float32(1)
	freq := float32(1)
	for i := 0; i < octaves; i++ {
		sum += valueNoise2D(x*freq, y*freq, int32(seed)+int32(i)) * amplitude
		maxAmp += amplitude
		amplitude *= gain
		freq *= lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	return sum / maxAmp
}

// valueNoise2D is smooth value noise in [0,1] over a hashed integer lattice.
func valueNoise2D(x, y float32, seed int32) float32 {
	x0 := int32(math.Floor(float64(x)))
	y0 := int32(math.Floor(float64(y)))
	sx := smoothStep(x - float32(x0))
	sy := smoothStep(y - float32(y0))

	ix0 := lerp(hash2D(x0, y0, seed), hash2D(x0+1, y0, seed), sx)
	ix1 := lerp(hash2D(x0, y0+1, seed), hash2D(x0+1, y0+1, seed), sx)
	return lerp(ix0, ix1, sy)
}

// hash2D maps lattice coordinates to a deterministic value in [0,1].
func hash2D(x, y, seed int32) float32 {
	n := x*374761393 + y*668265263 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	const invMaxInt = 1.0 / 2147483647.0
	return float32(n&0x7fffffff) * float32(invMaxInt)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// smoothStep is 3t^2 - 2t^3 clamped to [0,1].
func smoothStep(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
