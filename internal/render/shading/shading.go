// Package shading turns the session's light estimate and a material's scalar parameters
// into the uniforms of the lit shaders.
package shading

import (
	"image/color"

	"github.com/chewxy/math32"

	"arshapes/internal/ar"
	"arshapes/internal/material"
)

// Defaults used when the session has no light estimate.
var (
	DefaultAmbient    = [4]float32{0.2, 0.22, 0.26, 1}
	DefaultLightDir   = ar.V3(0.5, 1, 0.5)
	DefaultLightColor = [3]float32{1, 0.98, 0.95}
)

const (
	defaultIntensity = float32(0.75)
	// minAmbient keeps shadowed sides from going fully black under a dark estimate.
	minAmbient = float32(0.05)
)

// Lighting is the per-frame light state.
type Lighting struct {
	ViewPos    [3]float32
	LightDir   [3]float32
	Ambient    [4]float32
	LightColor [3]float32
	Intensity  float32
}

// FromEstimate builds the frame lighting. A valid estimate provides the ambient term
// (color times intensity) and, when it has one, the main light direction.
func FromEstimate(est ar.LightEstimate, viewPos ar.Vec3) Lighting {
	l := Lighting{
		ViewPos:    viewPos.Array(),
		LightDir:   DefaultLightDir.Normalize().Array(),
		Ambient:    DefaultAmbient,
		LightColor: DefaultLightColor,
		Intensity:  defaultIntensity,
	}
	if !est.Valid {
		return l
	}
	for i := 0; i < 3; i++ {
		l.Ambient[i] = math32.Max(minAmbient, est.AmbientColor[i]*est.AmbientIntensity)
	}
	if est.MainLightDir.Len() > 0 {
		l.LightDir = est.MainLightDir.Normalize().Array()
	}
	return l
}

// Surface is the per-draw material state.
type Surface struct {
	Color            color.RGBA
	Texture          *material.Texture
	SpecularPower    float32
	SpecularStrength float32
	Metallic         float32
}

// Placeholder is drawn for shapes whose material has not loaded yet.
var Placeholder = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// For maps m to shader parameters. Smooth surfaces get a tight, strong highlight; rough
// ones a wide, faint one. nil yields the untextured placeholder.
func For(m *material.Material) Surface {
	if m == nil {
		return Surface{
			Color:            Placeholder,
			SpecularPower:    specularPower(material.DefaultRoughness),
			SpecularStrength: material.DefaultReflectance * (1 - material.DefaultRoughness),
		}
	}
	s := Surface{
		Color:            m.BaseColor,
		Texture:          m.Texture,
		SpecularPower:    specularPower(m.Roughness),
		SpecularStrength: clamp01(m.Reflectance) * (1 - clamp01(m.Roughness)),
		Metallic:         clamp01(m.Metallic),
	}
	if s.Texture != nil && s.Texture.Image == nil {
		s.Texture = nil
	}
	if m.Kind == material.KindTexture && s.Color == (color.RGBA{}) {
		s.Color = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return s
}

func specularPower(roughness float32) float32 {
	return 4 + (1-clamp01(roughness))*124
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}
