// Package material builds the renderable surface appearances shapes are drawn with and
// loads the three materials the app offers: a flat color, an image texture and a
// material copied from an imported model.
package material

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/jinzhu/copier"
)

// Kind says where a material came from.
type Kind int

const (
	KindColor Kind = iota
	KindTexture
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindTexture:
		return "texture"
	case KindCustom:
		return "custom"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Opaque material defaults, matching what the runtime's material factory uses.
const (
	DefaultMetallic    = 0.0
	DefaultRoughness   = 0.4
	DefaultReflectance = 0.5
)

// Material is an opaque, lit surface appearance. Materials are handed out by pointer and
// shared between nodes; a node's material is changed by pointing it at another one.
type Material struct {
	Name        string
	Kind        Kind
	BaseColor   color.RGBA
	Metallic    float32
	Roughness   float32
	Reflectance float32
	// Params holds extra scalar parameters imported from model files (e.g. "opacity").
	Params map[string]float32
	// Texture is shared, not copied, by Copy. Textures are immutable once decoded.
	Texture *Texture `copier:"-"`
}

// Texture is a decoded image ready to be uploaded by the renderer.
type Texture struct {
	Source string
	Image  image.Image
	Width  int
	Height int
}

// NewTexture wraps a decoded image.
func NewTexture(source string, img image.Image) *Texture {
	b := img.Bounds()
	return &Texture{Source: source, Image: img, Width: b.Dx(), Height: b.Dy()}
}

// Copy returns an independent copy of m. Parameter maps are deep copied; the texture
// is shared.
func (m *Material) Copy() (*Material, error) {
	out := &Material{}
	if err := copier.CopyWithOption(out, m, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("material: copy %q: %w", m.Name, err)
	}
	out.Texture = m.Texture
	return out, nil
}

// Param returns the named parameter, or def when it is not set.
func (m *Material) Param(name string, def float32) float32 {
	if v, ok := m.Params[name]; ok {
		return v
	}
	return def
}

// Factory builds opaque materials. Implementations may be slow (GPU or disk bound);
// callers run them off the event goroutine.
type Factory interface {
	MakeOpaqueWithColor(ctx context.Context, c color.RGBA) (*Material, error)
	MakeOpaqueWithTexture(ctx context.Context, t *Texture) (*Material, error)
}

// OpaqueFactory builds CPU-side materials; the renderer turns them into GPU materials on
// first draw.
type OpaqueFactory struct{}

// MakeOpaqueWithColor returns a flat material tinted c.
func (OpaqueFactory) MakeOpaqueWithColor(ctx context.Context, c color.RGBA) (*Material, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Material{
		Name:        fmt.Sprintf("color #%02x%02x%02x", c.R, c.G, c.B),
		Kind:        KindColor,
		BaseColor:   c,
		Metallic:    DefaultMetallic,
		Roughness:   DefaultRoughness,
		Reflectance: DefaultReflectance,
	}, nil
}

// MakeOpaqueWithTexture returns a white material sampling t.
func (OpaqueFactory) MakeOpaqueWithTexture(ctx context.Context, t *Texture) (*Material, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if t == nil || t.Image == nil {
		return nil, fmt.Errorf("material: texture has no image")
	}
	return &Material{
		Name:        "texture " + t.Source,
		Kind:        KindTexture,
		BaseColor:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Metallic:    DefaultMetallic,
		Roughness:   DefaultRoughness,
		Reflectance: DefaultReflectance,
		Texture:     t,
	}, nil
}
