package material

import (
	"context"
	"fmt"
	"image/color"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Pipeline names one of the three material builds.
type Pipeline string

const (
	PipelineColor   Pipeline = "color"
	PipelineTexture Pipeline = "texture"
	PipelineCustom  Pipeline = "custom"
)

// Pipelines lists every pipeline in startup order.
var Pipelines = []Pipeline{PipelineColor, PipelineTexture, PipelineCustom}

// Reporter receives pipeline failures. The logger implements it.
type Reporter interface {
	Report(source string, err error)
}

// Model is an imported 3D model whose default mesh carries a material.
type Model interface {
	DefaultMaterial() *Material
}

// ModelLoader loads a model resource by name.
type ModelLoader interface {
	LoadModel(ctx context.Context, source string) (Model, error)
}

// Sources are the inputs of the three pipelines.
type Sources struct {
	Color   color.RGBA
	Texture string
	Model   string
}

// DKGray is the default flat color.
var DKGray = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}

// Loader runs the color, texture and custom material pipelines concurrently and settles
// one slot per pipeline. Load does not wait; nothing orders the pipelines against each
// other or against user input.
type Loader struct {
	Factory  Factory
	Textures TextureDecoder
	Models   ModelLoader
	Reporter Reporter
	Sources  Sources
	// OnSettled, if set, is called from the pipeline goroutine after each slot settles.
	OnSettled func(p Pipeline, err error)

	slots     *Slots
	slotsOnce sync.Once
	g         errgroup.Group
	cancel    context.CancelFunc
	once      sync.Once
}

// NewLoader returns a loader that settles into fresh slots.
func NewLoader(f Factory, textures TextureDecoder, models ModelLoader, src Sources) *Loader {
	return &Loader{Factory: f, Textures: textures, Models: models, Sources: src, slots: NewSlots()}
}

// Slots returns the slots the pipelines settle. It is safe to call from any goroutine,
// also on a zero Loader.
func (l *Loader) Slots() *Slots {
	l.slotsOnce.Do(func() {
		if l.slots == nil {
			l.slots = NewSlots()
		}
	})
	return l.slots
}

// Load starts the three pipelines and returns immediately. Only the first call starts
// anything. Cancelling ctx (or calling Close) abandons pipelines that have not finished;
// their slots settle with the context error.
func (l *Loader) Load(ctx context.Context) {
	l.once.Do(func() {
		slots := l.Slots()
		ctx, l.cancel = context.WithCancel(ctx)
		l.run(ctx, PipelineColor, slots.Color, l.buildColor)
		l.run(ctx, PipelineTexture, slots.Texture, l.buildTexture)
		l.run(ctx, PipelineCustom, slots.Custom, l.buildCustom)
	})
}

func (l *Loader) run(ctx context.Context, p Pipeline, slot *Slot[*Material], build func(context.Context) (*Material, error)) {
	l.g.Go(func() error {
		m, err := build(ctx)
		if err != nil {
			err = fmt.Errorf("material: %s: %w", p, err)
			m = nil
		}
		slot.Settle(m, err)
		if err != nil && l.Reporter != nil {
			l.Reporter.Report(string(p), err)
		}
		if l.OnSettled != nil {
			l.OnSettled(p, err)
		}
		return err
	})
}

// Wait blocks until every started pipeline has settled and returns the first failure.
func (l *Loader) Wait() error {
	return l.g.Wait()
}

// Close cancels pipelines still running and waits for them.
func (l *Loader) Close() error {
	if l.cancel != nil {
		l.cancel()
	}
	return l.Wait()
}

func (l *Loader) buildColor(ctx context.Context) (*Material, error) {
	return l.Factory.MakeOpaqueWithColor(ctx, l.Sources.Color)
}

// buildTexture decodes the image, then builds a material from it. The second stage only
// starts after the first succeeded.
func (l *Loader) buildTexture(ctx context.Context) (*Material, error) {
	if l.Textures == nil {
		return nil, fmt.Errorf("no texture decoder")
	}
	tex, err := l.Textures.Decode(ctx, l.Sources.Texture)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.Factory.MakeOpaqueWithTexture(ctx, tex)
}

// buildCustom loads the model and copies the material of its default mesh.
func (l *Loader) buildCustom(ctx context.Context) (*Material, error) {
	if l.Models == nil {
		return nil, fmt.Errorf("no model loader")
	}
	mdl, err := l.Models.LoadModel(ctx, l.Sources.Model)
	if err != nil {
		return nil, err
	}
	src := mdl.DefaultMaterial()
	if src == nil {
		return nil, fmt.Errorf("model %s has no material", l.Sources.Model)
	}
	m, err := src.Copy()
	if err != nil {
		return nil, err
	}
	m.Kind = KindCustom
	return m, nil
}
