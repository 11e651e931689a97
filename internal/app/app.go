// Package app assembles the simulator from its config: the simulated device and session,
// the material pipelines, the selection groups, the scene and the placer. It has no window
// dependency, so preflight and tests drive the same wiring as the interactive binary.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"arshapes/internal/ar"
	"arshapes/internal/capability"
	"arshapes/internal/config"
	"arshapes/internal/download"
	"arshapes/internal/logger"
	"arshapes/internal/mapgen"
	"arshapes/internal/material"
	"arshapes/internal/model"
	"arshapes/internal/placement"
	"arshapes/internal/scene"
	"arshapes/internal/selection"
	"arshapes/internal/sim"
)

// ErrUnsupported is returned by Preflight when the capability gate fails.
var ErrUnsupported = errors.New("app: device not supported")

// App is the assembled simulator.
type App struct {
	Config     config.Config
	Log        *logger.Logger
	Device     sim.Device
	Session    *sim.Session
	Loader     *material.Loader
	Shapes     *selection.Group
	Materials  *selection.Group
	Resolver   *selection.Resolver
	Root       *scene.Root
	Transforms *scene.TransformSystem
	Placer     *placement.Placer

	sessionCfg ar.SessionConfig
	finished   bool
}

// New wires an App from cfg. Nothing is started; see CheckDevice and Start.
func New(cfg config.Config, log *logger.Logger) (*App, error) {
	availability, err := cfg.Availability()
	if err != nil {
		return nil, err
	}
	sessionCfg, err := cfg.SessionConfig()
	if err != nil {
		return nil, err
	}
	planes, err := cfg.ARPlanes()
	if err != nil {
		return nil, err
	}
	if cfg.Clutter.Enabled {
		planes = append(planes, mapgen.Surfaces(clutterOptions(cfg.Clutter))...)
	}
	flat, err := cfg.MaterialColor()
	if err != nil {
		return nil, err
	}

	cache := cfg.Materials.CacheDir
	textures := &material.ImageDecoder{
		MaxEdge:  cfg.Materials.MaxTextureEdge,
		CacheDir: filepath.Join(cache, "textures"),
		Fetch:    download.Fetch,
	}
	models := &model.Loader{Textures: textures, CacheDir: filepath.Join(cache, "models")}
	loader := material.NewLoader(material.OpaqueFactory{}, textures, models, material.Sources{
		Color:   flat,
		Texture: cfg.Materials.Texture,
		Model:   cfg.Materials.Model,
	})
	loader.Reporter = log

	a := &App{
		Config:     cfg,
		Log:        log,
		Device:     sim.Device{Availability: availability, GLVersion: cfg.Device.GLVersion},
		Session:    sim.NewSession(planes, cfg.LightEstimate()),
		Loader:     loader,
		Shapes:     selection.NewShapeGroup(),
		Materials:  selection.NewMaterialGroup(),
		Transforms: &scene.TransformSystem{},
		sessionCfg: sessionCfg,
	}
	a.Resolver = &selection.Resolver{Shapes: a.Shapes, Materials: a.Materials, Slots: loader.Slots()}
	a.Root = scene.NewRoot(a.Session.RemoveAnchor)
	a.Placer = placement.New(a.Session, a.Root, a.Resolver)
	a.Placer.Size = cfg.Placement.Size
	a.Placer.RequireReadyMaterials = cfg.Placement.RequireReadyMaterials
	a.Placer.Transforms = a.Transforms
	a.Placer.OnError = func(err error) { log.Notify(err.Error()) }
	return a, nil
}

// clutterOptions overlays the non-zero config fields on the generator defaults.
func clutterOptions(c config.Clutter) mapgen.Options {
	o := mapgen.DefaultOptions()
	o.Seed = c.Seed
	if c.Cols > 0 {
		o.Cols = c.Cols
	}
	if c.Rows > 0 {
		o.Rows = c.Rows
	}
	if c.Cell > 0 {
		o.Cell = c.Cell
	}
	if c.MinHeight > 0 {
		o.MinHeight = c.MinHeight
	}
	if c.MaxHeight > 0 {
		o.MaxHeight = c.MaxHeight
	}
	if c.Threshold > 0 {
		o.Threshold = c.Threshold
	}
	return o
}

// userNotifier sends gate messages to the log and to the user's stream.
type userNotifier struct {
	log *logger.Logger
	w   io.Writer
}

func (n userNotifier) Notify(msg string) {
	n.log.Notify(msg)
	if n.w != nil {
		fmt.Fprintln(n.w, msg)
	}
}

// CheckDevice runs the capability gate against the simulated device. On failure the
// message is logged and written to w (when non-nil), and the app is marked finished.
func (a *App) CheckDevice(w io.Writer) bool {
	gate := &capability.Gate{
		Runtime:    a.Device,
		Graphics:   a.Device,
		Notifier:   userNotifier{log: a.Log, w: w},
		Finish:     func() { a.finished = true },
		MinVersion: a.Config.Device.MinGLVersion,
	}
	return gate.CheckDeviceSupported()
}

// Finished reports whether the capability gate requested the app to finish.
func (a *App) Finished() bool {
	return a.finished
}

// Start configures the session and starts the material pipelines. It does not wait for
// them.
func (a *App) Start(ctx context.Context) error {
	if err := a.Session.Configure(a.sessionCfg); err != nil {
		return fmt.Errorf("app: configure session: %w", err)
	}
	a.Loader.Load(ctx)
	return nil
}

// Close cancels unfinished pipelines and waits for them.
func (a *App) Close() {
	if err := a.Loader.Close(); err != nil && !errors.Is(err, context.Canceled) {
		a.Log.Logf("shutdown: %v", err)
	}
}

// Preflight runs the capability gate and every material pipeline to completion, drawing
// progress to w. It returns ErrUnsupported when the gate fails and the first pipeline
// error otherwise; every failure is also logged.
func (a *App) Preflight(ctx context.Context, w io.Writer) error {
	if !a.CheckDevice(w) {
		return ErrUnsupported
	}
	bar := progressbar.NewOptions(len(material.Pipelines),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("loading materials"),
		progressbar.OptionShowCount(),
	)
	a.Loader.OnSettled = func(p material.Pipeline, err error) {
		_ = bar.Add(1)
	}
	if err := a.Start(ctx); err != nil {
		return err
	}
	err := a.Loader.Wait()
	_ = bar.Finish()
	fmt.Fprintln(w)
	if err != nil {
		return fmt.Errorf("preflight: %w", err)
	}
	for _, k := range []material.Kind{material.KindColor, material.KindTexture, material.KindCustom} {
		if m := a.Loader.Slots().For(k).Peek(); m != nil {
			fmt.Fprintf(w, "%-8s %s\n", k, m.Name)
		}
	}
	return nil
}
