package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"arshapes/internal/ar"
	"arshapes/internal/capability"
	"arshapes/internal/config"
	"arshapes/internal/logger"
	"arshapes/internal/material"
	"arshapes/internal/selection"
	"arshapes/internal/shape"
)

// planetGLTF is one triangle using a textured Surface material.
const planetGLTF = `{"asset":{"version":"2.0"},
"buffers":[{"byteLength":36,"uri":"data:application/octet-stream;base64,AACAvwAAgL8AAIC/AACAPwAAgL8AAIC/AACAPwAAgD8AAIA/"}],
"bufferViews":[{"buffer":0,"byteLength":36}],
"accessors":[{"bufferView":0,"componentType":5126,"count":3,"type":"VEC3","min":[-1,-1,-1],"max":[1,1,1]}],
"materials":[{"name":"Surface","pbrMetallicRoughness":{"baseColorFactor":[0.7,0.5,0.3,1],"roughnessFactor":0.65,"baseColorTexture":{"index":0}}}],
"textures":[{"source":0}],
"images":[{"uri":"texture.png"}],
"meshes":[{"name":"Planet","primitives":[{"attributes":{"POSITION":0},"material":0}]}]}`

// testConfig writes a texture and a model into a temp dir and points the default
// config at them.
func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	f, err := os.Create(filepath.Join(dir, "texture.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()
	if err := os.WriteFile(filepath.Join(dir, "planet.gltf"), []byte(planetGLTF), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Materials.Texture = filepath.Join(dir, "texture.png")
	cfg.Materials.Model = filepath.Join(dir, "planet.gltf")
	cfg.Materials.CacheDir = filepath.Join(dir, "cache")
	cfg.LogFile = ""
	return cfg
}

func newApp(t *testing.T, cfg config.Config) (*App, *logger.Logger) {
	t.Helper()
	log := logger.New("")
	a, err := New(cfg, log)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(a.Close)
	return a, log
}

var downAtOrigin = ar.Ray{Origin: ar.V3(0, 2, 0), Dir: ar.V3(0, -1, 0)}

func TestPlaceAndRetint(t *testing.T) {
	a, _ := newApp(t, testConfig(t))
	if !a.CheckDevice(nil) {
		t.Fatal("default device rejected")
	}
	if err := a.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := a.Loader.Wait(); err != nil {
		t.Fatalf("pipelines: %v", err)
	}

	if err := a.Shapes.Check(selection.IDSphere); err != nil {
		t.Fatal(err)
	}
	if err := a.Materials.Check(selection.IDTexture); err != nil {
		t.Fatal(err)
	}
	res, err := a.Placer.Dispatch(downAtOrigin)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if res.Placed == nil || len(res.Placed.Children()) != 1 {
		t.Fatalf("nothing placed: %+v", res)
	}
	node := res.Placed.Children()[0]
	if node.Renderable.Kind != shape.Sphere {
		t.Errorf("shape = %v, want sphere", node.Renderable.Kind)
	}
	if m := node.Renderable.Material; m == nil || m.Kind != material.KindTexture {
		t.Fatalf("material = %+v, want texture", m)
	}
	if got := len(a.Session.Anchors()); got != 1 {
		t.Fatalf("anchors = %d, want 1", got)
	}

	// The same ray now hits the placed sphere first.
	if err := a.Materials.Check(selection.IDCustom); err != nil {
		t.Fatal(err)
	}
	res, err = a.Placer.Dispatch(downAtOrigin)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if res.Node != node || res.Placed != nil {
		t.Fatalf("second tap = %+v, want a tap on the placed node", res)
	}
	if m := node.Renderable.Material; m == nil || m.Kind != material.KindCustom {
		t.Fatalf("material after retint = %+v, want custom", m)
	}
	if a.Transforms.Selected() != node {
		t.Error("tapped node is not selected")
	}
	if got := len(a.Session.Anchors()); got != 1 {
		t.Errorf("anchors after retint = %d, want 1", got)
	}
}

func TestPlaceOnWallIgnored(t *testing.T) {
	a, _ := newApp(t, testConfig(t))
	if err := a.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	res, err := a.Placer.Dispatch(ar.Ray{Origin: ar.V3(0, 1.5, 0), Dir: ar.V3(0, 0, -1)})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if res.Placed != nil || res.Plane == nil || res.Plane.ID != "wall" {
		t.Fatalf("result = %+v, want an ignored wall hit", res)
	}
	if len(a.Root.Children()) != 0 {
		t.Error("wall tap placed a node")
	}
}

func TestRequireReadyMaterials(t *testing.T) {
	cfg := testConfig(t)
	cfg.Placement.RequireReadyMaterials = true
	a, _ := newApp(t, cfg)
	if err := a.Session.Configure(ar.DefaultSessionConfig()); err != nil {
		t.Fatal(err)
	}
	// Pipelines never started.
	_, err := a.Placer.Dispatch(downAtOrigin)
	if !errors.Is(err, material.ErrNotReady) {
		t.Fatalf("err = %v, want ErrNotReady", err)
	}
	if len(a.Root.Children()) != 0 {
		t.Error("placed with an unloaded material")
	}
}

func TestPreflight(t *testing.T) {
	a, _ := newApp(t, testConfig(t))
	var out bytes.Buffer
	if err := a.Preflight(context.Background(), &out); err != nil {
		t.Fatalf("Preflight: %v", err)
	}
	for _, want := range []string{"color", "texture", "custom"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output lacks %q:\n%s", want, out.String())
		}
	}
}

func TestPreflightOldGraphics(t *testing.T) {
	cfg := testConfig(t)
	cfg.Device.GLVersion = "OpenGL ES 2.0"
	a, log := newApp(t, cfg)
	var out bytes.Buffer
	err := a.Preflight(context.Background(), &out)
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
	if !a.Finished() {
		t.Error("gate did not finish the app")
	}
	if !strings.Contains(out.String(), capability.MsgGraphicsTooOld) {
		t.Errorf("output = %q, want %q", out.String(), capability.MsgGraphicsTooOld)
	}
	toasts := log.Toasts()
	if len(toasts) != 1 || toasts[0].Text != capability.MsgGraphicsTooOld {
		t.Errorf("toasts = %+v", toasts)
	}
}

func TestPreflightUnsupportedRuntime(t *testing.T) {
	cfg := testConfig(t)
	cfg.Device.Availability = ar.UnsupportedDeviceNotCapable.String()
	a, _ := newApp(t, cfg)
	var out bytes.Buffer
	if err := a.Preflight(context.Background(), &out); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
	if !strings.Contains(out.String(), capability.MsgRuntimeUnsupported) {
		t.Errorf("output = %q, want %q", out.String(), capability.MsgRuntimeUnsupported)
	}
}

func TestCheckDeviceWritesMessage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Device.GLVersion = "2.0"
	a, _ := newApp(t, cfg)
	var out bytes.Buffer
	if a.CheckDevice(&out) {
		t.Fatal("GL 2.0 passed the gate")
	}
	if got := strings.TrimSpace(out.String()); got != capability.MsgGraphicsTooOld {
		t.Errorf("output = %q", got)
	}
	if a.CheckDevice(nil) {
		t.Fatal("second check passed")
	}
}

func TestPreflightMissingModel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Materials.Model = filepath.Join(t.TempDir(), "absent.gltf")
	a, log := newApp(t, cfg)
	if err := a.Preflight(context.Background(), &bytes.Buffer{}); err == nil {
		t.Fatal("Preflight succeeded with a missing model")
	}
	found := false
	for _, l := range log.Lines() {
		if strings.Contains(l, "unable to load custom") {
			found = true
		}
	}
	if !found {
		t.Errorf("failure not logged: %q", log.Lines())
	}
	if !a.Loader.Slots().For(material.KindColor).Ready() {
		t.Error("color pipeline did not complete alongside the failed one")
	}
}

func TestClutterPlanes(t *testing.T) {
	cfg := testConfig(t)
	cfg.Clutter = config.Clutter{Enabled: true, Seed: 11, Cols: 3, Rows: 3, Threshold: 0.01}
	a, _ := newApp(t, cfg)
	if err := a.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	var surfaces int
	for _, p := range a.Session.Planes() {
		if strings.HasPrefix(p.ID, "surface-") {
			surfaces++
		}
	}
	if surfaces == 0 || len(a.Session.Planes()) != len(cfg.Planes)+surfaces {
		t.Fatalf("planes = %d with %d generated", len(a.Session.Planes()), surfaces)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Session.PlaneFinding = "sideways"
	if _, err := New(cfg, logger.New("")); err == nil {
		t.Fatal("New accepted an unknown plane_finding")
	}
}
