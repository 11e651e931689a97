package material

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestCopyIsIndependent(t *testing.T) {
	tex := NewTexture("t.png", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	src := &Material{
		Name:      "Mercury",
		Kind:      KindCustom,
		BaseColor: color.RGBA{R: 200, G: 180, B: 160, A: 255},
		Roughness: 0.8,
		Params:    map[string]float32{"opacity": 1},
		Texture:   tex,
	}
	cp, err := src.Copy()
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if cp == src {
		t.Fatal("Copy returned the same pointer")
	}
	if cp.Name != src.Name || cp.BaseColor != src.BaseColor || cp.Roughness != src.Roughness {
		t.Fatalf("copy = %+v, want fields of %+v", cp, src)
	}
	if cp.Texture != tex {
		t.Fatal("copy does not share the texture")
	}
	cp.Params["opacity"] = 0.5
	if src.Params["opacity"] != 1 {
		t.Fatal("changing the copy's params changed the source")
	}
}

func TestOpaqueFactory(t *testing.T) {
	ctx := context.Background()
	var f OpaqueFactory

	m, err := f.MakeOpaqueWithColor(ctx, DKGray)
	if err != nil {
		t.Fatalf("MakeOpaqueWithColor: %v", err)
	}
	if m.Kind != KindColor || m.BaseColor != DKGray || m.Roughness != DefaultRoughness {
		t.Fatalf("color material = %+v", m)
	}

	if _, err := f.MakeOpaqueWithTexture(ctx, nil); err == nil {
		t.Fatal("MakeOpaqueWithTexture(nil) succeeded")
	}
	tex := NewTexture("x.png", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	m, err = f.MakeOpaqueWithTexture(ctx, tex)
	if err != nil {
		t.Fatalf("MakeOpaqueWithTexture: %v", err)
	}
	if m.Kind != KindTexture || m.Texture != tex {
		t.Fatalf("texture material = %+v", m)
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestImageDecoder(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "small.png")
	big := filepath.Join(dir, "big.png")
	writePNG(t, small, 8, 4)
	writePNG(t, big, 64, 16)

	d := &ImageDecoder{MaxEdge: 32}
	tex, err := d.Decode(context.Background(), small)
	if err != nil {
		t.Fatalf("Decode small: %v", err)
	}
	if tex.Width != 8 || tex.Height != 4 || tex.Source != small {
		t.Fatalf("small texture = %dx%d from %q", tex.Width, tex.Height, tex.Source)
	}

	tex, err = d.Decode(context.Background(), big)
	if err != nil {
		t.Fatalf("Decode big: %v", err)
	}
	if tex.Width != 32 || tex.Height != 8 {
		t.Fatalf("big texture resized to %dx%d, want 32x8", tex.Width, tex.Height)
	}

	if _, err := d.Decode(context.Background(), filepath.Join(dir, "missing.png")); err == nil {
		t.Fatal("Decode of a missing file succeeded")
	}
}

func TestImageDecoderRemote(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "fetched.png")
	writePNG(t, local, 2, 2)

	var gotURL, gotDir string
	d := &ImageDecoder{
		CacheDir: dir,
		Fetch: func(ctx context.Context, url, into string) (string, error) {
			gotURL, gotDir = url, into
			return local, nil
		},
	}
	tex, err := d.Decode(context.Background(), "https://example.com/tex.png")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if gotURL != "https://example.com/tex.png" || gotDir != dir {
		t.Fatalf("Fetch called with %q, %q", gotURL, gotDir)
	}
	if tex.Source != "https://example.com/tex.png" {
		t.Fatalf("Source = %q", tex.Source)
	}

	d.Fetch = nil
	if _, err := d.Decode(context.Background(), "https://example.com/tex.png"); err == nil {
		t.Fatal("remote decode without Fetch succeeded")
	}
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		w, h, limit  int
		wantW, wantH int
		wantResize   bool
	}{
		{100, 50, 200, 100, 50, false},
		{400, 100, 200, 200, 50, true},
		{100, 400, 200, 50, 200, true},
		{1000, 1, 10, 10, 1, true},
	}
	for _, tt := range tests {
		w, h, resize := fitWithin(tt.w, tt.h, tt.limit)
		if w != tt.wantW || h != tt.wantH || resize != tt.wantResize {
			t.Errorf("fitWithin(%d, %d, %d) = %d, %d, %v", tt.w, tt.h, tt.limit, w, h, resize)
		}
	}
}
