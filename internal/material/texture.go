package material

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultMaxTextureEdge is the largest width or height a decoded texture keeps.
const DefaultMaxTextureEdge = 2048

// TextureDecoder turns a texture source into a decoded texture.
type TextureDecoder interface {
	Decode(ctx context.Context, source string) (*Texture, error)
}

// FetchFunc downloads url into dir and returns the saved file path.
type FetchFunc func(ctx context.Context, url, dir string) (string, error)

// ImageDecoder decodes PNG, JPEG, GIF, BMP and WebP files. Remote sources (http:// or
// https://) are fetched into CacheDir first.
type ImageDecoder struct {
	MaxEdge  int
	CacheDir string
	Fetch    FetchFunc
}

// Decode reads and decodes source, downscaling it so neither edge exceeds MaxEdge.
func (d *ImageDecoder) Decode(ctx context.Context, source string) (*Texture, error) {
	path := source
	if isRemote(source) {
		if d.Fetch == nil {
			return nil, fmt.Errorf("texture %s: remote sources are not enabled", source)
		}
		p, err := d.Fetch(ctx, source, d.cacheDir())
		if err != nil {
			return nil, fmt.Errorf("texture %s: %w", source, err)
		}
		path = p
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", source, err)
	}
	b := img.Bounds()
	if w, h, resize := fitWithin(b.Dx(), b.Dy(), d.maxEdge()); resize {
		img = transform.Resize(img, w, h, transform.Linear)
	}
	return NewTexture(source, img), nil
}

func (d *ImageDecoder) maxEdge() int {
	if d.MaxEdge > 0 {
		return d.MaxEdge
	}
	return DefaultMaxTextureEdge
}

func (d *ImageDecoder) cacheDir() string {
	if d.CacheDir != "" {
		return d.CacheDir
	}
	return filepath.Join("assets", "textures", "downloaded")
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// fitWithin scales w×h down, keeping the aspect ratio, so that neither edge exceeds limit.
func fitWithin(w, h, limit int) (int, int, bool) {
	if w <= limit && h <= limit {
		return w, h, false
	}
	if w >= h {
		return limit, max(1, h*limit/w), true
	}
	return max(1, w*limit/h), limit, true
}
