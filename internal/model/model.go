// Package model imports glTF 2.0 model resources (.gltf with its buffers, or .glb).
// Only mesh statistics and the materials the meshes use are kept.
package model

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"arshapes/internal/archive"
	"arshapes/internal/ar"
	"arshapes/internal/material"
)

// Mesh is one glTF mesh; its primitives are merged.
type Mesh struct {
	Name      string
	Material  *material.Material
	Vertices  int
	Triangles int
	Bounds    ar.AABB
}

// Model is an imported model. Meshes are in file order; the first is the default mesh.
type Model struct {
	Name      string
	Meshes    []*Mesh
	Materials map[string]*material.Material
	// materialOrder keeps document order so DefaultMaterial is deterministic.
	materialOrder []string
	textures      map[string]textureRef
}

// DefaultMaterial returns the material of the first mesh that has one, falling back to
// the first material declared by the document.
func (m *Model) DefaultMaterial() *material.Material {
	for _, mesh := range m.Meshes {
		if mesh.Material != nil {
			return mesh.Material
		}
	}
	if len(m.materialOrder) > 0 {
		return m.Materials[m.materialOrder[0]]
	}
	return nil
}

// Loader reads glTF models, directly or from a .zip bundle. Base color textures are
// decoded with Textures when it is set.
type Loader struct {
	Textures material.TextureDecoder
	// CacheDir receives unpacked bundles and embedded images. Defaults to a temporary
	// directory.
	CacheDir string
}

// Load imports the model at source.
func (l *Loader) Load(ctx context.Context, source string) (*Model, error) {
	path := source
	if strings.EqualFold(filepath.Ext(source), ".zip") {
		p, err := l.unpack(source)
		if err != nil {
			return nil, err
		}
		path = p
	}
	mdl, err := readGLTF(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", source, err)
	}
	mdl.Name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if err := l.loadTextures(ctx, mdl); err != nil {
		return nil, fmt.Errorf("model %s: %w", source, err)
	}
	return mdl, nil
}

// LoadModel implements material.ModelLoader.
func (l *Loader) LoadModel(ctx context.Context, source string) (material.Model, error) {
	m, err := l.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// workDir returns a directory under CacheDir named name, or a fresh temporary one.
func (l *Loader) workDir(name string) (string, error) {
	if l.CacheDir == "" {
		return os.MkdirTemp("", "arshapes-model-")
	}
	dir := filepath.Join(l.CacheDir, name)
	return dir, os.MkdirAll(dir, 0755)
}

func (l *Loader) unpack(bundle string) (string, error) {
	dir, err := l.workDir(strings.TrimSuffix(filepath.Base(bundle), filepath.Ext(bundle)))
	if err != nil {
		return "", fmt.Errorf("model: %w", err)
	}
	if _, err := archive.Unzip(bundle, dir); err != nil {
		return "", fmt.Errorf("model: %w", err)
	}
	for _, ext := range []string{".gltf", ".glb"} {
		found, err := archive.FindFiles(dir, ext)
		if err != nil {
			return "", fmt.Errorf("model: %w", err)
		}
		if len(found) > 0 {
			return filepath.Join(dir, filepath.FromSlash(found[0])), nil
		}
	}
	return "", fmt.Errorf("model: bundle %s contains no .gltf or .glb file", bundle)
}

func (l *Loader) loadTextures(ctx context.Context, mdl *Model) error {
	if l.Textures == nil {
		return nil
	}
	for i, name := range mdl.materialOrder {
		ref, ok := mdl.textures[name]
		if !ok {
			continue
		}
		src := ref.path
		if ref.data != nil {
			dir, err := l.workDir(mdl.Name + "-images")
			if err != nil {
				return err
			}
			src = filepath.Join(dir, fmt.Sprintf("image%d%s", i, imageExt(ref.mime)))
			if err := os.WriteFile(src, ref.data, 0644); err != nil {
				return err
			}
		}
		tex, err := l.Textures.Decode(ctx, src)
		if err != nil {
			return err
		}
		mdl.Materials[name].Texture = tex
	}
	return nil
}

func imageExt(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	}
	return ".png"
}
