package model

import (
	"context"
	"fmt"
	"image/color"
	"net/url"
	"path/filepath"

	"github.com/chewxy/math32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"arshapes/internal/ar"
	"arshapes/internal/material"
)

// textureRef is where a material's base color texture comes from: a file next to the
// model, or image bytes embedded in the document.
type textureRef struct {
	path string
	data []byte
	mime string
}

// readGLTF imports the glTF or GLB document at path.
func readGLTF(ctx context.Context, path string) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, err
	}
	mdl := &Model{
		Materials: make(map[string]*material.Material),
		textures:  make(map[string]textureRef),
	}

	byIndex := make([]*material.Material, len(doc.Materials))
	for i, src := range doc.Materials {
		m := importMaterial(src, i)
		byIndex[i] = m
		if _, seen := mdl.Materials[m.Name]; !seen {
			mdl.materialOrder = append(mdl.materialOrder, m.Name)
		}
		mdl.Materials[m.Name] = m
		if src.PBRMetallicRoughness == nil || src.PBRMetallicRoughness.BaseColorTexture == nil {
			continue
		}
		ref, err := imageRef(doc, filepath.Dir(path), src.PBRMetallicRoughness.BaseColorTexture.Index)
		if err != nil {
			return nil, fmt.Errorf("material %s: %w", m.Name, err)
		}
		mdl.textures[m.Name] = ref
	}

	for i, src := range doc.Meshes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := src.Name
		if name == "" {
			name = fmt.Sprintf("mesh%d", i)
		}
		mesh := &Mesh{Name: name}
		for _, p := range src.Primitives {
			if err := mesh.addPrimitive(doc, p, byIndex); err != nil {
				return nil, fmt.Errorf("mesh %s: %w", name, err)
			}
		}
		mdl.Meshes = append(mdl.Meshes, mesh)
	}
	return mdl, nil
}

func (m *Mesh) addPrimitive(doc *gltf.Document, p *gltf.Primitive, materials []*material.Material) error {
	idx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return fmt.Errorf("primitive without %s", gltf.POSITION)
	}
	if int(idx) < 0 || int(idx) >= len(doc.Accessors) {
		return fmt.Errorf("position accessor %d out of range", idx)
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[idx], nil)
	if err != nil {
		return err
	}
	for _, v := range positions {
		m.addVertex(ar.V3(v[0], v[1], v[2]))
	}

	if p.Material != nil {
		i := int(*p.Material)
		if i < 0 || i >= len(materials) {
			return fmt.Errorf("material %d out of range", i)
		}
		if m.Material == nil {
			m.Material = materials[i]
		}
	}

	if p.Mode != gltf.PrimitiveTriangles {
		return nil
	}
	count := len(positions)
	if p.Indices != nil {
		i := int(*p.Indices)
		if i < 0 || i >= len(doc.Accessors) {
			return fmt.Errorf("index accessor %d out of range", i)
		}
		count = int(doc.Accessors[i].Count)
	}
	m.Triangles += count / 3
	return nil
}

func (m *Mesh) addVertex(v ar.Vec3) {
	if m.Vertices == 0 {
		m.Bounds = ar.AABB{Min: v, Max: v}
	} else {
		m.Bounds.Min = ar.V3(math32.Min(m.Bounds.Min.X, v.X), math32.Min(m.Bounds.Min.Y, v.Y), math32.Min(m.Bounds.Min.Z, v.Z))
		m.Bounds.Max = ar.V3(math32.Max(m.Bounds.Max.X, v.X), math32.Max(m.Bounds.Max.Y, v.Y), math32.Max(m.Bounds.Max.Z, v.Z))
	}
	m.Vertices++
}

// imageRef resolves texture index to its image. URIs are relative to dir.
func imageRef(doc *gltf.Document, dir string, texture int) (textureRef, error) {
	if texture < 0 || texture >= len(doc.Textures) {
		return textureRef{}, fmt.Errorf("texture %d out of range", texture)
	}
	src := doc.Textures[texture].Source
	if src == nil || int(*src) < 0 || int(*src) >= len(doc.Images) {
		return textureRef{}, fmt.Errorf("texture %d has no image", texture)
	}
	img := doc.Images[*src]
	switch {
	case img.BufferView != nil:
		data, err := bufferViewData(doc, int(*img.BufferView))
		if err != nil {
			return textureRef{}, err
		}
		return textureRef{data: data, mime: img.MimeType}, nil
	case img.IsEmbeddedResource():
		data, err := img.MarshalData()
		if err != nil {
			return textureRef{}, err
		}
		return textureRef{data: data, mime: img.MimeType}, nil
	case img.URI != "":
		p, err := url.PathUnescape(img.URI)
		if err != nil {
			return textureRef{}, err
		}
		return textureRef{path: filepath.Join(dir, filepath.FromSlash(p))}, nil
	}
	return textureRef{}, fmt.Errorf("image %d has no data", *src)
}

func bufferViewData(doc *gltf.Document, i int) ([]byte, error) {
	if i < 0 || i >= len(doc.BufferViews) {
		return nil, fmt.Errorf("buffer view %d out of range", i)
	}
	bv := doc.BufferViews[i]
	if int(bv.Buffer) < 0 || int(bv.Buffer) >= len(doc.Buffers) {
		return nil, fmt.Errorf("buffer %d out of range", bv.Buffer)
	}
	data := doc.Buffers[bv.Buffer].Data
	start, end := int(bv.ByteOffset), int(bv.ByteOffset)+int(bv.ByteLength)
	if end > len(data) {
		return nil, fmt.Errorf("buffer view %d exceeds its buffer", i)
	}
	return data[start:end], nil
}

// importMaterial converts a metallic-roughness material. Factors the document leaves
// out keep the material package defaults rather than glTF's.
func importMaterial(src *gltf.Material, i int) *material.Material {
	name := src.Name
	if name == "" {
		name = fmt.Sprintf("material%d", i)
	}
	m := &material.Material{
		Name:        name,
		Kind:        material.KindCustom,
		BaseColor:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Metallic:    material.DefaultMetallic,
		Roughness:   material.DefaultRoughness,
		Reflectance: material.DefaultReflectance,
		Params:      make(map[string]float32),
	}
	if pbr := src.PBRMetallicRoughness; pbr != nil {
		if f := pbr.BaseColorFactor; f != nil {
			m.BaseColor.R, m.BaseColor.G, m.BaseColor.B = unit8(float32(f[0])), unit8(float32(f[1])), unit8(float32(f[2]))
			if src.AlphaMode == gltf.AlphaBlend {
				m.Params["opacity"] = clamp(float32(f[3]), 0, 1)
			}
		}
		if pbr.MetallicFactor != nil {
			m.Metallic = clamp(float32(*pbr.MetallicFactor), 0, 1)
		}
		if pbr.RoughnessFactor != nil {
			m.Roughness = clamp(float32(*pbr.RoughnessFactor), 0, 1)
		}
	}
	if e := src.EmissiveFactor; e[0] != 0 || e[1] != 0 || e[2] != 0 {
		m.Params["emissive_r"], m.Params["emissive_g"], m.Params["emissive_b"] = float32(e[0]), float32(e[1]), float32(e[2])
	}
	return m
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

func unit8(v float32) uint8 {
	return uint8(clamp(v, 0, 1)*255 + 0.5)
}
