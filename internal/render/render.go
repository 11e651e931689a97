// Package render draws the scene with raylib: placed shapes with their materials, the
// tracked planes and a reference grid.
package render

import (
	"image/color"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"arshapes/internal/ar"
	"arshapes/internal/material"
	"arshapes/internal/render/shading"
	"arshapes/internal/scene"
	"arshapes/internal/shape"
)

// Mesh resolution.
const (
	sphereRings     = 24
	sphereSlices    = 24
	cylinderSlices  = 32
	selectionMargin = 1.04
)

var (
	selectionColor = rl.NewColor(255, 210, 90, 255)
	planeUpColor   = rl.NewColor(90, 200, 255, 60)
	planeDownColor = rl.NewColor(255, 120, 200, 40)
	planeWallColor = rl.NewColor(140, 255, 140, 40)
)

// Renderer owns every GPU resource. Meshes, shaders and textures are created on first
// use so that they are allocated after the window/OpenGL context exists. All methods
// must be called from the goroutine that owns the window.
type Renderer struct {
	meshes     map[shape.Kind]rl.Mesh
	flat       rl.Material
	textured   rl.Material
	flatSh     litShader
	texSh      litShader
	baseShader rl.Shader
	baseAlbedo rl.Texture2D
	lit        bool
	textures   map[*material.Texture]rl.Texture2D
	frame      shading.Lighting
	ready      bool
}

// New returns a renderer with nothing loaded.
func New() *Renderer {
	return &Renderer{
		meshes:   make(map[shape.Kind]rl.Mesh),
		textures: make(map[*material.Texture]rl.Texture2D),
	}
}

func (r *Renderer) ensure() {
	if r.ready {
		return
	}
	r.ready = true
	r.flat = rl.LoadMaterialDefault()
	r.textured = rl.LoadMaterialDefault()
	// Defaults from LoadMaterialDefault, restored before the materials are unloaded.
	r.baseShader = r.flat.Shader
	r.baseAlbedo = r.textured.GetMap(rl.MapAlbedo).Texture
	flat, ok1 := loadLitShader(litFS)
	tex, ok2 := loadLitShader(litTexturedFS)
	if ok1 && ok2 {
		r.flatSh, r.texSh, r.lit = flat, tex, true
		r.flat.Shader = flat.shader
		r.textured.Shader = tex.shader
	}
}

// Unit meshes: cube of side 1, sphere of radius 1, cylinder of radius 1 and height 1
// with its base at y=0.
func (r *Renderer) mesh(k shape.Kind) (rl.Mesh, bool) {
	if m, ok := r.meshes[k]; ok {
		return m, true
	}
	var m rl.Mesh
	switch k {
	case shape.Cube:
		m = rl.GenMeshCube(1, 1, 1)
	case shape.Sphere:
		m = rl.GenMeshSphere(1, sphereRings, sphereSlices)
	case shape.Cylinder:
		m = rl.GenMeshCylinder(1, 1, cylinderSlices)
	default:
		return rl.Mesh{}, false
	}
	r.meshes[k] = m
	return m, true
}

// texture uploads t on first use. Textures are shared between materials, so they are
// keyed by pointer.
func (r *Renderer) texture(t *material.Texture) (rl.Texture2D, bool) {
	if tex, ok := r.textures[t]; ok {
		return tex, rl.IsTextureValid(tex)
	}
	img := rl.NewImageFromImage(t.Image)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if rl.IsTextureValid(tex) {
		rl.GenTextureMipmaps(&tex)
		rl.SetTextureFilter(tex, rl.FilterTrilinear)
	}
	r.textures[t] = tex
	return tex, rl.IsTextureValid(tex)
}

// Begin sets the frame's lighting from the session estimate. Call once per frame inside
// BeginMode3D before drawing nodes.
func (r *Renderer) Begin(est ar.LightEstimate, viewPos ar.Vec3) {
	r.ensure()
	r.frame = shading.FromEstimate(est, viewPos)
	if r.lit {
		r.flatSh.setFrame(r.frame)
		r.texSh.setFrame(r.frame)
	}
}

// DrawNode draws one placed node lift meters above its anchor. selected nodes get a wire
// box around them.
func (r *Renderer) DrawNode(n *scene.Node, lift float32, selected bool) {
	rd := n.Renderable
	if rd == nil {
		return
	}
	mesh, ok := r.mesh(rd.Kind)
	if !ok {
		return
	}
	s := shading.For(rd.Material)
	mtl, sh := r.flat, &r.flatSh
	if s.Texture != nil {
		if tex, ok := r.texture(s.Texture); ok {
			rl.SetMaterialTexture(&r.textured, rl.MapAlbedo, tex)
			mtl, sh = r.textured, &r.texSh
		}
	}
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rlColor(s.Color)
	}
	if r.lit {
		sh.setSurface(s)
	}
	rl.DrawMesh(mesh, mtl, nodeMatrix(n, lift))

	if selected {
		b := n.WorldBounds()
		c := b.Min.Add(b.Max).Scale(0.5).Add(ar.V3(0, lift, 0))
		size := b.Max.Sub(b.Min).Scale(selectionMargin)
		rl.DrawCubeWiresV(vec(c), vec(size), selectionColor)
	}
}

// nodeMatrix places the unit mesh: mesh offset, size and center in renderable space, then
// the node's scale and yaw, then the anchor position. rl.MatrixMultiply(a, b) applies a
// first.
func nodeMatrix(n *scene.Node, lift float32) rl.Matrix {
	rd := n.Renderable
	m := rl.MatrixIdentity()
	size := rd.Size
	switch rd.Kind {
	case shape.Cylinder:
		m = rl.MatrixTranslate(0, -0.5, 0)
	case shape.Sphere:
		size = ar.V3(rd.Size.X, rd.Size.X, rd.Size.X)
	}
	m = rl.MatrixMultiply(m, rl.MatrixScale(size.X, size.Y, size.Z))
	m = rl.MatrixMultiply(m, rl.MatrixTranslate(rd.Center.X, rd.Center.Y, rd.Center.Z))
	s := n.Transform.Scale
	m = rl.MatrixMultiply(m, rl.MatrixScale(s, s, s))
	m = rl.MatrixMultiply(m, rl.MatrixRotateY(n.Transform.Yaw*math32.Pi/180))
	p := n.WorldPosition()
	return rl.MatrixMultiply(m, rl.MatrixTranslate(p.X, p.Y+lift, p.Z))
}

// DrawPlanes outlines and tints each tracked plane by type.
func (r *Renderer) DrawPlanes(planes []*ar.Plane) {
	for _, p := range planes {
		c := planeUpColor
		switch p.Type {
		case ar.HorizontalDownwardFacing:
			c = planeDownColor
		case ar.Vertical:
			c = planeWallColor
		}
		q := corners(p)
		rl.DrawTriangle3D(vec(q[0]), vec(q[1]), vec(q[2]), c)
		rl.DrawTriangle3D(vec(q[0]), vec(q[2]), vec(q[3]), c)
		rl.DrawTriangle3D(vec(q[0]), vec(q[2]), vec(q[1]), c)
		rl.DrawTriangle3D(vec(q[0]), vec(q[3]), vec(q[2]), c)
		edge := c
		edge.A = 200
		for i := range q {
			rl.DrawLine3D(vec(q[i]), vec(q[(i+1)%4]), edge)
		}
	}
}

// corners returns the plane's rectangle, slightly offset along its normal so it does not
// fight with the grid.
func corners(p *ar.Plane) [4]ar.Vec3 {
	n := p.Normal.Normalize()
	c := p.Center.Position.Add(n.Scale(0.002))
	hx, hz := p.ExtentX/2, p.ExtentZ/2
	var u, v ar.Vec3
	if p.Type.IsHorizontal() {
		u, v = ar.V3(hx, 0, 0), ar.V3(0, 0, hz)
	} else {
		u, v = ar.V3(-n.Z, 0, n.X).Normalize().Scale(hx), ar.V3(0, hz, 0)
	}
	return [4]ar.Vec3{
		c.Sub(u).Sub(v),
		c.Add(u).Sub(v),
		c.Add(u).Add(v),
		c.Sub(u).Add(v),
	}
}

// Unload releases every GPU resource. The renderer can be reused afterwards.
func (r *Renderer) Unload() {
	for k, m := range r.meshes {
		rl.UnloadMesh(&m)
		delete(r.meshes, k)
	}
	for t, tex := range r.textures {
		if rl.IsTextureValid(tex) {
			rl.UnloadTexture(tex)
		}
		delete(r.textures, t)
	}
	if r.lit {
		rl.UnloadShader(r.flatSh.shader)
		rl.UnloadShader(r.texSh.shader)
	}
	if r.ready {
		// UnloadMaterial frees non-default shaders and map textures; both are released above.
		for _, m := range []*rl.Material{&r.flat, &r.textured} {
			m.Shader = r.baseShader
			m.GetMap(rl.MapAlbedo).Texture = r.baseAlbedo
			rl.UnloadMaterial(*m)
		}
	}
	r.ready, r.lit = false, false
}

func vec(v ar.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X, v.Y, v.Z)
}

func rlColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
