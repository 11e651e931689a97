// Package shape generates the primitive renderables the app places: cubes, spheres and
// cylinders with a material.
package shape

import (
	"fmt"

	"arshapes/internal/ar"
	"arshapes/internal/material"
)

// Kind is a primitive mesh type.
type Kind int

const (
	Cube Kind = iota
	Sphere
	Cylinder
)

func (k Kind) String() string {
	switch k {
	case Cube:
		return "cube"
	case Sphere:
		return "sphere"
	case Cylinder:
		return "cylinder"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Renderable is a primitive mesh description plus the material it is drawn with.
// Center is the mesh center in the owning node's local space.
type Renderable struct {
	Kind Kind
	// Size holds the cube extents. For spheres and cylinders Size.X is the radius and, for
	// cylinders, Size.Y the height.
	Size     ar.Vec3
	Center   ar.Vec3
	Material *material.Material
}

// SetMaterial replaces the material reference. The mesh is unchanged.
func (r *Renderable) SetMaterial(m *material.Material) {
	r.Material = m
}

// Radius returns the sphere or cylinder radius, or zero for cubes.
func (r *Renderable) Radius() float32 {
	if r.Kind == Cube {
		return 0
	}
	return r.Size.X
}

// Height returns the cylinder height; zero for other kinds.
func (r *Renderable) Height() float32 {
	if r.Kind == Cylinder {
		return r.Size.Y
	}
	return 0
}

// Bounds returns the local-space bounding box of the mesh.
func (r *Renderable) Bounds() ar.AABB {
	var half ar.Vec3
	switch r.Kind {
	case Cube:
		half = r.Size.Scale(0.5)
	case Sphere:
		half = ar.V3(r.Size.X, r.Size.X, r.Size.X)
	case Cylinder:
		half = ar.V3(r.Size.X, r.Size.Y/2, r.Size.X)
	}
	return ar.AABB{Min: r.Center.Sub(half), Max: r.Center.Add(half)}
}

// MakeCube returns a cube with the given extents centered at center.
func MakeCube(size, center ar.Vec3, m *material.Material) *Renderable {
	return &Renderable{Kind: Cube, Size: size, Center: center, Material: m}
}

// MakeSphere returns a sphere of the given radius centered at center.
func MakeSphere(radius float32, center ar.Vec3, m *material.Material) *Renderable {
	return &Renderable{Kind: Sphere, Size: ar.V3(radius, radius, radius), Center: center, Material: m}
}

// MakeCylinder returns an upright cylinder centered at center.
func MakeCylinder(radius, height float32, center ar.Vec3, m *material.Material) *Renderable {
	return &Renderable{Kind: Cylinder, Size: ar.V3(radius, height, radius), Center: center, Material: m}
}

// Generator builds a primitive of kind-specific dimensions from one size parameter.
type Generator func(size float32, m *material.Material) *Renderable

// Generators maps each kind to the generator used for placement. Every generator lifts
// its shape by half the size so it rests on the surface instead of straddling it.
var Generators = map[Kind]Generator{
	Cube: func(size float32, m *material.Material) *Renderable {
		return MakeCube(ar.V3(size, size, size), ar.V3(0, size/2, 0), m)
	},
	Sphere: func(size float32, m *material.Material) *Renderable {
		return MakeSphere(size, ar.V3(size/2, size/2, size/2), m)
	},
	Cylinder: func(size float32, m *material.Material) *Renderable {
		return MakeCylinder(size, size, ar.V3(0, size/2, 0), m)
	},
}

// Generate builds a primitive of kind k. Unknown kinds produce nil.
func Generate(k Kind, size float32, m *material.Material) *Renderable {
	gen, ok := Generators[k]
	if !ok {
		return nil
	}
	return gen(size, m)
}
