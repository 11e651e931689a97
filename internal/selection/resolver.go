package selection

import (
	"arshapes/internal/material"
	"arshapes/internal/shape"
)

// Option ids of the shape and material groups.
const (
	IDCube     = "cube"
	IDSphere   = "sphere"
	IDCylinder = "cylinder"

	IDColor   = "color"
	IDTexture = "texture"
	IDCustom  = "custom"
)

// NewShapeGroup returns the shape group with cube checked.
func NewShapeGroup() *Group { return NewGroup(IDCube, IDSphere, IDCylinder) }

// NewMaterialGroup returns the material group with color checked.
func NewMaterialGroup() *Group { return NewGroup(IDColor, IDTexture, IDCustom) }

// ShapeChoice is the parsed state of the shape group. ShapeOther covers the cylinder
// option and anything else, including no option checked.
type ShapeChoice int

const (
	ShapeCube ShapeChoice = iota
	ShapeSphere
	ShapeOther
)

// MaterialChoice is the parsed state of the material group. MaterialOther covers the
// custom option and anything else.
type MaterialChoice int

const (
	MaterialColor MaterialChoice = iota
	MaterialTexture
	MaterialOther
)

// ParseShapeChoice maps a checked option id to a choice.
func ParseShapeChoice(id string) ShapeChoice {
	switch id {
	case IDCube:
		return ShapeCube
	case IDSphere:
		return ShapeSphere
	}
	return ShapeOther
}

// ParseMaterialChoice maps a checked option id to a choice.
func ParseMaterialChoice(id string) MaterialChoice {
	switch id {
	case IDColor:
		return MaterialColor
	case IDTexture:
		return MaterialTexture
	}
	return MaterialOther
}

var shapeTable = map[ShapeChoice]shape.Kind{
	ShapeCube:   shape.Cube,
	ShapeSphere: shape.Sphere,
	ShapeOther:  shape.Cylinder,
}

var materialTable = map[MaterialChoice]material.Kind{
	MaterialColor:   material.KindColor,
	MaterialTexture: material.KindTexture,
	MaterialOther:   material.KindCustom,
}

// Resolver reads the groups on every call; nothing is cached.
type Resolver struct {
	Shapes    OptionGroup
	Materials OptionGroup
	Slots     *material.Slots
}

// ResolveShapeKind returns the shape kind for the checked shape option.
func (r *Resolver) ResolveShapeKind() shape.Kind {
	return shapeTable[ParseShapeChoice(r.Shapes.CheckedID())]
}

// ResolveMaterialKind returns the material kind for the checked material option.
func (r *Resolver) ResolveMaterialKind() material.Kind {
	return materialTable[ParseMaterialChoice(r.Materials.CheckedID())]
}

// ResolveMaterial returns whatever the selected slot holds right now. While that
// slot's pipeline is still running (or after it failed) this is nil.
func (r *Resolver) ResolveMaterial() *material.Material {
	return r.Slots.For(r.ResolveMaterialKind()).Peek()
}

// ResolveMaterialReady returns the selected material, material.ErrNotReady while its
// pipeline is running, or the pipeline's error.
func (r *Resolver) ResolveMaterialReady() (*material.Material, error) {
	return r.Slots.For(r.ResolveMaterialKind()).Get()
}
