// Package placement turns taps into placed shapes: a tap on an upward-facing plane
// anchors a new shape there, a tap on a placed shape re-applies the selected material.
package placement

import (
	"fmt"

	"arshapes/internal/ar"
	"arshapes/internal/material"
	"arshapes/internal/scene"
	"arshapes/internal/selection"
	"arshapes/internal/shape"
)

// DefaultSize is the edge length, radius and height used for placed shapes, in meters.
const DefaultSize = 0.3

// Placer handles plane and node taps.
type Placer struct {
	Session  ar.Session
	Root     *scene.Root
	Resolver *selection.Resolver
	// Transforms, if set, receives tapped nodes as the selection for scale/rotate gestures.
	Transforms *scene.TransformSystem
	Size       float32
	// RequireReadyMaterials refuses to place or re-tint with a material whose pipeline
	// has not completed. When false, an unloaded material is applied as nil.
	RequireReadyMaterials bool
	// OnError receives failures of re-tints triggered from node tap listeners.
	OnError func(error)
}

// New returns a placer for the given session, scene and selection.
func New(session ar.Session, root *scene.Root, r *selection.Resolver) *Placer {
	return &Placer{Session: session, Root: root, Resolver: r, Size: DefaultSize}
}

// OnTapPlane handles a tap that hit plane. Taps on planes that are not horizontal and
// upward facing are ignored and return (nil, nil).
func (p *Placer) OnTapPlane(hit ar.HitResult, plane *ar.Plane) (*scene.AnchorNode, error) {
	if plane == nil || plane.Type != ar.HorizontalUpwardFacing {
		return nil, nil
	}
	m, err := p.material()
	if err != nil {
		return nil, err
	}
	anchor, err := p.Session.CreateAnchor(hit)
	if err != nil {
		return nil, fmt.Errorf("placement: %w", err)
	}
	return p.addToScene(anchor, m), nil
}

// addToScene builds the selected shape, attaches it to a new anchor node and adds that
// to the scene root.
func (p *Placer) addToScene(anchor *ar.Anchor, m *material.Material) *scene.AnchorNode {
	anchorNode := scene.NewAnchorNode(anchor)
	node := scene.NewNode(shape.Generate(p.Resolver.ResolveShapeKind(), p.size(), m))
	node.SetParent(anchorNode)
	node.SetOnTapListener(func(n *scene.Node) {
		if err := p.Retint(n); err != nil && p.OnError != nil {
			p.OnError(err)
		}
	})
	p.Root.AddChild(anchorNode)
	return anchorNode
}

// Retint applies the currently selected material to n. Only the material reference
// changes.
func (p *Placer) Retint(n *scene.Node) error {
	if p.Transforms != nil {
		p.Transforms.Select(n)
	}
	if n == nil || n.Renderable == nil {
		return nil
	}
	m, err := p.material()
	if err != nil {
		return err
	}
	n.Renderable.SetMaterial(m)
	return nil
}

// Remove deletes an anchor node from the scene and releases its anchor.
func (p *Placer) Remove(a *scene.AnchorNode) bool {
	if p.Transforms != nil {
		p.Transforms.Forget(a)
	}
	return p.Root.RemoveChild(a)
}

// Clear removes all placed content.
func (p *Placer) Clear() {
	if p.Transforms != nil {
		p.Transforms.Select(nil)
	}
	p.Root.Clear()
}

func (p *Placer) material() (*material.Material, error) {
	if p.RequireReadyMaterials {
		m, err := p.Resolver.ResolveMaterialReady()
		if err != nil {
			return nil, fmt.Errorf("placement: %w", err)
		}
		return m, nil
	}
	return p.Resolver.ResolveMaterial(), nil
}

func (p *Placer) size() float32 {
	if p.Size > 0 {
		return p.Size
	}
	return DefaultSize
}
