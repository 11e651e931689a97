// Package scene is the graph of placed content: a root owning anchor nodes, each owning
// the transformable shape nodes attached to that anchor.
package scene

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/google/uuid"

	"arshapes/internal/ar"
	"arshapes/internal/shape"
)

// TapListener is called when a node is tapped.
type TapListener func(n *Node)

// Node is a transformable node holding one renderable.
type Node struct {
	ID         uuid.UUID
	Renderable *shape.Renderable
	Transform  Transform
	parent     *AnchorNode
	onTap      TapListener
}

// NewNode returns a node with an identity transform.
func NewNode(r *shape.Renderable) *Node {
	return &Node{ID: uuid.New(), Renderable: r, Transform: Identity()}
}

// SetOnTapListener replaces the node's tap listener.
func (n *Node) SetOnTapListener(l TapListener) {
	n.onTap = l
}

// Tap delivers a tap to the node's listener, if any.
func (n *Node) Tap() {
	if n.onTap != nil {
		n.onTap(n)
	}
}

// Parent returns the anchor node the node is attached to, or nil.
func (n *Node) Parent() *AnchorNode {
	return n.parent
}

// SetParent attaches n to an anchor node, detaching it from its previous one.
func (n *Node) SetParent(a *AnchorNode) {
	if n.parent == a {
		return
	}
	if n.parent != nil {
		n.parent.removeChild(n)
	}
	n.parent = a
	if a != nil {
		a.children = append(a.children, n)
	}
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() ar.Vec3 {
	if n.parent == nil {
		return ar.Vec3{}
	}
	return n.parent.Position()
}

// WorldBounds returns the world-space box around the node's renderable after scale and
// yaw are applied about the node origin.
func (n *Node) WorldBounds() ar.AABB {
	if n.Renderable == nil {
		p := n.WorldPosition()
		return ar.AABB{Min: p, Max: p}
	}
	local := n.Renderable.Bounds()
	sin, cos := math32.Sincos(n.Transform.Yaw * math32.Pi / 180)
	origin := n.WorldPosition()
	var out ar.AABB
	for i := 0; i < 8; i++ {
		c := local.Min
		if i&1 != 0 {
			c.X = local.Max.X
		}
		if i&2 != 0 {
			c.Y = local.Max.Y
		}
		if i&4 != 0 {
			c.Z = local.Max.Z
		}
		c = c.Scale(n.Transform.Scale)
		c = ar.V3(c.X*cos+c.Z*sin, c.Y, -c.X*sin+c.Z*cos).Add(origin)
		if i == 0 {
			out = ar.AABB{Min: c, Max: c}
			continue
		}
		out.Min = ar.V3(min(out.Min.X, c.X), min(out.Min.Y, c.Y), min(out.Min.Z, c.Z))
		out.Max = ar.V3(max(out.Max.X, c.X), max(out.Max.Y, c.Y), max(out.Max.Z, c.Z))
	}
	return out
}

// AnchorNode ties its children to a tracked anchor.
type AnchorNode struct {
	ID       uuid.UUID
	Anchor   *ar.Anchor
	children []*Node
}

// NewAnchorNode wraps a.
func NewAnchorNode(a *ar.Anchor) *AnchorNode {
	return &AnchorNode{ID: uuid.New(), Anchor: a}
}

// Position returns the anchor's world position.
func (a *AnchorNode) Position() ar.Vec3 {
	if a.Anchor == nil {
		return ar.Vec3{}
	}
	return a.Anchor.Pose.Position
}

// Children returns the nodes attached to a.
func (a *AnchorNode) Children() []*Node {
	out := make([]*Node, len(a.children))
	copy(out, a.children)
	return out
}

func (a *AnchorNode) removeChild(n *Node) {
	for i, c := range a.children {
		if c == n {
			a.children = append(a.children[:i], a.children[i+1:]...)
			return
		}
	}
}

// Root is the top-level owner of all placed content for one session.
type Root struct {
	mu       sync.Mutex
	children []*AnchorNode
	// detach is called with the anchor of every removed anchor node.
	detach func(*ar.Anchor)
}

// NewRoot returns an empty root. detach, if not nil, releases anchors of removed
// anchor nodes (normally ar.Session.RemoveAnchor).
func NewRoot(detach func(*ar.Anchor)) *Root {
	return &Root{detach: detach}
}

// AddChild adds an anchor node to the root.
func (r *Root) AddChild(a *AnchorNode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.children {
		if c == a {
			return
		}
	}
	r.children = append(r.children, a)
}

// RemoveChild removes a and detaches its anchor. It reports whether a was a child.
func (r *Root) RemoveChild(a *AnchorNode) bool {
	r.mu.Lock()
	found := false
	for i, c := range r.children {
		if c == a {
			r.children = append(r.children[:i], r.children[i+1:]...)
			found = true
			break
		}
	}
	r.mu.Unlock()
	if found && r.detach != nil && a.Anchor != nil {
		r.detach(a.Anchor)
	}
	return found
}

// Clear removes every anchor node, detaching their anchors.
func (r *Root) Clear() {
	r.mu.Lock()
	children := r.children
	r.children = nil
	r.mu.Unlock()
	if r.detach == nil {
		return
	}
	for _, a := range children {
		if a.Anchor != nil {
			r.detach(a.Anchor)
		}
	}
}

// Children returns the anchor nodes in insertion order.
func (r *Root) Children() []*AnchorNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*AnchorNode, len(r.children))
	copy(out, r.children)
	return out
}

// Nodes returns every shape node in the graph, in insertion order.
func (r *Root) Nodes() []*Node {
	var out []*Node
	for _, a := range r.Children() {
		out = append(out, a.children...)
	}
	return out
}

// HitTest returns the nearest node whose world bounds the ray enters.
func (r *Root) HitTest(ray ar.Ray) (*Node, float32, bool) {
	var best *Node
	bestT := math32.Inf(1)
	for _, n := range r.Nodes() {
		if t, ok := n.WorldBounds().IntersectRay(ray); ok && t < bestT {
			best, bestT = n, t
		}
	}
	if best == nil {
		return nil, 0, false
	}
	return best, bestT, true
}
