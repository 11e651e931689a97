package placement

import (
	"arshapes/internal/ar"
	"arshapes/internal/scene"
)

// TapResult says what a screen tap did.
type TapResult struct {
	Node   *scene.Node       // tapped placed node, if any
	Placed *scene.AnchorNode // newly placed anchor node, if any
	Plane  *ar.Plane         // plane the tap hit, if any
}

// Dispatch routes a tap ray: placed nodes in front of the nearest plane hit take the
// tap, otherwise the nearest plane hit is handled by OnTapPlane. Empty space does nothing.
func (p *Placer) Dispatch(ray ar.Ray) (TapResult, error) {
	hits := p.Session.HitTest(ray)
	node, nodeDist, nodeHit := p.Root.HitTest(ray)
	if nodeHit && (len(hits) == 0 || nodeDist <= hits[0].Distance) {
		node.Tap()
		return TapResult{Node: node}, nil
	}
	if len(hits) == 0 {
		return TapResult{}, nil
	}
	hit := hits[0]
	placed, err := p.OnTapPlane(hit, hit.Plane)
	return TapResult{Placed: placed, Plane: hit.Plane}, err
}
