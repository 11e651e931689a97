// Package selection holds the two option groups the user picks from and resolves the
// current choice to a shape kind and a material.
package selection

import (
	"fmt"
	"sync"
)

// OptionGroup is a set of mutually exclusive options. CheckedID returns the checked
// option, or "" when none is checked.
type OptionGroup interface {
	CheckedID() string
}

// Group is an in-memory OptionGroup. At most one option is checked at a time.
type Group struct {
	mu      sync.Mutex
	ids     []string
	checked string
}

// NewGroup returns a group with the given options, the first one checked.
func NewGroup(ids ...string) *Group {
	g := &Group{ids: ids}
	if len(ids) > 0 {
		g.checked = ids[0]
	}
	return g
}

// IDs returns the options in display order.
func (g *Group) IDs() []string {
	out := make([]string, len(g.ids))
	copy(out, g.ids)
	return out
}

// CheckedID returns the checked option.
func (g *Group) CheckedID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.checked
}

// Check checks id and unchecks every other option.
func (g *Group) Check(id string) error {
	for _, known := range g.ids {
		if known == id {
			g.mu.Lock()
			g.checked = id
			g.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("selection: unknown option %q", id)
}

// Clear unchecks every option.
func (g *Group) Clear() {
	g.mu.Lock()
	g.checked = ""
	g.mu.Unlock()
}
