package widgets

import "github.com/go-drift/anchor/pkg/core"

// Leaf is an element that cannot hold children.
type Leaf struct {
	core.ElementBase
}

// NewLeaf creates a Leaf.
func NewLeaf(name string) *Leaf {
	l := &Leaf{}
	l.SetSelf(l)
	l.SetName(name)
	return l
}
