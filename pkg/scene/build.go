package scene

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-drift/anchor/pkg/core"
	"github.com/go-drift/anchor/pkg/geometry"
	"github.com/go-drift/anchor/pkg/widgets"
)

func parseAxis(s string) (widgets.Axis, error) {
	switch strings.ToLower(s) {
	case "", "vertical":
		return widgets.Vertical, nil
	case "horizontal":
		return widgets.Horizontal, nil
	}
	return widgets.Vertical, fmt.Errorf("unknown axis %q", s)
}

// Tree is a scene built into live elements.
type Tree struct {
	Root *core.Root
	Top  core.Element

	byName map[string]core.Element
	kinds  map[core.Element]string
}

// Build creates the elements of s, mounts the top node on a fresh Root and
// runs one update so every element has resolved geometry and a render index.
// s must have been validated.
func Build(s *Scene) (*Tree, error) {
	t := &Tree{
		Root:   core.NewRoot(),
		byName: make(map[string]core.Element),
		kinds:  make(map[core.Element]string),
	}
	top, err := t.newElement(&s.Root)
	if err != nil {
		return nil, err
	}
	if err := t.Root.Mount(top); err != nil {
		return nil, err
	}
	t.Top = top
	if err := t.addChildren(top, s.Root.Children); err != nil {
		return nil, err
	}
	t.Root.Update()
	return t, nil
}

func (t *Tree) addChildren(parent core.Element, nodes []Node) error {
	if len(nodes) == 0 {
		return nil
	}
	c, ok := parent.(core.Container)
	if !ok {
		return fmt.Errorf("%s cannot hold children", parent.Base())
	}
	for i := range nodes {
		el, err := t.newElement(&nodes[i])
		if err != nil {
			return err
		}
		if err := c.AddChild(el); err != nil {
			return err
		}
		if err := t.addChildren(el, nodes[i].Children); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) newElement(n *Node) (core.Element, error) {
	var el core.Element
	switch n.Kind {
	case KindBox:
		el = widgets.NewBox(n.Name)
	case KindFlow:
		axis, err := parseAxis(n.Axis)
		if err != nil {
			return nil, err
		}
		el = widgets.NewFlow(n.Name, axis, n.Spacing)
	case KindLeaf:
		el = widgets.NewLeaf(n.Name)
	default:
		return nil, fmt.Errorf("unknown kind %q", n.Kind)
	}
	apply(el.Base(), n)
	t.byName[n.Name] = el
	t.kinds[el] = n.Kind
	return el, nil
}

// apply copies the node inputs onto an unattached element.
func apply(b *core.ElementBase, n *Node) {
	b.SetOffset(geometry.Offset{X: n.Offset.X, Y: n.Offset.Y})
	b.SetSize(geometry.Size{Width: n.Size.Width, Height: n.Size.Height})
	b.SetPlacement(n.PlaceX, n.PlaceY)
	b.SetMargin(n.Margin.Bounds())
	b.SetPadding(n.Padding.Bounds())
	if n.Clip != nil {
		b.SetClip(n.Clip.Bounds())
	}
	if n.Visible != nil {
		b.SetVisible(*n.Visible)
	}
	if n.EmitsChanged != nil {
		b.SetEmitsChanged(*n.EmitsChanged)
	}
	b.SetTopmost(n.Topmost)
	b.SetSolid(n.Solid)
	if n.Snap != nil {
		b.SetSnapToPixels(*n.Snap)
	}
	b.SetZOffset(n.Z)
}

// Lookup returns the element built for the named node.
func (t *Tree) Lookup(name string) (core.Element, bool) {
	el, ok := t.byName[name]
	return el, ok
}

// Entry is a flattened view of one element's resolved state.
type Entry struct {
	Name        string
	Kind        string
	Depth       int
	RenderIndex uint64
	Bounds      geometry.Rect
	Clip        geometry.Rect
	Visible     bool
	Solid       bool
	Focused     bool
}

// Entries lists every element in draw order.
func (t *Tree) Entries() []Entry {
	var out []Entry
	focused := t.Root.Focused()
	var walk func(el core.Element)
	walk = func(el core.Element) {
		b := el.Base()
		out = append(out, Entry{
			Name:        b.Name(),
			Kind:        t.kinds[el],
			Depth:       b.Depth(),
			RenderIndex: b.RenderIndex(),
			Bounds:      b.AbsoluteBounds(),
			Clip:        b.AbsoluteClip(),
			Visible:     b.IsShowing(),
			Solid:       b.IsSolid(),
			Focused:     focused != nil && focused == el,
		})
		if v, ok := el.(core.ChildVisitor); ok {
			v.VisitChildren(func(child core.Element) bool {
				walk(child)
				return true
			})
		}
	}
	if t.Top != nil {
		walk(t.Top)
	}
	return out
}

// Names returns the node names in sorted order.
func (t *Tree) Names() []string {
	names := make([]string, 0, len(t.byName))
	for name := range t.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Hit returns the name of the element under pos, or "".
func (t *Tree) Hit(pos geometry.Offset) string {
	el := t.Root.HitTest(pos)
	if el == nil {
		return ""
	}
	return el.Base().Name()
}
