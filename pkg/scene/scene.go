// Package scene describes element trees declaratively and builds them into a
// live core.Root.
//
// Scenes are read from YAML or TOML; the format is picked from the file
// extension. A minimal YAML scene:
//
//	name: demo
//	root:
//	  kind: box
//	  size: {width: 320, height: 200}
//	  clip: {}
//	  children:
//	    - name: ok
//	      kind: leaf
//	      place_x: end
//	      place_y: end
//	      offset: {x: 8, y: 8}
//	      size: {width: 64, height: 24}
//	      solid: true
package scene

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/anchor/pkg/core"
	"github.com/go-drift/anchor/pkg/errors"
	"github.com/go-drift/anchor/pkg/geometry"
)

// Format is a scene file encoding.
type Format int

const (
	// FormatYAML decodes with gopkg.in/yaml.v3.
	FormatYAML Format = iota
	// FormatTOML decodes with go-toml.
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf("unsupported scene file extension %q", filepath.Ext(path))
}

// Kind values accepted in Node.Kind.
const (
	KindBox  = "box"
	KindFlow = "flow"
	KindLeaf = "leaf"
)

// Scene is a parsed scene file.
type Scene struct {
	Name string `yaml:"name,omitempty" toml:"name,omitempty"`
	Root Node   `yaml:"root" toml:"root"`
}

// Vec is a point or offset.
type Vec struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

// Extent is a declared size.
type Extent struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// Insets are edge distances. All, when set, applies to every edge and the
// individual edges are ignored.
type Insets struct {
	All    *float64 `yaml:"all,omitempty" toml:"all,omitempty"`
	Top    float64  `yaml:"top,omitempty" toml:"top,omitempty"`
	Right  float64  `yaml:"right,omitempty" toml:"right,omitempty"`
	Bottom float64  `yaml:"bottom,omitempty" toml:"bottom,omitempty"`
	Left   float64  `yaml:"left,omitempty" toml:"left,omitempty"`
}

// Bounds converts the insets to geometry bounds.
func (i Insets) Bounds() geometry.Bounds {
	if i.All != nil {
		return geometry.UniformBounds(*i.All)
	}
	return geometry.Bounds{Top: i.Top, Right: i.Right, Bottom: i.Bottom, Left: i.Left}
}

// Node describes one element and its children.
type Node struct {
	Name   string         `yaml:"name,omitempty" toml:"name,omitempty"`
	Kind   string         `yaml:"kind" toml:"kind"`
	Offset Vec            `yaml:"offset,omitempty" toml:"offset,omitempty"`
	Size   Extent         `yaml:"size,omitempty" toml:"size,omitempty"`
	PlaceX core.Placement `yaml:"place_x,omitempty" toml:"place_x,omitempty"`
	PlaceY core.Placement `yaml:"place_y,omitempty" toml:"place_y,omitempty"`

	Margin  Insets  `yaml:"margin,omitempty" toml:"margin,omitempty"`
	Padding Insets  `yaml:"padding,omitempty" toml:"padding,omitempty"`
	Clip    *Insets `yaml:"clip,omitempty" toml:"clip,omitempty"`

	Visible      *bool `yaml:"visible,omitempty" toml:"visible,omitempty"`
	EmitsChanged *bool `yaml:"emits_changed,omitempty" toml:"emits_changed,omitempty"`
	Topmost      bool  `yaml:"topmost,omitempty" toml:"topmost,omitempty"`
	Solid        bool  `yaml:"solid,omitempty" toml:"solid,omitempty"`
	Snap         *bool `yaml:"snap,omitempty" toml:"snap,omitempty"`
	Z            int   `yaml:"z,omitempty" toml:"z,omitempty"`

	// Flow only.
	Axis    string  `yaml:"axis,omitempty" toml:"axis,omitempty"`
	Spacing float64 `yaml:"spacing,omitempty" toml:"spacing,omitempty"`

	Children []Node `yaml:"children,omitempty" toml:"children,omitempty"`
}

// Load reads and validates the scene file at path.
func Load(path string) (*Scene, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, errors.Config("scene.Load", "", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scene.
func Parse(data []byte, format Format) (*Scene, error) {
	var s Scene
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &s)
	case FormatTOML:
		err = toml.Unmarshal(data, &s)
	default:
		err = fmt.Errorf("unknown format %v", format)
	}
	if err != nil {
		return nil, errors.Config("scene.Parse", "", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks kinds, axes, name uniqueness and that leaves have no
// children. Unnamed nodes are named after their path, e.g. "root/1/0".
func (s *Scene) Validate() error {
	seen := make(map[string]bool)
	return validateNode(&s.Root, "root", seen)
}

func validateNode(n *Node, path string, seen map[string]bool) error {
	const op = "scene.Validate"
	if n.Name == "" {
		n.Name = path
	}
	if seen[n.Name] {
		return errors.Config(op, n.Name, fmt.Errorf("duplicate node name %q", n.Name))
	}
	seen[n.Name] = true

	switch strings.ToLower(n.Kind) {
	case KindBox, KindFlow:
	case KindLeaf:
		if len(n.Children) > 0 {
			return errors.Config(op, n.Name, errors.ErrNotContainer)
		}
	case "":
		return errors.Config(op, n.Name, stderrors.New("missing kind"))
	default:
		return errors.Config(op, n.Name, fmt.Errorf("unknown kind %q", n.Kind))
	}
	n.Kind = strings.ToLower(n.Kind)

	if n.Kind == KindFlow {
		if _, err := parseAxis(n.Axis); err != nil {
			return errors.Config(op, n.Name, err)
		}
	} else if n.Axis != "" {
		return errors.Config(op, n.Name, fmt.Errorf("axis is only valid on a flow"))
	}

	for i := range n.Children {
		if err := validateNode(&n.Children[i], fmt.Sprintf("%s/%d", path, i), seen); err != nil {
			return err
		}
	}
	return nil
}
