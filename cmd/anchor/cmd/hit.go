package cmd

import (
	"fmt"
	"strconv"

	"github.com/go-drift/anchor/pkg/geometry"
)

func init() {
	RegisterCommand(&Command{
		Name:  "hit",
		Short: "Show the element under a point",
		Long: `Build the scene and report the solid, visible element that receives a
pointer event at (x, y): the one with the highest render index whose clipped
bounds contain the point.

Usage:
  anchor hit ui.yaml 40 12
  anchor hit 40 12            # scene from anchor.yaml`,
		Usage: "anchor hit [scene] <x> <y>",
		Run:   runHit,
	})
}

func runHit(args []string) error {
	var explicit string
	switch len(args) {
	case 2:
	case 3:
		explicit, args = args[0], args[1:]
	default:
		return fmt.Errorf("x and y are required\n\nUsage: anchor hit [scene] <x> <y>")
	}

	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid x %q: %w", args[0], err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid y %q: %w", args[1], err)
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	path, err := s.scenePath(explicit)
	if err != nil {
		return err
	}
	_, tree, err := buildScene(path)
	if err != nil {
		return err
	}

	st := newStyles(stdout, s.color)
	pos := geometry.Offset{X: x, Y: y}
	name := tree.Hit(pos)
	if name == "" {
		fmt.Fprintf(stdout, "(%g, %g): no element\n", x, y)
		return nil
	}
	el, _ := tree.Lookup(name)
	fmt.Fprintf(stdout, "(%g, %g): %s %s\n", x, y, st.hit.Render(name), formatRect(el.Base().VisibleBounds()))
	return nil
}
