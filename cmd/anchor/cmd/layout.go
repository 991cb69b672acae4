package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-drift/anchor/pkg/scene"
)

func init() {
	RegisterCommand(&Command{
		Name:  "layout",
		Short: "Print resolved geometry of a scene",
		Long: `Build the scene and print every element in draw order with its render
index, absolute bounds, clip rectangle and flags.

The scene path may be omitted when anchor.yaml names one.

Usage:
  anchor layout ui.yaml
  anchor layout --no-color ui.toml`,
		Usage: "anchor layout [scene]",
		Run:   runLayout,
	})
}

func runLayout(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("too many arguments\n\nUsage: anchor layout [scene]")
	}
	s, err := newSession()
	if err != nil {
		return err
	}
	var explicit string
	if len(args) == 1 {
		explicit = args[0]
	}
	path, err := s.scenePath(explicit)
	if err != nil {
		return err
	}
	return s.printLayout(stdout, path)
}

// buildScene loads and builds the scene at path.
func buildScene(path string) (*scene.Scene, *scene.Tree, error) {
	sc, err := scene.Load(path)
	if err != nil {
		return nil, nil, err
	}
	tree, err := scene.Build(sc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build %s: %w", path, err)
	}
	return sc, tree, nil
}

func (s *session) printLayout(w io.Writer, path string) error {
	sc, tree, err := buildScene(path)
	if err != nil {
		return err
	}
	st := newStyles(w, s.color)
	name := sc.Name
	if name == "" {
		name = filepath.Base(path)
	}
	fmt.Fprintln(w, st.title.Render(fmt.Sprintf("%s (%s)", name, s.cfg.ProjectName)))
	if s.cfg.ModulePath != "" {
		fmt.Fprintln(w, st.note.Render("module "+s.cfg.ModulePath))
	}
	fmt.Fprintln(w, st.layoutTable(tree.Entries()))
	return nil
}
