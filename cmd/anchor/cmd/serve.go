package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-drift/anchor/pkg/inspect"
)

func init() {
	RegisterCommand(&Command{
		Name:  "serve",
		Short: "Serve a scene's resolved layout as JSON over HTTP",
		Long: `Build the scene and serve it for inspection tools. The scene is rebuilt
whenever the file changes; a scene that fails to load keeps the previous tree.

Endpoints:
  GET /tree            every element in draw order
  GET /hit?x=..&y=..   element under a point
  GET /health          liveness

Usage:
  anchor serve ui.yaml
  anchor serve --addr 127.0.0.1:7070 ui.yaml`,
		Usage: "anchor serve [--addr ADDR] [scene]",
		Run:   runServe,
	})
}

const defaultServeAddr = "127.0.0.1:7070"

func runServe(args []string) error {
	addr := defaultServeAddr
	var rest []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--addr":
			if i+1 >= len(args) {
				return fmt.Errorf("--addr requires an address")
			}
			addr = args[i+1]
			i++
		case strings.HasPrefix(arg, "--addr="):
			addr = strings.TrimPrefix(arg, "--addr=")
		default:
			rest = append(rest, arg)
		}
	}
	if len(rest) > 1 {
		return fmt.Errorf("too many arguments\n\nUsage: anchor serve [--addr ADDR] [scene]")
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	var explicit string
	if len(rest) == 1 {
		explicit = rest[0]
	}
	path, err := s.scenePath(explicit)
	if err != nil {
		return err
	}

	_, tree, err := buildScene(path)
	if err != nil {
		return err
	}
	srv := inspect.New()
	srv.SetTree(tree)
	bound, err := srv.Start(addr)
	if err != nil {
		return err
	}
	defer srv.Stop()
	fmt.Fprintf(stdout, "Serving %s on http://%s (Ctrl+C to stop)...\n", path, bound)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.watchFile(ctx, path, func() {
		_, tree, err := buildScene(path)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return
		}
		srv.SetTree(tree)
		s.logger.Info("scene reloaded", "path", path)
	})
}
