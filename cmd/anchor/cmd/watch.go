package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/go-drift/anchor/pkg/errors"
)

func init() {
	RegisterCommand(&Command{
		Name:  "watch",
		Short: "Re-print the layout whenever the scene file changes",
		Long: `Print the layout of a scene, then watch the file and print it again
after every change. Parse errors are reported and watching continues.

Usage:
  anchor watch ui.yaml   # Ctrl+C to stop`,
		Usage: "anchor watch [scene]",
		Run:   runWatch,
	})
}

func runWatch(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("too many arguments\n\nUsage: anchor watch [scene]")
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	render := func() {
		if err := s.printLayout(stdout, path); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
	}
	render()
	fmt.Fprintf(stdout, "Watching %s (Ctrl+C to stop)...\n", path)
	return s.watchFile(ctx, path, render)
}

// watchFile calls onChange after each write to path until ctx is done. The
// parent directory is watched so editors that replace the file on save are
// followed.
func (s *session) watchFile(ctx context.Context, path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			s.logger.Debug("scene changed", "path", abs, "op", event.Op.String())
			notify(onChange)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("scene watcher error", "err", err)
		}
	}
}

// notify runs a change callback. A panic in it is reported and watching
// continues.
func notify(onChange func()) {
	defer errors.Recover("anchor.watch")
	onChange()
}
