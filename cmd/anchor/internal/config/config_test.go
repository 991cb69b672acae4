package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolveDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "panels")
	require.NoError(t, os.Mkdir(dir, 0o755))

	cfg, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, "panels", cfg.ProjectName)
	assert.Empty(t, cfg.ModulePath)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.True(t, cfg.Color, "color defaults to on")
	assert.Empty(t, cfg.Scene)
}

func TestResolveFromFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/ui/dashboard/v2\n\ngo 1.24\n")
	writeFile(t, filepath.Join(dir, FileName), `
scene: scenes/main.yaml
log:
  level: debug
output:
  color: false
`)

	cfg, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, "example.com/ui/dashboard/v2", cfg.ModulePath)
	assert.Equal(t, "dashboard", cfg.ProjectName)
	assert.Equal(t, filepath.Join(dir, "scenes", "main.yaml"), cfg.Scene)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.False(t, cfg.Color)
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "log: [unclosed"},
		{"bad level", "log:\n  level: chatty\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, FileName), tt.content)
			_, err := Resolve(dir)
			assert.Error(t, err)
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "scene: a.yaml\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	got, err := FindProjectRoot()
	require.NoError(t, err)
	// TempDir may sit behind a symlink (macOS /var -> /private/var).
	want, _ := filepath.EvalSymlinks(root)
	got, _ = filepath.EvalSymlinks(got)
	assert.Equal(t, want, got)
}
