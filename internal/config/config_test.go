package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"compilab/internal/diag"
	"compilab/internal/trace"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	p, err := cfg.Policy()
	require.NoError(t, err)
	require.Equal(t, diag.SevError, p.HaltOn)
	require.Equal(t, 150*time.Millisecond, cfg.Watch.Debounce.Duration)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[pipeline]
halt_on = "warning"

[run]
input = "stdin.txt"

[watch]
debounce = "300ms"

[trace]
level = "detail"
mode = "stream"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, path, cfg.Path)
	require.Equal(t, 100, cfg.Pipeline.MaxDiagnostics, "untouched keys keep defaults")
	require.Equal(t, filepath.Join(dir, "stdin.txt"), cfg.Run.Input)
	require.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce.Duration)

	p, err := cfg.Policy()
	require.NoError(t, err)
	require.Equal(t, diag.SevWarning, p.HaltOn)

	tc, err := cfg.TracerConfig()
	require.NoError(t, err)
	require.Equal(t, trace.LevelDetail, tc.Level)
	require.Equal(t, trace.ModeStream, tc.Mode)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"halt_on":     "[pipeline]\nhalt_on = \"loud\"\n",
		"info halt":   "[pipeline]\nhalt_on = \"info\"\n",
		"negative":    "[run]\nmax_steps = -1\n",
		"debounce":    "[watch]\ndebounce = \"soon\"\n",
		"trace level": "[trace]\nlevel = \"chatty\"\n",
		"unknown key": "[pipeline]\ncolour = 1\n",
		"syntax":      "[pipeline\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, t.TempDir(), body))
			require.Error(t, err)
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "[run]\nmax_steps = 10\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, ok, err := Find(nested)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, path, found)

	cfg, err := Discover(nested)
	require.NoError(t, err)
	require.Equal(t, 10, cfg.Run.MaxSteps)
}

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(in, []byte("1 2 3"), 0o600))
	cfg := Default()
	got, err := cfg.ReadInput()
	require.NoError(t, err)
	require.Empty(t, got)

	cfg.Run.Input = in
	got, err = cfg.ReadInput()
	require.NoError(t, err)
	require.Equal(t, "1 2 3", got)
}
