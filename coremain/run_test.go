package coremain

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pmkol/sllist/mlog"
)

func writeFile(t *testing.T, path, s string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(s), 0o644))
}

func TestLoadScript(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "seed.yaml"), `
steps:
  - op: insert_last
    values: [10, 20, 30]
`)
	mainFile := filepath.Join(dir, "main.yaml")
	writeFile(t, mainFile, `
log:
  level: error
include: [`+filepath.Join(dir, "seed.yaml")+`]
list:
  variant: ordered
steps:
  - op: remove_at
    pos: "1"
  - op: print
`)

	cfg, used, err := loadScript(mainFile)
	require.NoError(t, err)
	assert.Equal(t, mainFile, used)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "ordered", cfg.List.Variant)
	require.Len(t, cfg.Steps, 3)
	assert.Equal(t, []string{"10", "20", "30"}, cfg.Steps[0].Values)
	require.NotNil(t, cfg.Steps[1].Pos)
	assert.Equal(t, 1, *cfg.Steps[1].Pos)

	b := new(bytes.Buffer)
	require.NoError(t, RunScript(cfg, zap.NewNop(), b, newMetrics(newMetricsReg())))
	assert.Equal(t, "10 30\n", b.String())
}

func TestLoadScript_unknownKey(t *testing.T) {
	f := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, f, "steps:\n  - op: print\n    colour: red\n")
	_, _, err := loadScript(f)
	assert.Error(t, err)
}

func TestLoadScript_includeLoop(t *testing.T) {
	f := filepath.Join(t.TempDir(), "loop.yaml")
	writeFile(t, f, "include: ["+f+"]\n")
	_, _, err := loadScript(f)
	assert.ErrorContains(t, err, "maximum include depth")
	assert.Equal(t, 9, strings.Count(err.Error(), f))
}

func TestStartRun(t *testing.T) {
	f := filepath.Join(t.TempDir(), "script.yaml")
	writeFile(t, f, `
log:
  level: error
steps:
  - op: insert_first
    values: [3, 2, 1]
  - op: print
`)
	t.Cleanup(func() { mlog.SetLevel(zapcore.InfoLevel) })

	b := new(bytes.Buffer)
	require.NoError(t, StartRun(context.Background(), &runFlags{c: f}, b))
	assert.Equal(t, "1 2 3\n", b.String())

	// the global logger follows the script's log level
	assert.False(t, mlog.L().Core().Enabled(zapcore.WarnLevel))
	assert.True(t, mlog.L().Core().Enabled(zapcore.ErrorLevel))
}

func TestWatchScript(t *testing.T) {
	f := filepath.Join(t.TempDir(), "script.yaml")
	writeFile(t, f, "steps: []\n")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reloaded := make(chan struct{}, 1)
	errc := make(chan error, 1)
	go func() {
		errc <- watchScript(ctx, f, zap.NewNop(), func() {
			select {
			case reloaded <- struct{}{}:
			default:
			}
		})
	}()

	// Keep touching the file until the watcher has picked it up. Writes
	// are spaced wider than reloadDelay so they are not merged forever.
	ticker := time.NewTicker(3 * reloadDelay)
	defer ticker.Stop()
	for done := false; !done; {
		select {
		case <-reloaded:
			done = true
		case err := <-errc:
			t.Fatalf("watcher exited early: %v", err)
		case <-ticker.C:
			writeFile(t, f, "steps: [{op: print}]\n")
		case <-ctx.Done():
			t.Fatal("script was not reloaded")
		}
	}

	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
}
