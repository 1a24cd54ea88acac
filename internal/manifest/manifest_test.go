package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "zaco.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "entry: src/main.ts\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "src/main.ts", cfg.Entry)
	assert.Equal(t, "a.out", cfg.Output)
	assert.Equal(t, EmitExecutable, cfg.Emit)
	assert.Empty(t, cfg.ModulePaths)
}

func TestLoadReadsEveryField(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
entry: src/main.ts
output: build/app
emit: obj
modulePaths:
  - vendor
  - third_party
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "build/app", cfg.Output)
	assert.Equal(t, EmitObject, cfg.Emit)
	assert.Equal(t, []string{"vendor", "third_party"}, cfg.ModulePaths)
}

func TestLoadRejectsMissingEntry(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "output: a.out\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry")
}

func TestLoadRejectsUnknownEmitMode(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "entry: src/main.ts\nemit: wasm\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "emit")
}

func TestLoadReportsAMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
