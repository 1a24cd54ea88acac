package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDiscoversTransitiveImportsAndParsesEachOnce(t *testing.T) {
	root := t.TempDir()
	basePath := filepath.Join(root, "base.ts")
	midPath := filepath.Join(root, "mid.ts")
	mainPath := filepath.Join(root, "main.ts")

	require.NoError(t, os.WriteFile(basePath, []byte("export function answer(): number { return 42; }"), 0o644))
	require.NoError(t, os.WriteFile(midPath, []byte(`import { answer } from "./base";
export function wrap(): number { return answer(); }`), 0o644))
	require.NoError(t, os.WriteFile(mainPath, []byte(`import { wrap } from "./mid";
function main(): number { return wrap(); }`), 0o644))

	resolver := NewModuleResolver(root, nil)
	units, err := Load(mainPath, resolver)
	require.NoError(t, err)

	require.Len(t, units, 3)
	for _, path := range []string{basePath, midPath, mainPath} {
		unit, ok := units[path]
		require.True(t, ok, "expected %s to be loaded", path)
		assert.NotNil(t, unit.File)
	}

	merged, err := Compile(units, resolver, mainPath)
	require.NoError(t, err)
	assert.NotNil(t, merged.FindFunction("main"))
	assert.NotNil(t, merged.FindFunction("answer"))
	assert.NotNil(t, merged.FindFunction("wrap"))
}

func TestLoadSkipsBuiltinSpecifiersEntirely(t *testing.T) {
	root := t.TempDir()
	mainPath := filepath.Join(root, "main.ts")
	require.NoError(t, os.WriteFile(mainPath, []byte(`import { readFileSync } from "fs";
function main(): void {}`), 0o644))

	resolver := NewModuleResolver(root, nil)
	units, err := Load(mainPath, resolver)
	require.NoError(t, err)
	assert.Len(t, units, 1)
}

func TestLoadReportsAModuleThatCannotBeResolved(t *testing.T) {
	root := t.TempDir()
	mainPath := filepath.Join(root, "main.ts")
	require.NoError(t, os.WriteFile(mainPath, []byte(`import { x } from "./missing";
function main(): void {}`), 0o644))

	resolver := NewModuleResolver(root, nil)
	_, err := Load(mainPath, resolver)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RES001")
}

func TestLoadReportsAParseError(t *testing.T) {
	root := t.TempDir()
	mainPath := filepath.Join(root, "main.ts")
	require.NoError(t, os.WriteFile(mainPath, []byte(`function main() { return + ; }`), 0o644))

	resolver := NewModuleResolver(root, nil)
	_, err := Load(mainPath, resolver)
	require.Error(t, err)
}
