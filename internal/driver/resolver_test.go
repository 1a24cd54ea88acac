package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zacolang/zaco/internal/ast"
)

func TestResolveRecognisesBuiltinModule(t *testing.T) {
	r := NewModuleResolver(t.TempDir(), nil)
	got, err := r.Resolve("fs", "/project/main.ts", ast.Span{})
	require.NoError(t, err)
	assert.Equal(t, "$builtin:fs", got)
}

func TestResolveFindsRelativeSiblingFile(t *testing.T) {
	root := t.TempDir()
	util := filepath.Join(root, "util.ts")
	require.NoError(t, os.WriteFile(util, []byte("export function f() {}"), 0o644))

	r := NewModuleResolver(root, nil)
	got, err := r.Resolve("./util", filepath.Join(root, "main.ts"), ast.Span{})
	require.NoError(t, err)
	assert.Equal(t, util, got)
}

func TestResolveFindsRelativeDirectoryIndex(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib"), 0o755))
	index := filepath.Join(root, "lib", "index.ts")
	require.NoError(t, os.WriteFile(index, []byte("export const x = 1;"), 0o644))

	r := NewModuleResolver(root, nil)
	got, err := r.Resolve("./lib", filepath.Join(root, "main.ts"), ast.Span{})
	require.NoError(t, err)
	assert.Equal(t, index, got)
}

func TestResolveReturnsErrorForMissingRelativeFile(t *testing.T) {
	root := t.TempDir()
	r := NewModuleResolver(root, nil)
	_, err := r.Resolve("./missing", filepath.Join(root, "main.ts"), ast.Span{})
	assert.Error(t, err)
}

func TestResolvePackageFindsNodeModulesEntry(t *testing.T) {
	root := t.TempDir()
	pkgDir := filepath.Join(root, "node_modules", "leftpad")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))
	entry := filepath.Join(pkgDir, "index.ts")
	require.NoError(t, os.WriteFile(entry, []byte("export function pad() {}"), 0o644))

	r := NewModuleResolver(root, nil)
	got, err := r.Resolve("leftpad", filepath.Join(root, "main.ts"), ast.Span{})
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestResolvePackagePrefersDeclarationFileOverSource(t *testing.T) {
	root := t.TempDir()
	pkgDir := filepath.Join(root, "node_modules", "typed")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "index.ts"), []byte("export {}"), 0o644))
	dts := filepath.Join(pkgDir, "index.d.ts")
	require.NoError(t, os.WriteFile(dts, []byte("export declare function f(): void;"), 0o644))

	r := NewModuleResolver(root, nil)
	got, err := r.Resolve("typed", filepath.Join(root, "main.ts"), ast.Span{})
	require.NoError(t, err)
	assert.Equal(t, dts, got)
}

func TestResolvePackageReturnsErrorWhenNotFoundAnywhere(t *testing.T) {
	root := t.TempDir()
	r := NewModuleResolver(root, nil)
	_, err := r.Resolve("nonexistent-pkg", filepath.Join(root, "main.ts"), ast.Span{})
	assert.Error(t, err)
}
