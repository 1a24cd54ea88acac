package driver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/errs"
)

// builtinModules are reserved import specifiers that resolve to host
// runtime capabilities rather than a source file; the resolver only needs
// to recognise them, since the runtime ABI (internal/runtimeabi) supplies
// their actual externs.
var builtinModules = map[string]bool{
	"fs": true, "path": true, "os": true, "http": true,
	"events": true, "timers": true, "process": true,
}

var sourceExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// ModuleResolver turns an import specifier into an absolute file path,
// relative to the importing file and the project root.
type ModuleResolver struct {
	ProjectRoot string
	ModulePaths []string
}

func NewModuleResolver(projectRoot string, modulePaths []string) *ModuleResolver {
	return &ModuleResolver{ProjectRoot: projectRoot, ModulePaths: modulePaths}
}

// IsBuiltin reports whether specifier names a reserved runtime module.
func (r *ModuleResolver) IsBuiltin(specifier string) bool {
	return builtinModules[specifier]
}

// Resolve resolves specifier as imported from fromFile to an absolute path.
// Relative specifiers walk from fromFile's directory; everything else is
// treated as a project or node_modules-style package import.
func (r *ModuleResolver) Resolve(specifier, fromFile string, span ast.Span) (string, error) {
	if r.IsBuiltin(specifier) {
		return "$builtin:" + specifier, nil
	}

	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") {
		dir := filepath.Dir(fromFile)
		return r.resolveFileCandidate(filepath.Join(dir, specifier), specifier, span)
	}

	if strings.HasPrefix(specifier, "/") {
		return r.resolveFileCandidate(specifier, specifier, span)
	}

	return r.resolvePackage(specifier, span)
}

// resolveFileCandidate tries base as-is, then with each source extension,
// then as a directory's index file.
func (r *ModuleResolver) resolveFileCandidate(base, specifier string, span ast.Span) (string, error) {
	if info, err := os.Stat(base); err == nil && !info.IsDir() {
		return filepath.Clean(base), nil
	}
	for _, ext := range sourceExtensions {
		candidate := base + ext
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Clean(candidate), nil
		}
	}
	for _, ext := range sourceExtensions {
		candidate := filepath.Join(base, "index"+ext)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Clean(candidate), nil
		}
	}
	return "", errs.Newf("resolver", errs.RESModuleNotFound, &span,
		"cannot resolve module %q", specifier)
}

// resolvePackage looks for node_modules/<specifier> under the project root
// and each module path, then under every ancestor directory of each, up to
// the filesystem root. Within a package directory it takes index.d.ts,
// else the first of index.ts/.tsx/.js/.jsx; package.json is not read, so
// its `types`, `module`, `main` and `exports` fields play no part.
func (r *ModuleResolver) resolvePackage(specifier string, span ast.Span) (string, error) {
	roots := append([]string{r.ProjectRoot}, r.ModulePaths...)
	for _, root := range roots {
		dir := root
		for {
			candidate := filepath.Join(dir, "node_modules", specifier)
			if entry, err := r.pickPackageEntry(candidate); err == nil {
				return entry, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	return "", errs.Newf("resolver", errs.RESPackageNotFound, &span,
		"package %q not found under node_modules", specifier).
		WithData("reason", "no node_modules directory on the search path contained it")
}

func (r *ModuleResolver) pickPackageEntry(pkgDir string) (string, error) {
	if info, err := os.Stat(pkgDir); err != nil || !info.IsDir() {
		return "", os.ErrNotExist
	}
	if dts := filepath.Join(pkgDir, "index.d.ts"); fileExists(dts) {
		return dts, nil
	}
	for _, name := range []string{"index.ts", "index.tsx", "index.js", "index.jsx"} {
		candidate := filepath.Join(pkgDir, name)
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", os.ErrNotExist
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
