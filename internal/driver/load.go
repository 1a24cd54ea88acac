package driver

import (
	"os"
	"path/filepath"

	"github.com/zacolang/zaco/internal/errs"
	"github.com/zacolang/zaco/internal/parser"
)

// Load reads and parses entryPath plus every file it transitively imports,
// resolving each import through resolver, and returns the resulting
// FileUnit set ready for Compile. Builtin specifiers are not read from
// disk; they have no FileUnit, matching CompileScheduled's expectation
// that the schedule's builtin nodes carry no unit.
//
// Parsing happens breadth-first from the entry file so a cyclic import
// graph still terminates: a path already present in the returned map is
// never re-read or re-queued.
func Load(entryPath string, resolver *ModuleResolver) (map[string]*FileUnit, error) {
	abs, err := filepath.Abs(entryPath)
	if err != nil {
		return nil, errs.Newf("driver", errs.GenericError, nil,
			"cannot resolve entry path %q: %s", entryPath, err)
	}

	units := make(map[string]*FileUnit)
	queue := []string{abs}

	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]

		if _, ok := units[path]; ok {
			continue
		}
		unit, err := loadOne(path)
		if err != nil {
			return nil, err
		}
		units[path] = unit

		for _, imp := range unit.File.Imports {
			resolved, err := resolver.Resolve(imp.Path, path, imp.Span)
			if err != nil {
				return nil, err
			}
			if resolver.IsBuiltin(imp.Path) {
				continue
			}
			if _, ok := units[resolved]; !ok {
				queue = append(queue, resolved)
			}
		}
	}

	return units, nil
}

func loadOne(path string) (*FileUnit, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Newf("driver", errs.RESModuleNotFound, nil,
			"cannot read %q: %s", path, err)
	}
	file, perr := parser.Parse(string(src), path)
	if perr != nil {
		return nil, wrapParseError(perr)
	}
	return &FileUnit{Path: path, File: file}, nil
}

// wrapParseError adapts a parser.ParseError into the errs.ReportError
// shape cmd/zaco expects to render uniformly across every compile phase.
func wrapParseError(err error) error {
	if pe, ok := err.(*parser.ParseError); ok {
		return errs.New("parser", errs.GenericError, pe.Message, &pe.Span)
	}
	return errs.New("parser", errs.GenericError, err.Error(), nil)
}
