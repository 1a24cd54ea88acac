package driver

import (
	"github.com/zacolang/zaco/internal/checker"
	"github.com/zacolang/zaco/internal/errs"
	"github.com/zacolang/zaco/internal/iface"
	"github.com/zacolang/zaco/internal/ir"
	"github.com/zacolang/zaco/internal/lower"
)

// FileResult is one file's output from the per-file pipeline: its checked
// interface, its lowered module, and any diagnostics the checker raised.
type FileResult struct {
	Path      string
	Interface *iface.FileInterface
	Module    *ir.IrModule
	Diags     *errs.Diagnostics
}

// CompileFile runs check then lower over a single already-parsed file. The
// caller is responsible for having resolved and scheduled its imports
// before calling this — CompileFile does not itself touch ModuleResolver
// or DepGraph. A file with type errors does not proceed to lowering; its
// Module is nil and Diags carries the reason.
func CompileFile(f *FileUnit) *FileResult {
	c := checker.New()
	c.CheckFile(f.File)

	res := &FileResult{
		Path:      f.Path,
		Interface: iface.FromEnvExports(f.Path, c.Env.AllExports()),
		Diags:     c.Diags,
	}
	if c.Diags.HasErrors() {
		return res
	}

	l := lower.NewLowerer(f.Path)
	l.LowerFile(f.File)
	res.Module = l.Module
	return res
}

// CompileScheduled runs CompileFile over every file in schedule order,
// stopping at the first file whose diagnostics contain an error so later
// files don't compound an already-broken import.
func CompileScheduled(files map[string]*FileUnit, schedule []string) ([]*FileResult, error) {
	var results []*FileResult
	for _, path := range schedule {
		unit, ok := files[path]
		if !ok {
			continue // builtin module pseudo-node ($builtin:...), nothing to compile
		}
		res := CompileFile(unit)
		results = append(results, res)
		if res.Diags.HasErrors() {
			return results, &errs.ReportError{Rep: res.Diags.Reports()[0]}
		}
	}
	return results, nil
}
