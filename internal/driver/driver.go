package driver

import "github.com/zacolang/zaco/internal/ir"

// Compile runs the whole multi-file pipeline: schedule every unit in
// dependency order, check and lower each in turn, then merge the results
// into one whole-program IrModule ready for codegen. entryPath must name
// a unit in units whose File declares the program's main function.
func Compile(units map[string]*FileUnit, resolver *ModuleResolver, entryPath string) (*ir.IrModule, error) {
	schedule, err := Schedule(units, resolver)
	if err != nil {
		return nil, err
	}

	results, err := CompileScheduled(units, schedule)
	if err != nil {
		return nil, err
	}

	return MergeModules(results, entryPath)
}
