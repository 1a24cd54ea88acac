package llvmgen

import (
	"os/exec"

	"github.com/zacolang/zaco/internal/errs"
)

// link invokes the system C compiler as a linker driver, the conventional
// way to fold in libc and the platform's startup objects without
// reimplementing a linker. The zaco runtime library provides every
// zaco_* extern this package's declare pass and mustExtern assume exist;
// it ships beside the compiler, not as part of this module.
func link(objPath, outPath string) error {
	cmd := exec.Command("cc", objPath, "-o", outPath, "-lzacort", "-lm")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return errs.Newf("codegen", errs.ObjectEmissionFailed, nil,
			"linking %q: %s\n%s", outPath, err, out)
	}
	return nil
}
