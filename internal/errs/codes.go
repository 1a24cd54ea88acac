// Package errs provides centralized error code definitions and structured
// diagnostics for the zaco compiler. Error codes follow a stable taxonomy
// grouped by phase, matching the error kinds the driver and checker raise.
package errs

// Error code constants, grouped by the phase that raises them.
const (
	// ============================================================
	// Resolver errors (RES###)
	// ============================================================

	// RESModuleNotFound indicates an import specifier could not be resolved
	// to a local file, built-in, or package.
	RESModuleNotFound = "RES001"

	// RESPackageNotFound indicates a package-style import could not be found
	// under node_modules; Data["reason"] carries the resolver's explanation.
	RESPackageNotFound = "RES002"

	// RESCycleDetected indicates the dependency graph contains a cycle;
	// Data["cycle"] carries the offending path.
	RESCycleDetected = "RES003"

	// RESUnterminatedDeclaration indicates a module or import declaration
	// was not closed before end of file.
	RESUnterminatedDeclaration = "RES004"

	// ============================================================
	// Type errors (TYP###)
	// ============================================================

	TypeMismatch         = "TYP001"
	UndefinedVariable     = "TYP002"
	UndefinedType         = "TYP003"
	UseAfterMove          = "TYP004"
	BorrowConflict        = "TYP005"
	AssignToImmutable     = "TYP006"
	UninitialisedVariable = "TYP007"
	DuplicateDeclaration  = "TYP008"
	InvalidOperation      = "TYP009"
	ArityMismatch         = "TYP010"
	PropertyNotFound      = "TYP011"
	NotCallable           = "TYP012"
	NotIndexable          = "TYP013"
	GenericError          = "TYP014"

	// ============================================================
	// Codegen errors (GEN###)
	// ============================================================

	UnsupportedType     = "GEN001"
	UndeclaredFunction  = "GEN002"
	VerifierRejected    = "GEN003"
	ObjectEmissionFailed = "GEN004"
)
