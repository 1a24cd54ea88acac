// Package checkenv implements the checker's scoped symbol environment:
// nested variable scopes carrying ownership state, plus the module-level
// tables of type aliases, interfaces, classes, enums, and exports that
//`internal/types` resolves TypeRefs against.
package checkenv

import "github.com/zacolang/zaco/internal/types"

// VarInfo is everything the checker tracks about one binding.
type VarInfo struct {
	Type          types.Type
	Ownership     OwnershipState
	IsMutable     bool
	IsInitialized bool
}

// Env is a scoped symbol table. A new Env starts with a single, innermost
// scope that can never be popped — matching a function or module's
// outermost block.
type Env struct {
	scopes []map[string]*VarInfo

	typeAliases map[string]types.Type
	interfaces  map[string]types.Type
	classes     map[string]types.Type
	enums       map[string]types.Type
	exports     map[string]types.Type

	typeParamNames map[string][]string
}

func New() *Env {
	return &Env{
		scopes:         []map[string]*VarInfo{make(map[string]*VarInfo)},
		typeAliases:    make(map[string]types.Type),
		interfaces:     make(map[string]types.Type),
		classes:        make(map[string]types.Type),
		enums:          make(map[string]types.Type),
		exports:        make(map[string]types.Type),
		typeParamNames: make(map[string][]string),
	}
}

// PushScope opens a new nested scope, e.g. entering a block or loop body.
func (e *Env) PushScope() {
	e.scopes = append(e.scopes, make(map[string]*VarInfo))
}

// PopScope closes the innermost scope. It is a no-op on the outermost
// scope, matching a compiler that should never unbalance its own
// push/pop pairs but shouldn't panic if it somehow does.
func (e *Env) PopScope() {
	if len(e.scopes) > 1 {
		e.scopes = e.scopes[:len(e.scopes)-1]
	}
}

// Declare binds name to info in the innermost scope, shadowing any outer
// binding of the same name.
func (e *Env) Declare(name string, info VarInfo) {
	e.scopes[len(e.scopes)-1][name] = &info
}

// HasInCurrentScope reports whether name is bound in the innermost scope
// only, used to detect duplicate `let`/`const` declarations within one
// block without flagging ordinary shadowing across nested blocks.
func (e *Env) HasInCurrentScope(name string) bool {
	_, ok := e.scopes[len(e.scopes)-1][name]
	return ok
}

// Lookup finds a binding by walking outward from the innermost scope.
func (e *Env) Lookup(name string) (*VarInfo, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if info, ok := e.scopes[i][name]; ok {
			return info, true
		}
	}
	return nil, false
}

// UpdateOwnership sets the ownership state of an existing binding. It
// reports an error if the binding does not exist, mirroring a checker bug
// rather than a user-facing diagnostic — callers should have already
// confirmed the binding exists via Lookup.
func (e *Env) UpdateOwnership(name string, state OwnershipState) bool {
	info, ok := e.Lookup(name)
	if !ok {
		return false
	}
	info.Ownership = state
	return true
}

func (e *Env) DefineTypeAlias(name string, ty types.Type) { e.typeAliases[name] = ty }
func (e *Env) DefineInterface(name string, ty types.Type) { e.interfaces[name] = ty }
func (e *Env) DefineClass(name string, ty types.Type)     { e.classes[name] = ty }
func (e *Env) DefineEnum(name string, ty types.Type)      { e.enums[name] = ty }

// LookupType resolves a named type declaration across aliases, interfaces,
// classes, and enums, in that priority order.
func (e *Env) LookupType(name string) (types.Type, bool) {
	if ty, ok := e.typeAliases[name]; ok {
		return ty, true
	}
	if ty, ok := e.interfaces[name]; ok {
		return ty, true
	}
	if ty, ok := e.classes[name]; ok {
		return ty, true
	}
	if ty, ok := e.enums[name]; ok {
		return ty, true
	}
	return nil, false
}

// ResolveTypeRef implements types.Resolver so the assignability and
// substitution logic in internal/types can resolve named types without
// importing checkenv.
func (e *Env) ResolveTypeRef(name string) (types.Type, bool) {
	return e.LookupType(name)
}

// DefineTypeParams registers the generic parameter names declared on a
// class or interface, e.g. "Box" -> ["T"].
func (e *Env) DefineTypeParams(name string, params []string) {
	e.typeParamNames[name] = params
}

// TypeParams returns the generic parameter names registered for name.
func (e *Env) TypeParams(name string) ([]string, bool) {
	params, ok := e.typeParamNames[name]
	return params, ok
}

// ExportSymbol registers name as an export of the module being checked.
func (e *Env) ExportSymbol(name string, ty types.Type) { e.exports[name] = ty }

// Export returns the type of an exported symbol.
func (e *Env) Export(name string) (types.Type, bool) {
	ty, ok := e.exports[name]
	return ty, ok
}

// AllExports returns every symbol this module exports, keyed by name.
func (e *Env) AllExports() map[string]types.Type {
	return e.exports
}
