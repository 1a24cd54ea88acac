// Package iface describes one checked file's export surface: the symbols
// other files may import from it and their checked types. The driver
// builds one FileInterface per compiled file (FileResult.Interface); no
// later phase reads it, so an importer's bindings are not checked
// against it.
package iface

import "github.com/zacolang/zaco/internal/types"

// SymbolKind names what kind of declaration an exported identifier
// denotes.
type SymbolKind int

const (
	SymbolValue SymbolKind = iota
	SymbolType
	SymbolClass
	SymbolInterface
	SymbolEnum
)

// ExportedSymbol is one name a file exports, together with its checked
// type and what kind of declaration produced it.
type ExportedSymbol struct {
	Name string
	Type types.Type
	Kind SymbolKind
}

// FileInterface is the export surface of one checked file.
type FileInterface struct {
	Path    string
	Exports map[string]ExportedSymbol
}

func NewFileInterface(path string) *FileInterface {
	return &FileInterface{Path: path, Exports: make(map[string]ExportedSymbol)}
}

func (fi *FileInterface) Add(sym ExportedSymbol) {
	fi.Exports[sym.Name] = sym
}

// Lookup finds a named export, reporting whether it exists.
func (fi *FileInterface) Lookup(name string) (ExportedSymbol, bool) {
	sym, ok := fi.Exports[name]
	return sym, ok
}

// classifyFromEnv recovers a SymbolKind from an exported type's own shape,
// since checkenv.Env.AllExports only carries the types.Type, not which decl
// form (func/class/interface/enum/var) produced it.
func classifyFromEnv(ty types.Type) SymbolKind {
	switch ty.(type) {
	case *types.Class:
		return SymbolClass
	case *types.Interface:
		return SymbolInterface
	case *types.Enum:
		return SymbolEnum
	case *types.TypeRef:
		return SymbolType
	default:
		return SymbolValue
	}
}

// FromEnvExports builds a FileInterface from a checker environment's
// recorded exports.
func FromEnvExports(path string, exports map[string]types.Type) *FileInterface {
	fi := NewFileInterface(path)
	for name, ty := range exports {
		fi.Add(ExportedSymbol{Name: name, Type: ty, Kind: classifyFromEnv(ty)})
	}
	return fi
}
