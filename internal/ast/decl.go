package ast

// Decl is the base interface for top-level declarations.
type Decl interface {
	Node
	declNode()
}

// TypeParam is a generic type parameter declared on a function, class, or
// interface, e.g. `<T extends Base>`.
type TypeParam struct {
	Name       string
	Constraint TypeAnnotation // nil if unconstrained
}

// FuncDecl is a top-level or nested function declaration.
type FuncDecl struct {
	Name       string
	TypeParams []TypeParam
	Params     []Param
	Return     TypeAnnotation // nil if not annotated
	Body       *BlockStmt
	IsAsync    bool
	IsExported bool
	Span       Span
}

func (d *FuncDecl) Position() Span { return d.Span }
func (d *FuncDecl) String() string { return "func " + d.Name }
func (d *FuncDecl) declNode()      {}

// ClassField is a single field member of a class.
type ClassField struct {
	Name string
	Type TypeAnnotation
}

// ClassMethod is a single method member of a class.
type ClassMethod struct {
	Name string
	Func *FuncDecl
}

// ClassDecl is a class declaration.
type ClassDecl struct {
	Name       string
	TypeParams []TypeParam
	Fields     []ClassField
	Methods    []ClassMethod
	IsExported bool
	Span       Span
}

func (d *ClassDecl) Position() Span { return d.Span }
func (d *ClassDecl) String() string { return "class " + d.Name }
func (d *ClassDecl) declNode()      {}

// InterfaceProperty is one member of an interface declaration.
type InterfaceProperty struct {
	Name     string
	Type     TypeAnnotation
	Optional bool
}

// InterfaceDecl is an interface declaration.
type InterfaceDecl struct {
	Name       string
	TypeParams []TypeParam
	Properties []InterfaceProperty
	IsExported bool
	Span       Span
}

func (d *InterfaceDecl) Position() Span { return d.Span }
func (d *InterfaceDecl) String() string { return "interface " + d.Name }
func (d *InterfaceDecl) declNode()      {}

// TypeAliasDecl is `type Name<T> = Annotation;`.
type TypeAliasDecl struct {
	Name       string
	TypeParams []TypeParam
	Value      TypeAnnotation
	IsExported bool
	Span       Span
}

func (d *TypeAliasDecl) Position() Span { return d.Span }
func (d *TypeAliasDecl) String() string { return "type " + d.Name }
func (d *TypeAliasDecl) declNode()      {}

// EnumDecl is `enum Name { A, B, C }`.
type EnumDecl struct {
	Name       string
	Members    []string
	IsExported bool
	Span       Span
}

func (d *EnumDecl) Position() Span { return d.Span }
func (d *EnumDecl) String() string { return "enum " + d.Name }
func (d *EnumDecl) declNode()      {}

// VarDecl is a top-level variable declaration (distinct from the statement
// form so the driver can enumerate module-level bindings without walking
// into function bodies).
type VarDecl struct {
	Stmt       *VarDeclStmt
	IsExported bool
	Span       Span
}

func (d *VarDecl) Position() Span { return d.Span }
func (d *VarDecl) String() string { return "top-level var decl" }
func (d *VarDecl) declNode()      {}
