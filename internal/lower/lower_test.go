package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zacolang/zaco/internal/ast"
	"github.com/zacolang/zaco/internal/ir"
)

func numLit(v float64) *ast.Literal { return &ast.Literal{Kind: ast.LitExprNumber, Value: v} }

func numParam(name string) ast.Param {
	return ast.Param{Pattern: &ast.IdentPattern{Name: name, Type: &ast.PrimitiveType{Kind: ast.PrimNumber}}}
}

func TestLowerIfProducesThreeExtraBlocksAllTerminated(t *testing.T) {
	l := NewLowerer("test")
	f := &ast.File{Decls: []ast.Decl{
		&ast.FuncDecl{
			Name:   "pick",
			Params: []ast.Param{numParam("x")},
			Return: &ast.PrimitiveType{Kind: ast.PrimNumber},
			Body: &ast.BlockStmt{Stmts: []ast.Stmt{
				&ast.IfStmt{
					Cond: &ast.BinaryOp{Op: ">", Left: &ast.Identifier{Name: "x"}, Right: numLit(0)},
					Then: &ast.BlockStmt{Stmts: []ast.Stmt{&ast.ReturnStmt{Value: numLit(1)}}},
					Else: &ast.BlockStmt{Stmts: []ast.Stmt{&ast.ReturnStmt{Value: numLit(-1)}}},
				},
			}},
		},
	}}

	l.LowerFile(f)

	fn := l.Module.FindFunction("pick")
	require.NotNil(t, fn)
	assert.True(t, fn.EveryBlockTerminated())
	// entry + then + else + join
	assert.Len(t, fn.Blocks, 4)
}

func TestLowerWhileBuildsHeaderBodyExitAndRespectsBreak(t *testing.T) {
	l := NewLowerer("test")
	f := &ast.File{Decls: []ast.Decl{
		&ast.FuncDecl{
			Name:   "loop",
			Return: &ast.PrimitiveType{Kind: ast.PrimVoid},
			Body: &ast.BlockStmt{Stmts: []ast.Stmt{
				&ast.WhileStmt{
					Cond: &ast.Literal{Kind: ast.LitExprBoolean, Value: true},
					Body: &ast.BlockStmt{Stmts: []ast.Stmt{&ast.BreakStmt{}}},
				},
			}},
		},
	}}

	l.LowerFile(f)

	fn := l.Module.FindFunction("loop")
	require.NotNil(t, fn)
	assert.True(t, fn.EveryBlockTerminated())

	body := fn.Blocks[2]
	require.NotNil(t, body.Terminator)
	assert.Equal(t, ir.TermJump, body.Terminator.Kind)
	exit := fn.Blocks[3]
	assert.Equal(t, exit.Id, body.Terminator.Target)
}

func TestLowerForThreadsInitCondUpdate(t *testing.T) {
	l := NewLowerer("test")
	f := &ast.File{Decls: []ast.Decl{
		&ast.FuncDecl{
			Name:   "count",
			Return: &ast.PrimitiveType{Kind: ast.PrimVoid},
			Body: &ast.BlockStmt{Stmts: []ast.Stmt{
				&ast.ForStmt{
					Init: ast.ForInitVarDecl{Decl: &ast.VarDeclStmt{
						Kind: ast.VarLet,
						Declarations: []ast.Declarator{
							{Pattern: &ast.IdentPattern{Name: "i", Type: &ast.PrimitiveType{Kind: ast.PrimNumber}}, Init: numLit(0)},
						},
					}},
					Cond: &ast.BinaryOp{Op: "<", Left: &ast.Identifier{Name: "i"}, Right: numLit(10)},
					Update: &ast.Assignment{
						Op:     "+=",
						Target: &ast.Identifier{Name: "i"},
						Value:  numLit(1),
					},
					Body: &ast.BlockStmt{},
				},
			}},
		},
	}}

	l.LowerFile(f)

	fn := l.Module.FindFunction("count")
	require.NotNil(t, fn)
	assert.True(t, fn.EveryBlockTerminated())
	// entry + header + body + update + exit
	assert.Len(t, fn.Blocks, 5)
}

func TestLowerLogicalAndShortCircuitsIntoJoinBlock(t *testing.T) {
	l := NewLowerer("test")
	f := &ast.File{Decls: []ast.Decl{
		&ast.FuncDecl{
			Name:   "both",
			Params: []ast.Param{numParam("a"), numParam("b")},
			Return: &ast.PrimitiveType{Kind: ast.PrimBoolean},
			Body: &ast.BlockStmt{Stmts: []ast.Stmt{
				&ast.ReturnStmt{Value: &ast.BinaryOp{
					Op:    "&&",
					Left:  &ast.Identifier{Name: "a"},
					Right: &ast.Identifier{Name: "b"},
				}},
			}},
		},
	}}

	l.LowerFile(f)

	fn := l.Module.FindFunction("both")
	require.NotNil(t, fn)
	assert.True(t, fn.EveryBlockTerminated())
	assert.Len(t, fn.Blocks, 3) // entry, rhs, join
}

func TestLowerClassDeclRegistersStructLayout(t *testing.T) {
	l := NewLowerer("test")
	f := &ast.File{Decls: []ast.Decl{
		&ast.ClassDecl{
			Name: "Point",
			Fields: []ast.ClassField{
				{Name: "x", Type: &ast.PrimitiveType{Kind: ast.PrimNumber}},
				{Name: "y", Type: &ast.PrimitiveType{Kind: ast.PrimNumber}},
			},
		},
	}}

	l.LowerFile(f)

	s := l.Module.FindStruct("Point")
	require.NotNil(t, s)
	assert.Equal(t, 0, s.FieldIndex("x"))
	assert.Equal(t, 1, s.FieldIndex("y"))
}

func TestReserveDeclsAllowsForwardReference(t *testing.T) {
	l := NewLowerer("test")
	f := &ast.File{Decls: []ast.Decl{
		&ast.FuncDecl{
			Name:   "isEven",
			Params: []ast.Param{numParam("n")},
			Return: &ast.PrimitiveType{Kind: ast.PrimBoolean},
			Body: &ast.BlockStmt{Stmts: []ast.Stmt{
				&ast.ReturnStmt{Value: &ast.Call{
					Callee: &ast.Identifier{Name: "isOdd"},
					Args:   []ast.Expr{&ast.Identifier{Name: "n"}},
				}},
			}},
		},
		&ast.FuncDecl{
			Name:   "isOdd",
			Params: []ast.Param{numParam("n")},
			Return: &ast.PrimitiveType{Kind: ast.PrimBoolean},
			Body: &ast.BlockStmt{Stmts: []ast.Stmt{
				&ast.ReturnStmt{Value: &ast.Literal{Kind: ast.LitExprBoolean, Value: false}},
			}},
		},
	}}

	l.LowerFile(f)

	isEven := l.Module.FindFunction("isEven")
	require.NotNil(t, isEven)
	assert.True(t, isEven.EveryBlockTerminated())

	entry := isEven.Blocks[0]
	require.Len(t, entry.Instructions, 1)
	assert.Equal(t, ir.InstrCall, entry.Instructions[0].Kind)
	assert.Equal(t, ir.ValueFromConstant(ir.ConstantStr("isOdd")), entry.Instructions[0].Callee)
}

func TestLowerConsoleLogDispatchesOnArgumentRepresentation(t *testing.T) {
	l := NewLowerer("test")
	f := &ast.File{Decls: []ast.Decl{
		&ast.FuncDecl{
			Name:   "main",
			Return: &ast.PrimitiveType{Kind: ast.PrimVoid},
			Body: &ast.BlockStmt{Stmts: []ast.Stmt{
				&ast.ExprStmt{Expr: &ast.Call{
					Callee: &ast.Member{Object: &ast.Identifier{Name: "console"}, Property: "log"},
					Args:   []ast.Expr{numLit(42)},
				}},
				&ast.ExprStmt{Expr: &ast.Call{
					Callee: &ast.Member{Object: &ast.Identifier{Name: "console"}, Property: "error"},
					Args:   []ast.Expr{&ast.Literal{Kind: ast.LitExprString, Value: "oops"}},
				}},
			}},
		},
	}}

	l.LowerFile(f)

	fn := l.Module.FindFunction("main")
	require.NotNil(t, fn)
	entry := fn.Blocks[0]
	require.Len(t, entry.Instructions, 2)
	assert.Equal(t, ir.ValueFromConstant(ir.ConstantStr("zaco_console_log_f64")), entry.Instructions[0].Callee)
	assert.Equal(t, ir.ValueFromConstant(ir.ConstantStr("zaco_console_error_str")), entry.Instructions[1].Callee)
}

func TestLowerMethodNameIsQualifiedByClass(t *testing.T) {
	l := NewLowerer("test")
	f := &ast.File{Decls: []ast.Decl{
		&ast.ClassDecl{
			Name: "Counter",
			Fields: []ast.ClassField{
				{Name: "value", Type: &ast.PrimitiveType{Kind: ast.PrimNumber}},
			},
			Methods: []ast.ClassMethod{
				{Name: "get", Func: &ast.FuncDecl{
					Name:   "get",
					Return: &ast.PrimitiveType{Kind: ast.PrimNumber},
					Body: &ast.BlockStmt{Stmts: []ast.Stmt{
						&ast.ReturnStmt{Value: numLit(0)},
					}},
				}},
			},
		},
	}}

	l.LowerFile(f)

	fn := l.Module.FindFunction("Counter.get")
	require.NotNil(t, fn)
	assert.True(t, fn.EveryBlockTerminated())
}
