package parser

import (
	"testing"

	"github.com/cwbudde/minicc/internal/ast"
	"github.com/cwbudde/minicc/internal/lexer"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse error(s) for %q: %v", src, p.Errors())
	}
	return prog
}

func TestParseGlobalVsFunctionDisambiguation(t *testing.T) {
	prog := parse(t, "int x; int add(int a, int b) { return a + b; }")
	if len(prog.Decls) != 2 {
		t.Fatalf("got %d decls, want 2", len(prog.Decls))
	}
	if _, ok := prog.Decls[0].(*ast.GlobalVarDecl); !ok {
		t.Errorf("decl 0: got %T, want *ast.GlobalVarDecl", prog.Decls[0])
	}
	fn, ok := prog.Decls[1].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("decl 1: got %T, want *ast.FuncDecl", prog.Decls[1])
	}
	if len(fn.Params) != 2 {
		t.Errorf("got %d params, want 2", len(fn.Params))
	}
}

func TestParseExtern(t *testing.T) {
	prog := parse(t, "extern void print_int(int x); int main() { return 0; }")
	if len(prog.Decls) != 2 {
		t.Fatalf("got %d decls, want 2", len(prog.Decls))
	}
	ext, ok := prog.Decls[0].(*ast.ExternDecl)
	if !ok {
		t.Fatalf("decl 0: got %T, want *ast.ExternDecl", prog.Decls[0])
	}
	if ext.ReturnType != ast.KindVoid || ext.Name != "print_int" {
		t.Errorf("got %v %q, want void print_int", ext.ReturnType, ext.Name)
	}
}

func TestVoidParamsEquivalentToEmpty(t *testing.T) {
	a := parse(t, "int f(void) { return 0; }")
	b := parse(t, "int f() { return 0; }")
	fa := a.Decls[0].(*ast.FuncDecl)
	fb := b.Decls[0].(*ast.FuncDecl)
	if len(fa.Params) != 0 || len(fb.Params) != 0 {
		t.Errorf("got %d/%d params, want 0/0", len(fa.Params), len(fb.Params))
	}
}

func TestAssignmentVsRvalueDisambiguation(t *testing.T) {
	prog := parse(t, "int f() { int x; x = 1; return x; }")
	fn := prog.Decls[0].(*ast.FuncDecl)
	exprStmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	bin, ok := exprStmt.X.(*ast.BinaryOp)
	if !ok {
		t.Fatalf("got %T, want *ast.BinaryOp (assignment)", exprStmt.X)
	}
	if _, ok := bin.Left.(*ast.VarRef); !ok {
		t.Errorf("assignment lhs: got %T, want *ast.VarRef", bin.Left)
	}
}

func TestCallVsVarRefDisambiguation(t *testing.T) {
	prog := parse(t, "int f() { return g(1, 2); }")
	fn := prog.Decls[0].(*ast.FuncDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	call, ok := ret.Value.(*ast.CallExpr)
	if !ok {
		t.Fatalf("got %T, want *ast.CallExpr", ret.Value)
	}
	if call.Callee != "g" || len(call.Args) != 2 {
		t.Errorf("got callee=%q args=%d, want g/2", call.Callee, len(call.Args))
	}

	prog2 := parse(t, "int f() { return g; }")
	fn2 := prog2.Decls[0].(*ast.FuncDecl)
	ret2 := fn2.Body.Stmts[0].(*ast.ReturnStmt)
	if _, ok := ret2.Value.(*ast.VarRef); !ok {
		t.Fatalf("got %T, want *ast.VarRef", ret2.Value)
	}
}

func TestOperatorPrecedenceAndAssociativity(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3): the top node is '+'.
	prog := parse(t, "int f() { return 1 + 2 * 3; }")
	fn := prog.Decls[0].(*ast.FuncDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	top, ok := ret.Value.(*ast.BinaryOp)
	if !ok {
		t.Fatalf("got %T, want *ast.BinaryOp", ret.Value)
	}
	if top.Op.String() != "+" {
		t.Fatalf("top operator: got %s, want +", top.Op)
	}
	if _, ok := top.Right.(*ast.BinaryOp); !ok {
		t.Errorf("rhs: got %T, want *ast.BinaryOp (the '*')", top.Right)
	}
}

func TestUnaryRightAssociates(t *testing.T) {
	prog := parse(t, "int f() { return - - 1; }")
	fn := prog.Decls[0].(*ast.FuncDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	outer, ok := ret.Value.(*ast.UnaryOp)
	if !ok {
		t.Fatalf("got %T, want *ast.UnaryOp", ret.Value)
	}
	if _, ok := outer.X.(*ast.UnaryOp); !ok {
		t.Errorf("got %T, want nested *ast.UnaryOp", outer.X)
	}
}

func TestIfWithAndWithoutElse(t *testing.T) {
	prog := parse(t, "int f() { if (1) { return 1; } else { return 0; } }")
	fn := prog.Decls[0].(*ast.FuncDecl)
	ifs := fn.Body.Stmts[0].(*ast.IfStmt)
	if ifs.Else == nil {
		t.Fatal("expected else branch")
	}

	prog2 := parse(t, "int f() { if (1) { return 1; } return 0; }")
	fn2 := prog2.Decls[0].(*ast.FuncDecl)
	ifs2 := fn2.Body.Stmts[0].(*ast.IfStmt)
	if ifs2.Else != nil {
		t.Fatal("expected no else branch")
	}
}

func TestWhileLoop(t *testing.T) {
	prog := parse(t, "int f() { while (1) { return 0; } return 1; }")
	fn := prog.Decls[0].(*ast.FuncDecl)
	if _, ok := fn.Body.Stmts[0].(*ast.WhileStmt); !ok {
		t.Fatalf("got %T, want *ast.WhileStmt", fn.Body.Stmts[0])
	}
}

func TestEmptyStatement(t *testing.T) {
	prog := parse(t, "int f() { ; return 0; }")
	fn := prog.Decls[0].(*ast.FuncDecl)
	empty := fn.Body.Stmts[0].(*ast.ExprStmt)
	if empty.X != nil {
		t.Errorf("expected empty statement to carry no expression, got %T", empty.X)
	}
}

func TestLocalDeclsPrecedeStatements(t *testing.T) {
	prog := parse(t, "int f() { int x; int y; x = 1; y = 2; return x + y; }")
	fn := prog.Decls[0].(*ast.FuncDecl)
	if len(fn.Body.Locals) != 2 {
		t.Errorf("got %d locals, want 2", len(fn.Body.Locals))
	}
	if len(fn.Body.Stmts) != 3 {
		t.Errorf("got %d stmts, want 3", len(fn.Body.Stmts))
	}
}

func TestSyntaxErrorStopsAtFirst(t *testing.T) {
	p := New(lexer.New("int f( { return 0; }"))
	p.ParseProgram()
	if len(p.Errors()) != 1 {
		t.Fatalf("got %d errors, want exactly 1 (first-error-only policy): %v", len(p.Errors()), p.Errors())
	}
}
