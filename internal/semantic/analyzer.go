// Package semantic implements Mini-C's semantic analyzer and IR emitter:
// a single post-order walk of the syntax tree that resolves names,
// enforces the bool/int/float widening rules, and drives internal/irgen
// to build a typed SSA-form LLVM module.
package semantic

import (
	"github.com/cwbudde/minicc/internal/ast"
	"github.com/cwbudde/minicc/internal/irgen"
	"github.com/cwbudde/minicc/internal/types"
	"github.com/cwbudde/minicc/pkg/token"
)

// Analyzer walks one Program and emits its IR into a fresh Module. Use a
// new Analyzer for every run; it is not re-entrant.
type Analyzer struct {
	mod  *irgen.Module
	syms *symbolTable
	errs []*Error

	curFunc     *irgen.Function
	curBlock    *irgen.Block
	curRetType  ast.TypeKind
	funcErrBase int
}

// NewAnalyzer creates an Analyzer that will emit into a module named
// moduleName.
func NewAnalyzer(moduleName string) *Analyzer {
	return &Analyzer{
		mod:  irgen.New(moduleName),
		syms: newSymbolTable(),
	}
}

// Module returns the IR module being built. Valid to call at any time;
// callers must check Errors() before writing it out — an errored module
// must never reach disk.
func (a *Analyzer) Module() *irgen.Module { return a.mod }

// Errors returns every semantic error recorded so far.
func (a *Analyzer) Errors() []*Error { return a.errs }

func (a *Analyzer) fail(pos token.Position, code, format string, args ...any) {
	a.errs = append(a.errs, newError(pos, code, format, args...))
}

// funcErred reports whether the function currently being emitted has
// already produced a semantic error. Once it has, the rest of that
// function's statements are skipped: emission halts for the containing
// function while later top-level declarations still get analyzed.
func (a *Analyzer) funcErred() bool { return len(a.errs) > a.funcErrBase }

// Analyze emits IR for prog and returns any semantic errors. Top-level
// declarations are processed left to right; a function symbol is
// registered in the global table before its body is emitted, so
// self-recursive calls resolve, but later declarations are never visible
// to earlier ones (Mini-C has no forward declarations beyond extern).
func (a *Analyzer) Analyze(prog *ast.Program) []*Error {
	for _, decl := range prog.Decls {
		switch d := decl.(type) {
		case *ast.ExternDecl:
			a.analyzeExtern(d)
		case *ast.GlobalVarDecl:
			a.analyzeGlobalVar(d)
		case *ast.FuncDecl:
			a.analyzeFunc(d)
		}
	}
	return a.errs
}

func (a *Analyzer) paramTypes(params []ast.Param) []ast.TypeKind {
	kinds := make([]ast.TypeKind, len(params))
	for i, p := range params {
		kinds[i] = p.Type
	}
	return kinds
}

func (a *Analyzer) analyzeExtern(d *ast.ExternDecl) {
	if _, exists := a.syms.lookupGlobal(d.Name); exists {
		a.fail(d.Position, ErrRedefinition, "redefinition of %q", d.Name)
		return
	}
	fn := a.mod.DeclareFunction(d.Name, d.ReturnType, a.paramTypes(d.Params))
	a.syms.declareGlobal(d.Name, &globalSymbol{isFunc: true, kind: d.ReturnType, fn: fn})
}

func (a *Analyzer) analyzeGlobalVar(d *ast.GlobalVarDecl) {
	if _, exists := a.syms.lookupGlobal(d.Name); exists {
		a.fail(d.Position, ErrRedefinition, "redefinition of global %q", d.Name)
		return
	}
	slot := a.mod.DeclareGlobal(d.Name, d.Type)
	a.syms.declareGlobal(d.Name, &globalSymbol{isFunc: false, kind: d.Type, slot: slot})
}

func (a *Analyzer) analyzeFunc(d *ast.FuncDecl) {
	if _, exists := a.syms.lookupGlobal(d.Name); exists {
		a.fail(d.Position, ErrRedefinition, "redefinition of %q", d.Name)
		return
	}
	fn := a.mod.DeclareFunction(d.Name, d.ReturnType, a.paramTypes(d.Params))
	a.syms.declareGlobal(d.Name, &globalSymbol{isFunc: true, kind: d.ReturnType, fn: fn})

	a.curFunc = fn
	a.curRetType = d.ReturnType
	a.funcErrBase = len(a.errs)

	entry := a.mod.AppendBlock(fn, "entry")
	a.curBlock = entry
	a.mod.SetInsertPoint(entry)

	a.syms.pushScope()
	for i, p := range d.Params {
		slot := a.mod.Alloca(p.Type, p.Name)
		a.mod.Store(a.mod.Param(fn, i), slot)
		if !a.syms.declareLocal(p.Name, p.Type, slot) {
			a.fail(p.Position, ErrRedefinition, "duplicate parameter name %q", p.Name)
		}
	}
	a.analyzeBlockBody(d.Body)
	a.syms.popScope()

	a.curFunc = nil
	a.curBlock = nil
}

// analyzeBlockBody emits a block's locals and statements into the current
// insertion point, without pushing a new scope (the caller already did,
// since a function's top-level block shares its parameter scope and
// if/while bodies push their own frame before calling this).
func (a *Analyzer) analyzeBlockBody(b *ast.Block) {
	for _, local := range b.Locals {
		if a.curBlock.Terminated() || a.funcErred() {
			break
		}
		slot := a.mod.Alloca(local.Type, local.Name)
		if !a.syms.declareLocal(local.Name, local.Type, slot) {
			a.fail(local.Position, ErrRedefinition, "redefinition of %q in this scope", local.Name)
		}
	}
	for _, stmt := range b.Stmts {
		if a.curBlock.Terminated() || a.funcErred() {
			break
		}
		a.analyzeStmt(stmt)
	}
}

func (a *Analyzer) analyzeStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.ExprStmt:
		if st.X != nil {
			a.analyzeExpr(st.X)
		}
	case *ast.BlockStmt:
		a.syms.pushScope()
		a.analyzeBlockBody(st.Block)
		a.syms.popScope()
	case *ast.IfStmt:
		a.analyzeIf(st)
	case *ast.WhileStmt:
		a.analyzeWhile(st)
	case *ast.ReturnStmt:
		a.analyzeReturn(st)
	}
}

func (a *Analyzer) analyzeIf(s *ast.IfStmt) {
	cond, ok := a.analyzeExpr(s.Cond)
	if !ok {
		return
	}
	if cond.Kind != ast.KindBool {
		a.fail(s.Cond.Pos(), ErrTypeMismatch, "if condition must be bool")
		return
	}

	entryBlock := a.curBlock
	thenBlock := a.mod.AppendBlock(a.curFunc, "then")

	if s.Else == nil {
		endBlock := a.mod.AppendBlock(a.curFunc, "end")
		a.mod.CondBr(entryBlock, cond, thenBlock, endBlock)

		a.mod.SetInsertPoint(thenBlock)
		a.curBlock = thenBlock
		a.analyzeStmt(s.Then)
		if a.funcErred() {
			return
		}
		if !a.curBlock.Terminated() {
			a.mod.Br(a.curBlock, endBlock)
		}

		a.mod.SetInsertPoint(endBlock)
		a.curBlock = endBlock
		return
	}

	elseBlock := a.mod.AppendBlock(a.curFunc, "else")
	endBlock := a.mod.AppendBlock(a.curFunc, "end")
	a.mod.CondBr(entryBlock, cond, thenBlock, elseBlock)

	a.mod.SetInsertPoint(thenBlock)
	a.curBlock = thenBlock
	a.analyzeStmt(s.Then)
	if a.funcErred() {
		return
	}
	if !a.curBlock.Terminated() {
		a.mod.Br(a.curBlock, endBlock)
	}

	a.mod.SetInsertPoint(elseBlock)
	a.curBlock = elseBlock
	a.analyzeStmt(s.Else)
	if a.funcErred() {
		return
	}
	if !a.curBlock.Terminated() {
		a.mod.Br(a.curBlock, endBlock)
	}

	a.mod.SetInsertPoint(endBlock)
	a.curBlock = endBlock
}

func (a *Analyzer) analyzeWhile(s *ast.WhileStmt) {
	condBlock := a.mod.AppendBlock(a.curFunc, "cond")
	bodyBlock := a.mod.AppendBlock(a.curFunc, "body")
	endBlock := a.mod.AppendBlock(a.curFunc, "end")

	a.mod.Br(a.curBlock, condBlock)

	a.mod.SetInsertPoint(condBlock)
	a.curBlock = condBlock
	cond, ok := a.analyzeExpr(s.Cond)
	if !ok {
		return
	}
	if cond.Kind != ast.KindBool {
		a.fail(s.Cond.Pos(), ErrTypeMismatch, "while condition must be bool")
		return
	}
	a.mod.CondBr(condBlock, cond, bodyBlock, endBlock)

	a.mod.SetInsertPoint(bodyBlock)
	a.curBlock = bodyBlock
	a.analyzeStmt(s.Body)
	if a.funcErred() {
		return
	}
	if !a.curBlock.Terminated() {
		a.mod.Br(a.curBlock, condBlock)
	}

	a.mod.SetInsertPoint(endBlock)
	a.curBlock = endBlock
}

func (a *Analyzer) analyzeReturn(s *ast.ReturnStmt) {
	if s.Value == nil {
		if a.curRetType != ast.KindVoid {
			a.fail(s.Position, ErrTypeMismatch, "missing return value in non-void function")
			return
		}
		a.mod.RetVoid(a.curBlock)
		return
	}
	if a.curRetType == ast.KindVoid {
		a.fail(s.Position, ErrReturnValueInVoid, "returning a value from a void function")
		return
	}
	val, ok := a.analyzeExpr(s.Value)
	if !ok {
		return
	}
	if !types.IsAssignable(a.curRetType, val.Kind) {
		a.fail(s.Position, ErrNarrowingReturn, "cannot return %s from a function returning %s", val.Kind, a.curRetType)
		return
	}
	widened := a.mod.Widen(val, a.curRetType, "retval")
	a.mod.Ret(a.curBlock, widened)
}

var binOpSymbol = map[token.Type]string{
	token.PLUS:    "+",
	token.MINUS:   "-",
	token.STAR:    "*",
	token.SLASH:   "/",
	token.PERCENT: "%",
}

var cmpOpSymbol = map[token.Type]string{
	token.EQ: "==", token.NEQ: "!=",
	token.LT: "<", token.LE: "<=", token.GT: ">", token.GE: ">=",
}

// analyzeExpr emits IR for e and returns its value; ok is false if a
// semantic error occurred evaluating e (the caller should not use the
// returned value, which may be zero).
func (a *Analyzer) analyzeExpr(e ast.Expr) (irgen.Value, bool) {
	switch ex := e.(type) {
	case *ast.IntLit:
		v := a.mod.ConstInt(ex.Value)
		ex.SetResolvedType(ast.KindInt)
		return v, true
	case *ast.FloatLit:
		v := a.mod.ConstFloat(ex.Value)
		ex.SetResolvedType(ast.KindFloat)
		return v, true
	case *ast.BoolLit:
		v := a.mod.ConstBool(ex.Value)
		ex.SetResolvedType(ast.KindBool)
		return v, true
	case *ast.VarRef:
		return a.analyzeVarRef(ex)
	case *ast.CallExpr:
		return a.analyzeCall(ex)
	case *ast.UnaryOp:
		return a.analyzeUnary(ex)
	case *ast.BinaryOp:
		if ex.Op == token.ASSIGN {
			return a.analyzeAssign(ex)
		}
		return a.analyzeBinary(ex)
	default:
		return irgen.Value{}, false
	}
}

func (a *Analyzer) analyzeVarRef(ex *ast.VarRef) (irgen.Value, bool) {
	if sym, ok := a.syms.lookupLocal(ex.Name); ok {
		v := a.mod.Load(sym.slot, sym.kind, ex.Name)
		ex.SetResolvedType(sym.kind)
		return v, true
	}
	if sym, ok := a.syms.lookupGlobal(ex.Name); ok && !sym.isFunc {
		v := a.mod.Load(sym.slot, sym.kind, ex.Name)
		ex.SetResolvedType(sym.kind)
		return v, true
	}
	a.fail(ex.Pos(), ErrUnknownName, "undeclared identifier %q", ex.Name)
	return irgen.Value{}, false
}

func (a *Analyzer) analyzeCall(ex *ast.CallExpr) (irgen.Value, bool) {
	sym, ok := a.syms.lookupGlobal(ex.Callee)
	if !ok || !sym.isFunc {
		a.fail(ex.Pos(), ErrNotCallable, "%q is not a function", ex.Callee)
		return irgen.Value{}, false
	}
	if len(ex.Args) != len(sym.fn.ParamTypes) {
		a.fail(ex.Pos(), ErrArgCount, "%q expects %d argument(s), got %d", ex.Callee, len(sym.fn.ParamTypes), len(ex.Args))
		return irgen.Value{}, false
	}
	args := make([]irgen.Value, len(ex.Args))
	for i, argExpr := range ex.Args {
		val, ok := a.analyzeExpr(argExpr)
		if !ok {
			return irgen.Value{}, false
		}
		want := sym.fn.ParamTypes[i]
		if !types.IsAssignable(want, val.Kind) {
			a.fail(argExpr.Pos(), ErrTypeMismatch, "argument %d to %q: cannot convert %s to %s", i+1, ex.Callee, val.Kind, want)
			return irgen.Value{}, false
		}
		args[i] = a.mod.Widen(val, want, "arg")
	}
	result := a.mod.Call(sym.fn, args, ex.Callee+".result")
	ex.SetResolvedType(sym.fn.ReturnType)
	return result, true
}

func (a *Analyzer) analyzeUnary(ex *ast.UnaryOp) (irgen.Value, bool) {
	x, ok := a.analyzeExpr(ex.X)
	if !ok {
		return irgen.Value{}, false
	}
	switch ex.Op {
	case token.MINUS:
		if !types.IsScalar(x.Kind) {
			a.fail(ex.Pos(), ErrVoidInExpr, "void value used in expression")
			return irgen.Value{}, false
		}
		if x.Kind == ast.KindFloat {
			v := a.mod.NegFloat(x, "neg")
			ex.SetResolvedType(ast.KindFloat)
			return v, true
		}
		widened := a.mod.Widen(x, ast.KindInt, "widen")
		v := a.mod.NegInt(widened, "neg")
		ex.SetResolvedType(ast.KindInt)
		return v, true
	case token.NOT:
		if x.Kind != ast.KindBool {
			a.fail(ex.Pos(), ErrTypeMismatch, "operand of ! must be bool")
			return irgen.Value{}, false
		}
		v := a.mod.Not(x, "not")
		ex.SetResolvedType(ast.KindBool)
		return v, true
	}
	return irgen.Value{}, false
}

func (a *Analyzer) analyzeBinary(ex *ast.BinaryOp) (irgen.Value, bool) {
	l, lok := a.analyzeExpr(ex.Left)
	r, rok := a.analyzeExpr(ex.Right)
	if !lok || !rok {
		return irgen.Value{}, false
	}
	if l.Kind == ast.KindVoid || r.Kind == ast.KindVoid {
		a.fail(ex.Pos(), ErrVoidInExpr, "void value used in expression")
		return irgen.Value{}, false
	}

	if ex.Op == token.AND || ex.Op == token.OR {
		if l.Kind != ast.KindBool || r.Kind != ast.KindBool {
			a.fail(ex.Pos(), ErrTypeMismatch, "operands of %s must be bool", ex.Op)
			return irgen.Value{}, false
		}
		var v irgen.Value
		if ex.Op == token.AND {
			v = a.mod.LogicalAnd(l, r, "and")
		} else {
			v = a.mod.LogicalOr(l, r, "or")
		}
		ex.SetResolvedType(ast.KindBool)
		return v, true
	}

	common, ok := types.Widen(l.Kind, r.Kind)
	if !ok {
		a.fail(ex.Pos(), ErrTypeMismatch, "incompatible operand types %s and %s", l.Kind, r.Kind)
		return irgen.Value{}, false
	}
	lw := a.mod.Widen(l, common, "lw")
	rw := a.mod.Widen(r, common, "rw")

	if sym, ok := binOpSymbol[ex.Op]; ok {
		v := a.mod.BinOp(sym, lw, rw, "arith")
		ex.SetResolvedType(common)
		return v, true
	}
	if sym, ok := cmpOpSymbol[ex.Op]; ok {
		v := a.mod.Cmp(sym, lw, rw, "cmp")
		ex.SetResolvedType(ast.KindBool)
		return v, true
	}
	a.fail(ex.Pos(), ErrTypeMismatch, "unsupported operator %s", ex.Op)
	return irgen.Value{}, false
}

func (a *Analyzer) analyzeAssign(ex *ast.BinaryOp) (irgen.Value, bool) {
	lhs, ok := ex.Left.(*ast.VarRef)
	if !ok {
		a.fail(ex.Pos(), ErrNotLvalue, "left-hand side of assignment must be a variable")
		return irgen.Value{}, false
	}

	var kind ast.TypeKind

	localSym, isLocal := a.syms.lookupLocal(lhs.Name)
	globalSym, isGlobal := a.syms.lookupGlobal(lhs.Name)
	if !isLocal && (!isGlobal || globalSym.isFunc) {
		a.fail(lhs.Pos(), ErrUnknownName, "undeclared identifier %q", lhs.Name)
		return irgen.Value{}, false
	}

	rhs, ok := a.analyzeExpr(ex.Right)
	if !ok {
		return irgen.Value{}, false
	}

	if isLocal {
		kind = localSym.kind
	} else {
		kind = globalSym.kind
	}
	if !types.IsAssignable(kind, rhs.Kind) {
		a.fail(ex.Pos(), ErrTypeMismatch, "cannot assign %s to %s variable %q", rhs.Kind, kind, lhs.Name)
		return irgen.Value{}, false
	}
	widened := a.mod.Widen(rhs, kind, "assign")
	if isLocal {
		a.mod.Store(widened, localSym.slot)
	} else {
		a.mod.Store(widened, globalSym.slot)
	}
	lhs.SetResolvedType(kind)
	ex.SetResolvedType(kind)
	return widened, true
}
