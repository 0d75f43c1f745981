// Package irgen is Mini-C's IR builder collaborator: a thin wrapper over
// tinygo.org/x/go-llvm that exposes exactly the capabilities the analyzer
// needs (module/function/basic-block management, load/store/alloca,
// arithmetic/comparison/bitwise/conversion instructions, branches, call,
// return) and nothing else. The analyzer calls no go-llvm function itself;
// it only calls through Module, and holds the llvm.Value slot handles
// that Module returns.
package irgen

import (
	"github.com/cwbudde/minicc/internal/ast"
	"tinygo.org/x/go-llvm"
)

// Module owns one LLVM context, builder, and module for a single
// compilation run. Create one per run; do not reuse across runs.
type Module struct {
	ctx     llvm.Context
	builder llvm.Builder
	mod     llvm.Module

	i1  llvm.Type
	i32 llvm.Type
	f32 llvm.Type
	vd  llvm.Type
}

// New creates a Module named name (conventionally the source file's base
// name without extension).
func New(name string) *Module {
	ctx := llvm.NewContext()
	return &Module{
		ctx:     ctx,
		builder: ctx.NewBuilder(),
		mod:     ctx.NewModule(name),
		i1:      ctx.Int1Type(),
		i32:     ctx.Int32Type(),
		f32:     ctx.FloatType(),
		vd:      ctx.VoidType(),
	}
}

// Dispose releases the underlying LLVM context and builder.
func (m *Module) Dispose() {
	m.builder.Dispose()
	m.ctx.Dispose()
}

// String returns the module's textual LLVM IR representation.
func (m *Module) String() string {
	return m.mod.String()
}

// LLVMType maps a Mini-C scalar kind to its LLVM type: bool -> i1,
// int -> i32, float -> float, void -> void.
func (m *Module) LLVMType(k ast.TypeKind) llvm.Type {
	switch k {
	case ast.KindBool:
		return m.i1
	case ast.KindInt:
		return m.i32
	case ast.KindFloat:
		return m.f32
	default:
		return m.vd
	}
}

// Value wraps an llvm.Value together with the Mini-C type it represents,
// so the analyzer never has to re-derive a type from an LLVM type.
type Value struct {
	V    llvm.Value
	Kind ast.TypeKind
}

// Function wraps an llvm.Value of function type plus its declared
// Mini-C signature.
type Function struct {
	V          llvm.Value
	ReturnType ast.TypeKind
	ParamTypes []ast.TypeKind
}

// Block wraps an llvm.BasicBlock with a terminated flag, implementing the
// "already terminated" dead-code-skip state machine from the emission
// rules: once a block receives a terminator, further instructions must
// not be appended to it.
type Block struct {
	bb         llvm.BasicBlock
	terminated bool
}

// Terminated reports whether b already ends in a terminator.
func (b *Block) Terminated() bool { return b.terminated }

// DeclareFunction creates a function with external linkage and the given
// signature, registering it in the module.
func (m *Module) DeclareFunction(name string, ret ast.TypeKind, params []ast.TypeKind) *Function {
	ptypes := make([]llvm.Type, len(params))
	for i, k := range params {
		ptypes[i] = m.LLVMType(k)
	}
	fnType := llvm.FunctionType(m.LLVMType(ret), ptypes, false)
	fn := llvm.AddFunction(m.mod, name, fnType)
	return &Function{V: fn, ReturnType: ret, ParamTypes: append([]ast.TypeKind(nil), params...)}
}

// DeclareGlobal creates a zero-initialized module-level global of kind k.
func (m *Module) DeclareGlobal(name string, k ast.TypeKind) llvm.Value {
	t := m.LLVMType(k)
	g := llvm.AddGlobal(m.mod, t, name)
	g.SetInitializer(llvm.ConstNull(t))
	return g
}

// AppendBlock creates a new basic block at the end of fn and returns it,
// but does not reposition the builder; call SetInsertPoint to make it
// current.
func (m *Module) AppendBlock(fn *Function, name string) *Block {
	bb := m.ctx.AddBasicBlock(fn.V, name)
	return &Block{bb: bb}
}

// SetInsertPoint repositions the builder to append instructions at the end
// of b.
func (m *Module) SetInsertPoint(b *Block) {
	m.builder.SetInsertPointAtEnd(b.bb)
}

// Param returns the i-th parameter value of fn, with its declared type.
func (m *Module) Param(fn *Function, i int) Value {
	return Value{V: fn.V.Param(i), Kind: fn.ParamTypes[i]}
}

// Alloca creates a stack slot of kind k, named name, in the current block.
func (m *Module) Alloca(k ast.TypeKind, name string) llvm.Value {
	return m.builder.CreateAlloca(m.LLVMType(k), name)
}

// Load reads the value of kind k stored at slot.
func (m *Module) Load(slot llvm.Value, k ast.TypeKind, name string) Value {
	return Value{V: m.builder.CreateLoad(m.LLVMType(k), slot, name), Kind: k}
}

// Store writes val into slot.
func (m *Module) Store(val Value, slot llvm.Value) {
	m.builder.CreateStore(val.V, slot)
}

// ConstInt builds an i32 constant.
func (m *Module) ConstInt(v int32) Value {
	return Value{V: llvm.ConstInt(m.i32, uint64(uint32(v)), false), Kind: ast.KindInt}
}

// ConstFloat builds a float constant.
func (m *Module) ConstFloat(v float32) Value {
	return Value{V: llvm.ConstFloat(m.f32, float64(v)), Kind: ast.KindFloat}
}

// ConstBool builds an i1 constant.
func (m *Module) ConstBool(v bool) Value {
	var iv uint64
	if v {
		iv = 1
	}
	return Value{V: llvm.ConstInt(m.i1, iv, false), Kind: ast.KindBool}
}

// Widen converts val up to target, inserting the matching zext/sitofp
// instruction. It is a no-op (returns val unchanged) if val is already of
// kind target.
func (m *Module) Widen(val Value, target ast.TypeKind, name string) Value {
	if val.Kind == target {
		return val
	}
	switch {
	case val.Kind == ast.KindBool && target == ast.KindInt:
		return Value{V: m.builder.CreateZExt(val.V, m.i32, name), Kind: ast.KindInt}
	case val.Kind == ast.KindBool && target == ast.KindFloat:
		return Value{V: m.builder.CreateSIToFP(m.builder.CreateZExt(val.V, m.i32, name+".i"), m.f32, name), Kind: ast.KindFloat}
	case val.Kind == ast.KindInt && target == ast.KindFloat:
		return Value{V: m.builder.CreateSIToFP(val.V, m.f32, name), Kind: ast.KindFloat}
	default:
		return val
	}
}

// BinOp applies the integer or float arithmetic instruction matching op
// (which must be one of +, -, *, /, %) to two operands already widened to
// the same kind.
func (m *Module) BinOp(op string, l, r Value, name string) Value {
	if l.Kind == ast.KindFloat {
		switch op {
		case "+":
			return Value{V: m.builder.CreateFAdd(l.V, r.V, name), Kind: ast.KindFloat}
		case "-":
			return Value{V: m.builder.CreateFSub(l.V, r.V, name), Kind: ast.KindFloat}
		case "*":
			return Value{V: m.builder.CreateFMul(l.V, r.V, name), Kind: ast.KindFloat}
		case "/":
			return Value{V: m.builder.CreateFDiv(l.V, r.V, name), Kind: ast.KindFloat}
		case "%":
			return Value{V: m.builder.CreateFRem(l.V, r.V, name), Kind: ast.KindFloat}
		}
	}
	switch op {
	case "+":
		return Value{V: m.builder.CreateAdd(l.V, r.V, name), Kind: ast.KindInt}
	case "-":
		return Value{V: m.builder.CreateSub(l.V, r.V, name), Kind: ast.KindInt}
	case "*":
		return Value{V: m.builder.CreateMul(l.V, r.V, name), Kind: ast.KindInt}
	case "/":
		return Value{V: m.builder.CreateSDiv(l.V, r.V, name), Kind: ast.KindInt}
	case "%":
		return Value{V: m.builder.CreateSRem(l.V, r.V, name), Kind: ast.KindInt}
	}
	panic("irgen: unknown arithmetic operator " + op)
}

// Cmp applies a relational or equality comparison (one of < <= > >= == !=)
// to two operands already widened to the same kind, producing an i1.
func (m *Module) Cmp(op string, l, r Value, name string) Value {
	if l.Kind == ast.KindFloat {
		pred, ok := floatPredicates[op]
		if !ok {
			panic("irgen: unknown comparison operator " + op)
		}
		return Value{V: m.builder.CreateFCmp(pred, l.V, r.V, name), Kind: ast.KindBool}
	}
	pred, ok := intPredicates[op]
	if !ok {
		panic("irgen: unknown comparison operator " + op)
	}
	return Value{V: m.builder.CreateICmp(pred, l.V, r.V, name), Kind: ast.KindBool}
}

var intPredicates = map[string]llvm.IntPredicate{
	"==": llvm.IntEQ,
	"!=": llvm.IntNE,
	"<":  llvm.IntSLT,
	"<=": llvm.IntSLE,
	">":  llvm.IntSGT,
	">=": llvm.IntSGE,
}

var floatPredicates = map[string]llvm.FloatPredicate{
	"==": llvm.FloatOEQ,
	"!=": llvm.FloatONE,
	"<":  llvm.FloatOLT,
	"<=": llvm.FloatOLE,
	">":  llvm.FloatOGT,
	">=": llvm.FloatOGE,
}

// LogicalAnd and LogicalOr apply bitwise and/or to two bool operands
// (naive, non-short-circuit evaluation; see DESIGN.md).
func (m *Module) LogicalAnd(l, r Value, name string) Value {
	return Value{V: m.builder.CreateAnd(l.V, r.V, name), Kind: ast.KindBool}
}

func (m *Module) LogicalOr(l, r Value, name string) Value {
	return Value{V: m.builder.CreateOr(l.V, r.V, name), Kind: ast.KindBool}
}

// Not applies bitwise-not (via xor with all-ones) to a bool operand.
func (m *Module) Not(v Value, name string) Value {
	return Value{V: m.builder.CreateNot(v.V, name), Kind: ast.KindBool}
}

// NegInt and NegFloat negate an operand already widened to int or float.
func (m *Module) NegInt(v Value, name string) Value {
	return Value{V: m.builder.CreateNeg(v.V, name), Kind: ast.KindInt}
}

func (m *Module) NegFloat(v Value, name string) Value {
	return Value{V: m.builder.CreateFNeg(v.V, name), Kind: ast.KindFloat}
}

// CondBr emits a conditional branch on an i1 condition, marking cur
// terminated.
func (m *Module) CondBr(cur *Block, cond Value, then, els *Block) {
	m.builder.CreateCondBr(cond.V, then.bb, els.bb)
	cur.terminated = true
}

// Br emits an unconditional branch, marking the current block terminated.
func (m *Module) Br(cur, target *Block) {
	m.builder.CreateBr(target.bb)
	cur.terminated = true
}

// Call emits a call to fn with args, returning its result (Kind is
// KindVoid for a void callee; the result value must not be used in that
// case).
func (m *Module) Call(fn *Function, args []Value, name string) Value {
	argVals := make([]llvm.Value, len(args))
	for i, a := range args {
		argVals[i] = a.V
	}
	if fn.ReturnType == ast.KindVoid {
		m.builder.CreateCall(fn.V.GlobalValueType(), fn.V, argVals, "")
		return Value{Kind: ast.KindVoid}
	}
	return Value{V: m.builder.CreateCall(fn.V.GlobalValueType(), fn.V, argVals, name), Kind: fn.ReturnType}
}

// Ret emits a return-with-value, marking the current block terminated.
func (m *Module) Ret(cur *Block, v Value) {
	m.builder.CreateRet(v.V)
	cur.terminated = true
}

// RetVoid emits a return-void, marking the current block terminated.
func (m *Module) RetVoid(cur *Block) {
	m.builder.CreateRetVoid()
	cur.terminated = true
}
