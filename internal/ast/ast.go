// Package ast defines the Mini-C syntax tree produced by the parser and
// consumed by the semantic analyzer.
package ast

import "github.com/cwbudde/minicc/pkg/token"

// Node is implemented by every syntax tree node.
type Node interface {
	Pos() token.Position
}

// TypeKind names one of Mini-C's four declared type keywords.
type TypeKind int

const (
	KindInvalid TypeKind = iota
	KindInt
	KindFloat
	KindBool
	KindVoid
)

func (k TypeKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindVoid:
		return "void"
	default:
		return "invalid"
	}
}

// Program is the root node: a sequence of externs, globals, and function
// declarations in source order.
type Program struct {
	Decls    []Decl
	StartPos token.Position
}

func (p *Program) Pos() token.Position { return p.StartPos }

// Decl is any top-level declaration.
type Decl interface {
	Node
	declNode()
}

// ExternDecl declares a function implemented outside this translation unit.
type ExternDecl struct {
	ReturnType TypeKind
	Name       string
	Params     []Param
	Position   token.Position
}

func (d *ExternDecl) Pos() token.Position { return d.Position }
func (d *ExternDecl) declNode()           {}

// GlobalVarDecl declares a file-scope variable.
type GlobalVarDecl struct {
	Type     TypeKind
	Name     string
	Position token.Position
}

func (d *GlobalVarDecl) Pos() token.Position { return d.Position }
func (d *GlobalVarDecl) declNode()           {}

// Param is a single function parameter (type + name, no default value).
type Param struct {
	Type     TypeKind
	Name     string
	Position token.Position
}

func (p Param) Pos() token.Position { return p.Position }

// FuncDecl declares a function with a body defined in this translation unit.
type FuncDecl struct {
	ReturnType TypeKind
	Name       string
	Params     []Param
	Body       *Block
	Position   token.Position
}

func (d *FuncDecl) Pos() token.Position { return d.Position }
func (d *FuncDecl) declNode()           {}

// Block is a brace-delimited sequence of local declarations and statements,
// introducing one scope.
type Block struct {
	Locals   []*LocalVarDecl
	Stmts    []Stmt
	Position token.Position
}

func (b *Block) Pos() token.Position { return b.Position }

// LocalVarDecl declares a variable local to the enclosing block.
type LocalVarDecl struct {
	Type     TypeKind
	Name     string
	Position token.Position
}

func (d *LocalVarDecl) Pos() token.Position { return d.Position }

// Stmt is any executable statement.
type Stmt interface {
	Node
	stmtNode()
}

// ExprStmt is an expression evaluated for its side effects (e.g. a call, or
// an assignment) and discarded.
type ExprStmt struct {
	X        Expr // nil for an empty statement (bare ";")
	Position token.Position
}

func (s *ExprStmt) Pos() token.Position { return s.Position }
func (s *ExprStmt) stmtNode()           {}

// BlockStmt nests a brace-delimited block as a statement, introducing its
// own scope. If/else bodies are always a BlockStmt; a while body is one
// only when written as a block.
type BlockStmt struct {
	Block    *Block
	Position token.Position
}

func (s *BlockStmt) Pos() token.Position { return s.Position }
func (s *BlockStmt) stmtNode()           {}

// IfStmt is `if (Cond) Then [else Else]`. Else is nil when absent.
type IfStmt struct {
	Cond     Expr
	Then     Stmt
	Else     Stmt
	Position token.Position
}

func (s *IfStmt) Pos() token.Position { return s.Position }
func (s *IfStmt) stmtNode()           {}

// WhileStmt is `while (Cond) Body`.
type WhileStmt struct {
	Cond     Expr
	Body     Stmt
	Position token.Position
}

func (s *WhileStmt) Pos() token.Position { return s.Position }
func (s *WhileStmt) stmtNode()           {}

// ReturnStmt is `return [Value];`. Value is nil for a void return.
type ReturnStmt struct {
	Value    Expr
	Position token.Position
}

func (s *ReturnStmt) Pos() token.Position { return s.Position }
func (s *ReturnStmt) stmtNode()           {}

// Expr is any expression node. Every expression carries the TypeKind the
// semantic analyzer resolved for it (KindInvalid until then).
type Expr interface {
	Node
	exprNode()
	ResolvedType() TypeKind
	SetResolvedType(TypeKind)
}

type exprBase struct {
	Type     TypeKind
	Position token.Position
}

func (e *exprBase) Pos() token.Position        { return e.Position }
func (e *exprBase) exprNode()                  {}
func (e *exprBase) ResolvedType() TypeKind     { return e.Type }
func (e *exprBase) SetResolvedType(k TypeKind) { e.Type = k }

// IntLit is an integer literal.
type IntLit struct {
	exprBase
	Value int32
}

// FloatLit is a floating-point literal.
type FloatLit struct {
	exprBase
	Value float32
}

// BoolLit is `true` or `false`.
type BoolLit struct {
	exprBase
	Value bool
}

// VarRef is a reference to a variable, parameter, or global by name.
type VarRef struct {
	exprBase
	Name string
}

// CallExpr is a function call.
type CallExpr struct {
	exprBase
	Callee string
	Args   []Expr
}

// UnaryOp is `-x` or `!x`.
type UnaryOp struct {
	exprBase
	Op token.Type // MINUS or NOT
	X  Expr
}

// BinaryOp is any two-operand operator, including assignment.
type BinaryOp struct {
	exprBase
	Op    token.Type
	Left  Expr
	Right Expr
}

// Constructors, used by the parser to build leaf/composite expression
// nodes without reaching into exprBase's unexported field.

func NewIntLit(pos token.Position, value int32) *IntLit {
	return &IntLit{exprBase: exprBase{Position: pos}, Value: value}
}

func NewFloatLit(pos token.Position, value float32) *FloatLit {
	return &FloatLit{exprBase: exprBase{Position: pos}, Value: value}
}

func NewBoolLit(pos token.Position, value bool) *BoolLit {
	return &BoolLit{exprBase: exprBase{Position: pos}, Value: value}
}

func NewVarRef(pos token.Position, name string) *VarRef {
	return &VarRef{exprBase: exprBase{Position: pos}, Name: name}
}

func NewCallExpr(pos token.Position, callee string, args []Expr) *CallExpr {
	return &CallExpr{exprBase: exprBase{Position: pos}, Callee: callee, Args: args}
}

func NewUnaryOp(pos token.Position, op token.Type, x Expr) *UnaryOp {
	return &UnaryOp{exprBase: exprBase{Position: pos}, Op: op, X: x}
}

func NewBinaryOp(pos token.Position, op token.Type, left, right Expr) *BinaryOp {
	return &BinaryOp{exprBase: exprBase{Position: pos}, Op: op, Left: left, Right: right}
}
