package semantic

import (
	"github.com/cwbudde/minicc/internal/ast"
	"github.com/cwbudde/minicc/internal/irgen"
	"tinygo.org/x/go-llvm"
)

// globalSymbol is either a global variable or a function, recorded in the
// global table as top-level items are processed in source order.
type globalSymbol struct {
	isFunc bool
	kind   ast.TypeKind // variable type, or function return type
	slot   llvm.Value   // set when isFunc is false
	fn     *irgen.Function
}

// localSymbol is a single local variable or parameter's stack slot.
type localSymbol struct {
	kind ast.TypeKind
	slot llvm.Value
}

// scope is one frame of the local scope stack: a function body, a branch
// arm, or a loop body.
type scope struct {
	vars map[string]localSymbol
}

func newScope() *scope {
	return &scope{vars: make(map[string]localSymbol)}
}

// symbolTable implements the two tables described by the data model: a
// global table, plus a stack of local scope frames. lookupLocal walks from
// innermost to outermost local frame and never consults the globals;
// lookupGlobal searches only the globals. The analyzer tries lookupLocal
// first and falls through to lookupGlobal on a miss.
type symbolTable struct {
	globals map[string]*globalSymbol
	stack   []*scope
}

func newSymbolTable() *symbolTable {
	return &symbolTable{globals: make(map[string]*globalSymbol)}
}

func (t *symbolTable) pushScope() {
	t.stack = append(t.stack, newScope())
}

func (t *symbolTable) popScope() {
	t.stack = t.stack[:len(t.stack)-1]
}

func (t *symbolTable) top() *scope {
	return t.stack[len(t.stack)-1]
}

// declareLocal records name in the current (innermost) scope. It reports
// false if name is already declared in that same scope — redefinition
// within one scope is a semantic error, but shadowing an outer scope is
// always permitted.
func (t *symbolTable) declareLocal(name string, kind ast.TypeKind, slot llvm.Value) bool {
	top := t.top()
	if _, exists := top.vars[name]; exists {
		return false
	}
	top.vars[name] = localSymbol{kind: kind, slot: slot}
	return true
}

// lookupLocal searches the scope stack innermost-first.
func (t *symbolTable) lookupLocal(name string) (localSymbol, bool) {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if sym, ok := t.stack[i].vars[name]; ok {
			return sym, true
		}
	}
	return localSymbol{}, false
}

// declareGlobal records a global variable or function. It reports false if
// the name is already present — redefinition of a global is always an
// error, regardless of kind.
func (t *symbolTable) declareGlobal(name string, sym *globalSymbol) bool {
	if _, exists := t.globals[name]; exists {
		return false
	}
	t.globals[name] = sym
	return true
}

func (t *symbolTable) lookupGlobal(name string) (*globalSymbol, bool) {
	sym, ok := t.globals[name]
	return sym, ok
}
