package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/minicc/internal/ast"
	"github.com/cwbudde/minicc/internal/lexer"
	"github.com/cwbudde/minicc/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Mini-C file and print its syntax tree",
	Long: `Parse a Mini-C source file and print the resulting syntax tree.

This is a debugging aid for the grammar; it plays no part in compile's
pipeline and performs no semantic analysis.

Examples:
  minicc parse factorial.mc`,
	Args: cobra.ExactArgs(1),
	RunE: parseFile,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parseFile(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	p := parser.New(lexer.New(string(content)))
	prog := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "syntax error: %s at line %d column %d\n", e.Message, e.Pos.Line, e.Pos.Column)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	printProgram(prog)
	return nil
}

func printProgram(p *ast.Program) {
	for _, d := range p.Decls {
		printDecl(d, 0)
	}
}

func printDecl(d ast.Decl, depth int) {
	indent := strings.Repeat("  ", depth)
	switch decl := d.(type) {
	case *ast.ExternDecl:
		fmt.Printf("%sExtern %s %s(%s)\n", indent, decl.ReturnType, decl.Name, paramList(decl.Params))
	case *ast.GlobalVarDecl:
		fmt.Printf("%sGlobalVar %s %s\n", indent, decl.Type, decl.Name)
	case *ast.FuncDecl:
		fmt.Printf("%sFunc %s %s(%s)\n", indent, decl.ReturnType, decl.Name, paramList(decl.Params))
		printBlock(decl.Body, depth+1)
	}
}

func paramList(params []ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s %s", p.Type, p.Name)
	}
	return strings.Join(parts, ", ")
}

func printBlock(b *ast.Block, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%sBlock\n", indent)
	for _, local := range b.Locals {
		fmt.Printf("%s  Local %s %s\n", indent, local.Type, local.Name)
	}
	for _, s := range b.Stmts {
		printStmt(s, depth+1)
	}
}

func printStmt(s ast.Stmt, depth int) {
	indent := strings.Repeat("  ", depth)
	switch st := s.(type) {
	case *ast.ExprStmt:
		if st.X == nil {
			fmt.Printf("%sEmptyStmt\n", indent)
		} else {
			fmt.Printf("%sExprStmt %s\n", indent, printExpr(st.X))
		}
	case *ast.BlockStmt:
		printBlock(st.Block, depth)
	case *ast.IfStmt:
		fmt.Printf("%sIf %s\n", indent, printExpr(st.Cond))
		printStmt(st.Then, depth+1)
		if st.Else != nil {
			fmt.Printf("%sElse\n", indent)
			printStmt(st.Else, depth+1)
		}
	case *ast.WhileStmt:
		fmt.Printf("%sWhile %s\n", indent, printExpr(st.Cond))
		printStmt(st.Body, depth+1)
	case *ast.ReturnStmt:
		if st.Value == nil {
			fmt.Printf("%sReturn\n", indent)
		} else {
			fmt.Printf("%sReturn %s\n", indent, printExpr(st.Value))
		}
	}
}

func printExpr(e ast.Expr) string {
	switch ex := e.(type) {
	case *ast.IntLit:
		return fmt.Sprintf("%d", ex.Value)
	case *ast.FloatLit:
		return fmt.Sprintf("%g", ex.Value)
	case *ast.BoolLit:
		return fmt.Sprintf("%t", ex.Value)
	case *ast.VarRef:
		return ex.Name
	case *ast.CallExpr:
		args := make([]string, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = printExpr(a)
		}
		return fmt.Sprintf("%s(%s)", ex.Callee, strings.Join(args, ", "))
	case *ast.UnaryOp:
		return fmt.Sprintf("(%s%s)", ex.Op, printExpr(ex.X))
	case *ast.BinaryOp:
		return fmt.Sprintf("(%s %s %s)", printExpr(ex.Left), ex.Op, printExpr(ex.Right))
	default:
		return "?"
	}
}
