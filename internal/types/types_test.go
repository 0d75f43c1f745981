package types

import (
	"testing"

	"github.com/cwbudde/minicc/internal/ast"
)

func TestWiden(t *testing.T) {
	tests := []struct {
		name   string
		a, b   ast.TypeKind
		want   ast.TypeKind
		wantOK bool
	}{
		{"bool bool", ast.KindBool, ast.KindBool, ast.KindBool, true},
		{"bool int", ast.KindBool, ast.KindInt, ast.KindInt, true},
		{"int bool", ast.KindInt, ast.KindBool, ast.KindInt, true},
		{"int float", ast.KindInt, ast.KindFloat, ast.KindFloat, true},
		{"float int", ast.KindFloat, ast.KindInt, ast.KindFloat, true},
		{"bool float", ast.KindBool, ast.KindFloat, ast.KindFloat, true},
		{"void operand", ast.KindVoid, ast.KindInt, ast.KindInvalid, false},
		{"invalid operand", ast.KindInvalid, ast.KindFloat, ast.KindInvalid, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Widen(tt.a, tt.b)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Widen(%s, %s) = (%s, %v), want (%s, %v)", tt.a, tt.b, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestIsAssignable(t *testing.T) {
	tests := []struct {
		name     string
		dst, src ast.TypeKind
		want     bool
	}{
		{"same type", ast.KindInt, ast.KindInt, true},
		{"widen bool to int", ast.KindInt, ast.KindBool, true},
		{"widen int to float", ast.KindFloat, ast.KindInt, true},
		{"narrow float to int", ast.KindInt, ast.KindFloat, false},
		{"narrow int to bool", ast.KindBool, ast.KindInt, false},
		{"void source", ast.KindInt, ast.KindVoid, false},
		{"void destination", ast.KindVoid, ast.KindInt, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAssignable(tt.dst, tt.src); got != tt.want {
				t.Errorf("IsAssignable(%s, %s) = %v, want %v", tt.dst, tt.src, got, tt.want)
			}
		})
	}
}

func TestNeedsConversion(t *testing.T) {
	if NeedsConversion(ast.KindInt, ast.KindInt) {
		t.Error("same-kind assignment must not need a conversion")
	}
	if !NeedsConversion(ast.KindFloat, ast.KindInt) {
		t.Error("int-to-float assignment must need a conversion")
	}
	if NeedsConversion(ast.KindInt, ast.KindFloat) {
		t.Error("a narrowing pair never converts; it is rejected outright")
	}
}

func TestIsScalar(t *testing.T) {
	for _, k := range []ast.TypeKind{ast.KindBool, ast.KindInt, ast.KindFloat} {
		if !IsScalar(k) {
			t.Errorf("IsScalar(%s) = false, want true", k)
		}
	}
	for _, k := range []ast.TypeKind{ast.KindVoid, ast.KindInvalid} {
		if IsScalar(k) {
			t.Errorf("IsScalar(%s) = true, want false", k)
		}
	}
}
