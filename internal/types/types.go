// Package types implements Mini-C's scalar type lattice: bool ⊆ int ⊆
// float, with void usable only as a function return type.
package types

import "github.com/cwbudde/minicc/internal/ast"

// rank orders the three numeric/boolean scalar kinds for widening
// purposes. void has no rank; it is never an operand type.
func rank(k ast.TypeKind) int {
	switch k {
	case ast.KindBool:
		return 0
	case ast.KindInt:
		return 1
	case ast.KindFloat:
		return 2
	default:
		return -1
	}
}

// IsScalar reports whether k is one of bool, int, float.
func IsScalar(k ast.TypeKind) bool {
	return rank(k) >= 0
}

// Widen returns the common type two scalar operand types widen to, per the
// bool ⊆ int ⊆ float lattice, and whether the pair is well-formed (both
// scalar). The wider of the two ranks always wins; equal ranks return that
// rank unchanged.
func Widen(a, b ast.TypeKind) (ast.TypeKind, bool) {
	ra, rb := rank(a), rank(b)
	if ra < 0 || rb < 0 {
		return ast.KindInvalid, false
	}
	if ra >= rb {
		return a, true
	}
	return b, true
}

// IsAssignable reports whether a value of type src may be assigned (or
// passed/returned) to a destination of type dst without an explicit cast:
// true whenever dst's rank is >= src's rank, i.e. no narrowing occurs.
func IsAssignable(dst, src ast.TypeKind) bool {
	rd, rs := rank(dst), rank(src)
	if rd < 0 || rs < 0 {
		return false
	}
	return rd >= rs
}

// NeedsConversion reports whether assigning src to dst requires an
// int-to-float (or bool-to-float, bool-to-int) widening conversion to be
// emitted, as opposed to a bit-identical store.
func NeedsConversion(dst, src ast.TypeKind) bool {
	return dst != src && IsAssignable(dst, src)
}
