package compiler

import (
	"github.com/go-python/gpython/ast"
)

// Output precedence of rendered expressions, low to high. The ordering is
// JavaScript's: bitwise operators bind looser than comparisons, and equality
// looser than relational comparison.
const (
	precConditional    = 1
	precOr             = 2
	precAnd            = 3
	precBitOr          = 4
	precBitXor         = 5
	precBitAnd         = 6
	precEquality       = 7
	precRelational     = 8
	precAdditive       = 10
	precMultiplicative = 20
	precUnary          = 30
	precAttribute      = 40
	precMax            = 100
)

// precedence returns the precedence of n as it is rendered. Nodes without an
// entry, and nodes that render as helper calls, get precMax.
func precedence(n ast.Ast) int {
	switch v := n.(type) {
	case *ast.BinOp:
		switch v.Op {
		case ast.Add, ast.Sub:
			return precAdditive
		case ast.Mult, ast.Div:
			return precMultiplicative
		case ast.BitOr:
			return precBitOr
		case ast.BitXor:
			return precBitXor
		case ast.BitAnd:
			return precBitAnd
		}
	case *ast.BoolOp:
		if v.Op == ast.Or {
			return precOr
		}
		return precAnd
	case *ast.Compare:
		if len(v.Ops) == 1 {
			switch v.Ops[0] {
			case ast.In:
				return precMax
			case ast.NotIn:
				return precUnary
			}
		}
		return comparePrecedence(v.Ops)
	case *ast.UnaryOp:
		return precUnary
	case *ast.IfExp:
		return precConditional
	case *ast.Attribute, *ast.Subscript, *ast.Call:
		return precAttribute
	}
	return precMax
}

// comparePrecedence returns the loosest level among ops: a chain renders as
// one flat run of operators.
func comparePrecedence(ops []ast.CmpOp) int {
	for _, op := range ops {
		switch op {
		case ast.Eq, ast.NotEq, ast.Is, ast.IsNot:
			return precEquality
		}
	}
	return precRelational
}

// sub renders n as an operand of parent, parenthesized when its precedence
// is strictly lower than the parent's. A nil parent never parenthesizes.
func (t *Translator) sub(n ast.Ast, parent ast.Ast, s *Scope) (Fragment, error) {
	f, err := t.visit(n, s)
	if err != nil || isNil(parent) {
		return f, err
	}
	if precedence(n) < precedence(parent) {
		return Seq(Code("("), f, Code(")")), nil
	}
	return f, nil
}
