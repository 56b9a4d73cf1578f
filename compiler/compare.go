package compiler

import (
	"github.com/go-python/gpython/ast"
)

var compareSymbols = map[ast.CmpOp]string{
	ast.Eq:    "==",
	ast.NotEq: "!=",
	ast.Lt:    "<",
	ast.LtE:   "<=",
	ast.Gt:    ">",
	ast.GtE:   ">=",
	ast.Is:    "===",
	ast.IsNot: "!==",
}

// isolatedOp reports whether op may only appear alone in a comparison.
func isolatedOp(op ast.CmpOp) bool {
	switch op {
	case ast.In, ast.NotIn, ast.Is, ast.IsNot:
		return true
	}
	return false
}

func visitCompare(t *Translator, n *ast.Compare, s *Scope) (Fragment, error) {
	if len(n.Ops) == 0 || len(n.Ops) != len(n.Comparators) {
		return Empty, newError(ErrNodeShape, n, "%d operators for %d comparators", len(n.Ops), len(n.Comparators))
	}
	if len(n.Ops) > 1 {
		for _, op := range n.Ops {
			if isolatedOp(op) {
				return Empty, newError(ErrComparison, n, "membership and identity tests cannot be chained")
			}
		}
	}

	switch n.Ops[0] {
	case ast.In:
		return t.helperCall("in", s, n.Left, n.Comparators[0])
	case ast.NotIn:
		call, err := t.helperCall("in", s, n.Left, n.Comparators[0])
		if err != nil {
			return Empty, err
		}
		return Seq(Code("!"), call), nil
	}

	left, err := t.sub(n.Left, n, s)
	if err != nil {
		return Empty, err
	}
	parts := []Fragment{left}
	for i, op := range n.Ops {
		sym, ok := compareSymbols[op]
		if !ok {
			return Empty, newError(ErrNodeShape, n, "unknown comparison operator %d", op)
		}
		right, err := t.sub(n.Comparators[i], n, s)
		if err != nil {
			return Empty, err
		}
		parts = append(parts, Code(sym), right)
	}
	return JoinFragments(parts, " "), nil
}
