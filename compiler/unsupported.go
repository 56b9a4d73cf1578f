package compiler

import (
	"github.com/go-python/gpython/ast"
)

// unsupportedKinds are recognized node kinds with no lowering. Operators,
// slices and parameter forms without a lowering are rejected by the rules
// that meet them.
var unsupportedKinds = []string{
	// statements
	"ClassDef",
	"Import",
	"ImportFrom",
	"Try",
	"Raise",
	"With",
	"Delete",
	"Nonlocal",

	// expressions
	"Lambda",
	"ListComp",
	"SetComp",
	"DictComp",
	"GeneratorExp",
	"Yield",
	"YieldFrom",
	"Set",
	"Bytes",
	"Ellipsis",
	"Starred",
}

// IsUnsupportedKind reports whether kind names a construct that is
// recognized but never translated.
func IsUnsupportedKind(kind string) bool {
	for _, k := range unsupportedKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func visitUnsupported(t *Translator, n ast.Ast, s *Scope) (Fragment, error) {
	return t.omit(n, "%s is not supported", kindOf(n))
}
