package compiler

import (
	"github.com/go-python/gpython/ast"
)

func visitCall(t *Translator, n *ast.Call, s *Scope) (Fragment, error) {
	if fn, ok := n.Func.(*ast.Name); ok && !s.IsGlobal(string(fn.Id)) {
		switch fn.Id {
		case "print":
			if isNil(n.Starargs) && isNil(n.Kwargs) {
				return t.printCall(n, s)
			}
		case "repr":
			if len(n.Args) == 1 && len(n.Keywords) == 0 && isNil(n.Starargs) && isNil(n.Kwargs) {
				return t.helperCall("repr", s, n.Args[0])
			}
		}
	}

	callee, err := t.sub(n.Func, n, s)
	if err != nil {
		return Empty, err
	}
	args, err := t.exprList(n.Args, s)
	if err != nil {
		return Empty, err
	}

	if isNil(n.Starargs) && isNil(n.Kwargs) && len(n.Keywords) == 0 {
		return Seq(callee, Code("("), args, Code(")")), nil
	}

	// f.apply(this, py.make_args([positional], star, dstar))
	star := Code("nil")
	if !isNil(n.Starargs) {
		if star, err = t.visit(n.Starargs, s); err != nil {
			return Empty, err
		}
	}
	dstar := Code("nil")
	switch {
	case len(n.Keywords) > 0 && !isNil(n.Kwargs):
		return t.omit(n, "keyword arguments combined with **kwargs")
	case len(n.Keywords) > 0:
		if dstar, err = t.keywordDict(n.Keywords, s); err != nil {
			return Empty, err
		}
	case !isNil(n.Kwargs):
		if dstar, err = t.visit(n.Kwargs, s); err != nil {
			return Empty, err
		}
	}
	return Seq(
		callee,
		Code(".apply(this, "+t.rt("make_args")+"(["),
		args,
		Code("], "), star,
		Code(", "), dstar,
		Code("))"),
	), nil
}

// keywordDict renders keyword arguments as a runtime dict.
func (t *Translator) keywordDict(kws []*ast.Keyword, s *Scope) (Fragment, error) {
	pairs := make([]Fragment, 0, len(kws))
	for _, kw := range kws {
		v, err := t.visit(kw.Value, s)
		if err != nil {
			return Empty, err
		}
		pairs = append(pairs, Seq(Code("["+quote(string(kw.Arg))+", "), v, Code("]")))
	}
	return Seq(Code(t.rt("dict")+"(["), JoinFragments(pairs, ", "), Code("])")), nil
}

// printCall lowers print(...). The terminator defaults to a newline and is
// replaced by the end keyword; an empty end drops it.
func (t *Translator) printCall(n *ast.Call, s *Scope) (Fragment, error) {
	args, err := t.exprList(n.Args, s)
	if err != nil {
		return Empty, err
	}
	parts := []Fragment{}
	if len(n.Args) > 0 {
		parts = append(parts, args)
	}
	end := Code(quote("\n"))
	for _, kw := range n.Keywords {
		if kw.Arg != "end" {
			return t.omit(n, "print keyword %s", string(kw.Arg))
		}
		if str, ok := kw.Value.(*ast.Str); ok && str.S == "" {
			end = Empty
			continue
		}
		if end, err = t.visit(kw.Value, s); err != nil {
			return Empty, err
		}
	}
	if !end.IsEmpty() {
		parts = append(parts, end)
	}
	return Seq(Code(t.rt("print")+"("), JoinFragments(parts, ", "), Code(")")), nil
}
