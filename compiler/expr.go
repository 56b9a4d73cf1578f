package compiler

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/py"
)

// binarySymbols are the operators rendered as native infix.
var binarySymbols = map[ast.OperatorNumber]string{
	ast.Add:    "+",
	ast.Sub:    "-",
	ast.Mult:   "*",
	ast.Div:    "/",
	ast.BitOr:  "|",
	ast.BitXor: "^",
	ast.BitAnd: "&",
}

// operators with no lowering
var unsupportedOps = map[ast.OperatorNumber]string{
	ast.Modulo: "%",
	ast.Pow:    "**",
	ast.LShift: "<<",
	ast.RShift: ">>",
}

func visitBinOp(t *Translator, n *ast.BinOp, s *Scope) (Fragment, error) {
	if n.Op == ast.FloorDiv {
		return t.helperCall("floordiv", s, n.Left, n.Right)
	}
	sym, ok := binarySymbols[n.Op]
	if !ok {
		if name, known := unsupportedOps[n.Op]; known {
			return t.omit(n, "operator %s", name)
		}
		return Empty, newError(ErrNodeShape, n, "unknown binary operator %d", n.Op)
	}
	left, err := t.sub(n.Left, n, s)
	if err != nil {
		return Empty, err
	}
	right, err := t.sub(n.Right, n, s)
	if err != nil {
		return Empty, err
	}
	return Seq(left, Code(" "+sym+" "), right), nil
}

func visitBoolOp(t *Translator, n *ast.BoolOp, s *Scope) (Fragment, error) {
	if len(n.Values) < 2 {
		return Empty, newError(ErrNodeShape, n, "boolean operator with %d operands", len(n.Values))
	}
	sep := " && "
	if n.Op == ast.Or {
		sep = " || "
	}
	parts := make([]Fragment, 0, len(n.Values))
	for _, v := range n.Values {
		f, err := t.sub(v, n, s)
		if err != nil {
			return Empty, err
		}
		parts = append(parts, f)
	}
	return JoinFragments(parts, sep), nil
}

func visitUnaryOp(t *Translator, n *ast.UnaryOp, s *Scope) (Fragment, error) {
	var sym string
	switch n.Op {
	case ast.UAdd:
		sym = "+"
	case ast.USub:
		sym = "-"
	case ast.Not:
		sym = "!"
	case ast.Invert:
		return t.omit(n, "operator ~")
	default:
		return Empty, newError(ErrNodeShape, n, "unknown unary operator %d", n.Op)
	}
	operand, err := t.sub(n.Operand, n, s)
	if err != nil {
		return Empty, err
	}
	// "- -a" must not collapse into a decrement
	if text := operand.String(); sym != "!" && (strings.HasPrefix(text, "+") || strings.HasPrefix(text, "-")) {
		sym += " "
	}
	return Seq(Code(sym), operand), nil
}

func visitIfExp(t *Translator, n *ast.IfExp, s *Scope) (Fragment, error) {
	test, err := t.sub(n.Test, n, s)
	if err != nil {
		return Empty, err
	}
	// the conditional operator is right associative
	if _, nested := n.Test.(*ast.IfExp); nested {
		test = Seq(Code("("), test, Code(")"))
	}
	body, err := t.sub(n.Body, n, s)
	if err != nil {
		return Empty, err
	}
	orelse, err := t.sub(n.Orelse, n, s)
	if err != nil {
		return Empty, err
	}
	return Seq(test, Code(" ? "), body, Code(" : "), orelse), nil
}

func visitDict(t *Translator, n *ast.Dict, s *Scope) (Fragment, error) {
	if len(n.Keys) != len(n.Values) {
		return Empty, newError(ErrNodeShape, n, "%d keys for %d values", len(n.Keys), len(n.Values))
	}
	pairs := make([]Fragment, 0, len(n.Keys))
	for i := range n.Keys {
		k, err := t.visit(n.Keys[i], s)
		if err != nil {
			return Empty, err
		}
		v, err := t.visit(n.Values[i], s)
		if err != nil {
			return Empty, err
		}
		pairs = append(pairs, Seq(Code("["), k, Code(", "), v, Code("]")))
	}
	return Seq(Code(t.rt("dict")+"(["), JoinFragments(pairs, ", "), Code("])")), nil
}

func visitNum(t *Translator, n *ast.Num, s *Scope) (Fragment, error) {
	if _, ok := n.N.(py.Complex); ok {
		return t.omit(n, "complex literal")
	}
	str, err := py.Str(n.N)
	if err != nil {
		return Empty, newError(ErrNodeShape, n, "number literal: %v", err)
	}
	text, ok := str.(py.String)
	if !ok {
		return Empty, newError(ErrNodeShape, n, "number literal renders as %s", str.Type().Name)
	}
	return Code(string(text)), nil
}

func visitStr(t *Translator, n *ast.Str, s *Scope) (Fragment, error) {
	return Code(quote(string(n.S))), nil
}

func visitNameConstant(t *Translator, n *ast.NameConstant, s *Scope) (Fragment, error) {
	switch n.Value {
	case py.None:
		return Code("nil"), nil
	case py.True:
		return Code("true"), nil
	case py.False:
		return Code("false"), nil
	}
	return Empty, newError(ErrNodeShape, n, "unknown constant")
}

func visitName(t *Translator, n *ast.Name, s *Scope) (Fragment, error) {
	return Code(t.name(string(n.Id), s)), nil
}

// name renders a bare name, qualified through the globals object when s
// declares it global.
func (t *Translator) name(id string, s *Scope) string {
	if s.IsGlobal(id) {
		return t.rt("globals") + "." + id
	}
	return id
}

func visitAttribute(t *Translator, n *ast.Attribute, s *Scope) (Fragment, error) {
	switch n.Ctx {
	case ast.Load:
		recv, err := t.visit(n.Value, s)
		if err != nil {
			return Empty, err
		}
		return Seq(Code(t.rt("getattr")+"("), recv, Code(", "+quote(string(n.Attr))+")")), nil
	case ast.Store:
		recv, err := t.visit(n.Value, s)
		if err != nil {
			return Empty, err
		}
		if _, bare := n.Value.(*ast.Name); !bare {
			recv = Seq(Code("("), recv, Code(")"))
		}
		return Seq(recv, Code("."+string(n.Attr))), nil
	}
	return Empty, newError(ErrAttributeTarget, n, "attribute %q used in %s context", string(n.Attr), contextName(n.Ctx))
}

func visitSubscript(t *Translator, n *ast.Subscript, s *Scope) (Fragment, error) {
	index, ok := n.Slice.(*ast.Index)
	if !ok {
		return t.omit(n, "slicing")
	}
	value, err := t.sub(n.Value, n, s)
	if err != nil {
		return Empty, err
	}
	i, err := t.visit(index.Value, s)
	if err != nil {
		return Empty, err
	}
	return Seq(value, Code("["), i, Code("]")), nil
}

func visitList(t *Translator, n *ast.List, s *Scope) (Fragment, error) {
	return t.arrayLiteral(n, n.Elts, n.Ctx, s)
}

func visitTuple(t *Translator, n *ast.Tuple, s *Scope) (Fragment, error) {
	return t.arrayLiteral(n, n.Elts, n.Ctx, s)
}

// arrayLiteral renders list and tuple displays. Targets are only valid
// inside destructuring assignment, which never dispatches here.
func (t *Translator) arrayLiteral(n ast.Ast, elts []ast.Expr, ctx ast.ExprContext, s *Scope) (Fragment, error) {
	if ctx != ast.Load {
		return Empty, newError(ErrStructure, n, "%s target outside destructuring assignment", strings.ToLower(kindOf(n)))
	}
	items, err := t.exprList(elts, s)
	if err != nil {
		return Empty, err
	}
	return Seq(Code("["), items, Code("]")), nil
}

// exprList renders exprs comma separated, without parentheses.
func (t *Translator) exprList(exprs []ast.Expr, s *Scope) (Fragment, error) {
	parts := make([]Fragment, 0, len(exprs))
	for _, e := range exprs {
		f, err := t.visit(e, s)
		if err != nil {
			return Empty, err
		}
		parts = append(parts, f)
	}
	return JoinFragments(parts, ", "), nil
}

// helperCall renders a call to a runtime helper with the given arguments.
func (t *Translator) helperCall(helper string, s *Scope, args ...ast.Expr) (Fragment, error) {
	list, err := t.exprList(args, s)
	if err != nil {
		return Empty, err
	}
	return Seq(Code(t.rt(helper)+"("), list, Code(")")), nil
}

// quote renders a string as a JSON string literal, which is also a valid
// JavaScript string literal.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// strings always encode
		panic(err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func contextName(ctx ast.ExprContext) string {
	switch ctx {
	case ast.Load:
		return "load"
	case ast.Store:
		return "store"
	case ast.Del:
		return "del"
	case ast.AugLoad:
		return "augload"
	case ast.AugStore:
		return "augstore"
	case ast.Param:
		return "param"
	}
	return "unknown"
}
