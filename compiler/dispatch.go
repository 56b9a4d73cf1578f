package compiler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-python/gpython/ast"
)

// rule renders one node kind. scope is the frame of the innermost enclosing
// function (or the module frame).
type rule func(t *Translator, n ast.Ast, s *Scope) (Fragment, error)

// rules maps a node kind to its rule. Filled in init to break the
// reference cycle between the table and the rules that recurse through it.
var rules map[string]rule

// on adapts a typed rule body to the table's signature.
func on[N ast.Ast](fn func(t *Translator, n N, s *Scope) (Fragment, error)) rule {
	return func(t *Translator, n ast.Ast, s *Scope) (Fragment, error) {
		node, ok := n.(N)
		if !ok {
			return Empty, newError(ErrNodeShape, n, "rule received %T", n)
		}
		return fn(t, node, s)
	}
}

func init() {
	rules = map[string]rule{
		"Module": on(visitModule),

		// statements
		"FunctionDef": on(visitFunctionDef),
		"Return":      on(visitReturn),
		"Assign":      on(visitAssign),
		"AugAssign":   on(visitAugAssign),
		"For":         on(visitFor),
		"While":       on(visitWhile),
		"If":          on(visitIf),
		"Assert":      on(visitAssert),
		"Global":      on(visitGlobal),
		"ExprStmt":    on(visitExprStmt),
		"Pass":        on(visitPass),
		"Break":       on(visitBreak),
		"Continue":    on(visitContinue),

		// expressions
		"BoolOp":       on(visitBoolOp),
		"BinOp":        on(visitBinOp),
		"UnaryOp":      on(visitUnaryOp),
		"IfExp":        on(visitIfExp),
		"Dict":         on(visitDict),
		"Compare":      on(visitCompare),
		"Call":         on(visitCall),
		"Num":          on(visitNum),
		"Str":          on(visitStr),
		"NameConstant": on(visitNameConstant),
		"Attribute":    on(visitAttribute),
		"Subscript":    on(visitSubscript),
		"Name":         on(visitName),
		"List":         on(visitList),
		"Tuple":        on(visitTuple),
	}
	for _, kind := range unsupportedKinds {
		rules[kind] = visitUnsupported
	}
}

// Translator turns gpython syntax trees into JavaScript source. A Translator
// holds only its options; it is safe to reuse across inputs but not to share
// between goroutines that change its options.
type Translator struct {
	opts Options
}

// NewTranslator returns a Translator configured by opts.
func NewTranslator(opts ...Option) *Translator {
	return &Translator{opts: buildOptions(opts)}
}

// Translate renders node as JavaScript using a fresh Translator.
func Translate(node ast.Ast, opts ...Option) (string, error) {
	return NewTranslator(opts...).Translate(node)
}

// Translate renders node as JavaScript. A nil node renders as "".
func (t *Translator) Translate(node ast.Ast) (string, error) {
	frag, err := t.visit(node, newModuleScope())
	if err != nil {
		return "", err
	}
	return frag.String(), nil
}

// visit dispatches on the node kind.
func (t *Translator) visit(n ast.Ast, s *Scope) (Fragment, error) {
	if isNil(n) {
		return Empty, nil
	}
	kind := kindOf(n)
	if r, ok := rules[kind]; ok {
		f, err := r(t, n, s)
		if err != nil {
			locate(err, n)
		}
		return f, err
	}
	DebugLogPrintf("no rule for %s, visiting children", kind)
	return t.visitChildren(n, s)
}

// locate gives an unpositioned translation error the position of n, the
// nearest enclosing node that has one.
func locate(err error, n ast.Ast) {
	var terr *Error
	if errors.As(err, &terr) && terr.Line == 0 {
		terr.Line, terr.Col = position(n)
	}
}

// visitChildren renders every direct child of n and joins them with a space.
func (t *Translator) visitChildren(n ast.Ast, s *Scope) (Fragment, error) {
	var parts []Fragment
	for _, c := range children(n) {
		f, err := t.visit(c, s)
		if err != nil {
			return Empty, err
		}
		parts = append(parts, f)
	}
	return JoinFragments(parts, " "), nil
}

// rt qualifies name with the runtime namespace.
func (t *Translator) rt(name string) string {
	return t.opts.Runtime + "." + name
}

// omit handles an unsupported construct: an error by default, or a silent
// empty fragment when omission is allowed.
func (t *Translator) omit(n ast.Ast, format string, args ...any) (Fragment, error) {
	err := newError(ErrUnsupported, n, format, args...)
	if !t.opts.AllowOmission {
		return Empty, err
	}
	DebugLogPrintf("omitted: %v", err)
	if t.opts.OnOmit != nil {
		t.opts.OnOmit(err)
	}
	return Empty, nil
}

// kindOf returns the kind of a node: its gpython type name.
func kindOf(n ast.Ast) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}

// children returns the direct child nodes of n in source order.
func children(n ast.Ast) []ast.Ast {
	var out []ast.Ast
	ast.Walk(n, func(c ast.Ast) bool {
		if c == n {
			return true
		}
		out = append(out, c)
		return false
	})
	return out
}

// isNil reports whether n is absent, including typed nil pointers held in
// an interface.
func isNil(n ast.Ast) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
