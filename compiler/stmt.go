package compiler

import (
	"fmt"
	"strings"

	"github.com/go-python/gpython/ast"
)

// visitModule renders the module body. Names assigned at module level are
// declared with var so they become properties of the global object, where
// functions reach them through the runtime's globals.
func visitModule(t *Translator, n *ast.Module, s *Scope) (Fragment, error) {
	body, err := t.suite(n.Body, s)
	if err != nil || body.IsEmpty() {
		return Empty, err
	}
	assigned, _ := collectNames(n.Body)
	return Seq(declare(assigned, body), Code("\n")), nil
}

// declare prefixes body with a var statement for names.
func declare(names []string, body Fragment) Fragment {
	if len(names) == 0 {
		return body
	}
	decl := Stmt(Code("var " + strings.Join(names, ", ")))
	if body.IsEmpty() {
		return decl
	}
	return Seq(decl, Code("\n"), body)
}

// suite renders statements one per line, skipping those with no output.
func (t *Translator) suite(stmts []ast.Stmt, s *Scope) (Fragment, error) {
	parts := make([]Fragment, 0, len(stmts))
	for _, stmt := range stmts {
		f, err := t.visit(stmt, s)
		if err != nil {
			return Empty, err
		}
		if f.IsEmpty() {
			continue
		}
		parts = append(parts, f)
	}
	return JoinFragments(parts, "\n"), nil
}

// block wraps body in braces, one statement per indented line. An empty
// body renders as {}.
func block(body Fragment) Fragment {
	if body.IsEmpty() {
		return Code("{}")
	}
	return Seq(Code("{\n"), Block(body), Code("\n}"))
}

func visitFunctionDef(t *Translator, n *ast.FunctionDef, s *Scope) (Fragment, error) {
	if len(n.DecoratorList) > 0 {
		return t.omit(n, "decorated function %s", string(n.Name))
	}
	params, err := t.params(n)
	if err != nil || params == nil {
		return Empty, err
	}

	fs := s.Analyze(params, n.Body)
	body, err := t.suite(n.Body, fs)
	if err != nil {
		return Empty, err
	}
	body = declare(fs.Locals(), body)
	DebugLogPrintf("function %s: params %v, locals %v", n.Name, params, fs.Locals())
	header := fmt.Sprintf("function %s(%s) ", n.Name, strings.Join(params, ", "))
	return Seq(Code(header), block(body)), nil
}

// params returns the positional parameter names of a function. Other
// parameter forms have no lowering; when they are omitted params returns nil.
func (t *Translator) params(n *ast.FunctionDef) ([]string, error) {
	args := n.Args
	if args == nil {
		return []string{}, nil
	}
	if args.Vararg != nil || args.Kwarg != nil || len(args.Kwonlyargs) > 0 ||
		len(args.Defaults) > 0 || len(args.KwDefaults) > 0 {
		_, err := t.omit(n, "parameter list of %s", string(n.Name))
		return nil, err
	}
	names := make([]string, 0, len(args.Args))
	for _, a := range args.Args {
		names = append(names, string(a.Arg))
	}
	return names, nil
}

func visitReturn(t *Translator, n *ast.Return, s *Scope) (Fragment, error) {
	if isNil(n.Value) {
		return Stmt(Code("return")), nil
	}
	v, err := t.visit(n.Value, s)
	if err != nil {
		return Empty, err
	}
	return Stmt(Code("return "), v), nil
}

func visitAssign(t *Translator, n *ast.Assign, s *Scope) (Fragment, error) {
	if len(n.Targets) == 0 {
		return Empty, newError(ErrNodeShape, n, "assignment without targets")
	}
	if len(n.Targets) == 1 {
		if elts, ok := destructured(n.Targets[0]); ok {
			return t.destructure(n, elts, n.Value, s)
		}
	}

	parts := make([]Fragment, 0, len(n.Targets)+1)
	for _, target := range n.Targets {
		if _, ok := destructured(target); ok {
			return Empty, newError(ErrStructure, n, "destructuring target in chained assignment")
		}
		f, err := t.visit(target, s)
		if err != nil {
			return Empty, err
		}
		parts = append(parts, f)
	}
	v, err := t.visit(n.Value, s)
	if err != nil {
		return Empty, err
	}
	parts = append(parts, v)
	return Stmt(JoinFragments(parts, " = ")), nil
}

// destructured returns the elements of a list or tuple target.
func destructured(target ast.Expr) ([]ast.Expr, bool) {
	switch v := target.(type) {
	case *ast.List:
		return v.Elts, true
	case *ast.Tuple:
		return v.Elts, true
	}
	return nil, false
}

// destructure lowers [a, b] = x, y to a store into the scratch slot followed
// by one positional read per target, left to right.
func (t *Translator) destructure(n ast.Ast, targets []ast.Expr, value ast.Expr, s *Scope) (Fragment, error) {
	values, ok := destructured(value)
	if !ok {
		return Empty, newError(ErrStructure, n, "expected list or tuple value, found %s", kindOf(value))
	}
	if err := checkArity(n, targets, values); err != nil {
		return Empty, err
	}
	tmp := t.rt("tmp")
	items, err := t.exprList(values, s)
	if err != nil {
		return Empty, err
	}
	parts := []Fragment{Stmt(Code(tmp+" = ["), items, Code("]"))}
	for i, target := range targets {
		f, err := t.assignFrom(target, fmt.Sprintf("%s[%d]", tmp, i), s)
		if err != nil {
			return Empty, err
		}
		parts = append(parts, f)
	}
	return JoinFragments(parts, " "), nil
}

// checkArity matches targets against values, descending into nested
// targets whose value is itself a list or tuple display. A nested target
// fed by any other expression is read positionally at run time.
func checkArity(n ast.Ast, targets, values []ast.Expr) error {
	if len(values) != len(targets) {
		return newError(ErrStructure, n, "%d targets for %d values", len(targets), len(values))
	}
	for i, target := range targets {
		inner, ok := destructured(target)
		if !ok {
			continue
		}
		if vals, ok := destructured(values[i]); ok {
			if err := checkArity(n, inner, vals); err != nil {
				return err
			}
		}
	}
	return nil
}

// assignFrom assigns the JavaScript expression src to target. Nested list
// and tuple targets read their elements positionally from src.
func (t *Translator) assignFrom(target ast.Expr, src string, s *Scope) (Fragment, error) {
	if elts, ok := destructured(target); ok {
		parts := make([]Fragment, 0, len(elts))
		for i, e := range elts {
			f, err := t.assignFrom(e, fmt.Sprintf("%s[%d]", src, i), s)
			if err != nil {
				return Empty, err
			}
			parts = append(parts, f)
		}
		return JoinFragments(parts, " "), nil
	}
	f, err := t.visit(target, s)
	if err != nil || f.IsEmpty() {
		return Empty, err
	}
	return Stmt(f, Code(" = "+src)), nil
}

func visitAugAssign(t *Translator, n *ast.AugAssign, s *Scope) (Fragment, error) {
	target, err := t.visit(n.Target, s)
	if err != nil {
		return Empty, err
	}
	value, err := t.visit(n.Value, s)
	if err != nil {
		return Empty, err
	}
	if sym, ok := binarySymbols[n.Op]; ok {
		return Stmt(target, Code(" "+sym+"= "), value), nil
	}
	if n.Op == ast.FloorDiv {
		// no compound form; a bare name can be read twice safely
		if _, ok := n.Target.(*ast.Name); ok {
			return Stmt(target, Code(" = "+t.rt("floordiv")+"("), target, Code(", "), value, Code(")")), nil
		}
		return t.omit(n, "operator //= on %s", kindOf(n.Target))
	}
	if name, ok := unsupportedOps[n.Op]; ok {
		return t.omit(n, "operator %s=", name)
	}
	return Empty, newError(ErrNodeShape, n, "unknown compound operator %d", n.Op)
}

func visitFor(t *Translator, n *ast.For, s *Scope) (Fragment, error) {
	iter, err := t.visit(n.Iter, s)
	if err != nil {
		return Empty, err
	}
	label, ls := loopScope(s, len(n.Orelse) > 0)
	bind, err := t.assignFrom(n.Target, "__v", ls)
	if err != nil {
		return Empty, err
	}
	body, err := t.suite(n.Body, ls)
	if err != nil {
		return Empty, err
	}
	if !body.IsEmpty() {
		body = Seq(bind, Code("\n"), body)
	} else {
		body = bind
	}
	loop := Seq(
		Code("for (const [__i, __v] of "+t.rt("iter")+"("), iter, Code(")) "),
		block(body),
	)
	return t.loopElse(label, loop, n.Orelse, s)
}

func visitWhile(t *Translator, n *ast.While, s *Scope) (Fragment, error) {
	test, err := t.visit(n.Test, s)
	if err != nil {
		return Empty, err
	}
	label, ls := loopScope(s, len(n.Orelse) > 0)
	body, err := t.suite(n.Body, ls)
	if err != nil {
		return Empty, err
	}
	loop := Seq(Code("while ("), test, Code(") "), block(body))
	return t.loopElse(label, loop, n.Orelse, s)
}

// loopScope derives the frame for a loop body. Loops with an else clause get
// a label that break statements in the body target.
func loopScope(s *Scope, hasElse bool) (string, *Scope) {
	if !hasElse {
		return "", s.enterLoop("")
	}
	label := fmt.Sprintf("loop_else_%d", s.loopDepth+1)
	return label, s.enterLoop(label)
}

// loopElse wraps loop and its else clause in a labeled block so the else
// clause only runs when the loop ends without break.
func (t *Translator) loopElse(label string, loop Fragment, orelse []ast.Stmt, s *Scope) (Fragment, error) {
	if label == "" {
		return loop, nil
	}
	els, err := t.suite(orelse, s)
	if err != nil {
		return Empty, err
	}
	inner := loop
	if !els.IsEmpty() {
		inner = Seq(loop, Code("\n"), els)
	}
	return Seq(Code(label+": "), block(inner)), nil
}

func visitIf(t *Translator, n *ast.If, s *Scope) (Fragment, error) {
	var parts []Fragment
	for {
		test, err := t.visit(n.Test, s)
		if err != nil {
			return Empty, err
		}
		body, err := t.suite(n.Body, s)
		if err != nil {
			return Empty, err
		}
		parts = append(parts, Seq(Code("if ("), test, Code(") "), block(body)))

		// elif
		if len(n.Orelse) == 1 {
			if next, ok := n.Orelse[0].(*ast.If); ok {
				n = next
				continue
			}
		}
		break
	}
	if len(n.Orelse) > 0 {
		els, err := t.suite(n.Orelse, s)
		if err != nil {
			return Empty, err
		}
		parts = append(parts, block(els))
	}
	return JoinFragments(parts, " else "), nil
}

func visitAssert(t *Translator, n *ast.Assert, s *Scope) (Fragment, error) {
	test, err := t.visit(n.Test, s)
	if err != nil {
		return Empty, err
	}
	msg := Code("nil")
	if !isNil(n.Msg) {
		if msg, err = t.visit(n.Msg, s); err != nil {
			return Empty, err
		}
	}
	return Stmt(Code(t.rt("assert")+"("), test, Code(", "), msg, Code(")")), nil
}

// Declarations only affect name classification.
func visitGlobal(t *Translator, n *ast.Global, s *Scope) (Fragment, error) { return Empty, nil }

func visitPass(t *Translator, n *ast.Pass, s *Scope) (Fragment, error) { return Empty, nil }

func visitExprStmt(t *Translator, n *ast.ExprStmt, s *Scope) (Fragment, error) {
	v, err := t.visit(n.Value, s)
	if err != nil || v.IsEmpty() {
		return Empty, err
	}
	return Stmt(v), nil
}

func visitBreak(t *Translator, n *ast.Break, s *Scope) (Fragment, error) {
	if s.breakLabel != "" {
		return Stmt(Code("break " + s.breakLabel)), nil
	}
	return Stmt(Code("break")), nil
}

func visitContinue(t *Translator, n *ast.Continue, s *Scope) (Fragment, error) {
	return Stmt(Code("continue")), nil
}
