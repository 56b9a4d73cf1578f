package compiler

import (
	"github.com/go-python/gpython/ast"
)

// Scope is the frame of one function body (or of the module). Frames are
// never mutated after construction; entering a function or a loop derives a
// new frame.
type Scope struct {
	parent  *Scope
	globals map[string]bool
	params  map[string]bool
	locals  []string

	// loop state of the innermost enclosing loop in this frame
	loopDepth  int
	breakLabel string
}

func newModuleScope() *Scope {
	return &Scope{globals: map[string]bool{}, params: map[string]bool{}}
}

// Analyze computes the frame for a function body with the given parameters.
func (s *Scope) Analyze(params []string, body []ast.Stmt) *Scope {
	assigned, declared := collectNames(body)
	fn := &Scope{
		parent:  s,
		globals: make(map[string]bool, len(declared)),
		params:  make(map[string]bool, len(params)),
	}
	for _, name := range declared {
		fn.globals[name] = true
	}
	for _, p := range params {
		fn.params[p] = true
	}
	for _, name := range assigned {
		if fn.globals[name] || fn.params[name] {
			continue
		}
		fn.locals = append(fn.locals, name)
	}
	return fn
}

// Parent returns the enclosing frame, nil for the module frame.
func (s *Scope) Parent() *Scope { return s.parent }

// IsGlobal reports whether name is declared global in this frame.
func (s *Scope) IsGlobal(name string) bool { return s.globals[name] }

// Locals returns the names to declare at the top of the body, in
// first-assignment order.
func (s *Scope) Locals() []string { return s.locals }

// enterLoop returns a copy of s for the body of a loop. label is the break
// target of a loop with an else clause, "" otherwise.
func (s *Scope) enterLoop(label string) *Scope {
	c := *s
	c.loopDepth++
	c.breakLabel = label
	return &c
}

// collectNames walks body once, without descending into nested function,
// lambda or class bodies, and returns the assigned names (deduplicated, in order of
// first assignment) and the names declared global.
func collectNames(body []ast.Stmt) (assigned, declared []string) {
	seenAssigned := map[string]bool{}
	seenDeclared := map[string]bool{}
	addAssigned := func(name string) {
		if !seenAssigned[name] {
			seenAssigned[name] = true
			assigned = append(assigned, name)
		}
	}

	for _, stmt := range body {
		ast.Walk(stmt, func(n ast.Ast) bool {
			switch v := n.(type) {
			case *ast.FunctionDef, *ast.Lambda, *ast.ClassDef:
				return false
			case *ast.Assign:
				for _, target := range v.Targets {
					targetNames(target, addAssigned)
				}
			case *ast.AugAssign:
				targetNames(v.Target, addAssigned)
			case *ast.For:
				targetNames(v.Target, addAssigned)
			case *ast.Global:
				for _, name := range v.Names {
					if !seenDeclared[string(name)] {
						seenDeclared[string(name)] = true
						declared = append(declared, string(name))
					}
				}
			}
			return true
		})
	}
	return assigned, declared
}

// targetNames calls add for every bare name bound by an assignment target.
func targetNames(target ast.Expr, add func(string)) {
	switch v := target.(type) {
	case *ast.Name:
		add(string(v.Id))
	case *ast.List:
		for _, e := range v.Elts {
			targetNames(e, add)
		}
	case *ast.Tuple:
		for _, e := range v.Elts {
			targetNames(e, add)
		}
	case *ast.Starred:
		targetNames(v.Value, add)
	}
}
