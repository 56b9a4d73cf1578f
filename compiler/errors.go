package compiler

import (
	"errors"
	"fmt"

	"github.com/go-python/gpython/ast"
)

// Error kinds. Every *Error unwraps to exactly one of these.
var (
	// ErrStructure: destructuring whose value is not a list/tuple literal, or
	// whose sides have different lengths.
	ErrStructure = errors.New("structural mismatch")
	// ErrAttributeTarget: attribute node used with a context other than
	// load or store.
	ErrAttributeTarget = errors.New("malformed attribute target")
	// ErrComparison: membership or identity tests chained with other operators.
	ErrComparison = errors.New("unsupported comparison shape")
	// ErrNodeShape: a node with a known kind whose fields break the rule's
	// precondition.
	ErrNodeShape = errors.New("unrecognized node shape")
	// ErrUnsupported: a recognized construct with no lowering.
	ErrUnsupported = errors.New("unsupported construct")
)

// Error is a translation failure tied to the node that caused it.
type Error struct {
	Kind error
	Node string
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	loc := ""
	if e.Line > 0 {
		loc = fmt.Sprintf("%d:%d: ", e.Line, e.Col)
	}
	if e.Node == "" {
		return fmt.Sprintf("%s%v: %s", loc, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s%v: %s (%s)", loc, e.Kind, e.Msg, e.Node)
}

func (e *Error) Unwrap() error { return e.Kind }

type positioned interface {
	GetLineno() int
	GetColOffset() int
}

// newError builds an *Error for node n. Columns are reported 1-based.
func newError(kind error, n ast.Ast, format string, args ...any) *Error {
	e := &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
	if !isNil(n) {
		e.Node = kindOf(n)
		e.Line, e.Col = position(n)
	}
	return e
}

// position returns the 1-based line and column of n, or zeros when n has
// none. gpython leaves calls with an argument list unpositioned; they take
// the position of the callee, where the call starts.
func position(n ast.Ast) (line, col int) {
	if p, ok := n.(positioned); ok && p.GetLineno() > 0 {
		return p.GetLineno(), p.GetColOffset() + 1
	}
	if c, ok := n.(*ast.Call); ok && !isNil(c.Func) {
		return position(c.Func)
	}
	return 0, 0
}
