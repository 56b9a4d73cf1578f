package compiler

import (
	"fmt"
	"strings"

	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/parser"
)

// ParseModule parses src as a module.
func ParseModule(src, filename string) (*ast.Module, error) {
	tree, err := parser.Parse(strings.NewReader(src), filename, "exec")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	mod, ok := tree.(*ast.Module)
	if !ok {
		return nil, fmt.Errorf("%s: parser returned %T, expected module", filename, tree)
	}
	return mod, nil
}

// ParseExpr parses src as a single expression.
func ParseExpr(src string) (*ast.Expression, error) {
	tree, err := parser.Parse(strings.NewReader(src), "<expr>", "eval")
	if err != nil {
		return nil, fmt.Errorf("<expr>: %w", err)
	}
	expr, ok := tree.(*ast.Expression)
	if !ok {
		return nil, fmt.Errorf("<expr>: parser returned %T, expected expression", tree)
	}
	return expr, nil
}

// TranslateSource parses src as a module and translates it.
func TranslateSource(src, filename string, opts ...Option) (string, error) {
	mod, err := ParseModule(src, filename)
	if err != nil {
		return "", err
	}
	DebugLogPrintf("%s: %d top-level statements", filename, len(mod.Body))
	return Translate(mod, opts...)
}

// TranslateExpr parses src as one expression and translates it.
func TranslateExpr(src string, opts ...Option) (string, error) {
	expr, err := ParseExpr(src)
	if err != nil {
		return "", err
	}
	return Translate(expr, opts...)
}
