package compiler

import (
	"math/rand"
	"testing"

	"github.com/go-python/gpython/ast"
)

var arithmetic = []struct {
	op   ast.OperatorNumber
	sym  string
	prec int
}{
	{ast.Add, "+", 1},
	{ast.Sub, "-", 1},
	{ast.Mult, "*", 2},
	{ast.Div, "/", 2},
}

type arithNode struct {
	expr ast.Expr
	// reference rendering given the precedence of the enclosing operator
	render func(parent int) string
}

// randomArith builds a random add/sub/mul/div tree over single-letter names.
func randomArith(r *rand.Rand, depth int) arithNode {
	if depth == 0 || r.Intn(4) == 0 {
		id := string(rune('a' + r.Intn(5)))
		return arithNode{
			expr:   &ast.Name{Id: ast.Identifier(id), Ctx: ast.Load},
			render: func(int) string { return id },
		}
	}
	o := arithmetic[r.Intn(len(arithmetic))]
	left := randomArith(r, depth-1)
	right := randomArith(r, depth-1)
	return arithNode{
		expr: &ast.BinOp{Left: left.expr, Op: o.op, Right: right.expr},
		render: func(parent int) string {
			s := left.render(o.prec) + " " + o.sym + " " + right.render(o.prec)
			if o.prec < parent {
				return "(" + s + ")"
			}
			return s
		},
	}
}

func TestArithmeticParenthesization(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		tree := randomArith(r, 5)
		got, err := Translate(tree.expr)
		if err != nil {
			t.Fatalf("Translate failed: %v", err)
		}
		if want := tree.render(0); got != want {
			t.Fatalf("case %d:\n got: %s\nwant: %s", i, got, want)
		}

		// rendering the reparsed output must reproduce it
		again, err := TranslateExpr(got)
		if err != nil {
			t.Fatalf("TranslateExpr(%q) failed: %v", got, err)
		}
		if again != got {
			t.Fatalf("case %d: unstable rendering\nfirst: %s\n then: %s", i, got, again)
		}
	}
}

func TestPrecedenceTable(t *testing.T) {
	name := &ast.Name{Id: "a", Ctx: ast.Load}
	bin := func(op ast.OperatorNumber) *ast.BinOp { return &ast.BinOp{Left: name, Op: op, Right: name} }

	ordered := []ast.Ast{
		&ast.IfExp{Test: name, Body: name, Orelse: name},
		&ast.BoolOp{Op: ast.Or, Values: []ast.Expr{name, name}},
		&ast.BoolOp{Op: ast.And, Values: []ast.Expr{name, name}},
		bin(ast.BitOr),
		bin(ast.BitXor),
		bin(ast.BitAnd),
		&ast.Compare{Left: name, Ops: []ast.CmpOp{ast.Eq}, Comparators: []ast.Expr{name}},
		&ast.Compare{Left: name, Ops: []ast.CmpOp{ast.Lt}, Comparators: []ast.Expr{name}},
		bin(ast.Add),
		bin(ast.Mult),
		&ast.UnaryOp{Op: ast.USub, Operand: name},
		&ast.Attribute{Value: name, Attr: "b", Ctx: ast.Load},
	}
	for i := 1; i < len(ordered); i++ {
		lo, hi := precedence(ordered[i-1]), precedence(ordered[i])
		if lo >= hi {
			t.Errorf("%s (%d) should bind looser than %s (%d)", kindOf(ordered[i-1]), lo, kindOf(ordered[i]), hi)
		}
	}

	for _, n := range []ast.Ast{name, bin(ast.FloorDiv), &ast.Num{}, &ast.Compare{Ops: []ast.CmpOp{ast.In}}} {
		if p := precedence(n); p != precMax {
			t.Errorf("precedence(%s) = %d, want max", kindOf(n), p)
		}
	}
	chain := &ast.Compare{Left: name, Ops: []ast.CmpOp{ast.Lt, ast.Eq}, Comparators: []ast.Expr{name, name}}
	if p := precedence(chain); p != precEquality {
		t.Errorf("chain with == has precedence %d, want %d", p, precEquality)
	}
	if p := precedence(&ast.Compare{Ops: []ast.CmpOp{ast.IsNot}}); p != precEquality {
		t.Errorf("is not has precedence %d, want %d", p, precEquality)
	}
	if p := precedence(bin(ast.Sub)); p != precedence(bin(ast.Add)) {
		t.Errorf("subtract and add differ: %d", p)
	}
	if p := precedence(bin(ast.Div)); p != precedence(bin(ast.Mult)) {
		t.Errorf("divide and multiply differ: %d", p)
	}
}
