package compiler

import "testing"

func TestFragmentString(t *testing.T) {
	tests := []struct {
		name string
		frag Fragment
		want string
	}{
		{"empty", Empty, ""},
		{"code", Code("a + b"), "a + b"},
		{"seq", Seq(Code("f("), Code("x"), Code(")")), "f(x)"},
		{"stmt", Stmt(Code("f("), Code("x"), Code(")")), "f(x);"},
		{"stmt empty", Stmt(Code("break")), "break;"},
		{"nested seq", Seq(Seq(Code("a"), Seq(Code("b"))), Code("c")), "abc"},
		{"join", JoinFragments([]Fragment{Code("a"), Code("b"), Code("c")}, ", "), "a, b, c"},
		{"join none", JoinFragments(nil, ", "), ""},
		{"block", Seq(Code("{\n"), Block(Code("a;\nb;")), Code("\n}")), "{\n  a;\n  b;\n}"},
		{
			"nested block",
			Seq(Code("{\n"), Block(Seq(Code("x {\n"), Block(Code("y;")), Code("\n}"))), Code("\n}")),
			"{\n  x {\n    y;\n  }\n}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.frag.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFragmentIsEmpty(t *testing.T) {
	if !Empty.IsEmpty() {
		t.Error("Empty is not empty")
	}
	if !Seq(Empty, Seq(), Code("")).IsEmpty() {
		t.Error("sequence of empty fragments is not empty")
	}
	if Seq(Empty, Code("0")).IsEmpty() {
		t.Error("sequence with text reported empty")
	}
	if got := block(Empty).String(); got != "{}" {
		t.Errorf("block(Empty) = %q, want {}", got)
	}
}

func TestFragmentTags(t *testing.T) {
	// text inside a block picks up the block's indent, text outside does not
	f := Seq(Code("a\nb"), Block(Seq(Code("c\nd"))))
	if got, want := f.String(), "a\nb  c\n  d"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if s := Stmt(Code("x")); s.Tag != TagSeq {
		t.Errorf("Stmt tag = %d, want TagSeq", s.Tag)
	}
	// a statement must not share its backing array with the caller's parts
	parts := make([]Fragment, 1, 4)
	parts[0] = Code("a")
	first := Stmt(parts...)
	_ = append(parts, Code("b"))
	if got := first.String(); got != "a;" {
		t.Errorf("Stmt(parts...) = %q after appending to parts", got)
	}
}
