package compiler

import "strings"

// Fragment tags: how a fragment is flattened
const (
	TagText  int = 0
	TagSeq   int = 1
	TagBlock int = 2
)

// Fragment is a piece of emitted JavaScript. It is either a run of text
// (Content) or an ordered sequence of child fragments (Parts). Sequences are
// concatenated without a separator when flattened.
type Fragment struct {
	Content string
	Parts   []Fragment
	Tag     int
}

// Empty is the explicit "no output" result of a rule.
var Empty = Fragment{Tag: TagText}

// Code wraps a run of text.
func Code(s string) Fragment {
	return Fragment{Content: s, Tag: TagText}
}

// Stmt builds a simple statement from parts and terminates it with a
// semicolon.
func Stmt(parts ...Fragment) Fragment {
	out := make([]Fragment, 0, len(parts)+1)
	out = append(out, parts...)
	return Seq(append(out, Code(";"))...)
}

// Block indents every line of body by two spaces relative to the
// enclosing block.
func Block(body Fragment) Fragment {
	return Fragment{Parts: []Fragment{body}, Tag: TagBlock}
}

// Seq builds a sequence fragment from parts, in order.
func Seq(parts ...Fragment) Fragment {
	return Fragment{Parts: parts, Tag: TagSeq}
}

// JoinFragments builds a sequence with sep between consecutive parts.
func JoinFragments(parts []Fragment, sep string) Fragment {
	if len(parts) == 0 {
		return Empty
	}
	out := make([]Fragment, 0, 2*len(parts)-1)
	for i, p := range parts {
		if i > 0 {
			out = append(out, Code(sep))
		}
		out = append(out, p)
	}
	return Seq(out...)
}

// IsEmpty reports whether the fragment flattens to no text.
func (f Fragment) IsEmpty() bool {
	if f.Content != "" {
		return false
	}
	for _, p := range f.Parts {
		if !p.IsEmpty() {
			return false
		}
	}
	return true
}

// String flattens the fragment tree in one pass.
func (f Fragment) String() string {
	var sb strings.Builder
	f.writeTo(&sb, "")
	return sb.String()
}

func (f Fragment) writeTo(sb *strings.Builder, indent string) {
	switch f.Tag {
	case TagText:
		if indent == "" {
			sb.WriteString(f.Content)
		} else {
			sb.WriteString(strings.ReplaceAll(f.Content, "\n", "\n"+indent))
		}
	case TagBlock:
		// a block always starts on a fresh line already carrying indent
		indent += "  "
		sb.WriteString("  ")
		fallthrough
	case TagSeq:
		for _, p := range f.Parts {
			p.writeTo(sb, indent)
		}
	}
}
