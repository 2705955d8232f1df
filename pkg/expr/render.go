package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Layout selects the unparser's output shape.
type Layout int

const (
	// Compact renders the whole expression on a single line.
	Compact Layout = iota
	// Indented renders CALL/LIST/ARGS bodies over multiple lines with
	// nested indentation.
	Indented
)

// Renderer renders an AST back to source text. Rendering is a pure
// function of the node and the renderer's settings; the tree is never
// mutated. The zero value renders compact.
type Renderer struct {
	Layout Layout
	// Width is the number of spaces per indent level; 0 means 4.
	Width int
	// Decorate, when non-nil, is applied to every rendered leaf (STR
	// including its quotes). It is cosmetic only and must not change the
	// structural content.
	Decorate func(Tag, string) string
}

// Render renders n with the given layout and default width.
func Render(n Node, layout Layout) string {
	r := Renderer{Layout: layout}
	return r.Render(n)
}

// Render renders the tree rooted at n.
func (r *Renderer) Render(n Node) string {
	switch t := n.(type) {
	case *Leaf:
		return r.leaf(t)
	case *Branch:
		return r.branch(t)
	default:
		return fmt.Sprintf("<invalid node %T>", n)
	}
}

func (r *Renderer) leaf(l *Leaf) string {
	var s string
	switch l.Tag {
	case TagStr:
		s = "'" + escapeString(l.Str) + "'"
	case TagNum:
		s = formatNum(l)
	case TagVar, TagOp:
		s = l.Str
	default:
		return fmt.Sprintf("<invalid leaf %s>", l.Tag)
	}
	if r.Decorate != nil {
		s = r.Decorate(l.Tag, s)
	}
	return s
}

func (r *Renderer) branch(b *Branch) string {
	switch b.Tag {
	case TagUnop, TagProdop:
		return r.join(b.Kids, "")
	case TagSumop, TagCompare, TagLogical:
		return r.join(b.Kids, " ")
	case TagFunc:
		return r.Render(b.Kids[0]) + " -> " + r.Render(b.Kids[1])
	case TagAssign:
		return r.Render(b.Kids[0]) + " := " + r.Render(b.Kids[1])
	case TagCall:
		callee := r.Render(b.Kids[0])
		body := r.Render(b.Kids[1])
		if r.Layout == Indented && body != "" {
			return callee + "(\n" + r.indent(body) + "\n)"
		}
		return callee + "(" + body + ")"
	case TagGet:
		return r.Render(b.Kids[0]) + "[" + r.Render(b.Kids[1]) + "]"
	case TagParen:
		return "(" + r.join(b.Kids, ", ") + ")"
	case TagList:
		if r.Layout == Indented && len(b.Kids) > 0 {
			return "[\n" + r.indent(r.join(b.Kids, ",\n")) + ",\n]"
		}
		return "[" + r.join(b.Kids, ", ") + "]"
	case TagArgs:
		if r.Layout == Indented && len(b.Kids) > 0 {
			return r.join(b.Kids, ",\n") + ","
		}
		return r.join(b.Kids, ", ")
	case TagKey:
		return r.join(b.Kids, ", ")
	default:
		return fmt.Sprintf("<invalid branch %s>", b.Tag)
	}
}

func (r *Renderer) join(kids []Node, sep string) string {
	parts := make([]string, len(kids))
	for i, k := range kids {
		parts[i] = r.Render(k)
	}
	return strings.Join(parts, sep)
}

// indent prefixes every non-empty line of s with one indent level.
func (r *Renderer) indent(s string) string {
	width := r.Width
	if width <= 0 {
		width = 4
	}
	pad := strings.Repeat(" ", width)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

// escapeString makes string content safe to re-lex inside fixed '...'
// quotes. The original quote style of the source is not preserved.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// formatNum renders a NUM leaf so that re-parsing preserves its int/float
// shape: floats always carry a decimal point.
func formatNum(l *Leaf) string {
	if !l.IsFloat {
		return strconv.FormatInt(l.Int, 10)
	}
	s := strconv.FormatFloat(l.Float, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
