package expr

import (
	"math"
	"strconv"
)

// Tag names the syntactic construct an AST node represents.
type Tag string

const (
	TagStr Tag = "STR"
	TagNum Tag = "NUM"
	TagVar Tag = "VAR"
	TagOp  Tag = "OP"

	TagUnop    Tag = "UNOP"
	TagProdop  Tag = "PRODOP"
	TagSumop   Tag = "SUMOP"
	TagCompare Tag = "COMPARE"
	TagLogical Tag = "LOGICAL"
	TagFunc    Tag = "FUNC"
	TagAssign  Tag = "ASSIGN"
	TagCall    Tag = "CALL"
	TagArgs    Tag = "ARGS"
	TagGet     Tag = "GET"
	TagKey     Tag = "KEY"
	TagParen   Tag = "PAREN"
	TagList    Tag = "LIST"
)

// Node is the interface over the two AST shapes: *Leaf and *Branch.
// Trees are built bottom-up during parsing and never mutated afterwards;
// each node exclusively owns its children.
type Node interface {
	NodeTag() Tag
}

// Leaf holds a scalar literal: the text of a STR, VAR or OP node, or the
// numeric value of a NUM node (IsFloat selects Int vs Float).
type Leaf struct {
	Tag     Tag
	Str     string
	Int     int64
	Float   float64
	IsFloat bool
}

func (l *Leaf) NodeTag() Tag { return l.Tag }

// Branch holds an ordered list of children.
type Branch struct {
	Tag  Tag
	Kids []Node
}

func (b *Branch) NodeTag() Tag { return b.Tag }

// NewStr builds a STR leaf from decoded string content.
func NewStr(s string) *Leaf { return &Leaf{Tag: TagStr, Str: s} }

// NewVar builds a VAR leaf from an identifier.
func NewVar(name string) *Leaf { return &Leaf{Tag: TagVar, Str: name} }

// NewOp builds an OP leaf from operator text.
func NewOp(text string) *Leaf { return &Leaf{Tag: TagOp, Str: text} }

// NewNum builds a NUM leaf from literal text, preferring an integer value
// when the text parses as one. The lexer's number rule guarantees the
// text is a valid literal.
func NewNum(text string) *Leaf {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return &Leaf{Tag: TagNum, Int: n}
	}
	f, _ := strconv.ParseFloat(text, 64)
	if math.IsInf(f, 1) {
		// The literal grammar has no exponent or sign, so overflow can
		// only reach +Inf; clamp so the value renders as a lexable literal.
		f = math.MaxFloat64
	}
	return &Leaf{Tag: TagNum, Float: f, IsFloat: true}
}

// NewBranch builds an interior node.
func NewBranch(tag Tag, kids ...Node) *Branch {
	return &Branch{Tag: tag, Kids: kids}
}
