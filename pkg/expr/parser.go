package expr

import "strings"

// MaxNestingDepth bounds recursion through the primary rule so that
// adversarially nested input fails with ErrDepthExceeded instead of
// exhausting the call stack.
const MaxNestingDepth = 200

// parser consumes a token sequence by index. The grammar, precedence low
// to high, each level left-associative unless noted:
//
//	expression = logical [":=" logical]        (non-chaining)
//	function   = logical ["->" logical]        (collection elements)
//	logical    = compare (("&&"|"||") compare)*
//	compare    = sum (("="|"!="|">"|"<") product)*
//	sum        = product (("+"|"-") product)*
//	product    = postfix (("*"|"/") postfix)*
//	postfix    = primary ("(" args ")" | "[" args "]")*
//	primary    = word | number | string | ("+"|"-") primary
//	           | "(" args ")" | "[" args "]"
//
// The compare level parses its right operand at product precedence, one
// level below its own left operand. That asymmetry is part of the
// documented grammar: "a = b + c" stops after "b" and leaves "+ c"
// unconsumed unless the right side is parenthesized.
type parser struct {
	tokens []Token
	depth  int
}

// ParseExpression tokenizes input with the default rule table and parses
// the leading expression.
func ParseExpression(input string) (Node, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens parses a token sequence into an AST. Tokens remaining after
// the parsed expression are left unconsumed; see the compare-level note
// on the grammar above.
func ParseTokens(tokens []Token) (Node, error) {
	p := &parser{tokens: tokens}
	_, node, err := p.expression(0)
	return node, err
}

// next returns the first non-whitespace token at or after index i along
// with the index just past it. Past the last token it synthesizes an end
// token, so lookahead never indexes out of bounds.
func (p *parser) next(i int) (int, Token) {
	for j := i; j < len(p.tokens); j++ {
		if p.tokens[j].Cat == CatSpace {
			continue
		}
		return j + 1, p.tokens[j]
	}
	return len(p.tokens), p.endToken()
}

// peek is next without advancing.
func (p *parser) peek(i int) Token {
	_, tok := p.next(i)
	return tok
}

func (p *parser) endToken() Token {
	line, off := 1, 0
	if n := len(p.tokens); n > 0 {
		line, off = p.tokens[n-1].Line, p.tokens[n-1].End
	}
	return Token{Cat: CatEnd, Var: EndVariant, Start: off, End: off, Line: line}
}

func (p *parser) expression(i int) (int, Node, error) {
	i, left, err := p.logical(i)
	if err != nil {
		return i, nil, err
	}
	if j, tok := p.next(i); tok.Var == OpAssign {
		i, right, err := p.logical(j)
		if err != nil {
			return i, nil, err
		}
		return i, NewBranch(TagAssign, left, right), nil
	}
	return i, left, nil
}

func (p *parser) function(i int) (int, Node, error) {
	i, left, err := p.logical(i)
	if err != nil {
		return i, nil, err
	}
	if j, tok := p.next(i); tok.Var == OpArrow {
		i, right, err := p.logical(j)
		if err != nil {
			return i, nil, err
		}
		return i, NewBranch(TagFunc, left, right), nil
	}
	return i, left, nil
}

func (p *parser) logical(i int) (int, Node, error) {
	i, left, err := p.compare(i)
	if err != nil {
		return i, nil, err
	}
	for {
		j, mid := p.next(i)
		if mid.Var != OpAnd && mid.Var != OpOr {
			return i, left, nil
		}
		var right Node
		i, right, err = p.compare(j)
		if err != nil {
			return i, nil, err
		}
		left = NewBranch(TagLogical, left, NewOp(mid.Text), right)
	}
}

func (p *parser) compare(i int) (int, Node, error) {
	i, left, err := p.sum(i)
	if err != nil {
		return i, nil, err
	}
	for {
		j, mid := p.next(i)
		switch mid.Var {
		case OpEquals, OpNotEquals, OpGreater, OpLesser:
		default:
			return i, left, nil
		}
		var right Node
		i, right, err = p.product(j)
		if err != nil {
			return i, nil, err
		}
		left = NewBranch(TagCompare, left, NewOp(mid.Text), right)
	}
}

func (p *parser) sum(i int) (int, Node, error) {
	i, left, err := p.product(i)
	if err != nil {
		return i, nil, err
	}
	for {
		j, mid := p.next(i)
		if mid.Var != OpAdd && mid.Var != OpMinus {
			return i, left, nil
		}
		var right Node
		i, right, err = p.product(j)
		if err != nil {
			return i, nil, err
		}
		left = NewBranch(TagSumop, left, NewOp(mid.Text), right)
	}
}

func (p *parser) product(i int) (int, Node, error) {
	i, left, err := p.postfix(i)
	if err != nil {
		return i, nil, err
	}
	for {
		j, mid := p.next(i)
		if mid.Var != OpMultiply && mid.Var != OpDivide {
			return i, left, nil
		}
		var right Node
		i, right, err = p.postfix(j)
		if err != nil {
			return i, nil, err
		}
		left = NewBranch(TagProdop, left, NewOp(mid.Text), right)
	}
}

// postfix wraps the accumulated left side once per trailing collection:
// "(...)" as CALL(left, ARGS(...)), "[...]" as GET(left, KEY(...)),
// chaining left to right.
func (p *parser) postfix(i int) (int, Node, error) {
	i, left, err := p.primary(i)
	if err != nil {
		return i, nil, err
	}
	for {
		j, tok := p.next(i)
		if tok.Cat != CatOpen {
			return i, left, nil
		}
		var kids []Node
		switch tok.Var {
		case OpenParen:
			i, kids, err = p.collection(j)
			if err != nil {
				return i, nil, err
			}
			left = NewBranch(TagCall, left, NewBranch(TagArgs, kids...))
		case OpenSquare:
			i, kids, err = p.collection(j)
			if err != nil {
				return i, nil, err
			}
			left = NewBranch(TagGet, left, NewBranch(TagKey, kids...))
		default:
			return i, nil, &ParseError{Kind: ErrNotImplemented, Tok: tok}
		}
	}
}

func (p *parser) primary(i int) (int, Node, error) {
	if p.depth >= MaxNestingDepth {
		return i, nil, &ParseError{Kind: ErrDepthExceeded, Tok: p.peek(i)}
	}
	p.depth++
	defer func() { p.depth-- }()

	i, tok := p.next(i)
	switch tok.Cat {
	case CatWord:
		return i, NewVar(tok.Text), nil
	case CatNumber:
		return i, NewNum(tok.Text), nil
	case CatString:
		return p.stringLit(i, tok)
	case CatOpen:
		var kids []Node
		var err error
		switch tok.Var {
		case OpenSquare:
			i, kids, err = p.collection(i)
			if err != nil {
				return i, nil, err
			}
			return i, NewBranch(TagList, kids...), nil
		case OpenParen:
			// Structurally still a collection, semantically a grouping.
			i, kids, err = p.collection(i)
			if err != nil {
				return i, nil, err
			}
			return i, NewBranch(TagParen, kids...), nil
		default:
			return i, nil, &ParseError{Kind: ErrNotImplemented, Tok: tok}
		}
	case CatOperator:
		if tok.Var == OpAdd || tok.Var == OpMinus {
			// Unary +/- binds exactly one recursively parsed primary, not a
			// full expression, so postfix suffixes apply outside the UNOP.
			i, operand, err := p.primary(i)
			if err != nil {
				return i, nil, err
			}
			return i, NewBranch(TagUnop, NewOp(tok.Text), operand), nil
		}
		return i, nil, &ParseError{Kind: ErrNotImplemented, Tok: tok}
	default:
		return i, nil, &ParseError{Kind: ErrInvalidExpression, Tok: tok}
	}
}

// collection parses comma-separated function-level elements (so mapping
// pairs "k -> v" are legal) until the next non-whitespace token is any
// close delimiter, which it consumes. A trailing comma is tolerated.
func (p *parser) collection(i int) (int, []Node, error) {
	var kids []Node
	for p.peek(i).Cat != CatClose {
		var elem Node
		var err error
		i, elem, err = p.function(i)
		if err != nil {
			return i, nil, err
		}
		kids = append(kids, elem)
		if j, tok := p.next(i); tok.Var == SepComma {
			i = j
		}
	}
	i, _ = p.next(i)
	return i, kids, nil
}

// stringLit assembles a string literal from the raw token stream. The
// opening quote token has already been consumed; content runs until a
// token of the same quote variant. An escape token is dropped and the
// following token's text is taken verbatim, so an escaped quote is
// content rather than a terminator.
func (p *parser) stringLit(i int, open Token) (int, Node, error) {
	var sb strings.Builder
	escaped := false
	for j := i; j < len(p.tokens); j++ {
		tok := p.tokens[j]
		if escaped {
			sb.WriteString(tok.Text)
			escaped = false
			continue
		}
		if tok.Cat == CatString {
			if tok.Var == open.Var {
				return j + 1, NewStr(sb.String()), nil
			}
			if tok.Var == StrEscape {
				escaped = true
				continue
			}
		}
		sb.WriteString(tok.Text)
	}
	return len(p.tokens), nil, &ParseError{Kind: ErrUnterminatedString, Tok: open}
}
