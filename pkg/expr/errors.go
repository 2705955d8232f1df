package expr

import "fmt"

// LexError reports a scan position matched by no token rule. The line is
// 1-indexed, the offset 0-indexed within that line.
type LexError struct {
	Line   int
	Offset int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("no token rule matches at line %d, offset %d", e.Line, e.Offset)
}

// ParseErrorKind distinguishes the ways a parse can fail.
type ParseErrorKind int

const (
	// ErrInvalidExpression marks a token that cannot start or continue an
	// expression at the current grammar position.
	ErrInvalidExpression ParseErrorKind = iota
	// ErrNotImplemented marks a lexically valid construct the grammar does
	// not wire up (larray "@(", lcurly "{").
	ErrNotImplemented
	// ErrUnterminatedString marks a string literal with no closing quote.
	ErrUnterminatedString
	// ErrDepthExceeded marks nesting beyond MaxNestingDepth.
	ErrDepthExceeded
)

// ParseError reports a token that is invalid in its grammar position.
// The whole parse is abandoned; no partial AST is returned.
type ParseError struct {
	Kind ParseErrorKind
	Tok  Token
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrNotImplemented:
		return fmt.Sprintf("not implemented %q", e.Tok.Var)
	case ErrUnterminatedString:
		return fmt.Sprintf("unterminated string opened by %s", e.Tok)
	case ErrDepthExceeded:
		return fmt.Sprintf("expression nesting exceeds %d levels at %s", MaxNestingDepth, e.Tok)
	default:
		return fmt.Sprintf("invalid expression at %s", e.Tok)
	}
}
