package expr

import (
	"regexp"
	"strings"
)

// Lexer tokenizes expression source text against a compiled rule table.
// A Lexer is read-only after construction and safe for concurrent use.
type Lexer struct {
	rules []compiledRule
}

type compiledRule struct {
	cat Category
	vr  Variant
	lit string
	re  *regexp.Regexp
}

// NewLexer compiles the rule table, preserving declared order so that
// first-match-wins resolution of overlapping rules is deterministic.
func NewLexer(rs *RuleSet) *Lexer {
	l := &Lexer{rules: make([]compiledRule, 0, len(rs.rules))}
	for _, r := range rs.rules {
		cr := compiledRule{cat: r.Cat, vr: r.Var, lit: r.Lit}
		if r.Pattern != "" {
			cr.re = regexp.MustCompile(`\A(?:` + r.Pattern + `)`)
		}
		l.rules = append(l.rules, cr)
	}
	return l
}

var defaultLexer = NewLexer(DefaultRules())

// Tokenize scans input with the default rule table.
func Tokenize(input string) ([]Token, error) {
	return defaultLexer.Tokenize(input)
}

// Tokenize scans the input line by line and returns the full token
// sequence. Every character of every line is covered by exactly one token
// (whitespace runs included). Line numbers are 1-indexed and restart for
// each call; offsets are byte positions within the line. A position
// matched by no rule yields a *LexError.
func (l *Lexer) Tokenize(input string) ([]Token, error) {
	var tokens []Token
	for lineno, line := range splitLines(input) {
		i := 0
		for i < len(line) {
			tok, ok := l.match(line, i, lineno+1)
			if !ok {
				return nil, &LexError{Line: lineno + 1, Offset: i}
			}
			tokens = append(tokens, tok)
			i = tok.End
		}
	}
	return tokens, nil
}

// match tries each rule in table order at position i of line.
func (l *Lexer) match(line string, i, lineno int) (Token, bool) {
	rest := line[i:]
	for _, r := range l.rules {
		var n int
		switch {
		case r.re != nil:
			loc := r.re.FindStringIndex(rest)
			if loc == nil {
				continue
			}
			n = loc[1]
		case strings.HasPrefix(rest, r.lit):
			n = len(r.lit)
		default:
			continue
		}
		return Token{
			Cat:   r.cat,
			Var:   r.vr,
			Text:  rest[:n],
			Start: i,
			End:   i + n,
			Line:  lineno,
		}, true
	}
	return Token{}, false
}

// splitLines splits on "\n" without keeping terminators, so a trailing
// newline does not produce a phantom empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
