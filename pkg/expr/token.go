// Package expr implements the data-flow expression language core: a
// rule-table lexer, a precedence-climbing parser producing a tagged AST,
// and an unparser that renders the AST back to source text in compact or
// indented layout. Evaluation of the AST is left to callers.
package expr

import "fmt"

// Category classifies a token at the coarsest level.
type Category string

const (
	CatOperator Category = "operator"
	CatOpen     Category = "open"
	CatClose    Category = "close"
	CatSep      Category = "sep"
	CatString   Category = "string"
	CatSpace    Category = "space"
	CatNumber   Category = "number"
	CatWord     Category = "word"

	// CatEnd is synthesized by parser lookahead past the last token; the
	// lexer never emits it.
	CatEnd Category = "end"
)

// Variant names the specific symbol or shape within a category.
type Variant string

const (
	OpArrow            Variant = "arrow"
	OpAssign           Variant = "assign"
	OpAdd              Variant = "add"
	OpMinus            Variant = "minus"
	OpDivide           Variant = "divide"
	OpMultiply         Variant = "multiply"
	OpMod              Variant = "mod"
	OpAnd              Variant = "and"
	OpOr               Variant = "or"
	OpXor              Variant = "xor"
	OpBitwiseAnd       Variant = "bitwiseAnd"
	OpBitwiseOr        Variant = "bitwiseOr"
	OpBitwiseXor       Variant = "bitwiseXor"
	OpEquals           Variant = "equals"
	OpNotEquals        Variant = "notEquals"
	OpEqualsIgnoreCase Variant = "equalsIgnoreCase"
	OpGreaterOrEqual   Variant = "greaterOrEqual"
	OpLessOrEqual      Variant = "lessOrEqual"
	OpLeast            Variant = "least"
	OpGreater          Variant = "greater"
	OpLesser           Variant = "lesser"
	OpConcat           Variant = "concat"

	OpenArray  Variant = "larray"
	OpenParen  Variant = "lparen"
	OpenCurly  Variant = "lcurly"
	OpenSquare Variant = "lsquare"

	CloseParen  Variant = "rparen"
	CloseCurly  Variant = "rcurly"
	CloseSquare Variant = "rsquare"

	SepComma Variant = "comma"

	StrApostrophe Variant = "apostrophe"
	StrQuotes     Variant = "quotes"
	StrEscape     Variant = "escape"

	SpaceRun Variant = "space"

	NumberLit Variant = "number"

	WordItem  Variant = "item"
	WordIndex Variant = "index"
	WordPlain Variant = "word"

	EndVariant Variant = "end"
)

// Token is a classified span of source text. Start and End are byte
// offsets within the token's line; Line is 1-indexed per Tokenize call.
type Token struct {
	Cat   Category
	Var   Variant
	Text  string
	Start int
	End   int
	Line  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s/%s %q at %d:%d", t.Cat, t.Var, t.Text, t.Line, t.Start)
}

// Rule classifies text with either a verbatim literal or an anchored
// regular expression pattern. Exactly one of Lit and Pattern is set.
type Rule struct {
	Cat     Category
	Var     Variant
	Lit     string
	Pattern string
}

// RuleSet is an ordered token rule table. Order is significant: the lexer
// resolves overlapping rules by taking the first rule that matches at the
// current scan position, so earlier entries shadow later ones (e.g. "^" is
// always xor, never bitwiseXor).
type RuleSet struct {
	rules []Rule
}

// Rules returns the table entries in declared order.
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

func lit(cat Category, v Variant, text string) Rule {
	return Rule{Cat: cat, Var: v, Lit: text}
}

func pat(cat Category, v Variant, pattern string) Rule {
	return Rule{Cat: cat, Var: v, Pattern: pattern}
}

// DefaultRules builds the token rule table for the data-flow expression
// grammar. The table deliberately carries the overlapping entries of the
// documented grammar (lessOrEqual/least, xor/bitwiseXor, add/concat);
// first-declared wins, so the shadowed variants never surface in tokens.
func DefaultRules() *RuleSet {
	return &RuleSet{rules: []Rule{
		lit(CatOperator, OpArrow, "->"),
		lit(CatOperator, OpAssign, ":="),
		lit(CatOperator, OpAdd, "+"),
		lit(CatOperator, OpMinus, "-"),
		lit(CatOperator, OpDivide, "/"),
		lit(CatOperator, OpMultiply, "*"),
		lit(CatOperator, OpMod, "%"),
		lit(CatOperator, OpAnd, "&&"),
		lit(CatOperator, OpOr, "||"),
		lit(CatOperator, OpXor, "^"),
		lit(CatOperator, OpBitwiseAnd, "&"),
		lit(CatOperator, OpBitwiseOr, "|"),
		lit(CatOperator, OpBitwiseXor, "^"),
		lit(CatOperator, OpEquals, "="),
		lit(CatOperator, OpNotEquals, "!="),
		lit(CatOperator, OpEqualsIgnoreCase, "<=>"),
		lit(CatOperator, OpGreaterOrEqual, ">="),
		lit(CatOperator, OpLessOrEqual, "<="),
		lit(CatOperator, OpLeast, "<="),
		lit(CatOperator, OpGreater, ">"),
		lit(CatOperator, OpLesser, "<"),
		lit(CatOperator, OpConcat, "+"),

		lit(CatOpen, OpenArray, "@("),
		lit(CatOpen, OpenParen, "("),
		lit(CatOpen, OpenCurly, "{"),
		lit(CatOpen, OpenSquare, "["),

		lit(CatClose, CloseParen, ")"),
		lit(CatClose, CloseCurly, "}"),
		lit(CatClose, CloseSquare, "]"),

		lit(CatSep, SepComma, ","),

		lit(CatString, StrApostrophe, "'"),
		lit(CatString, StrQuotes, `"`),
		lit(CatString, StrEscape, `\`),

		pat(CatSpace, SpaceRun, `\s+`),

		pat(CatNumber, NumberLit, `\d+(?:\.\d+)?|\.\d+`),

		pat(CatWord, WordItem, `#item(?:_\d+)?`),
		pat(CatWord, WordIndex, `#index(?:_\d+)?`),
		pat(CatWord, WordPlain, `[a-zA-Z_]+`),
	}}
}
