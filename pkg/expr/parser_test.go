package expr

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Terse tree builders for expectations.
func vr(name string) Node        { return NewVar(name) }
func num(text string) Node       { return NewNum(text) }
func str(s string) Node          { return NewStr(s) }
func op(text string) Node        { return NewOp(text) }
func br(tag Tag, k ...Node) Node { return NewBranch(tag, k...) }

func mustParse(t *testing.T, input string) Node {
	t.Helper()
	node, err := ParseExpression(input)
	if err != nil {
		t.Fatalf("parse error for %q: %v", input, err)
	}
	return node
}

func TestOperatorPrecedence(t *testing.T) {
	got := mustParse(t, "1+2*3")
	want := br(TagSumop, num("1"), op("+"), br(TagProdop, num("2"), op("*"), num("3")))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
}

// The compare level parses its right operand at product precedence: the
// right child of a COMPARE node is never a SUMOP unless parenthesized.
func TestCompareRightOperandPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  Node
	}{
		{
			// "+ c" is beyond the expression and stays unconsumed.
			input: "a = b + c",
			want:  br(TagCompare, vr("a"), op("="), vr("b")),
		},
		{
			input: "a = (b + c)",
			want: br(TagCompare, vr("a"), op("="),
				br(TagParen, br(TagSumop, vr("b"), op("+"), vr("c")))),
		},
		{
			input: "a = b * c",
			want: br(TagCompare, vr("a"), op("="),
				br(TagProdop, vr("b"), op("*"), vr("c"))),
		},
		{
			// The left operand is a full sum.
			input: "a + b = c",
			want: br(TagCompare,
				br(TagSumop, vr("a"), op("+"), vr("b")), op("="), vr("c")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := mustParse(t, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AST mismatch (-want +got):\n%s", diff)
			}
			if cmpNode, ok := got.(*Branch); ok && cmpNode.Tag == TagCompare {
				if right, ok := cmpNode.Kids[2].(*Branch); ok && right.Tag == TagSumop {
					t.Errorf("COMPARE right child is a bare SUMOP: %v", right)
				}
			}
		})
	}
}

func TestPostfixChaining(t *testing.T) {
	got := mustParse(t, "f(1)[2]")
	want := br(TagGet,
		br(TagCall, vr("f"), br(TagArgs, num("1"))),
		br(TagKey, num("2")))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestUnary(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Node
	}{
		{
			name:  "single minus",
			input: "-1",
			want:  br(TagUnop, op("-"), num("1")),
		},
		{
			name:  "unary plus",
			input: "+x",
			want:  br(TagUnop, op("+"), vr("x")),
		},
		{
			name:  "chained minus nests",
			input: "- - x",
			want:  br(TagUnop, op("-"), br(TagUnop, op("-"), vr("x"))),
		},
		{
			// Unary binds the single primary only; the call applies to the
			// whole UNOP.
			name:  "unary before call",
			input: "-f(x)",
			want: br(TagCall,
				br(TagUnop, op("-"), vr("f")),
				br(TagArgs, vr("x"))),
		},
		{
			name:  "minus of group",
			input: "-(1+1)",
			want: br(TagUnop, op("-"),
				br(TagParen, br(TagSumop, num("1"), op("+"), num("1")))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AST mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLogicalLeftFold(t *testing.T) {
	got := mustParse(t, "a && b || c")
	want := br(TagLogical,
		br(TagLogical, vr("a"), op("&&"), vr("b")),
		op("||"), vr("c"))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestMappingPairList(t *testing.T) {
	got := mustParse(t, "['fruit' ->   'apple',  'vegetable' -> 'carrot']")
	want := br(TagList,
		br(TagFunc, str("fruit"), str("apple")),
		br(TagFunc, str("vegetable"), str("carrot")))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestAssign(t *testing.T) {
	got := mustParse(t, "x := [y -> 2, z->3]")
	want := br(TagAssign, vr("x"),
		br(TagList,
			br(TagFunc, vr("y"), num("2")),
			br(TagFunc, vr("z"), num("3"))))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Node
	}{
		{
			// The escaped quote is content, not a terminator.
			name:  "escaped quote",
			input: `'w\"orld'`,
			want:  str(`w"orld`),
		},
		{
			name:  "escaped backslash",
			input: `'\\'`,
			want:  str(`\`),
		},
		{
			name:  "escaped own quote",
			input: `'it\'s'`,
			want:  str("it's"),
		},
		{
			name:  "double quoted",
			input: `"hello"`,
			want:  str("hello"),
		},
		{
			name:  "apostrophe inside double quotes",
			input: `"don't"`,
			want:  str("don't"),
		},
		{
			name:  "whitespace preserved",
			input: "'a  b'",
			want:  str("a  b"),
		},
		{
			name:  "empty",
			input: "''",
			want:  str(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AST mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  Node
	}{
		{"42", &Leaf{Tag: TagNum, Int: 42}},
		{"0", &Leaf{Tag: TagNum, Int: 0}},
		{"3.14", &Leaf{Tag: TagNum, Float: 3.14, IsFloat: true}},
		{".5", &Leaf{Tag: TagNum, Float: 0.5, IsFloat: true}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := mustParse(t, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AST mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollections(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Node
	}{
		{"empty list", "[]", br(TagList)},
		{"empty group", "()", br(TagParen)},
		{"empty call", "f()", br(TagCall, vr("f"), br(TagArgs))},
		{"trailing comma", "[1, 2,]", br(TagList, num("1"), num("2"))},
		{"no trailing comma", "[1, 2]", br(TagList, num("1"), num("2"))},
		{
			"nested", "[1, [2, 3]]",
			br(TagList, num("1"), br(TagList, num("2"), num("3"))),
		},
		{
			"group keeps extra elements", "(1, 2)",
			br(TagParen, num("1"), num("2")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParse(t, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AST mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ParseErrorKind
	}{
		{"comma at start", ",", ErrInvalidExpression},
		{"empty input", "", ErrInvalidExpression},
		{"close at start", ")", ErrInvalidExpression},
		{"curly literal", "{1}", ErrNotImplemented},
		{"powershell array", "@(1, 2)", ErrNotImplemented},
		{"curly postfix", "x{1}", ErrNotImplemented},
		{"stray multiply", "*x", ErrNotImplemented},
		{"unterminated string", "'abc", ErrUnterminatedString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExpression(tt.input)
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("got %v, want *ParseError", err)
			}
			if parseErr.Kind != tt.want {
				t.Errorf("got kind %d (%v), want %d", parseErr.Kind, parseErr, tt.want)
			}
		})
	}
}

func TestNestingDepthGuard(t *testing.T) {
	// Within the limit parses fine.
	shallow := strings.Repeat("-", 50) + "1"
	if _, err := ParseExpression(shallow); err != nil {
		t.Fatalf("parse error for shallow nesting: %v", err)
	}

	deep := strings.Repeat("(", MaxNestingDepth+10) + "1" + strings.Repeat(")", MaxNestingDepth+10)
	_, err := ParseExpression(deep)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Kind != ErrDepthExceeded {
		t.Fatalf("got %v, want ErrDepthExceeded", err)
	}
}

// Tokens after the parsed expression stay unconsumed, mirroring the
// compare-level precedence asymmetry.
func TestTrailingTokensIgnored(t *testing.T) {
	tests := []struct {
		input string
		want  Node
	}{
		{"a <= b", vr("a")}, // <= lexes but has no grammar level
		{"x -> y", vr("x")}, // arrows only apply inside collections
		{"1 2", num("1")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := mustParse(t, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AST mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMultilineExpression(t *testing.T) {
	input := "-1+hello(\n    1,\n    'w\\\"orld',\n    3,\n)*2-(1+1)"
	got := mustParse(t, input)
	want := br(TagSumop,
		br(TagSumop,
			br(TagUnop, op("-"), num("1")),
			op("+"),
			br(TagProdop,
				br(TagCall, vr("hello"), br(TagArgs, num("1"), str(`w"orld`), num("3"))),
				op("*"),
				num("2"))),
		op("-"),
		br(TagParen, br(TagSumop, num("1"), op("+"), num("1"))))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
}

func BenchmarkParseExpression(b *testing.B) {
	inputs := map[string]string{
		"arithmetic": "1 + 2*3 - 4/5",
		"call":       "mapIf(['icecream', 'cake', 'soda'], length(#item)>4, upper(#item))",
		"mapping":    "x := ['fruit' -> 'apple', 'vegetable' -> 'carrot']",
	}

	for name, input := range inputs {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := ParseExpression(input); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
