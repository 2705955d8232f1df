package style

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/flowlang/dfexpr/pkg/expr"
)

func TestDecorateColorsLiterals(t *testing.T) {
	old := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = old }()

	tests := []struct {
		tag  expr.Tag
		text string
	}{
		{expr.TagVar, "hello"},
		{expr.TagNum, "42"},
		{expr.TagStr, "'world'"},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			got := Decorate(tt.tag, tt.text)
			if !strings.Contains(got, "\x1b[") {
				t.Errorf("got %q, want ANSI-decorated text", got)
			}
			if !strings.Contains(got, tt.text) {
				t.Errorf("got %q, want it to contain %q", got, tt.text)
			}
		})
	}
}

func TestDecoratePassesOperatorsThrough(t *testing.T) {
	old := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = old }()

	for _, tag := range []expr.Tag{expr.TagOp, expr.TagList, expr.TagCall} {
		if got := Decorate(tag, "+"); got != "+" {
			t.Errorf("Decorate(%s) = %q, want unchanged", tag, got)
		}
	}
}

func TestDecorateHonorsNoColor(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	if got := Decorate(expr.TagVar, "x"); got != "x" {
		t.Errorf("got %q, want plain text with colors disabled", got)
	}
}

func TestDecorateWiresIntoRenderer(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = old }()

	node, err := expr.ParseExpression("x + 1")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	r := expr.Renderer{Decorate: Decorate}
	if got := r.Render(node); got != "x + 1" {
		t.Errorf("got %q, want structural output unchanged", got)
	}
}
