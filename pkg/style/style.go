// Package style decorates rendered expression text with terminal colors.
// It is a cosmetic layer over the expr renderer's output and has no
// effect on its structural contract.
package style

import (
	"github.com/fatih/color"

	"github.com/flowlang/dfexpr/pkg/expr"
)

var (
	varColor = color.New(color.FgHiYellow, color.Bold)
	numColor = color.New(color.FgHiMagenta)
	strColor = color.New(color.FgHiGreen)
)

// Decorate colors variable, number and string leaves; everything else
// passes through unchanged. Wire it into a Renderer via the Decorate
// field. Respects color.NoColor.
func Decorate(tag expr.Tag, text string) string {
	switch tag {
	case expr.TagVar:
		return varColor.Sprint(text)
	case expr.TagNum:
		return numColor.Sprint(text)
	case expr.TagStr:
		return strColor.Sprint(text)
	default:
		return text
	}
}
