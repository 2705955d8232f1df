// Package main is the command line driver for the data-flow expression
// toolkit: it feeds source text through the lexer, parser and renderer
// and prints the result.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/flowlang/dfexpr/pkg/expr"
	"github.com/flowlang/dfexpr/pkg/style"
)

// Set via -ldflags at build time.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "dfexpr",
	Short: "Data-flow expression language toolkit",
	Long: "dfexpr tokenizes, parses and re-renders expressions in the\n" +
		"data-flow expression language. Expression text is taken from the\n" +
		"arguments, or from stdin when the only argument is \"-\".",
}

var tokensCmd = &cobra.Command{
	Use:   "tokens [expression]",
	Short: "Print the token sequence for an expression",
	RunE:  runTokens,
}

var parseCmd = &cobra.Command{
	Use:   "parse [expression]",
	Short: "Parse an expression and dump its AST as YAML",
	RunE:  runParse,
}

var renderCmd = &cobra.Command{
	Use:   "render [expression]",
	Short: "Parse an expression and render it back to source text",
	RunE:  runRender,
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("dfexpr version {{.Version}}\n")

	renderCmd.Flags().Bool("indent", false, "Render multi-line with nested indentation")
	renderCmd.Flags().Int("width", 4, "Spaces per indent level")
	renderCmd.Flags().Bool("color", false, "Colorize variables, numbers and strings")

	rootCmd.AddCommand(tokensCmd, parseCmd, renderCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readInput joins the argument list into expression text, or reads stdin
// when no arguments (or a lone "-") are given.
func readInput(args []string) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := readInput(args)
	if err != nil {
		return err
	}
	tokens, err := expr.Tokenize(src)
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		fmt.Printf("%-8s %-16s %d:%d-%d %q\n", tok.Cat, tok.Var, tok.Line, tok.Start, tok.End, tok.Text)
	}
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := readInput(args)
	if err != nil {
		return err
	}
	node, err := expr.ParseExpression(src)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(dump(node))
	if err != nil {
		return fmt.Errorf("encoding AST: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	src, err := readInput(args)
	if err != nil {
		return err
	}
	node, err := expr.ParseExpression(src)
	if err != nil {
		return err
	}

	r := expr.Renderer{}
	if indent, _ := cmd.Flags().GetBool("indent"); indent {
		r.Layout = expr.Indented
	}
	r.Width, _ = cmd.Flags().GetInt("width")
	if colorize, _ := cmd.Flags().GetBool("color"); colorize {
		r.Decorate = style.Decorate
	}

	fmt.Println(r.Render(node))
	return nil
}

// dumpNode is the YAML shape of an AST node.
type dumpNode struct {
	Tag      string     `yaml:"tag"`
	Value    *any       `yaml:"value,omitempty"`
	Children []dumpNode `yaml:"children,omitempty"`
}

func dump(n expr.Node) dumpNode {
	switch t := n.(type) {
	case *expr.Leaf:
		var value any
		switch {
		case t.Tag == expr.TagNum && t.IsFloat:
			value = t.Float
		case t.Tag == expr.TagNum:
			value = t.Int
		default:
			value = t.Str
		}
		return dumpNode{Tag: string(t.Tag), Value: &value}
	case *expr.Branch:
		d := dumpNode{Tag: string(t.Tag)}
		for _, kid := range t.Kids {
			d.Children = append(d.Children, dump(kid))
		}
		return d
	default:
		return dumpNode{Tag: "UNKNOWN"}
	}
}
