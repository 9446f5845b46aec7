package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loxscript/loxscript/internal/lexer"
	"github.com/loxscript/loxscript/internal/loxerrors"
	"github.com/loxscript/loxscript/internal/parser"
)

var (
	parseEvalExpr string
	parseStrict   bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a script and print its parenthesized AST form",
	Long: `Scan and parse a program, then print every top-level statement in
fully-parenthesized form,
without evaluating it. Exits non-zero if scanning or parsing fails.

Examples:
  loxscript parse script.lox
  loxscript parse -e '2 + 2 * 5;'`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
	parseCmd.Flags().BoolVar(&parseStrict, "strict", true, "require statement-terminating ';' (file-mode semantics)")
}

func parseScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(parseEvalExpr, args)
	if err != nil {
		return err
	}

	tokens, lexErrs := lexer.New(source).ScanAll()
	if len(lexErrs) > 0 {
		for _, le := range lexErrs {
			diag := loxerrors.New(loxerrors.Scan, le.Pos, le.Message, source, filename)
			fmt.Fprintln(os.Stderr, diag.Format())
		}
		return fmt.Errorf("scanning failed with %d error(s)", len(lexErrs))
	}

	p := parser.New(tokens, parseStrict, source, filename)
	statements := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, loxerrors.FormatAll(errs))
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	for _, stmt := range statements {
		fmt.Println(stmt.String())
	}
	return nil
}
