package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loxscript/loxscript/internal/lexer"
	"github.com/loxscript/loxscript/internal/token"
)

var (
	lexEvalExpr string
	showPos     bool
	onlyErrors  bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a script and print the resulting tokens",
	Long: `Scan a program and print one token per line, without parsing or
running it. Useful for debugging the scanner.

Examples:
  loxscript lex script.lox
  loxscript lex -e 'var x = 1;'
  loxscript lex --show-pos script.lox`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
}

func lexScript(_ *cobra.Command, args []string) error {
	source, _, err := readSource(lexEvalExpr, args)
	if err != nil {
		return err
	}

	l := lexer.New(source)
	errorCount := 0

	for {
		tok := l.NextToken()

		if onlyErrors {
			if tok.Kind == token.Illegal {
				errorCount++
				printToken(tok)
			}
			if tok.Kind == token.Eof {
				break
			}
			continue
		}

		if tok.Kind == token.Illegal {
			errorCount++
		}
		printToken(tok)
		if tok.Kind == token.Eof {
			break
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errorCount)
	}
	return nil
}

func printToken(tok token.Token) {
	var output string
	switch {
	case tok.Kind == token.Eof:
		output = "EOF"
	case tok.Kind == token.Illegal:
		output = fmt.Sprintf("ILLEGAL %q", tok.Lexeme)
	case tok.Lexeme == "":
		output = tok.Kind.String()
	default:
		output = fmt.Sprintf("%-12s %q", tok.Kind, tok.Lexeme)
	}

	if showPos {
		output += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(output)
}

// readSource resolves the input for lex/parse subcommands: inline
// -e/--eval text, a single file argument, or neither (an error —
// these debugging subcommands have no REPL mode of their own).
func readSource(eval string, args []string) (source, filename string, err error) {
	switch {
	case eval != "":
		return eval, "<eval>", nil
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	default:
		return "", "", fmt.Errorf("provide a file path or use -e for inline code")
	}
}
