package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loxscript/loxscript/internal/interp"
	"github.com/loxscript/loxscript/internal/lexer"
	"github.com/loxscript/loxscript/internal/loxerrors"
	"github.com/loxscript/loxscript/internal/parser"
	"github.com/loxscript/loxscript/internal/token"
)

var (
	evalExpr string
	dumpAST  bool
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a script, or start an interactive prompt with no file",
	Long: `Execute a script from a file, an inline expression, or standard input.

With no file, starts an interactive prompt in lenient mode
§6): a missing trailing ';' is tolerated, and an empty line ends the
session. With a file argument, the whole file is read as UTF-8 and
executed in strict mode, where a missing ';' is a parse error.

Examples:
  loxscript run                      # interactive prompt
  loxscript run script.lox           # run a file
  loxscript run -e 'print 1 + 1;'    # evaluate inline code`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed program's parenthesized form before running it")
	runCmd.Flags().BoolVar(&trace, "trace", false, "print each top-level statement's source position to stderr before running")
}

func runScript(_ *cobra.Command, args []string) error {
	switch {
	case evalExpr != "":
		return runSource(evalExpr, "<eval>", true)
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			driverErr := loxerrors.New(loxerrors.Driver, token.Position{Line: 1, Column: 1}, fmt.Sprintf("failed to read file: %v", err), "", args[0])
			fmt.Fprintln(os.Stderr, driverErr.Format())
			return fmt.Errorf("driver error")
		}
		return runSource(string(content), args[0], true)
	default:
		return runREPL()
	}
}

func runSource(source, file string, strict bool) error {
	if verbose {
		fmt.Fprintf(os.Stderr, "running %s (%d bytes)\n", file, len(source))
	}

	tokens, lexErrs := lexer.New(source).ScanAll()
	if len(lexErrs) > 0 {
		for _, le := range lexErrs {
			diag := loxerrors.New(loxerrors.Scan, le.Pos, le.Message, source, file)
			fmt.Fprintln(os.Stderr, diag.Format())
		}
		return fmt.Errorf("scanning failed with %d error(s)", len(lexErrs))
	}

	p := parser.New(tokens, strict, source, file)
	statements := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, loxerrors.FormatAll(errs))
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if dumpAST {
		for _, stmt := range statements {
			fmt.Println(stmt.String())
		}
	}

	it := interp.New(os.Stdout)
	it.SetSource(source, file)

	if trace {
		for _, stmt := range statements {
			fmt.Fprintf(os.Stderr, "[trace] %s\n", stmt.Pos())
		}
	}

	if err := it.Run(statements); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("execution failed")
	}
	return nil
}

// runREPL implements the interactive prompt: a single
// persistent interpreter and environment span every line until an
// empty line is read.
func runREPL() error {
	it := interp.New(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return nil
		}
		line := scanner.Text()
		if line == "" {
			return nil
		}

		tokens, lexErrs := lexer.New(line).ScanAll()
		if len(lexErrs) > 0 {
			for _, le := range lexErrs {
				diag := loxerrors.New(loxerrors.Scan, le.Pos, le.Message, line, "")
				fmt.Fprintln(os.Stderr, diag.Format())
			}
			continue
		}

		p := parser.New(tokens, false, line, "")
		statements := p.Parse()
		if errs := p.Errors(); len(errs) > 0 {
			fmt.Fprintln(os.Stderr, loxerrors.FormatAll(errs))
			continue
		}

		it.SetSource(line, "")
		if err := it.Run(statements); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
