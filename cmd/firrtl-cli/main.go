// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"firrtl/grammar"
	"firrtl/internal/config"
	"firrtl/internal/errors"
	"firrtl/internal/lexer"
	"firrtl/repl"
	"firrtl/token"
)

var (
	flagTokens  = flag.Bool("tokens", false, "print the contextual token stream instead of the parsed circuit")
	flagConfig  = flag.String("config", "", "path to firrtl.yaml (default: nearest firrtl.yaml above the input)")
	flagREPL    = flag.Bool("repl", false, "read lines from stdin and print their tokens")
	flagExplain = flag.String("explain", "", "describe a diagnostic code such as E0100 and exit")
)

var log = commonlog.GetLogger("firrtl.cli")

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: firrtl-cli [-tokens] [-config path] <file.fir>")
		fmt.Fprintln(os.Stderr, "       firrtl-cli -repl")
		fmt.Fprintln(os.Stderr, "       firrtl-cli -explain <code>")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *flagExplain != "" {
		explain(*flagExplain)
		return
	}
	if *flagREPL {
		runREPL()
		return
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	startTime := time.Now()
	path := flag.Arg(0)

	cfg, err := config.Resolve(*flagConfig, filepath.Dir(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	color.NoColor = !cfg.UseColor(os.Stderr.Fd())

	var logPath *string
	if cfg.Log.File != "" {
		logPath = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, logPath)

	source, err := os.ReadFile(path)
	if err != nil {
		reporter := errors.NewErrorReporter(path, "")
		fmt.Fprint(os.Stderr, reporter.FormatError(errors.FromIO(path, err)))
		os.Exit(1)
	}

	reporter := errors.NewErrorReporter(path, string(source))

	var ok bool
	if *flagTokens {
		ok = printTokens(reporter, string(source), cfg)
	} else {
		ok = printCircuit(reporter, path, string(source))
	}

	formattedDuration := formatDuration(time.Since(startTime))
	if !ok {
		color.Red("Processing failed after %s", formattedDuration)
		os.Exit(1)
	}
	color.Green("Successfully processed %s in %s", path, formattedDuration)
}

func explain(code string) {
	code = strings.ToUpper(code)
	kind := "error"
	if errors.IsWarning(code) {
		kind = "warning"
	}
	fmt.Printf("%s (%s %s): %s\n", code, errors.GetErrorCategory(code), kind, errors.GetErrorDescription(code))
}

func runREPL() {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		repl.Start(os.Stdin, os.Stdout)
		return
	}
	if err := repl.Interactive(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printTokens(reporter *errors.ErrorReporter, source string, cfg *config.Config) bool {
	l := lexer.New(source, cfg.LexerOptions()...)
	count := 0
	for {
		ts, ok := l.NextToken()
		if !ok {
			break
		}
		if err := ts.Err(); err != nil {
			if diag, ok := errors.FromLexical(err); ok {
				fmt.Fprint(os.Stderr, reporter.FormatError(diag))
			} else {
				fmt.Fprintln(os.Stderr, err)
			}
			return false
		}
		fmt.Printf("%s\t%-12s %s\n", ts.Pos, ts.Token.Kind, tokenText(ts))
		count++
	}
	log.Debugf("lexed %d tokens", count)
	return true
}

func tokenText(ts lexer.TokenString) string {
	switch ts.Token.Kind {
	case token.Indent, token.Dedent:
		return ""
	case token.ID, token.IntegerDec:
		return fmt.Sprintf("%d", ts.Token.Value)
	default:
		return fmt.Sprintf("%q", ts.Token.Text)
	}
}

func printCircuit(reporter *errors.ErrorReporter, path, source string) bool {
	circuit, err := grammar.ParseCircuit(path, source)
	if err != nil {
		fmt.Fprint(os.Stderr, reporter.FormatError(errors.FromParse(err)))
		return false
	}
	for _, warning := range errors.Lint(source, circuit) {
		fmt.Fprint(os.Stderr, reporter.FormatError(warning))
	}
	log.Debugf("parsed circuit %s with %d modules", circuit.Name, len(circuit.Modules))
	fmt.Print(circuit.String())
	return true
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
