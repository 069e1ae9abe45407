// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/peterh/liner"

	firerrors "firrtl/internal/errors"
	"firrtl/internal/lexer"
)

const (
	PROMPT      = ">> "
	historyFile = ".firrtl_history"
)

// Start lexes each line read from in and writes its contextual tokens to
// out. Every line is lexed on its own, so leading whitespace shows up as
// an Indent. Start returns when in is exhausted.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		printTokens(out, scanner.Text())
	}
}

// Interactive runs the same loop on the terminal with line editing and
// history kept in ~/.firrtl_history.
func Interactive(out io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(PROMPT)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		if line != "" {
			ln.AppendHistory(line)
		}
		printTokens(out, line)
	}
}

func printTokens(out io.Writer, line string) {
	for _, ts := range lexer.Tokenize(line, lexer.WithDedentFlush()) {
		if err := ts.Err(); err != nil {
			if diag, ok := firerrors.FromLexical(err); ok {
				fmt.Fprint(out, firerrors.NewErrorReporter("<stdin>", line).FormatError(diag))
			} else {
				fmt.Fprintln(out, err)
			}
			return
		}
		fmt.Fprintf(out, "%3d..%-3d %s\n", ts.Span.Start, ts.Span.End, ts.Token)
	}
}
