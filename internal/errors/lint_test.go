package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firrtl/grammar"
	"firrtl/token"
)

const lintSource = "FIRRTL version 3.3.0\ncircuit Top :\n  module Tap :\n    skip\n  module Tap :\n    skip\n"

func TestLintMissingMainAndDuplicate(t *testing.T) {
	circuit, err := grammar.ParseCircuit("lint.fir", lintSource)
	require.NoError(t, err)

	warnings := Lint(lintSource, circuit)
	require.Len(t, warnings, 2)

	missing := warnings[0]
	assert.Equal(t, Warning, missing.Level)
	assert.Equal(t, WarningMissingMain, missing.Code)
	assert.Equal(t, token.Position{Offset: 29, Line: 2, Column: 9}, missing.Position)
	assert.Equal(t, 3, missing.Length)
	require.Len(t, missing.Suggestions, 1)
	assert.Equal(t, "circuit Tap :", missing.Suggestions[0].Replacement)

	dup := warnings[1]
	assert.Equal(t, WarningDuplicateModule, dup.Code)
	assert.Equal(t, 5, dup.Position.Line)
	assert.Equal(t, 10, dup.Position.Column)
	assert.Equal(t, []string{"first declared at 3:10"}, dup.Notes)

	output := NewErrorReporter("lint.fir", lintSource).FormatError(missing)
	assert.Contains(t, output, "warning[E0800]: circuit 'Top' has no module named 'Top'")
	assert.Contains(t, output, "help try: rename the circuit to 'Tap'")
	assert.Contains(t, output, "circuit Tap :")
}

func TestLintCleanCircuit(t *testing.T) {
	src := "FIRRTL version 3.3.0\ncircuit A :\n  module A :\n    skip\n  extmodule B :\n"
	circuit, err := grammar.ParseCircuit("clean.fir", src)
	require.NoError(t, err)

	assert.Empty(t, Lint(src, circuit))
	assert.Empty(t, Lint(src, nil))
}

func TestLintPublicModuleIsMain(t *testing.T) {
	src := "FIRRTL version 4.0.0\ncircuit Top :\n  public module Core :\n    skip\n"
	circuit, err := grammar.ParseCircuit("public.fir", src)
	require.NoError(t, err)

	assert.Empty(t, Lint(src, circuit))
}
