package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestStartPrintsTokens(t *testing.T) {
	var out bytes.Buffer
	Start(strings.NewReader("wire w : UInt<8>\n"), &out)

	got := out.String()
	assert.True(t, strings.HasPrefix(got, PROMPT))
	assert.Contains(t, got, `  0..4   Wire("wire")`)
	assert.Contains(t, got, `Identifier("w")`)
	assert.Contains(t, got, "IntegerDec(8)")
	assert.True(t, strings.HasSuffix(got, PROMPT+"\n"))
}

func TestStartIndentedLine(t *testing.T) {
	var out bytes.Buffer
	Start(strings.NewReader("  skip\n"), &out)

	assert.Contains(t, out.String(), "Indent")
	assert.Contains(t, out.String(), "Dedent")
}

func TestStartReportsLexicalErrors(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	Start(strings.NewReader("node x = ?\nskip\n"), &out)

	got := out.String()
	assert.Contains(t, got, "error[E0100]")
	assert.Contains(t, got, "<stdin>:1:10")
	assert.Contains(t, got, `Skip("skip")`)
}
