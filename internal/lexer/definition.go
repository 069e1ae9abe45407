package lexer

import (
	"io"

	plexer "github.com/alecthomas/participle/v2/lexer"

	"firrtl/token"
)

// Definition exposes the contextual token stream as a participle lexer, so
// a participle grammar can be built directly on top of it. Token types are
// named after token.Kind values ("Identifier", "Indent", "E2Op", ...).
type Definition struct {
	opts []Option
}

var _ plexer.Definition = (*Definition)(nil)

func NewDefinition(opts ...Option) *Definition {
	return &Definition{opts: opts}
}

func (d *Definition) Symbols() map[string]plexer.TokenType {
	symbols := map[string]plexer.TokenType{"EOF": plexer.EOF}
	for _, k := range token.Kinds() {
		symbols[k.String()] = plexer.TokenType(k)
	}
	return symbols
}

func (d *Definition) Lex(filename string, r io.Reader) (plexer.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return d.LexString(filename, string(data))
}

func (d *Definition) LexString(filename string, source string) (plexer.Lexer, error) {
	opts := append([]Option{WithFilename(filename)}, d.opts...)
	return &participleLexer{filename: filename, lex: New(source, opts...)}, nil
}

type participleLexer struct {
	filename string
	lex      *Lexer
}

func (p *participleLexer) Next() (plexer.Token, error) {
	ts, ok := p.lex.NextToken()
	if !ok {
		end := p.lex.endPos()
		return plexer.EOFToken(p.position(end)), nil
	}
	if err := ts.Err(); err != nil {
		return plexer.Token{}, err
	}
	return plexer.Token{
		Type:  plexer.TokenType(ts.Token.Kind),
		Value: ts.Token.Text,
		Pos:   p.position(ts.Pos),
	}, nil
}

func (p *participleLexer) position(pos token.Position) plexer.Position {
	return plexer.Position{
		Filename: p.filename,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
	}
}
