package lexer

// buffer is the lookahead queue between the recognizer and the mode
// handlers. Handlers pop from the front and may push a token back so the
// next handler re-examines it.
type buffer struct {
	items []TokenString
}

func (b *buffer) empty() bool {
	return len(b.items) == 0
}

func (b *buffer) len() int {
	return len(b.items)
}

func (b *buffer) pushBack(ts TokenString) {
	b.items = append(b.items, ts)
}

func (b *buffer) pushFront(ts TokenString) {
	b.items = append(b.items, TokenString{})
	copy(b.items[1:], b.items)
	b.items[0] = ts
}

// popFront panics on an empty buffer; callers check empty first.
func (b *buffer) popFront() TokenString {
	ts := b.items[0]
	b.items[0] = TokenString{}
	b.items = b.items[1:]
	return ts
}
