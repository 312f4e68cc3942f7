package lexer

import "unicode/utf8"

// Cursor walks a string one rune at a time while tracking the byte offset.
type Cursor struct {
	text string
	pos  int
}

// NewCursor positions a cursor at the start of text.
func NewCursor(text string) *Cursor {
	return &Cursor{text: text}
}

// Pos returns the byte offset of the next unread rune.
func (c *Cursor) Pos() int {
	return c.pos
}

// Done reports whether the input is exhausted.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.text)
}

// Peek returns the next rune without consuming it.
func (c *Cursor) Peek() (rune, bool) {
	if c.Done() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.text[c.pos:])
	return r, true
}

// PeekIs reports whether the next rune equals r.
func (c *Cursor) PeekIs(r rune) bool {
	next, ok := c.Peek()
	return ok && next == r
}

// Advance consumes and returns the next rune.
func (c *Cursor) Advance() (rune, bool) {
	if c.Done() {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(c.text[c.pos:])
	c.pos += size
	return r, true
}

// AdvanceIf consumes the next rune only when it equals r.
func (c *Cursor) AdvanceIf(r rune) bool {
	if c.PeekIs(r) {
		c.Advance()
		return true
	}
	return false
}

// AdvanceWhile consumes runes while pred holds and returns the consumed text.
func (c *Cursor) AdvanceWhile(pred func(rune) bool) string {
	start := c.pos
	for {
		r, ok := c.Peek()
		if !ok || !pred(r) {
			break
		}
		c.Advance()
	}
	return c.text[start:c.pos]
}

// Slice returns the text between two byte offsets.
func (c *Cursor) Slice(start, end int) string {
	return c.text[start:end]
}
