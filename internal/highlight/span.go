package highlight

// Style identifies a style assigned to a span of text.
//
// The tokenizer treats styles as opaque:
// resolving an identifier to an actual color
// is entirely the renderer's concern.
// The empty string means "no style".
type Style string

// Span is a styled character range within a single line.
// Start and Len are measured in runes, not bytes.
type Span struct {
	Start int
	Len   int
	Style Style
}

// end returns the rune offset just past the span.
func (s Span) end() int { return s.Start + s.Len }

// LineResult is the outcome of scanning one line of text.
//
// Spans are ordered left to right and never overlap.
// Rune ranges not covered by any span have no assigned style.
type LineResult struct {
	// Number is the line's position in the source,
	// counted from the start line passed to [Scan].
	Number int

	// Text is the line's raw text, unmodified.
	Text string

	// Spans are the styled ranges within Text.
	Spans []Span
}
