package highlight

import (
	"sort"

	"braces.dev/errtrace"
	"github.com/dlclark/regexp2"
)

// Scan tokenizes lines with the given profile,
// producing exactly one [LineResult] per input line, in input order.
// Line numbers count up from startLine.
//
// An unterminated multi-line block on one line carries into the next:
// the continuation state lives only within this call
// and is never shared, so independent Scan calls may run concurrently
// over the same Profile.
//
// A nil lines slice or a negative startLine is a precondition
// violation and rejected outright.
// A nil profile is not: it yields one result per line
// with no spans, leaving all styling to the renderer's default.
func Scan(lines []string, startLine int, p *Profile) ([]LineResult, error) {
	if lines == nil {
		return nil, errtrace.New("lines must not be nil")
	}
	if startLine < 0 {
		return nil, errtrace.Errorf("start line must not be negative, got %d", startLine)
	}

	results := make([]LineResult, len(lines))
	if p == nil {
		for i, text := range lines {
			results[i] = LineResult{Number: startLine + i, Text: text}
		}
		return results, nil
	}

	var carry *blockRule
	for i, text := range lines {
		var spans []Span
		spans, carry = p.scanLine([]rune(text), carry)
		results[i] = LineResult{
			Number: startLine + i,
			Text:   text,
			Spans:  spans,
		}
	}
	return results, nil
}

// scanLine tokenizes a single line.
//
// carry, if non-nil, is the multi-line block rule left open by the
// previous line; the line begins inside that block's body.
// The returned carryOut is the rule still open at the end of this
// line, or nil.
//
// At each position, candidates are tried highest priority first:
// an open or starting multi-line block, a single-line block,
// a token rule, then a keyword word.
// A position matching none of these is skipped with no span.
func (p *Profile) scanLine(line []rune, carry *blockRule) (spans []Span, carryOut *blockRule) {
	pos := 0

	if carry != nil {
		end, closed := p.findBlockEnd(line, 0, carry, true)
		if !closed {
			if len(line) > 0 {
				spans = append(spans, Span{0, len(line), carry.style})
			}
			return spans, carry
		}
		spans = p.appendBlockSpans(spans, 0, end, carry, false, true)
		pos = end
	}

	for pos < len(line) {
		if rule := p.matchBlockStart(p.multiLine, line, pos); rule != nil {
			end, closed := p.findBlockEnd(line, pos, rule, false)
			if !closed {
				spans = p.appendOpenBlockSpans(spans, line, pos, rule)
				return spans, rule
			}
			spans = p.appendBlockSpans(spans, pos, end, rule, true, true)
			pos = end
			continue
		}

		if rule := p.matchBlockStart(p.singleLine, line, pos); rule != nil {
			// If the end marker never shows up,
			// a single-line block closes at the end of the line.
			end, closed := p.findBlockEnd(line, pos, rule, false)
			hasEnd := closed && len(rule.end) > 0
			spans = p.appendBlockSpans(spans, pos, end, rule, true, hasEnd)
			pos = end
			continue
		}

		if rule, m := p.matchToken(line, pos); rule != nil {
			spans = appendTokenSpans(spans, rule, m)
			pos += m.Length
			continue
		}

		word := p.wordEnd(line, pos)
		if word == pos {
			// A delimiter or back-delimiter with no word before it
			// and no other match: skip it unstyled.
			pos++
			continue
		}
		if style, ok := p.findKeyword(line, pos, word-pos); ok {
			spans = append(spans, Span{pos, word - pos, style})
		}
		if word < len(line) && p.isDelim(line[word]) {
			// The delimiter is discarded and stays unstyled.
			word++
		}
		pos = word
	}

	return spans, nil
}

// wordEnd scans forward from pos to the first delimiter,
// back-delimiter, or the end of the line.
func (p *Profile) wordEnd(line []rune, pos int) int {
	i := pos
	for i < len(line) && !p.isDelim(line[i]) && !p.isBackDelim(line[i]) {
		i++
	}
	return i
}

// matchBlockStart returns the first rule whose start marker matches at
// pos, or nil.
func (p *Profile) matchBlockStart(rules []blockRule, line []rune, pos int) *blockRule {
	for i := range rules {
		if p.startsWith(line, pos, rules[i].start) {
			return &rules[i]
		}
	}
	return nil
}

// appendBlockSpans emits the spans for a block occupying [pos, end).
//
// hasStart reports whether the region begins with the rule's start
// marker (false when continuing from a previous line),
// hasEnd whether it finishes with the rule's end marker
// (false when a single-line block implicitly closed at line end).
// If the rule has a wrapper style, the markers get it and the body
// keeps the block style; otherwise one span covers the whole region.
func (p *Profile) appendBlockSpans(spans []Span, pos, end int, rule *blockRule, hasStart, hasEnd bool) []Span {
	if end <= pos {
		return spans
	}
	if rule.wrapperStyle == "" {
		return append(spans, Span{pos, end - pos, rule.style})
	}

	bodyStart, bodyEnd := pos, end
	if hasStart {
		bodyStart += len(rule.start)
		spans = append(spans, Span{pos, len(rule.start), rule.wrapperStyle})
	}
	if hasEnd {
		bodyEnd -= len(rule.end)
	}
	if bodyEnd > bodyStart {
		spans = append(spans, Span{bodyStart, bodyEnd - bodyStart, rule.style})
	}
	if hasEnd {
		spans = append(spans, Span{bodyEnd, len(rule.end), rule.wrapperStyle})
	}
	return spans
}

// appendOpenBlockSpans emits the spans for a multi-line block that
// starts at pos and runs past the end of the line:
// the start marker in the wrapper style if the rule has one,
// and the rest of the line as the block's body.
func (p *Profile) appendOpenBlockSpans(spans []Span, line []rune, pos int, rule *blockRule) []Span {
	bodyStart := pos
	if rule.wrapperStyle != "" {
		spans = append(spans, Span{pos, len(rule.start), rule.wrapperStyle})
		bodyStart += len(rule.start)
	}
	if len(line) > bodyStart {
		spans = append(spans, Span{bodyStart, len(line) - bodyStart, rule.style})
	}
	return spans
}

// appendTokenSpans splits a token match into spans.
//
// Named captures present in the match are emitted in offset order,
// each in its own style; matched text between and around them falls
// back to the rule's style.
// A rule without captures produces one span for the whole match.
func appendTokenSpans(spans []Span, rule *tokenRule, m *regexp2.Match) []Span {
	if len(rule.captures) == 0 {
		return append(spans, Span{m.Index, m.Length, rule.style})
	}

	type capSpan struct {
		start, n int
		style    Style
	}
	var caps []capSpan
	for _, c := range rule.captures {
		g := m.GroupByName(c.Name)
		if g == nil || len(g.Captures) == 0 || g.Length == 0 {
			continue
		}
		caps = append(caps, capSpan{g.Index, g.Length, c.Style})
	}
	sort.Slice(caps, func(i, j int) bool { return caps[i].start < caps[j].start })

	cur := m.Index
	for _, c := range caps {
		if c.start < cur {
			continue // overlapping capture, keep the earlier one
		}
		if c.start > cur {
			spans = append(spans, Span{cur, c.start - cur, rule.style})
		}
		spans = append(spans, Span{c.start, c.n, c.style})
		cur = c.start + c.n
	}
	if end := m.Index + m.Length; end > cur {
		spans = append(spans, Span{cur, end - cur, rule.style})
	}
	return spans
}
