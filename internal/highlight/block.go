package highlight

// findBlockEnd searches line for the end of a block governed by rule.
//
// pos is the offset of the block's start marker,
// or the current scan position if the block is continuing
// from a previous line (continuing == true),
// in which case no start marker is skipped.
//
// It returns the offset just past the end marker and closed == true
// if the block terminates on this line.
// If the end marker is not found, end is the line length and
// closed == false: the block stays open into the next line.
//
// Escape rules suppress end-marker matches:
// an escape prefix consumes itself plus the one character after it,
// and each literal escape item is skipped over verbatim.
// The prefix is tried before the items;
// the first escape that matches wins, and if none match,
// the end marker is tried at the same position.
func (p *Profile) findBlockEnd(line []rune, pos int, rule *blockRule, continuing bool) (end int, closed bool) {
	i := pos
	if !continuing {
		i += len(rule.start)
	}

	// A single-line block with no end marker
	// consumes the rest of the line.
	if !rule.multiLine && len(rule.end) == 0 {
		return len(line), true
	}

	for i < len(line) {
		if esc := rule.escape; esc != nil {
			if len(esc.prefix) > 0 && p.startsWith(line, i, esc.prefix) {
				i += len(esc.prefix) + 1
				continue
			}
			if n := p.matchEscapeItem(line, i, esc); n > 0 {
				i += n
				continue
			}
		}
		if p.startsWith(line, i, rule.end) {
			return i + len(rule.end), true
		}
		i++
	}
	return len(line), false
}

// matchEscapeItem returns the length of the first literal escape item
// matching at pos, or zero if none match.
func (p *Profile) matchEscapeItem(line []rune, pos int, esc *escapeRule) int {
	for _, item := range esc.items {
		if p.startsWith(line, pos, item) {
			return len(item)
		}
	}
	return 0
}
