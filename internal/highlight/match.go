package highlight

import (
	"sort"
	"unicode"

	"github.com/dlclark/regexp2"
)

// fold lowers r if the profile ignores case.
func (p *Profile) fold(r rune) rune {
	if p.ignoreCase {
		return unicode.ToLower(r)
	}
	return r
}

// startsWith reports whether line[pos:] begins with needle
// under the profile's case-folding rule.
// Reading past the end of the line is a non-match, not an error.
func (p *Profile) startsWith(line []rune, pos int, needle []rune) bool {
	if pos < 0 || pos+len(needle) > len(line) {
		return false
	}
	for i, r := range needle {
		if p.fold(line[pos+i]) != p.fold(r) {
			return false
		}
	}
	return true
}

func (p *Profile) isDelim(r rune) bool     { return containsRune(p.delims, p.fold(r)) }
func (p *Profile) isBackDelim(r rune) bool { return containsRune(p.backDelims, p.fold(r)) }

func containsRune(set []rune, r rune) bool {
	i := sort.Search(len(set), func(j int) bool { return set[j] >= r })
	return i < len(set) && set[i] == r
}

// compareKeyword orders kw against the word line[pos : pos+n].
//
// Characters are compared case-folded up to min(len(kw), n);
// if all compared characters are equal, the result is len(kw) - n.
// Zero therefore means an exact length-and-content match:
// a keyword never matches a proper prefix or suffix of a longer word,
// so "if" does not light up inside "ifdef".
func (p *Profile) compareKeyword(kw, line []rune, pos, n int) int {
	m := min(len(kw), n)
	for i := 0; i < m; i++ {
		a, b := p.fold(kw[i]), p.fold(line[pos+i])
		if a != b {
			return int(a) - int(b)
		}
	}
	return len(kw) - n
}

// compareWords orders two keywords with the same ordering as
// compareKeyword, for sorting a group's word list at construction.
func compareWords(a, b []rune, fold bool) int {
	m := min(len(a), len(b))
	for i := 0; i < m; i++ {
		x, y := a[i], b[i]
		if fold {
			x, y = unicode.ToLower(x), unicode.ToLower(y)
		}
		if x != y {
			return int(x) - int(y)
		}
	}
	return len(a) - len(b)
}

// findKeyword looks up the word line[pos : pos+n] in the profile's
// keyword groups, in declaration order,
// binary-searching each group's sorted word list.
func (p *Profile) findKeyword(line []rune, pos, n int) (Style, bool) {
	for i := range p.keywords {
		g := &p.keywords[i]
		lo := sort.Search(len(g.words), func(j int) bool {
			return p.compareKeyword(g.words[j], line, pos, n) >= 0
		})
		if lo < len(g.words) && p.compareKeyword(g.words[lo], line, pos, n) == 0 {
			return g.style, true
		}
	}
	return "", false
}

// matchToken tries each token rule's pattern at pos, in order.
// A pattern only matches if the match begins exactly at pos;
// matches starting later are rejected, not advanced to.
// Zero-width matches are rejected so that scanning always progresses.
func (p *Profile) matchToken(line []rune, pos int) (*tokenRule, *regexp2.Match) {
	for i := range p.tokens {
		t := &p.tokens[i]
		m, err := t.pattern.FindRunesMatchStartingAt(line, pos)
		if err != nil || m == nil {
			continue
		}
		if m.Index != pos || m.Length == 0 {
			continue
		}
		return t, m
	}
	return nil, nil
}
