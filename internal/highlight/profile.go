package highlight

import (
	"slices"
	"sort"
	"unicode"

	"braces.dev/errtrace"
	"github.com/dlclark/regexp2"
)

// ProfileSpec declares a language profile.
// Pass it to [NewProfile] to build a validated, immutable [Profile].
type ProfileSpec struct {
	// Name identifies the profile, e.g. "go" or "sql".
	Name string

	// IgnoreCase folds case for delimiter membership tests,
	// block and token prefix comparisons, and keyword lookups.
	IgnoreCase bool

	// Delimiters are characters that terminate a word
	// and are themselves discarded: they are never part of a word
	// and receive no style.
	Delimiters string

	// BackDelimiters are characters that terminate a word
	// but are not consumed: scanning resumes at the character itself
	// so that it can start the next token.
	BackDelimiters string

	// Keywords are keyword groups, tried in order.
	Keywords []KeywordSpec

	// Blocks are block rules, tried in order.
	// Multi-line blocks always take priority over single-line ones
	// regardless of declaration order.
	Blocks []BlockSpec

	// Tokens are regex token rules, tried in order.
	Tokens []TokenSpec
}

// KeywordSpec is a group of keywords sharing one style.
type KeywordSpec struct {
	Style Style
	Words []string
}

// BlockSpec declares a block rule:
// a region bounded by a start marker and an optional end marker.
type BlockSpec struct {
	// Name identifies the rule in error messages.
	Name string

	// Style is applied to the block's body.
	Style Style

	// WrapperStyle, if set, is applied to the start and end markers
	// instead of Style.
	WrapperStyle Style

	// Start is the marker that opens the block. Must not be empty.
	Start string

	// End is the marker that closes the block.
	// For single-line blocks it may be empty,
	// in which case the block extends to the end of the line.
	End string

	// MultiLine lets the block span line boundaries.
	// Multi-line blocks must have a non-empty End.
	MultiLine bool

	// Escape, if set, suppresses end-marker matches inside the block.
	Escape *EscapeSpec
}

// EscapeSpec declares how end-marker matches are escaped within a block.
type EscapeSpec struct {
	// Prefix escapes the single character that follows it,
	// e.g. a backslash before a quote.
	Prefix string

	// Items are literal sequences skipped over verbatim,
	// e.g. a doubled quote character.
	Items []string
}

// TokenSpec declares a regex token rule.
// The pattern is anchored: it matches only when the match begins
// exactly at the current scan position.
type TokenSpec struct {
	// Style is applied to matched text
	// not covered by any capture below.
	Style Style

	// Pattern is the rule's regular expression
	// in github.com/dlclark/regexp2 syntax.
	Pattern string

	// Captures style named capture groups of the pattern individually.
	Captures []CaptureSpec
}

// CaptureSpec styles one named capture group of a token rule.
type CaptureSpec struct {
	Name  string
	Style Style
}

// Profile is a compiled language profile.
// It is immutable after construction and may be shared freely:
// any number of concurrent [Scan] calls can use the same Profile.
type Profile struct {
	name       string
	ignoreCase bool
	delims     []rune // sorted, case-folded if ignoreCase
	backDelims []rune // sorted, case-folded if ignoreCase
	keywords   []keywordGroup
	singleLine []blockRule
	multiLine  []blockRule
	tokens     []tokenRule
}

type keywordGroup struct {
	style Style
	words [][]rune // sorted with compareWords
}

type blockRule struct {
	name         string
	style        Style
	wrapperStyle Style
	multiLine    bool
	start        []rune
	end          []rune
	escape       *escapeRule
}

type escapeRule struct {
	prefix []rune
	items  [][]rune
}

type tokenRule struct {
	style    Style
	pattern  *regexp2.Regexp
	captures []CaptureSpec
}

// NewProfile validates spec and compiles it into a Profile.
//
// It fails if a block rule has an empty start marker,
// if a multi-line block has an empty end marker,
// or if a token rule's pattern does not compile.
// Keyword groups are sorted here with the same ordering
// the lookup comparator uses, so callers may list words in any order.
func NewProfile(spec ProfileSpec) (*Profile, error) {
	p := &Profile{
		name:       spec.Name,
		ignoreCase: spec.IgnoreCase,
		delims:     charSet(spec.Delimiters, spec.IgnoreCase),
		backDelims: charSet(spec.BackDelimiters, spec.IgnoreCase),
	}

	for _, kw := range spec.Keywords {
		words := make([][]rune, len(kw.Words))
		for i, w := range kw.Words {
			words[i] = []rune(w)
		}
		sort.Slice(words, func(i, j int) bool {
			return compareWords(words[i], words[j], p.ignoreCase) < 0
		})
		p.keywords = append(p.keywords, keywordGroup{
			style: kw.Style,
			words: words,
		})
	}

	for _, b := range spec.Blocks {
		if len(b.Start) == 0 {
			return nil, errtrace.Errorf("block %q: start marker is empty", b.Name)
		}
		if b.MultiLine && len(b.End) == 0 {
			return nil, errtrace.Errorf("block %q: multi-line block needs an end marker", b.Name)
		}

		rule := blockRule{
			name:         b.Name,
			style:        b.Style,
			wrapperStyle: b.WrapperStyle,
			multiLine:    b.MultiLine,
			start:        []rune(b.Start),
			end:          []rune(b.End),
		}
		if esc := b.Escape; esc != nil {
			er := &escapeRule{prefix: []rune(esc.Prefix)}
			for _, item := range esc.Items {
				if len(item) == 0 {
					continue
				}
				er.items = append(er.items, []rune(item))
			}
			rule.escape = er
		}

		if b.MultiLine {
			p.multiLine = append(p.multiLine, rule)
		} else {
			p.singleLine = append(p.singleLine, rule)
		}
	}

	for i, t := range spec.Tokens {
		opts := regexp2.None
		if spec.IgnoreCase {
			opts |= regexp2.IgnoreCase
		}
		re, err := regexp2.Compile(t.Pattern, opts)
		if err != nil {
			return nil, errtrace.Errorf("token rule %d: %w", i, err)
		}
		p.tokens = append(p.tokens, tokenRule{
			style:    t.Style,
			pattern:  re,
			captures: slices.Clone(t.Captures),
		})
	}

	return p, nil
}

// Name returns the profile's name.
func (p *Profile) Name() string { return p.name }

// charSet builds a sorted, deduplicated rune set for binary search.
func charSet(s string, fold bool) []rune {
	rs := []rune(s)
	if fold {
		for i, r := range rs {
			rs[i] = unicode.ToLower(r)
		}
	}
	slices.Sort(rs)
	return slices.Compact(rs)
}
