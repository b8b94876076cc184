package html

import (
	chroma "github.com/alecthomas/chroma/v2"

	"go.abhg.dev/hilite/internal/highlight"
)

// tokens flattens scanned lines into a chroma token stream.
// Rune ranges not covered by a span become plain text tokens,
// honoring the contract that renderers supply the default style
// for uncovered text.
func tokens(results []highlight.LineResult) []chroma.Token {
	var toks []chroma.Token
	for i, res := range results {
		if i > 0 {
			toks = append(toks, chroma.Token{Type: chroma.Text, Value: "\n"})
		}

		line := []rune(res.Text)
		pos := 0
		for _, sp := range res.Spans {
			if sp.Start > pos {
				toks = append(toks, chroma.Token{
					Type:  chroma.Text,
					Value: string(line[pos:sp.Start]),
				})
			}
			end := sp.Start + sp.Len
			toks = append(toks, chroma.Token{
				Type:  resolveType(sp.Style),
				Value: string(line[sp.Start:end]),
			})
			pos = end
		}
		if pos < len(line) {
			toks = append(toks, chroma.Token{
				Type:  chroma.Text,
				Value: string(line[pos:]),
			})
		}
	}
	return toks
}

// resolveType maps an opaque profile style to a chroma token type.
// Profiles conventionally use chroma's type names ("Keyword",
// "CommentMultiline", ...); anything else degrades to plain text
// rather than failing.
func resolveType(s highlight.Style) chroma.TokenType {
	if s == "" {
		return chroma.Text
	}
	t, err := chroma.TokenTypeString(string(s))
	if err != nil {
		return chroma.Text
	}
	return t
}
