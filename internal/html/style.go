package html

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// PlainStyle is a minimal highlighting style:
// muted comments, bold keywords, and little else.
// It is the renderer's fallback when no style is configured.
var PlainStyle = chroma.MustNewStyle("hilite-plain", map[chroma.TokenType]string{
	chroma.Comment:       "#666666",
	chroma.Keyword:       "bold #000000",
	chroma.LiteralString: "#44655a",
	chroma.PreWrapper:    "bg:#eeeeee",
	chroma.Background:    "bg:#eeeeee",
})

func init() {
	styles.Register(PlainStyle)
}
