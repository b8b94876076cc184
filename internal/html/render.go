package html

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"

	"braces.dev/errtrace"
	chroma "github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"

	"go.abhg.dev/hilite/internal/highlight"
)

//go:embed tmpl/*.html
var _tmplFS embed.FS

var _pageTmpl = template.Must(
	template.New("page.html").ParseFS(_tmplFS, "tmpl/page.html"),
)

// PageInfo is the input to rendering one highlighted page.
type PageInfo struct {
	// Title of the page, usually the source file's name.
	Title string

	// Results are the scanned lines to render, in order.
	Results []highlight.LineResult
}

// Renderer renders scanned lines into HTML.
type Renderer struct {
	// Style used to color the emitted token classes.
	// Defaults to [PlainStyle].
	Style *chroma.Style

	// Embedded emits only the highlighted <pre> fragment,
	// without a surrounding HTML page or inline stylesheet.
	Embedded bool

	// LineNumbers prefixes each rendered line with its number.
	LineNumbers bool

	once      sync.Once
	formatter *chromahtml.Formatter
}

func (r *Renderer) init() {
	r.once.Do(func() {
		r.formatter = chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
			chromahtml.WithLineNumbers(r.LineNumbers),
		)
		if r.Style == nil {
			r.Style = PlainStyle
		}
	})
}

// WriteCSS writes the stylesheet for this renderer's classes.
// Pages rendered in Embedded mode need it served separately.
func (r *Renderer) WriteCSS(w io.Writer) error {
	r.init()
	return errtrace.Wrap(r.formatter.WriteCSS(w, r.Style))
}

// RenderPage renders one highlighted page to w:
// a complete HTML document with an inline stylesheet,
// or only the code fragment in Embedded mode.
func (r *Renderer) RenderPage(w io.Writer, info *PageInfo) error {
	r.init()

	var code bytes.Buffer
	fmt.Fprintf(&code, "<pre class=%q>", chroma.StandardTypes[chroma.PreWrapper])
	it := chroma.Literator(tokens(info.Results)...)
	if err := r.formatter.Format(&code, r.Style, it); err != nil {
		return errtrace.Wrap(err)
	}
	code.WriteString("</pre>")

	if r.Embedded {
		_, err := w.Write(code.Bytes())
		return errtrace.Wrap(err)
	}

	var css bytes.Buffer
	if err := r.WriteCSS(&css); err != nil {
		return errtrace.Wrap(err)
	}

	return errtrace.Wrap(_pageTmpl.Execute(w, struct {
		Title string
		CSS   template.CSS
		Code  template.HTML
	}{
		Title: info.Title,
		CSS:   template.CSS(css.String()),
		Code:  template.HTML(code.String()),
	}))
}
