package lang

import (
	"io"

	"braces.dev/errtrace"
	"gopkg.in/yaml.v3"

	"go.abhg.dev/hilite/internal/highlight"
)

// profileFile mirrors the YAML layout of a profile definition.
type profileFile struct {
	Name           string        `yaml:"name"`
	Extensions     []string      `yaml:"extensions"`
	IgnoreCase     bool          `yaml:"ignore_case"`
	Delimiters     string        `yaml:"delimiters"`
	BackDelimiters string        `yaml:"back_delimiters"`
	Keywords       []keywordFile `yaml:"keywords"`
	Blocks         []blockFile   `yaml:"blocks"`
	Tokens         []tokenFile   `yaml:"tokens"`
}

type keywordFile struct {
	Style string   `yaml:"style"`
	Words []string `yaml:"words"`
}

type blockFile struct {
	Name         string      `yaml:"name"`
	Style        string      `yaml:"style"`
	WrapperStyle string      `yaml:"wrapper_style"`
	Start        string      `yaml:"start"`
	End          string      `yaml:"end"`
	MultiLine    bool        `yaml:"multi_line"`
	Escape       *escapeFile `yaml:"escape"`
}

type escapeFile struct {
	Prefix string   `yaml:"prefix"`
	Items  []string `yaml:"items"`
}

type tokenFile struct {
	Style    string        `yaml:"style"`
	Pattern  string        `yaml:"pattern"`
	Captures []captureFile `yaml:"captures"`
}

type captureFile struct {
	Name  string `yaml:"name"`
	Style string `yaml:"style"`
}

func decodeProfile(data []byte) (*profileFile, error) {
	var def profileFile
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if def.Name == "" {
		return nil, errtrace.New("profile has no name")
	}
	return &def, nil
}

// spec converts the YAML definition into the tokenizer's
// declarative form.
func (def *profileFile) spec() highlight.ProfileSpec {
	spec := highlight.ProfileSpec{
		Name:           def.Name,
		IgnoreCase:     def.IgnoreCase,
		Delimiters:     def.Delimiters,
		BackDelimiters: def.BackDelimiters,
	}
	for _, kw := range def.Keywords {
		spec.Keywords = append(spec.Keywords, highlight.KeywordSpec{
			Style: highlight.Style(kw.Style),
			Words: kw.Words,
		})
	}
	for _, b := range def.Blocks {
		block := highlight.BlockSpec{
			Name:         b.Name,
			Style:        highlight.Style(b.Style),
			WrapperStyle: highlight.Style(b.WrapperStyle),
			Start:        b.Start,
			End:          b.End,
			MultiLine:    b.MultiLine,
		}
		if b.Escape != nil {
			block.Escape = &highlight.EscapeSpec{
				Prefix: b.Escape.Prefix,
				Items:  b.Escape.Items,
			}
		}
		spec.Blocks = append(spec.Blocks, block)
	}
	for _, tok := range def.Tokens {
		token := highlight.TokenSpec{
			Style:   highlight.Style(tok.Style),
			Pattern: tok.Pattern,
		}
		for _, c := range tok.Captures {
			token.Captures = append(token.Captures, highlight.CaptureSpec{
				Name:  c.Name,
				Style: highlight.Style(c.Style),
			})
		}
		spec.Tokens = append(spec.Tokens, token)
	}
	return spec
}

func (def *profileFile) compile() (*highlight.Profile, error) {
	return errtrace.Wrap2(highlight.NewProfile(def.spec()))
}

// Parse reads a single YAML profile definition
// and compiles it into a [highlight.Profile].
func Parse(r io.Reader) (*highlight.Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	def, err := decodeProfile(data)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(def.compile())
}
