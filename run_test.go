package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.abhg.dev/hilite/internal/highlight"
	"go.abhg.dev/hilite/internal/html"
	"go.abhg.dev/hilite/internal/iotest"
	"go.abhg.dev/hilite/internal/lang"
)

type fakeProfileFinder struct {
	lookup  func(string) (*highlight.Profile, error)
	forFile func(string) (*highlight.Profile, error)
}

var _ ProfileFinder = (*fakeProfileFinder)(nil)

func (f *fakeProfileFinder) Lookup(name string) (*highlight.Profile, error) {
	return f.lookup(name)
}

func (f *fakeProfileFinder) ForFile(path string) (*highlight.Profile, error) {
	return f.forFile(path)
}

// fakeRenderer records the pages it was asked to render.
type fakeRenderer struct {
	pages []*html.PageInfo
}

var _ Renderer = (*fakeRenderer)(nil)

func (f *fakeRenderer) RenderPage(w io.Writer, info *html.PageInfo) error {
	f.pages = append(f.pages, info)
	_, err := io.WriteString(w, "<page "+info.Title+">")
	return err
}

func (f *fakeRenderer) WriteCSS(io.Writer) error { return nil }

func testProfile(t *testing.T) *highlight.Profile {
	t.Helper()

	p, err := highlight.NewProfile(highlight.ProfileSpec{
		Name:       "test",
		Delimiters: " ",
		Keywords: []highlight.KeywordSpec{
			{Style: "Keyword", Words: []string{"if"}},
		},
	})
	require.NoError(t, err)
	return p
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRunner_stdout(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "cond.txt", "if x\n")

	var stdout bytes.Buffer
	renderer := new(fakeRenderer)
	runner := Runner{
		Log: log.New(iotest.Writer(t), "", 0),
		Profiles: &fakeProfileFinder{
			forFile: func(string) (*highlight.Profile, error) {
				return testProfile(t), nil
			},
		},
		Renderer: renderer,
		Stdout:   &stdout,
	}

	require.NoError(t, runner.Run([]string{file}))

	assert.Contains(t, stdout.String(), "<page cond.txt>")
	require.Len(t, renderer.pages, 1)

	page := renderer.pages[0]
	assert.Equal(t, "cond.txt", page.Title)
	require.Len(t, page.Results, 1)
	assert.Equal(t,
		[]highlight.Span{{Start: 0, Len: 2, Style: "Keyword"}},
		page.Results[0].Spans)
}

func TestRunner_outDir(t *testing.T) {
	t.Parallel()

	srcDir, outDir := t.TempDir(), t.TempDir()
	file := writeFile(t, srcDir, "cond.txt", "if x\n")

	var debug bytes.Buffer
	runner := Runner{
		Log: log.New(iotest.Writer(t), "", 0),
		// Exercises the missing-directory case too.
		OutDir:   filepath.Join(outDir, "site"),
		DebugLog: log.New(&debug, "", 0),
		Profiles: &fakeProfileFinder{
			forFile: func(string) (*highlight.Profile, error) {
				return testProfile(t), nil
			},
		},
		Renderer: new(fakeRenderer),
		Stdout:   iotest.Writer(t),
	}

	require.NoError(t, runner.Run([]string{file}))

	got, err := os.ReadFile(filepath.Join(outDir, "site", "cond.txt.html"))
	require.NoError(t, err)
	assert.Equal(t, "<page cond.txt>", string(got))
	assert.Contains(t, debug.String(), "cond.txt.html")
}

func TestRunner_forcedProfile(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "cond.txt", "if x\n")

	var gotName string
	runner := Runner{
		Log:         log.New(iotest.Writer(t), "", 0),
		ProfileName: "special",
		Profiles: &fakeProfileFinder{
			lookup: func(name string) (*highlight.Profile, error) {
				gotName = name
				return testProfile(t), nil
			},
		},
		Renderer: new(fakeRenderer),
		Stdout:   iotest.Writer(t),
	}

	require.NoError(t, runner.Run([]string{file}))
	assert.Equal(t, "special", gotName)
}

func TestRunner_unknownProfileWarns(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "notes.xyz", "if x\n")

	var logs bytes.Buffer
	renderer := new(fakeRenderer)
	runner := Runner{
		Log: log.New(&logs, "", 0),
		Profiles: &fakeProfileFinder{
			forFile: func(string) (*highlight.Profile, error) {
				return nil, lang.ErrUnknownProfile
			},
		},
		Renderer: renderer,
		Stdout:   iotest.Writer(t),
	}

	require.NoError(t, runner.Run([]string{file}))

	assert.Contains(t, logs.String(), "no profile")
	require.Len(t, renderer.pages, 1)
	assert.Empty(t, renderer.pages[0].Results[0].Spans,
		"unstyled render expected")
}

func TestRunner_missingFile(t *testing.T) {
	t.Parallel()

	runner := Runner{
		Log: log.New(iotest.Writer(t), "", 0),
		Profiles: &fakeProfileFinder{
			forFile: func(string) (*highlight.Profile, error) {
				return testProfile(t), nil
			},
		},
		Renderer: new(fakeRenderer),
		Stdout:   iotest.Writer(t),
	}

	err := runner.Run([]string{filepath.Join(t.TempDir(), "does-not-exist")})
	require.Error(t, err)
	assert.ErrorContains(t, err, "does-not-exist")
}

func TestReadLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give string
		want []string
	}{
		{desc: "empty file", give: "", want: []string{""}},
		{desc: "no trailing newline", give: "a\nb", want: []string{"a", "b"}},
		{desc: "trailing newline", give: "a\nb\n", want: []string{"a", "b"}},
		{desc: "crlf", give: "a\r\nb\r\n", want: []string{"a", "b"}},
		{desc: "blank lines", give: "a\n\nb\n", want: []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			file := writeFile(t, t.TempDir(), "input", tt.give)
			got, err := readLines(file)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
