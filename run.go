package main

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"braces.dev/errtrace"

	"go.abhg.dev/hilite/internal/errdefer"
	"go.abhg.dev/hilite/internal/highlight"
	"go.abhg.dev/hilite/internal/html"
	"go.abhg.dev/hilite/internal/lang"
)

// ProfileFinder resolves highlighting profiles for input files.
type ProfileFinder interface {
	Lookup(name string) (*highlight.Profile, error)
	ForFile(path string) (*highlight.Profile, error)
}

var _ ProfileFinder = (*lang.Registry)(nil)

// Renderer renders scanned lines into HTML.
type Renderer interface {
	RenderPage(io.Writer, *html.PageInfo) error
	WriteCSS(io.Writer) error
}

var _ Renderer = (*html.Renderer)(nil)

// Runner highlights user-specified files.
//
// In terms of code organization,
// Runner's purpose is to add a separation between main
// and the program's core logic to aid in testability.
type Runner struct {
	Log      *log.Logger
	DebugLog *log.Logger
	Profiles ProfileFinder
	Renderer Renderer

	// ProfileName, if non-empty, forces one profile for all files
	// instead of matching by file name.
	ProfileName string

	// OutDir is the directory for rendered pages.
	// If empty, pages are written to Stdout instead.
	OutDir string
	Stdout io.Writer
}

// Run renders each of the given files.
func (r *Runner) Run(files []string) error {
	if r.OutDir != "" {
		if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
			return errtrace.Wrap(err)
		}
	}

	for _, file := range files {
		if err := r.renderFile(file); err != nil {
			return errtrace.Errorf("%v: %w", file, err)
		}
	}
	return nil
}

func (r *Runner) renderFile(file string) (err error) {
	profile, err := r.profileFor(file)
	if err != nil {
		return errtrace.Wrap(err)
	}

	lines, err := readLines(file)
	if err != nil {
		return errtrace.Wrap(err)
	}

	results, err := highlight.Scan(lines, 1, profile)
	if err != nil {
		return errtrace.Wrap(err)
	}

	info := html.PageInfo{
		Title:   filepath.Base(file),
		Results: results,
	}

	if r.OutDir == "" {
		return errtrace.Wrap(r.Renderer.RenderPage(r.Stdout, &info))
	}

	outPath := filepath.Join(r.OutDir, filepath.Base(file)+".html")
	if r.DebugLog != nil {
		r.DebugLog.Printf("%v => %v", file, outPath)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	return errtrace.Wrap(r.Renderer.RenderPage(f, &info))
}

// profileFor picks the profile for a file.
// A file no profile claims is not an error:
// it renders unstyled, with a warning.
func (r *Runner) profileFor(file string) (*highlight.Profile, error) {
	if r.ProfileName != "" {
		return errtrace.Wrap2(r.Profiles.Lookup(r.ProfileName))
	}

	p, err := r.Profiles.ForFile(file)
	if errors.Is(err, lang.ErrUnknownProfile) {
		r.Log.Printf("warning: no profile for %v, rendering without styles", file)
		return nil, nil
	}
	return errtrace.Wrap2(p, err)
}

// readLines reads a file as a list of lines,
// without trailing line terminators.
func readLines(file string) ([]string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	text := strings.TrimSuffix(string(data), "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}
