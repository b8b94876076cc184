package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"braces.dev/errtrace"
	"github.com/alecthomas/chroma/v2/styles"

	"go.abhg.dev/hilite/internal/html"
	"go.abhg.dev/hilite/internal/lang"
)

func main() {
	cmd := mainCmd{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(cmd.Run(os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	log *log.Logger
}

func (cmd *mainCmd) Run(args []string) (exitCode int) {
	cmd.log = log.New(cmd.Stderr, "", 0)

	opts, err := (&cliParser{
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}).Parse(args)
	if err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		// No need to print anything.
		// Parse prints messages.
		return 1
	}

	if err := cmd.run(opts); err != nil {
		cmd.log.Printf("hilite: %v", err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) run(opts *params) (err error) {
	profiles, err := buildRegistry(opts)
	if err != nil {
		return errtrace.Wrap(err)
	}

	renderer := &html.Renderer{
		Embedded:    opts.Embed,
		LineNumbers: opts.LineNumbers,
	}
	if opts.Style != "" {
		renderer.Style = styles.Get(opts.Style)
	}

	if opts.CSS.Bool() {
		if err := cmd.writeCSS(opts, renderer); err != nil {
			return errtrace.Wrap(err)
		}
		if len(opts.Files) == 0 {
			return nil
		}
	}

	var debugLog *log.Logger
	if opts.Debug.Bool() {
		w, done, err := opts.Debug.Create(cmd.Stderr)
		if err != nil {
			return errtrace.Wrap(err)
		}
		defer func() { err = errors.Join(err, done()) }()
		debugLog = log.New(w, "debug: ", 0)
	}

	runner := Runner{
		Log:         cmd.log,
		DebugLog:    debugLog,
		Profiles:    profiles,
		Renderer:    renderer,
		ProfileName: opts.Profile,
		OutDir:      opts.OutDir,
		Stdout:      cmd.Stdout,
	}

	return errtrace.Wrap(runner.Run(opts.Files))
}

// buildRegistry assembles the profile registry:
// built-in profiles, optionally overlaid with a user profile
// directory, and finally any -ext overrides.
func buildRegistry(opts *params) (*lang.Registry, error) {
	var (
		reg *lang.Registry
		err error
	)
	if opts.ProfileDir != "" {
		reg, err = lang.New(lang.BuiltinFS(), os.DirFS(opts.ProfileDir))
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
	} else {
		reg = lang.Builtin()
	}

	for _, m := range opts.Extensions {
		reg.SetExtension(m.Ext, m.Profile)
	}
	return reg, nil
}

func (cmd *mainCmd) writeCSS(opts *params, renderer *html.Renderer) (err error) {
	w, done, err := opts.CSS.Create(cmd.Stdout)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer func() { err = errors.Join(err, done()) }()

	return errtrace.Wrap(renderer.WriteCSS(w))
}
