package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"braces.dev/errtrace"

	"go.abhg.dev/hilite/internal/flagvalue"
)

var (
	errHelp             = flag.ErrHelp
	errInvalidArguments = errors.New("invalid arguments")
)

// params holds all arguments for hilite.
type params struct {
	version bool
	help    Help

	Profile     string
	ProfileDir  string
	Extensions  []extMapping
	Style       string
	OutDir      string
	Embed       bool
	LineNumbers bool
	CSS         flagvalue.FileSwitch
	Debug       flagvalue.FileSwitch

	Files []string
}

// cliParser parses the command line arguments for hilite.
type cliParser struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (cmd *cliParser) newFlagSet() (*params, *flag.FlagSet) {
	flag := flag.NewFlagSet("hilite", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		DefaultHelp.Write(cmd.Stderr)
	}

	var p params

	// Output:
	flag.StringVar(&p.OutDir, "out", "", "")
	flag.BoolVar(&p.Embed, "embed", false, "")
	flag.StringVar(&p.Style, "style", "", "")
	flag.BoolVar(&p.LineNumbers, "line-numbers", false, "")
	flag.Var(&p.CSS, "css", "")

	// Profiles:
	flag.StringVar(&p.Profile, "l", "", "")
	flag.StringVar(&p.ProfileDir, "profiles", "", "")
	flag.Var(flagvalue.ListOf(&p.Extensions), "ext", "")

	// Program-level:
	flag.Var(&p.Debug, "debug", "")
	flag.BoolVar(&p.version, "version", false, "")
	flag.Var(&p.help, "help", "")
	flag.Var(&p.help, "h", "")

	return &p, flag
}

func (cmd *cliParser) Parse(args []string) (*params, error) {
	p, flag := cmd.newFlagSet()
	if err := flag.Parse(args); err != nil {
		return nil, errtrace.Wrap(err)
	}
	args = flag.Args()

	if p.version {
		fmt.Fprintln(cmd.Stdout, "hilite", _version)
		return nil, errHelp
	}

	if p.help == DefaultHelp && len(args) > 0 {
		// The user might have done "-h foo"
		// instead of "-h=foo".
		// If the argument is a known help topic,
		// take it.
		var h Help
		if err := h.Set(args[0]); err == nil {
			p.help = h
		}
	}

	switch p.help {
	case NoHelp:
		// proceed as usual
	default:
		if err := p.help.Write(cmd.Stderr); err != nil {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, errHelp
	}

	p.Files = args
	if len(p.Files) == 0 && !p.CSS.Bool() {
		fmt.Fprintln(cmd.Stderr, "Please provide at least one file.")
		UsageHelp.Write(cmd.Stderr)
		return nil, errInvalidArguments
	}

	return p, nil
}

// extMapping is an "ext=profile" pair for the -ext flag.
type extMapping struct {
	Ext     string
	Profile string
}

var _ flag.Getter = (*extMapping)(nil)

// Get reports the mapping recorded so far.
func (m *extMapping) Get() any { return *m }

func (m *extMapping) String() string {
	if m.Ext == "" && m.Profile == "" {
		return ""
	}
	return m.Ext + "=" + m.Profile
}

// Set parses an "ext=profile" argument.
func (m *extMapping) Set(s string) error {
	ext, profile, ok := strings.Cut(s, "=")
	if !ok || ext == "" || profile == "" {
		return errtrace.Errorf("expected ext=profile, got %q", s)
	}
	m.Ext, m.Profile = ext, profile
	return nil
}
