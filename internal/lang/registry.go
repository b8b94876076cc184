package lang

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"braces.dev/errtrace"
	gocache "github.com/patrickmn/go-cache"

	"go.abhg.dev/hilite/internal/highlight"
	"go.abhg.dev/hilite/internal/must"
)

//go:embed profiles/*.yaml
var _builtinFS embed.FS

// ErrUnknownProfile is reported when no profile matches
// the requested name or file.
var ErrUnknownProfile = errors.New("unknown profile")

// Registry resolves highlighting profiles by name or by file name.
//
// Definitions are read eagerly so that file-extension lookups work,
// but profiles are compiled lazily and cached:
// repeated lookups of the same name return the same Profile,
// which is safe because compiled profiles are immutable.
type Registry struct {
	defs map[string]*profileFile // by profile name
	exts map[string]string       // lowercased ".ext" or base name -> profile name

	// Compiled profiles by name. go-cache is just a concurrency-safe
	// map here; entries never expire.
	compiled *gocache.Cache
}

// New builds a registry from one or more filesystems of
// "<name>.yaml" profile definitions at their roots.
// Later filesystems take precedence:
// a profile redefines an earlier one of the same name,
// and its extension claims shadow earlier ones.
func New(fsys ...fs.FS) (*Registry, error) {
	r := &Registry{
		defs:     make(map[string]*profileFile),
		exts:     make(map[string]string),
		compiled: gocache.New(gocache.NoExpiration, 0),
	}

	for _, f := range fsys {
		files, err := fs.Glob(f, "*.yaml")
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		sort.Strings(files) // deterministic load order within a layer

		for _, file := range files {
			data, err := fs.ReadFile(f, file)
			if err != nil {
				return nil, errtrace.Wrap(err)
			}
			def, err := decodeProfile(data)
			if err != nil {
				return nil, errtrace.Errorf("profile %s: %w", file, err)
			}

			r.defs[def.Name] = def
			for _, ext := range def.Extensions {
				if ext == "" {
					continue
				}
				r.exts[strings.ToLower(ext)] = def.Name
			}
		}
	}

	return r, nil
}

// BuiltinFS exposes the profile definitions compiled into the binary,
// for layering under user-provided profile directories with [New].
func BuiltinFS() fs.FS {
	sub, err := fs.Sub(_builtinFS, "profiles")
	must.NotErrorf(err, "read embedded profiles")
	return sub
}

// Builtin returns a registry over the profile definitions
// compiled into the binary.
func Builtin() *Registry {
	r, err := New(BuiltinFS())
	must.NotErrorf(err, "parse embedded profiles")
	return r
}

// Lookup returns the profile with the given name,
// compiling it on first use.
func (r *Registry) Lookup(name string) (*highlight.Profile, error) {
	if v, ok := r.compiled.Get(name); ok {
		return v.(*highlight.Profile), nil
	}

	def, ok := r.defs[name]
	if !ok {
		return nil, errtrace.Wrap(fmt.Errorf("%w: %q", ErrUnknownProfile, name))
	}
	p, err := def.compile()
	if err != nil {
		return nil, errtrace.Errorf("profile %q: %w", name, err)
	}

	r.compiled.Set(name, p, gocache.NoExpiration)
	return p, nil
}

// ForFile returns the profile registered for the file's extension,
// or failing that, for its exact base name (e.g. "Makefile").
func (r *Registry) ForFile(path string) (*highlight.Profile, error) {
	base := filepath.Base(path)
	if ext := strings.ToLower(filepath.Ext(base)); ext != "" {
		if name, ok := r.exts[ext]; ok {
			return errtrace.Wrap2(r.Lookup(name))
		}
	}
	if name, ok := r.exts[strings.ToLower(base)]; ok {
		return errtrace.Wrap2(r.Lookup(name))
	}
	return nil, errtrace.Wrap(fmt.Errorf("%w for file %q", ErrUnknownProfile, base))
}

// SetExtension maps a file extension (or exact base name)
// to a profile name, overriding any existing claim.
func (r *Registry) SetExtension(ext, name string) {
	r.exts[strings.ToLower(ext)] = name
}

// Names lists the registered profile names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
