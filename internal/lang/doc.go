// Package lang loads highlighting profiles from YAML definitions
// and resolves them by name or by file name.
//
// A small set of profiles ships embedded in the binary;
// see [Builtin]. Additional profile directories may be layered on
// top with [New].
package lang
