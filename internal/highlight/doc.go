// Package highlight assigns styles to source code text,
// driven by a declarative language profile.
//
// A [Profile] describes a language with keyword groups, delimiter
// sets, comment/string block rules, and regex token rules.
// [Scan] applies a profile to a batch of text lines and produces one
// [LineResult] per line, carrying "still inside a multi-line block"
// state across line boundaries within the batch.
//
// The output is a list of non-overlapping [Span] values per line.
// Characters not covered by any span carry no style;
// renderers supply their own default for those.
package highlight
