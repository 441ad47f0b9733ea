// Package resolver turns a user-supplied experiment or project reference into
// exactly one registered name.
//
// A reference is an exact name, a regular expression matched against whole
// names, or nothing at all, in which case the current pointer is used. A
// pattern matching more than one name fails with an AmbiguousMatchError that
// lists every match; the resolver never picks one on the caller's behalf.
package resolver
