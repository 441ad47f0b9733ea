package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Resolution errors indicate an identifier or pattern did not select exactly one target.
var (
	// ErrNotFound indicates an id or pattern resolved to nothing.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguousMatch indicates a pattern resolved to more than one target.
	ErrAmbiguousMatch = errors.New("ambiguous match")
)

// State errors indicate a project lifecycle transition that is not allowed.
var (
	// ErrAlreadyArchived indicates the project is already packed into a container.
	ErrAlreadyArchived = errors.New("project is already archived")

	// ErrAlreadyActive indicates the project already exists on disk and is not archived.
	ErrAlreadyActive = errors.New("project is already active")

	// ErrPathExists indicates a setup or init target already exists.
	ErrPathExists = errors.New("path already exists")

	// ErrNotConfirmed indicates a destructive operation was declined.
	ErrNotConfirmed = errors.New("operation not confirmed")
)

// Archive errors indicate container I/O or consistency failures.
var (
	// ErrArchiveWrite indicates the container file could not be created.
	ErrArchiveWrite = errors.New("failed to write archive")

	// ErrExtract indicates the container is missing or malformed.
	ErrExtract = errors.New("failed to extract archive")

	// ErrIncompleteArchive indicates archived experiments are missing from the container.
	ErrIncompleteArchive = errors.New("archive is incomplete")
)

// Configuration errors indicate persisted documents or addressed values are unusable.
var (
	// ErrConfigCorrupt indicates a persisted document could not be parsed.
	ErrConfigCorrupt = errors.New("configuration is corrupt")

	// ErrInvalidValue indicates a value could not be coerced or stored.
	ErrInvalidValue = errors.New("invalid value")

	// ErrKeyNotFound indicates a dotted key path does not resolve.
	ErrKeyNotFound = errors.New("key not found")
)

// AmbiguousMatchError lists every id a pattern matched.
type AmbiguousMatchError struct {
	Identifier string
	Matches    []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("%s: %q matches %d entries: %s",
		ErrAmbiguousMatch, e.Identifier, len(e.Matches), strings.Join(e.Matches, ", "))
}

// Unwrap lets errors.Is(err, ErrAmbiguousMatch) succeed.
func (e *AmbiguousMatchError) Unwrap() error {
	return ErrAmbiguousMatch
}
