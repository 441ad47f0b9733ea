// Package errors provides typed error values for modelorg.
//
// Sentinel errors let callers handle specific conditions with errors.Is()
// instead of string matching.
//
// # Error Categories
//
//   - Resolution errors: an id or pattern selects nothing or too much (ErrNotFound, ErrAmbiguousMatch)
//   - State errors: lifecycle violations (ErrAlreadyArchived, ErrAlreadyActive, ErrPathExists)
//   - Archive errors: container I/O and consistency (ErrArchiveWrite, ErrExtract, ErrIncompleteArchive)
//   - Configuration errors: documents and dotted keys (ErrConfigCorrupt, ErrInvalidValue, ErrKeyNotFound)
//
// # Usage
//
// Wrap errors with the offending identifier:
//
//	return fmt.Errorf("%w: experiment %q", kerrors.ErrNotFound, id)
//
// An ambiguous pattern returns *AmbiguousMatchError, which names every
// conflicting id and still satisfies errors.Is(err, ErrAmbiguousMatch):
//
//	var amb *kerrors.AmbiguousMatchError
//	if errors.As(err, &amb) {
//	    fmt.Println(amb.Matches)
//	}
package errors
