package deck

import (
	"fmt"
	"strings"
)

// NoSlidesFoundError reports that a document contained zero slide container
// elements. No partial deck is produced alongside it.
type NoSlidesFoundError struct {
	Detail string
}

func (e *NoSlidesFoundError) Error() string {
	if e.Detail != "" {
		return "no slide containers found: " + e.Detail
	}
	return "no slide containers found in document"
}

// CanvasIntegrityError reports that a mutated deck failed validation. The
// caller must discard the mutation and keep the prior snapshot.
type CanvasIntegrityError struct {
	Violations []string
}

func (e *CanvasIntegrityError) Error() string {
	return fmt.Sprintf("deck failed integrity checks: %s", strings.Join(e.Violations, "; "))
}

// CssMergeWarning reports that replacement CSS could not be parsed and was
// discarded wholesale. It is never fatal: the original CSS is kept.
type CssMergeWarning struct {
	Err error
}

func (e *CssMergeWarning) Error() string {
	return fmt.Sprintf("replacement CSS discarded: %v", e.Err)
}

func (e *CssMergeWarning) Unwrap() error { return e.Err }
