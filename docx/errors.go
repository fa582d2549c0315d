package docx

import (
	"errors"
	"fmt"
)

// ErrPartMissing marks a required part that is absent from the archive.
var ErrPartMissing = errors.New("part missing")

// PartError reports a required part that is missing or malformed. Optional
// parts never produce a PartError; they degrade to an absent section.
type PartError struct {
	Part string
	Err  error
}

func (e *PartError) Error() string { return fmt.Sprintf("part %q: %v", e.Part, e.Err) }
func (e *PartError) Unwrap() error { return e.Err }
