package reviews

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord marks an input line that cannot become a review.
var ErrMalformedRecord = errors.New("malformed review record")

// LineError locates a malformed input line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
