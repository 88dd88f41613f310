package timestep

import (
	"errors"
	"fmt"
)

// ErrNotFitted is returned by operations that require a trained classifier.
var ErrNotFitted = errors.New("timestep: classifier is not fitted yet")

// ShapeMismatchError reports a tensor whose time dimension does not satisfy
// the encode length for the requested operation.
type ShapeMismatchError struct {
	EncodeLen int
	Found     int
	// Exact is true for training extraction, where the time dimension must
	// equal the encode length rather than just reach it.
	Exact bool
}

func (e *ShapeMismatchError) Error() string {
	if e.Exact {
		return fmt.Sprintf("timestep: training windows expected length %d, found %d", e.EncodeLen, e.Found)
	}
	return fmt.Sprintf("timestep: inference windows expected length >= %d, found %d", e.EncodeLen, e.Found)
}
