package pkgio

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
)

// Close closes every non-nil closer, in order, even after a failure.
// The returned error aggregates all the failures.
func Close(closers ...io.Closer) error {
	var err error
	for i, c := range closers {
		if c == nil {
			continue
		}
		if cErr := c.Close(); cErr != nil {
			err = multierror.Append(err, fmt.Errorf("error closing closer #%d (%T): %w", i, c, cErr))
		}
	}
	return err
}

// CloseAll is Close for a slice of a concrete closer type.
func CloseAll[T io.Closer](closers []T) error {
	cs := make([]io.Closer, 0, len(closers))
	for _, c := range closers {
		cs = append(cs, c)
	}
	return Close(cs...)
}
