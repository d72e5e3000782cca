package interp

import (
	"errors"
	"fmt"

	"github.com/minj-lang/minj/syntax"
)

// RuntimeError ties an evaluation failure to the statement that raised it.
type RuntimeError struct {
	Pos syntax.Position
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// positioned wraps err with the position of n unless an inner statement
// already did.
func positioned(n syntax.Node, err error) error {
	if err == nil {
		return nil
	}
	var re *RuntimeError
	if errors.As(err, &re) {
		return err
	}
	return &RuntimeError{Pos: n.Span(), Err: err}
}
