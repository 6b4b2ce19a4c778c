package worker

import (
	"errors"
)

// ErrStopRequested is returned by a throttle wait interrupted by stop.
var ErrStopRequested = errors.New("stop requested")

// fatalError ends the whole run. Any other error returned while processing
// an item only fails that item.
type fatalError struct {
	error
}

func (e fatalError) Unwrap() error {
	return e.error
}

func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return fatalError{err}
}

func IsFatal(err error) bool {
	var f fatalError
	return errors.As(err, &f)
}
