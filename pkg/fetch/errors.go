package fetch

import "github.com/KonishchevDmitry/feedmerge/internal/util"

// temporaryError marks transport failures: the source may become reachable again on the next run.
type temporaryError struct {
	err error
}

var _ util.Temporary = temporaryError{}

func makeTemporaryError(err error) temporaryError {
	return temporaryError{err: err}
}

func (e temporaryError) Temporary() bool {
	return true
}

func (e temporaryError) Error() string {
	return e.err.Error()
}

func (e temporaryError) Unwrap() error {
	return e.err
}
