package errs

import (
	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

// Mark ties err to the sentinel markErr. The sentinel is joined into
// the cause chain, so errors.Is matches it as well as the original
// error.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(cr.Join(markErr, err), markErr)
}
