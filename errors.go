package dirstream

import (
	"errors"
	"fmt"
	"syscall"
)

// Error is returned by every failing operation in this package.
//
// Err is the raw error reported by the operating system (a [syscall.Errno] in
// all but two cases: [os.ErrClosed] after Close, and [errors.ErrUnsupported]
// on platforms without a backend). Match on it with errors.Is:
//
//	if errors.Is(err, syscall.ENOTDIR) { ... }
type Error struct {
	// Op is the syscall-level operation that failed, e.g. "openat" or "readdir".
	Op string
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errno returns the underlying errno, or 0 when Err is not an errno.
func (e *Error) Errno() syscall.Errno {
	var errno syscall.Errno
	if errors.As(e.Err, &errno) {
		return errno
	}

	return 0
}

func opError(op string, err error) error {
	if err == nil {
		return nil
	}

	return &Error{Op: op, Err: err}
}
