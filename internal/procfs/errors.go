package procfs

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrMalformed is returned when a token has characters outside the
	// alphabet of the requested base, or is empty.
	ErrMalformed = errors.New("malformed")
	// ErrOutOfRange is returned when a token is well formed but its value
	// does not fit the target type.
	ErrOutOfRange = errors.New("out of range")
	// ErrNoLine is returned by ReadLine when the file is empty.
	ErrNoLine = errors.New("no line to read")
)

// OSError reports a file, directory or link that could not be opened, read
// or stat'ed. Err is usually a syscall.Errno.
type OSError struct {
	Op   string
	Path string
	Err  error
}

func (e *OSError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *OSError) Unwrap() error { return e.Err }

// osError strips the *fs.PathError the os package wraps around errno, so
// the op and path are only reported once.
func osError(op, path string, err error) *OSError {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	return &OSError{Op: op, Path: path, Err: err}
}

// ParseError reports kernel text that does not match the expected grammar.
// Text is the raw input as read and Reason describes what was expected.
type ParseError struct {
	Reason string
	Text   string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %q: %v", e.Reason, e.Text, e.Err)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError is a shorthand for parsers built on this package.
func NewParseError(reason, text string, cause error) *ParseError {
	return &ParseError{Reason: reason, Text: text, Err: cause}
}

func IsOSError(err error) bool {
	var oe *OSError
	return errors.As(err, &oe)
}

func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
