package fileio

import "errors"

var (
	// ErrIO matches every *IOError through errors.Is.
	ErrIO = errors.New("io failure")

	ErrInvalidEncoding = errors.New("invalid byte sequence for encoding")
)

// IOError is a read or write failure on a document file.
type IOError struct {
	Op   string // "open" or "save"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }
