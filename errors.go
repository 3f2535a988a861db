package classdiagram

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind groups the failures of Generate, documenting what kind of issue was
// encountered in a uniform way.
type ErrorKind int

const (
	// ErrUnknownLanguage means no parser exists for the requested language.
	ErrUnknownLanguage ErrorKind = iota
	// ErrInputDir means the input directory is missing or unreadable.
	ErrInputDir
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnknownLanguage:
		return "unknown-language"
	case ErrInputDir:
		return "input-dir"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// GenerateError is returned by Generate for problems with its input, as
// opposed to cancellation. Path is the offending file or directory, if any.
type GenerateError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *GenerateError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s]: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("[%s]: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, path string, err error) *GenerateError {
	return &GenerateError{Kind: kind, Path: path, Err: err}
}

func newErrorf(kind ErrorKind, path string, msg string, args ...interface{}) *GenerateError {
	return newError(kind, path, errors.Errorf(msg, args...))
}
