// Package utils provides shared helpers for the huffman library.
package utils

import "fmt"

// CodecError is a structured error carrying the operation that failed and
// the underlying cause.
type CodecError struct {
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *CodecError) Error() string {
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *CodecError) Unwrap() error {
	return e.Cause
}

// WrapError attaches context to an error. A nil cause stays nil, so call
// sites can wrap unconditionally.
func WrapError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &CodecError{
		Context: context,
		Cause:   cause,
	}
}
