// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bip38

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind
// when determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrMalformedPayload indicates that the text is not valid Base58Check
	// or that the decoded payload has the wrong length, prefix or flag.
	ErrMalformedPayload = ErrorKind("ErrMalformedPayload")

	// ErrWrongPassword indicates that the address derived from the
	// decrypted key does not match the address hash of the payload.  A
	// wrong password and a corrupted payload cannot be told apart.
	ErrWrongPassword = ErrorKind("ErrWrongPassword")

	// ErrCanceled indicates that the key derivation was canceled before a
	// result was produced.  The key can be decrypted again.
	ErrCanceled = ErrorKind("ErrCanceled")

	// ErrUnsupportedFormat indicates a recognized but unimplemented
	// variant, such as an EC-multiplied key.
	ErrUnsupportedFormat = ErrorKind("ErrUnsupportedFormat")

	// ErrInvalidState indicates an attempt to decrypt a key that already
	// reached a terminal state.
	ErrInvalidState = ErrorKind("ErrInvalidState")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an encrypted key error.  It has full support for
// errors.Is and errors.As, so the caller can ascertain the specific reason
// for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
