// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ecdsa

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind
// when determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrSigTooShort is returned when a signature that should be a
	// serialized signature is too short to be one.
	ErrSigTooShort = ErrorKind("ErrSigTooShort")

	// ErrSigInvalidSeqID is returned when a serialized signature does not
	// start with the sequence identifier 0x30.
	ErrSigInvalidSeqID = ErrorKind("ErrSigInvalidSeqID")

	// ErrSigInvalidDataLen is returned when the declared total length of a
	// serialized signature does not match the lengths of R and S.
	ErrSigInvalidDataLen = ErrorKind("ErrSigInvalidDataLen")

	// ErrSigInvalidRIntID is returned when R is not preceded by the integer
	// identifier 0x02.
	ErrSigInvalidRIntID = ErrorKind("ErrSigInvalidRIntID")

	// ErrSigZeroRLen is returned when a signature declares a zero length R.
	ErrSigZeroRLen = ErrorKind("ErrSigZeroRLen")

	// ErrSigInvalidSIntID is returned when S is not preceded by the integer
	// identifier 0x02.
	ErrSigInvalidSIntID = ErrorKind("ErrSigInvalidSIntID")

	// ErrSigZeroSLen is returned when a signature declares a zero length S.
	ErrSigZeroSLen = ErrorKind("ErrSigZeroSLen")

	// ErrSigMissingHashType is returned when a signature that must be
	// followed by a hash type byte is not.
	ErrSigMissingHashType = ErrorKind("ErrSigMissingHashType")

	// ErrSigTrailingBytes is returned when unexpected bytes follow a
	// signature.
	ErrSigTrailingBytes = ErrorKind("ErrSigTrailingBytes")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to an ECDSA signature.  It has full
// support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
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

// signatureError creates an Error given a set of arguments.
func signatureError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
