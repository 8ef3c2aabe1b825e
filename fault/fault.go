// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AuthorisationError GenericError
type ConflictError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError
type StateError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyExists          = ExistsError("already exists")
	AlreadyInitialised     = ExistsError("already initialised")
	AuthorizationMismatch  = AuthorisationError("organisation identity mismatch")
	CertificateFileExists  = ExistsError("certificate file already exists")
	DatabaseIsReadOnly     = ProcessError("database is read only")
	IncompatibleDatabase   = RecordError("incompatible database version")
	InvalidArgument        = InvalidError("invalid argument")
	InvalidConfiguration   = InvalidError("invalid configuration")
	InvalidCount           = InvalidError("invalid count")
	InvalidCursor          = InvalidError("invalid cursor")
	InvalidFingerprint     = InvalidError("invalid fingerprint")
	InvalidIpAddress       = InvalidError("invalid IP address")
	InvalidKeyComponent    = InvalidError("invalid key component")
	InvalidNamedQuery      = InvalidError("invalid named query")
	InvalidPortNumber      = InvalidError("invalid port number")
	InvalidQuery           = InvalidError("invalid query")
	InvalidStateTransition = StateError("invalid state transition")
	InvalidStructPointer   = InvalidError("invalid struct pointer")
	KeyFileExists          = ExistsError("key file already exists")
	MalformedRecord        = RecordError("malformed record")
	MissingParameters      = InvalidError("missing parameters")
	MissingCertificate     = NotFoundError("client certificate is required")
	NotFound               = NotFoundError("not found")
	NotInitialised         = NotFoundError("not initialised")
	OptimisticConflict     = ConflictError("optimistic conflict: concurrent update detected")
	RateLimiting           = ProcessError("rate limiting")
	TransactionAborted     = ProcessError("transaction aborted")
	TransactionInUse       = ProcessError("transaction already in use")
	UnknownCertificate     = NotFoundError("unknown client certificate")
	UnknownFunction        = NotFoundError("unknown function")
	ValidationMismatch     = InvalidError("voter mismatch")
	WrongArgumentCount     = InvalidError("wrong argument count")
)

// the error interface methods
func (e GenericError) Error() string       { return string(e) }
func (e AuthorisationError) Error() string { return string(e) }
func (e ConflictError) Error() string      { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e RecordError) Error() string        { return string(e) }
func (e StateError) Error() string         { return string(e) }

// determine the class of an error
//
// each check looks through any wrapping so that context added with
// errors.Wrapf does not hide the class
func IsErrAuthorisation(e error) bool { var t AuthorisationError; return errors.As(e, &t) }
func IsErrConflict(e error) bool      { var t ConflictError; return errors.As(e, &t) }
func IsErrExists(e error) bool        { var t ExistsError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool       { var t InvalidError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool      { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool       { var t ProcessError; return errors.As(e, &t) }
func IsErrRecord(e error) bool        { var t RecordError; return errors.As(e, &t) }
func IsErrState(e error) bool         { var t StateError; return errors.As(e, &t) }

// IsRetryable - true for failures the caller may resubmit unchanged
func IsRetryable(e error) bool {
	return IsErrConflict(e)
}
