// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AuthorisationError GenericError
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAddressDerivationExhausted = ProcessError("address derivation exhausted")
	ErrAlreadyInitialised         = ExistsError("already initialised")
	ErrBufferTooSmall             = LengthError("buffer too small")
	ErrCertificateFileExists      = ExistsError("certificate file already exists")
	ErrCorruptRecord              = RecordError("corrupt record")
	ErrDatabaseVersion            = RecordError("incompatible database version")
	ErrExtensionTooLong           = LengthError("extension payload too long")
	ErrInvalidAccount             = InvalidError("invalid account")
	ErrInvalidAccountBinding      = InvalidError("invalid account binding")
	ErrInvalidAccountCount        = InvalidError("invalid account count")
	ErrInvalidConfiguration       = InvalidError("configuration must return a table")
	ErrInvalidCount               = InvalidError("invalid count")
	ErrInvalidCursor              = InvalidError("invalid cursor")
	ErrInvalidDigestLength        = LengthError("invalid digest length")
	ErrInvalidIPAddress           = InvalidError("invalid IP address")
	ErrInvalidInstruction         = InvalidError("invalid instruction")
	ErrInvalidKeyLength           = InvalidError("invalid key length")
	ErrInvalidLoggerChannel       = InvalidError("invalid logger channel")
	ErrInvalidNetwork             = InvalidError("invalid network")
	ErrInvalidRent                = InvalidError("rent parameters must be non-zero")
	ErrInvalidSeeds               = InvalidError("seeds produce an on-curve address")
	ErrInvalidSignature           = InvalidError("invalid signature")
	ErrInvalidStructPointer       = InvalidError("invalid struct pointer")
	ErrInvalidUTF8                = InvalidError("message is not valid UTF-8")
	ErrKeyFileExists              = ExistsError("key file already exists")
	ErrMessageTooLong             = LengthError("status message too long")
	ErrMissingAuthorization       = AuthorisationError("missing authorization")
	ErrMissingParameters          = InvalidError("missing parameters")
	ErrNotInitialised             = NotFoundError("not initialised")
	ErrNotProgramData             = InvalidError("not a program data account")
	ErrProgramDataTooShort        = LengthError("program data too short")
	ErrRateLimiting               = InvalidError("rate limiting")
	ErrSeedTooLong                = LengthError("seed too long")
	ErrSlotExists                 = ExistsError("storage slot already exists")
	ErrTooManySeeds               = LengthError("too many seeds")
	ErrTransactionInUse           = ProcessError("transaction already in use")
	ErrTransactionNotStarted      = ProcessError("transaction not started")
	ErrTruncatedRequest           = LengthError("truncated request")
	ErrUninitializedTarget        = NotFoundError("uninitialized target")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AuthorisationError) Error() string { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e LengthError) Error() string        { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e RecordError) Error() string        { return string(e) }

// determine the class of an error
func IsErrAuthorisation(e error) bool { _, ok := e.(AuthorisationError); return ok }
func IsErrExists(e error) bool        { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool       { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool        { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool      { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool       { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool        { _, ok := e.(RecordError); return ok }
