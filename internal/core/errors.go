package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Error message prefixes. Callers dispatch on errbuilder codes first and
// on these prefixes where one code covers several failure kinds (the CLI
// exit-code mapper and the predicates below do exactly that).
const (
	msgDanglingReference = "dangling type reference"
	msgDuplicateName     = "duplicate type name"
	msgUnresolvableType  = "unresolvable type"
	msgEncodingFailed    = "encoding failed"
	msgDecodingFailed    = "decoding failed"
	msgSchemaMismatch    = "schema mismatch"
	msgUnknownVersion    = "unknown schema version"
	msgUnknownID         = "unknown schema id"
)

func errDanglingReference(name string, within string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("%s: %s (referenced from %s)", msgDanglingReference, name, within))
}

func errDuplicateName(name string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeAlreadyExists).
		WithMsg(fmt.Sprintf("%s: %s", msgDuplicateName, name))
}

// ErrUnresolvableType reports a type outside the closed type set, such
// as a union that is not exactly [null, T].
func ErrUnresolvableType(detail string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s: %s", msgUnresolvableType, detail))
}

// ErrEncoding wraps a record-to-bytes failure.
func ErrEncoding(detail string, cause error) error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s: %s", msgEncodingFailed, detail))
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return builder
}

// ErrDecoding wraps a bytes-to-record failure.
func ErrDecoding(detail string, cause error) error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s: %s", msgDecodingFailed, detail))
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return builder
}

// ErrSchemaMismatch reports that schema metadata carried alongside encoded
// data is incompatible with the target resolved schema.
func ErrSchemaMismatch(detail string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("%s: %s", msgSchemaMismatch, detail))
}

func errUnknownVersion(version string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("%s: %s", msgUnknownVersion, version))
}

func errUnknownID(id string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("%s: %s", msgUnknownID, id))
}

// IsDanglingReference reports whether err is a dangling-reference failure
// from graph construction.
func IsDanglingReference(err error) bool {
	return hasPrefix(err, msgDanglingReference)
}

// IsDuplicateName reports whether err is a duplicate-name failure from
// graph construction.
func IsDuplicateName(err error) bool {
	return hasPrefix(err, msgDuplicateName)
}

// IsUnresolvableType reports whether err came from the resolver meeting a
// type outside the closed type set.
func IsUnresolvableType(err error) bool {
	return hasPrefix(err, msgUnresolvableType)
}

// IsEncoding reports whether err is an encode failure.
func IsEncoding(err error) bool {
	return hasPrefix(err, msgEncodingFailed)
}

// IsDecoding reports whether err is a decode failure.
func IsDecoding(err error) bool {
	return hasPrefix(err, msgDecodingFailed)
}

// IsSchemaMismatch reports whether err is a schema-metadata mismatch.
func IsSchemaMismatch(err error) bool {
	return hasPrefix(err, msgSchemaMismatch)
}

// IsUnknownVersion reports whether err is a registry version lookup miss.
func IsUnknownVersion(err error) bool {
	return hasPrefix(err, msgUnknownVersion)
}

// IsUnknownID reports whether err is a registry identifier lookup miss.
func IsUnknownID(err error) bool {
	return hasPrefix(err, msgUnknownID)
}

func hasPrefix(err error, prefix string) bool {
	if err == nil {
		return false
	}
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) {
		return strings.HasPrefix(builder.Msg, prefix)
	}
	return strings.HasPrefix(err.Error(), prefix)
}
