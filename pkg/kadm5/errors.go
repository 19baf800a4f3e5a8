package kadm5

import (
	"errors"
	"fmt"

	"github.com/krb5go/kadm5/internal/native"
)

// ErrorCode identifies the class of a kadm5 failure.
type ErrorCode int

const (
	// CodeConnection covers authentication and transport failures:
	// unreachable or unresolvable admin server, GSS-API errors, bad
	// credentials, and use of a closed or uninitialized handle.
	CodeConnection ErrorCode = iota + 1

	// CodeNotFound means the named principal or policy does not exist.
	CodeNotFound

	// CodeAlreadyExists means a create collided with an existing entry.
	CodeAlreadyExists

	// CodeInvalidArgument covers malformed names, masks, and field values
	// rejected before or by the library.
	CodeInvalidArgument

	// CodeConversion means data crossing the native boundary could not be
	// represented, such as a name that is not valid UTF-8.
	CodeConversion

	// CodeLibrary is the catch-all for native statuses with no more
	// specific classification, including authorization denials and
	// password-quality rejections.
	CodeLibrary
)

// String returns a stable lowercase identifier for the code.
func (c ErrorCode) String() string {
	switch c {
	case CodeConnection:
		return "connection"
	case CodeNotFound:
		return "not_found"
	case CodeAlreadyExists:
		return "already_exists"
	case CodeInvalidArgument:
		return "invalid_argument"
	case CodeConversion:
		return "conversion"
	case CodeLibrary:
		return "library"
	default:
		return "unknown"
	}
}

// Error is the error type returned by all operations in this package.
type Error struct {
	// Code classifies the failure.
	Code ErrorCode

	// KadmCode is the native kadm5/krb5 status code, or zero when the
	// error did not originate in the native library.
	KadmCode int64

	// Message is human-readable detail.
	Message string
}

func (e *Error) Error() string {
	if e.KadmCode != 0 {
		return fmt.Sprintf("kadm5: %s: %s (code %d)", e.Code, e.Message, e.KadmCode)
	}
	return fmt.Sprintf("kadm5: %s: %s", e.Code, e.Message)
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func errInvalidArgument(format string, args ...any) *Error {
	return newError(CodeInvalidArgument, format, args...)
}

func errConnection(format string, args ...any) *Error {
	return newError(CodeConnection, format, args...)
}

// IsNotFound reports whether err is a kadm5 error with CodeNotFound.
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsAlreadyExists reports whether err is a kadm5 error with CodeAlreadyExists.
func IsAlreadyExists(err error) bool { return hasCode(err, CodeAlreadyExists) }

// IsConnection reports whether err is a kadm5 error with CodeConnection.
func IsConnection(err error) bool { return hasCode(err, CodeConnection) }

// IsInvalidArgument reports whether err is a kadm5 error with CodeInvalidArgument.
func IsInvalidArgument(err error) bool { return hasCode(err, CodeInvalidArgument) }

// IsConversion reports whether err is a kadm5 error with CodeConversion.
func IsConversion(err error) bool { return hasCode(err, CodeConversion) }

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// wrapNative translates errors surfaced by the native layer into the public
// taxonomy. The mapping is total: any native status not explicitly
// classified becomes CodeLibrary with its code and message preserved.
func wrapNative(err error) error {
	if err == nil {
		return nil
	}
	var call *native.CallError
	if errors.As(err, &call) {
		return fromNativeCode(call.Code, call.Message)
	}
	var dec *native.DecodeError
	if errors.As(err, &dec) {
		return &Error{Code: CodeConversion, Message: dec.Error()}
	}
	return err
}

func fromNativeCode(code int64, libraryMessage string) *Error {
	msg := libraryMessage
	if m, ok := kadm5Messages[code]; ok {
		msg = m
	}
	e := &Error{KadmCode: code, Message: msg}
	switch {
	case code == codeUnkPrinc || code == codeUnkPolicy:
		e.Code = CodeNotFound
	case code == codeDup:
		e.Code = CodeAlreadyExists
	case invalidArgumentCodes[code]:
		e.Code = CodeInvalidArgument
	case connectionCodes[code]:
		e.Code = CodeConnection
	default:
		e.Code = CodeLibrary
	}
	return e
}

// wrapConnect translates a connection-phase failure. Whatever the native
// status, a failed handle initialization is reported as CodeConnection;
// conversion failures keep their class.
func wrapConnect(err error) error {
	wrapped := wrapNative(err)
	var e *Error
	if errors.As(wrapped, &e) && e.Code != CodeConversion {
		e.Code = CodeConnection
	}
	return wrapped
}

// nativeCodeIs reports whether err carries the given native status code.
func nativeCodeIs(err error, code int64) bool {
	var call *native.CallError
	return errors.As(err, &call) && call.Code == code
}
