// Package apeerr defines the error taxonomy shared by the meta, frame and
// root ape packages. It lives apart from the root package so that meta and
// frame, which the root package imports, can report typed errors without an
// import cycle.
package apeerr

import (
	"fmt"

	"github.com/mewkiz/pkg/errutil"
)

// Kind classifies an Error independent of its message text or transport.
type Kind int

const (
	// InvalidMagic means the input did not begin with "MAC " after the
	// optional ID3v2 skip.
	InvalidMagic Kind = iota
	// UnsupportedVersion means the descriptor's version field is below 3990.
	UnsupportedVersion
	// UnsupportedCompressionLevel means the header's compression level is
	// not one of 1000, 2000, 3000, 4000 or 5000.
	UnsupportedCompressionLevel
	// InvalidHeader means channels is not 1 or 2, or bits-per-sample is not
	// 8, 16 or 24.
	InvalidHeader
	// InvalidSeekTable means a frame index is at or beyond the seek table's
	// length.
	InvalidSeekTable
	// UnexpectedEOF means a frame's byte window is empty, or a prefix skip
	// exceeds the window.
	UnexpectedEOF
	// RangeCoderError is reserved for impossible decoder states; the
	// specified algorithm never raises it, since a truncated read is
	// treated as a soft EOF of zero bytes.
	RangeCoderError
	// CrcMismatch is reserved for CRC verification. Nothing in this module
	// raises it: the core never validates the CRC, and Stream.VerifyFrameCRC
	// reports a mismatch as a false result rather than as this error.
	CrcMismatch
	// IO wraps an error returned by the underlying reader or seeker.
	IO
)

func (k Kind) String() string {
	switch k {
	case InvalidMagic:
		return "invalid magic"
	case UnsupportedVersion:
		return "unsupported version"
	case UnsupportedCompressionLevel:
		return "unsupported compression level"
	case InvalidHeader:
		return "invalid header"
	case InvalidSeekTable:
		return "invalid seek table"
	case UnexpectedEOF:
		return "unexpected EOF"
	case RangeCoderError:
		return "range coder error"
	case CrcMismatch:
		return "CRC mismatch"
	case IO:
		return "I/O error"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type produced throughout the module. Cause may
// be nil; when set, it is the underlying error being wrapped (typically an
// I/O error).
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ape: %v: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("ape: %v: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns an *Error of the given kind with no wrapped cause.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error of the given kind wrapping cause. The cause is
// passed through errutil.Err first, so a plain I/O error gains the call
// site that first observed it.
func Wrap(kind Kind, cause error, message string) error {
	return &Error{Kind: kind, Message: message, Cause: errutil.Err(cause)}
}
