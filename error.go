package ape

import "github.com/mewkiz/ape/apeerr"

// Kind classifies an Error independent of its message text.
type Kind = apeerr.Kind

// Error is returned by every operation in this package that can fail.
type Error = apeerr.Error

// Error kinds, re-exported from apeerr so callers never import it directly.
const (
	InvalidMagic                = apeerr.InvalidMagic
	UnsupportedVersion           = apeerr.UnsupportedVersion
	UnsupportedCompressionLevel = apeerr.UnsupportedCompressionLevel
	InvalidHeader                = apeerr.InvalidHeader
	InvalidSeekTable             = apeerr.InvalidSeekTable
	UnexpectedEOF                = apeerr.UnexpectedEOF
	RangeCoderError              = apeerr.RangeCoderError
	CrcMismatch                  = apeerr.CrcMismatch
	IO                           = apeerr.IO
)
