// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
)

var (
	ErrNotRiffFile         = errors.New("not a RIFF file")
	ErrNotWaveFile         = errors.New("not a WAVE file")
	ErrNotUncompressedPCM  = errors.New("not an uncompressed PCM wave file")
	ErrFmtChunkTooShort    = errors.New("fmt chunk is too short")
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
)

// FormatErrorKind identifies which RIFF/WAVE/PCM expectation was violated.
type FormatErrorKind int

const (
	// NotARiffFile: the stream does not start with a "RIFF" tag.
	NotARiffFile FormatErrorKind = iota + 1
	// NotAWaveFile: the RIFF header is not followed by "WAVE".
	NotAWaveFile
	// NotAnUncompressedPCMFile: the format or sub-format code is not PCM.
	NotAnUncompressedPCMFile
	// FmtChunkTooShort: the "fmt " chunk cannot hold the fields its format needs.
	FmtChunkTooShort
)

func (k FormatErrorKind) sentinel() error {
	switch k {
	case NotARiffFile:
		return ErrNotRiffFile
	case NotAWaveFile:
		return ErrNotWaveFile
	case NotAnUncompressedPCMFile:
		return ErrNotUncompressedPCM
	case FmtChunkTooShort:
		return ErrFmtChunkTooShort
	}

	return nil
}

func (k FormatErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}

	return fmt.Sprintf("FormatErrorKind(%d)", int(k))
}

// FormatError reports bytes that were read fine but are not a supported
// RIFF/WAVE PCM header. Code holds the offending format code for
// NotAnUncompressedPCMFile and is zero otherwise.
type FormatError struct {
	Kind FormatErrorKind
	Code uint16
}

func (e *FormatError) Error() string {
	if e.Kind == NotAnUncompressedPCMFile {
		return fmt.Sprintf("format error: %s (format code %d)", e.Kind, e.Code)
	}

	return "format error: " + e.Kind.String()
}

// Unwrap exposes the sentinel matching Kind, so errors.Is(err, ErrNotWaveFile)
// works without a type assertion.
func (e *FormatError) Unwrap() error {
	return e.Kind.sentinel()
}

// IOError reports a failed read or seek on the underlying stream, including
// short reads and end of stream.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return "io error: " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func formatError(kind FormatErrorKind) error {
	return &FormatError{Kind: kind}
}

func ioError(err error) error {
	if err == nil {
		return nil
	}

	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return err
	}

	return &IOError{Err: err}
}
