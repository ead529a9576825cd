// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"io"

	"github.com/go-audio/riff"
)

// Tag is a four byte chunk identifier, compared byte for byte.
type Tag = [4]byte

var (
	RiffTag Tag = riff.RiffID
	WaveTag Tag = riff.WavFormatID
	FmtTag  Tag = riff.FmtID
	DataTag Tag = riff.DataFormatID
)

// ReadTag reads exactly four bytes from r.
func ReadTag(r io.Reader) (Tag, error) {
	var tag Tag
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return tag, ioError(err)
	}

	return tag, nil
}

// ReadChunkSize reads a little-endian uint32 chunk size from r.
func ReadChunkSize(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, ioError(err)
	}

	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ValidateRiffFile checks the "RIFF" tag and skips the outer chunk size.
//
// The outer size is not checked against the stream length, so files with a
// wrong top-level size can still be read.
func ValidateRiffFile(r io.Reader) error {
	if err := validateTag(r, RiffTag, NotARiffFile); err != nil {
		return err
	}

	if _, err := ReadChunkSize(r); err != nil {
		return err
	}

	return nil
}

// ValidateWaveFile checks the "WAVE" form type that follows the RIFF header.
// No size follows this tag.
func ValidateWaveFile(r io.Reader) error {
	return validateTag(r, WaveTag, NotAWaveFile)
}

func validateTag(r io.Reader, expected Tag, kind FormatErrorKind) error {
	tag, err := ReadTag(r)
	if err != nil {
		return err
	}

	if tag != expected {
		return formatError(kind)
	}

	return nil
}

// SkipUntilSubchunk walks subchunk headers from the current position until it
// finds tag, and returns that subchunk's declared size. The payload of the
// matching subchunk is not consumed: on success rs is positioned right after
// its size field.
//
// Every other subchunk is skipped by seeking over its declared size; odd sizes
// are not padded. Scanning only moves forward, so subchunks located before the
// current position are never found. The loop ends when the tag is found or a
// read or seek fails, which at end of stream is an *IOError wrapping io.EOF.
func SkipUntilSubchunk(rs io.ReadSeeker, tag Tag) (uint32, error) {
	for {
		current, err := ReadTag(rs)
		if err != nil {
			return 0, err
		}

		size, err := ReadChunkSize(rs)
		if err != nil {
			return 0, err
		}

		if current == tag {
			return size, nil
		}

		if _, err := rs.Seek(int64(size), io.SeekCurrent); err != nil {
			return 0, ioError(err)
		}
	}
}
