// SPDX-License-Identifier: EPL-2.0

package wav

// Format is the layout of a PCM "fmt " chunk.
type Format int

const (
	// UncompressedPCM is the canonical 16 byte PCM layout.
	UncompressedPCM Format = iota + 1
	// Extended is WAVE_FORMAT_EXTENSIBLE; the real format is the sub-format
	// code stored in the extension.
	Extended
)

func (f Format) String() string {
	switch f {
	case UncompressedPCM:
		return "uncompressed PCM"
	case Extended:
		return "extended"
	}

	return "unknown"
}

const (
	FormatCodeUncompressedPCM uint16 = 1
	FormatCodeExtended        uint16 = 65534
)

const (
	// MinFmtChunkSize covers format code, channels, sample rate, byte rate,
	// block align and bits per sample.
	MinFmtChunkSize uint32 = 16
	// MinExtendedFmtChunkSize adds cbSize, valid bits, channel mask and the
	// 16 byte sub-format GUID.
	MinExtendedFmtChunkSize uint32 = 40
)

// ValidatePCMFormat maps the top-level format code of a "fmt " chunk to its
// layout.
func ValidatePCMFormat(code uint16) (Format, error) {
	switch code {
	case FormatCodeUncompressedPCM:
		return UncompressedPCM, nil
	case FormatCodeExtended:
		return Extended, nil
	}

	return 0, &FormatError{Kind: NotAnUncompressedPCMFile, Code: code}
}

// ValidatePCMSubformat accepts only uncompressed PCM. A sub-format of
// FormatCodeExtended is rejected as well.
func ValidatePCMSubformat(code uint16) error {
	if code != FormatCodeUncompressedPCM {
		return &FormatError{Kind: NotAnUncompressedPCMFile, Code: code}
	}

	return nil
}

// ValidateFmtChunkSize fails when the declared "fmt " size is smaller than
// minSize. Larger chunks are fine; the extra bytes are skipped.
func ValidateFmtChunkSize(size, minSize uint32) error {
	if size < minSize {
		return formatError(FmtChunkTooShort)
	}

	return nil
}

func minFmtChunkSize(f Format) uint32 {
	if f == Extended {
		return MinExtendedFmtChunkSize
	}

	return MinFmtChunkSize
}
