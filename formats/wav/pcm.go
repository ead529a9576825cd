// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

// PCMFormat is the content of a validated "fmt " chunk.
type PCMFormat struct {
	Format        Format
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16

	// Extension is set only for the Extended layout.
	Extension *Extension
}

// Extension holds the WAVE_FORMAT_EXTENSIBLE fields that follow the
// canonical ones.
type Extension struct {
	ValidBitsPerSample uint16
	ChannelMask        uint32
	SubFormat          uint16
}

// AudioFormat converts the header to a go-audio format description.
func (f PCMFormat) AudioFormat() *goaudio.Format {
	return &goaudio.Format{
		NumChannels: int(f.NumChannels),
		SampleRate:  int(f.SampleRate),
	}
}

// BytesPerSample is the storage size of one sample of one channel.
func (f PCMFormat) BytesPerSample() int {
	return (int(f.BitsPerSample) + 7) / 8
}

// canonical "fmt " fields after the format code, in file order.
type fmtFields struct {
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// extension fields after cbSize, up to the first two GUID bytes.
type extFields struct {
	ValidBitsPerSample uint16
	ChannelMask        uint32
	SubFormat          uint16
}

// ReadPCMFormat finds the next "fmt " subchunk and parses it.
//
// The format code is validated first, then the declared chunk size against
// the minimum for that layout. On success rs is left at the end of the
// "fmt " chunk, whatever its declared size.
func ReadPCMFormat(rs io.ReadSeeker) (PCMFormat, error) {
	size, err := SkipUntilSubchunk(rs, FmtTag)
	if err != nil {
		return PCMFormat{}, err
	}

	// not even room for the format code
	if size < 2 {
		return PCMFormat{}, formatError(FmtChunkTooShort)
	}

	chunk := &riff.Chunk{
		ID:   FmtTag,
		Size: int(size),
		R:    io.LimitReader(rs, int64(size)),
	}

	var code uint16
	if err := chunk.ReadLE(&code); err != nil {
		return PCMFormat{}, ioError(err)
	}

	layout, err := ValidatePCMFormat(code)
	if err != nil {
		return PCMFormat{}, err
	}

	if err := ValidateFmtChunkSize(size, minFmtChunkSize(layout)); err != nil {
		return PCMFormat{}, err
	}

	var fields fmtFields
	if err := chunk.ReadLE(&fields); err != nil {
		return PCMFormat{}, ioError(err)
	}

	pcm := PCMFormat{
		Format:        layout,
		NumChannels:   fields.NumChannels,
		SampleRate:    fields.SampleRate,
		ByteRate:      fields.ByteRate,
		BlockAlign:    fields.BlockAlign,
		BitsPerSample: fields.BitsPerSample,
	}

	if layout == Extended {
		ext, err := readExtension(chunk)
		if err != nil {
			return PCMFormat{}, err
		}

		pcm.Extension = ext
	}

	if rest := chunk.Size - chunk.Pos; rest > 0 {
		if _, err := rs.Seek(int64(rest), io.SeekCurrent); err != nil {
			return PCMFormat{}, ioError(err)
		}
	}

	return pcm, nil
}

func readExtension(chunk *riff.Chunk) (*Extension, error) {
	var cbSize uint16
	if err := chunk.ReadLE(&cbSize); err != nil {
		return nil, ioError(err)
	}

	var fields extFields
	if err := chunk.ReadLE(&fields); err != nil {
		return nil, ioError(err)
	}

	if err := ValidatePCMSubformat(fields.SubFormat); err != nil {
		return nil, err
	}

	return &Extension{
		ValidBitsPerSample: fields.ValidBitsPerSample,
		ChannelMask:        fields.ChannelMask,
		SubFormat:          fields.SubFormat,
	}, nil
}
