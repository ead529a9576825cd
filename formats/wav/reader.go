// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// Reader gives sample access to the "data" chunk of a PCM WAVE stream.
//
// The header is parsed once by NewReader; reads never go past DataSize.
// A Reader is not safe for concurrent use.
type Reader struct {
	rs io.ReadSeeker

	PCMFormat  PCMFormat
	DataSize   uint32
	DataOffset int64

	remaining int64
	buf       []byte
}

// NewReader validates the RIFF and WAVE tags, parses the "fmt " chunk and
// positions rs at the start of the "data" payload.
//
// Subchunks are searched forward only, so a file that stores "data" before
// "fmt " fails with an *IOError wrapping io.EOF.
func NewReader(rs io.ReadSeeker) (*Reader, error) {
	if err := ValidateRiffFile(rs); err != nil {
		return nil, err
	}

	if err := ValidateWaveFile(rs); err != nil {
		return nil, err
	}

	pcm, err := ReadPCMFormat(rs)
	if err != nil {
		return nil, err
	}

	size, err := SkipUntilSubchunk(rs, DataTag)
	if err != nil {
		return nil, err
	}

	offset, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, ioError(err)
	}

	return &Reader{
		rs:         rs,
		PCMFormat:  pcm,
		DataSize:   size,
		DataOffset: offset,
		remaining:  int64(size),
	}, nil
}

// Format returns the go-audio description of the stream.
func (r *Reader) Format() *goaudio.Format {
	return r.PCMFormat.AudioFormat()
}

// Remaining is the number of unread bytes in the "data" chunk.
func (r *Reader) Remaining() int64 {
	return r.remaining
}

// Rewind moves back to the first sample.
func (r *Reader) Rewind() error {
	if _, err := r.rs.Seek(r.DataOffset, io.SeekStart); err != nil {
		return ioError(err)
	}

	r.remaining = int64(r.DataSize)

	return nil
}

func (r *Reader) next(n int) ([]byte, error) {
	if r.remaining < int64(n) {
		return nil, io.EOF
	}

	if cap(r.buf) < n {
		r.buf = make([]byte, n)
	}
	b := r.buf[:n]

	read, err := io.ReadFull(r.rs, b)
	r.remaining -= int64(read)
	if err != nil {
		return nil, ioError(err)
	}

	return b, nil
}

// ReadSampleU8 reads one unsigned 8-bit sample.
func (r *Reader) ReadSampleU8() (uint8, error) {
	b, err := r.next(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// ReadSampleI16 reads one signed 16-bit little-endian sample.
func (r *Reader) ReadSampleI16() (int16, error) {
	b, err := r.next(2)
	if err != nil {
		return 0, err
	}

	return int16(binary.LittleEndian.Uint16(b)), nil
}

// ReadSampleI24 reads one packed 24-bit little-endian sample, sign extended.
func (r *Reader) ReadSampleI24() (int32, error) {
	b, err := r.next(3)
	if err != nil {
		return 0, err
	}

	return int24(b), nil
}

// ReadSampleI32 reads one signed 32-bit little-endian sample.
func (r *Reader) ReadSampleI32() (int32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}

	return int32(binary.LittleEndian.Uint32(b)), nil
}

// PCMBuffer fills buf.Data with interleaved samples and returns how many were
// written. 8-bit samples are shifted to the signed range. It returns 0 and
// io.EOF once the "data" chunk is exhausted.
func (r *Reader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if buf == nil {
		return 0, nil
	}

	bits := int(r.PCMFormat.BitsPerSample)
	switch bits {
	case 8, 16, 24, 32:
	default:
		return 0, fmt.Errorf("%d bits: %w", bits, ErrUnsupportedBitDepth)
	}

	if buf.Format == nil {
		buf.Format = r.Format()
	}
	buf.SourceBitDepth = bits

	width := bits / 8
	count := min(len(buf.Data), int(r.remaining/int64(width)))
	if count == 0 {
		if len(buf.Data) == 0 {
			return 0, nil
		}

		return 0, io.EOF
	}

	b, err := r.next(count * width)
	if err != nil {
		return 0, err
	}

	for i := range count {
		s := b[i*width : (i+1)*width]
		switch width {
		case 1:
			buf.Data[i] = int(s[0]) - 128
		case 2:
			buf.Data[i] = int(int16(binary.LittleEndian.Uint16(s)))
		case 3:
			buf.Data[i] = int(int24(s))
		case 4:
			buf.Data[i] = int(int32(binary.LittleEndian.Uint32(s)))
		}
	}

	return count, nil
}

func int24(b []byte) int32 {
	v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	if v&0x800000 != 0 {
		v |= ^0xFFFFFF
	}

	return v
}
