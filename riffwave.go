// SPDX-License-Identifier: EPL-2.0

package riffwave

import (
	"fmt"
	"io"
	"os"

	"github.com/ik5/riffwave/audio"
	"github.com/ik5/riffwave/formats/wav"
)

// ReadHeader validates the RIFF envelope and the WAVE tag of r and parses
// the first "fmt " subchunk. The "data" chunk is not looked for, and r is
// left at the end of the "fmt " chunk.
func ReadHeader(r io.ReadSeeker) (wav.PCMFormat, error) {
	if err := wav.ValidateRiffFile(r); err != nil {
		return wav.PCMFormat{}, err
	}

	if err := wav.ValidateWaveFile(r); err != nil {
		return wav.PCMFormat{}, err
	}

	return wav.ReadPCMFormat(r)
}

// File is a WAVE file opened for sample reading.
type File struct {
	*wav.Reader

	f *os.File
}

// OpenFile opens name and parses its header. Failing to open the file is
// reported as a *wav.IOError, like every other read failure.
func OpenFile(name string) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, &wav.IOError{Err: err}
	}

	rd, err := wav.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return &File{Reader: rd, f: f}, nil
}

// Source returns the file as an audio.Source. Closing the source closes
// the file.
func (f *File) Source() audio.Source {
	return wav.NewSource(f.Reader, f.f)
}

func (f *File) Close() error {
	if err := f.f.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// NewRegistry returns an audio.Registry with the WAVE decoder registered
// under "wav" and "wave".
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})

	return reg
}
