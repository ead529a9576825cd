// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/riffwave/audio"
)

type Decoder struct{}

// Decode parses the WAVE header from r and returns a Source over the "data"
// chunk. Readers that cannot seek are read fully into memory first.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, ioError(fmt.Errorf("reading wav data: %w", err))
		}
		rs = bytes.NewReader(data)
	}

	rd, err := NewReader(rs)
	if err != nil {
		return nil, err
	}

	return NewSource(rd, nil), nil
}

// NewSource wraps rd as an audio.Source. closer, when not nil, is closed by
// the source's Close.
func NewSource(rd *Reader, closer io.Closer) audio.Source {
	return &source{
		r:          rd,
		sampleRate: int(rd.PCMFormat.SampleRate),
		channels:   int(rd.PCMFormat.NumChannels),
		bitDepth:   int(rd.PCMFormat.BitsPerSample),
		closer:     closer,
	}
}
