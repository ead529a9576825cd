// SPDX-License-Identifier: EPL-2.0

package wavtest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// Builder assembles a RIFF/WAVE byte stream chunk by chunk.
// The outer RIFF size is computed from the chunks unless RiffSize is set.
type Builder struct {
	body     bytes.Buffer
	form     string
	riffSize *uint32
}

// New starts a "WAVE" form.
func New() *Builder {
	return &Builder{form: "WAVE"}
}

// Form replaces the four byte form type written after the RIFF header.
func (b *Builder) Form(form string) *Builder {
	b.form = form
	return b
}

// RiffSize forces the outer chunk size field.
func (b *Builder) RiffSize(size uint32) *Builder {
	b.riffSize = &size
	return b
}

// Chunk appends a subchunk with a size field equal to len(payload).
func (b *Builder) Chunk(tag string, payload []byte) *Builder {
	return b.ChunkWithSize(tag, uint32(len(payload)), payload)
}

// ChunkWithSize appends a subchunk whose declared size may differ from the
// payload actually written.
func (b *Builder) ChunkWithSize(tag string, size uint32, payload []byte) *Builder {
	b.body.WriteString(tag)
	binary.Write(&b.body, binary.LittleEndian, size)
	b.body.Write(payload)
	return b
}

// Fmt appends a canonical 16 byte PCM "fmt " chunk.
func (b *Builder) Fmt(channels, sampleRate, bitsPerSample int) *Builder {
	return b.Chunk("fmt ", FmtPayload(1, channels, sampleRate, bitsPerSample))
}

// ExtensibleFmt appends a 40 byte WAVE_FORMAT_EXTENSIBLE "fmt " chunk.
func (b *Builder) ExtensibleFmt(channels, sampleRate, bitsPerSample int, subFormat uint16) *Builder {
	return b.Chunk("fmt ", ExtensibleFmtPayload(channels, sampleRate, bitsPerSample, subFormat))
}

// Data appends a "data" chunk.
func (b *Builder) Data(payload []byte) *Builder {
	return b.Chunk("data", payload)
}

// Bytes returns the complete stream.
func (b *Builder) Bytes() []byte {
	out := new(bytes.Buffer)
	size := uint32(4 + b.body.Len())
	if b.riffSize != nil {
		size = *b.riffSize
	}

	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, size)
	out.WriteString(b.form)
	out.Write(b.body.Bytes())

	return out.Bytes()
}

// Reader returns the stream as a bytes.Reader.
func (b *Builder) Reader() *bytes.Reader {
	return bytes.NewReader(b.Bytes())
}

// FmtPayload builds the 16 canonical "fmt " bytes for an arbitrary format code.
func FmtPayload(code uint16, channels, sampleRate, bitsPerSample int) []byte {
	blockAlign := channels * ((bitsPerSample + 7) / 8)

	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, code)
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*blockAlign)) // byte rate
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	return buf.Bytes()
}

// ExtensibleFmtPayload builds a 40 byte extensible "fmt " payload with the
// KSDATAFORMAT GUID tail after subFormat.
func ExtensibleFmtPayload(channels, sampleRate, bitsPerSample int, subFormat uint16) []byte {
	buf := bytes.NewBuffer(FmtPayload(65534, channels, sampleRate, bitsPerSample))
	binary.Write(buf, binary.LittleEndian, uint16(22)) // cbSize
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))
	binary.Write(buf, binary.LittleEndian, channelMask(channels))
	binary.Write(buf, binary.LittleEndian, subFormat)
	buf.Write([]byte{
		0x00, 0x00, 0x00, 0x00, 0x10, 0x00,
		0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71,
	})

	return buf.Bytes()
}

func channelMask(channels int) uint32 {
	if channels >= 32 {
		return 0xFFFFFFFF
	}
	return uint32(1)<<channels - 1
}

// PCM16 encodes samples as little-endian 16-bit PCM.
func PCM16(samples ...int16) []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, samples)
	return buf.Bytes()
}

// EncodeFile writes samples with go-audio's WAV encoder into a file under
// tb.TempDir and returns its path.
func EncodeFile(tb testing.TB, sampleRate, bitDepth, channels int, samples []int) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "encoded.wav")
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	enc := gowav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		tb.Fatalf("encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		tb.Fatalf("close encoder: %v", err)
	}

	return path
}
