// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/riffwave/internal/wavtest"
)

func TestNewReader_StandardFile16BitMono44100(t *testing.T) {
	t.Parallel()

	data := wavtest.New().Fmt(1, 44100, 16).Data(wavtest.PCM16(0, 100, -100)).Bytes()
	rd, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}

	if rd.PCMFormat.NumChannels != 1 {
		t.Errorf("NumChannels = %d, want 1", rd.PCMFormat.NumChannels)
	}
	if rd.PCMFormat.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", rd.PCMFormat.SampleRate)
	}
	if rd.PCMFormat.BitsPerSample != 16 {
		t.Errorf("BitsPerSample = %d, want 16", rd.PCMFormat.BitsPerSample)
	}
	if rd.DataSize != 6 {
		t.Errorf("DataSize = %d, want 6", rd.DataSize)
	}
	if rd.DataOffset != 44 {
		t.Errorf("DataOffset = %d, want 44", rd.DataOffset)
	}
	if rd.Remaining() != 6 {
		t.Errorf("Remaining() = %d, want 6", rd.Remaining())
	}
}

func TestNewReader_ChunksAroundFmt(t *testing.T) {
	t.Parallel()

	data := wavtest.New().
		Chunk("JUNK", make([]byte, 28)).
		Fmt(2, 8000, 16).
		Chunk("LIST", []byte("INFOISFT\x04\x00\x00\x00go\x00\x00")).
		Chunk("fact", []byte{2, 0, 0, 0}).
		Data(wavtest.PCM16(1, 2, 3, 4)).
		Bytes()

	rd, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	if rd.PCMFormat.NumChannels != 2 || rd.DataSize != 8 {
		t.Errorf("NewReader() = %+v, data %d, want 2 ch and 8 data bytes", rd.PCMFormat, rd.DataSize)
	}

	want := []int16{1, 2, 3, 4}
	for i, w := range want {
		got, err := rd.ReadSampleI16()
		if err != nil {
			t.Fatalf("ReadSampleI16() #%d error = %v", i, err)
		}
		if got != w {
			t.Errorf("ReadSampleI16() #%d = %d, want %d", i, got, w)
		}
	}
}

func TestNewReader_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not riff", []byte("JPEG\x00\x00\x00\x00WAVE"), ErrNotRiffFile},
		{"not wave", wavtest.New().Form("AVI ").Fmt(1, 8000, 16).Bytes(), ErrNotWaveFile},
		{"compressed", wavtest.New().Chunk("fmt ", wavtest.FmtPayload(2, 1, 8000, 4)).Bytes(), ErrNotUncompressedPCM},
		{"short fmt", wavtest.New().Chunk("fmt ", wavtest.FmtPayload(1, 1, 8000, 16)[:12]).Bytes(), ErrFmtChunkTooShort},
		{"data before fmt", wavtest.New().Data(wavtest.PCM16(1)).Fmt(1, 8000, 16).Bytes(), io.EOF},
		{"no data", wavtest.New().Fmt(1, 8000, 16).Bytes(), io.EOF},
		{"truncated", []byte("RIFF\x24"), io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rd, err := NewReader(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewReader() error = %v, want %v", err, tt.want)
			}
			if rd != nil {
				t.Error("NewReader() returned a reader along with an error")
			}
		})
	}
}

func TestReader_ReadSamples(t *testing.T) {
	t.Parallel()

	payload := []byte{
		0x80,             // u8 128
		0x34, 0x12,       // i16 0x1234
		0xFF, 0xFF, 0xFF, // i24 -1
		0x00, 0x00, 0x80, // i24 -8388608
		0x78, 0x56, 0x34, 0x12, // i32 0x12345678
	}
	data := wavtest.New().Fmt(1, 8000, 8).Data(payload).Bytes()

	rd, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}

	u8, err := rd.ReadSampleU8()
	if err != nil || u8 != 128 {
		t.Errorf("ReadSampleU8() = %d, %v, want 128, nil", u8, err)
	}

	i16, err := rd.ReadSampleI16()
	if err != nil || i16 != 0x1234 {
		t.Errorf("ReadSampleI16() = %#x, %v, want 0x1234, nil", i16, err)
	}

	i24, err := rd.ReadSampleI24()
	if err != nil || i24 != -1 {
		t.Errorf("ReadSampleI24() = %d, %v, want -1, nil", i24, err)
	}

	i24, err = rd.ReadSampleI24()
	if err != nil || i24 != -8388608 {
		t.Errorf("ReadSampleI24() = %d, %v, want -8388608, nil", i24, err)
	}

	i32, err := rd.ReadSampleI32()
	if err != nil || i32 != 0x12345678 {
		t.Errorf("ReadSampleI32() = %#x, %v, want 0x12345678, nil", i32, err)
	}

	if _, err := rd.ReadSampleU8(); err != io.EOF {
		t.Errorf("ReadSampleU8() at end error = %v, want io.EOF", err)
	}
}

func TestReader_StopsAtDataChunkEnd(t *testing.T) {
	t.Parallel()

	// a chunk after "data" must not be read as samples
	data := wavtest.New().Fmt(1, 8000, 16).Data(wavtest.PCM16(7)).Chunk("LIST", []byte("abcd")).Bytes()
	rd, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}

	if s, err := rd.ReadSampleI16(); err != nil || s != 7 {
		t.Fatalf("ReadSampleI16() = %d, %v, want 7, nil", s, err)
	}
	if _, err := rd.ReadSampleI16(); err != io.EOF {
		t.Errorf("ReadSampleI16() error = %v, want io.EOF", err)
	}
}

func TestReader_DataSizeBeyondStream(t *testing.T) {
	t.Parallel()

	data := wavtest.New().Fmt(1, 8000, 16).ChunkWithSize("data", 8, wavtest.PCM16(1)).Bytes()
	rd, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}

	if _, err := rd.ReadSampleI16(); err != nil {
		t.Fatalf("ReadSampleI16() error = %v", err)
	}

	_, err = rd.ReadSampleI16()
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("ReadSampleI16() error = %v, want *IOError", err)
	}
}

func TestReader_Rewind(t *testing.T) {
	t.Parallel()

	data := wavtest.New().Fmt(1, 8000, 16).Data(wavtest.PCM16(10, 20)).Bytes()
	rd, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}

	for range 2 {
		if _, err := rd.ReadSampleI16(); err != nil {
			t.Fatalf("ReadSampleI16() error = %v", err)
		}
	}
	if rd.Remaining() != 0 {
		t.Fatalf("Remaining() = %d, want 0", rd.Remaining())
	}

	if err := rd.Rewind(); err != nil {
		t.Fatalf("Rewind() error = %v", err)
	}
	if rd.Remaining() != 4 {
		t.Errorf("Remaining() after Rewind = %d, want 4", rd.Remaining())
	}
	if s, err := rd.ReadSampleI16(); err != nil || s != 10 {
		t.Errorf("ReadSampleI16() after Rewind = %d, %v, want 10, nil", s, err)
	}
}

func TestReader_PCMBuffer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		bits    int
		payload []byte
		want    []int
	}{
		{"8 bit", 8, []byte{0x00, 0x80, 0xFF}, []int{-128, 0, 127}},
		{"16 bit", 16, wavtest.PCM16(-32768, 0, 32767), []int{-32768, 0, 32767}},
		{"24 bit", 24, []byte{0x00, 0x00, 0x80, 0x01, 0x00, 0x00, 0xFF, 0xFF, 0x7F}, []int{-8388608, 1, 8388607}},
		{"32 bit", 32, []byte{0x00, 0x00, 0x00, 0x80, 0xFF, 0xFF, 0xFF, 0xFF, 0x02, 0x00, 0x00, 0x00}, []int{-2147483648, -1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := wavtest.New().Fmt(1, 8000, tt.bits).Data(tt.payload).Bytes()
			rd, err := NewReader(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("NewReader() error = %v", err)
			}

			buf := &goaudio.IntBuffer{Data: make([]int, 8)}
			n, err := rd.PCMBuffer(buf)
			if err != nil {
				t.Fatalf("PCMBuffer() error = %v", err)
			}
			if n != len(tt.want) {
				t.Fatalf("PCMBuffer() n = %d, want %d", n, len(tt.want))
			}
			for i, w := range tt.want {
				if buf.Data[i] != w {
					t.Errorf("Data[%d] = %d, want %d", i, buf.Data[i], w)
				}
			}
			if buf.SourceBitDepth != tt.bits {
				t.Errorf("SourceBitDepth = %d, want %d", buf.SourceBitDepth, tt.bits)
			}
			if buf.Format == nil || buf.Format.SampleRate != 8000 {
				t.Errorf("Format = %+v, want 8000 Hz", buf.Format)
			}

			n, err = rd.PCMBuffer(buf)
			if n != 0 || err != io.EOF {
				t.Errorf("PCMBuffer() at end = %d, %v, want 0, io.EOF", n, err)
			}
		})
	}
}

func TestReader_PCMBuffer_PartialFrame(t *testing.T) {
	t.Parallel()

	// 16-bit data with a dangling odd byte
	data := wavtest.New().Fmt(1, 8000, 16).Data([]byte{0x01, 0x00, 0x02}).Bytes()
	rd, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}

	buf := &goaudio.IntBuffer{Data: make([]int, 4)}
	if n, err := rd.PCMBuffer(buf); n != 1 || err != nil {
		t.Errorf("PCMBuffer() = %d, %v, want 1, nil", n, err)
	}
	if n, err := rd.PCMBuffer(buf); n != 0 || err != io.EOF {
		t.Errorf("PCMBuffer() = %d, %v, want 0, io.EOF", n, err)
	}
}

func TestReader_PCMBuffer_UnsupportedBitDepth(t *testing.T) {
	t.Parallel()

	data := wavtest.New().Fmt(1, 8000, 12).Data([]byte{0, 0}).Bytes()
	rd, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader() error = %v, 12 bit headers should parse", err)
	}

	_, err = rd.PCMBuffer(&goaudio.IntBuffer{Data: make([]int, 1)})
	if !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("PCMBuffer() error = %v, want ErrUnsupportedBitDepth", err)
	}
}

func TestReader_GoAudioEncodedSamples(t *testing.T) {
	t.Parallel()

	samples := []int{0, 1000, -1000, 32767, -32768, 12, -12, 5}
	path := wavtest.EncodeFile(t, 16000, 16, 2, samples)

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rd, err := NewReader(f)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}

	buf := &goaudio.IntBuffer{Data: make([]int, len(samples))}
	n, err := rd.PCMBuffer(buf)
	if err != nil {
		t.Fatalf("PCMBuffer() error = %v", err)
	}
	if n != len(samples) {
		t.Fatalf("PCMBuffer() n = %d, want %d", n, len(samples))
	}
	for i, s := range samples {
		if buf.Data[i] != s {
			t.Errorf("Data[%d] = %d, want %d", i, buf.Data[i], s)
		}
	}
}

func BenchmarkNewReader(b *testing.B) {
	data := wavtest.New().
		Chunk("LIST", make([]byte, 64)).
		Fmt(2, 44100, 16).
		Data(make([]byte, 4096)).
		Bytes()

	b.ReportAllocs()
	for b.Loop() {
		_, _ = NewReader(bytes.NewReader(data))
	}
}
