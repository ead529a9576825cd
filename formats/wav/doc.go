// SPDX-License-Identifier: EPL-2.0

// Package wav validates and parses RIFF/WAVE headers of uncompressed PCM
// files.
//
// The package is built from small pieces that are used in a fixed order:
//
//	wav.ValidateRiffFile(rs)               // "RIFF" + outer size (not checked)
//	wav.ValidateWaveFile(rs)               // "WAVE"
//	size, _ := wav.SkipUntilSubchunk(rs, wav.FmtTag)
//	format, _ := wav.ValidatePCMFormat(code)
//	wav.ValidateFmtChunkSize(size, 16)
//
// ReadPCMFormat and NewReader run that sequence for you:
//
//	file, _ := os.Open("audio.wav")
//	reader, err := wav.NewReader(file)
//	if err != nil {
//	    // Handle error
//	}
//	fmt.Println(reader.PCMFormat.NumChannels, reader.PCMFormat.SampleRate)
//
// # Supported Formats
//
//   - Format code 1 (canonical PCM, fmt chunk of at least 16 bytes)
//   - Format code 65534 (WAVE_FORMAT_EXTENSIBLE, fmt chunk of at least 40
//     bytes) whose sub-format is PCM
//   - 8, 16, 24 and 32 bit samples for sample reads
//
// Compressed formats are rejected, including an extensible header whose
// sub-format is itself 65534.
//
// # Chunk Scanning
//
// SkipUntilSubchunk reads tag and size pairs and seeks over every subchunk
// that is not the one asked for, so vendor chunks such as LIST or bext are
// skipped without being understood. Scanning only moves forward: a subchunk
// located before the current position is never found. Files that store
// "data" before "fmt " are therefore rejected by NewReader.
//
// # Error Handling
//
// Every error returned by the scanner and validators is either a
// *FormatError or an *IOError:
//
//	var fe *wav.FormatError
//	var ioe *wav.IOError
//	switch {
//	case errors.As(err, &fe):
//	    fmt.Println("bad header:", fe.Kind, fe.Code)
//	case errors.As(err, &ioe):
//	    fmt.Println("read failed:", ioe.Err)
//	}
//
// FormatError also unwraps to one of ErrNotRiffFile, ErrNotWaveFile,
// ErrNotUncompressedPCM or ErrFmtChunkTooShort for use with errors.Is.
// After any error the stream position is unspecified.
//
// # Decoding Samples
//
// Decoder implements audio.Decoder and returns float32 samples in
// [-1.0, 1.0]:
//
//	source, err := wav.Decoder{}.Decode(file)
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
package wav
