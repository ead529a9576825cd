// SPDX-License-Identifier: EPL-2.0

// Package riffwave reads the header of uncompressed PCM WAVE files.
//
// It checks the RIFF/WAVE envelope, finds the "fmt " subchunk while skipping
// any unrelated subchunks, validates the PCM format code and returns the
// channel count, sample rate and bits per sample. The chunk scanner and the
// validators live in formats/wav; this package adds file level helpers.
//
// # Quick Start
//
//	file, _ := os.Open("audio.wav")
//	format, err := riffwave.ReadHeader(file)
//	if err != nil {
//	    // *wav.FormatError or *wav.IOError
//	}
//	fmt.Println(format.NumChannels, format.SampleRate, format.BitsPerSample)
//
// # Reading Samples
//
// OpenFile also locates the "data" chunk:
//
//	f, _ := riffwave.OpenFile("audio.wav")
//	defer f.Close()
//	for {
//	    s, err := f.ReadSampleI16()
//	    if err == io.EOF {
//	        break
//	    }
//	    // use s
//	}
//
// f.Source() gives the same samples as float32 through the audio.Source
// interface, and NewRegistry returns a decoder registry keyed by extension.
//
// # Supported Formats
//
// Only uncompressed PCM is accepted: format code 1, or format code 65534
// with a PCM sub-format. Everything else fails with
// wav.ErrNotUncompressedPCM.
package riffwave
