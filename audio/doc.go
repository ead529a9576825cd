// SPDX-License-Identifier: EPL-2.0

// Package audio defines the interfaces shared by the format decoders.
//
//   - Source: a stream of interleaved float32 samples
//   - Decoder: builds a Source from an io.Reader
//   - Registry: decoders keyed by format name
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    BitDepth() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are float32 in [-1.0, 1.0] whatever the bit depth stored in the
// file; BitDepth reports the original one.
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	source, err := registry.Decode("wav", file)
//
// Decode fails with ErrUnknownFormat when nothing is registered under the
// name. The registry is safe for concurrent use.
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // Process n samples from buf
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
