// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// # Supported Formats
//
// Currently supported:
//   - PCM 16 and 24 bit, big-endian as AIFF stores it
//   - Any channel count
//   - Any sample rate
//
// Compressed AIFF-C variants and 8 or 32 bit PCM are rejected. There is no
// encoder; use package wav to write results.
//
// # Decoding AIFF Files
//
// Use the Decoder to open a file:
//
//	f, err := os.Open("loop.aiff")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src, err := aiff.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	// Read interleaved samples
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// Samples are float32 in [-1, 1]. Reads always end on a whole frame, and a
// short read without an error reports io.EOF.
//
// The source implements audio.FrameCounter with the frame count from the
// COMM chunk, so decoding a whole file allocates once:
//
//	buf, err := audio.ReadAll(src)
//
// # Converting to WAV
//
//	src, err := aiff.Decoder{}.Decode(in)
//	if err != nil {
//	    return err
//	}
//	buf, err := audio.ReadAll(src)
//	if err != nil {
//	    return err
//	}
//	err = wav.Write(out, buf, 16)
//
// # Error Handling
//
// The package defines these sentinel errors:
//   - ErrNotAiffFile: the input has no FORM/AIFF header
//   - ErrUnsupportedBitDepth: a sample size other than 16 or 24 bits
//   - ErrUnsupportedAiffLayout: the COMM chunk reports no channels
//
// Example:
//
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    fmt.Println("Not an AIFF file")
//	}
//
// go-audio needs to seek between chunks. Inputs that are not an
// io.ReadSeeker are read into memory before decoding.
//
// # Registry
//
// formats.NewRegistry registers Decoder under "aiff" and "aif":
//
//	reg := audio.NewRegistry()
//	reg.Register("aiff", aiff.Decoder{}, "aif")
package aiff
