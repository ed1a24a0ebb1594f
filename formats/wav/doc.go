// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files through github.com/go-audio/wav.
//
// # Supported Formats
//
// Decoding accepts:
//   - Integer PCM at 16, 24 or 32 bits
//   - Any channel count (audio.ReadAll folds it to stereo)
//   - Any sample rate
//
// Writing always produces stereo integer PCM at 16, 24 or 32 bits.
// Floating-point WAV and 8 bit unsigned PCM are rejected.
//
// # Decoding WAV Files
//
// Decoder returns an audio.Source whose samples are float32 in [-1, 1]:
//
//	f, err := os.Open("take.wav")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//
//	// Read interleaved samples
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// The source also implements audio.FrameCounter with the length announced
// by the data chunk, so audio.ReadAll sizes its buffer once:
//
//	buf, err := audio.ReadAll(src)
//
// go-audio needs to seek over chunks. Inputs that are not an io.ReadSeeker
// are read into memory first.
//
// # Writing WAV Files
//
// Write renders a stereo audio.Buffer, typically the output of a tempo or
// pitch change, back to disk:
//
//	out, err := os.Create("slow.wav")
//	if err != nil {
//	    return err
//	}
//	defer out.Close()
//
//	if err := wav.Write(out, rendered, 16); err != nil {
//	    return err
//	}
//
// Samples outside [-1, 1] are clipped. The header sizes are patched once all
// frames are written, hence the io.WriteSeeker. Conversion runs in chunks of
// 8192 frames so large buffers do not need a second full-size copy.
//
// # Error Handling
//
// The package defines these sentinel errors:
//   - ErrNotWavFile: the input has no RIFF/WAVE header
//   - ErrUnsupportedWavLayout: the fmt chunk is missing or incomplete
//   - ErrOnlyPCMSupported: the audio format is not integer PCM
//   - ErrUnsupportedBitDepth: a bit depth other than 16, 24 or 32
//   - ErrUnsupportedWavChunks: no data chunk could be found
//
// Wrapped errors keep the go-audio cause, so test with errors.Is:
//
//	src, err := wav.Decoder{}.Decode(f)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    fmt.Println("Not a WAV file")
//	}
//
// # Registry
//
// formats.NewRegistry registers Decoder under "wav" and "wave". To build a
// registry by hand:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{}, "wave")
package wav
