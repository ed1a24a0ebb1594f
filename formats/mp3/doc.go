// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III through github.com/hajimehoshi/go-mp3.
//
// # Supported Formats
//
// Anything go-mp3 accepts:
//   - MPEG-1 and MPEG-2 Layer III
//   - Constant and variable bit rates
//   - Mono and stereo streams
//
// Output is always stereo at the stream's sample rate, because go-mp3
// duplicates mono channels while decoding.
//
// # Decoding MP3 Files
//
//	f, err := os.Open("song.mp3")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	buf := make([]float32, 4096)
//	for {
//	    n, err := src.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	}
//
// Samples are converted from go-mp3's 16 bit little-endian PCM to float32
// in [-1, 1). Reads always hold whole stereo frames; a truncated frame at
// the very end of a damaged stream is dropped and reported as io.EOF.
//
// # Stream Length
//
// When the input is an io.Seeker go-mp3 scans it up front. The source then
// implements audio.FrameCounter with a non-zero length, which lets
// audio.ReadAll allocate once:
//
//	buf, err := audio.ReadAll(src)
//	fmt.Println(buf.Duration())
//
// For non-seekable inputs such as network streams Frames returns 0 and
// ReadAll grows its buffer as it goes.
//
// # Error Handling
//
// Decode fails when go-mp3 cannot find a valid frame header; the go-mp3
// error is wrapped. Errors from ReadSamples other than io.EOF come from the
// underlying reader.
//
// # Registry
//
// formats.NewRegistry registers Decoder under "mp3":
//
//	reg := audio.NewRegistry()
//	reg.Register("mp3", mp3.Decoder{})
package mp3
