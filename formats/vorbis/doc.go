// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis through github.com/jfreymuth/oggvorbis.
//
// # Supported Formats
//
// Currently supported:
//   - Vorbis I in an Ogg container
//   - Any channel count
//   - Any sample rate
//
// Opus and FLAC inside Ogg are not decoded.
//
// # Decoding Ogg Files
//
//	f, err := os.Open("voice.ogg")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	fmt.Printf("%d Hz, %d channels\n", src.SampleRate(), src.Channels())
//
// Samples arrive interleaved with the stream's own channel count, already
// as float32 in [-1, 1]. oggvorbis decodes straight into the caller's
// slice, so reads are trimmed to whole frames and no copy is made.
//
// # Getting Stereo
//
// The rest of the module works on stereo. audio.ReadAll wraps the source in
// an audio.StereoMixer, which duplicates mono and folds wider layouts down
// to two channels:
//
//	buf, err := audio.ReadAll(src)
//	if err != nil {
//	    return err
//	}
//	// buf.Samples is interleaved L/R
//
// # Stream Length
//
// Frames reports the per-channel length. oggvorbis only knows it when the
// input can seek to the last page; otherwise it is 0 and ReadAll grows its
// buffer as it goes.
//
// # Error Handling
//
// Decode wraps header failures as "opening vorbis stream: ...", and
// ReadSamples wraps decode failures as "reading vorbis: ...". io.EOF is
// returned unwrapped at the end of the stream:
//
//	n, err := src.ReadSamples(buf)
//	if err != nil && !errors.Is(err, io.EOF) {
//	    return err
//	}
//
// # Registry
//
// formats.NewRegistry registers Decoder under "ogg" and "oga":
//
//	reg := audio.NewRegistry()
//	reg.Register("ogg", vorbis.Decoder{}, "oga")
package vorbis
