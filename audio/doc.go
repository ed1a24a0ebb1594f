// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decode-side building blocks of the player.
//
//   - Source is the pull interface every decoder implements.
//   - Registry maps file formats to decoders.
//   - StereoMixer adapts any channel layout to stereo.
//   - Buffer holds a fully decoded stereo signal; ReadAll builds one from a
//     Source.
//   - Resample converts a Buffer to another sample rate.
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0], interleaved by frame. A Buffer is
// always stereo: frame i occupies Samples[2i] (left) and Samples[2i+1]
// (right).
//
// # Decoding a File
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	registry.Register("mp3", mp3.Decoder{})
//
//	dec, err := registry.Lookup("song.mp3")
//	if err != nil {
//	    return err
//	}
//	src, err := dec.Decode(file)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	buf, err := audio.ReadAll(src)
//
// # Error Handling
//
// Sources return io.EOF once no more data is available, possibly together
// with the final samples. ReadAll treats io.EOF as the normal end and
// reports any other error wrapped.
package audio
