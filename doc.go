// SPDX-License-Identifier: EPL-2.0

// Package audtempo changes the tempo, playback rate and pitch of audio.
//
// The signal path lives in sub-packages:
//   - audio: the Source pull interface, decoded stereo Buffers, channel
//     mixing and offline resampling
//   - formats/wav, formats/mp3, formats/vorbis, formats/aiff: decoders
//     producing an audio.Source; formats/wav also writes WAV files
//   - soundtouch: the real-time pipeline (rate transposer, WSOLA time
//     stretcher, parameter controls and the pull Filter)
//   - worklet: drives a pipeline from a hardware audio callback with
//     message-based loading and seeking
//   - measure: FFT frequency analysis
//
// This package holds the offline entry points. RenderBuffer runs a decoded
// buffer through a fresh pipeline; Render decodes a Source first.
//
//	f, _ := os.Open("song.mp3")
//	src, _ := mp3.Decoder{}.Decode(f)
//
//	out, err := audtempo.Render(src, audtempo.Settings{
//		Tempo:          0.8,
//		PitchSemitones: -2,
//	})
//	if err != nil {
//		return err
//	}
//	err = wav.Write(w, out, 16)
//
// # Parameters
//
// Tempo changes speed without changing pitch, Rate changes both like a
// tape played faster or slower, and pitch changes pitch without changing
// speed. Pitch is applied as a rate change combined with the inverse tempo
// change, so the three compose multiplicatively.
package audtempo
