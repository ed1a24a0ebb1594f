// SPDX-License-Identifier: EPL-2.0

// Package soundtouch implements real-time tempo, pitch and playback-rate
// modification of interleaved stereo audio.
//
// The pipeline is built from two stages that each read one FIFO and write
// another:
//
//   - RateTransposer resamples by linear interpolation, changing duration
//     and pitch together.
//   - Stretch changes duration only, splicing fixed-length sequences at the
//     best-correlated offset (WSOLA) and cross-fading over the overlap.
//
// SoundTouch owns the FIFOs, combines the virtual rate, tempo and pitch
// controls into an effective rate and tempo, and runs the stretcher first
// when the effective rate is above 1 and the transposer first otherwise.
//
//	st := soundtouch.New()
//	st.Controls().SetPitchSemitones(3)
//	st.Controls().SetTempo(0.8)
//
//	src := soundtouch.NewBufferSource(buf)
//	f, _ := soundtouch.NewFilter(src, st, 0)
//	out := make([]float32, 128*soundtouch.Channels)
//	for f.Extract(out, 128) == 128 {
//	    // play out
//	}
//
// Controls may be updated from any goroutine. The pipeline itself, and the
// Filter around it, belong to the goroutine that calls Process; nothing on
// that path takes a lock, and FIFOs are pre-sized so steady-state playback
// does not allocate.
package soundtouch
