// SPDX-License-Identifier: EPL-2.0

// Package worklet drives a soundtouch pipeline from a hardware audio
// callback.
//
// A Processor has two sides. The control side (UI, CLI, network handler)
// loads decoded buffers, posts seeks and changes tempo, rate and pitch. The
// audio side is the callback that calls Process once per period. The two
// only meet through a buffered message channel and atomic values, so the
// callback never waits for the control side.
//
// Loading a buffer builds a complete session up front: seek-aware source,
// pipeline and filter. A loaded session replaces the previous one entirely.
//
//	p := worklet.New(worklet.WithLogger(logger))
//	sess, err := p.Load(buf)
//	if err != nil {
//		return err
//	}
//	p.SetPitchSemitones(-2)
//	p.Seek(10 * buf.SampleRate)
//
//	// in the device callback
//	p.Process(out)
//
//	<-sess.Done
//
// Seeks do not touch the backing buffer. SeekSource records the target and,
// on the next read, freezes the offset between the filter's running read
// position and the target. The pipeline FIFOs are cleared in place, so the
// audio after a seek is what a fresh pipeline started at the target would
// produce.
//
// End of stream is terminal for a session: Process pads the last period
// with silence, closes the session's Done channel and keeps rendering
// silence until the next Load.
package worklet
