// SPDX-License-Identifier: EPL-2.0

package soundtouch

// defaultCapacityFrames pre-sizes every FIFO so steady-state playback never
// grows them.
const defaultCapacityFrames = 32768

// Option configures a SoundTouch pipeline.
type Option func(*SoundTouch)

// WithControls shares c with the pipeline instead of creating private
// controls. Several pipelines, or a pipeline and a UI, can share one.
func WithControls(c *Controls) Option {
	return func(st *SoundTouch) { st.controls = c }
}

// WithStretchOptions configures the time-domain stretcher.
func WithStretchOptions(opts StretchOptions) Option {
	return func(st *SoundTouch) { st.stretchOpts = opts }
}

// WithCapacity pre-sizes each FIFO for frames frames.
func WithCapacity(frames int) Option {
	return func(st *SoundTouch) { st.capacity = frames }
}

// SoundTouch coordinates a RateTransposer and a Stretch. It owns the input,
// intermediate and output FIFOs and plumbs them through the stages in the
// order the effective rate calls for.
//
// Parameter changes published through Controls take effect at the start of
// the next Process or Flush call, on the goroutine running the pipeline.
type SoundTouch struct {
	controls    *Controls
	stretchOpts StretchOptions
	capacity    int

	applied   *Params
	effective Effective

	transposer *RateTransposer
	stretch    *Stretch

	input        *SampleBuffer
	intermediate *SampleBuffer
	output       *SampleBuffer
}

// New builds a pipeline. Without options it uses private default controls
// and DefaultStretchOptions.
func New(opts ...Option) *SoundTouch {
	st := &SoundTouch{
		stretchOpts: DefaultStretchOptions(),
		capacity:    defaultCapacityFrames,
	}
	for _, opt := range opts {
		opt(st)
	}
	if st.controls == nil {
		st.controls = NewControls(DefaultParams())
	}

	st.input = NewSampleBuffer(st.capacity)
	st.intermediate = NewSampleBuffer(st.capacity)
	st.output = NewSampleBuffer(st.capacity)
	st.transposer = NewRateTransposer()
	st.stretch = NewStretch(st.stretchOpts)

	st.ApplyParams()
	return st
}

// Controls returns the controls the pipeline reads.
func (st *SoundTouch) Controls() *Controls { return st.controls }

// Input is the buffer callers feed.
func (st *SoundTouch) Input() *SampleBuffer { return st.input }

// Output is the buffer callers drain.
func (st *SoundTouch) Output() *SampleBuffer { return st.output }

// Effective returns the stage settings currently in force.
func (st *SoundTouch) Effective() Effective { return st.effective }

// Transposer exposes the rate stage.
func (st *SoundTouch) Transposer() *RateTransposer { return st.transposer }

// Stretch exposes the tempo stage.
func (st *SoundTouch) Stretch() *Stretch { return st.stretch }

// ApplyParams adopts the latest Controls snapshot. Both effective values are
// recomputed from the same snapshot before the stage order is checked, and
// buffers are re-plumbed only when the order actually flips. It reports
// whether a new snapshot was applied.
//
// On a flip, frames parked in the intermediate buffer belong to the old
// ordering and are dropped, at most one stretch sequence of audio; the
// stretcher's next splice crossfades over the gap. The transposer restarts
// its interpolation on the first frame it sees in its new position. The
// stretcher keeps its overlap tail, which continues the last frames it
// emitted.
func (st *SoundTouch) ApplyParams() (Effective, bool) {
	p := st.controls.Load()
	if p == st.applied {
		return st.effective, false
	}
	st.applied = p

	eff := p.Effective()
	if eff.Tempo != st.effective.Tempo {
		st.stretch.SetTempo(eff.Tempo)
	}
	if eff.Rate != st.effective.Rate {
		st.transposer.SetRate(eff.Rate)
	}
	st.effective = eff
	st.wire(eff.Order())
	return eff, true
}

func (st *SoundTouch) wire(order Order) {
	if order == StretchFirst {
		if st.transposer.Output() == st.output {
			return
		}
		st.regroup()
		st.stretch.SetInput(st.input)
		st.stretch.SetOutput(st.intermediate)
		st.transposer.SetInput(st.intermediate)
		st.transposer.SetOutput(st.output)
		return
	}

	if st.stretch.Output() == st.output {
		return
	}
	st.regroup()
	st.transposer.SetInput(st.input)
	st.transposer.SetOutput(st.intermediate)
	st.stretch.SetInput(st.intermediate)
	st.stretch.SetOutput(st.output)
}

// regroup drops state that only made sense in the old stage order.
func (st *SoundTouch) regroup() {
	st.intermediate.Clear()
	st.transposer.Reset()
}

func (st *SoundTouch) stages() (stage, stage) {
	if st.effective.Order() == StretchFirst {
		return st.stretch, st.transposer
	}
	return st.transposer, st.stretch
}

// PutSamples appends numFrames interleaved frames to the input.
func (st *SoundTouch) PutSamples(samples []float32, numFrames int) {
	st.input.PutSamples(samples, 0, numFrames)
}

// ReceiveSamples moves up to numFrames processed frames into dst.
func (st *SoundTouch) ReceiveSamples(dst []float32, numFrames int) int {
	return st.output.ReceiveSamples(dst, numFrames)
}

// Process runs both stages over the buffered input.
func (st *SoundTouch) Process() {
	st.ApplyParams()
	first, second := st.stages()
	first.Process()
	second.Process()
}

// Flush drains everything still held by the stages into the output. Call it
// once the source has ended.
func (st *SoundTouch) Flush() {
	st.ApplyParams()
	first, second := st.stages()
	first.Flush()
	second.Flush()
}

// Clear empties every FIFO and resets stage state. No memory is released or
// allocated.
func (st *SoundTouch) Clear() {
	st.input.Clear()
	st.intermediate.Clear()
	st.output.Clear()
	st.transposer.Clear()
	st.stretch.Clear()
}
