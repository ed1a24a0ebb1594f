// SPDX-License-Identifier: EPL-2.0

package soundtouch

import "math"

const (
	// DefaultOverlapMs is the cross-fade length between consecutive sequences.
	DefaultOverlapMs = 8

	// Automatic sequence and seek-window lengths follow tempo linearly between
	// these points and are clamped to them outside the range.
	autoSeqTempoLow  = 0.25
	autoSeqTempoHigh = 4.0
	autoSeqAtMin     = 125.0
	autoSeqAtMax     = 50.0
	autoSeqK         = (autoSeqAtMax - autoSeqAtMin) / (autoSeqTempoHigh - autoSeqTempoLow)
	autoSeqC         = autoSeqAtMin - autoSeqK*autoSeqTempoLow

	autoSeekAtMin = 25.0
	autoSeekAtMax = 15.0
	autoSeekK     = (autoSeekAtMax - autoSeekAtMin) / (autoSeqTempoHigh - autoSeqTempoLow)
	autoSeekC     = autoSeekAtMin - autoSeekK*autoSeqTempoLow

	minOverlapFrames = 16
	quickSeekStride  = 8
	correlationTiny  = 1e-9
)

// StretchOptions configures the time-domain stretcher. Zero SequenceMs or
// SeekWindowMs selects tempo-dependent automatic values; zero OverlapMs
// selects DefaultOverlapMs.
type StretchOptions struct {
	SampleRate   int
	SequenceMs   int
	SeekWindowMs int
	OverlapMs    int
	// QuickSeek trades an exhaustive offset search for a coarse scan refined
	// around the coarse winner.
	QuickSeek bool
}

// DefaultStretchOptions returns automatic sequencing at 44.1 kHz with quick
// seeking enabled.
func DefaultStretchOptions() StretchOptions {
	return StretchOptions{SampleRate: 44100, OverlapMs: DefaultOverlapMs, QuickSeek: true}
}

// Stretch changes tempo without changing pitch using WSOLA: fixed-length
// sequences are spliced at the offset whose head best matches the tail of
// the previously emitted sequence, and cross-faded over the overlap.
type Stretch struct {
	pipe

	opts         StretchOptions
	tempo        float64
	sequenceMs   int
	seekWindowMs int

	overlapLength    int
	seekWindowLength int
	seekLength       int
	nominalSkip      float64
	skipFract        float64
	sampleReq        int

	midBuffer []float32
	refMid    []float32
	weights   []float32
	fadeIn    []float32
	fadeOut   []float32
	midReady  bool

	// owed is output still due for input already consumed, in frames.
	owed float64
}

// NewStretch returns a stretcher at tempo 1 with no buffers attached.
func NewStretch(opts StretchOptions) *Stretch {
	s := &Stretch{tempo: 1}
	s.SetOptions(opts)
	return s
}

// Options returns the configured options.
func (s *Stretch) Options() StretchOptions { return s.opts }

// Tempo returns the current tempo factor.
func (s *Stretch) Tempo() float64 { return s.tempo }

// SequenceLength returns the analysis frame length in frames.
func (s *Stretch) SequenceLength() int { return s.seekWindowLength }

// SeekLength returns the number of candidate offsets searched per splice.
func (s *Stretch) SeekLength() int { return s.seekLength }

// OverlapLength returns the cross-fade length in frames.
func (s *Stretch) OverlapLength() int { return s.overlapLength }

// SampleRequirement returns how many input frames one splice needs.
func (s *Stretch) SampleRequirement() int { return s.sampleReq }

// SetOptions reconfigures sequencing. Pending overlap state is dropped.
func (s *Stretch) SetOptions(opts StretchOptions) {
	if opts.SampleRate <= 0 {
		opts.SampleRate = 44100
	}
	if opts.OverlapMs <= 0 {
		opts.OverlapMs = DefaultOverlapMs
	}
	s.opts = opts

	ovl := opts.SampleRate * opts.OverlapMs / 1000
	if ovl < minOverlapFrames {
		ovl = minOverlapFrames
	}
	ovl -= ovl % 8
	s.overlapLength = ovl

	s.midBuffer = make([]float32, ovl*Channels)
	s.refMid = make([]float32, ovl*Channels)
	s.weights = make([]float32, ovl)
	s.fadeIn = make([]float32, ovl)
	s.fadeOut = make([]float32, ovl)
	for i := range ovl {
		x := math.Sin(0.5 * math.Pi * (float64(i) + 0.5) / float64(ovl))
		s.fadeIn[i] = float32(x * x)
		s.fadeOut[i] = 1 - s.fadeIn[i]

		w := math.Sin(math.Pi * (float64(i) + 0.5) / float64(ovl))
		s.weights[i] = float32(w * w)
	}
	s.midReady = false
	s.owed = 0

	s.SetTempo(s.tempo)
}

// SetParameters is shorthand for SetOptions keeping the current QuickSeek
// setting.
func (s *Stretch) SetParameters(sampleRate, sequenceMs, seekWindowMs, overlapMs int) {
	s.SetOptions(StretchOptions{
		SampleRate:   sampleRate,
		SequenceMs:   sequenceMs,
		SeekWindowMs: seekWindowMs,
		OverlapMs:    overlapMs,
		QuickSeek:    s.opts.QuickSeek,
	})
}

// SetTempo sets the tempo factor; 2 plays twice as fast.
func (s *Stretch) SetTempo(tempo float64) {
	s.tempo = tempo
	s.calculateSequenceParameters()

	s.nominalSkip = tempo * float64(s.seekWindowLength-s.overlapLength)
	s.skipFract = 0
	intSkip := int(math.Floor(s.nominalSkip + 0.5))
	s.sampleReq = max(intSkip+s.overlapLength, s.seekWindowLength) + s.seekLength
}

func (s *Stretch) calculateSequenceParameters() {
	s.sequenceMs = s.opts.SequenceMs
	if s.sequenceMs <= 0 {
		seq := clampFloat(autoSeqC+autoSeqK*s.tempo, autoSeqAtMax, autoSeqAtMin)
		s.sequenceMs = int(math.Floor(seq + 0.5))
	}
	s.seekWindowMs = s.opts.SeekWindowMs
	if s.seekWindowMs <= 0 {
		seek := clampFloat(autoSeekC+autoSeekK*s.tempo, autoSeekAtMax, autoSeekAtMin)
		s.seekWindowMs = int(math.Floor(seek + 0.5))
	}

	s.seekWindowLength = s.opts.SampleRate * s.sequenceMs / 1000
	if s.seekWindowLength < 2*s.overlapLength {
		s.seekWindowLength = 2 * s.overlapLength
	}
	s.seekLength = s.opts.SampleRate * s.seekWindowMs / 1000
	if s.seekLength < 1 {
		s.seekLength = 1
	}
}

// Clear empties both buffers and drops overlap state.
func (s *Stretch) Clear() {
	s.clearBuffers()
	s.midReady = false
	s.skipFract = 0
	s.owed = 0
}

// Process emits as many sequences as the buffered input allows.
func (s *Stretch) Process() {
	if s.tempo == 1 {
		s.passThrough()
		return
	}

	if !s.midReady {
		if s.input.Frames() < s.overlapLength {
			return
		}
		s.input.ReceiveSamples(s.midBuffer, s.overlapLength)
		s.midReady = true
		s.owed += float64(s.overlapLength) / s.tempo
	}

	for s.input.Frames() >= s.sampleReq {
		skip, emitted := s.splice()
		s.owed += float64(skip)/s.tempo - float64(emitted)
	}
}

// Flush stretches whatever input remains after upstream has ended. The tail
// is zero-padded to a full sequence and the surplus output trimmed, so total
// duration stays input/tempo.
func (s *Stretch) Flush() {
	s.Process()
	if s.tempo == 1 {
		return
	}

	if !s.midReady {
		n := s.input.Frames()
		s.output.PutBuffer(s.input, 0, n)
		s.input.Receive(n)
		return
	}

	s.owed += float64(s.input.Frames()) / s.tempo
	for s.owed > 0.5 {
		if short := s.sampleReq - s.input.Frames(); short > 0 {
			s.input.PutSilence(short)
		}
		_, emitted := s.splice()
		s.owed -= float64(emitted)
	}
	if surplus := int(math.Floor(-s.owed + 0.5)); surplus > 0 {
		s.output.Unput(surplus)
	}

	s.input.Clear()
	s.midReady = false
	s.skipFract = 0
	s.owed = 0
}

func (s *Stretch) passThrough() {
	if s.midReady {
		s.output.PutSamples(s.midBuffer, 0, s.overlapLength)
		s.midReady = false
		s.owed = 0
		s.skipFract = 0
	}
	n := s.input.Frames()
	if n == 0 {
		return
	}
	s.output.PutBuffer(s.input, 0, n)
	s.input.Receive(n)
}

// splice emits one sequence and returns the input frames consumed and the
// output frames produced.
func (s *Stretch) splice() (int, int) {
	offset := s.seekBestOverlapPosition()

	s.output.EnsureAdditionalCapacity(s.seekWindowLength)
	s.overlap(offset)
	s.output.Put(s.overlapLength)

	body := s.seekWindowLength - 2*s.overlapLength
	if body > 0 {
		s.output.PutBuffer(s.input, offset+s.overlapLength, body)
	}

	s.input.Extract(s.midBuffer, offset+s.seekWindowLength-s.overlapLength, s.overlapLength)

	s.skipFract += s.nominalSkip
	skip := int(s.skipFract)
	s.skipFract -= float64(skip)
	s.input.Receive(skip)

	return skip, s.seekWindowLength - s.overlapLength
}

func (s *Stretch) seekBestOverlapPosition() int {
	for i, w := range s.weights {
		s.refMid[2*i] = s.midBuffer[2*i] * w
		s.refMid[2*i+1] = s.midBuffer[2*i+1] * w
	}

	if !s.opts.QuickSeek || s.seekLength <= 2*quickSeekStride {
		best, _ := s.scan(0, s.seekLength, 1)
		return best
	}

	coarse, _ := s.scan(0, s.seekLength, quickSeekStride)
	lo := max(0, coarse-quickSeekStride+1)
	hi := min(s.seekLength, coarse+quickSeekStride)
	best, _ := s.scan(lo, hi, 1)
	return best
}

// scan returns the offset in [from, to) stepping by stride with the highest
// normalized correlation against refMid.
func (s *Stretch) scan(from, to, stride int) (int, float64) {
	best := from
	bestCorr := math.Inf(-1)
	for offset := from; offset < to; offset += stride {
		corr := s.correlation(offset)
		if corr > bestCorr {
			bestCorr = corr
			best = offset
		}
	}
	return best, bestCorr
}

func (s *Stretch) correlation(offset int) float64 {
	v := s.input.vector
	base := s.input.StartIndex() + offset*Channels
	n := s.overlapLength * Channels

	var corr, norm float64
	for i := range n {
		x := float64(v[base+i])
		corr += x * float64(s.refMid[i])
		norm += x * x
	}
	return corr / math.Sqrt(norm+correlationTiny)
}

func (s *Stretch) overlap(offset int) {
	in := s.input.vector
	ib := s.input.StartIndex() + offset*Channels
	out := s.output.vector
	ob := s.output.EndIndex()

	for i := range s.overlapLength {
		fi, fo := s.fadeIn[i], s.fadeOut[i]
		c := 2 * i
		out[ob+c] = in[ib+c]*fi + s.midBuffer[c]*fo
		out[ob+c+1] = in[ib+c+1]*fi + s.midBuffer[c+1]*fo
	}
}

func clampFloat(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
