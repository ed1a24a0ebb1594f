// SPDX-License-Identifier: EPL-2.0

package soundtouch

// DefaultChunkFrames is how many frames Filter pulls from its source per
// refill.
const DefaultChunkFrames = 4096

// Filter pulls frames from a FrameSource through a pipeline on demand. It
// tracks the absolute source position it reads from and the number of
// processed frames it has handed out.
type Filter struct {
	pipe   *SoundTouch
	source FrameSource
	chunk  int

	scratch        []float32
	sourcePosition int
	position       int
	exhausted      bool
}

// NewFilter connects source to st. chunkFrames <= 0 selects
// DefaultChunkFrames.
func NewFilter(source FrameSource, st *SoundTouch, chunkFrames int) (*Filter, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if chunkFrames < 0 {
		return nil, ErrInvalidChunkSize
	}
	if chunkFrames == 0 {
		chunkFrames = DefaultChunkFrames
	}
	return &Filter{
		pipe:    st,
		source:  source,
		chunk:   chunkFrames,
		scratch: make([]float32, chunkFrames*Channels),
	}, nil
}

// Pipe returns the pipeline the filter drives.
func (f *Filter) Pipe() *SoundTouch { return f.pipe }

// Position returns the number of processed frames extracted so far.
func (f *Filter) Position() int { return f.position }

// SourcePosition returns the next frame position requested from the source.
func (f *Filter) SourcePosition() int { return f.sourcePosition }

// SetSourcePosition moves the source read position without touching the
// pipeline contents.
func (f *Filter) SetSourcePosition(position int) { f.sourcePosition = position }

// Ended reports whether the source has run dry and the pipeline was flushed.
func (f *Filter) Ended() bool { return f.exhausted }

// Clear drops every buffered frame and re-arms the source.
func (f *Filter) Clear() {
	f.pipe.Clear()
	f.exhausted = false
}

// Extract writes up to numFrames processed frames into dst and returns the
// count. Fewer than numFrames means the stream has ended.
func (f *Filter) Extract(dst []float32, numFrames int) int {
	f.fill(numFrames)
	n := f.pipe.ReceiveSamples(dst, numFrames)
	f.position += n
	return n
}

func (f *Filter) fill(numFrames int) {
	for f.pipe.Output().Frames() < numFrames && !f.exhausted {
		n := f.source.Extract(f.scratch, f.chunk, f.sourcePosition)
		if n > 0 {
			f.sourcePosition += n
			f.pipe.PutSamples(f.scratch, n)
		}
		if n < f.chunk {
			f.pipe.Flush()
			f.exhausted = true
			return
		}
		f.pipe.Process()
	}
}
