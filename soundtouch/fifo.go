// SPDX-License-Identifier: EPL-2.0

package soundtouch

// Channels is the number of interleaved channels every pipeline stage works on.
const Channels = 2

// SampleBuffer is a growable FIFO of interleaved stereo samples.
//
// The live region is vector[StartIndex():EndIndex()]. Frames are appended at
// the write end and consumed from the read end; consumed space is reclaimed
// by compacting the live region to the front of the vector, never by
// shrinking it.
type SampleBuffer struct {
	vector     []float32
	position   int
	frameCount int
}

// NewSampleBuffer returns a buffer pre-sized for capacityFrames frames.
func NewSampleBuffer(capacityFrames int) *SampleBuffer {
	if capacityFrames < 0 {
		capacityFrames = 0
	}
	return &SampleBuffer{vector: make([]float32, capacityFrames*Channels)}
}

// Vector exposes the backing slice. Only the range [StartIndex, EndIndex)
// holds live samples; the space after EndIndex is writable scratch.
func (b *SampleBuffer) Vector() []float32 { return b.vector }

// Position is the read cursor, in frames, into the backing slice.
func (b *SampleBuffer) Position() int { return b.position }

// Frames is the number of frames waiting to be read.
func (b *SampleBuffer) Frames() int { return b.frameCount }

// StartIndex is the sample index of the first live sample.
func (b *SampleBuffer) StartIndex() int { return b.position * Channels }

// EndIndex is the sample index one past the last live sample.
func (b *SampleBuffer) EndIndex() int { return (b.position + b.frameCount) * Channels }

// CapacityFrames returns how many frames fit without growing.
func (b *SampleBuffer) CapacityFrames() int { return len(b.vector) / Channels }

// Clear drops all frames and rewinds the cursor. The backing slice is kept.
func (b *SampleBuffer) Clear() {
	b.position = 0
	b.frameCount = 0
}

// Put commits numFrames frames that were written directly after EndIndex.
func (b *SampleBuffer) Put(numFrames int) {
	b.frameCount += numFrames
}

// Unput removes up to numFrames frames from the write end.
func (b *SampleBuffer) Unput(numFrames int) {
	if numFrames > b.frameCount {
		numFrames = b.frameCount
	}
	if numFrames > 0 {
		b.frameCount -= numFrames
	}
}

// PutSamples appends numFrames frames from samples starting at frame offset.
func (b *SampleBuffer) PutSamples(samples []float32, offset, numFrames int) {
	if numFrames <= 0 {
		return
	}
	src := samples[offset*Channels : (offset+numFrames)*Channels]
	b.EnsureAdditionalCapacity(numFrames)
	copy(b.vector[b.EndIndex():], src)
	b.frameCount += numFrames
}

// PutBuffer appends numFrames frames from other, starting offset frames past
// its read cursor. other is left untouched.
func (b *SampleBuffer) PutBuffer(other *SampleBuffer, offset, numFrames int) {
	if numFrames <= 0 {
		return
	}
	b.PutSamples(other.vector, other.position+offset, numFrames)
}

// PutSilence appends numFrames zeroed frames.
func (b *SampleBuffer) PutSilence(numFrames int) {
	if numFrames <= 0 {
		return
	}
	b.EnsureAdditionalCapacity(numFrames)
	end := b.EndIndex()
	clear(b.vector[end : end+numFrames*Channels])
	b.frameCount += numFrames
}

// Receive discards numFrames frames from the read end. A negative count or
// one larger than Frames discards everything.
func (b *SampleBuffer) Receive(numFrames int) {
	if numFrames < 0 || numFrames > b.frameCount {
		numFrames = b.frameCount
	}
	b.frameCount -= numFrames
	b.position += numFrames
}

// ReceiveSamples copies numFrames frames into dst and discards them.
func (b *SampleBuffer) ReceiveSamples(dst []float32, numFrames int) int {
	if numFrames > b.frameCount {
		numFrames = b.frameCount
	}
	b.Extract(dst, 0, numFrames)
	b.Receive(numFrames)
	return numFrames
}

// Extract copies numFrames frames starting offset frames past the read
// cursor into dst without consuming them.
func (b *SampleBuffer) Extract(dst []float32, offset, numFrames int) {
	if numFrames <= 0 {
		return
	}
	start := b.StartIndex() + offset*Channels
	copy(dst[:numFrames*Channels], b.vector[start:start+numFrames*Channels])
}

// EnsureCapacity makes room for numFrames frames counted from the read
// cursor, compacting first and growing geometrically only when needed.
func (b *SampleBuffer) EnsureCapacity(numFrames int) {
	need := numFrames * Channels
	if len(b.vector) >= need {
		b.Rewind()
		return
	}

	newLen := len(b.vector) * 2
	if newLen < need {
		newLen = need
	}
	grown := make([]float32, newLen)
	copy(grown, b.vector[b.StartIndex():b.EndIndex()])
	b.vector = grown
	b.position = 0
}

// EnsureAdditionalCapacity makes room for numFrames frames past EndIndex.
func (b *SampleBuffer) EnsureAdditionalCapacity(numFrames int) {
	b.EnsureCapacity(b.frameCount + numFrames)
}

// Rewind moves the live region to the front of the backing slice.
func (b *SampleBuffer) Rewind() {
	if b.position == 0 {
		return
	}
	copy(b.vector, b.vector[b.StartIndex():b.EndIndex()])
	b.position = 0
}
