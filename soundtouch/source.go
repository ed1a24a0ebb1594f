// SPDX-License-Identifier: EPL-2.0

package soundtouch

import "github.com/ik5/audtempo/audio"

// FrameSource supplies interleaved stereo frames by absolute position.
//
// Extract copies up to numFrames frames starting at frame position into dst
// and returns how many it wrote. A return shorter than numFrames, including
// zero, means the source has no more frames at that position.
type FrameSource interface {
	Extract(dst []float32, numFrames, position int) int
}

// BufferSource serves frames from a decoded in-memory buffer.
type BufferSource struct {
	buf *audio.Buffer
}

// NewBufferSource wraps buf.
func NewBufferSource(buf *audio.Buffer) *BufferSource {
	return &BufferSource{buf: buf}
}

// Buffer returns the wrapped buffer.
func (s *BufferSource) Buffer() *audio.Buffer { return s.buf }

// Frames returns the total number of frames.
func (s *BufferSource) Frames() int { return s.buf.Frames() }

// Extract implements FrameSource. Positions outside the buffer yield 0.
func (s *BufferSource) Extract(dst []float32, numFrames, position int) int {
	if position < 0 {
		return 0
	}
	n := max(0, min(numFrames, s.buf.Frames()-position))
	if n == 0 {
		return 0
	}
	copy(dst[:n*Channels], s.buf.Samples[position*Channels:(position+n)*Channels])
	return n
}
