// SPDX-License-Identifier: EPL-2.0

package worklet

import "github.com/ik5/audtempo/soundtouch"

const noSeek = -1

// SeekSource translates the filter's logical read positions into positions
// of the backing source. A seek is only recorded; the next Extract resolves
// it into a fixed offset between the two position spaces, which then holds
// until the following seek.
//
// SeekSource is not safe for concurrent use; it belongs to the goroutine
// driving the pipeline.
type SeekSource struct {
	src    soundtouch.FrameSource
	length int

	seekingPos  int
	seekingDiff int
	next        int
}

// NewSeekSource wraps src, which holds length frames.
func NewSeekSource(src soundtouch.FrameSource, length int) *SeekSource {
	return &SeekSource{src: src, length: max(0, length), seekingPos: noSeek}
}

// Length returns the number of frames in the backing source.
func (s *SeekSource) Length() int { return s.length }

// Seek records frame as the target of the next read. Targets are clamped to
// [0, Length()]; seeking to Length() ends the stream.
func (s *SeekSource) Seek(frame int) {
	s.seekingPos = min(max(frame, 0), s.length)
}

// Pending reports whether a seek waits to be resolved.
func (s *SeekSource) Pending() bool { return s.seekingPos != noSeek }

// Offset returns the frozen difference between source and logical
// positions.
func (s *SeekSource) Offset() int { return s.seekingDiff }

// Position returns the source frame the next read starts at.
func (s *SeekSource) Position() int {
	if s.seekingPos != noSeek {
		return s.seekingPos
	}
	return s.next
}

// Extract implements soundtouch.FrameSource.
func (s *SeekSource) Extract(dst []float32, numFrames, position int) int {
	if s.seekingPos != noSeek {
		s.seekingDiff = s.seekingPos - position
		s.seekingPos = noSeek
	}

	pos := position + s.seekingDiff
	if pos < 0 || pos >= s.length {
		s.next = min(max(pos, 0), s.length)
		return 0
	}
	n := max(0, s.src.Extract(dst, numFrames, pos))
	s.next = pos + n
	return n
}
