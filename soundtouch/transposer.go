// SPDX-License-Identifier: EPL-2.0

package soundtouch

import (
	"math"

	"github.com/ik5/audtempo/utils"
)

// RateTransposer changes playback rate, and with it duration and pitch, by
// linear interpolation between neighbouring input frames.
//
// slopeCount is the fractional distance of the next output frame from the
// last frame of the previous block (prevL/prevR). It carries across calls so
// block boundaries are seamless.
type RateTransposer struct {
	pipe

	rate       float64
	slopeCount float64
	prevL      float32
	prevR      float32
}

// NewRateTransposer returns a transposer at rate 1 with no buffers attached.
func NewRateTransposer() *RateTransposer {
	t := &RateTransposer{rate: 1}
	t.Reset()
	return t
}

// Rate returns the current rate factor.
func (t *RateTransposer) Rate() float64 { return t.rate }

// SetRate sets the rate factor. Values above 1 shorten the output and raise
// pitch.
func (t *RateTransposer) SetRate(rate float64) { t.rate = rate }

// Reset forgets the interpolation history.
func (t *RateTransposer) Reset() {
	t.slopeCount = 1
	t.prevL = 0
	t.prevR = 0
}

// Clear empties both buffers and resets the interpolator.
func (t *RateTransposer) Clear() {
	t.clearBuffers()
	t.Reset()
}

// Process transposes every frame currently in the input buffer.
func (t *RateTransposer) Process() {
	numFrames := t.input.Frames()
	if numFrames == 0 {
		return
	}

	if t.rate == 1 {
		t.output.PutBuffer(t.input, 0, numFrames)
		last := t.input.StartIndex() + (numFrames-1)*Channels
		t.prevL = t.input.vector[last]
		t.prevR = t.input.vector[last+1]
		t.slopeCount = 1
		t.input.Receive(numFrames)
		return
	}

	t.output.EnsureAdditionalCapacity(int(math.Ceil(float64(numFrames)/t.rate)) + 4)
	produced := t.transpose(numFrames)
	t.input.Receive(numFrames)
	t.output.Put(produced)
}

// Flush has nothing to drain: Process always consumes its whole input.
func (t *RateTransposer) Flush() { t.Process() }

func (t *RateTransposer) transpose(numFrames int) int {
	src := t.input.vector
	srcOffset := t.input.StartIndex()
	dst := t.output.vector
	dstOffset := t.output.EndIndex()

	slope := t.slopeCount
	rate := t.rate
	i := 0

	// Between the previous block's last frame and this block's first.
	for slope < 1 {
		o := dstOffset + i*Channels
		dst[o] = utils.Lerp(t.prevL, src[srcOffset], slope)
		dst[o+1] = utils.Lerp(t.prevR, src[srcOffset+1], slope)
		i++
		slope += rate
	}
	slope -= 1

	if numFrames > 1 {
		used := 0
	loop:
		for {
			for slope > 1 {
				slope -= 1
				used++
				if used >= numFrames-1 {
					break loop
				}
			}
			s := srcOffset + used*Channels
			o := dstOffset + i*Channels
			dst[o] = utils.Lerp(src[s], src[s+2], slope)
			dst[o+1] = utils.Lerp(src[s+1], src[s+3], slope)
			i++
			slope += rate
		}
	}

	last := srcOffset + (numFrames-1)*Channels
	t.prevL = src[last]
	t.prevR = src[last+1]
	t.slopeCount = slope
	return i
}
