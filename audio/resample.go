// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/resample"
)

// Resample converts buf to dstRate with a band-limited polyphase filter, so
// content above the lower of the two Nyquist frequencies is removed rather
// than folded back. A buffer already at dstRate is returned as is.
//
// The filter delay is trimmed off the front and the tail is flushed with
// silence, so the output starts with the input and holds
// frames*dstRate/srcRate frames.
//
// This is an offline conversion for matching a file to a device rate before
// playback; it is not meant to run on the audio thread.
func Resample(buf *Buffer, dstRate int) (*Buffer, error) {
	if dstRate <= 0 || buf.SampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if buf.SampleRate == dstRate {
		return buf, nil
	}

	frames := buf.Frames()
	want := int(float64(frames) * float64(dstRate) / float64(buf.SampleRate))
	if want == 0 {
		return &Buffer{SampleRate: dstRate}, nil
	}

	out := make([]float32, want*Stereo)
	channel := make([]float64, 0, frames)

	for c := range Stereo {
		r, err := resample.NewForRates(float64(buf.SampleRate), float64(dstRate),
			resample.WithQuality(resample.QualityBalanced))
		if err != nil {
			return nil, fmt.Errorf("designing resampler: %w", err)
		}
		up, down := r.Ratio()

		// The prototype is linear phase, centred on its middle tap at the
		// upsampled rate.
		delay := float64(len(r.Prototype())-1) / 2
		trim := int(math.Round(delay / float64(down)))
		pad := (trim+2)*down/up + 1

		channel = channel[:0]
		for f := range frames {
			channel = append(channel, float64(buf.Samples[f*Stereo+c]))
		}
		channel = append(channel, make([]float64, pad)...)

		y := r.Process(channel)
		if len(y) > trim {
			y = y[trim:]
		} else {
			y = nil
		}
		for i := range min(want, len(y)) {
			out[i*Stereo+c] = float32(y[i])
		}
	}

	return &Buffer{Samples: out, SampleRate: dstRate}, nil
}
