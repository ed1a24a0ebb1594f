// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Stereo is the channel count of every Buffer.
const Stereo = 2

// maxStalledReads bounds how many (0, nil) reads ReadAll tolerates in a row.
const maxStalledReads = 64

// Buffer is a fully decoded interleaved stereo signal held in memory.
type Buffer struct {
	Samples    []float32
	SampleRate int
}

// NewBuffer wraps interleaved stereo samples. It does not copy.
func NewBuffer(samples []float32, sampleRate int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if len(samples)%Stereo != 0 {
		return nil, ErrUnalignedBuffer
	}
	return &Buffer{Samples: samples, SampleRate: sampleRate}, nil
}

// Frames returns the number of stereo frames.
func (b *Buffer) Frames() int { return len(b.Samples) / Stereo }

// Duration returns the playing time at SampleRate.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// ReadAll drains src into a stereo Buffer, up- or down-mixing through a
// StereoMixer. src is not closed.
func ReadAll(src Source) (*Buffer, error) {
	if src.SampleRate() <= 0 {
		return nil, ErrInvalidSampleRate
	}
	mixer, err := NewStereoMixer(src)
	if err != nil {
		return nil, err
	}

	var samples []float32
	if fc, ok := src.(FrameCounter); ok && fc.Frames() > 0 {
		samples = make([]float32, 0, fc.Frames()*Stereo)
	}

	chunk := max(src.BufSize(), 1024)
	chunk -= chunk % Stereo
	buf := make([]float32, chunk)

	stalled := 0
	for {
		n, err := mixer.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
			stalled = 0
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading source: %w", err)
		}
		if n == 0 {
			stalled++
			if stalled >= maxStalledReads {
				return nil, ErrSourceStalled
			}
		}
	}

	if len(samples) == 0 {
		return nil, ErrEmptySource
	}
	return &Buffer{Samples: samples, SampleRate: src.SampleRate()}, nil
}
