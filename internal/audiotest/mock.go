// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// MockSource generates audio on demand. It satisfies audio.Source without
// importing it, so the audio package's own tests can use it.
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int
	readErr     error
	waveform    func(frame, channel int) float32
}

// NewMockSource returns a source of totalFrames frames whose samples come
// from waveform.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSilentSource generates zeros.
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 { return 0 })
}

// NewSineSource generates the same sine on every channel.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * frequency * float64(frame) / float64(sampleRate)))
	})
}

// NewConstantSource generates value on every sample.
func NewConstantSource(sampleRate, channels, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 { return value })
}

// FailAfter makes ReadSamples return err once the source is exhausted instead
// of io.EOF.
func (m *MockSource) FailAfter(err error) *MockSource {
	m.readErr = err
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds the generator.
func (m *MockSource) Reset() { m.generated = 0 }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, m.endErr()
	}

	frames := min(len(dst)/m.channels, m.totalFrames-m.generated)
	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.totalFrames {
		return frames * m.channels, m.endErr()
	}
	return frames * m.channels, nil
}

func (m *MockSource) endErr() error {
	if m.readErr != nil {
		return m.readErr
	}
	return io.EOF
}

// StereoSine returns frames interleaved stereo frames of a sine at freq Hz
// with the given peak amplitude.
func StereoSine(frames, sampleRate int, freq, amplitude float64) []float32 {
	out := make([]float32, frames*2)
	for i := range frames {
		v := float32(amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
		out[2*i] = v
		out[2*i+1] = v
	}
	return out
}

// StereoRamp returns frames stereo frames whose left channel counts up from 0
// in steps of 1/frames and whose right channel is the negation. Handy for
// checking that positions survive a round trip.
func StereoRamp(frames int) []float32 {
	out := make([]float32, frames*2)
	for i := range frames {
		v := float32(i) / float32(frames)
		out[2*i] = v
		out[2*i+1] = -v
	}
	return out
}
