// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/audtempo/internal/audiotest"
)

func TestResample(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		srcRate int
		dstRate int
	}{
		{name: "upsample", srcRate: 44100, dstRate: 48000},
		{name: "downsample", srcRate: 48000, dstRate: 22050},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &Buffer{Samples: audiotest.StereoSine(tt.srcRate, tt.srcRate, 100, 0.8), SampleRate: tt.srcRate}
			out, err := Resample(src, tt.dstRate)
			if err != nil {
				t.Fatalf("Resample() error = %v", err)
			}
			if out.SampleRate != tt.dstRate {
				t.Errorf("SampleRate = %d, want %d", out.SampleRate, tt.dstRate)
			}
			if diff := out.Frames() - tt.dstRate; diff < -1 || diff > 1 {
				t.Errorf("Frames() = %d, want ≈%d", out.Frames(), tt.dstRate)
			}

			// A slow sine passes the filter unchanged and lines up with the
			// input to within a fraction of a frame, away from the edges.
			for i := 64; i < out.Frames()-64; i++ {
				want := 0.8 * math.Sin(2*math.Pi*100*float64(i)/float64(tt.dstRate))
				if math.Abs(float64(out.Samples[2*i])-want) > 0.02 {
					t.Fatalf("frame %d = %v, want ≈%v", i, out.Samples[2*i], want)
				}
			}
		})
	}
}

func TestResample_SameRateReturnsInput(t *testing.T) {
	t.Parallel()

	src := &Buffer{Samples: make([]float32, 20), SampleRate: 44100}
	out, err := Resample(src, 44100)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	if out != src {
		t.Error("Resample() at the same rate should return the input buffer")
	}
}

func TestResample_InvalidRate(t *testing.T) {
	t.Parallel()

	src := &Buffer{Samples: make([]float32, 20), SampleRate: 44100}
	if _, err := Resample(src, 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("Resample(0) error = %v, want ErrInvalidSampleRate", err)
	}
}

func rmsFrom(samples []float32, channel, skip int) float64 {
	frames := len(samples)/Stereo - 2*skip
	var sum float64
	for i := skip; i < skip+frames; i++ {
		v := float64(samples[i*Stereo+channel])
		sum += v * v
	}
	return math.Sqrt(sum / float64(frames))
}

func TestResample_RejectsContentAboveNyquist(t *testing.T) {
	t.Parallel()

	const srcRate, dstRate = 96000, 44100

	tests := []struct {
		name   string
		freq   float64
		minRMS float64
		maxRMS float64
	}{
		// 30 kHz has no place below 22.05 kHz and would fold to 14.1 kHz.
		{name: "above new nyquist", freq: 30000, minRMS: 0, maxRMS: 0.01},
		{name: "passband", freq: 1000, minRMS: 0.345, maxRMS: 0.362},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &Buffer{Samples: audiotest.StereoSine(srcRate/2, srcRate, tt.freq, 0.5), SampleRate: srcRate}
			out, err := Resample(src, dstRate)
			if err != nil {
				t.Fatalf("Resample() error = %v", err)
			}

			for c := range Stereo {
				got := rmsFrom(out.Samples, c, 256)
				if got < tt.minRMS || got > tt.maxRMS {
					t.Errorf("channel %d RMS = %.4f, want in [%v, %v]", c, got, tt.minRMS, tt.maxRMS)
				}
			}
		})
	}
}

func TestResample_Empty(t *testing.T) {
	t.Parallel()

	out, err := Resample(&Buffer{SampleRate: 48000}, 44100)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	if out.Frames() != 0 || out.SampleRate != 44100 {
		t.Errorf("Resample(empty) = %d frames at %d Hz", out.Frames(), out.SampleRate)
	}
}
