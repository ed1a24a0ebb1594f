// SPDX-License-Identifier: EPL-2.0

package measure

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-dsp/dsp/window"
	freqstats "github.com/cwbudde/algo-dsp/stats/frequency"
	timestats "github.com/cwbudde/algo-dsp/stats/time"
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/ik5/audtempo/audio"
)

const (
	// MinSamples is the shortest input DominantFrequency accepts.
	MinSamples = 64
	// maxFFTSize caps the analysed chunk; longer inputs use their centre.
	maxFFTSize = 1 << 16
)

// Report summarises a signal. Spectrum describes the windowed centre chunk
// after its mean is removed, with the DC and Nyquist bins zeroed; Level
// covers every sample.
type Report struct {
	Dominant float64
	Spectrum freqstats.Stats
	Level    timestats.Stats
}

// Analyze measures samples in the time and frequency domains. A silent
// input yields ErrNoPeak together with a report whose Level is filled in.
func Analyze(samples []float64, sampleRate float64) (Report, error) {
	rep := Report{Level: timestats.Calculate(samples)}

	spec, err := spectrum(samples, sampleRate)
	if err != nil {
		return rep, err
	}
	rep.Spectrum = spec.stats
	rep.Dominant, err = spec.dominant()
	return rep, err
}

// DominantFrequency returns the frequency in Hz of the strongest spectral
// peak in samples. The centre power-of-two chunk is Hann-windowed and
// transformed; the peak bin is refined by parabolic interpolation over log
// magnitudes.
func DominantFrequency(samples []float64, sampleRate float64) (float64, error) {
	spec, err := spectrum(samples, sampleRate)
	if err != nil {
		return 0, err
	}
	return spec.dominant()
}

type analysis struct {
	bins  []complex128
	stats freqstats.Stats
	binHz float64
}

func spectrum(samples []float64, sampleRate float64) (analysis, error) {
	if sampleRate <= 0 {
		return analysis{}, ErrInvalidSampleRate
	}
	if len(samples) < MinSamples {
		return analysis{}, ErrTooShort
	}

	n := min(1<<(bits.Len(uint(len(samples)))-1), maxFFTSize)
	start := (len(samples) - n) / 2

	chunk := make([]float64, n)
	copy(chunk, samples[start:start+n])
	if dc := timestats.DC(chunk); dc != 0 {
		for i := range chunk {
			chunk[i] -= dc
		}
	}
	vecmath.MulBlockInPlace(chunk, window.Generate(window.TypeHann, n, window.WithPeriodic()))

	in := make([]complex128, n)
	for i, v := range chunk {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return analysis{}, fmt.Errorf("fft plan: %w", err)
	}
	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return analysis{}, fmt.Errorf("fft: %w", err)
	}

	half := out[:n/2+1]
	half[0], half[n/2] = 0, 0

	return analysis{
		bins:  half,
		stats: freqstats.CalculateFromComplex(half, sampleRate),
		binHz: sampleRate / float64(n),
	}, nil
}

func (a analysis) dominant() (float64, error) {
	k := a.stats.MaxBin
	if k == 0 || a.stats.Max == 0 {
		return 0, ErrNoPeak
	}
	off := parabolicOffset(cmplx.Abs(a.bins[k-1]), a.stats.Max, cmplx.Abs(a.bins[k+1]))
	return (float64(k) + off) * a.binHz, nil
}

// parabolicOffset fits a parabola through the log magnitudes of a peak and
// its neighbours and returns the vertex offset in bins, within [-0.5, 0.5].
func parabolicOffset(left, peak, right float64) float64 {
	const floor = 1e-12
	a := math.Log(left + floor)
	b := math.Log(peak + floor)
	c := math.Log(right + floor)
	den := a - 2*b + c
	if den == 0 {
		return 0
	}
	return math.Max(-0.5, math.Min(0.5, 0.5*(a-c)/den))
}

// Channel extracts one channel of buf (0 left, 1 right).
func Channel(buf *audio.Buffer, ch int) []float64 {
	out := make([]float64, buf.Frames())
	for i := range out {
		out[i] = float64(buf.Samples[i*audio.Stereo+ch])
	}
	return out
}

// MixDown averages both channels of buf.
func MixDown(buf *audio.Buffer) []float64 {
	out := make([]float64, buf.Frames())
	for i := range out {
		out[i] = 0.5 * (float64(buf.Samples[2*i]) + float64(buf.Samples[2*i+1]))
	}
	return out
}
