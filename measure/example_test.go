// SPDX-License-Identifier: EPL-2.0

package measure_test

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/ik5/audtempo/measure"
)

func tone(n int, sampleRate, freq, amplitude float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}
	return x
}

// ExampleDominantFrequency finds the pitch of a pure tone.
func ExampleDominantFrequency() {
	freq, err := measure.DominantFrequency(tone(44100, 44100, 441, 0.5), 44100)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%.0f Hz\n", freq)

	// Output:
	// 441 Hz
}

// ExampleDominantFrequency_silence shows the error for input without a peak.
func ExampleDominantFrequency_silence() {
	_, err := measure.DominantFrequency(make([]float64, 4096), 44100)
	fmt.Println(errors.Is(err, measure.ErrNoPeak))

	// Output:
	// true
}

// ExampleAnalyze reports level and pitch together.
func ExampleAnalyze() {
	rep, err := measure.Analyze(tone(44100, 44100, 441, 0.5), 44100)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("dominant %.0f Hz\n", rep.Dominant)
	fmt.Printf("rms %.3f\n", rep.Level.RMS)
	fmt.Printf("peak %.1f dBFS\n", rep.Level.Peak_dB)

	// Output:
	// dominant 441 Hz
	// rms 0.354
	// peak -6.0 dBFS
}
