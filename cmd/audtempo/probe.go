// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"

	"github.com/ik5/audtempo/formats"
	"github.com/ik5/audtempo/measure"
)

func probe(w io.Writer, files []string) error {
	reg := formats.NewRegistry()
	for _, path := range files {
		buf, err := formats.DecodeFile(reg, path)
		if err != nil {
			return err
		}

		rep, err := measure.Analyze(measure.MixDown(buf), float64(buf.SampleRate))
		dominant, centroid := "n/a", "n/a"
		if err == nil {
			dominant = fmt.Sprintf("%.1f Hz", rep.Dominant)
			centroid = fmt.Sprintf("%.1f Hz", rep.Spectrum.Centroid)
		}

		fmt.Fprintf(w, "%s: %d frames, %d Hz, %.3f s, dominant %s, centroid %s, rms %.4f, peak %.1f dBFS\n",
			path, buf.Frames(), buf.SampleRate, buf.Duration().Seconds(),
			dominant, centroid, rep.Level.RMS, rep.Level.Peak_dB)
	}
	return nil
}
