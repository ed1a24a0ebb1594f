// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// StereoMixer adapts a source of any channel count to two channels. Mono is
// duplicated, stereo passes through, and wider layouts fold even-indexed
// channels into the left and odd-indexed into the right, averaged.
type StereoMixer struct {
	src Source
	tmp []float32
}

func NewStereoMixer(src Source) (*StereoMixer, error) {
	if src.Channels() <= 0 {
		return nil, ErrInvalidChannels
	}
	return &StereoMixer{
		src: src,
		tmp: make([]float32, 8192),
	}, nil
}

func (m *StereoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *StereoMixer) Channels() int   { return Stereo }
func (m *StereoMixer) BufSize() int    { return m.src.BufSize() }
func (m *StereoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *StereoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%Stereo != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels == Stereo {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / Stereo
	need := frames * channels
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	got := n / channels

	if channels == 1 {
		for f := range got {
			v := m.tmp[f]
			dst[2*f] = v
			dst[2*f+1] = v
		}
		return got * Stereo, err
	}

	left := float32(1) / float32((channels+1)/2)
	right := float32(1) / float32(channels/2)
	for f := range got {
		base := f * channels
		var l, r float32
		for c := 0; c < channels; c += 2 {
			l += m.tmp[base+c]
		}
		for c := 1; c < channels; c += 2 {
			r += m.tmp[base+c]
		}
		dst[2*f] = l * left
		dst[2*f+1] = r * right
	}
	return got * Stereo, err
}
