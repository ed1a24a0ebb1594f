// SPDX-License-Identifier: EPL-2.0

package audtempo

import (
	"fmt"
	"math"

	"github.com/ik5/audtempo/audio"
	"github.com/ik5/audtempo/soundtouch"
)

// Settings describes an offline render. Zero Tempo or Rate means unchanged;
// zero ChunkFrames selects soundtouch.DefaultChunkFrames.
type Settings struct {
	Tempo          float64
	Rate           float64
	PitchSemitones float64
	Stretch        soundtouch.StretchOptions
	ChunkFrames    int
}

// DefaultSettings renders the input unchanged.
func DefaultSettings() Settings {
	return Settings{
		Tempo:       1,
		Rate:        1,
		Stretch:     soundtouch.DefaultStretchOptions(),
		ChunkFrames: soundtouch.DefaultChunkFrames,
	}
}

// Params converts s into a validated parameter snapshot.
func (s Settings) Params() (soundtouch.Params, error) {
	p := soundtouch.Params{
		Tempo: s.Tempo,
		Rate:  s.Rate,
		Pitch: math.Exp2(s.PitchSemitones / 12),
	}
	if p.Tempo == 0 {
		p.Tempo = 1
	}
	if p.Rate == 0 {
		p.Rate = 1
	}
	if err := p.Validate(); err != nil {
		return soundtouch.Params{}, err
	}
	return p, nil
}

// RenderBuffer runs buf through a fresh pipeline and returns everything it
// produces. The output has the input's sample rate.
func RenderBuffer(buf *audio.Buffer, s Settings) (*audio.Buffer, error) {
	if buf == nil {
		return nil, ErrNilBuffer
	}
	if buf.SampleRate <= 0 {
		return nil, audio.ErrInvalidSampleRate
	}
	params, err := s.Params()
	if err != nil {
		return nil, err
	}

	opts := s.Stretch
	opts.SampleRate = buf.SampleRate
	st := soundtouch.New(
		soundtouch.WithControls(soundtouch.NewControls(params)),
		soundtouch.WithStretchOptions(opts),
	)
	filter, err := soundtouch.NewFilter(soundtouch.NewBufferSource(buf), st, s.ChunkFrames)
	if err != nil {
		return nil, fmt.Errorf("creating filter: %w", err)
	}

	chunk := s.ChunkFrames
	if chunk == 0 {
		chunk = soundtouch.DefaultChunkFrames
	}

	// Output length is about frames/(tempo*rate); the margin covers the
	// stretcher's rounding.
	eff := params.Effective()
	estimate := int(float64(buf.Frames())/(eff.Tempo*eff.Rate)) + chunk
	out := make([]float32, 0, estimate*soundtouch.Channels)
	block := make([]float32, chunk*soundtouch.Channels)

	for {
		n := filter.Extract(block, chunk)
		out = append(out, block[:n*soundtouch.Channels]...)
		if n < chunk {
			break
		}
	}

	return &audio.Buffer{Samples: out, SampleRate: buf.SampleRate}, nil
}

// Render decodes src into memory and renders it. src is not closed.
func Render(src audio.Source, s Settings) (*audio.Buffer, error) {
	buf, err := audio.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("decoding source: %w", err)
	}
	return RenderBuffer(buf, s)
}
