// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audtempo/audio"
)

// go-mp3 always emits 16-bit little-endian stereo.
const (
	channels    = 2
	bytesPerOut = 2
	frameBytes  = channels * bytesPerOut
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
	Length() int64
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / bytesPerOut }

// Frames derives the length from the decoded byte count; 0 when the input
// could not be scanned.
func (s *source) Frames() int {
	if n := s.dec.Length(); n > 0 {
		return int(n / frameBytes)
	}
	return 0
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := (len(dst) / channels) * frameBytes
	if want == 0 {
		return 0, nil
	}
	if cap(s.buf) < want {
		s.buf = make([]byte, want)
	}
	s.buf = s.buf[:want]

	// A partial frame can only occur at the very end of the stream.
	n, err := io.ReadFull(s.dec, s.buf)
	n -= n % frameBytes
	if n == 0 {
		if err == nil || err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return 0, err
	}

	samples := n / bytesPerOut
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
		dst[i] = float32(v) / 32768.0
	}

	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
