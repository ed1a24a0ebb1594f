// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audtempo/audio"
)

// mockMP3Reader serves 16-bit stereo PCM bytes in uneven pieces.
type mockMP3Reader struct {
	data   []byte
	offset int
	piece  int
	length int64
}

func newMockMP3Reader(samples []int16, piece int) *mockMP3Reader {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(s))
	}
	return &mockMP3Reader{data: data, piece: piece, length: int64(len(data))}
}

func (m *mockMP3Reader) SampleRate() int { return 44100 }
func (m *mockMP3Reader) Length() int64   { return m.length }

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.offset >= len(m.data) {
		return 0, io.EOF
	}
	n := copy(buf[:min(len(buf), m.piece)], m.data[m.offset:])
	m.offset += n
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("not an mp3 stream"))); err == nil {
		t.Error("Decode() of garbage returned nil error")
	}
}

func TestSource_ReadSamples_ReassemblesPieces(t *testing.T) {
	t.Parallel()

	samples := []int16{16384, -16384, 0, 32767, -32768, 8192, 1, -1}
	// 3-byte pieces split samples across reads.
	src := &source{dec: newMockMP3Reader(samples, 3), sampleRate: 44100}

	got, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if got.Frames() != 4 {
		t.Fatalf("Frames() = %d, want 4", got.Frames())
	}
	for i, s := range samples {
		if want := float32(s) / 32768; got.Samples[i] != want {
			t.Errorf("sample %d = %v, want %v", i, got.Samples[i], want)
		}
	}
}

func TestSource_ReadSamples_DropsTrailingPartialFrame(t *testing.T) {
	t.Parallel()

	m := newMockMP3Reader([]int16{100, 200, 300}, 64)
	src := &source{dec: m, sampleRate: 44100}

	dst := make([]float32, 16)
	n, err := src.ReadSamples(dst)
	if n != 2 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() = %d, %v; want 2, io.EOF", n, err)
	}
	n, err = src.ReadSamples(dst)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("second ReadSamples() = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestSource_Frames(t *testing.T) {
	t.Parallel()

	m := newMockMP3Reader(make([]int16, 200), 64)
	src := &source{dec: m, sampleRate: 44100}
	if src.Frames() != 100 {
		t.Errorf("Frames() = %d, want 100", src.Frames())
	}

	m.length = -1
	if src.Frames() != 0 {
		t.Errorf("Frames() with unknown length = %d, want 0", src.Frames())
	}
	if src.Channels() != 2 || src.SampleRate() != 44100 {
		t.Errorf("metadata = %d ch @ %d Hz", src.Channels(), src.SampleRate())
	}
}
