// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audtempo/audio"
	"github.com/ik5/audtempo/utils"
)

// writeChunkFrames is how many frames are converted per encoder call.
const writeChunkFrames = 8192

// Write encodes buf as stereo integer PCM at bitDepth bits. The header sizes
// are patched on completion, hence the io.WriteSeeker.
func Write(w io.WriteSeeker, buf *audio.Buffer, bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return ErrUnsupportedBitDepth
	}
	if buf.SampleRate <= 0 {
		return audio.ErrInvalidSampleRate
	}

	enc := gowav.NewEncoder(w, buf.SampleRate, bitDepth, audio.Stereo, pcmFormat)
	ib := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: audio.Stereo, SampleRate: buf.SampleRate},
		SourceBitDepth: bitDepth,
		Data:           make([]int, 0, writeChunkFrames*audio.Stereo),
	}

	for off := 0; off < len(buf.Samples); off += writeChunkFrames * audio.Stereo {
		chunk := buf.Samples[off:min(off+writeChunkFrames*audio.Stereo, len(buf.Samples))]
		ib.Data = ib.Data[:len(chunk)]
		for i, v := range chunk {
			ib.Data[i] = utils.FloatToInt(v, bitDepth)
		}
		if err := enc.Write(ib); err != nil {
			return fmt.Errorf("encoding wav: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return nil
}
