// SPDX-License-Identifier: EPL-2.0

// Package formats wires every decoder into an audio.Registry.
package formats

import (
	"fmt"
	"os"

	"github.com/ik5/audtempo/audio"
	"github.com/ik5/audtempo/formats/aiff"
	"github.com/ik5/audtempo/formats/mp3"
	"github.com/ik5/audtempo/formats/vorbis"
	"github.com/ik5/audtempo/formats/wav"
)

// NewRegistry returns a registry keyed by file extension.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{}, "wave")
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{}, "oga")
	reg.Register("aiff", aiff.Decoder{}, "aif")
	return reg
}

// DecodeFile decodes the file at path fully into memory, picking the
// decoder from its extension.
func DecodeFile(reg *audio.Registry, path string) (*audio.Buffer, error) {
	dec, err := reg.Lookup(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return buf, nil
}
