// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/ik5/audtempo/audio"
	"github.com/ik5/audtempo/formats/mp3"
)

// ExampleDecoder_Decode shows how to decode an MP3 file and read its length.
func ExampleDecoder_Decode() {
	f, err := os.Open("input.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := mp3.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	fmt.Printf("Decoded MP3: %d Hz, %d channels\n", src.SampleRate(), src.Channels())

	// A seekable input lets go-mp3 count frames up front
	if fc, ok := src.(audio.FrameCounter); ok && fc.Frames() > 0 {
		fmt.Printf("Length: %d frames\n", fc.Frames())
	}
}

// ExampleDecoder_Decode_readAll decodes a whole file into memory.
func ExampleDecoder_Decode_readAll() {
	f, err := os.Open("input.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := mp3.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%d frames, %v\n", buf.Frames(), buf.Duration())
}

// ExampleDecoder_Decode_invalid shows that garbage input is rejected before
// any samples are read.
func ExampleDecoder_Decode_invalid() {
	src, err := mp3.Decoder{}.Decode(bytes.NewReader([]byte("not an mp3 stream")))
	fmt.Println(src == nil, err != nil)

	// Output:
	// true true
}

// ExampleDecoder_registry registers the decoder with an audio.Registry.
func ExampleDecoder_registry() {
	reg := audio.NewRegistry()
	reg.Register("mp3", mp3.Decoder{})

	_, err := reg.Lookup("Track01.MP3")
	fmt.Println(err)
	_, err = reg.Lookup("Track01")
	fmt.Println(err)

	// Output:
	// <nil>
	// no decoder registered for format
}
