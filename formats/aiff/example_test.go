// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ik5/audtempo/audio"
	"github.com/ik5/audtempo/formats/aiff"
	"github.com/ik5/audtempo/formats/wav"
)

// ExampleDecoder_Decode shows how to decode an AIFF file.
func ExampleDecoder_Decode() {
	f, err := os.Open("input.aiff")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := aiff.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	fmt.Printf("Decoded AIFF: %d Hz, %d channels\n", src.SampleRate(), src.Channels())
}

// ExampleDecoder_Decode_convertToWav reads a whole AIFF file and saves it
// as 16 bit WAV.
func ExampleDecoder_Decode_convertToWav() {
	in, err := os.Open("input.aiff")
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	src, err := aiff.Decoder{}.Decode(in)
	if err != nil {
		log.Fatal(err)
	}

	// ReadAll mixes mono up to stereo
	buf, err := audio.ReadAll(src)
	if err != nil {
		log.Fatal(err)
	}

	out, err := os.Create("output.wav")
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	if err := wav.Write(out, buf, 16); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Converted %d frames\n", buf.Frames())
}

// ExampleDecoder_Decode_notAiff shows how to detect input that is not AIFF.
func ExampleDecoder_Decode_notAiff() {
	_, err := aiff.Decoder{}.Decode(strings.NewReader("This is not AIFF data"))
	if errors.Is(err, aiff.ErrNotAiffFile) {
		fmt.Println("Not an AIFF file")
	}

	// Output:
	// Not an AIFF file
}

// ExampleDecoder_registry registers the decoder under both extensions.
func ExampleDecoder_registry() {
	reg := audio.NewRegistry()
	reg.Register("aiff", aiff.Decoder{}, "aif")

	for _, name := range []string{"loop.AIF", "loop.aiff", "loop.wav"} {
		_, err := reg.Lookup(name)
		fmt.Printf("%s: %v\n", name, err == nil)
	}

	// Output:
	// loop.AIF: true
	// loop.aiff: true
	// loop.wav: false
}
