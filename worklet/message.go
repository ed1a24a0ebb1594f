// SPDX-License-Identifier: EPL-2.0

package worklet

import "github.com/ik5/audtempo/audio"

// Message is something the control side hands to the audio side.
type Message interface {
	message()
}

// Load hands over a decoded buffer. It replaces whatever the processor was
// playing; nothing of the previous session survives.
type Load struct {
	Buffer *audio.Buffer
}

// Seek moves playback to an absolute source frame of the current session.
type Seek struct {
	Frame int
}

func (Load) message() {}
func (Seek) message() {}

type commandKind uint8

const (
	commandLoad commandKind = iota + 1
	commandSeek
)

// command is what actually travels through the inbox. Load messages are
// turned into a ready session before they are queued.
type command struct {
	kind    commandKind
	session *session
	frame   int
}
