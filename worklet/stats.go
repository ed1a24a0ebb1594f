// SPDX-License-Identifier: EPL-2.0

package worklet

import "sync/atomic"

// Stats is a point-in-time copy of the processor counters.
type Stats struct {
	Callbacks      uint64
	FramesRendered uint64
	SilenceFrames  uint64
	Seeks          uint64
	SessionsLoaded uint64
	SessionsEnded  uint64
}

type counters struct {
	callbacks      atomic.Uint64
	framesRendered atomic.Uint64
	silenceFrames  atomic.Uint64
	seeks          atomic.Uint64
	sessionsLoaded atomic.Uint64
	sessionsEnded  atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Callbacks:      c.callbacks.Load(),
		FramesRendered: c.framesRendered.Load(),
		SilenceFrames:  c.silenceFrames.Load(),
		Seeks:          c.seeks.Load(),
		SessionsLoaded: c.sessionsLoaded.Load(),
		SessionsEnded:  c.sessionsEnded.Load(),
	}
}
