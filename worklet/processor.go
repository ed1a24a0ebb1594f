// SPDX-License-Identifier: EPL-2.0

package worklet

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/ik5/audtempo/audio"
	"github.com/ik5/audtempo/soundtouch"
)

const (
	// DefaultInboxSize is how many messages may wait for the audio side.
	DefaultInboxSize = 16

	// DefaultPullFrames is the filter chunk size; smaller chunks keep the
	// work per callback even.
	DefaultPullFrames = 1024
)

// Option configures a Processor.
type Option func(*Processor)

// WithControls makes the processor read parameters from c.
func WithControls(c *soundtouch.Controls) Option {
	return func(p *Processor) { p.controls = c }
}

// WithStretchOptions sets the stretcher sequencing. SampleRate is taken from
// each loaded buffer.
func WithStretchOptions(opts soundtouch.StretchOptions) Option {
	return func(p *Processor) { p.stretchOpts = opts }
}

// WithInboxSize sets the message queue length.
func WithInboxSize(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.inboxSize = n
		}
	}
}

// WithPullFrames sets how many source frames are fed per pipeline pass.
func WithPullFrames(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.pullFrames = n
		}
	}
}

// WithLogger sets the logger used on the control side.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// Session identifies a loaded buffer. Done is closed once the session stops
// producing audio, either because its source ran out or because a later
// Load replaced it.
type Session struct {
	ID     string
	Frames int
	Done   <-chan struct{}
}

type session struct {
	id     string
	source *SeekSource
	filter *soundtouch.Filter
	done   chan struct{}
	ended  bool
}

func (s *session) end() {
	if s.ended {
		return
	}
	s.ended = true
	close(s.done)
}

// Processor is the audio side of playback. The control side hands it
// buffers and seeks through Post, Load and Seek; the audio callback calls
// Process. Everything needed for a session is allocated in Load, so
// Process neither blocks nor allocates.
type Processor struct {
	controls    *soundtouch.Controls
	stretchOpts soundtouch.StretchOptions
	inboxSize   int
	pullFrames  int
	logger      *slog.Logger

	inbox chan command

	// Owned by the goroutine calling Process.
	current *session

	stats    counters
	position atomic.Int64
	active   atomic.Bool
}

// New returns an idle processor.
func New(opts ...Option) *Processor {
	p := &Processor{
		stretchOpts: soundtouch.DefaultStretchOptions(),
		inboxSize:   DefaultInboxSize,
		pullFrames:  DefaultPullFrames,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.controls == nil {
		p.controls = soundtouch.NewControls(soundtouch.DefaultParams())
	}
	p.inbox = make(chan command, p.inboxSize)
	return p
}

// Controls returns the parameters shared with the audio side.
func (p *Processor) Controls() *soundtouch.Controls { return p.controls }

// SetTempo sets the tempo factor.
func (p *Processor) SetTempo(tempo float64) (soundtouch.Params, error) {
	return p.controls.SetTempo(tempo)
}

// SetTempoChange sets tempo as a percentage change.
func (p *Processor) SetTempoChange(percent float64) (soundtouch.Params, error) {
	return p.controls.SetTempoChange(percent)
}

// SetRate sets the playback rate factor.
func (p *Processor) SetRate(rate float64) (soundtouch.Params, error) {
	return p.controls.SetRate(rate)
}

// SetRateChange sets rate as a percentage change.
func (p *Processor) SetRateChange(percent float64) (soundtouch.Params, error) {
	return p.controls.SetRateChange(percent)
}

// SetPitch sets the pitch factor.
func (p *Processor) SetPitch(pitch float64) (soundtouch.Params, error) {
	return p.controls.SetPitch(pitch)
}

// SetPitchSemitones sets pitch in semitones.
func (p *Processor) SetPitchSemitones(semitones float64) (soundtouch.Params, error) {
	return p.controls.SetPitchSemitones(semitones)
}

// Post queues msg for the audio side without blocking.
func (p *Processor) Post(msg Message) error {
	switch m := msg.(type) {
	case Load:
		_, err := p.Load(m.Buffer)
		return err
	case Seek:
		return p.Seek(m.Frame)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownMessage, msg)
	}
}

// Load builds a session for buf and queues it. The session starts playing
// on the next Process call after it is dequeued.
func (p *Processor) Load(buf *audio.Buffer) (Session, error) {
	if buf == nil {
		return Session{}, ErrNilBuffer
	}

	opts := p.stretchOpts
	opts.SampleRate = buf.SampleRate

	src := NewSeekSource(soundtouch.NewBufferSource(buf), buf.Frames())
	pipe := soundtouch.New(
		soundtouch.WithControls(p.controls),
		soundtouch.WithStretchOptions(opts),
	)
	filter, err := soundtouch.NewFilter(src, pipe, p.pullFrames)
	if err != nil {
		return Session{}, fmt.Errorf("creating filter: %w", err)
	}

	s := &session{
		id:     uuid.NewString(),
		source: src,
		filter: filter,
		done:   make(chan struct{}),
	}
	if err := p.enqueue(command{kind: commandLoad, session: s}); err != nil {
		return Session{}, err
	}

	p.logger.Info("session queued",
		slog.String("session", s.id),
		slog.Int("frames", buf.Frames()),
		slog.Int("sample_rate", buf.SampleRate),
	)
	return Session{ID: s.id, Frames: buf.Frames(), Done: s.done}, nil
}

// Seek queues a jump to an absolute source frame of the current session.
func (p *Processor) Seek(frame int) error {
	if err := p.enqueue(command{kind: commandSeek, frame: frame}); err != nil {
		return err
	}
	p.logger.Debug("seek queued", slog.Int("frame", frame))
	return nil
}

func (p *Processor) enqueue(cmd command) error {
	select {
	case p.inbox <- cmd:
		return nil
	default:
		p.logger.Warn("dropping message, inbox full", slog.Int("capacity", cap(p.inbox)))
		return ErrInboxFull
	}
}

// Process fills out with interleaved stereo frames. It returns how many
// frames came from the session and whether the session is still playing.
// Whatever the session did not fill is silence. Once a session runs short
// it is over: its Done channel is closed and every later call renders
// silence until a new buffer is loaded.
func (p *Processor) Process(out []float32) (int, bool) {
	p.stats.callbacks.Add(1)
	p.drain()

	want := len(out) / soundtouch.Channels
	s := p.current
	if s == nil || s.ended {
		clear(out)
		p.stats.silenceFrames.Add(uint64(want))
		return 0, false
	}

	n := s.filter.Extract(out, want)
	p.stats.framesRendered.Add(uint64(n))
	p.position.Store(int64(s.source.Position()))

	if n < want {
		clear(out[n*soundtouch.Channels:])
		p.stats.silenceFrames.Add(uint64(want - n))
		p.finish(s)
		return n, false
	}
	return n, true
}

func (p *Processor) drain() {
	for {
		select {
		case cmd := <-p.inbox:
			p.apply(cmd)
		default:
			return
		}
	}
}

func (p *Processor) apply(cmd command) {
	switch cmd.kind {
	case commandLoad:
		if p.current != nil {
			p.finish(p.current)
		}
		p.current = cmd.session
		p.stats.sessionsLoaded.Add(1)
		p.position.Store(0)
		p.active.Store(true)

	case commandSeek:
		s := p.current
		if s == nil || s.ended {
			return
		}
		s.source.Seek(cmd.frame)
		s.filter.Clear()
		p.stats.seeks.Add(1)
		p.position.Store(int64(s.source.Position()))
	}
}

func (p *Processor) finish(s *session) {
	if s.ended {
		return
	}
	s.end()
	p.stats.sessionsEnded.Add(1)
	if s == p.current {
		p.active.Store(false)
	}
}

// Stats returns the current counters.
func (p *Processor) Stats() Stats { return p.stats.snapshot() }

// PositionFrame returns the source frame the current session reads next.
func (p *Processor) PositionFrame() int { return int(p.position.Load()) }

// Active reports whether a session is loaded and still playing.
func (p *Processor) Active() bool { return p.active.Load() }
