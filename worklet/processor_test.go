// SPDX-License-Identifier: EPL-2.0

package worklet

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audtempo/audio"
	"github.com/ik5/audtempo/internal/audiotest"
	"github.com/ik5/audtempo/soundtouch"
)

const testRate = 44100

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newProcessor(opts ...Option) *Processor {
	return New(append([]Option{WithLogger(quietLogger())}, opts...)...)
}

func sineBuffer(t *testing.T, frames int) *audio.Buffer {
	t.Helper()
	buf, err := audio.NewBuffer(audiotest.StereoSine(frames, testRate, 330, 0.5), testRate)
	require.NoError(t, err)
	return buf
}

func rampBuffer(t *testing.T, frames int) *audio.Buffer {
	t.Helper()
	buf, err := audio.NewBuffer(audiotest.StereoRamp(frames), testRate)
	require.NoError(t, err)
	return buf
}

// render calls Process blocks times with block-frame periods and returns
// everything written, silence included.
func render(p *Processor, block, blocks int) []float32 {
	out := make([]float32, 0, block*blocks*soundtouch.Channels)
	period := make([]float32, block*soundtouch.Channels)
	for range blocks {
		p.Process(period)
		out = append(out, period...)
	}
	return out
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestProcessor_IdleRendersSilence(t *testing.T) {
	t.Parallel()

	p := newProcessor()
	out := []float32{1, 1, 1, 1, 1, 1}

	n, active := p.Process(out)
	assert.Equal(t, 0, n)
	assert.False(t, active)
	assert.Equal(t, make([]float32, 6), out)

	st := p.Stats()
	assert.Equal(t, uint64(1), st.Callbacks)
	assert.Equal(t, uint64(3), st.SilenceFrames)
	assert.False(t, p.Active())
}

func TestProcessor_PlaysToEnd(t *testing.T) {
	t.Parallel()

	p := newProcessor()
	buf := rampBuffer(t, 10000)
	sess, err := p.Load(buf)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, 10000, sess.Frames)

	period := make([]float32, 512*soundtouch.Channels)
	var got []float32
	calls := 0
	for {
		n, active := p.Process(period)
		calls++
		got = append(got, period[:n*soundtouch.Channels]...)
		if !active {
			// The tail of the last period is padding.
			for _, v := range period[n*soundtouch.Channels:] {
				require.Zero(t, v)
			}
			break
		}
		require.Equal(t, 512, n)
		require.True(t, p.Active())
	}

	assert.Equal(t, 20, calls)
	assert.Equal(t, buf.Samples, got)
	assert.True(t, isClosed(sess.Done))
	assert.False(t, p.Active())

	// Terminal: later periods are silent.
	for i := range period {
		period[i] = 1
	}
	n, active := p.Process(period)
	assert.Zero(t, n)
	assert.False(t, active)
	assert.Equal(t, make([]float32, len(period)), period)

	st := p.Stats()
	assert.Equal(t, uint64(21), st.Callbacks)
	assert.Equal(t, uint64(10000), st.FramesRendered)
	assert.Equal(t, uint64(512-272+512), st.SilenceFrames)
	assert.Equal(t, uint64(1), st.SessionsLoaded)
	assert.Equal(t, uint64(1), st.SessionsEnded)
}

func TestProcessor_SeekMatchesFreshStart(t *testing.T) {
	t.Parallel()

	const target = testRate
	buf := sineBuffer(t, 3*testRate)
	tail, err := audio.NewBuffer(buf.Samples[target*soundtouch.Channels:], testRate)
	require.NoError(t, err)

	configure := func(p *Processor) {
		_, err := p.SetTempo(1.25)
		require.NoError(t, err)
		_, err = p.SetPitchSemitones(3)
		require.NoError(t, err)
	}

	seeked := newProcessor()
	configure(seeked)
	_, err = seeked.Load(buf)
	require.NoError(t, err)
	render(seeked, 512, 10)
	require.NoError(t, seeked.Seek(target))
	got := render(seeked, 512, 16)

	fresh := newProcessor()
	configure(fresh)
	_, err = fresh.Load(tail)
	require.NoError(t, err)
	want := render(fresh, 512, 16)

	assert.Equal(t, want, got)
	assert.Equal(t, uint64(1), seeked.Stats().Seeks)
	assert.Greater(t, seeked.PositionFrame(), target)
}

func TestProcessor_NegativeSeekRestarts(t *testing.T) {
	t.Parallel()

	buf := rampBuffer(t, 8000)
	p := newProcessor()
	_, err := p.Load(buf)
	require.NoError(t, err)

	render(p, 256, 5)
	require.NoError(t, p.Seek(-50))
	got := render(p, 256, 4)

	assert.Equal(t, buf.Samples[:256*4*soundtouch.Channels], got)
}

func TestProcessor_SeekPastEndEndsSession(t *testing.T) {
	t.Parallel()

	p := newProcessor()
	sess, err := p.Load(rampBuffer(t, 1000))
	require.NoError(t, err)
	render(p, 128, 1)

	require.NoError(t, p.Seek(5000))
	n, active := p.Process(make([]float32, 256))
	assert.Zero(t, n)
	assert.False(t, active)
	assert.True(t, isClosed(sess.Done))
	assert.Equal(t, 1000, p.PositionFrame())

	// Seeks cannot revive an ended session.
	require.NoError(t, p.Seek(0))
	n, _ = p.Process(make([]float32, 256))
	assert.Zero(t, n)
	assert.Equal(t, uint64(1), p.Stats().Seeks)
}

func TestProcessor_SeekWithoutSessionIsIgnored(t *testing.T) {
	t.Parallel()

	p := newProcessor()
	require.NoError(t, p.Seek(100))
	p.Process(make([]float32, 64))
	assert.Zero(t, p.Stats().Seeks)

	buf := rampBuffer(t, 500)
	_, err := p.Load(buf)
	require.NoError(t, err)
	got := render(p, 100, 1)
	assert.Equal(t, buf.Samples[:200], got)
}

func TestProcessor_LoadReplacesSession(t *testing.T) {
	t.Parallel()

	p := newProcessor()
	first, err := p.Load(sineBuffer(t, 20000))
	require.NoError(t, err)
	render(p, 512, 2)

	next := rampBuffer(t, 4000)
	second, err := p.Load(next)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, isClosed(first.Done), "replacement takes effect on the audio side")

	got := render(p, 512, 1)
	assert.Equal(t, next.Samples[:512*soundtouch.Channels], got)
	assert.True(t, isClosed(first.Done))
	assert.False(t, isClosed(second.Done))

	st := p.Stats()
	assert.Equal(t, uint64(2), st.SessionsLoaded)
	assert.Equal(t, uint64(1), st.SessionsEnded)
	assert.True(t, p.Active())
}

func TestProcessor_InboxFull(t *testing.T) {
	t.Parallel()

	p := newProcessor(WithInboxSize(1))
	require.NoError(t, p.Seek(1))
	assert.ErrorIs(t, p.Seek(2), ErrInboxFull)

	_, err := p.Load(rampBuffer(t, 10))
	assert.ErrorIs(t, err, ErrInboxFull)

	// Draining makes room again.
	p.Process(nil)
	assert.NoError(t, p.Seek(3))
}

func TestProcessor_Post(t *testing.T) {
	t.Parallel()

	p := newProcessor()
	assert.ErrorIs(t, p.Post(Load{}), ErrNilBuffer)
	assert.ErrorIs(t, p.Post(nil), ErrUnknownMessage)

	buf := rampBuffer(t, 600)
	require.NoError(t, p.Post(Load{Buffer: buf}))
	require.NoError(t, p.Post(Seek{Frame: 300}))

	got := render(p, 100, 1)
	assert.Equal(t, buf.Samples[600:800], got)
	assert.Equal(t, 600, p.PositionFrame(), "the filter reads ahead to the end")
}

func TestProcessor_SharedControls(t *testing.T) {
	t.Parallel()

	c := soundtouch.NewControls(soundtouch.DefaultParams())
	p := newProcessor(WithControls(c))
	require.Same(t, c, p.Controls())

	_, err := p.SetRate(1.5)
	require.NoError(t, err)
	_, err = p.SetTempoChange(10)
	require.NoError(t, err)
	_, err = p.SetPitch(0.5)
	require.NoError(t, err)
	params, err := p.SetRateChange(-20)
	require.NoError(t, err)

	assert.InDelta(t, 0.8, params.Rate, 1e-12)
	assert.InDelta(t, 1.1, params.Tempo, 1e-12)
	assert.Equal(t, 0.5, c.Params().Pitch)

	_, err = p.SetTempo(0)
	assert.ErrorIs(t, err, soundtouch.ErrInvalidFactor)
}

func TestProcessor_ControlsFromAnotherGoroutine(t *testing.T) {
	t.Parallel()

	p := newProcessor()
	sess, err := p.Load(sineBuffer(t, 4*testRate))
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		period := make([]float32, 256*soundtouch.Channels)
		for {
			if _, active := p.Process(period); !active {
				return
			}
		}
	}()

	for i := 0; !isClosed(sess.Done) && i < 2000; i++ {
		_, _ = p.SetPitchSemitones(float64(i%13 - 6))
		_, _ = p.SetTempo(0.8 + 0.05*float64(i%8))
		if i%100 == 0 {
			_ = p.Seek(i * 10)
		}
	}
	wg.Wait()

	assert.True(t, isClosed(sess.Done))
	assert.Equal(t, uint64(1), p.Stats().SessionsEnded)
}

func TestProcessor_ProcessDoesNotAllocate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	p := newProcessor()
	_, err := p.SetPitchSemitones(-3)
	require.NoError(t, err)
	_, err = p.SetTempo(1.1)
	require.NoError(t, err)
	_, err = p.Load(sineBuffer(t, 30*testRate))
	require.NoError(t, err)

	period := make([]float32, 256*soundtouch.Channels)
	for range 100 {
		p.Process(period)
	}

	allocs := testing.AllocsPerRun(200, func() {
		p.Process(period)
	})
	assert.Zero(t, allocs)
}
