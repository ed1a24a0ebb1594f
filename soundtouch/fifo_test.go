// SPDX-License-Identifier: EPL-2.0

package soundtouch

import (
	"slices"
	"testing"
)

func frames(vals ...float32) []float32 { return vals }

func checkInvariant(t *testing.T, b *SampleBuffer) {
	t.Helper()
	if (b.Position()+b.Frames())*Channels > len(b.Vector()) {
		t.Fatalf("live region [%d,%d) exceeds vector of %d samples",
			b.StartIndex(), b.EndIndex(), len(b.Vector()))
	}
}

func TestSampleBuffer_PutReceive(t *testing.T) {
	t.Parallel()

	b := NewSampleBuffer(4)
	b.PutSamples(frames(1, -1, 2, -2, 3, -3), 0, 3)
	if b.Frames() != 3 {
		t.Fatalf("Frames() = %d, want 3", b.Frames())
	}
	checkInvariant(t, b)

	dst := make([]float32, 4)
	if n := b.ReceiveSamples(dst, 2); n != 2 {
		t.Fatalf("ReceiveSamples() = %d, want 2", n)
	}
	if !slices.Equal(dst, frames(1, -1, 2, -2)) {
		t.Errorf("received %v", dst)
	}
	if b.Position() != 2 || b.Frames() != 1 {
		t.Errorf("position %d frames %d, want 2 and 1", b.Position(), b.Frames())
	}

	// Asking for more than is buffered returns what is there.
	if n := b.ReceiveSamples(dst, 5); n != 1 || dst[0] != 3 || dst[1] != -3 {
		t.Errorf("ReceiveSamples(5) = %d, dst %v", n, dst[:2])
	}
}

func TestSampleBuffer_PutSamplesOffset(t *testing.T) {
	t.Parallel()

	b := NewSampleBuffer(8)
	b.PutSamples(frames(0, 0, 1, 1, 2, 2, 3, 3), 1, 2)

	dst := make([]float32, 4)
	b.Extract(dst, 0, 2)
	if !slices.Equal(dst, frames(1, 1, 2, 2)) {
		t.Errorf("Extract() = %v", dst)
	}
	if b.Frames() != 2 {
		t.Errorf("Extract consumed frames: %d left", b.Frames())
	}
}

func TestSampleBuffer_PutBufferAndExtract(t *testing.T) {
	t.Parallel()

	src := NewSampleBuffer(8)
	src.PutSamples(frames(1, 1, 2, 2, 3, 3, 4, 4), 0, 4)
	src.Receive(1)

	dst := NewSampleBuffer(8)
	dst.PutBuffer(src, 1, 2)
	if src.Frames() != 3 {
		t.Errorf("PutBuffer modified its source: %d frames", src.Frames())
	}

	out := make([]float32, 4)
	dst.Extract(out, 0, 2)
	if !slices.Equal(out, frames(3, 3, 4, 4)) {
		t.Errorf("PutBuffer copied %v, want frames 3 and 4", out)
	}
}

func TestSampleBuffer_SilenceAndUnput(t *testing.T) {
	t.Parallel()

	b := NewSampleBuffer(2)
	b.PutSamples(frames(9, 9), 0, 1)
	b.PutSilence(3)
	if b.Frames() != 4 {
		t.Fatalf("Frames() = %d, want 4", b.Frames())
	}

	out := make([]float32, 8)
	b.Extract(out, 0, 4)
	if !slices.Equal(out, frames(9, 9, 0, 0, 0, 0, 0, 0)) {
		t.Errorf("contents %v", out)
	}

	b.Unput(2)
	if b.Frames() != 2 {
		t.Errorf("after Unput(2) Frames() = %d, want 2", b.Frames())
	}
	b.Unput(10)
	if b.Frames() != 0 {
		t.Errorf("Unput beyond length left %d frames", b.Frames())
	}
}

func TestSampleBuffer_ReceiveAll(t *testing.T) {
	t.Parallel()

	for _, n := range []int{-1, 100} {
		b := NewSampleBuffer(4)
		b.PutSilence(3)
		b.Receive(n)
		if b.Frames() != 0 {
			t.Errorf("Receive(%d) left %d frames", n, b.Frames())
		}
		checkInvariant(t, b)
	}
}

func TestSampleBuffer_EnsureCapacityRewinds(t *testing.T) {
	t.Parallel()

	b := NewSampleBuffer(4)
	b.PutSamples(frames(1, 1, 2, 2, 3, 3, 4, 4), 0, 4)
	b.Receive(3)

	before := &b.Vector()[0]
	b.EnsureAdditionalCapacity(3)
	if &b.Vector()[0] != before {
		t.Error("EnsureAdditionalCapacity reallocated although compaction was enough")
	}
	if b.Position() != 0 {
		t.Errorf("Position() = %d after rewind, want 0", b.Position())
	}

	out := make([]float32, 2)
	b.Extract(out, 0, 1)
	if out[0] != 4 {
		t.Errorf("rewind lost data: first frame %v", out)
	}
	checkInvariant(t, b)
}

func TestSampleBuffer_GrowsGeometrically(t *testing.T) {
	t.Parallel()

	b := NewSampleBuffer(16)
	b.PutSilence(10)
	b.EnsureAdditionalCapacity(10)
	if got := b.CapacityFrames(); got != 32 {
		t.Errorf("CapacityFrames() = %d, want 32", got)
	}

	b.EnsureAdditionalCapacity(100)
	if got := b.CapacityFrames(); got != 110 {
		t.Errorf("CapacityFrames() = %d, want 110", got)
	}
	if b.Frames() != 10 {
		t.Errorf("growth lost frames: %d", b.Frames())
	}
	checkInvariant(t, b)
}

func TestSampleBuffer_ClearKeepsStorage(t *testing.T) {
	t.Parallel()

	b := NewSampleBuffer(64)
	b.PutSilence(40)
	b.Receive(10)
	b.Clear()

	if b.Frames() != 0 || b.Position() != 0 {
		t.Errorf("Clear left position %d frames %d", b.Position(), b.Frames())
	}
	if b.CapacityFrames() != 64 {
		t.Errorf("Clear changed capacity to %d", b.CapacityFrames())
	}
}

func TestSampleBuffer_SteadyStateDoesNotAllocate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	b := NewSampleBuffer(1024)
	in := make([]float32, 256*Channels)
	out := make([]float32, 256*Channels)

	allocs := testing.AllocsPerRun(200, func() {
		b.PutSamples(in, 0, 256)
		b.ReceiveSamples(out, 256)
	})
	if allocs > 0 {
		t.Errorf("put/receive cycle allocated %v times, want 0", allocs)
	}
}
