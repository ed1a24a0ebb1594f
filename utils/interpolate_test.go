// SPDX-License-Identifier: EPL-2.0

package utils

import "testing"

func TestLerp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b float32
		t    float64
		want float32
	}{
		{a: 0, b: 1, t: 0, want: 0},
		{a: 0, b: 1, t: 1, want: 1},
		{a: -1, b: 1, t: 0.5, want: 0},
		{a: 0.25, b: 0.75, t: 0.25, want: 0.375},
		{a: 2, b: 4, t: 1.5, want: 5},
	}

	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); got != tt.want {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func BenchmarkLerp(b *testing.B) {
	var sink float32
	b.ReportAllocs()
	for i := range b.N {
		sink += Lerp(0.5, -0.25, float64(i&7)/8)
	}
	_ = sink
}
