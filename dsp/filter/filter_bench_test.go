package filter

import (
	"fmt"
	"testing"
)

func BenchmarkProcessSample(b *testing.B) {
	f, _ := NewLowPass[float64](1000, 48000)
	x := 1.0
	for b.Loop() {
		x, _ = f.ProcessSample(x)
	}
	_ = x
}

func BenchmarkProcessBlock(b *testing.B) {
	for _, size := range []int{256, 1024, 4096} {
		b.Run(fmt.Sprintf("N=%d", size), func(b *testing.B) {
			f, _ := NewPeakingEQ[float64](1000, 48000, WithGain(3))
			buf := make([]float64, size)
			for i := range buf {
				buf[i] = float64(i) * 0.001
			}
			b.SetBytes(int64(size * 8))
			b.ResetTimer()
			for range b.N {
				f.ProcessBlock(buf)
			}
		})
	}
}

func BenchmarkSetCutoff(b *testing.B) {
	f, _ := NewLowPass[float64](1000, 48000)
	freq := 500.0
	for b.Loop() {
		freq += 1
		if freq > 20000 {
			freq = 500
		}
		_ = f.SetCutoff(freq)
	}
}
