// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc_test

import (
	"fmt"
	"testing"

	"code.hybscloud.com/lfc"
	"code.hybscloud.com/spin"
)

// =============================================================================
// Single Goroutine (no overlap: every removal reclaims at once)
// =============================================================================

func BenchmarkStack_PushPop(b *testing.B) {
	s := lfc.NewStack[int](1024)
	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		s.Push(&i)
		s.Pop()
	}
}

func BenchmarkQueue_EnqueueDequeue(b *testing.B) {
	q := lfc.NewQueue[int](1024)
	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		q.Enqueue(&i)
		q.Dequeue()
	}
}

// BenchmarkQueue_Batch measures the amortized cost of the push-side walk.
func BenchmarkQueue_Batch(b *testing.B) {
	for _, n := range []int{8, 64, 512} {
		b.Run(fmt.Sprintf("batch=%d", n), func(b *testing.B) {
			q := lfc.NewQueue[int](n)
			b.ResetTimer()
			for range b.N {
				for i := range n {
					q.Enqueue(&i)
				}
				for range n {
					q.Dequeue()
				}
			}
		})
	}
}

// =============================================================================
// Parallel (overlapping removals defer reclamation)
// =============================================================================

func BenchmarkStack_Parallel(b *testing.B) {
	s := lfc.NewStack[int](1 << 16)
	b.RunParallel(func(pb *testing.PB) {
		sw := spin.Wait{}
		i := 0
		for pb.Next() {
			for s.Push(&i) != nil {
				sw.Once()
			}
			sw.Reset()
			s.Pop()
			i++
		}
	})
	b.StopTimer()
	s.Reclaim()
	b.ReportMetric(float64(s.DeferredCount()), "deferred")
}

func BenchmarkQueue_Parallel(b *testing.B) {
	q := lfc.NewQueue[int](1 << 16)
	b.RunParallel(func(pb *testing.PB) {
		sw := spin.Wait{}
		i := 0
		for pb.Next() {
			for q.Enqueue(&i) != nil {
				sw.Once()
			}
			sw.Reset()
			q.Dequeue()
			i++
		}
	})
	b.StopTimer()
	q.Reclaim()
	b.ReportMetric(float64(q.DeferredCount()), "deferred")
}
