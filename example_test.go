// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc_test

import (
	"fmt"

	"code.hybscloud.com/lfc"
)

// ExampleNewStack demonstrates LIFO push and pop.
func ExampleNewStack() {
	s := lfc.NewStack[int](8)

	for i := 1; i <= 3; i++ {
		s.Push(&i)
	}

	for {
		v, err := s.Pop()
		if lfc.IsWouldBlock(err) {
			break // empty
		}
		fmt.Println(v)
	}

	// Output:
	// 3
	// 2
	// 1
}

// ExampleNewQueue demonstrates FIFO enqueue and dequeue.
func ExampleNewQueue() {
	q := lfc.NewQueue[string](8)

	for _, s := range []string{"a", "b", "c"} {
		q.Enqueue(&s)
	}

	for {
		v, err := q.Dequeue()
		if err != nil {
			break
		}
		fmt.Println(v)
	}

	// Output:
	// a
	// b
	// c
}

// ExampleBuilder_Checked demonstrates a checked stack and the reclamation
// diagnostics.
func ExampleBuilder_Checked() {
	s := lfc.BuildStack[int](lfc.New(4).Checked())

	v := 1
	s.Push(&v)
	s.Pop()

	// A single goroutine is always alone: its node is freed on departure.
	fmt.Println("deferred:", s.DeferredCount())

	s.Reclaim()
	fmt.Println("cap:", s.Cap())

	// Output:
	// deferred: 0
	// cap: 4
}

// ExampleQueue_Reclaim demonstrates forcing reclamation after traffic stops.
func ExampleQueue_Reclaim() {
	q := lfc.NewQueue[int](16)
	for i := range 4 {
		q.Enqueue(&i)
	}
	for range 4 {
		q.Dequeue()
	}

	q.Reclaim()
	fmt.Println(q.DeferredCount())

	// Output:
	// 0
}
