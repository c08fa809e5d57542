// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

// LIFO is the combined interface of a last-in first-out collection.
//
// The interface intentionally excludes length because accurate counts in
// lock-free algorithms require expensive cross-core synchronization.
//
// Example:
//
//	s := lfc.NewStack[int](1024)
//
//	v := 42
//	if err := s.Push(&v); err != nil {
//	    // Every slot is in use
//	}
//
//	top, err := s.Pop()
//	if err == nil {
//	    fmt.Println(top)
//	}
type LIFO[T any] interface {
	Pusher[T]
	Popper[T]
	Reclaimer
	Cap() int
}

// Pusher is the interface for adding elements on top of a stack.
type Pusher[T any] interface {
	// Push adds an element (non-blocking, lock-free).
	// The element is copied into the collection.
	// Returns nil on success, ErrWouldBlock if no slot is available.
	Push(elem *T) error
}

// Popper is the interface for removing elements from the top of a stack.
type Popper[T any] interface {
	// Pop removes and returns the most recently pushed element.
	// Returns (zero-value, ErrWouldBlock) if the stack is empty.
	Pop() (T, error)
}

// FIFO is the combined interface of a first-in first-out collection.
type FIFO[T any] interface {
	Producer[T]
	Consumer[T]
	Reclaimer
	Cap() int
}

// Producer is the interface for enqueueing elements.
type Producer[T any] interface {
	// Enqueue adds an element at the tail (non-blocking, lock-free).
	// The element is copied into the collection.
	// Returns nil on success, ErrWouldBlock if no slot is available.
	Enqueue(elem *T) error
}

// Consumer is the interface for dequeueing elements.
type Consumer[T any] interface {
	// Dequeue removes and returns the oldest element.
	// Returns (zero-value, ErrWouldBlock) if the queue is empty.
	Dequeue() (T, error)
}

// Reclaimer exposes the deferred-reclamation state of a collection.
//
// Removed nodes are not reused while any goroutine may still hold a
// reference obtained before the removal. They wait on a deferred list
// until an operation departs with no other operation in flight.
type Reclaimer interface {
	// DeferredCount returns the number of removed elements whose nodes
	// are not yet freed. For a queue, superseded root records that own no
	// node also wait on the deferred list but are not counted.
	// Diagnostic only; the value may be stale by the time it is read.
	DeferredCount() int

	// Reclaim frees the deferred list if the caller is the only goroutine
	// inside the collection, and does nothing otherwise.
	Reclaim()
}

var (
	_ LIFO[int] = (*Stack[int])(nil)
	_ FIFO[int] = (*Queue[int])(nil)
)
