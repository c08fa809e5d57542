// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Stack is a lock-free multi-producer multi-consumer LIFO stack.
//
// Treiber stack over arena slots: head holds the handle of the top node
// and is only ever changed by compare-and-swap. Popped nodes are not
// reused at once; they go through quiescent-state reclamation (see
// [Stack.Pop]) so that a goroutine still holding a handle it read from
// head never sees that slot handed out again.
//
// Memory: capacity slots (8 bytes link + T per slot), plus an 8-byte
// free-pool cell per slot. Popped-but-unreclaimed nodes count against
// capacity.
type Stack[T any] struct {
	_     pad
	head  atomix.Uint64 // Top node handle
	_     pad
	rc    reclaimer
	nodes *arena[stackNode[T]]
}

type stackNode[T any] struct {
	next atomix.Uint64 // Node below, or next on the deferred chain once retired
	data T
}

// NewStack creates a new stack holding up to capacity nodes.
// Capacity rounds up to the next power of 2.
func NewStack[T any](capacity int) *Stack[T] {
	if capacity < 2 {
		panic("lfc: capacity must be >= 2")
	}
	return newStack[T](uint64(roundToPow2(capacity)), false)
}

func newStack[T any](n uint64, checked bool) *Stack[T] {
	return &Stack[T]{
		nodes: newArena(n, checked, func(nd *stackNode[T]) {
			var zero T
			nd.data = zero
			nd.next.StoreRelaxed(nilHandle)
		}),
	}
}

// Push adds an element on top of the stack.
// The element is copied into a node slot.
// Returns ErrWouldBlock if every slot is live or awaiting reclamation.
func (s *Stack[T]) Push(elem *T) error {
	h, ok := s.nodes.alloc()
	if !ok {
		s.Reclaim()
		if h, ok = s.nodes.alloc(); !ok {
			return ErrWouldBlock
		}
	}
	nd := s.nodes.at(h)
	nd.data = *elem

	sw := spin.Wait{}
	for {
		top := s.head.LoadAcquire()
		nd.next.StoreRelaxed(top)
		if s.head.CompareAndSwapAcqRel(top, h) {
			return nil
		}
		sw.Once()
	}
}

// Pop removes and returns the top element.
// Returns (zero-value, ErrWouldBlock) if the stack is empty.
//
// The goroutine announces itself before reading head and departs only
// after its last access to the detached node. The detached node is freed
// immediately when the goroutine was the only one inside Pop; otherwise
// it is deferred until some later departure finds the stack quiescent.
func (s *Stack[T]) Pop() (T, error) {
	s.rc.enter()
	sw := spin.Wait{}
	for {
		top := s.head.LoadAcquire()
		if top == nilHandle {
			s.rc.leave(s, nilHandle)
			var zero T
			return zero, ErrWouldBlock
		}
		s.nodes.checkReachable(top)
		next := s.nodes.at(top).next.LoadAcquire()
		if s.head.CompareAndSwapAcqRel(top, next) {
			s.nodes.retire(top)
			elem := s.nodes.at(top).data
			s.rc.leave(s, top)
			return elem, nil
		}
		sw.Once()
	}
}

// DeferredCount returns the number of popped nodes awaiting reclamation.
// Diagnostic only.
func (s *Stack[T]) DeferredCount() int {
	return s.rc.deferred()
}

// Reclaim frees all deferred nodes if no other goroutine is inside Pop.
// Otherwise it is a no-op; the last goroutine to leave frees them.
func (s *Stack[T]) Reclaim() {
	s.rc.enter()
	s.rc.leave(s, nilHandle)
}

// Cap returns the stack capacity.
func (s *Stack[T]) Cap() int {
	return s.nodes.capacity()
}

func (s *Stack[T]) link(h uint64) *atomix.Uint64 {
	return &s.nodes.at(h).next
}

func (s *Stack[T]) reclaim(h uint64) {
	s.nodes.release(h)
}
