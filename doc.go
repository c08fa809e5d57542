// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lfc provides lock-free linked collections with quiescent-state
// memory reclamation.
//
// Two collections are offered:
//
//   - Stack: multi-producer multi-consumer LIFO (Treiber stack)
//   - Queue: multi-producer multi-consumer FIFO (immutable root records)
//
// Both are singly-linked structures whose shared words change only by
// compare-and-swap. Nodes live in a per-collection slot arena and are
// addressed by handle, so a removed node can be handed out again by a
// later insert. Reusing a slot while another goroutine still holds its
// handle would be a use-after-free (and an ABA hazard for the head CAS);
// the reclamation scheme below is what rules it out.
//
// # Quick Start
//
//	s := lfc.NewStack[Event](1024)
//	q := lfc.NewQueue[*Request](4096)
//
// Builder API:
//
//	s := lfc.BuildStack[Event](lfc.New(1024))
//	q := lfc.BuildQueue[Event](lfc.New(1024).Checked())
//
// # Basic Usage
//
//	s := lfc.NewStack[int](1024)
//
//	v := 42
//	if err := s.Push(&v); lfc.IsWouldBlock(err) {
//	    // Every slot is live or awaiting reclamation
//	}
//
//	top, err := s.Pop()
//	if lfc.IsWouldBlock(err) {
//	    // Stack is empty - not a failure
//	}
//
// Queue has the same shape with Enqueue and Dequeue.
//
// # Reclamation
//
// Each collection counts the goroutines currently inside an operation
// that may dereference shared nodes (Pop for the stack; Enqueue and
// Dequeue for the queue). An operation increments the counter before its
// first load of the head or root word and decrements it only after its
// last access to any node it read.
//
// A node detached by a removal is retired, not freed. On departure:
//
//   - if the goroutine observes itself as the only active one, it claims
//     the whole deferred list, decrements the counter, and frees the list
//     when the counter reached zero (or chains it back when a newcomer
//     slipped in). Its own detached node is freed either way.
//   - otherwise it pushes its node onto the deferred list and decrements.
//
// This is a coarse substitute for hazard pointers or epoch-based
// reclamation: correct, but the deferred list only drains when the
// collection happens to quiesce. Under constant overlap the list grows,
// and retired nodes count against capacity. Call [Stack.Reclaim] or
// [Queue.Reclaim] once traffic stops to free everything deferred.
//
// The queue retires whole root records. Each superseded root owns at
// most one node (the one its successor dequeued) and frees it with itself.
//
// # Diagnostics
//
//	s.DeferredCount()   // popped nodes not yet freed
//	q.DeferredCount()   // dequeued nodes not yet freed
//
// [Builder.Checked] tracks the lifecycle state of every slot and panics on
// a double free, a free of a live slot, or a second removal of the same
// node. Stress tests run in checked mode.
//
// # Capacity
//
// Capacity rounds up to the next power of 2 and counts node slots:
//
//	s := lfc.NewStack[int](3)     // Cap() == 4
//	q := lfc.NewQueue[int](1000)  // Cap() == 1024
//
// Minimum capacity is 2. Panic if capacity < 2.
//
// Push and Enqueue return [ErrWouldBlock] when every slot is live or
// retired and a reclamation attempt freed nothing. Pop and Dequeue return
// [ErrWouldBlock] when the collection is empty. Neither is a failure; use
// [IsWouldBlock] or [IsNonFailure] to classify.
//
// # Progress
//
// All operations are lock-free: a CAS failure means another goroutine
// succeeded, and the loser retries after a short spin. There is no
// blocking or cancellation; a caller that wants to wait for an element
// retries with [code.hybscloud.com/iox.Backoff].
//
// # Race Detection
//
// Element payloads are plain fields published by acquire-release atomics
// on the head and root words. Go's race detector cannot observe that
// ordering and may report false positives, so concurrent stress tests
// over generic element types skip when [RaceEnabled] is true.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors and
// backoff, [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause instructions.
package lfc
