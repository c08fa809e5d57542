// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// Queue is a lock-free multi-producer multi-consumer FIFO queue.
//
// The whole queue state lives in an immutable root record holding two
// singly-linked lists: the push side (newest first, linked by next) and
// the pop side (oldest first, linked by fwd). Every Enqueue and Dequeue
// builds a fresh root and installs it with a single compare-and-swap on
// the root word, so each operation linearizes at that CAS.
//
// When the pop side runs dry, Dequeue walks the push side and writes each
// node's fwd link to its FIFO successor. The value written for a node is
// the same no matter which goroutine writes it, so concurrent walks of
// the same list are harmless and no node is copied.
//
// Superseded roots are retired, each owning the node it handed out, and
// freed by quiescent-state reclamation exactly like [Stack] nodes.
//
// Memory: capacity node slots plus 2*capacity root slots. Each Enqueue
// consumes one node and one root; each Dequeue one root.
type Queue[T any] struct {
	_     pad
	root  atomix.Uint64 // Current root handle, never nil
	_     pad
	rc    reclaimer
	nodes *arena[queueNode[T]]
	roots *arena[queueRoot]
	held  atomix.Int64 // Dequeued nodes owned by retired roots
}

type queueNode[T any] struct {
	next atomix.Uint64 // Older neighbour on the push side
	fwd  atomix.Uint64 // Newer neighbour once on the pop side
	data T
}

// queueRoot is immutable once published, except for the fields used
// after it has been superseded.
type queueRoot struct {
	push    uint64 // Newest node, or nil
	popHead uint64 // Oldest node, or nil
	popEnd  uint64 // Last node reachable from popHead via fwd
	owned   uint64 // Node freed together with this root
	retired atomix.Uint64
}

// NewQueue creates a new queue holding up to capacity elements.
// Capacity rounds up to the next power of 2.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < 2 {
		panic("lfc: capacity must be >= 2")
	}
	return newQueue[T](uint64(roundToPow2(capacity)), false)
}

func newQueue[T any](n uint64, checked bool) *Queue[T] {
	q := &Queue[T]{
		nodes: newArena(n, checked, func(nd *queueNode[T]) {
			var zero T
			nd.data = zero
			nd.next.StoreRelaxed(nilHandle)
			nd.fwd.StoreRelaxed(nilHandle)
		}),
		roots: newArena(2*n, checked, func(r *queueRoot) {
			r.push, r.popHead, r.popEnd, r.owned = nilHandle, nilHandle, nilHandle, nilHandle
			r.retired.StoreRelaxed(nilHandle)
		}),
	}
	h, _ := q.roots.alloc()
	q.root.StoreRelease(h)
	return q
}

// Enqueue adds an element to the tail of the queue.
// The element is copied into a node slot.
// Returns ErrWouldBlock if every node slot is live or awaiting reclamation.
func (q *Queue[T]) Enqueue(elem *T) error {
	h, ok := q.nodes.alloc()
	if !ok {
		q.Reclaim()
		if h, ok = q.nodes.alloc(); !ok {
			return ErrWouldBlock
		}
	}
	nd := q.nodes.at(h)
	nd.data = *elem

	q.rc.enter()
	nr := q.allocRoot()
	r := q.roots.at(nr)

	sw := spin.Wait{}
	for {
		cur := q.root.LoadAcquire()
		q.roots.checkReachable(cur)
		c := q.roots.at(cur)
		nd.next.StoreRelaxed(c.push)
		r.push, r.popHead, r.popEnd = h, c.popHead, c.popEnd
		if q.root.CompareAndSwapAcqRel(cur, nr) {
			q.retireRoot(cur, nilHandle)
			q.rc.leave(q, cur)
			return nil
		}
		sw.Once()
	}
}

// Dequeue removes and returns the element at the head of the queue.
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *Queue[T]) Dequeue() (T, error) {
	q.rc.enter()
	nr := q.allocRoot()
	r := q.roots.at(nr)

	sw := spin.Wait{}
	for {
		cur := q.root.LoadAcquire()
		q.roots.checkReachable(cur)
		c := q.roots.at(cur)

		var h uint64
		switch {
		case c.popHead != nilHandle:
			h = c.popHead
			q.nodes.checkReachable(h)
			r.push = c.push
			if h == c.popEnd {
				r.popHead, r.popEnd = nilHandle, nilHandle
			} else {
				r.popHead, r.popEnd = q.nodes.at(h).fwd.LoadAcquire(), c.popEnd
			}
		case c.push != nilHandle:
			h = q.reverse(c.push)
			r.push = nilHandle
			if h == c.push {
				r.popHead, r.popEnd = nilHandle, nilHandle
			} else {
				r.popHead, r.popEnd = q.nodes.at(h).fwd.LoadAcquire(), c.push
			}
		default:
			q.roots.discard(nr)
			q.rc.leave(q, nilHandle)
			var zero T
			return zero, ErrWouldBlock
		}

		if q.root.CompareAndSwapAcqRel(cur, nr) {
			q.retireRoot(cur, h)
			elem := q.nodes.at(h).data
			q.rc.leave(q, cur)
			return elem, nil
		}
		sw.Once()
	}
}

// reverse links the push-side list starting at top in FIFO order through
// fwd and returns its oldest node.
func (q *Queue[T]) reverse(top uint64) uint64 {
	h := top
	for {
		q.nodes.checkReachable(h)
		older := q.nodes.at(h).next.LoadAcquire()
		if older == nilHandle {
			return h
		}
		q.nodes.at(older).fwd.StoreRelease(h)
		h = older
	}
}

// allocRoot returns a private root slot. Must be called between enter and
// the first root load. When the root arena is exhausted it steps out of
// the active set so a quiescent departure can free retired roots.
func (q *Queue[T]) allocRoot() uint64 {
	backoff := iox.Backoff{}
	for {
		if h, ok := q.roots.alloc(); ok {
			return h
		}
		q.rc.leave(q, nilHandle)
		backoff.Wait()
		q.rc.enter()
	}
}

// retireRoot marks a superseded root, and the node it handed out, retired.
func (q *Queue[T]) retireRoot(h, owned uint64) {
	q.roots.at(h).owned = owned
	q.roots.retire(h)
	if owned != nilHandle {
		q.nodes.retire(owned)
		q.held.AddAcqRel(1)
	}
}

// DeferredCount returns the number of dequeued nodes awaiting
// reclamation. Superseded roots that own no node are not counted, though
// they wait on the same deferred list. Diagnostic only.
func (q *Queue[T]) DeferredCount() int {
	return int(q.held.LoadAcquire())
}

// Reclaim frees all retired roots and their nodes if no other goroutine
// is inside Enqueue or Dequeue. Otherwise it is a no-op.
func (q *Queue[T]) Reclaim() {
	q.rc.enter()
	q.rc.leave(q, nilHandle)
}

// Cap returns the queue capacity.
func (q *Queue[T]) Cap() int {
	return q.nodes.capacity()
}

func (q *Queue[T]) link(h uint64) *atomix.Uint64 {
	return &q.roots.at(h).retired
}

func (q *Queue[T]) reclaim(h uint64) {
	r := q.roots.at(h)
	if r.owned != nilHandle {
		q.nodes.release(r.owned)
		q.held.AddAcqRel(-1)
	}
	q.roots.release(h)
}
