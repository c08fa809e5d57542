// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// retirer is the collection-specific half of reclamation: how retired
// slots are chained together and how one is physically freed.
type retirer interface {
	link(h uint64) *atomix.Uint64
	reclaim(h uint64)
}

// reclaimer defers freeing of detached slots until quiescence.
//
// Every operation that may dereference a shared slot calls enter before
// its first load of the head/root word and leave after its last use of
// any slot it read. A slot detached by some goroutine is freed only by a
// goroutine that observes itself as the sole active one and then sees the
// counter reach zero on its own departure.
type reclaimer struct {
	_       pad
	active  atomix.Int64 // goroutines between enter and leave
	_       pad
	retired atomix.Uint64 // head of the deferred chain
	_       pad
	pending atomix.Int64 // slots on the deferred chain
	_       pad
}

func (r *reclaimer) enter() {
	r.active.AddAcqRel(1)
}

// leave ends an operation. h is the slot this goroutine detached during
// the operation, or nilHandle.
//
// Alone: claim the whole deferred chain, then depart. If the counter hit
// zero nobody can hold a claimed slot, so free them all; otherwise a
// newcomer arrived between the check and the claim and may reach slots
// retired after the check, so chain them back. The own slot h was detached
// before the check and is unreachable for any later arrival: free it.
//
// Not alone: defer h and depart.
func (r *reclaimer) leave(rt retirer, h uint64) {
	if r.active.LoadAcquire() == 1 {
		list := r.claim()
		if r.active.AddAcqRel(-1) == 0 {
			r.drain(rt, list)
		} else if list != nilHandle {
			r.chain(rt, list)
		}
		if h != nilHandle {
			rt.reclaim(h)
		}
		return
	}

	if h != nilHandle {
		r.pending.AddAcqRel(1)
		rt.link(h).StoreRelaxed(nilHandle)
		r.chain(rt, h)
	}
	r.active.AddAcqRel(-1)
}

// claim detaches the whole deferred chain.
func (r *reclaimer) claim() uint64 {
	sw := spin.Wait{}
	for {
		list := r.retired.LoadAcquire()
		if list == nilHandle {
			return nilHandle
		}
		if r.retired.CompareAndSwapAcqRel(list, nilHandle) {
			return list
		}
		sw.Once()
	}
}

// chain prepends a nil-terminated list of retired slots to the deferred chain.
func (r *reclaimer) chain(rt retirer, list uint64) {
	last := list
	for {
		next := rt.link(last).LoadAcquire()
		if next == nilHandle {
			break
		}
		last = next
	}

	sw := spin.Wait{}
	for {
		head := r.retired.LoadAcquire()
		rt.link(last).StoreRelaxed(head)
		if r.retired.CompareAndSwapAcqRel(head, list) {
			return
		}
		sw.Once()
	}
}

func (r *reclaimer) drain(rt retirer, list uint64) {
	var n int64
	for list != nilHandle {
		next := rt.link(list).LoadAcquire()
		rt.reclaim(list)
		list = next
		n++
	}
	if n > 0 {
		r.pending.AddAcqRel(-n)
	}
}

// deferred returns the number of retired slots not yet freed.
func (r *reclaimer) deferred() int {
	return int(r.pending.LoadAcquire())
}
