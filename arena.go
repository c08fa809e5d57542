// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

import "code.hybscloud.com/atomix"

// Slot lifecycle states, tracked only in checked mode.
const (
	slotFree int32 = iota
	slotLive
	slotRetired
)

// nilHandle is the handle of no slot. Handles are index+1.
const nilHandle = 0

// arena is a fixed set of slots addressed by handle.
//
// Slots are never returned to the Go heap: "freeing" a slot puts its handle
// back into the free pool, where the next alloc may hand it out again. This
// reuse is what makes premature reclamation observable as use-after-free or
// ABA corruption, exactly like manual memory management.
type arena[S any] struct {
	slots   []S
	state   []atomix.Int32 // nil unless checked
	pool    *slotPool
	clear   func(*S) // drops payload references before reuse
	checked bool
}

func newArena[S any](n uint64, checked bool, clear func(*S)) *arena[S] {
	a := &arena[S]{
		slots:   make([]S, n),
		pool:    newSlotPool(n),
		clear:   clear,
		checked: checked,
	}
	if checked {
		a.state = make([]atomix.Int32, n)
	}
	for h := uint64(1); h <= n; h++ {
		a.pool.put(h)
	}
	return a
}

// at returns the slot for a non-nil handle.
func (a *arena[S]) at(h uint64) *S {
	return &a.slots[h-1]
}

// alloc reserves a free slot and returns its handle.
// Returns (nilHandle, false) when every slot is live or retired.
func (a *arena[S]) alloc() (uint64, bool) {
	h, ok := a.pool.get()
	if !ok {
		return nilHandle, false
	}
	if a.checked && !a.state[h-1].CompareAndSwapAcqRel(slotFree, slotLive) {
		panic("lfc: allocated slot is still in use")
	}
	return h, true
}

// retire marks a detached slot as awaiting reclamation.
func (a *arena[S]) retire(h uint64) {
	if a.checked && !a.state[h-1].CompareAndSwapAcqRel(slotLive, slotRetired) {
		panic("lfc: retire of a slot that is not live")
	}
}

// release returns a retired slot to the pool.
func (a *arena[S]) release(h uint64) {
	if a.checked && !a.state[h-1].CompareAndSwapAcqRel(slotRetired, slotFree) {
		panic("lfc: double free of slot")
	}
	a.free(h)
}

// discard returns a live slot that was never published.
func (a *arena[S]) discard(h uint64) {
	if a.checked && !a.state[h-1].CompareAndSwapAcqRel(slotLive, slotFree) {
		panic("lfc: discard of a slot that is not live")
	}
	a.free(h)
}

// checkReachable panics in checked mode if h, read from shared state by
// an in-flight operation, has already been freed. Retired is fine: the
// slot is detached but still guarded by the reader's presence.
func (a *arena[S]) checkReachable(h uint64) {
	if a.checked && a.state[h-1].LoadAcquire() == slotFree {
		panic("lfc: use of a reclaimed slot")
	}
}

func (a *arena[S]) free(h uint64) {
	a.clear(&a.slots[h-1])
	a.pool.put(h)
}

// capacity returns the number of slots.
func (a *arena[S]) capacity() int {
	return len(a.slots)
}
