// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// slotPool is the free list of an arena: a ring of free handles.
//
// A cell holds a handle, or nilHandle while empty. The pool never has to
// hold more handles than the arena has slots, so put cannot fail: a putter
// takes its position with fetch-and-add, and by then every getter of the
// previous lap over that cell has already claimed its position. At worst
// the putter waits for such a getter to finish emptying the cell.
//
// Getters claim positions with compare-and-swap against tail so an empty
// pool is reported rather than waited on. A getter whose putter has not
// stored yet waits for the store. Handles may overtake one another when a
// putter lags; the pool is a set, not a queue.
type slotPool struct {
	_     pad
	tail  atomix.Uint64 // Next put position
	_     pad
	head  atomix.Uint64 // Next get position
	_     pad
	cells []atomix.Uint64
	mask  uint64
}

// newSlotPool creates an empty pool for n handles. n must be a power of 2.
func newSlotPool(n uint64) *slotPool {
	return &slotPool{
		cells: make([]atomix.Uint64, n),
		mask:  n - 1,
	}
}

// put returns a free handle to the pool.
func (p *slotPool) put(h uint64) {
	cell := &p.cells[(p.tail.AddAcqRel(1)-1)&p.mask]
	sw := spin.Wait{}
	for !cell.CompareAndSwapAcqRel(nilHandle, h) {
		sw.Once()
	}
}

// get takes a free handle. Returns (nilHandle, false) when the pool is empty.
func (p *slotPool) get() (uint64, bool) {
	sw := spin.Wait{}
	for {
		head := p.head.LoadAcquire()
		if head >= p.tail.LoadAcquire() {
			return nilHandle, false
		}
		if p.head.CompareAndSwapAcqRel(head, head+1) {
			return take(&p.cells[head&p.mask]), true
		}
		sw.Once()
	}
}

// take empties a claimed cell. Two getters a lap apart may wait on the
// same cell; the CAS hands each stored handle to exactly one of them.
func take(cell *atomix.Uint64) uint64 {
	sw := spin.Wait{}
	for {
		if h := cell.LoadAcquire(); h != nilHandle && cell.CompareAndSwapAcqRel(h, nilHandle) {
			return h
		}
		sw.Once()
	}
}
