// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfc

// Options configures collection creation.
type Options struct {
	// Verify slot lifecycle transitions (free → live → retired → free)
	checked bool

	// Capacity (rounds up to next power of 2)
	capacity int
}

// Builder creates collections with fluent configuration.
//
// Example:
//
//	// Stack with default settings
//	s := lfc.BuildStack[Event](lfc.New(1024))
//
//	// Queue that panics on any reclamation defect
//	q := lfc.BuildQueue[*Request](lfc.New(4096).Checked())
type Builder struct {
	opts Options
}

// New creates a collection builder with the given capacity.
//
// Capacity is the number of node slots and rounds up to the next power
// of 2. Nodes that were removed but not yet reclaimed occupy slots too.
//
// Panics if capacity < 2.
func New(capacity int) *Builder {
	if capacity < 2 {
		panic("lfc: capacity must be >= 2")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// Checked enables slot lifecycle verification.
//
// Every allocation, retirement and reclamation of a slot is validated
// with an atomic state transition. A double free, a free of a live slot
// or a second removal of the same node panics with an "lfc:" message.
// Costs one extra CAS per transition; intended for tests and debugging.
func (b *Builder) Checked() *Builder {
	b.opts.checked = true
	return b
}

// BuildStack creates a Stack[T] from the builder configuration.
func BuildStack[T any](b *Builder) *Stack[T] {
	return newStack[T](uint64(roundToPow2(b.opts.capacity)), b.opts.checked)
}

// BuildQueue creates a Queue[T] from the builder configuration.
func BuildQueue[T any](b *Builder) *Queue[T] {
	return newQueue[T](uint64(roundToPow2(b.opts.capacity)), b.opts.checked)
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte
