// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// This file contains examples with concurrent goroutines. Node handoff
// goes through atomic head and root words that the race detector does not
// model, so the examples are excluded from race testing.

package lfc_test

import (
	"fmt"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfc"
)

// Example_jobQueue demonstrates workers draining a shared queue, then
// reclaiming the nodes deferred while they overlapped.
func Example_jobQueue() {
	type Job struct {
		ID    int
		Input int
	}

	jobs := lfc.NewQueue[Job](16)
	results := make([]int, 6)
	var wg sync.WaitGroup
	var completed atomix.Int32

	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			backoff := iox.Backoff{}
			for completed.Load() < 6 {
				job, err := jobs.Dequeue()
				if err != nil {
					backoff.Wait()
					continue
				}
				backoff.Reset()
				results[job.ID] = job.Input * 10
				completed.Add(1)
			}
		}()
	}

	backoff := iox.Backoff{}
	for i := range 6 {
		job := Job{ID: i, Input: i + 1}
		for jobs.Enqueue(&job) != nil {
			backoff.Wait()
		}
		backoff.Reset()
	}
	wg.Wait()

	// Traffic has stopped: nothing can still hold a dequeued node.
	jobs.Reclaim()

	for i, r := range results {
		fmt.Printf("job %d: %d\n", i, r)
	}
	fmt.Println("deferred:", jobs.DeferredCount())

	// Output:
	// job 0: 10
	// job 1: 20
	// job 2: 30
	// job 3: 40
	// job 4: 50
	// job 5: 60
	// deferred: 0
}

// Example_idPool demonstrates a stack as a lock-free pool of buffer IDs
// shared by several goroutines.
func Example_idPool() {
	const ids = 8
	pool := lfc.NewStack[int](16)
	for id := range ids {
		pool.Push(&id)
	}

	inUse := make([]atomix.Int32, ids)
	var conflicts atomix.Int32
	var wg sync.WaitGroup

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			backoff := iox.Backoff{}
			for range 1000 {
				id, err := pool.Pop()
				for lfc.IsWouldBlock(err) {
					backoff.Wait()
					id, err = pool.Pop()
				}
				backoff.Reset()

				if inUse[id].Add(1) != 1 {
					conflicts.Add(1)
				}
				inUse[id].Add(-1)

				for lfc.IsWouldBlock(pool.Push(&id)) {
					backoff.Wait()
				}
				backoff.Reset()
			}
		}()
	}
	wg.Wait()

	pool.Reclaim()
	n := 0
	for {
		if _, err := pool.Pop(); err != nil {
			break
		}
		n++
	}

	fmt.Println("ids:", n)
	fmt.Println("conflicts:", conflicts.Load())
	fmt.Println("deferred:", pool.DeferredCount())

	// Output:
	// ids: 8
	// conflicts: 0
	// deferred: 0
}
