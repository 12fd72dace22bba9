// Copyright 2023 The flatgeobuf (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package strtree

import (
	"sync"
	"sync/atomic"
)

// fanOut calls fn for every i in [0, n), spread over the Index's
// parallelism worker goroutines. Each fn must only write state owned
// by its own i.
//
// Returns the error of the lowest i for which fn failed. Once some fn
// has failed, work at higher positions is skipped, but every lower
// position still runs so that the reported error does not depend on
// scheduling.
func (ix *Index[G]) fanOut(n int, fn func(i int) error) error {
	workers := ix.parallelism
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	var (
		next     atomic.Int64
		mu       sync.Mutex
		firstErr error
		firstPos = n
		wg       sync.WaitGroup
	)
	failedBefore := func(i int) bool {
		mu.Lock()
		defer mu.Unlock()
		return firstPos < i
	}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= n || failedBefore(i) {
					return
				}
				if err := fn(i); err != nil {
					mu.Lock()
					if i < firstPos {
						firstPos, firstErr = i, err
					}
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	return firstErr
}
