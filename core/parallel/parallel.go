// Package parallel provides chunked data-parallel loops used by split search
// and batch prediction.
package parallel

import (
	"runtime"
	"sync"
)

// ParallelizeN divides items into one contiguous range per worker and runs fn
// on every range (start, end) in parallel, returning once all are done.
// workers <= 0 means one worker per CPU core.
func ParallelizeN(items, workers int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > items {
		numWorkers = items // No need for more workers than items
	}
	if numWorkers == 1 {
		fn(0, items)
		return
	}

	// Calculate the number of items each worker handles (ceiling division)
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

// ParallelizeWithThreshold performs parallelization only when the number of items reaches the threshold
// If below threshold, or with a single worker, normal sequential processing is performed
func ParallelizeWithThreshold(items, threshold, workers int, fn func(start, end int)) {
	if items < threshold || workers == 1 {
		fn(0, items)
		return
	}
	ParallelizeN(items, workers, fn)
}

// Workers resolves an n_jobs style setting: values <= 0 mean all cores.
func Workers(nJobs int) int {
	if nJobs <= 0 {
		return runtime.NumCPU()
	}
	return nJobs
}
