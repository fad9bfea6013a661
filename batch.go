package dcd

import (
	"sync"

	"github.com/tetracollide/dcd/traverse"
)

// task fan-outs dataSize units of work across workersCount goroutines,
// each driving a contiguous [start, end) chunk, and blocks until all
// chunks finish. fn receives its own workerID so callers can index
// per-worker state that must not be shared across goroutines.
func task(workersCount, dataSize int, fn func(workerID, start, end int)) {
	if workersCount < 1 {
		workersCount = 1
	}
	var wg sync.WaitGroup
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		start := workerID * chunkSize
		end := min((workerID+1)*chunkSize, dataSize)
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(workerID, start, end int) {
			defer wg.Done()
			fn(workerID, start, end)
		}(workerID, start, end)
	}
	wg.Wait()
}

// Query is one vertex to collide: a mesh id and a vertex id within it.
type Query struct {
	MeshID   int
	VertexID int
}

// QueryBatch runs PenetrationQuery, and ClosestSurface when requested,
// for every query concurrently across workersCount goroutines, and
// returns one PenetrationResult per query in the same order. The
// Detector's own fields are read-only during a batch (its spatial
// indexes are rebuilt only by UpdateBVH, never by a query), so sharing
// it across goroutines is safe; each goroutine still gets its own
// closestPointRecord from the pool and its own epoch table, since the
// LoopLess traversal variant's epoch stamps are not safe to share
// across goroutines.
func (d *Detector) QueryBatch(queries []Query, workersCount int, withClosestSurface, withNormal bool) []*PenetrationResult {
	results := make([]*PenetrationResult, len(queries))

	task(workersCount, len(queries), func(workerID, start, end int) {
		var epochs *traverse.EpochTable
		if withClosestSurface {
			epochs = d.newEpochTable()
		}
		for i := start; i < end; i++ {
			q := queries[i]
			result := NewPenetrationResult(q.MeshID, q.VertexID)
			d.penetrationQuery(result, -1)
			if withClosestSurface && len(result.IntersectedTets) > 0 {
				d.closestSurface(result, withNormal, epochs)
			}
			results[i] = result
		}
	})

	return results
}
