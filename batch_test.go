package dcd

import (
	"sync/atomic"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tetracollide/dcd/mesh"
)

func TestTaskCoversEveryIndexExactlyOnce(t *testing.T) {
	const n = 37
	var hits [n]int32

	task(4, n, func(workerID, start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})

	for i, h := range hits {
		if h != 1 {
			t.Errorf("index %d visited %d times, want exactly 1", i, h)
		}
	}
}

func TestTaskHandlesFewerItemsThanWorkers(t *testing.T) {
	const n = 2
	var hits [n]int32

	task(8, n, func(workerID, start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})

	for i, h := range hits {
		if h != 1 {
			t.Errorf("index %d visited %d times, want exactly 1", i, h)
		}
	}
}

func TestQueryBatchRunsEveryQuery(t *testing.T) {
	probe0 := probeMesh(mgl64.Vec3{0.2, 0.2, 0.2})
	probe1 := probeMesh(mgl64.Vec3{5, 5, 5})
	target := singleTetMesh(true)

	d := New(defaultTestParams())
	d.Initialize([]*mesh.TetMesh{probe0, probe1, target})

	queries := []Query{{MeshID: 0, VertexID: 0}, {MeshID: 1, VertexID: 0}}
	results := d.QueryBatch(queries, 4, true, true)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if len(results[0].IntersectedTets) != 1 {
		t.Errorf("expected query 0 to find 1 embracing tet, got %d", len(results[0].IntersectedTets))
	}
	if len(results[0].ShortestPathFound) != 1 || !results[0].ShortestPathFound[0] {
		t.Error("expected query 0's closest-surface pass to have run")
	}
	if len(results[1].IntersectedTets) != 0 {
		t.Errorf("expected query 1 (far outside the tet) to find 0 embracing tets, got %d", len(results[1].IntersectedTets))
	}
}
