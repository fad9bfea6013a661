package bvh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func threeFaceEntries() []SurfaceEntry {
	return []SurfaceEntry{
		{FaceID: 0, Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 0}},
		{FaceID: 1, Min: mgl64.Vec3{2, 2, 0}, Max: mgl64.Vec3{3, 3, 0}},
		{FaceID: 2, Min: mgl64.Vec3{10, 10, 0}, Max: mgl64.Vec3{11, 11, 0}},
	}
}

func TestSurfaceIndexWalkOrdersByLowerBound(t *testing.T) {
	idx := NewSurfaceIndex(threeFaceEntries(), Low)

	var visited []int
	idx.Walk(mgl64.Vec3{0, 0, 0}, 100, func(c Candidate) (float64, bool) {
		visited = append(visited, c.Entry.FaceID)
		return 100, true
	})

	if len(visited) != 3 {
		t.Fatalf("expected all 3 faces to be visited, got %v", visited)
	}
	if visited[0] != 0 || visited[1] != 1 || visited[2] != 2 {
		t.Errorf("expected faces in ascending distance order, got %v", visited)
	}
}

func TestSurfaceIndexWalkStopsWhenRadiusShrinksPastRemainingCandidates(t *testing.T) {
	idx := NewSurfaceIndex(threeFaceEntries(), Low)

	var visited []int
	idx.Walk(mgl64.Vec3{0, 0, 0}, 100, func(c Candidate) (float64, bool) {
		visited = append(visited, c.Entry.FaceID)
		// Accept face 0 and shrink the radius so face 1 and 2, both
		// much farther away, are never visited.
		return 0.5, true
	})

	if len(visited) != 1 || visited[0] != 0 {
		t.Errorf("expected only face 0 to be visited after the radius shrank, got %v", visited)
	}
}

func TestSurfaceIndexWalkCanStopEarly(t *testing.T) {
	idx := NewSurfaceIndex(threeFaceEntries(), Low)

	calls := 0
	idx.Walk(mgl64.Vec3{0, 0, 0}, 100, func(c Candidate) (float64, bool) {
		calls++
		return 100, false
	})

	if calls != 1 {
		t.Errorf("expected Walk to stop after the first visit asked to stop, got %d calls", calls)
	}
}
