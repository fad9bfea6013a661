package bvh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTetIndexQueryPoint(t *testing.T) {
	idx := NewTetIndex(1.0, 16)
	idx.Insert(0, 0, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	idx.Insert(0, 1, mgl64.Vec3{5, 5, 5}, mgl64.Vec3{6, 6, 6})

	t.Run("point inside the first tet's AABB", func(t *testing.T) {
		hits := idx.QueryPoint(mgl64.Vec3{0.5, 0.5, 0.5})
		if len(hits) != 1 || hits[0].TetID != 0 {
			t.Fatalf("expected exactly tet 0, got %+v", hits)
		}
	})

	t.Run("point far from every tet", func(t *testing.T) {
		hits := idx.QueryPoint(mgl64.Vec3{100, 100, 100})
		if len(hits) != 0 {
			t.Fatalf("expected no candidates, got %+v", hits)
		}
	})
}

func TestTetIndexResetClearsEntries(t *testing.T) {
	idx := NewTetIndex(1.0, 16)
	idx.Insert(0, 0, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	idx.Reset()

	if hits := idx.QueryPoint(mgl64.Vec3{0.5, 0.5, 0.5}); len(hits) != 0 {
		t.Fatalf("expected an empty index after Reset, got %+v", hits)
	}
}
