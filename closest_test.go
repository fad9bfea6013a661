package dcd

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tetracollide/dcd/geom"
	"github.com/tetracollide/dcd/mesh"
)

func TestClosestSurfaceFindsNearestFace(t *testing.T) {
	probe := probeMesh(mgl64.Vec3{0.1, 0.15, 0.5})
	target := singleTetMesh(true)

	params := defaultTestParams()
	params.TetrahedralTraverseForNonSelfIntersection = true
	d := New(params)
	d.Initialize([]*mesh.TetMesh{probe, target})

	result := d.PenetrationQuery(0, 0)
	if len(result.IntersectedTets) != 1 {
		t.Fatalf("expected 1 embracing tet, got %d", len(result.IntersectedTets))
	}

	d.ClosestSurface(result, true)

	if !result.ShortestPathFound[0] {
		t.Fatal("expected a closest point to be found")
	}
	if result.ClosestFaceID[0] != 1 {
		t.Errorf("expected face 1 (the x=0 plane, nearest to the query point), got face %d", result.ClosestFaceID[0])
	}
	if result.ClosestPointType[0] != geom.AtInterior {
		t.Errorf("expected an interior hit on the nearest face, got %v", result.ClosestPointType[0])
	}
	want := mgl64.Vec3{0, 0.15, 0.5}
	got := result.ClosestPoint[0]
	if got.Sub(want).Len() > 1e-9 {
		t.Errorf("expected closest point %v, got %v", want, got)
	}
	wantNormal := mgl64.Vec3{-1, 0, 0}
	if result.ClosestNormal[0].Sub(wantNormal).Len() > 1e-9 {
		t.Errorf("expected normal %v, got %v", wantNormal, result.ClosestNormal[0])
	}
}

func TestClosestSurfaceWithoutNormalLeavesZeroVector(t *testing.T) {
	probe := probeMesh(mgl64.Vec3{0.1, 0.15, 0.5})
	target := singleTetMesh(true)

	params := defaultTestParams()
	params.TetrahedralTraverseForNonSelfIntersection = true
	d := New(params)
	d.Initialize([]*mesh.TetMesh{probe, target})

	result := d.PenetrationQuery(0, 0)
	d.ClosestSurface(result, false)

	if result.ClosestNormal[0] != (mgl64.Vec3{}) {
		t.Errorf("expected a zero normal when withNormal is false, got %v", result.ClosestNormal[0])
	}
}

func TestClosestSurfaceNoEntriesWhenNoEmbracingTet(t *testing.T) {
	probe := probeMesh(mgl64.Vec3{0.1, 0.15, 0.5})
	target := singleTetMesh(true)

	d := New(defaultTestParams())
	d.Initialize([]*mesh.TetMesh{probe, target})

	result := NewPenetrationResult(0, 0)
	d.ClosestSurface(result, true)

	if len(result.ShortestPathFound) != 0 {
		t.Errorf("expected no entries when there are no embracing tets, got %d", len(result.ShortestPathFound))
	}
}

func TestClosestSurfaceSelfCollision(t *testing.T) {
	target := singleTetMesh(true)
	// Vertex 4 is an interior self-collision candidate (see
	// TestPenetrationQuerySelfCollision); this checks ClosestSurface
	// completes a same-mesh query end to end.
	target.Positions = append(target.Positions, mgl64.Vec3{0.05, 0.05, 0.05})
	target.RestPositions = append(target.RestPositions, mgl64.Vec3{0.05, 0.05, 0.05})
	target.TetVIdToSurfaceVId = append(target.TetVIdToSurfaceVId, -1)

	params := defaultTestParams()
	params.HandleSelfCollision = true
	d := New(params)
	d.Initialize([]*mesh.TetMesh{target})

	result := d.PenetrationQuery(0, 4)
	if len(result.IntersectedTets) != 1 {
		t.Fatalf("expected 1 self-collision hit, got %d", len(result.IntersectedTets))
	}

	d.ClosestSurface(result, false)
	if !result.ShortestPathFound[0] {
		t.Fatal("expected a closest point to be found for the self-collision candidate")
	}
}
