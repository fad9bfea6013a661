package dcd

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tetracollide/dcd/mesh"
)

func TestPenetrationQueryFindsEmbracingTet(t *testing.T) {
	probe := probeMesh(mgl64.Vec3{0.2, 0.2, 0.2})
	target := singleTetMesh(true)

	d := New(defaultTestParams())
	d.Initialize([]*mesh.TetMesh{probe, target})

	result := d.PenetrationQuery(0, 0)
	if len(result.IntersectedTets) != 1 {
		t.Fatalf("expected 1 embracing tet, got %d", len(result.IntersectedTets))
	}
	if result.IntersectedMeshIDs[0] != 1 || result.IntersectedTets[0] != 0 {
		t.Errorf("expected mesh 1 tet 0, got mesh %d tet %d", result.IntersectedMeshIDs[0], result.IntersectedTets[0])
	}
}

func TestPenetrationQuerySkipsInactiveMesh(t *testing.T) {
	probe := probeMesh(mgl64.Vec3{0.2, 0.2, 0.2})
	target := singleTetMesh(false)

	d := New(defaultTestParams())
	d.Initialize([]*mesh.TetMesh{probe, target})

	result := d.PenetrationQuery(0, 0)
	if len(result.IntersectedTets) != 0 {
		t.Errorf("expected no hits against an inactive mesh, got %d", len(result.IntersectedTets))
	}
}

func TestPenetrationQuerySkipsPointOutsideTet(t *testing.T) {
	probe := probeMesh(mgl64.Vec3{5, 5, 5})
	target := singleTetMesh(true)

	d := New(defaultTestParams())
	d.Initialize([]*mesh.TetMesh{probe, target})

	result := d.PenetrationQuery(0, 0)
	if len(result.IntersectedTets) != 0 {
		t.Errorf("expected no hits for a point far outside the tet, got %d", len(result.IntersectedTets))
	}
}

func TestPenetrationQuerySelfCollision(t *testing.T) {
	target := singleTetMesh(true)
	// Vertex 4 sits inside the tet but belongs to none of its corners,
	// so it is a legitimate self-collision candidate rather than one
	// excluded by the own-tet-vertex rule.
	target.Positions = append(target.Positions, mgl64.Vec3{0.2, 0.2, 0.2})
	target.RestPositions = append(target.RestPositions, mgl64.Vec3{0.2, 0.2, 0.2})
	target.TetVIdToSurfaceVId = append(target.TetVIdToSurfaceVId, -1)

	t.Run("reported when self-collision is enabled", func(t *testing.T) {
		params := defaultTestParams()
		params.HandleSelfCollision = true
		d := New(params)
		d.Initialize([]*mesh.TetMesh{target})

		result := d.PenetrationQuery(0, 4)
		if len(result.IntersectedTets) != 1 {
			t.Fatalf("expected 1 self-collision hit, got %d", len(result.IntersectedTets))
		}
	})

	t.Run("suppressed when self-collision is disabled", func(t *testing.T) {
		params := defaultTestParams()
		params.HandleSelfCollision = false
		d := New(params)
		d.Initialize([]*mesh.TetMesh{target})

		result := d.PenetrationQuery(0, 4)
		if len(result.IntersectedTets) != 0 {
			t.Errorf("expected self-collision to be suppressed, got %d hits", len(result.IntersectedTets))
		}
	})
}

func TestPenetrationQueryExcludesOwnTetVertex(t *testing.T) {
	target := singleTetMesh(true)

	params := defaultTestParams()
	params.HandleSelfCollision = true
	d := New(params)
	d.Initialize([]*mesh.TetMesh{target})

	// Vertex 0 is a corner of tet 0; it must never be reported as
	// embraced by its own tet.
	result := d.PenetrationQuery(0, 0)
	if len(result.IntersectedTets) != 0 {
		t.Errorf("expected a tet's own vertex to be excluded, got %d hits", len(result.IntersectedTets))
	}
}
