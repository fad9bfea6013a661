package dcd

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tetracollide/dcd/mesh"
)

// singleTetMesh builds one watertight tetrahedron (vertices at the
// origin and the three unit axes) as a standalone mesh: every local
// face is a boundary face, so PenetrationQuery against it never needs
// TetNeighbors, and a ClosestSurface traversal check against its own
// embracing tet (tet 0) always terminates immediately since
// startTet == goalTet.
func singleTetMesh(active bool) *mesh.TetMesh {
	positions := []mgl64.Vec3{
		{0, 0, 0}, // 0
		{1, 0, 0}, // 1
		{0, 1, 0}, // 2
		{0, 0, 1}, // 3
	}

	// Local face i is opposite vertex i.
	surfaceFaces := []mesh.Tri{
		{1, 2, 3}, // face 0, opposite vertex 0
		{0, 2, 3}, // face 1, opposite vertex 1
		{0, 1, 3}, // face 2, opposite vertex 2
		{0, 1, 2}, // face 3, opposite vertex 3
	}

	return &mesh.TetMesh{
		Positions:     positions,
		RestPositions: positions,
		Tets:          []mesh.Tet{{0, 1, 2, 3}},
		TetNeighbors:  []mesh.TetFaceNeighbors{{-1, -1, -1, -1}},

		SurfaceFaces:              surfaceFaces,
		SurfaceFacesSurfaceVIds:   surfaceFaces,
		SurfaceFaceBelongingTet:   []int{0, 0, 0, 0},
		SurfaceFaceFaceIdInTet:    []int{0, 1, 2, 3},
		SurfaceFace3NeighborFaces: []mesh.Tri{{3, 1, 2}, {3, 0, 2}, {3, 0, 1}, {2, 0, 1}},

		TetVIdToSurfaceVId: []int{0, 1, 2, 3},
		SurfaceVIdToTetVId: []int{0, 1, 2, 3},
		SurfaceVertexNeighbors: [][]int{
			{1, 2, 3},
			{0, 2, 3},
			{0, 1, 3},
			{0, 1, 2},
		},

		SurfaceVertexNormals: []mgl64.Vec3{
			{-1, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		},
		SurfaceFaceNormals: []mgl64.Vec3{
			{1, 1, 1}, {-1, 0, 0}, {0, -1, 0}, {0, 0, -1},
		},

		ActiveForCollision: active,
	}
}

// probeMesh is a degenerate one-vertex mesh with no tets or surface,
// used only as the query side of a cross-mesh PenetrationQuery /
// ClosestSurface test.
func probeMesh(position mgl64.Vec3) *mesh.TetMesh {
	return &mesh.TetMesh{
		Positions:          []mgl64.Vec3{position},
		RestPositions:      []mgl64.Vec3{position},
		TetVIdToSurfaceVId: []int{-1},
		ActiveForCollision: false,
	}
}

func defaultTestParams() Parameters {
	return Parameters{
		HandleSelfCollision:                  true,
		CheckFeasibleRegion:                  true,
		CheckTetTraverse:                     true,
		MaxNumberOfBVHQuery:                  64,
		FeasibleRegionEpsilon:                1e-6,
		CenterShiftLevel:                     0.01,
		MaxSearchDistanceMultiplier:          2,
		StopTraversingAfterPassingQueryPoint: true,
		RayTriIntersectionEPSILON:            1e-9,
	}
}
