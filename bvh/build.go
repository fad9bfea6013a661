package bvh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tetracollide/dcd/mesh"
)

// aabbOf extends min/max over an arbitrary set of points, the same
// corner-accumulation pattern the shapes package uses for a box's
// world AABB.
func aabbOf(points ...mgl64.Vec3) (min, max mgl64.Vec3) {
	min = points[0]
	max = points[0]
	for _, p := range points[1:] {
		min[0] = math.Min(min[0], p.X())
		min[1] = math.Min(min[1], p.Y())
		min[2] = math.Min(min[2], p.Z())
		max[0] = math.Max(max[0], p.X())
		max[1] = math.Max(max[1], p.Y())
		max[2] = math.Max(max[2], p.Z())
	}
	return min, max
}

// BuildTetIndex rebuilds the global tet scene over every active mesh's
// tets. cellSize should be on the order of a typical tet's extent.
func BuildTetIndex(meshes []*mesh.TetMesh, cellSize float64, restPose bool) *TetIndex {
	totalTets := 0
	for _, m := range meshes {
		if m.ActiveForCollision {
			totalTets += len(m.Tets)
		}
	}
	idx := NewTetIndex(cellSize, totalTets/4+1)

	for meshID, m := range meshes {
		if !m.ActiveForCollision {
			continue
		}
		for tetID, tet := range m.Tets {
			verts := m.TetVertices(tet, restPose)
			min, max := aabbOf(verts[0], verts[1], verts[2], verts[3])
			idx.Insert(meshID, tetID, min, max)
		}
	}
	return idx
}

// BuildSurfaceIndex rebuilds a single mesh's surface-triangle index.
func BuildSurfaceIndex(m *mesh.TetMesh, quality Quality, restPose bool) *SurfaceIndex {
	entries := make([]SurfaceEntry, len(m.SurfaceFaces))
	for faceID := range m.SurfaceFaces {
		a, b, c := m.FaceTriangle(faceID, restPose)
		min, max := aabbOf(a, b, c)
		entries[faceID] = SurfaceEntry{FaceID: faceID, Min: min, Max: max}
	}
	return NewSurfaceIndex(entries, quality)
}
