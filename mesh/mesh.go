// Package mesh defines the tetrahedral mesh data owned by the caller and
// shared, read-only, with the collision detector during queries.
package mesh

import "github.com/go-gl/mathgl/mgl64"

// TetMesh is a volumetric mesh whose primitive cell is a tetrahedron.
// The detector never copies these slices; it only reads them between
// UpdateBVH calls, so the caller must not mutate a buffer that a scene
// currently points at without also calling UpdateBVH.
type TetMesh struct {
	// Positions holds the current (live-pose) vertex coordinates.
	Positions []mgl64.Vec3
	// RestPositions holds the reference configuration. Only required
	// when rest-pose mode is enabled; nil otherwise.
	RestPositions []mgl64.Vec3

	// Tets holds per-tet vertex indices, four per tet.
	Tets []Tet
	// TetNeighbors holds, per tet and per local face (the face opposite
	// local vertex i), the id of the tet sharing that face, or -1 when
	// the face is a boundary (surface) face. This is the volume-level
	// counterpart of SurfaceFace3NeighborFaces and is what the ray
	// walker marches across.
	TetNeighbors []TetFaceNeighbors

	// SurfaceFaces holds per-surface-triangle vertex indices in
	// volume-vertex space.
	SurfaceFaces []Tri
	// SurfaceFacesSurfaceVIds holds the same triangles in
	// surface-vertex space, for normal lookup.
	SurfaceFacesSurfaceVIds []Tri
	// SurfaceFaceBelongingTet holds the tet that owns each surface face.
	SurfaceFaceBelongingTet []int
	// SurfaceFaceFaceIdInTet holds which of the 4 local faces of that
	// tet the surface face is (0..3).
	SurfaceFaceFaceIdInTet []int
	// SurfaceFace3NeighborFaces holds, per edge of a surface face, the
	// neighboring surface-face id, or -1 on a boundary. The mesh is
	// assumed watertight, so -1 should never occur in practice.
	SurfaceFace3NeighborFaces []Tri

	// TetVIdToSurfaceVId maps a volume-vertex index to a surface-vertex
	// index, or -1 for interior vertices.
	TetVIdToSurfaceVId []int
	// SurfaceVIdToTetVId is the inverse of TetVIdToSurfaceVId, needed
	// to resolve a surface-vertex id back to a position.
	SurfaceVIdToTetVId []int
	// SurfaceVertexNeighbors holds the one-ring adjacency of each
	// surface vertex, in surface-vertex indices.
	SurfaceVertexNeighbors [][]int

	// SurfaceVertexNormals and SurfaceFaceNormals are precomputed mesh
	// topology the detector reads but never derives; normal convenience
	// utilities that build these from positions are out of scope here.
	SurfaceVertexNormals []mgl64.Vec3
	SurfaceFaceNormals   []mgl64.Vec3

	// ActiveForCollision gates whether UpdateBVH includes this mesh's
	// geometries in the scenes.
	ActiveForCollision bool
}

// Tet is a tetrahedron's four vertex indices. Orientation must be
// consistent with the point-in-tet predicate in package geom.
type Tet [4]int

// Tri is a triangle's three vertex (or face-id) indices.
type Tri [3]int

// TetFaceNeighbors holds a tet's four face-adjacent neighbor tet ids.
type TetFaceNeighbors [4]int

// LocalFace returns the three vertex positions of the local face of
// tet t opposite local vertex i (i.e. the face not containing vertex
// i), in the order the three vertices appear in t. No particular
// winding is enforced, so the two tets sharing a face may return its
// vertices in different orders.
func (m *TetMesh) LocalFace(t Tet, i int, restPose bool) (a, b, c mgl64.Vec3) {
	var ids [3]int
	k := 0
	for j := 0; j < 4; j++ {
		if j == i {
			continue
		}
		ids[k] = t[j]
		k++
	}
	return m.Vertex(ids[0], restPose), m.Vertex(ids[1], restPose), m.Vertex(ids[2], restPose)
}

// Vertex returns the current position of volume-vertex vid, honoring
// restPose when the mesh carries a reference configuration.
func (m *TetMesh) Vertex(vid int, restPose bool) mgl64.Vec3 {
	if restPose {
		return m.RestPositions[vid]
	}
	return m.Positions[vid]
}

// TetVertices returns the four live (or rest) positions of tet t.
func (m *TetMesh) TetVertices(t Tet, restPose bool) [4]mgl64.Vec3 {
	var out [4]mgl64.Vec3
	for i, vid := range t {
		out[i] = m.Vertex(vid, restPose)
	}
	return out
}

// FaceTriangle returns the three live (or rest) positions of surface
// face f, in volume-vertex space.
func (m *TetMesh) FaceTriangle(faceID int, restPose bool) (a, b, c mgl64.Vec3) {
	tri := m.SurfaceFaces[faceID]
	return m.Vertex(tri[0], restPose), m.Vertex(tri[1], restPose), m.Vertex(tri[2], restPose)
}

// NeighborAcrossEdge returns the surface face sharing local edge e
// (0: AB, 1: BC, 2: CA) with faceID, or -1 on a boundary edge.
func (m *TetMesh) NeighborAcrossEdge(faceID, edge int) int {
	return m.SurfaceFace3NeighborFaces[faceID][edge]
}

// OneRing returns the one-ring surface-vertex neighbors of surface
// vertex svid.
func (m *TetMesh) OneRing(svid int) []int {
	return m.SurfaceVertexNeighbors[svid]
}

// SurfaceVertexPosition returns the live (or rest) position of surface
// vertex svid.
func (m *TetMesh) SurfaceVertexPosition(svid int, restPose bool) mgl64.Vec3 {
	return m.Vertex(m.SurfaceVIdToTetVId[svid], restPose)
}
