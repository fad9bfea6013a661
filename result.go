package dcd

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tetracollide/dcd/geom"
)

// PenetrationResult accumulates everything known about one query
// vertex: the tets whose interior contains it, and, once ClosestSurface
// has run, the nearest admissible surface point for each.
type PenetrationResult struct {
	QueryMeshID   int
	QueryVertexID int

	IntersectedTets    []int
	IntersectedMeshIDs []int

	NumberOfTetsTraversed int

	ShortestPathFound   []bool
	ClosestBarycentrics []geom.Barycentrics
	ClosestPoint        []mgl64.Vec3
	ClosestFaceID       []int
	ClosestPointType    []geom.ClosestPointType
	ClosestNormal       []mgl64.Vec3
}

// NewPenetrationResult returns an empty result for the given query
// vertex. PenetrationQuery and QueryBatch build their results with it;
// a result whose intersected tets are filled in can be passed to
// Detector.ClosestSurface.
func NewPenetrationResult(queryMeshID, queryVertexID int) *PenetrationResult {
	return &PenetrationResult{QueryMeshID: queryMeshID, QueryVertexID: queryVertexID}
}

// Reset clears a result so it can be reused for a different vertex,
// avoiding a fresh allocation on every query.
func (r *PenetrationResult) Reset(queryMeshID, queryVertexID int) {
	r.QueryMeshID = queryMeshID
	r.QueryVertexID = queryVertexID
	r.IntersectedTets = r.IntersectedTets[:0]
	r.IntersectedMeshIDs = r.IntersectedMeshIDs[:0]
	r.NumberOfTetsTraversed = 0
	r.ShortestPathFound = r.ShortestPathFound[:0]
	r.ClosestBarycentrics = r.ClosestBarycentrics[:0]
	r.ClosestPoint = r.ClosestPoint[:0]
	r.ClosestFaceID = r.ClosestFaceID[:0]
	r.ClosestPointType = r.ClosestPointType[:0]
	r.ClosestNormal = r.ClosestNormal[:0]
}

// closestPointRecord is the per-embracing-tet scratch state a
// ClosestSurface call threads through one candidate walk. It is pooled
// the way epa.ManifoldBuilder is, since a batch query allocates one per
// embracing tet and the batch can be large.
type closestPointRecord struct {
	embracingTetID int

	faceID       int
	barycentrics geom.Barycentrics
	point        mgl64.Vec3
	pointType    geom.ClosestPointType
	found        bool

	numberOfBVHQuery      int
	numberOfTetTraversal  int
	numberOfTetsTraversed int
}

func (r *closestPointRecord) reset(embracingTetID int) {
	*r = closestPointRecord{embracingTetID: embracingTetID, pointType: geom.NotFound}
}
