package dcd

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tetracollide/dcd/feasible"
	"github.com/tetracollide/dcd/geom"
)

// CheckFeasibleRegion exposes the feasible-region predicate package
// feasible dispatches internally during ClosestSurface, for testing
// against a specific mesh/face/region in isolation.
func (d *Detector) CheckFeasibleRegion(p mgl64.Vec3, typ geom.ClosestPointType, meshID, faceID int, restPose bool) bool {
	return feasible.Check(p, typ, faceID, d.meshes[meshID], d.params.FeasibleRegionEpsilon, restPose)
}

// CheckEdgeFeasibleRegion exposes the four-halfspace edge admissibility
// test for testing.
func (d *Detector) CheckEdgeFeasibleRegion(p mgl64.Vec3, meshID, faceID, localEdge int, restPose bool) bool {
	return feasible.CheckEdge(p, faceID, localEdge, d.meshes[meshID], d.params.FeasibleRegionEpsilon, restPose)
}

// CheckVertexFeasibleRegion exposes the one-ring vertex admissibility
// test for testing.
func (d *Detector) CheckVertexFeasibleRegion(p mgl64.Vec3, meshID, faceID, localVertex int, restPose bool) bool {
	return feasible.CheckVertex(p, faceID, localVertex, d.meshes[meshID], d.params.FeasibleRegionEpsilon, restPose)
}
