// Package feasible implements the admissibility test for a candidate
// closest point: it rejects points that are nearest in pure Euclidean
// terms but do not correspond to a physically reachable contact on a
// closed, watertight mesh viewed from its interior.
package feasible

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tetracollide/dcd/geom"
	"github.com/tetracollide/dcd/mesh"
)

// relaxed returns the tolerance a halfspace test is allowed to violate
// by, scaled to the squared length of the edge under test. The
// absolute term is zero in this design; it is kept explicit because
// the source this predicate is ported from carries one.
func relaxed(lenSq, epsilon float64) float64 {
	const absoluteRelaxation = 0.0
	return -lenSq*epsilon - absoluteRelaxation
}

// Check dispatches the feasible-region predicate on the type of
// closest point found on faceID, as determined by package geom.
// restPose selects which of the mesh's vertex buffers to read.
func Check(p mgl64.Vec3, typ geom.ClosestPointType, faceID int, m *mesh.TetMesh, epsilon float64, restPose bool) bool {
	switch typ {
	case geom.AtInterior:
		return true
	case geom.AtAB:
		return CheckEdge(p, faceID, 0, m, epsilon, restPose)
	case geom.AtBC:
		return CheckEdge(p, faceID, 1, m, epsilon, restPose)
	case geom.AtAC:
		return CheckEdge(p, faceID, 2, m, epsilon, restPose)
	case geom.AtA:
		return CheckVertex(p, faceID, 0, m, epsilon, restPose)
	case geom.AtB:
		return CheckVertex(p, faceID, 1, m, epsilon, restPose)
	case geom.AtC:
		return CheckVertex(p, faceID, 2, m, epsilon, restPose)
	default: // NotFound
		return false
	}
}

// CheckEdge tests the four-halfspace admissibility of p against the
// edge of faceID identified by localEdge (0: AB, 1: BC, 2: CA). p is
// admissible iff it lies in the inner prism bounded by the edge plane
// and the two incident faces' inward normals. Exported as one of the
// three feasible-region test accessors.
func CheckEdge(p mgl64.Vec3, faceID, localEdge int, m *mesh.TetMesh, epsilon float64, restPose bool) bool {
	a, b, c := m.FaceTriangle(faceID, restPose)
	edgeA, edgeB := edgeEndpoints(a, b, c, localEdge)

	neighborID := m.NeighborAcrossEdge(faceID, localEdge)
	if neighborID < 0 {
		// A boundary edge on an otherwise-watertight mesh is a
		// structural violation; see the detector's handling of
		// this case for the debug/release split.
		panic(fmt.Sprintf("feasible: surface face %d has no neighbor across edge %d on a mesh assumed watertight", faceID, localEdge))
	}
	na, nb, nc := m.FaceTriangle(neighborID, restPose)

	ab := edgeB.Sub(edgeA)
	lenSq := ab.Dot(ab)
	tol := relaxed(lenSq, epsilon)

	fn := geom.FaceNormal(a, b, c)
	fnNeighbor := geom.FaceNormal(na, nb, nc)

	pa := p.Sub(edgeA)
	pb := p.Sub(edgeB)

	t1 := pa.Dot(ab)
	t2 := pb.Dot(edgeA.Sub(edgeB))
	t3 := pa.Dot(fn.Cross(ab))
	t4 := pa.Dot(fnNeighbor.Cross(edgeA.Sub(edgeB)))

	return t1 >= tol && t2 >= tol && t3 >= tol && t4 >= tol
}

// CheckVertex tests p against every one-ring neighbor u of vertex
// localVertex (0: A, 1: B, 2: C) of faceID: p is admissible iff it
// lies in the intersection of inner halfspaces of the planes through v
// perpendicular to each incident edge. Exported as one of the three
// feasible-region test accessors.
func CheckVertex(p mgl64.Vec3, faceID, localVertex int, m *mesh.TetMesh, epsilon float64, restPose bool) bool {
	svid := m.SurfaceFacesSurfaceVIds[faceID][localVertex]
	v := m.SurfaceVertexPosition(svid, restPose)

	for _, u := range m.OneRing(svid) {
		neighborPos := m.SurfaceVertexPosition(u, restPose)
		vu := v.Sub(neighborPos)
		lenSq := vu.Dot(vu)
		tol := relaxed(lenSq, epsilon)

		if p.Sub(v).Dot(vu) < tol {
			return false
		}
	}
	return true
}

func edgeEndpoints(a, b, c mgl64.Vec3, localEdge int) (mgl64.Vec3, mgl64.Vec3) {
	switch localEdge {
	case 0:
		return a, b
	case 1:
		return b, c
	default:
		return c, a
	}
}
