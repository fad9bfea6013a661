package dcd

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tetracollide/dcd/bvh"
	"github.com/tetracollide/dcd/feasible"
	"github.com/tetracollide/dcd/geom"
	"github.com/tetracollide/dcd/mesh"
	"github.com/tetracollide/dcd/traverse"
)

// ClosestSurface finds, for each embracing tet recorded in result, the
// nearest admissible point on the surface of the intersected mesh.
// withNormal additionally fills ClosestNormal per 4.G; when false the
// normal slot is the zero vector.
//
// This uses the Detector's own epoch table, which is only safe for one
// goroutine at a time; concurrent callers (QueryBatch's workers) must
// call closestSurface directly with a worker-private epoch table
// instead, since LoopLessTraverse's epoch stamps are not safe to share
// across goroutines.
func (d *Detector) ClosestSurface(result *PenetrationResult, withNormal bool) {
	d.closestSurface(result, withNormal, d.epochs)
}

func (d *Detector) closestSurface(result *PenetrationResult, withNormal bool, epochs *traverse.EpochTable) {
	queryMesh := d.meshes[result.QueryMeshID]
	queryPos := queryMesh.Vertex(result.QueryVertexID, false)
	restMode := d.params.RestPoseClosestPoint

	for i, idTet := range result.IntersectedTets {
		idMesh := result.IntersectedMeshIDs[i]
		targetMesh := d.meshes[idMesh]

		if restMode && !restPoseClosestPointBuildEnabled {
			d.logModeMismatch()
			appendSentinel(result)
			continue
		}

		rec := closestPointRecordPool.Get().(*closestPointRecord)
		rec.reset(idTet)

		if restMode {
			d.closestSurfaceRestPose(rec, result, targetMesh, idMesh, queryPos)
		} else {
			d.closestSurfaceLivePose(rec, result, targetMesh, idMesh, queryMesh, queryPos, epochs)
		}

		if rec.found {
			result.ShortestPathFound = append(result.ShortestPathFound, true)
			result.ClosestBarycentrics = append(result.ClosestBarycentrics, rec.barycentrics)
			result.ClosestPoint = append(result.ClosestPoint, rec.point)
			result.ClosestFaceID = append(result.ClosestFaceID, rec.faceID)
			result.ClosestPointType = append(result.ClosestPointType, rec.pointType)
			if withNormal {
				result.ClosestNormal = append(result.ClosestNormal, computeNormal(rec.pointType, rec.faceID, targetMesh))
			} else {
				result.ClosestNormal = append(result.ClosestNormal, mgl64.Vec3{})
			}
		} else {
			appendSentinel(result)
		}
		result.NumberOfTetsTraversed += rec.numberOfTetsTraversed

		closestPointRecordPool.Put(rec)
	}
}

func appendSentinel(result *PenetrationResult) {
	result.ShortestPathFound = append(result.ShortestPathFound, false)
	result.ClosestBarycentrics = append(result.ClosestBarycentrics, geom.Barycentrics{})
	result.ClosestPoint = append(result.ClosestPoint, mgl64.Vec3{})
	result.ClosestFaceID = append(result.ClosestFaceID, -1)
	result.ClosestPointType = append(result.ClosestPointType, geom.NotFound)
	result.ClosestNormal = append(result.ClosestNormal, mgl64.Vec3{})
}

// closestSurfaceLivePose runs the live-pose callback of 4.F over
// idMesh's surface index, starting from the query vertex's current
// position.
func (d *Detector) closestSurfaceLivePose(rec *closestPointRecord, result *PenetrationResult, targetMesh *mesh.TetMesh, idMesh int, queryMesh *mesh.TetMesh, queryPos mgl64.Vec3, epochs *traverse.EpochTable) {
	index := d.liveSurfaceIndexes[idMesh]
	radius := math.Inf(1)

	queryVertexSurfaceID := -1
	if idMesh == result.QueryMeshID {
		queryVertexSurfaceID = queryMesh.TetVIdToSurfaceVId[result.QueryVertexID]
	}

	index.Walk(queryPos, radius, func(c bvh.Candidate) (float64, bool) {
		rec.numberOfBVHQuery++
		if rec.numberOfBVHQuery > d.params.MaxNumberOfBVHQuery {
			d.logger.Debug("closest-surface query exhausted its BVH query budget", "mesh", idMesh, "tet", rec.embracingTetID)
			return 0, false
		}

		faceID := c.Entry.FaceID
		a, b, tc := targetMesh.FaceTriangle(faceID, false)
		closestP, bary, typ := geom.ClosestPointOnTriangle(queryPos, a, b, tc)
		dist := queryPos.Sub(closestP).Len()

		if idMesh == result.QueryMeshID && isVertexType(typ) {
			svid := targetMesh.SurfaceFacesSurfaceVIds[faceID][vertexLocalIndex(typ)]
			if svid == queryVertexSurfaceID {
				return radius, true
			}
		}

		if dist >= radius {
			return radius, true
		}

		if d.params.CheckFeasibleRegion {
			if !checkFeasible(queryPos, typ, faceID, targetMesh, d.params.FeasibleRegionEpsilon) {
				return radius, true
			}
		}

		if d.params.CheckTetTraverse && (idMesh == result.QueryMeshID || d.params.TetrahedralTraverseForNonSelfIntersection) {
			if !d.runTraversal(rec, targetMesh, faceID, closestP, a, b, tc, typ, queryPos, rec.embracingTetID, epochs) {
				return radius, true
			}
		}

		radius = dist
		rec.faceID = faceID
		rec.barycentrics = bary
		rec.point = closestP
		rec.pointType = typ
		rec.found = true
		return radius, true
	})
}

// closestSurfaceRestPose runs the rest-pose variant: feasibility and
// traversal are skipped, and the accepted point is remapped to live
// pose via the same barycentrics applied to the triangle's current
// vertices.
func (d *Detector) closestSurfaceRestPose(rec *closestPointRecord, result *PenetrationResult, targetMesh *mesh.TetMesh, idMesh int, liveQueryPos mgl64.Vec3) {
	index := d.restSurfaceIndexes[idMesh]
	if index == nil {
		return
	}

	embracingTet := targetMesh.Tets[rec.embracingTetID]
	liveVerts := targetMesh.TetVertices(embracingTet, false)
	bc := geom.TetBarycentrics(liveQueryPos, liveVerts[0], liveVerts[1], liveVerts[2], liveVerts[3])
	restVerts := targetMesh.TetVertices(embracingTet, true)
	origin := bc.Point(restVerts[0], restVerts[1], restVerts[2], restVerts[3])

	radius := math.Inf(1)
	index.Walk(origin, radius, func(c bvh.Candidate) (float64, bool) {
		rec.numberOfBVHQuery++
		if rec.numberOfBVHQuery > d.params.MaxNumberOfBVHQuery {
			return 0, false
		}

		faceID := c.Entry.FaceID
		ra, rb, rc := targetMesh.FaceTriangle(faceID, true)
		closestP, bary, typ := geom.ClosestPointOnTriangle(origin, ra, rb, rc)
		dist := origin.Sub(closestP).Len()
		if dist >= radius {
			return radius, true
		}

		la, lb, lc := targetMesh.FaceTriangle(faceID, false)
		radius = dist
		rec.faceID = faceID
		rec.barycentrics = bary
		rec.point = bary.Point(la, lb, lc)
		rec.pointType = typ
		rec.found = true
		return radius, true
	})
}

// runTraversal computes the tracing origin/target/direction/bound per
// 4.F step 4 and walks the mesh, updating rec's traversal counters.
// epochs backs the LoopLess variant's cycle detection; it must be
// private to the calling goroutine (see ClosestSurface's doc comment).
func (d *Detector) runTraversal(rec *closestPointRecord, m *mesh.TetMesh, faceID int, closestP, a, b, c mgl64.Vec3, typ geom.ClosestPointType, queryPos mgl64.Vec3, embracingTetID int, epochs *traverse.EpochTable) bool {
	s := d.params.CenterShiftLevel
	tracingOrigin := closestP
	if typ != geom.AtInterior {
		centroid := a.Add(b).Add(c)
		tracingOrigin = closestP.Mul(1 - s).Add(centroid.Mul(s / 3.0))
	}

	target := queryPos
	if d.params.ShiftQueryPointToCenter {
		embraceVerts := m.TetVertices(m.Tets[embracingTetID], false)
		embraceCentroid := embraceVerts[0].Add(embraceVerts[1]).Add(embraceVerts[2]).Add(embraceVerts[3]).Mul(0.25)
		target = queryPos.Mul(1 - s).Add(embraceCentroid.Mul(s))
	}

	span := target.Sub(tracingOrigin)
	direction := span.Normalize()
	maxDistance := traverse.Unbounded
	if d.params.StopTraversingAfterPassingQueryPoint {
		maxDistance = d.params.MaxSearchDistanceMultiplier * span.Len()
	}

	startTet := m.SurfaceFaceBelongingTet[faceID]
	startFace := m.SurfaceFaceFaceIdInTet[faceID]

	variant := traverse.Dynamic
	switch {
	case d.params.LoopLessTraverse:
		variant = traverse.LoopLess
	case d.params.UseStaticTraverse:
		variant = traverse.Static
	}

	ok, stats := traverse.Walk(m, tracingOrigin, direction, maxDistance, startTet, startFace, embracingTetID, d.params.RayTriIntersectionEPSILON, variant, epochs)
	rec.numberOfTetTraversal++
	rec.numberOfTetsTraversed += stats.NumTetsTraversed

	if !ok && variant == traverse.Static && stats.StopReason == traverse.Overflow {
		d.logger.Debug("static tet traversal overflowed its path capacity; retrying with the dynamic walker", "face", faceID, "tet", embracingTetID, "capacity", traverse.StaticCapacity)
		ok, stats = traverse.Walk(m, tracingOrigin, direction, maxDistance, startTet, startFace, embracingTetID, d.params.RayTriIntersectionEPSILON, traverse.Dynamic, nil)
		rec.numberOfTetsTraversed += stats.NumTetsTraversed
	}

	if !ok && stats.StopReason == traverse.EmptyStack {
		d.logger.Info("tet traversal hit a dead end; candidate rejected", "face", faceID, "tet", embracingTetID)
	}
	return ok
}

// checkFeasible guards feasible.Check's watertightness panic: a
// boundary edge on a mesh this detector assumes closed is a modeling
// error upstream, not a query-time failure, so the candidate is let
// through rather than aborting the whole query.
func checkFeasible(p mgl64.Vec3, typ geom.ClosestPointType, faceID int, m *mesh.TetMesh, epsilon float64) (admissible bool) {
	defer func() {
		if recover() != nil {
			admissible = true
		}
	}()
	return feasible.Check(p, typ, faceID, m, epsilon, false)
}

func isVertexType(typ geom.ClosestPointType) bool {
	return typ == geom.AtA || typ == geom.AtB || typ == geom.AtC
}

func vertexLocalIndex(typ geom.ClosestPointType) int {
	switch typ {
	case geom.AtB:
		return 1
	case geom.AtC:
		return 2
	default:
		return 0
	}
}
