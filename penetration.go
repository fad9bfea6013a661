package dcd

import (
	"github.com/tetracollide/dcd/geom"
	"github.com/tetracollide/dcd/mesh"
)

// PenetrationQuery reports every tet (of any mesh, possibly
// queryMeshID itself) whose interior contains the current position of
// vertex queryVertexID of mesh queryMeshID.
func (d *Detector) PenetrationQuery(queryMeshID, queryVertexID int) *PenetrationResult {
	result := NewPenetrationResult(queryMeshID, queryVertexID)
	d.penetrationQuery(result, -1)
	return result
}

// penetrationQuery is the exported query's implementation, plus an
// excludeTetID hook (-1 when unused) for callers that already know one
// candidate tet must not be reported again.
func (d *Detector) penetrationQuery(result *PenetrationResult, excludeTetID int) {
	queryMesh := d.meshes[result.QueryMeshID]
	queryPos := queryMesh.Vertex(result.QueryVertexID, false)

	candidates := d.tetIndex.QueryPoint(queryPos)
	for _, c := range candidates {
		candidateMesh := d.meshes[c.MeshID]
		if !candidateMesh.ActiveForCollision {
			continue
		}

		if !d.params.HandleSelfCollision && c.MeshID == result.QueryMeshID {
			continue
		}

		tet := candidateMesh.Tets[c.TetID]
		if c.MeshID == result.QueryMeshID && tetContainsVertex(tet, result.QueryVertexID) {
			continue
		}

		if excludeTetID >= 0 && c.MeshID == result.QueryMeshID && c.TetID == excludeTetID {
			continue
		}

		verts := candidateMesh.TetVertices(tet, false)
		if geom.PointInTet(queryPos, verts[0], verts[1], verts[2], verts[3]) {
			result.IntersectedTets = append(result.IntersectedTets, c.TetID)
			result.IntersectedMeshIDs = append(result.IntersectedMeshIDs, c.MeshID)
		}
	}
}

func tetContainsVertex(t mesh.Tet, vid int) bool {
	return t[0] == vid || t[1] == vid || t[2] == vid || t[3] == vid
}
