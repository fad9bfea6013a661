package dcd

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tetracollide/dcd/geom"
	"github.com/tetracollide/dcd/mesh"
)

// computeNormal dispatches on the closest-point type to read the
// appropriate precomputed mesh normal. It never derives a normal from
// triangle winding itself — that convenience computation belongs to
// the mesh's owner, out of scope for this core.
func computeNormal(typ geom.ClosestPointType, faceID int, m *mesh.TetMesh) mgl64.Vec3 {
	switch typ {
	case geom.AtA:
		return m.SurfaceVertexNormals[m.SurfaceFacesSurfaceVIds[faceID][0]]
	case geom.AtB:
		return m.SurfaceVertexNormals[m.SurfaceFacesSurfaceVIds[faceID][1]]
	case geom.AtC:
		return m.SurfaceVertexNormals[m.SurfaceFacesSurfaceVIds[faceID][2]]
	case geom.AtAB:
		return edgeNormal(m, faceID, 0)
	case geom.AtBC:
		return edgeNormal(m, faceID, 1)
	case geom.AtAC:
		return edgeNormal(m, faceID, 2)
	case geom.AtInterior:
		return m.SurfaceFaceNormals[faceID]
	default: // NotFound
		return mgl64.Vec3{}
	}
}

func edgeNormal(m *mesh.TetMesh, faceID, localEdge int) mgl64.Vec3 {
	neighbor := m.NeighborAcrossEdge(faceID, localEdge)
	return m.SurfaceFaceNormals[faceID].Add(m.SurfaceFaceNormals[neighbor]).Normalize()
}
