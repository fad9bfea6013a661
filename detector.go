// Package dcd is the Discrete Collision Detection core for a simulator
// of deformable volumetric bodies represented as tetrahedral meshes.
// Given a set of such meshes, it answers two coupled spatial queries:
// which tets embrace a query vertex (PenetrationQuery), and, for each
// embracing tet, the nearest admissible point on the intersected
// mesh's surface (ClosestSurface).
package dcd

import (
	"log/slog"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tetracollide/dcd/bvh"
	"github.com/tetracollide/dcd/mesh"
	"github.com/tetracollide/dcd/traverse"
)

// Detector owns the spatial indexes built over a set of caller-owned
// meshes. It never copies mesh buffers; the caller must not mutate a
// buffer the detector currently has indexed without also calling
// UpdateBVH.
type Detector struct {
	params Parameters
	logger *slog.Logger

	meshes []*mesh.TetMesh

	tetIndex *bvh.TetIndex

	liveSurfaceIndexes []*bvh.SurfaceIndex
	restSurfaceIndexes []*bvh.SurfaceIndex

	totalTets int
	epochs    *traverse.EpochTable

	restPoseMismatchLogged bool
}

// defaultTetIndexCellSize is the tet grid's bucket size when none of
// the registered meshes can suggest one; otherwise tetCellSize derives
// the size from the meshes' tets on every Initialize and UpdateBVH, but
// a Detector with no tets still needs a sane value to construct its grid.
const defaultTetIndexCellSize = 1.0

// New constructs a Detector over params. Initialize must be called
// once with the meshes to collide before any query.
func New(params Parameters) *Detector {
	return &Detector{
		params: params,
		logger: slog.Default(),
	}
}

// Initialize registers meshes and builds the initial scenes. It must
// be called once before any other operation.
func (d *Detector) Initialize(meshes []*mesh.TetMesh) {
	d.meshes = meshes

	d.totalTets = 0
	for _, m := range meshes {
		d.totalTets += len(m.Tets)
	}
	d.epochs = traverse.NewEpochTable(d.totalTets)

	d.liveSurfaceIndexes = make([]*bvh.SurfaceIndex, len(meshes))
	for i, m := range meshes {
		d.liveSurfaceIndexes[i] = bvh.BuildSurfaceIndex(m, bvh.Low, false)
	}

	if d.params.RestPoseClosestPoint {
		if !restPoseClosestPointBuildEnabled {
			d.logModeMismatch()
		} else {
			d.restSurfaceIndexes = make([]*bvh.SurfaceIndex, len(meshes))
			for i, m := range meshes {
				if m.RestPositions != nil {
					d.restSurfaceIndexes[i] = bvh.BuildSurfaceIndex(m, bvh.Low, true)
				}
			}
		}
	}

	d.tetIndex = bvh.BuildTetIndex(meshes, tetCellSize(meshes), false)
}

// UpdateBVH refits or rebuilds the scenes ahead of a frame's queries.
// tetQuality and surfaceQuality are a build-quality level each; Refit
// at the scene level collapses to Low, since neither the tet grid nor
// the rtreego-backed surface index this detector uses has a cheaper
// partial-refit operation than a full rebuild — only the per-geometry
// quality (the R-tree's branching factor) actually varies. updateSurface
// should be false while the detector is in rest-pose mode, since rest
// buffers are immutable and only need the one build Initialize already
// did.
func (d *Detector) UpdateBVH(tetQuality, surfaceQuality bvh.Quality, updateSurface bool) {
	_ = tetQuality // the tet grid has no quality knob; see doc comment
	d.tetIndex = bvh.BuildTetIndex(d.meshes, tetCellSize(d.meshes), false)

	if !updateSurface {
		return
	}
	for i, m := range d.meshes {
		if !m.ActiveForCollision {
			continue
		}
		d.liveSurfaceIndexes[i] = bvh.BuildSurfaceIndex(m, surfaceQuality, false)
	}
}

func tetCellSize(meshes []*mesh.TetMesh) float64 {
	// Size the grid's cells to the average tet's AABB diagonal, so a
	// point query's single-cell lookup captures the tets that
	// genuinely overlap it without scanning the whole mesh.
	total := 0.0
	count := 0
	for _, m := range meshes {
		for _, tet := range m.Tets {
			verts := m.TetVertices(tet, false)
			min, max := verts[0], verts[0]
			for _, v := range verts[1:] {
				min = componentMin(min, v)
				max = componentMax(max, v)
			}
			total += max.Sub(min).Len()
			count++
		}
	}
	if count == 0 {
		return defaultTetIndexCellSize
	}
	avg := total / float64(count)
	if avg <= 0 {
		return defaultTetIndexCellSize
	}
	return avg
}

// newEpochTable builds an epoch table sized to this detector's tets,
// for a caller that needs its own private table — i.e. a QueryBatch
// worker goroutine, which cannot share the Detector's own d.epochs
// with the other workers (see ClosestSurface's doc comment).
func (d *Detector) newEpochTable() *traverse.EpochTable {
	return traverse.NewEpochTable(d.totalTets)
}

func (d *Detector) logModeMismatch() {
	if d.restPoseMismatchLogged {
		return
	}
	d.restPoseMismatchLogged = true
	d.logger.Warn("rest-pose closest-point requested but disabled at build time; closest-surface queries will report not-found in rest-pose mode")
}

var closestPointRecordPool = sync.Pool{
	New: func() interface{} { return &closestPointRecord{} },
}

func componentMin(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Min(a.X(), b.X()), math.Min(a.Y(), b.Y()), math.Min(a.Z(), b.Z())}
}

func componentMax(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Max(a.X(), b.X()), math.Max(a.Y(), b.Y()), math.Max(a.Z(), b.Z())}
}
