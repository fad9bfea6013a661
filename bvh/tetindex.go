package bvh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TetIndex is the global tet scene: a single spatial index over
// tetrahedra of every mesh registered with the detector, each mesh
// contributing a geometry keyed by mesh id. It answers the
// zero-radius point-in-tet query used by the penetration test.
//
// It is a uniform hashed grid rather than a tree: point-in-tet
// candidates are gathered with a single cell lookup, exactly the way
// the broad phase gathers body-pair candidates from one cell. A
// uniform grid has no partial-refit operation, so Refit and a full
// Low rebuild cost the same here — which is also why the detector
// maps a scene-level Refit quality down to Low (see Detector.UpdateBVH).
type TetIndex struct {
	cellSize float64
	cells    []tetCell
	cellMask int

	entries []TetEntry
}

// TetEntry identifies one candidate tet by mesh and local tet id,
// together with the AABB it was inserted under.
type TetEntry struct {
	MeshID int
	TetID  int
	Min    mgl64.Vec3
	Max    mgl64.Vec3
}

type tetCell struct {
	entryIndices []int
}

type cellKey struct {
	x, y, z int
}

// NewTetIndex builds an empty grid with the given cell size, rounding
// the cell count up to a power of two as the hash table requires.
func NewTetIndex(cellSize float64, numCells int) *TetIndex {
	numCells = nextPowerOfTwo(numCells)
	cells := make([]tetCell, numCells)
	for i := range cells {
		cells[i].entryIndices = make([]int, 0, 8)
	}
	return &TetIndex{cellSize: cellSize, cells: cells, cellMask: numCells - 1}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Reset clears every cell and the entry list, in preparation for a
// full rebuild.
func (idx *TetIndex) Reset() {
	for i := range idx.cells {
		idx.cells[i].entryIndices = idx.cells[i].entryIndices[:0]
	}
	idx.entries = idx.entries[:0]
}

// Insert registers a tet's AABB under every cell it overlaps.
func (idx *TetIndex) Insert(meshID, tetID int, min, max mgl64.Vec3) {
	entryIdx := len(idx.entries)
	idx.entries = append(idx.entries, TetEntry{MeshID: meshID, TetID: tetID, Min: min, Max: max})

	minCell := idx.worldToCell(min)
	maxCell := idx.worldToCell(max)
	for x := minCell.x; x <= maxCell.x; x++ {
		for y := minCell.y; y <= maxCell.y; y++ {
			for z := minCell.z; z <= maxCell.z; z++ {
				h := idx.hashCell(cellKey{x, y, z})
				idx.cells[h].entryIndices = append(idx.cells[h].entryIndices, entryIdx)
			}
		}
	}
}

// QueryPoint returns every tet entry whose AABB overlaps the cell
// containing p. It is a broad-phase filter: callers still must run
// the exact point-in-tet test against each candidate.
func (idx *TetIndex) QueryPoint(p mgl64.Vec3) []TetEntry {
	h := idx.hashCell(idx.worldToCell(p))
	indices := idx.cells[h].entryIndices
	out := make([]TetEntry, 0, len(indices))
	for _, i := range indices {
		e := idx.entries[i]
		if p.X() >= e.Min.X() && p.X() <= e.Max.X() &&
			p.Y() >= e.Min.Y() && p.Y() <= e.Max.Y() &&
			p.Z() >= e.Min.Z() && p.Z() <= e.Max.Z() {
			out = append(out, e)
		}
	}
	return out
}

func (idx *TetIndex) worldToCell(p mgl64.Vec3) cellKey {
	return cellKey{
		x: int(math.Floor(p.X() / idx.cellSize)),
		y: int(math.Floor(p.Y() / idx.cellSize)),
		z: int(math.Floor(p.Z() / idx.cellSize)),
	}
}

func (idx *TetIndex) hashCell(key cellKey) int {
	h := (key.x * 73856093) ^ (key.y * 19349663) ^ (key.z * 83492791)
	return h & idx.cellMask
}
