// Package traverse implements the tetrahedral ray walker: it marches a
// ray from a surface candidate toward a query point through tet
// adjacencies, validating that the two are connected by an
// unobstructed path through mesh volume.
//
// The walk itself is a single deterministic forward march — at each
// tet, the face (other than the one just entered through) with the
// smallest positive ray-triangle intersection parameter is crossed.
// The three variants below share that contract and differ only in
// their stop checks: Static caps the number of tets traversed, LoopLess
// stamps each tet to detect a revisit, and Dynamic has neither. None of
// them keeps a list of the tets visited.
package traverse

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tetracollide/dcd/geom"
	"github.com/tetracollide/dcd/mesh"
)

// Variant selects which walker backs a Walk call.
type Variant int

const (
	// Dynamic counts the tets it traverses with no capacity limit; it
	// does not keep a list of the tets visited.
	Dynamic Variant = iota
	// Static counts the tets it traverses and stops with Overflow once
	// the count exceeds StaticCapacity; like Dynamic it does not keep a
	// list of the tets visited. The caller is expected to retry with
	// Dynamic.
	Static
	// LoopLess keeps no record at all beyond an epoch stamp per tet,
	// used only to detect revisiting a tet within the same walk. It is
	// the zero-allocation steady-state choice.
	LoopLess
)

// StopReason names why a walk terminated.
type StopReason int

const (
	ReachedGoal StopReason = iota
	ExceededDistance
	EmptyStack
	Overflow
)

func (r StopReason) String() string {
	switch r {
	case ReachedGoal:
		return "reachedGoal"
	case ExceededDistance:
		return "exceededDistance"
	case EmptyStack:
		return "emptyStack"
	case Overflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// Statistics reports how a walk went.
type Statistics struct {
	NumTetsTraversed int
	StopReason       StopReason
}

// Unbounded is the distance bound L meaning "no limit".
const Unbounded = -1.0

// StaticCapacity is the tet count the Static variant may exceed, without
// having reached the goal, before declaring Overflow.
const StaticCapacity = 64

// EpochTable is the per-walk cycle-detection state the LoopLess variant
// needs, owned by the caller and reused across many walks. A walk
// claims the table by calling NextEpoch, which invalidates any stamps
// left over from a previous walk without having to clear the slice.
type EpochTable struct {
	stamps  []int
	current int
}

// NewEpochTable allocates an epoch table sized for numTets tets.
func NewEpochTable(numTets int) *EpochTable {
	return &EpochTable{stamps: make([]int, numTets)}
}

// NextEpoch advances the table to a fresh epoch and returns it.
func (e *EpochTable) NextEpoch() int {
	e.current++
	return e.current
}

func (e *EpochTable) visit(tetID, epoch int) (alreadyVisited bool) {
	if e.stamps[tetID] == epoch {
		return true
	}
	e.stamps[tetID] = epoch
	return false
}

// Walk marches from origin along unit direction dir, starting at tet
// startTet entered through local face startFace, looking for goalTet.
// L bounds the traveled distance (Unbounded for none). epsilon is the
// ray-triangle intersection tolerance.
//
// variant selects bookkeeping per the type's doc comments. epochs is
// only consulted for the LoopLess variant and may be nil otherwise.
func Walk(m *mesh.TetMesh, origin, dir mgl64.Vec3, maxDistance float64, startTet, startFace, goalTet int, epsilon float64, variant Variant, epochs *EpochTable) (bool, Statistics) {
	switch variant {
	case LoopLess:
		return walkLoopLess(m, origin, dir, maxDistance, startTet, startFace, goalTet, epsilon, epochs)
	case Static:
		return walkBounded(m, origin, dir, maxDistance, startTet, startFace, goalTet, epsilon, StaticCapacity)
	default:
		return walkBounded(m, origin, dir, maxDistance, startTet, startFace, goalTet, epsilon, -1)
	}
}

// walkBounded implements both Dynamic (capacity < 0, unbounded) and
// Static (capacity == StaticCapacity).
func walkBounded(m *mesh.TetMesh, origin, dir mgl64.Vec3, maxDistance float64, startTet, startFace, goalTet int, epsilon float64, capacity int) (bool, Statistics) {
	cur := startTet
	entryFace := startFace
	curOrigin := origin
	distance := 0.0
	traversed := 1

	if cur == goalTet {
		return true, Statistics{NumTetsTraversed: traversed, StopReason: ReachedGoal}
	}

	for {
		if capacity >= 0 && traversed > capacity {
			return false, Statistics{NumTetsTraversed: traversed, StopReason: Overflow}
		}

		next, hitFace, t, ok := step(m, cur, entryFace, curOrigin, dir, epsilon)
		if !ok {
			return false, Statistics{NumTetsTraversed: traversed, StopReason: EmptyStack}
		}

		distance += t
		if maxDistance >= 0 && distance > maxDistance {
			return false, Statistics{NumTetsTraversed: traversed, StopReason: ExceededDistance}
		}

		curOrigin = curOrigin.Add(dir.Mul(t))
		entryFace = reciprocalFace(m, cur, next, hitFace)
		cur = next
		traversed++

		if cur == goalTet {
			return true, Statistics{NumTetsTraversed: traversed, StopReason: ReachedGoal}
		}
	}
}

func walkLoopLess(m *mesh.TetMesh, origin, dir mgl64.Vec3, maxDistance float64, startTet, startFace, goalTet int, epsilon float64, epochs *EpochTable) (bool, Statistics) {
	epoch := epochs.NextEpoch()
	epochs.visit(startTet, epoch)

	cur := startTet
	entryFace := startFace
	curOrigin := origin
	distance := 0.0
	traversed := 1

	if cur == goalTet {
		return true, Statistics{NumTetsTraversed: traversed, StopReason: ReachedGoal}
	}

	for {
		next, hitFace, t, ok := step(m, cur, entryFace, curOrigin, dir, epsilon)
		if !ok {
			return false, Statistics{NumTetsTraversed: traversed, StopReason: EmptyStack}
		}

		distance += t
		if maxDistance >= 0 && distance > maxDistance {
			return false, Statistics{NumTetsTraversed: traversed, StopReason: ExceededDistance}
		}

		if epochs.visit(next, epoch) {
			// Revisiting a tet within the same walk means the greedy
			// march is cycling; there is no stack to backtrack with.
			return false, Statistics{NumTetsTraversed: traversed, StopReason: EmptyStack}
		}

		curOrigin = curOrigin.Add(dir.Mul(t))
		entryFace = reciprocalFace(m, cur, next, hitFace)
		cur = next
		traversed++

		if cur == goalTet {
			return true, Statistics{NumTetsTraversed: traversed, StopReason: ReachedGoal}
		}
	}
}

// step finds, among the three faces of tet cur other than entryFace,
// the one with the smallest positive ray-triangle intersection and
// that has a tet neighbor across it. It returns that neighbor tet id,
// the local face crossed, and the hit distance.
func step(m *mesh.TetMesh, cur, entryFace int, origin, dir mgl64.Vec3, epsilon float64) (neighbor, face int, t float64, ok bool) {
	tet := m.Tets[cur]
	bestT := math.MaxFloat64
	bestFace := -1

	for localFace := 0; localFace < 4; localFace++ {
		if localFace == entryFace {
			continue
		}
		nb := m.TetNeighbors[cur][localFace]
		if nb < 0 {
			continue
		}
		a, b, c := m.LocalFace(tet, localFace, false)
		hitT, hitOK := geom.RayTriIntersect(origin, dir, a, b, c, epsilon)
		if !hitOK || hitT <= 0 {
			continue
		}
		if hitT < bestT {
			bestT = hitT
			bestFace = localFace
		}
	}

	if bestFace < 0 {
		return 0, 0, 0, false
	}
	return m.TetNeighbors[cur][bestFace], bestFace, bestT, true
}

// reciprocalFace finds which local face of tet neighbor corresponds to
// the shared face just crossed from cur.
func reciprocalFace(m *mesh.TetMesh, cur, neighbor, faceInCur int) int {
	for j := 0; j < 4; j++ {
		if m.TetNeighbors[neighbor][j] == cur {
			return j
		}
	}
	// A watertight adjacency table always has a reciprocal entry; this
	// would indicate a malformed TetNeighbors table.
	panic("traverse: tet neighbor table is not reciprocal")
}
