// Package bvh implements the detector's two spatial index kinds: a
// per-mesh surface-triangle index supporting bounded-radius point
// queries with dynamic radius shrinkage, and a single global tet index
// supporting the zero-radius point-in-tet query.
//
// The source this is ported from drives both through a callback-based
// spatial index (Embree's rtcPointQuery): the index invokes a
// user callback per candidate primitive, and the callback's return
// value tells the index whether the query radius shrank. Go has no
// idiomatic equivalent of that inversion of control, so Walk instead
// hands the caller a fold: it gathers candidates, sorts them by
// lower-bound distance, and calls back in that order, stopping as soon
// as a candidate's lower bound exceeds the now-shrunk radius. The
// contract — monotonic radius shrinkage, early termination once the
// radius reaches a known minimum — is preserved.
package bvh

// Quality is a build-quality level for a scene or geometry.
type Quality int

const (
	Low Quality = iota
	Medium
	High
	Refit
)

// branching picks an R-tree branching factor per quality: higher
// quality means a tighter, more expensive-to-build tree.
func branching(q Quality) (min, max int) {
	switch q {
	case High:
		return 2, 4
	case Medium:
		return 3, 6
	default: // Low, Refit (REFIT collapses to Low at the scene level)
		return 4, 8
	}
}
