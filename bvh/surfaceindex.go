package bvh

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/go-gl/mathgl/mgl64"
)

// hugeExtent bounds the "whole scene" rectangle used when a query
// starts at an unbounded (+Inf) radius; meshes in this engine are
// never close to this scale.
const hugeExtent = 1e9

// SurfaceEntry is one candidate surface triangle: a face id (within
// its owning mesh) and the AABB it was inserted under.
type SurfaceEntry struct {
	FaceID int
	Min    mgl64.Vec3
	Max    mgl64.Vec3
}

func (e *SurfaceEntry) Bounds() *rtreego.Rect {
	lengths := []float64{
		dim(e.Min.X(), e.Max.X()),
		dim(e.Min.Y(), e.Max.Y()),
		dim(e.Min.Z(), e.Max.Z()),
	}
	rect, err := rtreego.NewRect(rtreego.Point{e.Min.X(), e.Min.Y(), e.Min.Z()}, lengths)
	if err != nil {
		// A degenerate (zero-extent) AABB: pad it by an epsilon so
		// rtreego accepts a valid rectangle.
		const pad = 1e-9
		rect, _ = rtreego.NewRect(rtreego.Point{e.Min.X() - pad, e.Min.Y() - pad, e.Min.Z() - pad}, []float64{pad * 2, pad * 2, pad * 2})
	}
	return rect
}

func dim(min, max float64) float64 {
	d := max - min
	if d <= 0 {
		return 1e-9
	}
	return d
}

// SurfaceIndex is a spatial index of one mesh's surface triangles,
// supporting bounded-radius point queries with dynamic radius
// shrinkage. The vertex buffer it is built over is shared with either
// live or rest positions, per the detector's active mode.
type SurfaceIndex struct {
	tree *rtreego.Rtree
}

// NewSurfaceIndex builds an index over entries at the given quality.
func NewSurfaceIndex(entries []SurfaceEntry, quality Quality) *SurfaceIndex {
	minB, maxB := branching(quality)
	tree := rtreego.NewTree(3, minB, maxB)
	for i := range entries {
		tree.Insert(&entries[i])
	}
	return &SurfaceIndex{tree: tree}
}

// Candidate pairs a SurfaceEntry with the squared lower-bound distance
// from the query point to its AABB, the key Walk sorts by.
type Candidate struct {
	Entry  SurfaceEntry
	LowerB float64
}

// Walk folds over candidate triangles within radius of p, nearest
// lower-bound first, invoking visit for each. visit returns the
// (possibly shrunk) radius and whether to keep going; Walk stops early
// once a candidate's lower bound exceeds the current radius, or when
// visit asks to stop.
func (s *SurfaceIndex) Walk(p mgl64.Vec3, radius float64, visit func(Candidate) (newRadius float64, keepGoing bool)) {
	candidates := s.gather(p, radius)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].LowerB < candidates[j].LowerB })

	for _, c := range candidates {
		if c.LowerB > radius*radius {
			return
		}
		newRadius, keepGoing := visit(c)
		radius = newRadius
		if !keepGoing {
			return
		}
	}
}

func (s *SurfaceIndex) gather(p mgl64.Vec3, radius float64) []Candidate {
	half := radius
	if half < 0 || half > hugeExtent {
		half = hugeExtent
	}
	rect, err := rtreego.NewRect(
		rtreego.Point{p.X() - half, p.Y() - half, p.Z() - half},
		[]float64{half * 2, half * 2, half * 2},
	)
	if err != nil {
		return nil
	}

	hits := s.tree.SearchIntersect(rect)
	out := make([]Candidate, 0, len(hits))
	for _, h := range hits {
		e := h.(*SurfaceEntry)
		out = append(out, Candidate{Entry: *e, LowerB: lowerBoundSq(p, e.Min, e.Max)})
	}
	return out
}

func lowerBoundSq(p, min, max mgl64.Vec3) float64 {
	d := 0.0
	for axis := 0; axis < 3; axis++ {
		v, lo, hi := comp(p, axis), comp(min, axis), comp(max, axis)
		var c float64
		if v < lo {
			c = lo - v
		} else if v > hi {
			c = v - hi
		}
		d += c * c
	}
	return d
}

func comp(v mgl64.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X()
	case 1:
		return v.Y()
	default:
		return v.Z()
	}
}
