package dcd

// Parameters is the detector's immutable configuration, fixed for the
// lifetime of a Detector.
type Parameters struct {
	// HandleSelfCollision allows a mesh to report penetration and
	// closest-surface candidates against itself.
	HandleSelfCollision bool
	// RestPoseClosestPoint selects rest-pose closest-surface queries.
	// Only honored when the resteposeclosest build tag is set; see
	// restpose_on.go / restpose_off.go.
	RestPoseClosestPoint bool
	// CheckFeasibleRegion gates the feasible-region predicate.
	CheckFeasibleRegion bool
	// CheckTetTraverse gates the tetrahedral ray-walker reachability
	// check.
	CheckTetTraverse bool
	// TetrahedralTraverseForNonSelfIntersection also runs the walker
	// when the embracing tet belongs to a different mesh than the
	// query vertex (self-collision always runs it when CheckTetTraverse
	// is set).
	TetrahedralTraverseForNonSelfIntersection bool

	// MaxNumberOfBVHQuery bounds the candidates examined per
	// closest-surface call on a single embracing tet.
	MaxNumberOfBVHQuery int

	// FeasibleRegionEpsilon scales the feasible-region tolerance.
	FeasibleRegionEpsilon float64

	// CenterShiftLevel in [0,1] blends a tracing origin/target toward
	// a centroid, to keep the ray off degenerate edges and vertices.
	CenterShiftLevel float64
	// ShiftQueryPointToCenter blends the walk's target toward the
	// embracing tet's centroid by CenterShiftLevel.
	ShiftQueryPointToCenter bool
	// StopTraversingAfterPassingQueryPoint bounds the walk's distance
	// to MaxSearchDistanceMultiplier times the origin-to-target span;
	// when false the walk is unbounded.
	StopTraversingAfterPassingQueryPoint bool
	MaxSearchDistanceMultiplier          float64

	// RayTriIntersectionEPSILON is the walker's ray-triangle
	// intersection tolerance.
	RayTriIntersectionEPSILON float64

	// LoopLessTraverse and UseStaticTraverse select the walker variant
	// per the fallback graph: LoopLess (if set) else Static (if set,
	// falling back to Dynamic on overflow) else Dynamic.
	LoopLessTraverse  bool
	UseStaticTraverse bool
}
