// Package geom implements the geometry kernels the collision detector
// builds on: closest point on a triangle, point-in-tetrahedron, tet
// barycentrics, and ray-triangle intersection.
//
// ClosestPointOnTriangle follows the exact-region method described in
// Ericson, "Real-Time Collision Detection" §5.1.5: the query point is
// classified against the triangle's seven Voronoi regions (three vertex
// regions, three edge regions, and the interior) using the same six dot
// products and three edge-determinants GJK's simplex reduction uses to
// classify a point against a 2-simplex.
package geom

import "github.com/go-gl/mathgl/mgl64"

// ClosestPointType names which Voronoi region of a triangle a closest
// point fell into.
type ClosestPointType int

const (
	NotFound ClosestPointType = iota
	AtA
	AtB
	AtC
	AtAB
	AtBC
	AtAC
	AtInterior
)

// Barycentrics are weights (alpha, beta, gamma) for vertices (a, b, c)
// that sum to 1.
type Barycentrics struct {
	A, B, C float64
}

// Point reconstructs the Cartesian point for these barycentrics over
// triangle (a, b, c).
func (bc Barycentrics) Point(a, b, c mgl64.Vec3) mgl64.Vec3 {
	return a.Mul(bc.A).Add(b.Mul(bc.B)).Add(c.Mul(bc.C))
}

// ClosestPointOnTriangle returns the point on triangle (a, b, c)
// closest to p, its barycentric coordinates, and which region it fell
// in. Region priority on a tie is vertex, then edge, then interior, in
// the order A, B, C, AB, AC, BC.
func ClosestPointOnTriangle(p, a, b, c mgl64.Vec3) (mgl64.Vec3, Barycentrics, ClosestPointType) {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a, Barycentrics{1, 0, 0}, AtA
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b, Barycentrics{0, 1, 0}, AtB
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c, Barycentrics{0, 0, 1}, AtC
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Mul(v)), Barycentrics{1 - v, v, 0}, AtAB
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		v := d2 / (d2 - d6)
		return a.Add(ac.Mul(v)), Barycentrics{1 - v, 0, v}, AtAC
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		v := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(v)), Barycentrics{0, 1 - v, v}, AtBC
	}

	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w)), Barycentrics{1 - v - w, v, w}, AtInterior
}

// PointInTet reports whether p lies inside tet (a, b, c, d), using a
// barycentric sign test in the tet's reference orientation: p is
// inside iff all four signed sub-tet volumes share the sign of the
// whole tet's volume. A sub-volume that is zero, or within a small
// tolerance of zero, also passes, so points on the boundary count as
// inside.
func PointInTet(p, a, b, c, d mgl64.Vec3) bool {
	bc := TetBarycentrics(p, a, b, c, d)
	const eps = -1e-9
	return bc.W0 >= eps && bc.W1 >= eps && bc.W2 >= eps && bc.W3 >= eps
}

// TetBarycentrics4 are the four barycentric weights of a point with
// respect to a tetrahedron's vertices (a, b, c, d).
type TetBarycentrics4 struct {
	W0, W1, W2, W3 float64
}

// TetBarycentrics computes the four barycentric coordinates of p with
// respect to tet (a, b, c, d), used to map a live-space query point
// into rest-pose space via the same weights.
func TetBarycentrics(p, a, b, c, d mgl64.Vec3) TetBarycentrics4 {
	vol := signedVolume(a, b, c, d)
	if vol == 0 {
		return TetBarycentrics4{}
	}
	invVol := 1.0 / vol
	w0 := signedVolume(p, b, c, d) * invVol
	w1 := signedVolume(a, p, c, d) * invVol
	w2 := signedVolume(a, b, p, d) * invVol
	w3 := signedVolume(a, b, c, p) * invVol
	return TetBarycentrics4{w0, w1, w2, w3}
}

// Point reconstructs the Cartesian point for these weights over tet
// vertices (a, b, c, d).
func (bc TetBarycentrics4) Point(a, b, c, d mgl64.Vec3) mgl64.Vec3 {
	return a.Mul(bc.W0).Add(b.Mul(bc.W1)).Add(c.Mul(bc.W2)).Add(d.Mul(bc.W3))
}

func signedVolume(a, b, c, d mgl64.Vec3) float64 {
	return b.Sub(a).Cross(c.Sub(a)).Dot(d.Sub(a)) / 6.0
}

// RayTriIntersect tests the ray (origin, dir) against triangle (a, b,
// c) with tolerance eps, returning the intersection parameter t and
// whether it is valid: t must satisfy t >= -eps, and the hit's
// barycentric coordinates must each be >= -eps.
func RayTriIntersect(origin, dir, a, b, c mgl64.Vec3, eps float64) (t float64, ok bool) {
	ab := b.Sub(a)
	ac := c.Sub(a)
	pvec := dir.Cross(ac)
	det := ab.Dot(pvec)
	if det > -eps && det < eps {
		return 0, false
	}
	invDet := 1.0 / det

	tvec := origin.Sub(a)
	u := tvec.Dot(pvec) * invDet
	if u < -eps || u > 1+eps {
		return 0, false
	}

	qvec := tvec.Cross(ab)
	v := dir.Dot(qvec) * invDet
	if v < -eps || u+v > 1+eps {
		return 0, false
	}

	t = ac.Dot(qvec) * invDet
	if t < -eps {
		return 0, false
	}
	return t, true
}

// FaceNormal returns the inward-pointing normal of triangle (a, b, c):
// the mesh's triangle winding defines an outward normal, and the
// detector treats surface normals as inward for feasibility tests, so
// the cross product is negated here.
func FaceNormal(a, b, c mgl64.Vec3) mgl64.Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize().Mul(-1)
}
