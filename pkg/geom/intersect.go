package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"gonum.org/v1/gonum/mat"
)

// LineHit is an intersection against the infinite line through a segment,
// carrying the parametric position along that segment (0 at start, 1 at end).
type LineHit struct {
	T float64
	P v2.Vec
}

// LineLineIntersection intersects the infinite lines a1-a2 and b1-b2.
// It returns the parametric positions t (along a1-a2) and u (along b1-b2)
// and the intersection point. Parallel or degenerate lines return ok=false.
func LineLineIntersection(a1, a2, b1, b2 v2.Vec) (t, u float64, p v2.Vec, ok bool) {
	da := a2.Sub(a1)
	db := b2.Sub(b1)
	denom := Cross(da, db)
	if math.Abs(denom) < Epsilon {
		return 0, 0, v2.Vec{}, false
	}
	w := b1.Sub(a1)
	t = Cross(w, db) / denom
	u = Cross(w, da) / denom
	return t, u, a1.Add(da.MulScalar(t)), true
}

// LineCircleIntersections intersects the infinite line a-b with the circle
// (center, radius). Hits are ordered by parametric position along a-b.
func LineCircleIntersections(a, b, center v2.Vec, radius float64) []LineHit {
	d := b.Sub(a)
	f := a.Sub(center)

	qa := d.Length2()
	if qa < Epsilon {
		return nil
	}
	qb := 2 * f.Dot(d)
	qc := f.Length2() - radius*radius

	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return nil
	}
	if disc < Epsilon {
		t := -qb / (2 * qa)
		return []LineHit{{T: t, P: Lerp(a, b, t)}}
	}
	sq := math.Sqrt(disc)
	t1 := (-qb - sq) / (2 * qa)
	t2 := (-qb + sq) / (2 * qa)
	return []LineHit{
		{T: t1, P: Lerp(a, b, t1)},
		{T: t2, P: Lerp(a, b, t2)},
	}
}

// CircleCircleIntersections intersects two circles. Concentric, separate,
// or contained circles yield no points; tangent circles yield one.
func CircleCircleIntersections(c1 v2.Vec, r1 float64, c2 v2.Vec, r2 float64) []v2.Vec {
	d := c2.Sub(c1).Length()
	if d < Epsilon {
		return nil // concentric
	}
	if d > r1+r2 || d < math.Abs(r1-r2) {
		return nil
	}

	// Distance from c1 to the chord midpoint along the center line.
	a := (r1*r1 - r2*r2 + d*d) / (2 * d)
	h2 := r1*r1 - a*a
	if h2 < 0 {
		h2 = 0
	}
	h := math.Sqrt(h2)

	dir := c2.Sub(c1).MulScalar(1 / d)
	mid := c1.Add(dir.MulScalar(a))
	if h < Epsilon {
		return []v2.Vec{mid}
	}
	off := Perp(dir).MulScalar(h)
	return []v2.Vec{mid.Add(off), mid.Sub(off)}
}

// Circumcenter returns the center of the circle through three points by
// solving the pair of perpendicular-bisector equations. Collinear points
// (cross product below Epsilon) return ok=false.
func Circumcenter(a, b, c v2.Vec) (v2.Vec, bool) {
	if math.Abs(Cross(b.Sub(a), c.Sub(a))) < Epsilon {
		return v2.Vec{}, false
	}

	// 2(b-a)·p = |b|^2 - |a|^2
	// 2(c-a)·p = |c|^2 - |a|^2
	A := mat.NewDense(2, 2, []float64{
		2 * (b.X - a.X), 2 * (b.Y - a.Y),
		2 * (c.X - a.X), 2 * (c.Y - a.Y),
	})
	rhs := mat.NewVecDense(2, []float64{
		b.Length2() - a.Length2(),
		c.Length2() - a.Length2(),
	})

	var p mat.VecDense
	if err := p.SolveVec(A, rhs); err != nil {
		return v2.Vec{}, false
	}
	return v2.Vec{X: p.AtVec(0), Y: p.AtVec(1)}, true
}
