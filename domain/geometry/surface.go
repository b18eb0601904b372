package geometry

import "math"

// parallelEpsilon guards the plane intersection against directions lying in
// the plane.
const parallelEpsilon = 1e-12

// Plane is an unbounded plane defined by a point and a normal.
type Plane struct {
	Point  Vec3
	Normal Vec3
}

// NewPlane creates a plane through point with the given normal. The normal is
// normalized on construction.
func NewPlane(point, normal Vec3) Plane {
	return Plane{Point: point, Normal: normal.Unit()}
}

// Distance returns the signed path length from position along direction to
// the plane. Positive means the plane lies ahead, negative behind. Directions
// parallel to the plane yield +Inf.
func (p Plane) Distance(position, direction Vec3) float64 {
	denom := direction.Dot(p.Normal)
	if math.Abs(denom) < parallelEpsilon {
		return math.Inf(1)
	}
	return p.Point.Sub(position).Dot(p.Normal) / denom
}

// Sphere is a spherical shell defined by center and radius.
type Sphere struct {
	Center Vec3
	Radius float64
}

// NewSphere creates a sphere with the given center and radius.
func NewSphere(center Vec3, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// Distance returns the signed path length from position along direction to
// the nearest intersection with the shell. The smallest positive solution is
// preferred; when both solutions lie behind, the one closest to the start is
// returned. A line missing the shell yields +Inf.
func (s Sphere) Distance(position, direction Vec3) float64 {
	d := direction.Unit()
	oc := position.Sub(s.Center)
	b := oc.Dot(d)
	c := oc.Dot(oc) - s.Radius*s.Radius

	disc := b*b - c
	if disc < 0 {
		return math.Inf(1)
	}

	sq := math.Sqrt(disc)
	t1 := -b - sq
	t2 := -b + sq

	switch {
	case t1 >= 0:
		return t1
	case t2 >= 0:
		return t2
	default:
		return t2
	}
}
