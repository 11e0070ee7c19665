package geom

import "math"

// AABB is an axis-aligned bounding box given by its min and max corners.
// A well-formed box satisfies Min[i] <= Max[i] on every axis; constructors
// canonicalize, and boxes produced by Translate/FromCenterSize stay valid.
type AABB struct {
	Min, Max Vec3
}

// NewAABB builds a box from two opposite corners in any order.
func NewAABB(a, b Vec3) AABB {
	return AABB{
		Min: Vec3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)},
		Max: Vec3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)},
	}
}

// FromCenterSize builds a box centered at center with the given full extents.
func FromCenterSize(center, size Vec3) AABB {
	half := size.Scale(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

func (a AABB) Center() Vec3 { return a.Min.Add(a.Max).Scale(0.5) }

func (a AABB) Size() Vec3 { return a.Max.Sub(a.Min) }

func (a AABB) HalfSize() Vec3 { return a.Size().Scale(0.5) }

// MaxExtent returns the largest of the three side lengths.
func (a AABB) MaxExtent() float64 {
	s := a.Size()
	return math.Max(s.X, math.Max(s.Y, s.Z))
}

// IsDegenerate reports whether the box has effectively zero volume on
// every axis (an empty object, or a box never populated from geometry).
func (a AABB) IsDegenerate() bool {
	s := a.Size()
	return s.X < Epsilon && s.Y < Epsilon && s.Z < Epsilon
}

// Intersects reports whether a and b overlap. Two boxes intersect iff
// they overlap on all three axes simultaneously; touching faces count as
// an intersection. The test is symmetric.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Contains reports whether point p lies inside or on the box.
func (a AABB) Contains(p Vec3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// Translate returns the box moved by offset.
func (a AABB) Translate(offset Vec3) AABB {
	return AABB{Min: a.Min.Add(offset), Max: a.Max.Add(offset)}
}

// MoveTo returns the box recentered on the given point, preserving extents.
func (a AABB) MoveTo(center Vec3) AABB {
	return a.Translate(center.Sub(a.Center()))
}

// Union returns the smallest box enclosing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: Vec3{math.Min(a.Min.X, b.Min.X), math.Min(a.Min.Y, b.Min.Y), math.Min(a.Min.Z, b.Min.Z)},
		Max: Vec3{math.Max(a.Max.X, b.Max.X), math.Max(a.Max.Y, b.Max.Y), math.Max(a.Max.Z, b.Max.Z)},
	}
}

// Separation returns the vector that moves a out of b along the axis of
// least penetration, or Zero when the boxes do not overlap.
func (a AABB) Separation(b AABB) Vec3 {
	if !a.Intersects(b) {
		return Zero
	}

	dx1 := b.Max.X - a.Min.X // push a in +X
	dx2 := a.Max.X - b.Min.X // push a in -X
	dy1 := b.Max.Y - a.Min.Y
	dy2 := a.Max.Y - b.Min.Y
	dz1 := b.Max.Z - a.Min.Z
	dz2 := a.Max.Z - b.Min.Z

	min := dx1
	out := Vec3{X: dx1}
	if dx2 < min {
		min = dx2
		out = Vec3{X: -dx2}
	}
	if dy1 < min {
		min = dy1
		out = Vec3{Y: dy1}
	}
	if dy2 < min {
		min = dy2
		out = Vec3{Y: -dy2}
	}
	if dz1 < min {
		min = dz1
		out = Vec3{Z: dz1}
	}
	if dz2 < min {
		out = Vec3{Z: -dz2}
	}
	return out
}
