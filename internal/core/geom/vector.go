package geom

import "math"

// Epsilon is the tolerance used for near-zero and equality checks across
// the geometry package. Placement math works in meters, so anything below
// a tenth of a millimeter is noise.
const Epsilon = 1e-4

// Vec3 is a 3D vector or point in world space (meters, Y up).
type Vec3 struct {
	X, Y, Z float64
}

var (
	// Zero is the origin / null vector.
	Zero = Vec3{}
	// Up is the world up axis.
	Up = Vec3{Y: 1}
)

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the right-handed cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) Length() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns the unit vector in the direction of v. A near-zero
// vector normalizes to Zero rather than dividing by noise; callers that
// need a guaranteed direction must substitute their own default.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < Epsilon {
		return Zero
	}
	return v.Scale(1 / l)
}

// Flatten zeroes the vertical component, projecting v onto the horizontal plane.
func (v Vec3) Flatten() Vec3 { return Vec3{X: v.X, Z: v.Z} }

// RotateY rotates v about the world up axis by angle radians (counterclockwise
// when viewed from above).
func (v Vec3) RotateY(angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// Lerp linearly interpolates between v and o by t in [0,1].
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}

// Distance returns the Euclidean distance between two points.
func (v Vec3) Distance(o Vec3) float64 { return o.Sub(v).Length() }

// HorizontalDistance ignores the Y axis, which is what zone range checks want.
func (v Vec3) HorizontalDistance(o Vec3) float64 {
	dx, dz := o.X-v.X, o.Z-v.Z
	return math.Hypot(dx, dz)
}

// ApproxEqual reports whether both vectors are equal within Epsilon per axis.
func (v Vec3) ApproxEqual(o Vec3) bool {
	return math.Abs(v.X-o.X) < Epsilon &&
		math.Abs(v.Y-o.Y) < Epsilon &&
		math.Abs(v.Z-o.Z) < Epsilon
}
