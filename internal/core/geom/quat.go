package geom

import "math"

// Quat is a rotation quaternion (X, Y, Z imaginary, W real). Identity is
// {0,0,0,1}. Quaternions arriving from a pose provider are assumed to be
// unit length; RotateVec does not renormalize.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity is the no-rotation quaternion.
var QuatIdentity = Quat{W: 1}

// QuatFromAxisAngle builds a quaternion rotating angle radians about axis.
// The axis must be unit length.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	sin, cos := math.Sincos(angle / 2)
	return Quat{
		X: axis.X * sin,
		Y: axis.Y * sin,
		Z: axis.Z * sin,
		W: cos,
	}
}

// Mul composes rotations: applying the result equals applying o, then q.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// RotateVec rotates v by q using the expanded sandwich product q v q*.
func (q Quat) RotateVec(v Vec3) Vec3 {
	// t = 2 * (q.xyz × v)
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	// v' = v + w*t + (q.xyz × t)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// YawTo returns the yaw angle (radians about the up axis) that points from
// `from` toward `to` in the horizontal plane, using the -Z forward convention.
func YawTo(from, to Vec3) float64 {
	d := to.Sub(from)
	return math.Atan2(-d.X, -d.Z)
}

// Euler is a yaw/pitch/roll triple in radians, applied in Y-X-Z order.
// Placement output only ever uses yaw and pitch.
type Euler struct {
	Yaw, Pitch, Roll float64
}
