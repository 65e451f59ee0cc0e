package mathx

import "github.com/chewxy/math32"

// Quat is a rotation quaternion (x, y, z, w).
type Quat struct {
	X, Y, Z, W float32
}

// Identity returns the no-rotation quaternion.
func Identity() Quat {
	return Quat{W: 1}
}

// FromAxisAngle builds a rotation of angle radians around axis. axis is expected to be unit length.
func FromAxisAngle(axis Vec3, angle float32) Quat {
	s := math32.Sin(angle * 0.5)
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math32.Cos(angle * 0.5),
	}
}

// ToAxisAngle decomposes q into a unit axis and an angle in [0, 2π]. The angle comes from
// atan2 of the vector part, so tilts far below float32's resolution of W survive.
// Only the exact identity reports axis +X and angle 0.
func (q Quat) ToAxisAngle() (axis Vec3, angle float32) {
	v := Vec3{q.X, q.Y, q.Z}
	n := v.Len()
	if n == 0 {
		return Vec3{X: 1}, 0
	}
	return v.Scale(1 / n), 2 * math32.Atan2(n, q.W)
}

// Mul returns q*r (apply r first, then q).
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Conj returns the inverse of a unit quaternion.
func (q Quat) Conj() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

func (q Quat) Len() float32 {
	return math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize returns q scaled to unit length; a zero quaternion becomes Identity.
func (q Quat) Normalize() Quat {
	l := q.Len()
	if l < Epsilon {
		return Identity()
	}
	inv := 1 / l
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// Rotate applies q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Integrate advances q by angular velocity w (rad/s, world frame) over dt and renormalizes.
func (q Quat) Integrate(w Vec3, dt float32) Quat {
	spin := Quat{X: w.X, Y: w.Y, Z: w.Z}.Mul(q)
	h := dt * 0.5
	return Quat{
		X: q.X + spin.X*h,
		Y: q.Y + spin.Y*h,
		Z: q.Z + spin.Z*h,
		W: q.W + spin.W*h,
	}.Normalize()
}

// Axes returns the rotated local X, Y and Z axes.
func (q Quat) Axes() [3]Vec3 {
	return [3]Vec3{
		q.Rotate(Vec3{X: 1}),
		q.Rotate(Vec3{Y: 1}),
		q.Rotate(Vec3{Z: 1}),
	}
}
