package physics

import (
	"fmt"

	"github.com/chewxy/math32"

	"tilt-maze/internal/mathx"
)

// ShapeKind tags the geometry carried by a Shape.
type ShapeKind int

const (
	ShapeSphere ShapeKind = iota + 1
	ShapeBox
	ShapePlane
	ShapeCylinder
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	case ShapePlane:
		return "plane"
	case ShapeCylinder:
		return "cylinder"
	}
	return fmt.Sprintf("shape(%d)", int(k))
}

// Shape is a tagged geometry variant. Only the fields of its Kind are meaningful:
// sphere uses Radius, box uses HalfExtents, cylinder uses Radius and Height (axis along local Z),
// plane has no parameters and faces local +Z.
type Shape struct {
	Kind        ShapeKind
	Radius      float32
	HalfExtents mathx.Vec3
	Height      float32
	Segments    int // cylinder tessellation hint for renderers
}

func Sphere(radius float32) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

func Box(halfExtents mathx.Vec3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: halfExtents}
}

func Plane() Shape {
	return Shape{Kind: ShapePlane}
}

func Cylinder(radius, height float32, segments int) Shape {
	return Shape{Kind: ShapeCylinder, Radius: radius, Height: height, Segments: segments}
}

// boxHalfExtents returns the extents used for box-style collision. Cylinders collide as their bounding box.
func (s Shape) boxHalfExtents() mathx.Vec3 {
	switch s.Kind {
	case ShapeBox:
		return s.HalfExtents
	case ShapeCylinder:
		return mathx.V3(s.Radius, s.Radius, s.Height*0.5)
	case ShapeSphere:
		return mathx.V3(s.Radius, s.Radius, s.Radius)
	}
	return mathx.Vec3{}
}

// BodyShape is a shape attached to a body at a local offset and orientation.
type BodyShape struct {
	Shape       Shape
	Offset      mathx.Vec3
	Orientation mathx.Quat
}

// Material names a surface for contact tuning and collision classification (e.g. "ground", "goal").
type Material struct {
	Name string
}

// ContactMaterial overrides friction and restitution for contacts between two materials.
type ContactMaterial struct {
	A, B        *Material
	Friction    float32
	Restitution float32
}

// CollideEvent is delivered to a body's listeners for each body it touched during a step.
// Body is the listening body; Target is the other one.
type CollideEvent struct {
	Body   *Body
	Target *Body
	Point  mathx.Vec3
	Normal mathx.Vec3 // from Body towards Target
}

// Body is a rigid body. Mass 0 makes it static: it never moves on its own,
// but its Position and Orientation may still be set directly between steps.
type Body struct {
	ID       int
	Name     string
	Material *Material
	Mass     float32
	Shapes   []BodyShape

	Position        mathx.Vec3
	Orientation     mathx.Quat
	Velocity        mathx.Vec3
	AngularVelocity mathx.Vec3

	LinearDamping  float32
	AngularDamping float32
	// LinearFactor and AngularFactor scale motion per world axis; zero locks an axis.
	LinearFactor  mathx.Vec3
	AngularFactor mathx.Vec3

	invMass         float32
	invInertiaLocal mathx.Vec3
	listeners       []func(CollideEvent)
}

// NewBody returns a body at the origin with identity orientation and unlocked axes.
// Damping defaults match a light air drag (0.01).
func NewBody(name string, mass float32, material *Material) *Body {
	if mass < 0 {
		mass = 0
	}
	return &Body{
		Name:           name,
		Material:       material,
		Mass:           mass,
		Orientation:    mathx.Identity(),
		LinearDamping:  0.01,
		AngularDamping: 0.01,
		LinearFactor:   mathx.V3(1, 1, 1),
		AngularFactor:  mathx.V3(1, 1, 1),
	}
}

// IsStatic reports whether the body has no mass.
func (b *Body) IsStatic() bool {
	return b.Mass == 0
}

// MaterialName returns the material tag or "" when the body has none.
func (b *Body) MaterialName() string {
	if b.Material == nil {
		return ""
	}
	return b.Material.Name
}

// AddShape attaches s at a local offset with identity orientation.
func (b *Body) AddShape(s Shape, offset mathx.Vec3) {
	b.AddShapeOriented(s, offset, mathx.Identity())
}

// AddShapeOriented attaches s at a local offset and orientation.
func (b *Body) AddShapeOriented(s Shape, offset mathx.Vec3, orientation mathx.Quat) {
	b.Shapes = append(b.Shapes, BodyShape{Shape: s, Offset: offset, Orientation: orientation})
	b.updateMassProperties()
}

// OnCollide registers fn to run for every body this one touches during a step.
func (b *Body) OnCollide(fn func(CollideEvent)) {
	b.listeners = append(b.listeners, fn)
}

// updateMassProperties derives inverse mass and a box inertia from the local bounds of all non-plane shapes.
func (b *Body) updateMassProperties() {
	if b.Mass == 0 {
		b.invMass = 0
		b.invInertiaLocal = mathx.Vec3{}
		return
	}
	b.invMass = 1 / b.Mass
	he := b.localHalfExtents()
	ix := b.Mass / 12 * (4*he.Y*he.Y + 4*he.Z*he.Z)
	iy := b.Mass / 12 * (4*he.X*he.X + 4*he.Z*he.Z)
	iz := b.Mass / 12 * (4*he.X*he.X + 4*he.Y*he.Y)
	b.invInertiaLocal = mathx.V3(inv(ix), inv(iy), inv(iz))
}

func inv(v float32) float32 {
	if v <= 0 {
		return 0
	}
	return 1 / v
}

// localHalfExtents is the half size of the body-frame AABB around all attached shapes.
func (b *Body) localHalfExtents() mathx.Vec3 {
	var lo, hi mathx.Vec3
	first := true
	for _, bs := range b.Shapes {
		if bs.Shape.Kind == ShapePlane {
			continue
		}
		he := bs.Shape.boxHalfExtents()
		axes := bs.Orientation.Axes()
		ext := axes[0].Abs().Scale(he.X).Add(axes[1].Abs().Scale(he.Y)).Add(axes[2].Abs().Scale(he.Z))
		smin := bs.Offset.Sub(ext)
		smax := bs.Offset.Add(ext)
		if first {
			lo, hi = smin, smax
			first = false
			continue
		}
		lo = mathx.V3(min(lo.X, smin.X), min(lo.Y, smin.Y), min(lo.Z, smin.Z))
		hi = mathx.V3(max(hi.X, smax.X), max(hi.Y, smax.Y), max(hi.Z, smax.Z))
	}
	return hi.Sub(lo).Scale(0.5)
}

// applyImpulse applies impulse p at world-relative arm r (point minus body position).
func (b *Body) applyImpulse(p, r mathx.Vec3) {
	if b.invMass == 0 {
		return
	}
	b.Velocity = b.Velocity.Add(p.Mul(b.LinearFactor).Scale(b.invMass))
	b.AngularVelocity = b.AngularVelocity.Add(b.invInertiaWorld(r.Cross(p)))
}

// invInertiaWorld multiplies a world-space torque-like vector by the inverse inertia tensor.
func (b *Body) invInertiaWorld(v mathx.Vec3) mathx.Vec3 {
	local := b.Orientation.Conj().Rotate(v).Mul(b.invInertiaLocal)
	return b.Orientation.Rotate(local).Mul(b.AngularFactor)
}

// velocityAt returns the velocity of the body material at world arm r.
func (b *Body) velocityAt(r mathx.Vec3) mathx.Vec3 {
	return b.Velocity.Add(b.AngularVelocity.Cross(r))
}

// effectiveInvMass is the inverse mass seen along n, including the rotational term at arm r.
func (b *Body) effectiveInvMass(n, r mathx.Vec3) float32 {
	if b.invMass == 0 {
		return 0
	}
	lin := b.invMass * n.Mul(n).Dot(b.LinearFactor)
	rn := r.Cross(n)
	return lin + rn.Dot(b.invInertiaWorld(rn))
}

// canMove reports whether contact impulses can change this body's motion.
func (b *Body) canMove() bool {
	if b.invMass == 0 {
		return false
	}
	return b.LinearFactor.LenSq() > 0 || b.AngularFactor.LenSq() > 0
}

// worldShape is a shape placed in world space for one narrow-phase test.
type worldShape struct {
	shape Shape
	pos   mathx.Vec3
	rot   mathx.Quat
}

func (b *Body) worldShape(i int) worldShape {
	bs := b.Shapes[i]
	return worldShape{
		shape: bs.Shape,
		pos:   b.Position.Add(b.Orientation.Rotate(bs.Offset)),
		rot:   b.Orientation.Mul(bs.Orientation),
	}
}

// CoversXY reports whether any shape of b covers the point (x, y) in the plane z = shape center.
// Used for side-view rendering.
func (b *Body) CoversXY(x, y float32) bool {
	for i := range b.Shapes {
		ws := b.worldShape(i)
		if ws.contains(mathx.V3(x, y, ws.pos.Z)) {
			return true
		}
	}
	return false
}

func (ws worldShape) contains(p mathx.Vec3) bool {
	l := ws.rot.Conj().Rotate(p.Sub(ws.pos))
	s := ws.shape
	switch s.Kind {
	case ShapeSphere:
		return l.LenSq() <= s.Radius*s.Radius
	case ShapeBox:
		return math32.Abs(l.X) <= s.HalfExtents.X && math32.Abs(l.Y) <= s.HalfExtents.Y && math32.Abs(l.Z) <= s.HalfExtents.Z
	case ShapePlane:
		return l.Z <= 0
	case ShapeCylinder:
		return l.X*l.X+l.Y*l.Y <= s.Radius*s.Radius && math32.Abs(l.Z) <= s.Height/2
	}
	return false
}
