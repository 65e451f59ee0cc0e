package physics

import (
	"github.com/chewxy/math32"

	"tilt-maze/internal/mathx"
)

const (
	// solverIterations is the number of sequential impulse passes per step.
	solverIterations = 10
	// penetrationSlop is the overlap tolerated before positional bias kicks in.
	penetrationSlop = 0.01
	// biasFactor is the fraction of remaining penetration corrected per step.
	biasFactor = 0.2

	defaultFriction    = 0.3
	defaultRestitution = 0.0
)

// World holds bodies and advances them with gravity, damping, and impulse-based contacts.
type World struct {
	Gravity mathx.Vec3
	Bodies  []*Body

	contactMaterials []ContactMaterial
	contacts         []contact
	nextID           int
	stepCount        uint64
}

// NewWorld returns a world with default gravity (0, -9.8, 0), Y up.
func NewWorld() *World {
	return &World{
		Gravity: mathx.V3(0, -9.8, 0),
	}
}

// SetGravity sets the gravity vector.
func (w *World) SetGravity(g mathx.Vec3) {
	w.Gravity = g
}

// AddBody appends a body and assigns its ID. Order is preserved for scene syncing.
func (w *World) AddBody(b *Body) {
	b.ID = w.nextID
	w.nextID++
	b.updateMassProperties()
	w.Bodies = append(w.Bodies, b)
}

// AddContactMaterial registers friction/restitution for a material pair (order independent).
func (w *World) AddContactMaterial(cm ContactMaterial) {
	w.contactMaterials = append(w.contactMaterials, cm)
}

// StepCount returns how many steps have run.
func (w *World) StepCount() uint64 {
	return w.stepCount
}

func (w *World) contactMaterial(a, b *Material) (friction, restitution float32) {
	for _, cm := range w.contactMaterials {
		if (cm.A == a && cm.B == b) || (cm.A == b && cm.B == a) {
			return cm.Friction, cm.Restitution
		}
	}
	return defaultFriction, defaultRestitution
}

// Step advances the simulation by dt seconds: apply gravity, find contacts at the current
// poses, solve contact impulses, apply damping, integrate, then notify collide listeners.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	w.stepCount++

	for _, b := range w.Bodies {
		if b.invMass == 0 {
			continue
		}
		b.Velocity = b.Velocity.Add(w.Gravity.Mul(b.LinearFactor).Scale(dt))
	}

	w.contacts = w.findContacts(w.contacts[:0])
	w.prepareContacts(dt)
	for i := 0; i < solverIterations; i++ {
		for j := range w.contacts {
			solveContact(&w.contacts[j])
		}
	}

	for _, b := range w.Bodies {
		if b.invMass == 0 {
			continue
		}
		b.Velocity = b.Velocity.Scale(math32.Pow(1-b.LinearDamping, dt)).Mul(b.LinearFactor)
		b.AngularVelocity = b.AngularVelocity.Scale(math32.Pow(1-b.AngularDamping, dt)).Mul(b.AngularFactor)
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
		if b.AngularVelocity.LenSq() > 0 {
			b.Orientation = b.Orientation.Integrate(b.AngularVelocity, dt)
		}
	}

	w.emitCollisions()
}

// findContacts runs the narrow phase over every body pair where at least one side can move.
func (w *World) findContacts(out []contact) []contact {
	for i := 0; i < len(w.Bodies); i++ {
		bi := w.Bodies[i]
		for j := i + 1; j < len(w.Bodies); j++ {
			bj := w.Bodies[j]
			if !bi.canMove() && !bj.canMove() {
				continue
			}
			for si := range bi.Shapes {
				wi := bi.worldShape(si)
				for sj := range bj.Shapes {
					out = collideShapes(out, bi, bj, wi, bj.worldShape(sj))
				}
			}
		}
	}
	return out
}

func (w *World) prepareContacts(dt float32) {
	for i := range w.contacts {
		c := &w.contacts[i]
		c.ra = c.point.Sub(c.a.Position)
		c.rb = c.point.Sub(c.b.Position)
		c.friction, c.restitution = w.contactMaterial(c.a.Material, c.b.Material)
		k := c.a.effectiveInvMass(c.normal, c.ra) + c.b.effectiveInvMass(c.normal, c.rb)
		c.massN = inv(k)
		vn := c.b.velocityAt(c.rb).Sub(c.a.velocityAt(c.ra)).Dot(c.normal)
		c.bias = 0
		if vn < 0 {
			c.bias = -c.restitution * vn
		}
		if pen := biasFactor / dt * max(c.depth-penetrationSlop, 0); pen > c.bias {
			c.bias = pen
		}
		c.accN, c.accT = 0, 0
	}
}

// solveContact applies one pass of normal and friction impulses with accumulated clamping.
func solveContact(c *contact) {
	if c.massN == 0 {
		return
	}
	rel := c.b.velocityAt(c.rb).Sub(c.a.velocityAt(c.ra))
	vn := rel.Dot(c.normal)
	jn := (c.bias - vn) * c.massN
	old := c.accN
	c.accN = max(old+jn, 0)
	jn = c.accN - old
	impulse := c.normal.Scale(jn)
	c.a.applyImpulse(impulse.Neg(), c.ra)
	c.b.applyImpulse(impulse, c.rb)

	if c.friction <= 0 {
		return
	}
	rel = c.b.velocityAt(c.rb).Sub(c.a.velocityAt(c.ra))
	tangent := rel.Sub(c.normal.Scale(rel.Dot(c.normal))).Normalize()
	if tangent.LenSq() == 0 {
		return
	}
	kt := c.a.effectiveInvMass(tangent, c.ra) + c.b.effectiveInvMass(tangent, c.rb)
	if kt == 0 {
		return
	}
	jt := -rel.Dot(tangent) / kt
	limit := c.friction * c.accN
	oldT := c.accT
	c.accT = mathx.Clamp(oldT+jt, -limit, limit)
	jt = c.accT - oldT
	ft := tangent.Scale(jt)
	c.a.applyImpulse(ft.Neg(), c.ra)
	c.b.applyImpulse(ft, c.rb)
}

// emitCollisions notifies both bodies of each touching pair once per step.
func (w *World) emitCollisions() {
	type pair struct{ a, b int }
	seen := make(map[pair]bool, len(w.contacts))
	for _, c := range w.contacts {
		p := pair{c.a.ID, c.b.ID}
		if seen[p] {
			continue
		}
		seen[p] = true
		for _, fn := range c.a.listeners {
			fn(CollideEvent{Body: c.a, Target: c.b, Point: c.point, Normal: c.normal})
		}
		for _, fn := range c.b.listeners {
			fn(CollideEvent{Body: c.b, Target: c.a, Point: c.point, Normal: c.normal.Neg()})
		}
	}
}
