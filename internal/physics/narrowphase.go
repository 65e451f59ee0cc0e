package physics

import (
	"github.com/chewxy/math32"

	"tilt-maze/internal/mathx"
)

// contact is one point of touch between two bodies. normal points from a to b.
type contact struct {
	a, b   *Body
	point  mathx.Vec3
	normal mathx.Vec3
	depth  float32

	// solver state
	ra, rb      mathx.Vec3
	massN       float32
	bias        float32
	accN        float32
	accT        float32
	friction    float32
	restitution float32
}

// collideShapes appends contacts between shape sa (of body a) and sb (of body b).
// Flipped results are re-oriented so that normals always point from a to b.
func collideShapes(out []contact, a, b *Body, sa, sb worldShape) []contact {
	switch {
	case sa.shape.Kind == ShapePlane && sb.shape.Kind == ShapeCylinder:
		return cylinderPlane(out, a, b, sa, sb, false)
	case sa.shape.Kind == ShapeCylinder && sb.shape.Kind == ShapePlane:
		return cylinderPlane(out, b, a, sb, sa, true)
	}
	ka, kb := collisionKind(sa.shape.Kind), collisionKind(sb.shape.Kind)
	switch {
	case ka == ShapeSphere && kb == ShapeSphere:
		return sphereSphere(out, a, b, sa, sb)
	case ka == ShapePlane && kb == ShapeSphere:
		return spherePlane(out, a, b, sa, sb, false)
	case ka == ShapeSphere && kb == ShapePlane:
		return spherePlane(out, b, a, sb, sa, true)
	case ka == ShapeBox && kb == ShapeSphere:
		return sphereBox(out, a, b, sa, sb, false)
	case ka == ShapeSphere && kb == ShapeBox:
		return sphereBox(out, b, a, sb, sa, true)
	case ka == ShapePlane && kb == ShapeBox:
		return boxPlane(out, a, b, sa, sb, false)
	case ka == ShapeBox && kb == ShapePlane:
		return boxPlane(out, b, a, sb, sa, true)
	case ka == ShapeBox && kb == ShapeBox:
		return boxBox(out, a, b, sa, sb)
	}
	return out
}

// collisionKind maps shapes onto the primitive tests: apart from planes, cylinders collide as boxes.
func collisionKind(k ShapeKind) ShapeKind {
	if k == ShapeCylinder {
		return ShapeBox
	}
	return k
}

func appendContact(out []contact, a, b *Body, point, normal mathx.Vec3, depth float32, flip bool) []contact {
	if flip {
		return append(out, contact{a: b, b: a, point: point, normal: normal.Neg(), depth: depth})
	}
	return append(out, contact{a: a, b: b, point: point, normal: normal, depth: depth})
}

func sphereSphere(out []contact, a, b *Body, sa, sb worldShape) []contact {
	d := sb.pos.Sub(sa.pos)
	r := sa.shape.Radius + sb.shape.Radius
	dist := d.Len()
	if dist >= r {
		return out
	}
	n := d.Normalize()
	if n.LenSq() == 0 {
		n = mathx.V3(0, 1, 0)
	}
	point := sa.pos.Add(n.Scale(sa.shape.Radius))
	return appendContact(out, a, b, point, n, r-dist, false)
}

// spherePlane tests plane p (body pb) against sphere s (body sb). normal points from plane to sphere.
func spherePlane(out []contact, pb, sb *Body, p, s worldShape, flip bool) []contact {
	n := p.rot.Rotate(mathx.V3(0, 0, 1))
	d := s.pos.Sub(p.pos).Dot(n) - s.shape.Radius
	if d >= 0 {
		return out
	}
	point := s.pos.Sub(n.Scale(s.shape.Radius))
	return appendContact(out, pb, sb, point, n, -d, flip)
}

// sphereBox tests box x (body xb) against sphere s (body sb). normal points from box to sphere.
func sphereBox(out []contact, xb, sb *Body, x, s worldShape, flip bool) []contact {
	he := x.shape.boxHalfExtents()
	local := x.rot.Conj().Rotate(s.pos.Sub(x.pos))
	closest := mathx.V3(
		mathx.Clamp(local.X, -he.X, he.X),
		mathx.Clamp(local.Y, -he.Y, he.Y),
		mathx.Clamp(local.Z, -he.Z, he.Z),
	)
	diff := local.Sub(closest)
	r := s.shape.Radius
	if diff.LenSq() > r*r {
		return out
	}
	var nLocal mathx.Vec3
	var depth float32
	if dist := diff.Len(); dist > mathx.Epsilon {
		nLocal = diff.Scale(1 / dist)
		depth = r - dist
	} else {
		// Center inside the box: push out through the nearest face.
		best := -1
		var bestGap float32
		for i := 0; i < 3; i++ {
			gap := he.Component(i) - math32.Abs(local.Component(i))
			if best < 0 || gap < bestGap {
				best, bestGap = i, gap
			}
		}
		sign := float32(1)
		if local.Component(best) < 0 {
			sign = -1
		}
		switch best {
		case 0:
			nLocal = mathx.V3(sign, 0, 0)
			closest.X = sign * he.X
		case 1:
			nLocal = mathx.V3(0, sign, 0)
			closest.Y = sign * he.Y
		default:
			nLocal = mathx.V3(0, 0, sign)
			closest.Z = sign * he.Z
		}
		depth = r + bestGap
	}
	point := x.pos.Add(x.rot.Rotate(closest))
	return appendContact(out, xb, sb, point, x.rot.Rotate(nLocal), depth, flip)
}

// boxCorners returns the eight world-space vertices of a box shape.
func boxCorners(x worldShape) [8]mathx.Vec3 {
	he := x.shape.boxHalfExtents()
	axes := x.rot.Axes()
	var out [8]mathx.Vec3
	i := 0
	for _, sx := range [2]float32{-1, 1} {
		for _, sy := range [2]float32{-1, 1} {
			for _, sz := range [2]float32{-1, 1} {
				out[i] = x.pos.
					Add(axes[0].Scale(sx * he.X)).
					Add(axes[1].Scale(sy * he.Y)).
					Add(axes[2].Scale(sz * he.Z))
				i++
			}
		}
	}
	return out
}

// boxPlane emits one contact per box corner below plane p. normal points from plane to box.
func boxPlane(out []contact, pb, xb *Body, p, x worldShape, flip bool) []contact {
	n := p.rot.Rotate(mathx.V3(0, 0, 1))
	for _, c := range boxCorners(x) {
		d := c.Sub(p.pos).Dot(n)
		if d < 0 {
			out = appendContact(out, pb, xb, c, n, -d, flip)
		}
	}
	return out
}

// cylinderPlane tests the two end-cap rims of cylinder c against plane p, so a cylinder rolls
// on its round side. normal points from plane to cylinder.
func cylinderPlane(out []contact, pb, cb *Body, p, c worldShape, flip bool) []contact {
	n := p.rot.Rotate(mathx.V3(0, 0, 1))
	axis := c.rot.Rotate(mathx.V3(0, 0, 1))
	down := n.Sub(axis.Scale(n.Dot(axis))).Normalize().Scale(c.shape.Radius)
	half := axis.Scale(c.shape.Height * 0.5)
	for _, end := range [2]mathx.Vec3{c.pos.Add(half), c.pos.Sub(half)} {
		rim := end.Sub(down)
		if d := rim.Sub(p.pos).Dot(n); d < 0 {
			out = appendContact(out, pb, cb, rim, n, -d, flip)
		}
	}
	return out
}

// boxBox runs a separating axis test over the 15 candidate axes of two oriented boxes.
// Face axes produce one contact per penetrating vertex of the other box; edge axes a single midpoint.
func boxBox(out []contact, a, b *Body, sa, sb worldShape) []contact {
	ha, hb := sa.shape.boxHalfExtents(), sb.shape.boxHalfExtents()
	ax, bx := sa.rot.Axes(), sb.rot.Axes()
	t := sb.pos.Sub(sa.pos)

	project := func(axes [3]mathx.Vec3, he mathx.Vec3, l mathx.Vec3) float32 {
		return he.X*math32.Abs(axes[0].Dot(l)) + he.Y*math32.Abs(axes[1].Dot(l)) + he.Z*math32.Abs(axes[2].Dot(l))
	}

	bestAxis := -1
	var bestDepth float32
	var bestN mathx.Vec3
	test := func(idx int, l mathx.Vec3) bool {
		if l.LenSq() < 1e-8 {
			return true
		}
		l = l.Normalize()
		overlap := project(ax, ha, l) + project(bx, hb, l) - math32.Abs(t.Dot(l))
		if overlap < 0 {
			return false
		}
		// Prefer face axes over near-equal edge axes for stable contacts.
		if idx >= 6 {
			overlap *= 1.05
		}
		if bestAxis < 0 || overlap < bestDepth {
			bestAxis, bestDepth = idx, overlap
			if t.Dot(l) < 0 {
				l = l.Neg()
			}
			bestN = l
		}
		return true
	}
	for i := 0; i < 3; i++ {
		if !test(i, ax[i]) {
			return out
		}
	}
	for i := 0; i < 3; i++ {
		if !test(3+i, bx[i]) {
			return out
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !test(6+i*3+j, ax[i].Cross(bx[j])) {
				return out
			}
		}
	}
	if bestAxis >= 6 {
		bestDepth /= 1.05
	}

	n := bestN
	switch {
	case bestAxis < 3:
		// Face of a: vertices of b below that face.
		face := sa.pos.Dot(n) + project(ax, ha, n)
		before := len(out)
		for _, v := range boxCorners(sb) {
			d := face - v.Dot(n)
			if d > 0 && insideSlab(v, sa, ha, bestAxis) {
				out = append(out, contact{a: a, b: b, point: v, normal: n, depth: d})
			}
		}
		if len(out) > before {
			return out
		}
	case bestAxis < 6:
		// Face of b: vertices of a beyond that face.
		face := sb.pos.Dot(n) - project(bx, hb, n)
		before := len(out)
		for _, v := range boxCorners(sa) {
			d := v.Dot(n) - face
			if d > 0 && insideSlab(v, sb, hb, bestAxis-3) {
				out = append(out, contact{a: a, b: b, point: v, normal: n, depth: d})
			}
		}
		if len(out) > before {
			return out
		}
	}
	pa := support(sa, ha, n)
	pb := support(sb, hb, n.Neg())
	return append(out, contact{a: a, b: b, point: pa.Add(pb).Scale(0.5), normal: n, depth: bestDepth})
}

// insideSlab reports whether v projects inside box x on the two axes other than skip.
func insideSlab(v mathx.Vec3, x worldShape, he mathx.Vec3, skip int) bool {
	local := x.rot.Conj().Rotate(v.Sub(x.pos))
	const margin = 1e-3
	for i := 0; i < 3; i++ {
		if i == skip {
			continue
		}
		if math32.Abs(local.Component(i)) > he.Component(i)+margin {
			return false
		}
	}
	return true
}

// support returns the vertex of box x furthest along dir.
func support(x worldShape, he mathx.Vec3, dir mathx.Vec3) mathx.Vec3 {
	axes := x.rot.Axes()
	p := x.pos
	for i := 0; i < 3; i++ {
		s := float32(1)
		if axes[i].Dot(dir) < 0 {
			s = -1
		}
		p = p.Add(axes[i].Scale(s * he.Component(i)))
	}
	return p
}
