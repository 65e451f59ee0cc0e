// Package bodymesh turns physics shapes into drawable primitive parts.
// Renderers draw unit primitives ("cube", "sphere", "cylinder", "plane") scaled and placed per part.
package bodymesh

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"tilt-maze/internal/mathx"
	"tilt-maze/internal/physics"
)

// ErrUnsupportedShape is returned for shape kinds no primitive exists for.
var ErrUnsupportedShape = errors.New("unsupported shape")

// planeExtent is the drawn size of an infinite plane.
const planeExtent = 1000

// Part is one primitive of a body mesh, in body-local space.
type Part struct {
	Primitive   string
	Scale       mathx.Vec3
	Offset      mathx.Vec3
	Orientation mathx.Quat
}

// Mesh is the set of parts for one body plus its display color.
type Mesh struct {
	Body  *physics.Body
	Color uint32 // 0xRRGGBB
	Parts []Part
}

// zUp rotates a Y-aligned unit primitive so its axis follows local Z.
var zUp = mathx.FromAxisAngle(mathx.V3(1, 0, 0), math32.Pi/2)

// PartFor maps one attached shape to its primitive.
func PartFor(bs physics.BodyShape) (Part, error) {
	p := Part{Offset: bs.Offset, Orientation: bs.Orientation}
	s := bs.Shape
	switch s.Kind {
	case physics.ShapeSphere:
		p.Primitive = "sphere"
		p.Scale = mathx.V3(2*s.Radius, 2*s.Radius, 2*s.Radius)
	case physics.ShapeBox:
		p.Primitive = "cube"
		p.Scale = s.HalfExtents.Scale(2)
	case physics.ShapePlane:
		p.Primitive = "plane"
		p.Scale = mathx.V3(planeExtent, 1, planeExtent)
		p.Orientation = bs.Orientation.Mul(zUp)
	case physics.ShapeCylinder:
		p.Primitive = "cylinder"
		p.Scale = mathx.V3(2*s.Radius, s.Height, 2*s.Radius)
		p.Orientation = bs.Orientation.Mul(zUp)
	default:
		return Part{}, fmt.Errorf("bodymesh: %v: %w", s.Kind, ErrUnsupportedShape)
	}
	return p, nil
}

// Build returns the mesh for every shape of b. Any unsupported shape fails the whole body.
func Build(b *physics.Body, color uint32) (Mesh, error) {
	m := Mesh{Body: b, Color: color, Parts: make([]Part, 0, len(b.Shapes))}
	for _, bs := range b.Shapes {
		p, err := PartFor(bs)
		if err != nil {
			return Mesh{}, fmt.Errorf("bodymesh: body %q: %w", b.Name, err)
		}
		m.Parts = append(m.Parts, p)
	}
	return m, nil
}

// World returns the world position and orientation of part p for the body's current pose.
func (m Mesh) World(p Part) (mathx.Vec3, mathx.Quat) {
	b := m.Body
	return b.Position.Add(b.Orientation.Rotate(p.Offset)), b.Orientation.Mul(p.Orientation)
}
