// Package stage loads the YAML stage layout and builds its bodies into a physics world.
package stage

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"tilt-maze/internal/mathx"
	"tilt-maze/internal/physics"
)

//go:embed stage.yaml
var defaultStage []byte

var (
	ErrUnknownBody  = errors.New("unknown body")
	ErrUnknownShape = errors.New("unknown shape type")
	ErrMissingRole  = errors.New("missing body role")
)

// MirrorPair is a static body that copies Source's orientation every frame.
type MirrorPair struct {
	Mirror *physics.Body
	Source *physics.Body
}

// Stage is a built stage: the bodies added to the world, indexed by role and name.
type Stage struct {
	Def    Def
	Bodies []*physics.Body
	ByName map[string]*physics.Body
	Colors map[*physics.Body]uint32

	Ball    *physics.Body
	Seesaw  *physics.Body
	Player  *physics.Body
	Ground  *physics.Body
	Goal    *physics.Body
	Mirrors []MirrorPair
}

// Default returns the embedded stage definition.
func Default() (Def, error) {
	return Parse(defaultStage)
}

// Load reads a stage from path, or the embedded default when path is empty.
func Load(path string) (Def, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Def{}, fmt.Errorf("stage: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML stage definition.
func Parse(data []byte) (Def, error) {
	var d Def
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Def{}, fmt.Errorf("stage: %w", err)
	}
	return d, nil
}

func vec(a [3]float32) mathx.Vec3 {
	return mathx.V3(a[0], a[1], a[2])
}

func rotation(r *RotationDef) mathx.Quat {
	if r == nil {
		return mathx.Identity()
	}
	return mathx.FromAxisAngle(vec(r.Axis).Normalize(), r.Angle*math32.Pi/180)
}

func shapeFromDef(sd ShapeDef) (physics.Shape, error) {
	switch sd.Type {
	case "sphere":
		return physics.Sphere(sd.Radius), nil
	case "box":
		return physics.Box(vec(sd.HalfExtents)), nil
	case "plane":
		return physics.Plane(), nil
	case "cylinder":
		return physics.Cylinder(sd.Radius, sd.Height, sd.Segments), nil
	}
	return physics.Shape{}, fmt.Errorf("%w %q", ErrUnknownShape, sd.Type)
}

// Build creates every body of d, adds it to w together with gravity and contact materials,
// and resolves roles and mirror links. Ball and player roles are required.
func Build(d Def, w *physics.World) (*Stage, error) {
	s := &Stage{
		Def:    d,
		ByName: make(map[string]*physics.Body, len(d.Bodies)),
		Colors: make(map[*physics.Body]uint32, len(d.Bodies)),
	}
	w.SetGravity(vec(d.Gravity))

	materials := make(map[string]*physics.Material)
	material := func(name string) *physics.Material {
		if name == "" {
			return nil
		}
		m, ok := materials[name]
		if !ok {
			m = &physics.Material{Name: name}
			materials[name] = m
		}
		return m
	}

	for _, bd := range d.Bodies {
		b := physics.NewBody(bd.Name, bd.Mass, material(bd.Material))
		b.Position = vec(bd.Position)
		b.Orientation = rotation(bd.Rotation)
		if d.Damping > 0 {
			b.LinearDamping = d.Damping
		}
		if bd.AngularDamping != nil {
			b.AngularDamping = *bd.AngularDamping
		}
		if bd.LinearFactor != nil {
			b.LinearFactor = vec(*bd.LinearFactor)
		}
		if bd.AngularFactor != nil {
			b.AngularFactor = vec(*bd.AngularFactor)
		}
		for _, sd := range bd.Shapes {
			shape, err := shapeFromDef(sd)
			if err != nil {
				return nil, fmt.Errorf("stage: body %q: %w", bd.Name, err)
			}
			b.AddShapeOriented(shape, vec(sd.Offset), rotation(sd.Rotation))
		}
		if bd.Role == RoleMirror && !b.IsStatic() {
			return nil, fmt.Errorf("stage: mirror body %q must have mass 0", bd.Name)
		}
		w.AddBody(b)
		s.Bodies = append(s.Bodies, b)
		s.ByName[bd.Name] = b
		s.Colors[b] = bd.Color

		switch bd.Role {
		case RoleBall:
			s.Ball = b
		case RoleSeesaw:
			s.Seesaw = b
		case RolePlayer:
			s.Player = b
		case RoleGround:
			s.Ground = b
		case RoleGoal:
			s.Goal = b
		}
	}

	for _, bd := range d.Bodies {
		if bd.Role != RoleMirror {
			continue
		}
		src, ok := s.ByName[bd.MirrorOf]
		if !ok {
			return nil, fmt.Errorf("stage: mirror %q of %q: %w", bd.Name, bd.MirrorOf, ErrUnknownBody)
		}
		s.Mirrors = append(s.Mirrors, MirrorPair{Mirror: s.ByName[bd.Name], Source: src})
	}

	for _, cd := range d.Contacts {
		w.AddContactMaterial(physics.ContactMaterial{
			A:           material(cd.A),
			B:           material(cd.B),
			Friction:    cd.Friction,
			Restitution: cd.Restitution,
		})
	}

	if s.Ball == nil {
		return nil, fmt.Errorf("stage: %w: %s", ErrMissingRole, RoleBall)
	}
	if s.Player == nil {
		return nil, fmt.Errorf("stage: %w: %s", ErrMissingRole, RolePlayer)
	}
	return s, nil
}
